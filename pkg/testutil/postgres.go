//go:build integration

package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/clippintel/botscore/migrations"
	"github.com/clippintel/botscore/pkg/postgres"
)

// analysisTables lists the schema's tables, children first.
var analysisTables = []string{"bot_analysis_red_flags", "bot_analyses"}

// PostgresDB is a migrated PostgreSQL container with a connected pool. It is torn down
// through t.Cleanup.
type PostgresDB struct {
	DSN  string
	Pool *pgxpool.Pool
}

// NewPostgresContainer starts PostgreSQL 16, applies the embedded migrations and connects
// a pool.
func NewPostgresContainer(ctx context.Context, t *testing.T) *PostgresDB {
	t.Helper()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("botscore"),
		tcpostgres.WithUsername("botscore"),
		tcpostgres.WithPassword("botscore"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}
	t.Cleanup(func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := container.Terminate(stopCtx); err != nil {
			t.Logf("terminate postgres container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("postgres connection string: %v", err)
	}

	pool, err := postgres.NewPool(ctx, postgres.Config{URL: dsn, MaxConns: 4, ConnectRetries: 3})
	if err != nil {
		t.Fatalf("connect postgres: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := postgres.MigrateUp(dsn, postgres.Migrations{FS: migrations.FS}); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	return &PostgresDB{DSN: dsn, Pool: pool}
}

// Truncate empties the analysis tables.
func (db *PostgresDB) Truncate(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, table := range analysisTables {
		if _, err := db.Pool.Exec(ctx, "DELETE FROM "+table); err != nil {
			t.Fatalf("truncate %s: %v", table, err)
		}
	}
}

// CountRows returns the number of rows in table.
func (db *PostgresDB) CountRows(t *testing.T, table string) int {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var n int
	if err := db.Pool.QueryRow(ctx, "SELECT count(*) FROM "+table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

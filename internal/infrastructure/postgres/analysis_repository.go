package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clippintel/botscore/internal/domain/model"
	"github.com/clippintel/botscore/internal/domain/port"
	"github.com/clippintel/botscore/internal/domain/valueobject"
	pkgpostgres "github.com/clippintel/botscore/pkg/postgres"
)

// Compile-time interface check.
var _ port.AnalysisRepository = (*AnalysisRepository)(nil)

// AnalysisRepository implements port.AnalysisRepository using PostgreSQL.
type AnalysisRepository struct {
	pool *pgxpool.Pool
}

// NewAnalysisRepository creates a new PostgreSQL-backed analysis repository.
func NewAnalysisRepository(pool *pgxpool.Pool) *AnalysisRepository {
	return &AnalysisRepository{pool: pool}
}

const selectAnalysis = `
	SELECT id, handle, platform, bot_score, risk_level, verdict, confidence,
		signals, metrics, score_breakdown, recommendations,
		degraded, processing_time_ms, analysis_date
	FROM bot_analyses`

// Save persists a result and its red flags in one transaction. Saving the same result twice
// replaces the stored copy.
func (r *AnalysisRepository) Save(ctx context.Context, result *model.BotAnalysisResult) error {
	rec, err := toRecord(result)
	if err != nil {
		return err
	}

	return pkgpostgres.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO bot_analyses (
				id, handle, handle_key, platform,
				bot_score, risk_level, verdict, confidence,
				signals, metrics, score_breakdown, recommendations,
				degraded, processing_time_ms, analysis_date
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
			ON CONFLICT (id) DO UPDATE SET
				bot_score = EXCLUDED.bot_score,
				risk_level = EXCLUDED.risk_level,
				verdict = EXCLUDED.verdict,
				confidence = EXCLUDED.confidence,
				signals = EXCLUDED.signals,
				metrics = EXCLUDED.metrics,
				score_breakdown = EXCLUDED.score_breakdown,
				recommendations = EXCLUDED.recommendations,
				degraded = EXCLUDED.degraded,
				processing_time_ms = EXCLUDED.processing_time_ms`,
			rec.ID, rec.Handle, rec.HandleKey, rec.Platform,
			rec.BotScore, rec.RiskLevel, rec.Verdict, rec.Confidence,
			rec.Signals, rec.Metrics, rec.ScoreBreakdown, rec.Recommendations,
			rec.Degraded, rec.ProcessingTimeMS, rec.AnalysisDate,
		)
		if err != nil {
			return fmt.Errorf("failed to save analysis: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM bot_analysis_red_flags WHERE analysis_id = $1`, rec.ID); err != nil {
			return fmt.Errorf("failed to delete old red flags: %w", err)
		}

		batch := &pgx.Batch{}
		for i, f := range result.Flags() {
			batch.Queue(
				`INSERT INTO bot_analysis_red_flags (analysis_id, position, code, severity, message) VALUES ($1, $2, $3, $4, $5)`,
				rec.ID, i, f.Code, string(f.Severity), f.Message,
			)
		}
		if batch.Len() == 0 {
			return nil
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to save red flags: %w", err)
		}
		return nil
	})
}

// FindByID retrieves a result by its identifier.
func (r *AnalysisRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.BotAnalysisResult, error) {
	var rec analysisRecord
	err := scanRecord(r.pool.QueryRow(ctx, selectAnalysis+` WHERE id = $1`, id), &rec)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", model.ErrAnalysisNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan analysis: %w", err)
	}

	flags, err := r.loadFlags(ctx, r.pool, rec.ID)
	if err != nil {
		return nil, err
	}
	return rec.toModel(flags)
}

// FindByAccount lists results for an account, newest first.
func (r *AnalysisRepository) FindByAccount(ctx context.Context, account model.AccountIdentity, limit, offset int) ([]*model.BotAnalysisResult, error) {
	rows, err := r.pool.Query(ctx,
		selectAnalysis+` WHERE platform = $1 AND handle_key = $2 ORDER BY analysis_date DESC LIMIT $3 OFFSET $4`,
		account.Platform.String(), handleKey(account), limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query analyses: %w", err)
	}

	var recs []analysisRecord
	for rows.Next() {
		var rec analysisRecord
		if err := scanRecord(rows, &rec); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan analysis row: %w", err)
		}
		recs = append(recs, rec)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate analyses: %w", err)
	}

	results := make([]*model.BotAnalysisResult, 0, len(recs))
	for _, rec := range recs {
		flags, err := r.loadFlags(ctx, r.pool, rec.ID)
		if err != nil {
			return nil, err
		}
		result, err := rec.toModel(flags)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

func (r *AnalysisRepository) loadFlags(ctx context.Context, q pkgpostgres.Querier, analysisID uuid.UUID) ([]valueobject.RedFlag, error) {
	rows, err := q.Query(ctx,
		`SELECT code, severity, message FROM bot_analysis_red_flags WHERE analysis_id = $1 ORDER BY position`,
		analysisID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query red flags: %w", err)
	}
	defer rows.Close()

	flags := make([]valueobject.RedFlag, 0)
	for rows.Next() {
		var f valueobject.RedFlag
		var severity string
		if err := rows.Scan(&f.Code, &severity, &f.Message); err != nil {
			return nil, fmt.Errorf("failed to scan red flag: %w", err)
		}
		if f.Severity, err = valueobject.SeverityFromString(severity); err != nil {
			return nil, fmt.Errorf("failed to parse red flag: %w", err)
		}
		flags = append(flags, f)
	}
	return flags, rows.Err()
}

// analysisRecord is the row shape of bot_analyses. JSON columns hold encoded documents.
type analysisRecord struct {
	AnalysisDate     time.Time
	Handle           string
	HandleKey        string
	Platform         string
	RiskLevel        string
	Verdict          string
	Signals          []byte
	Metrics          []byte
	ScoreBreakdown   []byte
	Recommendations  []byte
	ProcessingTimeMS int64
	BotScore         int
	Confidence       int
	Degraded         bool
	ID               uuid.UUID
}

func handleKey(a model.AccountIdentity) string {
	return strings.ToLower(a.Handle)
}

func toRecord(r *model.BotAnalysisResult) (analysisRecord, error) {
	rec := analysisRecord{
		ID:               r.ID(),
		Handle:           r.Account().Handle,
		HandleKey:        handleKey(r.Account()),
		Platform:         r.Account().Platform.String(),
		BotScore:         r.BotScore(),
		RiskLevel:        r.RiskLevel().String(),
		Verdict:          r.Verdict().String(),
		Confidence:       r.Confidence(),
		Degraded:         r.IsDegraded(),
		ProcessingTimeMS: r.ProcessingTime().Milliseconds(),
		AnalysisDate:     r.AnalysisDate(),
	}

	docs := []struct {
		dst  *[]byte
		src  any
		name string
	}{
		{&rec.Signals, r.Signals(), "signals"},
		{&rec.Metrics, r.Metrics(), "metrics"},
		{&rec.ScoreBreakdown, r.ScoreBreakdown(), "score breakdown"},
		{&rec.Recommendations, r.Recommendations(), "recommendations"},
	}
	for _, d := range docs {
		b, err := json.Marshal(d.src)
		if err != nil {
			return analysisRecord{}, fmt.Errorf("failed to encode %s: %w", d.name, err)
		}
		*d.dst = b
	}
	return rec, nil
}

func scanRecord(row pgx.Row, rec *analysisRecord) error {
	return row.Scan(
		&rec.ID, &rec.Handle, &rec.Platform, &rec.BotScore, &rec.RiskLevel, &rec.Verdict, &rec.Confidence,
		&rec.Signals, &rec.Metrics, &rec.ScoreBreakdown, &rec.Recommendations,
		&rec.Degraded, &rec.ProcessingTimeMS, &rec.AnalysisDate,
	)
}

func (rec analysisRecord) toModel(flags []valueobject.RedFlag) (*model.BotAnalysisResult, error) {
	platform, err := valueobject.PlatformFromString(rec.Platform)
	if err != nil {
		return nil, fmt.Errorf("failed to parse platform: %w", err)
	}
	riskLevel, err := valueobject.RiskLevelFromString(rec.RiskLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to parse risk level: %w", err)
	}
	verdict, err := valueobject.VerdictFromString(rec.Verdict)
	if err != nil {
		return nil, fmt.Errorf("failed to parse verdict: %w", err)
	}

	p := model.ReconstructParams{
		ID:             rec.ID,
		Account:        model.AccountIdentity{Handle: rec.Handle, Platform: platform},
		BotScore:       rec.BotScore,
		RiskLevel:      riskLevel,
		Verdict:        verdict,
		Confidence:     rec.Confidence,
		RedFlags:       flags,
		Degraded:       rec.Degraded,
		ProcessingTime: time.Duration(rec.ProcessingTimeMS) * time.Millisecond,
		AnalysisDate:   rec.AnalysisDate.UTC(),
	}

	docs := []struct {
		src  []byte
		dst  any
		name string
	}{
		{rec.Signals, &p.Signals, "signals"},
		{rec.Metrics, &p.Metrics, "metrics"},
		{rec.ScoreBreakdown, &p.ScoreBreakdown, "score breakdown"},
		{rec.Recommendations, &p.Recommendations, "recommendations"},
	}
	for _, d := range docs {
		if err := json.Unmarshal(d.src, d.dst); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", d.name, err)
		}
	}

	return model.Reconstruct(p), nil
}

package provider_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clippintel/botscore/internal/domain/model"
	"github.com/clippintel/botscore/internal/domain/port"
	"github.com/clippintel/botscore/internal/infrastructure/provider"
	"github.com/clippintel/botscore/pkg/testutil"
)

func fixturesJSON(t *testing.T) []byte {
	t.Helper()
	data, err := json.Marshal(map[string]model.AccountMetrics{
		"organic.creator:instagram": testutil.OrganicMetrics(),
		"@Growth_Hack_2024:tiktok":  testutil.BotFarmMetrics(),
	})
	require.NoError(t, err)
	return data
}

func TestParseStaticProvider(t *testing.T) {
	p, err := provider.ParseStaticProvider(fixturesJSON(t))
	require.NoError(t, err)
	assert.Equal(t, 2, p.Len())

	m, err := p.FetchMetrics(context.Background(), testutil.BotFarmCreator)
	require.NoError(t, err)
	assert.Equal(t, testutil.BotFarmMetrics().WithDerivedRates(), m)

	_, err = p.FetchMetrics(context.Background(), model.AccountIdentity{Handle: "nobody", Platform: testutil.BotFarmCreator.Platform})
	assert.ErrorIs(t, err, port.ErrAccountNotFound)
}

func TestParseStaticProvider_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{name: "not an object", data: `[1,2]`},
		{name: "bad key", data: `{"no-platform": {}}`},
		{name: "unknown platform", data: `{"someone:myspace": {}}`},
		{name: "incomplete snapshot", data: `{"someone:tiktok": {"followers": 1}}`, wantErr: model.ErrMalformedMetrics},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := provider.ParseStaticProvider([]byte(tt.data))
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestLoadStaticProvider(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixtures.json")
	require.NoError(t, os.WriteFile(path, fixturesJSON(t), 0o600))

	p, err := provider.LoadStaticProvider(path)
	require.NoError(t, err)
	assert.Equal(t, 2, p.Len())

	_, err = provider.LoadStaticProvider(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestStaticProvider_Add(t *testing.T) {
	p := provider.NewStaticProvider()
	p.Add(testutil.OrganicCreator, testutil.OrganicMetrics())

	m, err := p.FetchMetrics(context.Background(), model.AccountIdentity{Handle: "ORGANIC.creator", Platform: testutil.OrganicCreator.Platform})
	require.NoError(t, err)
	assert.Equal(t, testutil.OrganicMetrics(), m)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.FetchMetrics(ctx, testutil.OrganicCreator)
	assert.ErrorIs(t, err, context.Canceled)
}

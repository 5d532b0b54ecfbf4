package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clippintel/botscore/internal/domain/model"
)

// AssertResultContract checks the output bounds every analysis result must honour.
func AssertResultContract(t *testing.T, r *model.BotAnalysisResult) {
	t.Helper()
	assert.GreaterOrEqual(t, r.BotScore(), 0)
	assert.LessOrEqual(t, r.BotScore(), 100)
	assert.GreaterOrEqual(t, r.Confidence(), model.MinConfidence)
	assert.LessOrEqual(t, r.Confidence(), model.MaxConfidence)
	assert.NotEmpty(t, r.Recommendations())
	assert.NotNil(t, r.RedFlags())
}

// AssertDegraded checks that r carries the degraded-result marker.
func AssertDegraded(t *testing.T, r *model.BotAnalysisResult, reasonSubstring string) {
	t.Helper()
	require.True(t, r.IsDegraded(), "expected a degraded result")
	assert.Equal(t, 0, r.BotScore())
	assert.Equal(t, "unknown", r.RiskLevel().String())
	require.Len(t, r.RedFlags(), 1)
	assert.Contains(t, r.RedFlags()[0], "ANALYSIS FAILED")
	assert.Contains(t, r.RedFlags()[0], reasonSubstring)
}

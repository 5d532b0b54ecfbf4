package dto_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clippintel/botscore/internal/application/dto"
	"github.com/clippintel/botscore/internal/domain/model"
	"github.com/clippintel/botscore/pkg/testutil"
)

func scored(t *testing.T, score int) *model.BotAnalysisResult {
	t.Helper()
	r, err := model.NewAnalysisResult(model.AnalysisParams{
		Account:         testutil.OrganicCreator,
		Metrics:         testutil.OrganicMetrics(),
		BotScore:        score,
		Confidence:      70,
		Recommendations: []string{"APPROVE - Low risk profile detected"},
	})
	require.NoError(t, err)
	return r
}

func TestFromModel_JSONContract(t *testing.T) {
	resp := dto.FromModel(scored(t, 10))

	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	for _, key := range []string{
		"id", "account", "botScore", "riskLevel", "signals", "metrics", "redFlags",
		"recommendations", "confidence", "analysisDate", "processingTimeSeconds",
	} {
		assert.Contains(t, doc, key)
	}
	assert.Equal(t, "low", doc["riskLevel"])
	assert.Equal(t, []any{}, doc["redFlags"])
	assert.Equal(t, map[string]any{"handle": "organic.creator", "platform": "instagram"}, doc["account"])
}

func TestSummarize(t *testing.T) {
	results := []*model.BotAnalysisResult{
		scored(t, 10),
		scored(t, 80),
		model.NewDegradedResult(testutil.BotFarmCreator, "metrics provider unavailable", nil, time.Millisecond),
		scored(t, 25),
	}

	assert.Equal(t, dto.BatchSummary{
		Total:           4,
		Completed:       3,
		Failed:          1,
		HighRisk:        1,
		AverageBotScore: 38.3,
	}, dto.Summarize(results))
}

func TestSummarize_AllFailed(t *testing.T) {
	s := dto.Summarize([]*model.BotAnalysisResult{
		model.NewDegradedResult(testutil.OrganicCreator, "account not found", nil, 0),
	})
	assert.Equal(t, 0.0, s.AverageBotScore)
	assert.Equal(t, 1, s.Failed)
}

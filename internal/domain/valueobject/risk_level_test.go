package valueobject_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clippintel/botscore/internal/domain/valueobject"
)

func TestRiskLevel_String(t *testing.T) {
	assert.Equal(t, "low", valueobject.RiskLevelLow.String())
	assert.Equal(t, "medium", valueobject.RiskLevelMedium.String())
	assert.Equal(t, "high", valueobject.RiskLevelHigh.String())
	assert.Equal(t, "unknown", valueobject.RiskLevelUnknown.String())
}

func TestRiskLevel_FromString(t *testing.T) {
	tests := []struct {
		input    string
		expected valueobject.RiskLevel
		wantErr  bool
	}{
		{"low", valueobject.RiskLevelLow, false},
		{"medium", valueobject.RiskLevelMedium, false},
		{"high", valueobject.RiskLevelHigh, false},
		{"unknown", valueobject.RiskLevelUnknown, false},
		{"HIGH", valueobject.RiskLevel{}, true},
		{"critical", valueobject.RiskLevel{}, true},
		{"", valueobject.RiskLevel{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := valueobject.RiskLevelFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.True(t, tt.expected.Equal(result))
			}
		})
	}
}

func TestRiskLevel_FromScore(t *testing.T) {
	tests := []struct {
		name     string
		expected valueobject.RiskLevel
		score    int
	}{
		{name: "score 0 is low", expected: valueobject.RiskLevelLow, score: 0},
		{name: "score 44 is low", expected: valueobject.RiskLevelLow, score: 44},
		{name: "score 45 is medium", expected: valueobject.RiskLevelMedium, score: 45},
		{name: "score 74 is medium", expected: valueobject.RiskLevelMedium, score: 74},
		{name: "score 75 is high", expected: valueobject.RiskLevelHigh, score: 75},
		{name: "score 100 is high", expected: valueobject.RiskLevelHigh, score: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := valueobject.RiskLevelFromScore(tt.score)
			assert.True(t, tt.expected.Equal(result),
				"expected %s for score %d, got %s", tt.expected.String(), tt.score, result.String())
		})
	}
}

func TestRiskLevel_FromScoreIsTotalPartition(t *testing.T) {
	counts := map[string]int{}
	for score := 0; score <= 100; score++ {
		level := valueobject.RiskLevelFromScore(score)
		require.True(t, level.IsKnown(), "score %d produced %q", score, level.String())
		counts[level.String()]++
	}

	assert.Equal(t, 45, counts["low"])
	assert.Equal(t, 30, counts["medium"])
	assert.Equal(t, 26, counts["high"])
}

func TestRiskLevel_JSON(t *testing.T) {
	raw, err := json.Marshal(valueobject.RiskLevelHigh)
	require.NoError(t, err)
	assert.JSONEq(t, `"high"`, string(raw))

	var level valueobject.RiskLevel
	require.NoError(t, json.Unmarshal([]byte(`"medium"`), &level))
	assert.True(t, valueobject.RiskLevelMedium.Equal(level))

	assert.Error(t, json.Unmarshal([]byte(`"severe"`), &level))
}

func TestRiskLevel_IsZero(t *testing.T) {
	var zero valueobject.RiskLevel
	assert.True(t, zero.IsZero())
	assert.False(t, zero.IsKnown())
	assert.False(t, valueobject.RiskLevelUnknown.IsKnown())
	assert.False(t, valueobject.RiskLevelLow.IsZero())
}

package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/clippintel/botscore/internal/domain/model"
	"github.com/clippintel/botscore/internal/domain/valueobject"
)

// AnalyzeAccountRequest is the input DTO for the AnalyzeAccount use case.
type AnalyzeAccountRequest struct {
	Handle   string `json:"handle"`
	Platform string `json:"platform"`
}

// AnalyzeBatchRequest is the input DTO for the AnalyzeBatch use case.
type AnalyzeBatchRequest struct {
	Accounts []AnalyzeAccountRequest `json:"accounts"`
}

// GetAnalysisRequest is the input DTO for retrieving a stored analysis.
type GetAnalysisRequest struct {
	AnalysisID uuid.UUID `json:"analysisId"`
}

// ListAnalysesRequest is the input DTO for listing the stored analyses of one account.
type ListAnalysesRequest struct {
	Handle   string `json:"handle"`
	Platform string `json:"platform"`
	Limit    int    `json:"limit"`
	Offset   int    `json:"offset"`
}

// AccountDTO identifies the analyzed account.
type AccountDTO struct {
	Handle   string `json:"handle"`
	Platform string `json:"platform"`
}

// AnalysisResponse is the output DTO for one analysis, shaped like the public result contract.
type AnalysisResponse struct {
	AnalysisDate          time.Time                       `json:"analysisDate"`
	Account               AccountDTO                      `json:"account"`
	RiskLevel             string                          `json:"riskLevel"`
	Verdict               string                          `json:"verdict"`
	Signals               valueobject.BotSignals          `json:"signals"`
	Metrics               model.AccountMetrics            `json:"metrics"`
	ScoreBreakdown        []valueobject.ScoreContribution `json:"scoreBreakdown"`
	RedFlags              []string                        `json:"redFlags"`
	Recommendations       []string                        `json:"recommendations"`
	ProcessingTimeSeconds float64                         `json:"processingTimeSeconds"`
	BotScore              int                             `json:"botScore"`
	Confidence            int                             `json:"confidence"`
	Degraded              bool                            `json:"degraded"`
	ID                    uuid.UUID                       `json:"id"`
}

// BatchSummary aggregates a batch run. AverageBotScore covers completed analyses only.
type BatchSummary struct {
	Total           int     `json:"total"`
	Completed       int     `json:"completed"`
	Failed          int     `json:"failed"`
	HighRisk        int     `json:"highRisk"`
	AverageBotScore float64 `json:"averageBotScore"`
}

// BatchAnalysisResponse is the output DTO for the AnalyzeBatch use case.
type BatchAnalysisResponse struct {
	Results []AnalysisResponse `json:"results"`
	Summary BatchSummary       `json:"summary"`
}

// ListAnalysesResponse is the output DTO for the ListAnalyses use case.
type ListAnalysesResponse struct {
	Analyses []AnalysisResponse `json:"analyses"`
}

// FromModel maps a domain model to the response DTO.
func FromModel(r *model.BotAnalysisResult) AnalysisResponse {
	return AnalysisResponse{
		ID: r.ID(),
		Account: AccountDTO{
			Handle:   r.Account().Handle,
			Platform: r.Account().Platform.String(),
		},
		BotScore:              r.BotScore(),
		RiskLevel:             r.RiskLevel().String(),
		Verdict:               r.Verdict().String(),
		Signals:               r.Signals(),
		Metrics:               r.Metrics(),
		ScoreBreakdown:        r.ScoreBreakdown(),
		RedFlags:              r.RedFlags(),
		Recommendations:       r.Recommendations(),
		Confidence:            r.Confidence(),
		AnalysisDate:          r.AnalysisDate(),
		ProcessingTimeSeconds: r.ProcessingTimeSeconds(),
		Degraded:              r.IsDegraded(),
	}
}

// FromModels maps a slice of results, preserving order.
func FromModels(rs []*model.BotAnalysisResult) []AnalysisResponse {
	out := make([]AnalysisResponse, 0, len(rs))
	for _, r := range rs {
		out = append(out, FromModel(r))
	}
	return out
}

// Summarize computes batch statistics.
func Summarize(rs []*model.BotAnalysisResult) BatchSummary {
	s := BatchSummary{Total: len(rs)}
	total := decimal.Zero
	for _, r := range rs {
		if r.IsDegraded() {
			s.Failed++
			continue
		}
		s.Completed++
		total = total.Add(decimal.NewFromInt(int64(r.BotScore())))
		if r.RiskLevel().Equal(valueobject.RiskLevelHigh) {
			s.HighRisk++
		}
	}
	if s.Completed > 0 {
		s.AverageBotScore = total.Div(decimal.NewFromInt(int64(s.Completed))).Round(1).InexactFloat64()
	}
	return s
}

package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/clippintel/botscore/internal/application/dto"
	"github.com/clippintel/botscore/internal/application/usecase"
	"github.com/clippintel/botscore/internal/domain/model"
)

const maxBodyBytes = 1 << 20

// AnalysisHandler serves the analysis endpoints.
type AnalysisHandler struct {
	analyzeAccount *usecase.AnalyzeAccount
	analyzeBatch   *usecase.AnalyzeBatch
	getAnalysis    *usecase.GetAnalysis
	listAnalyses   *usecase.ListAnalyses
	logger         *slog.Logger
}

// NewAnalysisHandler creates a new analysis handler.
func NewAnalysisHandler(
	analyzeAccount *usecase.AnalyzeAccount,
	analyzeBatch *usecase.AnalyzeBatch,
	getAnalysis *usecase.GetAnalysis,
	listAnalyses *usecase.ListAnalyses,
	logger *slog.Logger,
) *AnalysisHandler {
	return &AnalysisHandler{
		analyzeAccount: analyzeAccount,
		analyzeBatch:   analyzeBatch,
		getAnalysis:    getAnalysis,
		listAnalyses:   listAnalyses,
		logger:         logger,
	}
}

// AnalyzeAccount handles POST /v1/analyses.
func (h *AnalysisHandler) AnalyzeAccount(w http.ResponseWriter, r *http.Request) {
	var req dto.AnalyzeAccountRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.analyzeAccount.Execute(r.Context(), req)
	if err != nil {
		h.respondWithUseCaseError(r.Context(), w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, resp)
}

// AnalyzeBatch handles POST /v1/analyses/batch.
func (h *AnalysisHandler) AnalyzeBatch(w http.ResponseWriter, r *http.Request) {
	var req dto.AnalyzeBatchRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.analyzeBatch.Execute(r.Context(), req)
	if err != nil {
		h.respondWithUseCaseError(r.Context(), w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, resp)
}

// GetAnalysis handles GET /v1/analyses/{id}.
func (h *AnalysisHandler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid analysis id")
		return
	}

	resp, err := h.getAnalysis.Execute(r.Context(), dto.GetAnalysisRequest{AnalysisID: id})
	if err != nil {
		h.respondWithUseCaseError(r.Context(), w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, resp)
}

// ListAnalyses handles GET /v1/accounts/{platform}/{handle}/analyses?limit=&offset=.
func (h *AnalysisHandler) ListAnalyses(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(w, r, "limit")
	if !ok {
		return
	}
	offset, ok := queryInt(w, r, "offset")
	if !ok {
		return
	}

	resp, err := h.listAnalyses.Execute(r.Context(), dto.ListAnalysesRequest{
		Handle:   chi.URLParam(r, "handle"),
		Platform: chi.URLParam(r, "platform"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		h.respondWithUseCaseError(r.Context(), w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, resp)
}

func (h *AnalysisHandler) respondWithUseCaseError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrInvalidRequest):
		respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, model.ErrAnalysisNotFound):
		respondWithError(w, http.StatusNotFound, "analysis not found")
	case errors.Is(err, usecase.ErrStorageDisabled):
		respondWithError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		respondWithError(w, http.StatusGatewayTimeout, "request timed out")
	default:
		h.logger.ErrorContext(ctx, "request failed", slog.String("error", err.Error()))
		respondWithError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func queryInt(w http.ResponseWriter, r *http.Request, key string) (int, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid "+key)
		return 0, false
	}
	return n, true
}

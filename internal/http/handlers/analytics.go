package handlers

import (
	"net/http"

	"brokerage-dashboard-service/internal/analytics"
	"brokerage-dashboard-service/pkg/response"

	"go.uber.org/zap"
)

// FinancialYearAnalytics serves the flattened, chart-ready view of one
// financial year. A year the upstream does not know yields data:null, not an
// error.
func (h *Handler) FinancialYearAnalytics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	financialYearID, err := readPathInt64(r, "financialYearId")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "financialYearId must be a number")
		return
	}

	cacheKey := analyticsCacheKey("analytics", financialYearID)
	if cached, ok := getAnalyticsCache(cacheKey); ok {
		response.Success(w, cached)
		return
	}

	raw, err := h.Brokerage.FinancialYearAnalytics(ctx, financialYearID)
	if err != nil {
		h.Logger.Error("analytics fetch failed", zap.Int64("financialYearId", financialYearID), zapError(err))
		response.Error(w, http.StatusBadGateway, "UPSTREAM_ERROR", "Failed to fetch analytics")
		return
	}

	transformed := analytics.Transform(raw)
	if transformed != nil {
		setAnalyticsCache(cacheKey, transformed, h.Config.AnalyticsCacheTTL)
	}
	response.Success(w, transformed)
}

// CompareFinancialYears serves the period-over-period deltas between two
// financial years. When either side has no data the comparison is null.
func (h *Handler) CompareFinancialYears(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	currentID, err := readPathInt64(r, "financialYearId")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "financialYearId must be a number")
		return
	}
	previousID, err := readPathInt64(r, "otherId")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "otherId must be a number")
		return
	}

	cacheKey := analyticsCacheKey("compare", currentID, previousID)
	if cached, ok := getAnalyticsCache(cacheKey); ok {
		response.Success(w, cached)
		return
	}

	currentRaw, err := h.Brokerage.FinancialYearAnalytics(ctx, currentID)
	if err != nil {
		h.Logger.Error("analytics fetch failed", zap.Int64("financialYearId", currentID), zapError(err))
		response.Error(w, http.StatusBadGateway, "UPSTREAM_ERROR", "Failed to fetch analytics")
		return
	}
	previousRaw, err := h.Brokerage.FinancialYearAnalytics(ctx, previousID)
	if err != nil {
		h.Logger.Error("analytics fetch failed", zap.Int64("financialYearId", previousID), zapError(err))
		response.Error(w, http.StatusBadGateway, "UPSTREAM_ERROR", "Failed to fetch analytics")
		return
	}

	comparison := analytics.Compare(analytics.Transform(currentRaw), analytics.Transform(previousRaw))
	if comparison != nil {
		setAnalyticsCache(cacheKey, comparison, h.Config.AnalyticsCacheTTL)
	}
	response.Success(w, comparison)
}

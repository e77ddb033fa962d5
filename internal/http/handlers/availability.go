package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"brokerage-dashboard-service/internal/availability"
	"brokerage-dashboard-service/pkg/response"
)

func (h *Handler) AvailabilityUsername(w http.ResponseWriter, r *http.Request) {
	h.checkAvailability(w, r, h.Availability.CheckUsername)
}

func (h *Handler) AvailabilityFirmName(w http.ResponseWriter, r *http.Request) {
	h.checkAvailability(w, r, h.Availability.CheckFirmName)
}

func (h *Handler) checkAvailability(w http.ResponseWriter, r *http.Request, check func(context.Context, string) (bool, error)) {
	value := strings.TrimSpace(r.URL.Query().Get("value"))

	available, err := check(r.Context(), value)
	if err != nil {
		if errors.Is(err, availability.ErrValueRequired) {
			response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "value is required")
			return
		}
		h.Logger.Error("availability check failed", zapError(err))
		response.Error(w, http.StatusBadGateway, "UPSTREAM_ERROR", "Failed to check availability")
		return
	}

	response.Success(w, map[string]any{
		"value":     availability.Normalize(value),
		"available": available,
	})
}

func (h *Handler) AvailabilitySuggestUsername(w http.ResponseWriter, r *http.Request) {
	base := strings.TrimSpace(r.URL.Query().Get("base"))

	suggestion, err := h.Availability.SuggestUsername(r.Context(), base)
	if err != nil {
		if errors.Is(err, availability.ErrValueRequired) {
			response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "base is required")
			return
		}
		response.Error(w, http.StatusConflict, "NO_SUGGESTION", err.Error())
		return
	}

	response.Success(w, map[string]any{"suggestion": suggestion})
}

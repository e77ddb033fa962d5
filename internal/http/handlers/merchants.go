package handlers

import (
	"net/http"

	"brokerage-dashboard-service/pkg/response"
)

func (h *Handler) MerchantsList(w http.ResponseWriter, r *http.Request) {
	merchants, err := h.Brokerage.Merchants(r.Context())
	if err != nil {
		h.Logger.Error("merchant list fetch failed", zapError(err))
		response.Error(w, http.StatusBadGateway, "UPSTREAM_ERROR", "Failed to fetch merchants")
		return
	}
	response.Success(w, merchants)
}

package handlers

import (
	"encoding/json"
	"net/http"

	"brokerage-dashboard-service/internal/bulkbill"
	"brokerage-dashboard-service/pkg/response"
)

type bulkBillRequest struct {
	SessionID       string  `json:"sessionId"`
	UserIDs         []int64 `json:"userIds"`
	FinancialYearID int64   `json:"financialYearId"`
	Format          string  `json:"format"`
}

// BulkBillsDownload resolves the selection (session takes precedence over an
// explicit id list), runs the single-slot download, and streams the archive
// as a browser attachment.
func (h *Handler) BulkBillsDownload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var payload bulkBillRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if payload.FinancialYearID == 0 {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "financialYearId is required")
		return
	}

	userIDs := payload.UserIDs
	if payload.SessionID != "" {
		workspace, ok, err := h.Sessions.Get(ctx, payload.SessionID)
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load session")
			return
		}
		if !ok {
			response.Error(w, http.StatusNotFound, "SESSION_NOT_FOUND", "Session not found or expired")
			return
		}
		userIDs = workspace.SelectedIDs()
	}

	archive, result := h.Downloader.Download(ctx, userIDs, payload.FinancialYearID, payload.Format)
	if !result.Success {
		switch result.Error {
		case bulkbill.MsgNoUsersSelected:
			response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", result.Error)
		case bulkbill.MsgDownloadInProgress:
			response.Error(w, http.StatusConflict, "DOWNLOAD_IN_PROGRESS", result.Error)
		default:
			response.Error(w, http.StatusBadGateway, "UPSTREAM_ERROR", result.Error)
		}
		return
	}

	w.Header().Set("X-Download-Message", result.Message)
	response.Attachment(w, archive.Filename, bulkbill.ContentType, archive.Data)
}

// BulkBillsStatus exposes the downloader's loading flag and last error.
func (h *Handler) BulkBillsStatus(w http.ResponseWriter, r *http.Request) {
	inFlight, lastErr := h.Downloader.Status()
	response.Success(w, map[string]any{
		"inFlight": inFlight,
		"error":    lastErr,
	})
}

func (h *Handler) BulkBillsClearError(w http.ResponseWriter, r *http.Request) {
	h.Downloader.ClearError()
	response.Success(w, map[string]any{"cleared": true})
}

package handlers

import (
	"encoding/json"
	"net/http"

	"brokerage-dashboard-service/internal/bulkops"
	"brokerage-dashboard-service/pkg/response"

	"go.uber.org/zap"
)

// BulkOpsSessionCreate loads the merchant list once and opens a selection
// workspace over it.
func (h *Handler) BulkOpsSessionCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	merchants, err := h.Brokerage.Merchants(ctx)
	if err != nil {
		h.Logger.Error("merchant list fetch failed", zapError(err))
		response.Error(w, http.StatusBadGateway, "UPSTREAM_ERROR", "Failed to fetch merchants")
		return
	}

	sessionID := bulkops.NewSessionID()
	if sessionID == "" {
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create session")
		return
	}

	workspace := bulkops.NewWorkspace(merchants)
	if err := h.Sessions.Put(ctx, sessionID, workspace); err != nil {
		h.Logger.Error("session store put failed", zap.String("sessionId", sessionID), zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create session")
		return
	}

	response.JSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"data":    workspaceView(sessionID, workspace),
	})
}

func (h *Handler) BulkOpsSessionGet(w http.ResponseWriter, r *http.Request) {
	sessionID := readPathString(r, "sessionId")

	workspace, ok, err := h.Sessions.Get(r.Context(), sessionID)
	if err != nil {
		h.Logger.Error("session store get failed", zap.String("sessionId", sessionID), zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load session")
		return
	}
	if !ok {
		response.Error(w, http.StatusNotFound, "SESSION_NOT_FOUND", "Session not found or expired")
		return
	}

	response.Success(w, workspaceView(sessionID, workspace))
}

type bulkOpsMutation struct {
	Action string `json:"action"`
	City   string `json:"city"`
	Search string `json:"search"`
	UserID int64  `json:"userId"`
}

// BulkOpsSessionPatch applies one selection mutation to the workspace and
// persists the result.
func (h *Handler) BulkOpsSessionPatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := readPathString(r, "sessionId")

	workspace, ok, err := h.Sessions.Get(ctx, sessionID)
	if err != nil {
		h.Logger.Error("session store get failed", zap.String("sessionId", sessionID), zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load session")
		return
	}
	if !ok {
		response.Error(w, http.StatusNotFound, "SESSION_NOT_FOUND", "Session not found or expired")
		return
	}

	var mutation bulkOpsMutation
	if err := json.NewDecoder(r.Body).Decode(&mutation); err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	switch mutation.Action {
	case "setCity":
		workspace.SetCity(mutation.City)
	case "setSearch":
		workspace.SetSearch(mutation.Search)
	case "select":
		workspace.Select(mutation.UserID)
	case "deselect":
		workspace.Deselect(mutation.UserID)
	case "toggleSelectAll":
		workspace.ToggleSelectAll()
	default:
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown action")
		return
	}

	if err := h.Sessions.Put(ctx, sessionID, workspace); err != nil {
		h.Logger.Error("session store put failed", zap.String("sessionId", sessionID), zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to save session")
		return
	}

	response.Success(w, workspaceView(sessionID, workspace))
}

func (h *Handler) BulkOpsSessionDelete(w http.ResponseWriter, r *http.Request) {
	sessionID := readPathString(r, "sessionId")

	if err := h.Sessions.Delete(r.Context(), sessionID); err != nil {
		h.Logger.Error("session store delete failed", zap.String("sessionId", sessionID), zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete session")
		return
	}
	response.Success(w, map[string]any{"deleted": true})
}

func workspaceView(sessionID string, workspace *bulkops.Workspace) map[string]any {
	return map[string]any{
		"sessionId": sessionID,
		"cities":    workspace.Cities(),
		"city":      workspace.City,
		"search":    workspace.Search,
		"merchants": workspace.FilteredMerchants(),
		"selected":  workspace.SelectedIDs(),
	}
}

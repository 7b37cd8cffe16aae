// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// AdminDependencies defines the interface for the administrative surface.
type AdminDependencies interface {
	Pause(ctx context.Context, caller string) error
	Unpause(ctx context.Context, caller string) error
	TransferOwnership(ctx context.Context, caller, newOwner string) error
}

// AdminHandler handles owner-gated administrative requests. The caller
// identity comes from the X-Stride-Caller header; the service decides
// whether it holds the capability.
type AdminHandler struct {
	deps AdminDependencies
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(deps AdminDependencies) *AdminHandler {
	return &AdminHandler{deps: deps}
}

type ownerRequest struct {
	NewOwner string `json:"new_owner"`
}

type adminResponse struct {
	Status string `json:"status"`
}

// HandleAdmin handles POST /admin/pause, /admin/unpause and /admin/owner.
func (h *AdminHandler) HandleAdmin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	caller := strings.TrimSpace(r.Header.Get(callerHeader))
	if caller == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	var err error
	action := strings.TrimPrefix(r.URL.Path, "/admin/")
	switch action {
	case "pause":
		err = h.deps.Pause(r.Context(), caller)
	case "unpause":
		err = h.deps.Unpause(r.Context(), caller)
	case "owner":
		var req ownerRequest
		if decodeErr := json.NewDecoder(r.Body).Decode(&req); decodeErr != nil {
			writeError(w, http.StatusBadRequest, "bad_request", decodeErr)
			return
		}
		if strings.TrimSpace(req.NewOwner) == "" {
			writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
			return
		}
		err = h.deps.TransferOwnership(r.Context(), caller, req.NewOwner)
	default:
		http.NotFound(w, r)
		return
	}
	if err != nil {
		writeRejection(w, err)
		return
	}
	writeJSON(w, http.StatusOK, adminResponse{Status: "ok"})
}

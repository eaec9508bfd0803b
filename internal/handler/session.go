package handler

import (
	"log/slog"
	"net/http"

	"github.com/dukerupert/familyquest/internal/app"
)

type SessionHandler struct {
	ctrl   *app.Controller
	logger *slog.Logger
}

func NewSessionHandler(ctrl *app.Controller, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{ctrl: ctrl, logger: logger}
}

func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	m, ok := h.ctrl.Active()
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"active": nil})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"active": m})
}

func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MemberID string `json:"memberId"`
	}
	if !decode(w, r, &req) {
		return
	}
	m, err := h.ctrl.Login(req.MemberID)
	if err != nil {
		writeControllerError(w, h.logger, "log in", err)
		return
	}
	h.logger.Info("member logged in", "member_id", m.ID, "role", m.Role)
	writeJSON(w, http.StatusOK, map[string]any{"active": m})
}

func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.ctrl.Logout()
	w.WriteHeader(http.StatusNoContent)
}

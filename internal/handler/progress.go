package handler

import (
	"net/http"

	"github.com/dukerupert/familyquest/internal/app"
	"github.com/dukerupert/familyquest/internal/model"
	"github.com/dukerupert/familyquest/internal/progress"
)

type ProgressHandler struct {
	ctrl *app.Controller
}

func NewProgressHandler(ctrl *app.Controller) *ProgressHandler {
	return &ProgressHandler{ctrl: ctrl}
}

func (h *ProgressHandler) ForMember(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.ctrl.Snapshot()
	if !ok {
		writeError(w, http.StatusConflict, app.ErrNoFamily.Error())
		return
	}
	m := model.FindMember(snap.Family.Members, r.PathValue("id"))
	if m == nil || !m.IsChild() {
		writeError(w, http.StatusNotFound, "child not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"points": m.Points,
		"level":  progress.LevelFor(m.Points),
		"daily":  progress.DailyFor(snap.Tasks, m.ID),
	})
}

func (h *ProgressHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.ctrl.Snapshot()
	if !ok {
		writeError(w, http.StatusConflict, app.ErrNoFamily.Error())
		return
	}
	board := progress.Leaderboard(snap.Family.Members)
	if board == nil {
		board = []model.Member{}
	}
	writeJSON(w, http.StatusOK, board)
}

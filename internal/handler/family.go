package handler

import (
	"log/slog"
	"net/http"

	"github.com/dukerupert/familyquest/internal/app"
	"github.com/dukerupert/familyquest/internal/model"
)

type FamilyHandler struct {
	ctrl   *app.Controller
	logger *slog.Logger
}

func NewFamilyHandler(ctrl *app.Controller, logger *slog.Logger) *FamilyHandler {
	return &FamilyHandler{ctrl: ctrl, logger: logger}
}

// Snapshot returns the whole family state. Before setup it answers
// {"ready": false} so a view knows to show the setup wizard.
func (h *FamilyHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.ctrl.Snapshot()
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"ready": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"ready":  true,
		"family": snap.Family,
		"tasks":  snap.Tasks,
	})
}

type setupRequest struct {
	FamilyName string `json:"familyName"`
	ParentName string `json:"parentName"`
	ChildName  string `json:"childName"`
}

func (h *FamilyHandler) Setup(w http.ResponseWriter, r *http.Request) {
	var req setupRequest
	if !decode(w, r, &req) {
		return
	}

	family, err := app.NewFamily(req.FamilyName, req.ParentName, req.ChildName)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.ctrl.Setup(family); err != nil {
		writeControllerError(w, h.logger, "set up family", err)
		return
	}
	h.logger.Info("family created", "family_id", family.ID)

	snap, _ := h.ctrl.Snapshot()
	writeJSON(w, http.StatusCreated, snap.Family)
}

type memberRequest struct {
	Name   string     `json:"name"`
	Role   model.Role `json:"role"`
	Avatar string     `json:"avatar"`
}

func (h *FamilyHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	var req memberRequest
	if !decode(w, r, &req) {
		return
	}
	m, err := h.ctrl.AddMember(req.Name, req.Role, req.Avatar)
	if err != nil {
		writeControllerError(w, h.logger, "add member", err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (h *FamilyHandler) Presets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"tasks":           model.TaskPresets,
		"timeSlots":       model.TimeSlotPresets,
		"dailyPlanPoints": model.DailyPlanPoints,
		"parentAvatars":   model.ParentAvatars,
		"childAvatars":    model.ChildAvatars,
	})
}

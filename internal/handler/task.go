package handler

import (
	"log/slog"
	"net/http"

	"github.com/dukerupert/familyquest/internal/app"
	"github.com/dukerupert/familyquest/internal/model"
	"github.com/dukerupert/familyquest/internal/task"
)

type TaskHandler struct {
	ctrl   *app.Controller
	logger *slog.Logger
}

func NewTaskHandler(ctrl *app.Controller, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{ctrl: ctrl, logger: logger}
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var d task.Draft
	if !decode(w, r, &d) {
		return
	}
	t, err := h.ctrl.AddTask(d)
	if err != nil {
		writeControllerError(w, h.logger, "create task", err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (h *TaskHandler) CreateBatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Tasks []task.Draft `json:"tasks"`
	}
	if !decode(w, r, &req) {
		return
	}
	created, err := h.ctrl.AddTasks(req.Tasks)
	if err != nil {
		writeControllerError(w, h.logger, "create tasks", err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

type planRequest struct {
	AssigneeID string `json:"assignedToId"`
	Items      []struct {
		Slot  model.TimeSlot `json:"slot"`
		Title string         `json:"title"`
	} `json:"items"`
}

// PublishPlan accepts preset titles per slot and publishes them as the
// child's daily plan.
func (h *TaskHandler) PublishPlan(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if !decode(w, r, &req) {
		return
	}

	items := make([]app.PlanItem, 0, len(req.Items))
	for _, it := range req.Items {
		p, ok := model.FindSlotPreset(it.Slot, it.Title)
		if !ok {
			writeError(w, http.StatusBadRequest, "unknown preset "+string(it.Slot)+"/"+it.Title)
			return
		}
		items = append(items, app.PlanItem{Slot: it.Slot, Preset: p})
	}

	created, err := h.ctrl.PublishDailyPlan(req.AssigneeID, items)
	if err != nil {
		writeControllerError(w, h.logger, "publish plan", err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *TaskHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var sub task.Submission
	if !decode(w, r, &sub) {
		return
	}
	t, err := h.ctrl.CompleteTask(r.PathValue("id"), sub)
	if err != nil {
		writeControllerError(w, h.logger, "submit task", err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// Verify closes a task. Without an explicit points value the task's own
// pointsReward is credited.
func (h *TaskHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var v task.Verdict
	if !decode(w, r, &v) {
		return
	}
	t, err := h.ctrl.VerifyTask(r.PathValue("id"), v)
	if err != nil {
		writeControllerError(w, h.logger, "verify task", err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.ctrl.DeleteTask(r.PathValue("id")); err != nil {
		writeControllerError(w, h.logger, "delete task", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TaskHandler) ClearProof(w http.ResponseWriter, r *http.Request) {
	if err := h.ctrl.ClearMemory(r.PathValue("id")); err != nil {
		writeControllerError(w, h.logger, "clear proof", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Waiting lists every task a parent still has to review.
func (h *TaskHandler) Waiting(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.ctrl.Snapshot()
	if !ok {
		writeError(w, http.StatusConflict, app.ErrNoFamily.Error())
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(task.WithStatus(snap.Tasks, model.StatusWaitingVerification)))
}

// ForMember returns the task lists of one child's board.
func (h *TaskHandler) ForMember(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.ctrl.Snapshot()
	if !ok {
		writeError(w, http.StatusConflict, app.ErrNoFamily.Error())
		return
	}
	id := r.PathValue("id")
	if model.FindMember(snap.Family.Members, id) == nil {
		writeError(w, http.StatusNotFound, "member not found")
		return
	}

	mine := task.AssignedTo(snap.Tasks, id)
	writeJSON(w, http.StatusOK, map[string]any{
		"pending": orEmpty(task.PendingSingle(mine)),
		"waiting": orEmpty(task.WithStatus(mine, model.StatusWaitingVerification)),
		"failed":  orEmpty(task.WithStatus(mine, model.StatusFailed)),
		"history": orEmpty(task.History(mine)),
	})
}

func orEmpty(tasks []model.Task) []model.Task {
	if tasks == nil {
		return []model.Task{}
	}
	return tasks
}

// Package handler exposes the controller's intents as a JSON API for the
// family board views.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dukerupert/familyquest/internal/app"
	"github.com/dukerupert/familyquest/internal/backup"
	"github.com/dukerupert/familyquest/internal/reward"
	"github.com/dukerupert/familyquest/internal/task"
)

const maxBodyBytes = 32 << 20 // proofs arrive as data URLs

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return false
	}
	return true
}

// statusFor maps a controller error to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, task.ErrTaskNotFound),
		errors.Is(err, reward.ErrRewardNotFound),
		errors.Is(err, app.ErrMemberNotFound):
		return http.StatusNotFound
	case errors.Is(err, task.ErrInvalidTransition),
		errors.Is(err, app.ErrFamilyExists),
		errors.Is(err, app.ErrNoFamily):
		return http.StatusConflict
	case errors.Is(err, app.ErrNoActiveMember):
		return http.StatusUnauthorized
	case errors.Is(err, app.ErrNotParent):
		return http.StatusForbidden
	case errors.Is(err, task.ErrInvalidInput),
		errors.Is(err, task.ErrAssigneeNotChild),
		errors.Is(err, task.ErrEmptyBatch),
		errors.Is(err, reward.ErrInvalidReward),
		errors.Is(err, app.ErrInvalidFamily),
		errors.Is(err, app.ErrInvalidMember),
		errors.Is(err, app.ErrInsufficientPoints),
		errors.Is(err, backup.ErrPassphrase),
		errors.Is(err, backup.ErrFormat),
		errors.Is(err, backup.ErrVersion):
		return http.StatusBadRequest
	case errors.Is(err, backup.ErrDecrypt):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// writeControllerError answers with the mapped status. Storage failures
// are logged here and hidden from the client.
func writeControllerError(w http.ResponseWriter, logger *slog.Logger, action string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error("request failed", "action", action, "error", err)
		writeError(w, status, "failed to "+action)
		return
	}
	writeError(w, status, err.Error())
}

package handler

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/dukerupert/familyquest/internal/app"
	"github.com/dukerupert/familyquest/internal/backup"
)

const maxArchiveBytes = 64 << 20

type BackupHandler struct {
	ctrl   *app.Controller
	logger *slog.Logger
	now    func() time.Time
}

func NewBackupHandler(ctrl *app.Controller, logger *slog.Logger) *BackupHandler {
	return &BackupHandler{ctrl: ctrl, logger: logger, now: time.Now}
}

// Export streams the encrypted archive as a download.
func (h *BackupHandler) Export(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Passphrase string `json:"passphrase"`
	}
	if !decode(w, r, &req) {
		return
	}
	snap, ok := h.ctrl.Snapshot()
	if !ok {
		writeError(w, http.StatusConflict, app.ErrNoFamily.Error())
		return
	}

	now := h.now()
	archive, err := backup.Export(snap, req.Passphrase, now)
	if err != nil {
		writeControllerError(w, h.logger, "export backup", err)
		return
	}
	h.logger.Info("backup exported", "family_id", snap.Family.ID, "bytes", len(archive))

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="familyquest-%s.fqbak"`, now.Format("20060102-150405")))
	w.WriteHeader(http.StatusOK)
	w.Write(archive)
}

// Import takes a multipart form with "archive" and "passphrase" and
// replaces the whole family state with the archive's snapshot.
func (h *BackupHandler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxArchiveBytes)
	if err := r.ParseMultipartForm(maxArchiveBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid upload")
		return
	}
	f, _, err := r.FormFile("archive")
	if err != nil {
		writeError(w, http.StatusBadRequest, "archive file is required")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read archive")
		return
	}

	snap, err := backup.Import(data, r.FormValue("passphrase"))
	if err != nil {
		h.logger.Warn("backup import rejected", "error", err)
		writeControllerError(w, h.logger, "import backup", err)
		return
	}
	if err := h.ctrl.Restore(snap); err != nil {
		writeControllerError(w, h.logger, "restore backup", err)
		return
	}
	h.logger.Info("backup restored", "family_id", snap.Family.ID, "tasks", len(snap.Tasks))

	restored, _ := h.ctrl.Snapshot()
	writeJSON(w, http.StatusOK, restored.Family)
}

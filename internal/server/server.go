package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/dukerupert/familyquest/internal/app"
	"github.com/dukerupert/familyquest/internal/handler"
	"github.com/dukerupert/familyquest/internal/middleware"
	ws "github.com/dukerupert/familyquest/internal/websocket"
)

const (
	passphraseAttempts = 5
	passphraseWindow   = time.Minute
	cleanupInterval    = 10 * time.Minute
)

type Server struct {
	ctrl        *app.Controller
	hub         *ws.Hub
	familyH     *handler.FamilyHandler
	sessionH    *handler.SessionHandler
	taskH       *handler.TaskHandler
	rewardH     *handler.RewardHandler
	progressH   *handler.ProgressHandler
	backupH     *handler.BackupHandler
	rateLimiter *middleware.RateLimiter
	logger      *slog.Logger
}

// New wires the HTTP surface to ctrl. Every change ctrl commits is
// announced on the websocket hub.
func New(ctrl *app.Controller, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))
	ctrl.Subscribe(hub.Relay)

	return &Server{
		ctrl:        ctrl,
		hub:         hub,
		familyH:     handler.NewFamilyHandler(ctrl, logger.With("component", "family")),
		sessionH:    handler.NewSessionHandler(ctrl, logger.With("component", "session")),
		taskH:       handler.NewTaskHandler(ctrl, logger.With("component", "task")),
		rewardH:     handler.NewRewardHandler(ctrl, logger.With("component", "reward")),
		progressH:   handler.NewProgressHandler(ctrl),
		backupH:     handler.NewBackupHandler(ctrl, logger.With("component", "backup")),
		rateLimiter: middleware.NewRateLimiter(passphraseAttempts, passphraseWindow),
		logger:      logger,
	}
}

func (s *Server) Hub() *ws.Hub {
	return s.hub
}

// RunCleanup drops expired rate-limit windows until ctx ends.
func (s *Server) RunCleanup(ctx context.Context) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.rateLimiter.Cleanup()
		}
	}
}

func (s *Server) Router() http.Handler {
	outer := http.NewServeMux()
	outer.HandleFunc("GET /ws", ws.Handler(s.hub, s.logger.With("component", "websocket")))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.healthHandler)

	mux.HandleFunc("GET /api/snapshot", s.familyH.Snapshot)
	mux.HandleFunc("POST /api/setup", s.familyH.Setup)
	mux.HandleFunc("POST /api/members", s.familyH.AddMember)
	mux.HandleFunc("GET /api/presets", s.familyH.Presets)

	mux.HandleFunc("GET /api/session", s.sessionH.Get)
	mux.HandleFunc("POST /api/session", s.sessionH.Login)
	mux.HandleFunc("DELETE /api/session", s.sessionH.Logout)

	mux.HandleFunc("POST /api/tasks", s.taskH.Create)
	mux.HandleFunc("POST /api/tasks/batch", s.taskH.CreateBatch)
	mux.HandleFunc("GET /api/tasks/waiting", s.taskH.Waiting)
	mux.HandleFunc("POST /api/tasks/{id}/submit", s.taskH.Submit)
	mux.HandleFunc("POST /api/tasks/{id}/verify", s.taskH.Verify)
	mux.HandleFunc("DELETE /api/tasks/{id}", s.taskH.Delete)
	mux.HandleFunc("DELETE /api/tasks/{id}/proof", s.taskH.ClearProof)
	mux.HandleFunc("POST /api/plans", s.taskH.PublishPlan)
	mux.HandleFunc("GET /api/members/{id}/tasks", s.taskH.ForMember)

	mux.HandleFunc("GET /api/rewards", s.rewardH.List)
	mux.HandleFunc("POST /api/rewards", s.rewardH.Create)
	mux.HandleFunc("DELETE /api/rewards/{id}", s.rewardH.Delete)
	mux.HandleFunc("POST /api/rewards/{id}/redeem", s.rewardH.Redeem)

	mux.HandleFunc("GET /api/members/{id}/progress", s.progressH.ForMember)
	mux.HandleFunc("GET /api/leaderboard", s.progressH.Leaderboard)

	limited := middleware.RateLimit(s.rateLimiter)
	mux.Handle("POST /api/backup/export", limited(http.HandlerFunc(s.backupH.Export)))
	mux.Handle("POST /api/backup/import", limited(http.HandlerFunc(s.backupH.Import)))

	outer.Handle("/", middleware.RequestLogger(s.logger.With("component", "http"))(mux))
	return outer
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	if !s.ctrl.Ready() {
		status = "setup"
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"` + status + `"}` + "\n"))
}

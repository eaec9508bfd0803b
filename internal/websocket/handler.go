package websocket

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	ws "github.com/coder/websocket"
)

// Handler upgrades GET /ws and streams hub changes to the view.
func Handler(hub *Hub, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := ws.Accept(w, r, &ws.AcceptOptions{
			InsecureSkipVerify: true, // family devices on the home LAN
		})
		if err != nil {
			logger.Warn("websocket accept failed", "remote", r.RemoteAddr, "error", err)
			return
		}

		err = NewClient(hub, conn).Run(r.Context())
		switch {
		case err == nil, errors.Is(err, context.Canceled):
		case ws.CloseStatus(err) == ws.StatusNormalClosure, ws.CloseStatus(err) == ws.StatusGoingAway:
		default:
			logger.Debug("view disconnected", "remote", r.RemoteAddr, "error", err)
		}
	}
}

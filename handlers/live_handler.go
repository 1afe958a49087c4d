package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/riftbook/stats-system/live"
	"github.com/riftbook/stats-system/middleware"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The feed carries only the caller's own data and the token is
		// checked before upgrading, so any origin may connect.
		return true
	},
}

type LiveHandler struct {
	hub *live.Hub
}

func NewLiveHandler(hub *live.Hub) *LiveHandler {
	return &LiveHandler{hub: hub}
}

// ServeFeed upgrades the connection and joins the caller's event room.
// Browsers cannot set an Authorization header on websocket requests, so
// the auth middleware also accepts a token query parameter here.
func (h *LiveHandler) ServeFeed(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("failed to upgrade websocket connection", slog.Any("error", err))
		return
	}

	client := live.NewClient(h.hub, conn, user.ID)
	go client.WritePump()
	go client.ReadPump()
}

package live

import (
	"log/slog"
	"net/http"
	"slices"

	"github.com/gorilla/websocket"
)

// Handler upgrades requests and attaches them to the room returned by
// roomOf. An empty room is answered with 400.
func (h *Hub) Handler(allowedOrigins []string, roomOf func(*http.Request) string) http.HandlerFunc {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || slices.Contains(allowedOrigins, "*") || slices.Contains(allowedOrigins, origin)
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		room := roomOf(r)
		if room == "" {
			http.Error(w, "missing room", http.StatusBadRequest)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.Warn("failed to upgrade websocket connection", "room", room, "error", err)
			return
		}
		h.Attach(conn, room)
	}
}

package ws

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	auth "github.com/matchpoint-gg/matchpoint/internal/auth/middleware"
	"github.com/matchpoint-gg/matchpoint/internal/user"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Same-origin policy is enforced by CORS on the API; the socket
		// carries its own token.
		return true
	},
}

// Handler upgrades GET /ws?token=... and keeps the connection registered
// under its owner for the lifetime of the socket. The first connection
// marks the owner live; the last one leaving clears it.
func Handler(hub *Hub, authSvc *auth.AuthService, users user.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := authSvc.ParseUserID(r.URL.Query().Get("token"))
		if err != nil {
			http.Error(w, "bad token", http.StatusUnauthorized)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("ws: upgrade: %v", err)
			return
		}
		c := newClient(conn)
		hub.Register(ownerID, c)
		setLive(users, ownerID, true)

		defer func() {
			hub.Unregister(ownerID, c)
			_ = c.Close()
			if hub.Count(ownerID) == 0 {
				setLive(users, ownerID, false)
			}
		}()

		// Inbound frames are not part of the protocol; read only to detect
		// close and keep control frames flowing.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}
}

func setLive(users user.Store, ownerID int64, live bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := users.SetLive(ctx, ownerID, live); err != nil {
		log.Printf("ws: set live=%v for user %d: %v", live, ownerID, err)
	}
}

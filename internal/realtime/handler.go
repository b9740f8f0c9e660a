package realtime

import (
	"errors"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/stormvale/vocation-engine/internal/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  readBufferSize,
	WriteBufferSize: writeBufferSize,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Handler authenticates and upgrades websocket connections. The connection
// token is verified before the upgrade so a bad token gets a proper 401
// instead of a dropped socket.
func Handler(hub *Hub, issuer *TokenIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		token := r.URL.Query().Get("token")
		if token == "" {
			http.Error(w, "missing token", http.StatusUnauthorized)
			return
		}

		playerID, err := issuer.Verify(token)
		if err != nil {
			if errors.Is(err, ErrExpiredToken) {
				http.Error(w, "token expired", http.StatusUnauthorized)
			} else {
				http.Error(w, "invalid token", http.StatusUnauthorized)
			}
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade already wrote the error response.
			log.Debug("Websocket upgrade failed", "error", err)
			return
		}

		client := newClient(playerID, conn)
		hub.register(client)
		log.Info("Realtime client connected", "playerID", playerID)

		go client.writePump(hub)
		go client.readPump(hub)
	}
}

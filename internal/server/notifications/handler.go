package notifications

import (
	"net/http"

	ws "github.com/coder/websocket"
	"github.com/dmitrijs2005/housekeeper/internal/common"
)

// TokenVerifier resolves an access token to a user id.
type TokenVerifier func(token string) (string, error)

// Handler upgrades GET /ws?access_token=... to a WebSocket bound to the
// token's user.
func (h *Hub) Handler(verify TokenVerifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get(common.AccessTokenHeaderName)
		if token == "" {
			http.Error(w, "missing token", http.StatusUnauthorized)
			return
		}
		userID, err := verify(token)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		conn, err := ws.Accept(w, r, &ws.AcceptOptions{InsecureSkipVerify: true})
		if err != nil {
			h.logger.Warn(r.Context(), "websocket accept failed", "error", err)
			return
		}
		defer conn.CloseNow()

		h.logger.Debug(r.Context(), "client connected", "user", userID)
		NewClient(h, userID, conn).Run(r.Context())
		h.logger.Debug(r.Context(), "client disconnected", "user", userID)
	}
}

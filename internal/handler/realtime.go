package handler

import (
	"net/http"

	"github.com/stormvale/vocation-engine/internal/logger"
	"github.com/stormvale/vocation-engine/internal/realtime"
)

// ConnectionTokenRequest is the body for POST /realtime/token
type ConnectionTokenRequest struct {
	PlayerID string `json:"player_id" validate:"required,uuid"`
}

// ConnectionTokenResponse carries a short-lived token for the websocket
// endpoint.
type ConnectionTokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in_seconds"`
}

// HandleGetConnectionToken issues a short-lived token the client presents
// when opening the realtime websocket.
func HandleGetConnectionToken(issuer *realtime.TokenIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ConnectionTokenRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Connection token"); err != nil {
			return
		}

		token, err := issuer.Issue(req.PlayerID)
		if err != nil {
			logger.FromContext(r.Context()).Error(ErrMsgIssueTokenFailed, "playerID", req.PlayerID, "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgIssueTokenFailed)
			return
		}

		respondJSON(w, http.StatusOK, ConnectionTokenResponse{
			Token:     token,
			ExpiresIn: int(issuer.TTL().Seconds()),
		})
	}
}

package handler

import (
	"net/http"

	"github.com/stormvale/vocation-engine/internal/logger"
	"github.com/stormvale/vocation-engine/internal/vocation"
)

// StartActivityRequest is the body for POST /vocation/start
type StartActivityRequest struct {
	PlayerID        string  `json:"player_id" validate:"required,uuid"`
	ResourceID      int     `json:"resource_id" validate:"required,min=1"`
	LocationID      *int    `json:"location_id,omitempty"`
	DurationSeconds int     `json:"duration_seconds,omitempty" validate:"gte=0"`
	Replace         bool    `json:"replace,omitempty"`
	BaitInstanceID  *string `json:"bait_instance_id,omitempty"`
}

// StopActivityRequest is the body for POST /vocation/stop
type StopActivityRequest struct {
	PlayerID string `json:"player_id" validate:"required,uuid"`
}

// ClaimRequest is the body for POST /vocation/claim
type ClaimRequest struct {
	PlayerID string `json:"player_id" validate:"required,uuid"`
	MaxUnits int    `json:"max_units,omitempty" validate:"gte=0"`
}

// HandleStartActivity begins a vocational activity for a player.
func HandleStartActivity(svc vocation.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req StartActivityRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Start activity"); err != nil {
			return
		}

		status, err := svc.Start(r.Context(), vocation.StartParams{
			PlayerID:        req.PlayerID,
			ResourceID:      req.ResourceID,
			LocationID:      req.LocationID,
			DurationSeconds: req.DurationSeconds,
			Replace:         req.Replace,
			BaitInstanceID:  req.BaitInstanceID,
		})
		if err != nil {
			logger.FromContext(r.Context()).Error(ErrMsgStartActivityFailed, "playerID", req.PlayerID, "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusCreated, status)
	}
}

// HandleStopActivity claims earned rewards and ends the activity.
func HandleStopActivity(svc vocation.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req StopActivityRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Stop activity"); err != nil {
			return
		}

		result, err := svc.Stop(r.Context(), req.PlayerID)
		if err != nil {
			logger.FromContext(r.Context()).Error(ErrMsgStopActivityFailed, "playerID", req.PlayerID, "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Message: MsgActivityStopped, Data: result})
	}
}

// HandleClaim settles due units without stopping the activity.
func HandleClaim(svc vocation.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ClaimRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Claim"); err != nil {
			return
		}

		result, err := svc.Claim(r.Context(), req.PlayerID, req.MaxUnits)
		if err != nil {
			logger.FromContext(r.Context()).Error(ErrMsgClaimFailed, "playerID", req.PlayerID, "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, result)
	}
}

// HandleGetActivityStatus reports the player's activity, settling due units
// on the way.
func HandleGetActivityStatus(svc vocation.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, ok := requireQueryParam(w, r, "player_id")
		if !ok {
			return
		}

		status, err := svc.Status(r.Context(), playerID)
		if err != nil {
			logger.FromContext(r.Context()).Error(ErrMsgGetStatusFailed, "playerID", playerID, "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, status)
	}
}

// HandleListResources exposes the resource catalog.
func HandleListResources(svc vocation.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resources, err := svc.ListResources(r.Context())
		if err != nil {
			logger.FromContext(r.Context()).Error(ErrMsgListResourcesFailed, "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: resources})
	}
}

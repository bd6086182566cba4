package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-fit-sync/internal/app"
	"github.com/MKhiriev/go-fit-sync/internal/logger"
	"github.com/MKhiriev/go-fit-sync/internal/utils"
	"github.com/MKhiriev/go-fit-sync/models"
)

func (h *Handler) push(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, role, err := identityFromRequest(r)
	if err != nil {
		log.Err(err).Str("func", "*Handler.push").Send()
		utils.WriteError(w, app.MsgNoUserIDProvided, http.StatusUnauthorized)
		return
	}

	var req models.PushRequest
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.push").Msg("invalid JSON was passed")
		utils.WriteError(w, fmt.Sprintf("%s: %v", app.MsgInvalidDataProvided, err), http.StatusBadRequest)
		return
	}

	resp, err := h.services.SyncService.Push(ctx, userID, role, req)
	if err != nil {
		log.Err(err).Str("func", "*Handler.push").Str("push_id", req.PushID).Msg("push failed")
		writeServiceError(w, err)
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) pull(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, role, err := identityFromRequest(r)
	if err != nil {
		log.Err(err).Str("func", "*Handler.pull").Send()
		utils.WriteError(w, app.MsgNoUserIDProvided, http.StatusUnauthorized)
		return
	}

	var req models.PullRequest
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.pull").Msg("invalid JSON was passed")
		utils.WriteError(w, fmt.Sprintf("%s: %v", app.MsgInvalidDataProvided, err), http.StatusBadRequest)
		return
	}

	resp, err := h.services.SyncService.Pull(ctx, userID, role, req)
	if err != nil {
		log.Err(err).Str("func", "*Handler.pull").Int64("cursor", req.Cursor).Msg("pull failed")
		writeServiceError(w, err)
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

func identityFromRequest(r *http.Request) (string, models.Role, error) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok || userID == "" {
		return "", "", ErrNoIdentity
	}
	role, ok := utils.GetRoleFromContext(r.Context())
	if !ok {
		return "", "", ErrNoIdentity
	}
	return userID, role, nil
}

func writeServiceError(w http.ResponseWriter, err error) {
	status := statusFromError(err)
	utils.WriteError(w, messageFromError(err, status), status)
}

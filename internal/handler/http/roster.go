package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-fit-sync/internal/app"
	"github.com/MKhiriev/go-fit-sync/internal/logger"
	"github.com/MKhiriev/go-fit-sync/internal/utils"
)

func (h *Handler) listRoster(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, role, err := identityFromRequest(r)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listRoster").Send()
		utils.WriteError(w, app.MsgNoUserIDProvided, http.StatusUnauthorized)
		return
	}

	entries, err := h.services.RosterService.List(r.Context(), userID, role)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listRoster").Msg("error listing roster")
		writeServiceError(w, err)
		return
	}

	utils.WriteJSON(w, entries, http.StatusOK)
}

func (h *Handler) enrollAthlete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, role, err := identityFromRequest(r)
	if err != nil {
		log.Err(err).Str("func", "*Handler.enrollAthlete").Send()
		utils.WriteError(w, app.MsgNoUserIDProvided, http.StatusUnauthorized)
		return
	}

	athleteID := chi.URLParam(r, "athleteID")
	entry, err := h.services.RosterService.Enroll(r.Context(), userID, role, athleteID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.enrollAthlete").Str("athlete_id", athleteID).Msg("error enrolling athlete")
		writeServiceError(w, err)
		return
	}

	utils.WriteJSON(w, entry, http.StatusOK)
}

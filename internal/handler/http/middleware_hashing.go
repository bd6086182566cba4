package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/MKhiriev/go-fit-sync/internal/app"
	"github.com/MKhiriev/go-fit-sync/internal/logger"
	"github.com/MKhiriev/go-fit-sync/internal/utils"
	"github.com/MKhiriev/go-fit-sync/models"
)

// pushHashing checks the HMAC the client computed over the JSON encoding of
// the batch records. It is a no-op when no hash key is configured.
func (h *Handler) pushHashing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.hasher == nil {
			next.ServeHTTP(w, r)
			return
		}

		log := logger.FromRequest(r)

		body, err := io.ReadAll(r.Body)
		if err != nil {
			log.Err(err).Str("func", "*Handler.pushHashing").Msg("failed to read request body")
			utils.WriteError(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))

		var req struct {
			Records []models.ChangeRecord `json:"records"`
			Hash    string                `json:"hash"`
		}
		if err = json.Unmarshal(body, &req); err != nil {
			log.Err(err).Str("func", "*Handler.pushHashing").Msg("failed to decode JSON")
			utils.WriteError(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
			return
		}

		records, err := json.Marshal(req.Records)
		if err != nil {
			log.Err(err).Str("func", "*Handler.pushHashing").Msg("failed to marshal records")
			utils.WriteError(w, app.MsgInternalServerError, http.StatusInternalServerError)
			return
		}

		if req.Hash == "" || !h.hasher.Verify(records, req.Hash) {
			log.Error().Str("func", "*Handler.pushHashing").
				Str("hash from request", req.Hash).
				Msg("hashes are not equal")
			utils.WriteError(w, app.MsgIntegrityCheckFailed, http.StatusBadRequest)
			return
		}

		next.ServeHTTP(w, r)
	})
}

package http

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-fit-sync/internal/logger"
)

// withLogging writes one access log entry per request. Error responses are
// logged at warn level together with their body.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)
		start := time.Now()

		lw := &responseWriter{ResponseWriter: w}
		next.ServeHTTP(lw, r)

		data := lw.data()

		var event *zerolog.Event
		if data.status >= http.StatusBadRequest {
			event = log.Warn().Bytes("body", data.body)
		} else {
			event = log.Info()
		}

		event.
			Str("uri", r.RequestURI).
			Str("method", r.Method).
			Int("status", data.status).
			Dur("duration", time.Since(start)).
			Int("size", data.size).
			Send()
	})
}

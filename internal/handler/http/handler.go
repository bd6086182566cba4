package http

import (
	"time"

	"github.com/MKhiriev/go-fit-sync/internal/logger"
	"github.com/MKhiriev/go-fit-sync/internal/service"
	"github.com/MKhiriev/go-fit-sync/internal/utils"
)

type Handler struct {
	services *service.Services
	// hasher verifies push batch hashes. Nil disables the check.
	hasher         *utils.Hasher
	requestTimeout time.Duration

	logger *logger.Logger
}

// NewHandler builds the HTTP handler. An empty hashKey disables the batch
// integrity check; a non-positive requestTimeout disables the per-request
// deadline.
func NewHandler(services *service.Services, hashKey string, requestTimeout time.Duration, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")

	h := &Handler{
		services:       services,
		requestTimeout: requestTimeout,
		logger:         logger,
	}
	if hashKey != "" {
		h.hasher = utils.NewHasher(hashKey)
	}
	return h
}

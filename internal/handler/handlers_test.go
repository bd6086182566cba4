package handler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-fit-sync/internal/config"
	"github.com/MKhiriev/go-fit-sync/internal/logger"
	"github.com/MKhiriev/go-fit-sync/internal/service"
)

func TestNewHandlers(t *testing.T) {
	cfg := config.StructuredConfig{
		App:    config.App{HashKey: "batch-key"},
		Server: config.Server{HTTPAddress: ":8080", RequestTimeout: time.Second},
	}

	h, err := NewHandlers(&service.Services{}, cfg, logger.Nop())
	require.NoError(t, err)
	require.NotNil(t, h.HTTP)
	assert.NotNil(t, h.HTTP.Init())
}

func TestNewHandlers_NoAddress(t *testing.T) {
	h, err := NewHandlers(&service.Services{}, config.StructuredConfig{}, logger.Nop())
	assert.Nil(t, h)
	assert.ErrorIs(t, err, errNoHandlersAreCreated)
}

package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-fit-sync/internal/app"
	"github.com/MKhiriev/go-fit-sync/internal/service"
	"github.com/MKhiriev/go-fit-sync/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrTokenIsExpired:          http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrTrainerOnly:             http.StatusForbidden,
	service.ErrUnknownRole:             http.StatusForbidden,
	service.ErrVersionIsNotSpecified:   http.StatusInternalServerError,

	store.ErrRowNotFound:   http.StatusNotFound,
	store.ErrInvalidRow:    http.StatusBadRequest,
	store.ErrOwnerMismatch: http.StatusConflict,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
	store.ErrEncodingPayload:      http.StatusInternalServerError,

	context.DeadlineExceeded: http.StatusServiceUnavailable,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// messageFromError returns the message written into the error body. Client
// errors carry the error text, which starts with the matching app message;
// server errors never leak details.
func messageFromError(err error, status int) string {
	switch {
	case errors.Is(err, service.ErrTokenIsExpired):
		return app.MsgTokenIsExpired
	case errors.Is(err, service.ErrTokenIsExpiredOrInvalid):
		return app.MsgTokenIsExpiredOrInvalid
	case errors.Is(err, service.ErrTrainerOnly):
		return app.MsgTrainerOnly
	case errors.Is(err, service.ErrUnknownRole):
		return app.MsgUnknownRole
	case errors.Is(err, service.ErrVersionIsNotSpecified):
		return app.MsgVersionIsNotSpecified
	case status == http.StatusServiceUnavailable:
		return app.MsgServiceUnavailable
	case status >= http.StatusInternalServerError:
		return app.MsgInternalServerError
	}
	return err.Error()
}

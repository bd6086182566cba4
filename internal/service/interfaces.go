package service

import (
	"context"

	"github.com/MKhiriev/go-fit-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// SyncService is the server half of the push/pull protocol. Callers pass
// the identity from a verified token; the scope is resolved here.
type SyncService interface {
	Push(ctx context.Context, userID string, role models.Role, req models.PushRequest) (models.PushResponse, error)
	Pull(ctx context.Context, userID string, role models.Role, req models.PullRequest) (models.PullResponse, error)
}

type AuthService interface {
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type RosterService interface {
	List(ctx context.Context, trainerID string, role models.Role) ([]models.RosterEntry, error)
	Enroll(ctx context.Context, trainerID string, role models.Role, athleteID string) (models.RosterEntry, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}

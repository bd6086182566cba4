// Package utils holds small helpers shared by the server and the client:
// request identity in context, HMAC hashing, JSON responses, the resty
// client constructor, JWT handling and id generation.
package utils

import (
	"context"

	"github.com/MKhiriev/go-fit-sync/models"
)

// contextKey is a private type for context keys.
type contextKey string

func (c contextKey) String() string {
	return string(c)
}

var (
	// UserIDCtxKey holds the authenticated user id (string).
	UserIDCtxKey = contextKey("userID")
	// RoleCtxKey holds the authenticated [models.Role].
	RoleCtxKey = contextKey("role")
)

// WithIdentity stores the authenticated user id and role in ctx.
func WithIdentity(ctx context.Context, userID string, role models.Role) context.Context {
	ctx = context.WithValue(ctx, UserIDCtxKey, userID)
	return context.WithValue(ctx, RoleCtxKey, role)
}

// GetUserIDFromContext returns the user id stored by [WithIdentity].
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(string)
	return userID, ok && userID != ""
}

// GetRoleFromContext returns the role stored by [WithIdentity].
func GetRoleFromContext(ctx context.Context) (models.Role, bool) {
	role, ok := ctx.Value(RoleCtxKey).(models.Role)
	return role, ok && role.Valid()
}

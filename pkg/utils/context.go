package utils

import (
	"context"

	"github.com/google/uuid"
)

type identityKey struct{}

// Identity is the authenticated caller attached to a request context.
type Identity struct {
	UserID uuid.UUID
	Role   string
	Token  string
}

func SetIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// SetUserContext attaches a caller without a session token.
func SetUserContext(ctx context.Context, userID uuid.UUID, role string) context.Context {
	id, _ := IdentityFromContext(ctx)
	id.UserID, id.Role = userID, role
	return SetIdentity(ctx, id)
}

func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := IdentityFromContext(ctx)
	if !ok || id.UserID == uuid.Nil {
		return uuid.Nil, false
	}
	return id.UserID, true
}

func GetRoleFromContext(ctx context.Context) (string, bool) {
	id, ok := IdentityFromContext(ctx)
	if !ok || id.Role == "" {
		return "", false
	}
	return id.Role, true
}

func GetTokenFromContext(ctx context.Context) (string, bool) {
	id, ok := IdentityFromContext(ctx)
	if !ok || id.Token == "" {
		return "", false
	}
	return id.Token, true
}

package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	ClientIDKey contextKey = "client_id"
	RoleKey     contextKey = "role"
)

const (
	RoleClient       = "client"
	RoleSupportAgent = "support_agent"
)

func GetClientIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	clientIDVal := ctx.Value(ClientIDKey)
	if clientIDVal == nil {
		return uuid.Nil, false
	}

	clientIDStr, ok := clientIDVal.(string)
	if !ok {
		return uuid.Nil, false
	}

	clientID, err := uuid.Parse(clientIDStr)
	if err != nil {
		return uuid.Nil, false
	}

	return clientID, true
}

func GetRoleFromContext(ctx context.Context) (string, bool) {
	roleVal := ctx.Value(RoleKey)
	if roleVal == nil {
		return "", false
	}

	role, ok := roleVal.(string)
	return role, ok
}

// IsSupportAgent reports whether the request carries the staff role.
func IsSupportAgent(ctx context.Context) bool {
	role, ok := GetRoleFromContext(ctx)
	return ok && role == RoleSupportAgent
}

func SetIdentityContext(ctx context.Context, clientID uuid.UUID, role string) context.Context {
	ctx = context.WithValue(ctx, ClientIDKey, clientID.String())
	ctx = context.WithValue(ctx, RoleKey, role)
	return ctx
}

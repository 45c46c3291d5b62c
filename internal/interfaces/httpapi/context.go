package httpapi

import (
	"context"

	"github.com/riskibarqy/tournament-hub/internal/domain/user"
)

type contextKey string

const (
	principalContextKey contextKey = "auth_principal"
	adminContextKey     contextKey = "auth_admin"
)

func withPrincipal(ctx context.Context, p user.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

func principalFromContext(ctx context.Context) (user.Principal, bool) {
	p, ok := ctx.Value(principalContextKey).(user.Principal)
	return p, ok
}

func withAdmin(ctx context.Context) context.Context {
	return context.WithValue(ctx, adminContextKey, true)
}

func isAdminContext(ctx context.Context) bool {
	v, _ := ctx.Value(adminContextKey).(bool)
	return v
}

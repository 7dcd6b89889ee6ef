package api

import (
	"context"

	"github.com/toqaosama/portfolio-backend/services"
)

type keyType string

const (
	userKey keyType = "user"
)

// ctxWithUser adds the signed in user to the context
func ctxWithUser(ctx context.Context, user *services.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// ctxGetUser retrieves the signed in user, if any
func ctxGetUser(ctx context.Context) (*services.User, bool) {
	user, ok := ctx.Value(userKey).(*services.User)
	return user, ok && user != nil
}

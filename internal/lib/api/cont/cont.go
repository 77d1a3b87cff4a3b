package cont

import (
	"context"

	"FarmBot/entity"
)

type ctxKey string

const keyUser ctxKey = "api_user"

// PutUser stores the authenticated API key owner in the request context.
func PutUser(ctx context.Context, key *entity.ApiKey) context.Context {
	return context.WithValue(ctx, keyUser, key)
}

// GetUser returns the authenticated API key owner, or nil.
func GetUser(ctx context.Context) *entity.ApiKey {
	key, ok := ctx.Value(keyUser).(*entity.ApiKey)
	if !ok {
		return nil
	}
	return key
}

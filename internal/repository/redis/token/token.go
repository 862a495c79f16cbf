package token

import (
	"context"
	"fmt"
	"net/http"

	"geoattend/backend/foundation/web"
	"geoattend/backend/internal/auth"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// Repository is the refresh-token whitelist. One entry per user: issuing a
// new refresh token (login or rotation) replaces the previous one, logout
// deletes it, and the TTL expires abandoned sessions.
type Repository struct {
	client *redis.Client
}

func NewRepository(client *redis.Client) *Repository {
	return &Repository{client: client}
}

func key(userID int) string {
	return fmt.Sprintf("refresh_token:%d", userID)
}

func (r Repository) Save(ctx context.Context, userID int, tokenID string) error {
	if err := r.client.Set(ctx, key(userID), tokenID, auth.RefreshTokenTTL).Err(); err != nil {
		return web.NewRequestError(errors.Wrap(err, "storing refresh token"), http.StatusInternalServerError)
	}
	return nil
}

// Check verifies that tokenID is the user's current whitelisted refresh
// token. A missing or mismatched entry means the token was revoked or
// superseded.
func (r Repository) Check(ctx context.Context, userID int, tokenID string) error {
	current, err := r.client.Get(ctx, key(userID)).Result()
	if errors.Is(err, redis.Nil) || (err == nil && current != tokenID) {
		return web.NewRequestError(errors.New("invalid refresh token"), http.StatusUnauthorized)
	}
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "reading refresh token"), http.StatusInternalServerError)
	}
	return nil
}

func (r Repository) Delete(ctx context.Context, userID int) error {
	if err := r.client.Del(ctx, key(userID)).Err(); err != nil {
		return web.NewRequestError(errors.Wrap(err, "deleting refresh token"), http.StatusInternalServerError)
	}
	return nil
}

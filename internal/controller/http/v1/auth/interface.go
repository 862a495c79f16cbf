package auth

import (
	"context"

	"geoattend/backend/internal/entity"
	"geoattend/backend/internal/repository/postgres/user"
)

type User interface {
	GetByEmail(ctx context.Context, email string) (entity.User, error)
	GetProfile(ctx context.Context) (user.GetProfileResponse, error)
}

type Tokens interface {
	Save(ctx context.Context, userID int, tokenID string) error
	Check(ctx context.Context, userID int, tokenID string) error
	Delete(ctx context.Context, userID int) error
}

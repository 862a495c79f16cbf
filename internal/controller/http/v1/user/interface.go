package user

import (
	"context"

	"geoattend/backend/internal/repository/postgres/user"
)

type User interface {
	GetMonthlyStats(ctx context.Context) (user.GetStatsResponse, error)
	GetCardByID(ctx context.Context, id int) (user.Card, error)
	GetActiveCardList(ctx context.Context) ([]user.Card, error)
}

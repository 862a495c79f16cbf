package office

import (
	"context"

	"geoattend/backend/internal/entity"
	"geoattend/backend/internal/repository/postgres/office"
)

type Office interface {
	GetActive(ctx context.Context) (entity.Office, error)
	UpdateAll(ctx context.Context, request office.UpdateRequest) error
}

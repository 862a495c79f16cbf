package office

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"geoattend/backend/foundation/web"
	"geoattend/backend/internal/auth"
	"geoattend/backend/internal/entity"
	"geoattend/backend/internal/pkg/repository/postgresql"
	"geoattend/backend/internal/repository/postgres"

	"github.com/pkg/errors"
)

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

// GetActive resolves the active office for the caller's organization,
// through the caller's own user row. With more than one active office for
// an organization the newest wins; the seed only ever creates one.
func (r Repository) GetActive(ctx context.Context) (entity.Office, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return entity.Office{}, err
	}

	var detail entity.Office
	err = r.NewSelect().
		Model(&detail).
		Join("JOIN users AS u ON u.organization = office.organization").
		Where("u.id = ? AND office.is_active = true", claims.UserId).
		Order("office.created_at DESC").
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Office{}, postgres.ErrNotFound
	}
	if err != nil {
		return entity.Office{}, web.NewRequestError(errors.Wrap(err, "selecting office"), http.StatusInternalServerError)
	}

	return detail, nil
}

// UpdateAll lets an admin move the office or resize its geofence.
func (r Repository) UpdateAll(ctx context.Context, request UpdateRequest) error {
	if err := r.ValidateStruct(&request, "ID"); err != nil {
		return err
	}

	_, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return err
	}

	if request.Radius != nil && *request.Radius <= 0 {
		return web.NewRequestError(errors.New("radius must be positive"), http.StatusBadRequest)
	}

	q := r.NewUpdate().
		Model((*entity.Office)(nil)).
		Where("id = ?", request.ID)

	if request.Name != nil {
		q.Set("name = ?", *request.Name)
	}
	if request.Address != nil {
		q.Set("address = ?", *request.Address)
	}
	if request.Latitude != nil {
		q.Set("latitude = ?", *request.Latitude)
	}
	if request.Longitude != nil {
		q.Set("longitude = ?", *request.Longitude)
	}
	if request.Radius != nil {
		q.Set("radius = ?", *request.Radius)
	}
	if request.IsActive != nil {
		q.Set("is_active = ?", *request.IsActive)
	}
	q.Set("updated_at = ?", time.Now())

	result, err := q.Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating office"), http.StatusInternalServerError)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "reading update result"), http.StatusInternalServerError)
	}
	if affected == 0 {
		return web.NewRequestError(errors.New("Office not found"), http.StatusNotFound)
	}

	return nil
}

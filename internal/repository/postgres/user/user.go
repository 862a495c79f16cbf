package user

import (
	"context"
	"database/sql"
	"net/http"
	"strings"

	"geoattend/backend/foundation/web"
	"geoattend/backend/internal/auth"
	"geoattend/backend/internal/entity"
	"geoattend/backend/internal/pkg/repository/postgresql"
	"geoattend/backend/internal/pkg/workday"

	"github.com/pkg/errors"
)

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

// GetByEmail looks up an active user for login. Emails are stored
// lowercased; the lookup normalizes the same way. Unknown email and
// inactive account are indistinguishable to the caller.
func (r Repository) GetByEmail(ctx context.Context, email string) (entity.User, error) {
	var detail entity.User

	err := r.NewSelect().
		Model(&detail).
		Where("email = ? AND is_active = true", strings.ToLower(strings.TrimSpace(email))).
		Scan(ctx)
	if err != nil {
		return entity.User{}, &web.Error{
			Err:    errors.New("Invalid credentials"),
			Status: http.StatusUnauthorized,
		}
	}

	return detail, nil
}

// GetProfile returns the caller's own user row, password excluded.
func (r Repository) GetProfile(ctx context.Context) (GetProfileResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return GetProfileResponse{}, err
	}

	var detail entity.User
	err = r.NewSelect().
		Model(&detail).
		Where("id = ?", claims.UserId).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return GetProfileResponse{}, web.NewRequestError(errors.New("User not found"), http.StatusNotFound)
	}
	if err != nil {
		return GetProfileResponse{}, web.NewRequestError(errors.Wrap(err, "selecting user"), http.StatusInternalServerError)
	}

	return ProfileFromEntity(detail), nil
}

// GetMonthlyStats aggregates the caller's records for the current calendar
// month. Absent is derived as total minus present minus half-day, so only
// existing-but-incomplete records count as absent — days with no record at
// all never do. Records without total_minutes contribute zero to the sum.
func (r Repository) GetMonthlyStats(ctx context.Context) (GetStatsResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return GetStatsResponse{}, err
	}

	start, end := workday.MonthWindow(workday.Today())

	// bun formats queries client-side and only substitutes ? placeholders;
	// $N would reach the server with no bound parameters.
	var present, halfDays, total, totalMinutes int
	row := r.QueryRowContext(ctx,
		`SELECT
			COUNT(*) FILTER (WHERE status = 'present' AND check_out_time IS NOT NULL),
			COUNT(*) FILTER (WHERE status = 'half-day'),
			COUNT(*),
			COALESCE(SUM(COALESCE(total_minutes, 0)), 0)
		FROM attendance
		WHERE user_id = ? AND work_day >= ? AND work_day < ?`,
		claims.UserId, start, end,
	)
	if err := row.Scan(&present, &halfDays, &total, &totalMinutes); err != nil {
		return GetStatsResponse{}, web.NewRequestError(errors.Wrap(err, "aggregating monthly stats"), http.StatusInternalServerError)
	}

	return GetStatsResponse{
		Present:             present,
		Absent:              total - present - halfDays,
		HalfDays:            halfDays,
		TotalWorkingHours:   workday.FormatMinutes(totalMinutes),
		TotalWorkingMinutes: totalMinutes,
	}, nil
}

// GetCardByID returns one user's badge data for the QR endpoint.
func (r Repository) GetCardByID(ctx context.Context, id int) (Card, error) {
	_, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return Card{}, err
	}

	var detail entity.User
	err = r.NewSelect().
		Model(&detail).
		Where("id = ? AND is_active = true", id).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return Card{}, web.NewRequestError(errors.New("User not found"), http.StatusNotFound)
	}
	if err != nil {
		return Card{}, web.NewRequestError(errors.Wrap(err, "selecting user"), http.StatusInternalServerError)
	}

	return cardFromUser(detail), nil
}

// GetActiveCardList returns badge data for every active user, for the PDF
// card sheet.
func (r Repository) GetActiveCardList(ctx context.Context) ([]Card, error) {
	_, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return nil, err
	}

	var details []entity.User
	err = r.NewSelect().
		Model(&details).
		Where("is_active = true").
		Order("full_name").
		Scan(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting users"), http.StatusInternalServerError)
	}

	list := make([]Card, 0, len(details))
	for _, detail := range details {
		list = append(list, cardFromUser(detail))
	}

	return list, nil
}

func cardFromUser(detail entity.User) Card {
	card := Card{ID: detail.ID}
	if detail.FullName != nil {
		card.FullName = *detail.FullName
	}
	if detail.Email != nil {
		card.Email = *detail.Email
	}
	return card
}

package attendance

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"net/http"
	"time"

	"geoattend/backend/foundation/web"
	"geoattend/backend/internal/auth"
	"geoattend/backend/internal/entity"
	"geoattend/backend/internal/pkg/repository/postgresql"
	"geoattend/backend/internal/pkg/workday"
	"geoattend/backend/internal/repository/postgres"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/pkg/errors"
	"github.com/uptrace/bun/driver/pgdriver"
)

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

// CheckIn creates the caller's record for today. The geofence has already
// been validated by the controller; distance is the measured meters from
// the office. The unique index on (user_id, work_day) is the guarantee
// against concurrent duplicate check-ins — the friendly lookup before the
// insert only improves the error message.
func (r Repository) CheckIn(ctx context.Context, request CheckInRequest, distance float64) (CheckInResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return CheckInResponse{}, err
	}

	today := workday.Today()

	exists, err := r.NewSelect().
		Model((*entity.Attendance)(nil)).
		Where("user_id = ? AND work_day = ?", claims.UserId, today).
		Exists(ctx)
	if err != nil {
		return CheckInResponse{}, web.NewRequestError(errors.Wrap(err, "checking existing attendance"), http.StatusInternalServerError)
	}
	if exists {
		return CheckInResponse{}, web.NewRequestError(errors.New("You have already checked in today"), http.StatusBadRequest)
	}

	detail := entity.Attendance{
		UserID:              claims.UserId,
		WorkDay:             today,
		CheckInTime:         time.Now(),
		CheckInLatitude:     *request.Latitude,
		CheckInLongitude:    *request.Longitude,
		CheckInWithinOffice: true,
		CheckInDistance:     int(math.Round(distance)),
		Status:              entity.StatusPresent,
		CreatedAt:           time.Now(),
	}

	_, err = r.NewInsert().Model(&detail).Returning("id").Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return CheckInResponse{}, web.NewRequestError(errors.New("You have already checked in today"), http.StatusBadRequest)
		}
		return CheckInResponse{}, web.NewRequestError(errors.Wrap(err, "creating attendance"), http.StatusInternalServerError)
	}

	return CheckInResponse{
		ID:          detail.ID,
		CheckInTime: detail.CheckInTime,
		Location:    Location{Latitude: detail.CheckInLatitude, Longitude: detail.CheckInLongitude},
		Distance:    detail.CheckInDistance,
	}, nil
}

// CheckOut completes today's record. Being outside the geofence does not
// reject the request; isWithin and distance are recorded as measured. The
// write is a single conditional update so two concurrent check-outs cannot
// both succeed.
func (r Repository) CheckOut(ctx context.Context, request CheckInRequest, distance float64, isWithin bool) (CheckOutResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return CheckOutResponse{}, err
	}

	var detail entity.Attendance
	err = r.NewSelect().
		Model(&detail).
		Where("user_id = ? AND work_day = ?", claims.UserId, workday.Today()).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return CheckOutResponse{}, web.NewRequestError(errors.New("You need to check in first before checking out"), http.StatusBadRequest)
	}
	if err != nil {
		return CheckOutResponse{}, web.NewRequestError(errors.Wrap(err, "selecting today's attendance"), http.StatusInternalServerError)
	}
	if detail.CheckOutTime != nil {
		return CheckOutResponse{}, web.NewRequestError(errors.New("You have already checked out today"), http.StatusBadRequest)
	}

	now := time.Now()
	totalMinutes := int(now.Sub(detail.CheckInTime).Minutes())

	result, err := r.NewUpdate().
		Model((*entity.Attendance)(nil)).
		Set("check_out_time = ?", now).
		Set("check_out_latitude = ?", *request.Latitude).
		Set("check_out_longitude = ?", *request.Longitude).
		Set("check_out_within_office = ?", isWithin).
		Set("check_out_distance = ?", int(math.Round(distance))).
		Set("total_minutes = ?", totalMinutes).
		Set("updated_at = ?", now).
		Where("id = ? AND check_out_time IS NULL", detail.ID).
		Exec(ctx)
	if err != nil {
		return CheckOutResponse{}, web.NewRequestError(errors.Wrap(err, "updating attendance"), http.StatusInternalServerError)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return CheckOutResponse{}, web.NewRequestError(errors.Wrap(err, "reading update result"), http.StatusInternalServerError)
	}
	if affected == 0 {
		// A concurrent request won the conditional update.
		return CheckOutResponse{}, web.NewRequestError(errors.New("You have already checked out today"), http.StatusBadRequest)
	}

	return CheckOutResponse{
		ID:           detail.ID,
		CheckInTime:  detail.CheckInTime,
		CheckOutTime: now,
		TotalHours:   workday.FormatMinutes(totalMinutes),
		TotalMinutes: totalMinutes,
	}, nil
}

// GetToday returns the caller's record for the current day, or a nil
// attendance when they have not checked in.
func (r Repository) GetToday(ctx context.Context) (TodayResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return TodayResponse{}, err
	}

	var detail entity.Attendance
	err = r.NewSelect().
		Model(&detail).
		Where("user_id = ? AND work_day = ?", claims.UserId, workday.Today()).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return TodayResponse{}, nil
	}
	if err != nil {
		return TodayResponse{}, web.NewRequestError(errors.Wrap(err, "selecting today's attendance"), http.StatusInternalServerError)
	}

	today := TodayAttendance{
		ID:           detail.ID,
		CheckInTime:  detail.CheckInTime,
		CheckOutTime: detail.CheckOutTime,
		Status:       detail.Status,
	}
	if detail.TotalMinutes != nil {
		formatted := workday.FormatMinutes(*detail.TotalMinutes)
		today.TotalHours = &formatted
	}

	return TodayResponse{
		Attendance:  &today,
		CanCheckOut: detail.CheckOutTime == nil,
	}, nil
}

// GetHistory returns the caller's records newest first, plus the total
// record count for pagination.
func (r Repository) GetHistory(ctx context.Context, filter Filter) ([]HistoryRow, int, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return nil, 0, err
	}

	page, limit := 1, 10
	if filter.Page != nil && *filter.Page > 0 {
		page = *filter.Page
	}
	if filter.Limit != nil && *filter.Limit > 0 {
		limit = *filter.Limit
	}

	var details []entity.Attendance
	err = r.NewSelect().
		Model(&details).
		Where("user_id = ?", claims.UserId).
		Order("work_day DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Scan(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting attendance history"), http.StatusInternalServerError)
	}

	count, err := r.NewSelect().
		Model((*entity.Attendance)(nil)).
		Where("user_id = ?", claims.UserId).
		Count(ctx)
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "counting attendance history"), http.StatusInternalServerError)
	}

	list := make([]HistoryRow, 0, len(details))
	for _, detail := range details {
		row := HistoryRow{
			ID:       detail.ID,
			Date:     date.Date{Time: detail.WorkDay},
			CheckIn:  detail.CheckInTime,
			CheckOut: detail.CheckOutTime,
			Status:   detail.Status,
			CheckInLocation: LocationStatus{
				IsWithinOffice: detail.CheckInWithinOffice,
				Distance:       detail.CheckInDistance,
			},
		}
		if detail.TotalMinutes != nil {
			formatted := workday.FormatMinutes(*detail.TotalMinutes)
			row.TotalHours = &formatted
		}
		if detail.CheckOutTime != nil && detail.CheckOutWithinOffice != nil && detail.CheckOutDistance != nil {
			row.CheckOutLocation = &LocationStatus{
				IsWithinOffice: *detail.CheckOutWithinOffice,
				Distance:       *detail.CheckOutDistance,
			}
		}
		list = append(list, row)
	}

	return list, count, nil
}

// GetExportList returns attendance rows joined with their users for the
// admin xlsx report, optionally bounded by work_day.
func (r Repository) GetExportList(ctx context.Context, filter ExportFilter) ([]ExportRow, error) {
	_, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return nil, err
	}

	whereQuery := "WHERE true"
	var args []interface{}

	if filter.From != nil {
		from, err := time.Parse("2006-01-02", *filter.From)
		if err != nil {
			return nil, web.NewRequestError(errors.Wrap(err, "parsing from date"), http.StatusBadRequest)
		}
		whereQuery += " AND a.work_day >= ?"
		args = append(args, from)
	}
	if filter.To != nil {
		to, err := time.Parse("2006-01-02", *filter.To)
		if err != nil {
			return nil, web.NewRequestError(errors.Wrap(err, "parsing to date"), http.StatusBadRequest)
		}
		whereQuery += " AND a.work_day <= ?"
		args = append(args, to)
	}

	query := fmt.Sprintf(`
		SELECT
			u.full_name,
			u.email,
			a.work_day,
			a.check_in_time,
			a.check_out_time,
			a.check_in_within_office,
			a.check_out_within_office,
			a.check_in_distance,
			a.check_out_distance,
			a.total_minutes,
			a.status
		FROM attendance a
		JOIN users u ON u.id = a.user_id
		%s
		ORDER BY a.work_day DESC, u.full_name
	`, whereQuery)

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting attendance export"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var list []ExportRow
	for rows.Next() {
		var row ExportRow
		var workDay time.Time
		var totalMinutes *int

		if err = rows.Scan(
			&row.FullName,
			&row.Email,
			&workDay,
			&row.CheckInTime,
			&row.CheckOutTime,
			&row.CheckInWithin,
			&row.CheckOutWithin,
			&row.CheckInDistance,
			&row.CheckOutDistance,
			&totalMinutes,
			&row.Status,
		); err != nil {
			return nil, web.NewRequestError(errors.Wrap(err, "scanning attendance export row"), http.StatusInternalServerError)
		}

		row.WorkDay = date.Date{Time: workDay}
		if totalMinutes != nil {
			row.TotalHours = workday.FormatMinutes(*totalMinutes)
		}
		list = append(list, row)
	}
	if err = rows.Err(); err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "reading attendance export rows"), http.StatusInternalServerError)
	}

	return list, nil
}

// UpdateColumns is the admin correction path and the only place the
// absent/half-day statuses are ever assigned.
func (r Repository) UpdateColumns(ctx context.Context, request UpdateRequest) error {
	if err := r.ValidateStruct(&request, "ID"); err != nil {
		return err
	}

	_, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return err
	}

	q := r.NewUpdate().
		Model((*entity.Attendance)(nil)).
		Where("id = ?", request.ID)

	if request.Status != nil {
		switch *request.Status {
		case entity.StatusPresent, entity.StatusAbsent, entity.StatusHalfDay:
		default:
			return web.NewRequestError(errors.Errorf("invalid status: %s", *request.Status), http.StatusBadRequest)
		}
		q.Set("status = ?", *request.Status)
	}
	if request.CheckInTime != nil {
		t, err := time.Parse(time.RFC3339, *request.CheckInTime)
		if err != nil {
			return web.NewRequestError(errors.Wrap(err, "parsing check_in_time"), http.StatusBadRequest)
		}
		q.Set("check_in_time = ?", t)
	}
	if request.CheckOutTime != nil {
		t, err := time.Parse(time.RFC3339, *request.CheckOutTime)
		if err != nil {
			return web.NewRequestError(errors.Wrap(err, "parsing check_out_time"), http.StatusBadRequest)
		}
		q.Set("check_out_time = ?", t)
	}
	q.Set("updated_at = ?", time.Now())

	result, err := q.Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating attendance"), http.StatusInternalServerError)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "reading update result"), http.StatusInternalServerError)
	}
	if affected == 0 {
		return web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	return errors.As(err, &pgErr) && pgErr.Field('C') == "23505"
}

package attendance

import (
	"fmt"
	"math"
	"net/http"
	"reflect"
	"time"

	"geoattend/backend/foundation/web"
	"geoattend/backend/internal/pkg/geolocation"
	"geoattend/backend/internal/repository/postgres"
	"geoattend/backend/internal/repository/postgres/attendance"
	"geoattend/backend/internal/service"

	"github.com/pkg/errors"
)

type Controller struct {
	attendance Attendance
	office     Office
}

func NewController(attendance Attendance, office Office) *Controller {
	return &Controller{attendance: attendance, office: office}
}

// CheckIn validates the caller's position against the office geofence and
// creates today's record. Outside the radius the request is rejected with
// the measured distance so the caller can self-correct.
func (uc Controller) CheckIn(c *web.Context) error {
	var request attendance.CheckInRequest
	if err := c.BindFunc(&request); err != nil {
		return c.RespondError(err)
	}

	if !hasCoordinates(request) {
		return c.RespondError(web.NewRequestError(errors.New("Latitude and longitude are required"), http.StatusBadRequest))
	}

	office, err := uc.office.GetActive(c.Ctx)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return c.RespondError(web.NewRequestError(errors.New("Office not configured"), http.StatusNotFound))
		}
		return c.RespondError(err)
	}

	distance := geolocation.CalculateDistance(*request.Latitude, *request.Longitude, office.Latitude, office.Longitude)

	if !geolocation.IsWithinGeofence(*request.Latitude, *request.Longitude, office.Latitude, office.Longitude, office.Radius) {
		rounded := int(math.Round(distance))
		return c.RespondError(&web.Error{
			Err:    fmt.Errorf("You are %dm away from office. Please come within %gm radius to check in.", rounded, office.Radius),
			Status: http.StatusBadRequest,
			Data: map[string]interface{}{
				"distance":       rounded,
				"requiredRadius": office.Radius,
			},
		})
	}

	response, err := uc.attendance.CheckIn(c.Ctx, request, distance)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"success": true,
		"message": "Checked in successfully",
		"data": map[string]interface{}{
			"attendance": response,
		},
	}, http.StatusCreated)
}

// CheckOut completes today's record. Unlike check-in the geofence does not
// gate the request; the position is only recorded. The record state is
// resolved before the office so a missing office cannot mask the check-in
// state; the repository re-checks it atomically on write.
func (uc Controller) CheckOut(c *web.Context) error {
	var request attendance.CheckInRequest
	if err := c.BindFunc(&request); err != nil {
		return c.RespondError(err)
	}

	if !hasCoordinates(request) {
		return c.RespondError(web.NewRequestError(errors.New("Latitude and longitude are required"), http.StatusBadRequest))
	}

	today, err := uc.attendance.GetToday(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}
	if today.Attendance == nil {
		return c.RespondError(web.NewRequestError(errors.New("You need to check in first before checking out"), http.StatusBadRequest))
	}
	if !today.CanCheckOut {
		return c.RespondError(web.NewRequestError(errors.New("You have already checked out today"), http.StatusBadRequest))
	}

	office, err := uc.office.GetActive(c.Ctx)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return c.RespondError(web.NewRequestError(errors.New("Office not configured"), http.StatusNotFound))
		}
		return c.RespondError(err)
	}

	distance := geolocation.CalculateDistance(*request.Latitude, *request.Longitude, office.Latitude, office.Longitude)
	isWithin := geolocation.IsWithinGeofence(*request.Latitude, *request.Longitude, office.Latitude, office.Longitude, office.Radius)

	response, err := uc.attendance.CheckOut(c.Ctx, request, distance, isWithin)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"success": true,
		"message": "Checked out successfully",
		"data": map[string]interface{}{
			"attendance": response,
		},
	}, http.StatusOK)
}

func (uc Controller) GetToday(c *web.Context) error {
	response, err := uc.attendance.GetToday(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"success": true,
		"data":    response,
	}, http.StatusOK)
}

func (uc Controller) GetHistory(c *web.Context) error {
	var filter attendance.Filter

	if page, ok := c.GetQueryFunc(reflect.Int, "page").(*int); ok {
		filter.Page = page
	}
	if limit, ok := c.GetQueryFunc(reflect.Int, "limit").(*int); ok {
		filter.Limit = limit
	}
	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	list, total, err := uc.attendance.GetHistory(c.Ctx, filter)
	if err != nil {
		return c.RespondError(err)
	}

	page, limit := 1, 10
	if filter.Page != nil && *filter.Page > 0 {
		page = *filter.Page
	}
	if filter.Limit != nil && *filter.Limit > 0 {
		limit = *filter.Limit
	}

	return c.Respond(map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"history":      list,
			"totalPages":   (total + limit - 1) / limit,
			"currentPage":  page,
			"totalRecords": total,
		},
	}, http.StatusOK)
}

// Export streams the admin xlsx report.
func (uc Controller) Export(c *web.Context) error {
	var filter attendance.ExportFilter

	if from, ok := c.GetQueryFunc(reflect.String, "from").(*string); ok {
		filter.From = from
	}
	if to, ok := c.GetQueryFunc(reflect.String, "to").(*string); ok {
		filter.To = to
	}
	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	rows, err := uc.attendance.GetExportList(c.Ctx, filter)
	if err != nil {
		return c.RespondError(err)
	}

	report, err := service.AttendanceReport(rows)
	if err != nil {
		return c.RespondError(err)
	}

	filename := fmt.Sprintf("attendance-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Status(http.StatusOK)

	if err := report.Write(c.Writer); err != nil {
		return c.RespondError(err)
	}

	return nil
}

func (uc Controller) UpdateColumns(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	var request attendance.UpdateRequest
	if err := c.BindFunc(&request); err != nil {
		return c.RespondError(err)
	}
	request.ID = id

	if err := uc.attendance.UpdateColumns(c.Ctx, request); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"success": true,
		"message": "Attendance updated",
	}, http.StatusOK)
}

func hasCoordinates(request attendance.CheckInRequest) bool {
	return request.Latitude != nil && *request.Latitude != 0 &&
		request.Longitude != nil && *request.Longitude != 0
}

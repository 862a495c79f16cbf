package attendance_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"geoattend/backend/foundation/web"
	controller "geoattend/backend/internal/controller/http/v1/attendance"
	"geoattend/backend/internal/entity"
	"geoattend/backend/internal/repository/postgres"
	"geoattend/backend/internal/repository/postgres/attendance"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testOffice sits at the seeded coordinates with a 200m radius.
var testOffice = entity.Office{
	ID:           1,
	Name:         "Main Office",
	Latitude:     21.12880603727172,
	Longitude:    79.05808101933607,
	Radius:       200,
	Organization: "Tech Company Inc.",
	IsActive:     true,
}

type attendanceStub struct {
	checkInCalled  bool
	checkOutCalled bool
	checkInResp    attendance.CheckInResponse
	checkOutResp   attendance.CheckOutResponse
	checkOutWithin bool
	todayResp      attendance.TodayResponse
	err            error
}

func (s *attendanceStub) CheckIn(ctx context.Context, request attendance.CheckInRequest, distance float64) (attendance.CheckInResponse, error) {
	s.checkInCalled = true
	return s.checkInResp, s.err
}

func (s *attendanceStub) CheckOut(ctx context.Context, request attendance.CheckInRequest, distance float64, isWithin bool) (attendance.CheckOutResponse, error) {
	s.checkOutCalled = true
	s.checkOutWithin = isWithin
	return s.checkOutResp, s.err
}

func (s *attendanceStub) GetToday(ctx context.Context) (attendance.TodayResponse, error) {
	return s.todayResp, s.err
}

func (s *attendanceStub) GetHistory(ctx context.Context, filter attendance.Filter) ([]attendance.HistoryRow, int, error) {
	return nil, 0, s.err
}

func (s *attendanceStub) GetExportList(ctx context.Context, filter attendance.ExportFilter) ([]attendance.ExportRow, error) {
	return nil, s.err
}

func (s *attendanceStub) UpdateColumns(ctx context.Context, request attendance.UpdateRequest) error {
	return s.err
}

type officeStub struct {
	office entity.Office
	err    error
}

func (s officeStub) GetActive(ctx context.Context) (entity.Office, error) {
	return s.office, s.err
}

func newTestApp(uc *controller.Controller) *web.App {
	app := web.NewApp()
	app.Post("/attendance/check-in", uc.CheckIn)
	app.Post("/attendance/check-out", uc.CheckOut)
	app.Get("/attendance/today", uc.GetToday)
	return app
}

func doJSON(t *testing.T, app *web.App, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)

	var envelope map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding response %q: %v", w.Body.String(), err)
	}
	return w, envelope
}

func TestCheckInMissingCoordinates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"empty body", map[string]interface{}{}},
		{"missing longitude", map[string]interface{}{"latitude": 21.1288}},
		{"zero coordinates", map[string]interface{}{"latitude": 0, "longitude": 0}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := &attendanceStub{}
			app := newTestApp(controller.NewController(repo, officeStub{office: testOffice}))

			w, envelope := doJSON(t, app, http.MethodPost, "/attendance/check-in", tt.body)

			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
			}
			if envelope["message"] != "Latitude and longitude are required" {
				t.Errorf("message = %q", envelope["message"])
			}
			if repo.checkInCalled {
				t.Error("repository must not be called without coordinates")
			}
		})
	}
}

func TestCheckInOutsideRadius(t *testing.T) {
	t.Parallel()

	repo := &attendanceStub{}
	app := newTestApp(controller.NewController(repo, officeStub{office: testOffice}))

	// Roughly 5km north of the office.
	w, envelope := doJSON(t, app, http.MethodPost, "/attendance/check-in", map[string]interface{}{
		"latitude":  testOffice.Latitude + 0.045,
		"longitude": testOffice.Longitude,
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if success, _ := envelope["success"].(bool); success {
		t.Error("success = true, want false")
	}
	data, ok := envelope["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected distance data in rejection, got %v", envelope["data"])
	}
	distance, _ := data["distance"].(float64)
	if distance < 4900 || distance > 5100 {
		t.Errorf("distance = %v, want about 5000", distance)
	}
	if radius, _ := data["requiredRadius"].(float64); radius != testOffice.Radius {
		t.Errorf("requiredRadius = %v, want %v", radius, testOffice.Radius)
	}
	if repo.checkInCalled {
		t.Error("repository must not be called outside the geofence")
	}
}

func TestCheckInWithinRadius(t *testing.T) {
	t.Parallel()

	repo := &attendanceStub{
		checkInResp: attendance.CheckInResponse{
			ID:          1,
			CheckInTime: time.Now(),
		},
	}
	app := newTestApp(controller.NewController(repo, officeStub{office: testOffice}))

	w, envelope := doJSON(t, app, http.MethodPost, "/attendance/check-in", map[string]interface{}{
		"latitude":  testOffice.Latitude,
		"longitude": testOffice.Longitude,
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %v", w.Code, http.StatusCreated, envelope)
	}
	if envelope["message"] != "Checked in successfully" {
		t.Errorf("message = %q", envelope["message"])
	}
	if !repo.checkInCalled {
		t.Error("expected repository CheckIn to be called")
	}
}

func TestCheckInOfficeNotConfigured(t *testing.T) {
	t.Parallel()

	repo := &attendanceStub{}
	app := newTestApp(controller.NewController(repo, officeStub{err: postgres.ErrNotFound}))

	w, envelope := doJSON(t, app, http.MethodPost, "/attendance/check-in", map[string]interface{}{
		"latitude":  testOffice.Latitude,
		"longitude": testOffice.Longitude,
	})

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
	if envelope["message"] != "Office not configured" {
		t.Errorf("message = %q", envelope["message"])
	}
	if repo.checkInCalled {
		t.Error("repository must not be called without an office")
	}
}

func TestCheckOutOutsideRadiusProceeds(t *testing.T) {
	t.Parallel()

	repo := &attendanceStub{
		todayResp: attendance.TodayResponse{
			Attendance: &attendance.TodayAttendance{
				ID:          1,
				CheckInTime: time.Now().Add(-8 * time.Hour),
				Status:      entity.StatusPresent,
			},
			CanCheckOut: true,
		},
		checkOutResp: attendance.CheckOutResponse{
			ID:           1,
			CheckInTime:  time.Now().Add(-8 * time.Hour),
			CheckOutTime: time.Now(),
			TotalHours:   "8h 0m",
			TotalMinutes: 480,
		},
		checkOutWithin: true,
	}
	app := newTestApp(controller.NewController(repo, officeStub{office: testOffice}))

	w, envelope := doJSON(t, app, http.MethodPost, "/attendance/check-out", map[string]interface{}{
		"latitude":  testOffice.Latitude + 0.045,
		"longitude": testOffice.Longitude,
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %v", w.Code, http.StatusOK, envelope)
	}
	if envelope["message"] != "Checked out successfully" {
		t.Errorf("message = %q", envelope["message"])
	}
	if !repo.checkOutCalled {
		t.Fatal("expected repository CheckOut to be called")
	}
	if repo.checkOutWithin {
		t.Error("isWithin = true, want false for a position outside the radius")
	}
}

func TestCheckOutBeforeCheckIn(t *testing.T) {
	t.Parallel()

	// The record state wins over office configuration: with no check-in
	// today, a missing office must not turn the answer into a 404.
	repo := &attendanceStub{}
	app := newTestApp(controller.NewController(repo, officeStub{err: postgres.ErrNotFound}))

	w, envelope := doJSON(t, app, http.MethodPost, "/attendance/check-out", map[string]interface{}{
		"latitude":  testOffice.Latitude,
		"longitude": testOffice.Longitude,
	})

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if envelope["message"] != "You need to check in first before checking out" {
		t.Errorf("message = %q", envelope["message"])
	}
	if repo.checkOutCalled {
		t.Error("repository CheckOut must not be called without a check-in")
	}
}

func TestCheckOutAlreadyCheckedOut(t *testing.T) {
	t.Parallel()

	repo := &attendanceStub{
		todayResp: attendance.TodayResponse{
			Attendance: &attendance.TodayAttendance{
				ID:          1,
				CheckInTime: time.Now().Add(-8 * time.Hour),
				Status:      entity.StatusPresent,
			},
			CanCheckOut: false,
		},
	}
	app := newTestApp(controller.NewController(repo, officeStub{office: testOffice}))

	w, envelope := doJSON(t, app, http.MethodPost, "/attendance/check-out", map[string]interface{}{
		"latitude":  testOffice.Latitude,
		"longitude": testOffice.Longitude,
	})

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if envelope["message"] != "You have already checked out today" {
		t.Errorf("message = %q", envelope["message"])
	}
	if repo.checkOutCalled {
		t.Error("repository CheckOut must not be called after a completed record")
	}
}

func TestCheckOutOfficeNotConfigured(t *testing.T) {
	t.Parallel()

	repo := &attendanceStub{
		todayResp: attendance.TodayResponse{
			Attendance: &attendance.TodayAttendance{
				ID:          1,
				CheckInTime: time.Now().Add(-8 * time.Hour),
				Status:      entity.StatusPresent,
			},
			CanCheckOut: true,
		},
	}
	app := newTestApp(controller.NewController(repo, officeStub{err: postgres.ErrNotFound}))

	w, envelope := doJSON(t, app, http.MethodPost, "/attendance/check-out", map[string]interface{}{
		"latitude":  testOffice.Latitude,
		"longitude": testOffice.Longitude,
	})

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
	if envelope["message"] != "Office not configured" {
		t.Errorf("message = %q", envelope["message"])
	}
	if repo.checkOutCalled {
		t.Error("repository CheckOut must not be called without an office")
	}
}

func TestGetToday(t *testing.T) {
	t.Parallel()

	repo := &attendanceStub{
		todayResp: attendance.TodayResponse{
			Attendance: &attendance.TodayAttendance{
				ID:          3,
				CheckInTime: time.Now(),
				Status:      entity.StatusPresent,
			},
			CanCheckOut: true,
		},
	}
	app := newTestApp(controller.NewController(repo, officeStub{office: testOffice}))

	w, envelope := doJSON(t, app, http.MethodGet, "/attendance/today", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	data, ok := envelope["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected data object, got %v", envelope["data"])
	}
	if canCheckOut, _ := data["canCheckOut"].(bool); !canCheckOut {
		t.Error("canCheckOut = false, want true")
	}
	if data["attendance"] == nil {
		t.Error("expected attendance in response")
	}
}

func TestGetTodayNoRecord(t *testing.T) {
	t.Parallel()

	repo := &attendanceStub{}
	app := newTestApp(controller.NewController(repo, officeStub{office: testOffice}))

	w, envelope := doJSON(t, app, http.MethodGet, "/attendance/today", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	data, ok := envelope["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected data object, got %v", envelope["data"])
	}
	if data["attendance"] != nil {
		t.Errorf("attendance = %v, want null", data["attendance"])
	}
	if canCheckOut, _ := data["canCheckOut"].(bool); canCheckOut {
		t.Error("canCheckOut = true, want false")
	}
}

package attendance_test

import (
	"context"
	"database/sql/driver"
	"net/http"
	"strings"
	"testing"

	"geoattend/backend/foundation/web"
	"geoattend/backend/internal/auth"
	"geoattend/backend/internal/pkg/repository/postgresql/postgresqltest"
	"geoattend/backend/internal/repository/postgres/attendance"

	"github.com/pkg/errors"
)

func claimsContext(userID int) context.Context {
	return context.WithValue(context.Background(), auth.Key, auth.Claims{UserId: userID, Role: auth.RoleUser})
}

func coords(lat, lon float64) attendance.CheckInRequest {
	return attendance.CheckInRequest{Latitude: &lat, Longitude: &lon}
}

func TestCheckInAlreadyCheckedIn(t *testing.T) {
	t.Parallel()

	db, rec := postgresqltest.NewDatabase(postgresqltest.Result{
		Columns: []string{"exists"},
		Rows:    [][]driver.Value{{true}},
	})
	repo := attendance.NewRepository(db)

	_, err := repo.CheckIn(claimsContext(7), coords(21.1288, 79.0581), 12)
	if err == nil {
		t.Fatal("expected error for a second check-in on the same day")
	}

	var webErr *web.Error
	if !errors.As(err, &webErr) {
		t.Fatalf("error type = %T, want *web.Error", err)
	}
	if webErr.Status != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", webErr.Status, http.StatusBadRequest)
	}
	if webErr.Err.Error() != "You have already checked in today" {
		t.Errorf("message = %q", webErr.Err.Error())
	}
	if queries := rec.Queries(); len(queries) != 1 {
		t.Errorf("got %d statements, want the existence check only: %v", len(queries), queries)
	}
}

func TestCheckInCreatesRecord(t *testing.T) {
	t.Parallel()

	db, rec := postgresqltest.NewDatabase(
		postgresqltest.Result{
			Columns: []string{"exists"},
			Rows:    [][]driver.Value{{false}},
		},
		postgresqltest.Result{
			Columns: []string{"id"},
			Rows:    [][]driver.Value{{int64(5)}},
		},
	)
	repo := attendance.NewRepository(db)

	response, err := repo.CheckIn(claimsContext(7), coords(21.1288, 79.0581), 12.4)
	if err != nil {
		t.Fatalf("CheckIn: %v", err)
	}

	if response.ID != 5 {
		t.Errorf("ID = %d, want 5", response.ID)
	}
	if response.Distance != 12 {
		t.Errorf("Distance = %d, want 12", response.Distance)
	}
	if response.Location.Latitude != 21.1288 || response.Location.Longitude != 79.0581 {
		t.Errorf("Location = %+v", response.Location)
	}

	queries := rec.Queries()
	if len(queries) != 2 {
		t.Fatalf("got %d statements, want existence check + insert: %v", len(queries), queries)
	}
	if !strings.Contains(queries[1], "INSERT INTO") {
		t.Errorf("second statement is not an insert: %s", queries[1])
	}
	if !strings.Contains(queries[1], "'present'") {
		t.Errorf("new record not created as present: %s", queries[1])
	}
}

func TestCheckInRequiresClaims(t *testing.T) {
	t.Parallel()

	db, _ := postgresqltest.NewDatabase()
	repo := attendance.NewRepository(db)

	if _, err := repo.CheckIn(context.Background(), coords(21.1288, 79.0581), 0); err == nil {
		t.Fatal("expected error without claims in context")
	}
}

package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// Attendance status values. Check-in always creates a record as
// StatusPresent; absent and half-day are only ever assigned by an admin
// correction, never by the check-in/check-out flow.
const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusHalfDay = "half-day"
)

// Attendance is one user's record for one work day. The check-in block is
// always populated; the check-out block and TotalMinutes stay NULL until
// the user checks out. (user_id, work_day) is unique at the storage layer.
type Attendance struct {
	bun.BaseModel `bun:"table:attendance"`

	ID      int       `json:"id" bun:"id,pk,autoincrement"`
	UserID  int       `json:"user_id" bun:"user_id"`
	WorkDay time.Time `json:"work_day" bun:"work_day"`

	CheckInTime         time.Time `json:"check_in_time" bun:"check_in_time"`
	CheckInLatitude     float64   `json:"check_in_latitude" bun:"check_in_latitude"`
	CheckInLongitude    float64   `json:"check_in_longitude" bun:"check_in_longitude"`
	CheckInWithinOffice bool      `json:"check_in_within_office" bun:"check_in_within_office"`
	CheckInDistance     int       `json:"check_in_distance" bun:"check_in_distance"`

	CheckOutTime         *time.Time `json:"check_out_time" bun:"check_out_time"`
	CheckOutLatitude     *float64   `json:"check_out_latitude" bun:"check_out_latitude"`
	CheckOutLongitude    *float64   `json:"check_out_longitude" bun:"check_out_longitude"`
	CheckOutWithinOffice *bool      `json:"check_out_within_office" bun:"check_out_within_office"`
	CheckOutDistance     *int       `json:"check_out_distance" bun:"check_out_distance"`

	TotalMinutes *int       `json:"total_minutes" bun:"total_minutes"`
	Status       string     `json:"status" bun:"status"`
	CreatedAt    time.Time  `json:"created_at" bun:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at" bun:"updated_at"`
}

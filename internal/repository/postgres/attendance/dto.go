package attendance

import (
	"time"

	"github.com/Azure/go-autorest/autorest/date"
)

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// LocationStatus annotates an event with how far from the office it was
// submitted and whether that was inside the geofence.
type LocationStatus struct {
	IsWithinOffice bool `json:"isWithinOffice"`
	Distance       int  `json:"distance"`
}

type CheckInRequest struct {
	Latitude  *float64 `json:"latitude" form:"latitude"`
	Longitude *float64 `json:"longitude" form:"longitude"`
}

type CheckInResponse struct {
	ID          int       `json:"id"`
	CheckInTime time.Time `json:"checkInTime"`
	Location    Location  `json:"location"`
	Distance    int       `json:"distance"`
}

type CheckOutResponse struct {
	ID           int       `json:"id"`
	CheckInTime  time.Time `json:"checkInTime"`
	CheckOutTime time.Time `json:"checkOutTime"`
	TotalHours   string    `json:"totalHours"`
	TotalMinutes int       `json:"totalMinutes"`
}

// TodayResponse reports the caller's record for the current day, nil when
// they have not checked in yet.
type TodayResponse struct {
	Attendance  *TodayAttendance `json:"attendance"`
	CanCheckOut bool             `json:"canCheckOut"`
}

type TodayAttendance struct {
	ID           int        `json:"id"`
	CheckInTime  time.Time  `json:"checkInTime"`
	CheckOutTime *time.Time `json:"checkOutTime"`
	Status       string     `json:"status"`
	TotalHours   *string    `json:"totalHours"`
}

type Filter struct {
	Page  *int
	Limit *int
}

type HistoryRow struct {
	ID               int             `json:"id"`
	Date             date.Date       `json:"date"`
	CheckIn          time.Time       `json:"checkIn"`
	CheckOut         *time.Time      `json:"checkOut"`
	Status           string          `json:"status"`
	TotalHours       *string         `json:"totalHours"`
	CheckInLocation  LocationStatus  `json:"checkInLocation"`
	CheckOutLocation *LocationStatus `json:"checkOutLocation"`
}

type ExportFilter struct {
	From *string
	To   *string
}

// ExportRow is one line of the admin xlsx report.
type ExportRow struct {
	FullName         string
	Email            string
	WorkDay          date.Date
	CheckInTime      time.Time
	CheckOutTime     *time.Time
	CheckInWithin    bool
	CheckOutWithin   *bool
	CheckInDistance  int
	CheckOutDistance *int
	TotalHours       string
	Status           string
}

type UpdateRequest struct {
	ID           int     `json:"id" form:"id"`
	Status       *string `json:"status" form:"status"`
	CheckInTime  *string `json:"check_in_time" form:"check_in_time"`
	CheckOutTime *string `json:"check_out_time" form:"check_out_time"`
}

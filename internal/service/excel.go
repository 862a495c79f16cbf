package service

import (
	"fmt"
	"time"

	"geoattend/backend/internal/repository/postgres/attendance"

	"github.com/xuri/excelize/v2"
)

var reportHeaders = []string{
	"Full Name", "Email", "Work Day", "Check In", "Check Out",
	"In Office (in)", "In Office (out)", "Distance In (m)", "Distance Out (m)",
	"Total Hours", "Status",
}

// AttendanceReport builds the admin xlsx export in memory.
func AttendanceReport(rows []attendance.ExportRow) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "Attendance"
	f.SetSheetName("Sheet1", sheet)

	for i, header := range reportHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("building header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("writing header: %w", err)
		}
	}

	for i, row := range rows {
		values := []interface{}{
			row.FullName,
			row.Email,
			row.WorkDay.Format("2006-01-02"),
			row.CheckInTime.Format("15:04"),
			formatOptionalTime(row.CheckOutTime),
			row.CheckInWithin,
			formatOptionalBool(row.CheckOutWithin),
			row.CheckInDistance,
			formatOptionalInt(row.CheckOutDistance),
			row.TotalHours,
			row.Status,
		}
		for j, value := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return nil, fmt.Errorf("building cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("writing row %d: %w", i+1, err)
			}
		}
	}

	return f, nil
}

func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("15:04")
}

func formatOptionalBool(b *bool) string {
	if b == nil {
		return ""
	}
	return fmt.Sprintf("%t", *b)
}

func formatOptionalInt(n *int) string {
	if n == nil {
		return ""
	}
	return fmt.Sprintf("%d", *n)
}

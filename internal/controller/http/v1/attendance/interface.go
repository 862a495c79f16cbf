package attendance

import (
	"context"

	"geoattend/backend/internal/entity"
	"geoattend/backend/internal/repository/postgres/attendance"
)

type Attendance interface {
	CheckIn(ctx context.Context, request attendance.CheckInRequest, distance float64) (attendance.CheckInResponse, error)
	CheckOut(ctx context.Context, request attendance.CheckInRequest, distance float64, isWithin bool) (attendance.CheckOutResponse, error)
	GetToday(ctx context.Context) (attendance.TodayResponse, error)
	GetHistory(ctx context.Context, filter attendance.Filter) ([]attendance.HistoryRow, int, error)
	GetExportList(ctx context.Context, filter attendance.ExportFilter) ([]attendance.ExportRow, error)
	UpdateColumns(ctx context.Context, request attendance.UpdateRequest) error
}

type Office interface {
	GetActive(ctx context.Context) (entity.Office, error)
}

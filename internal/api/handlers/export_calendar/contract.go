package export_calendar

import (
	"context"

	exportCalendar "github.com/peppertree17/booking-service/internal/usecase/export_calendar"
)

type ExportCalendarUseCase interface {
	Execute(ctx context.Context) (*exportCalendar.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

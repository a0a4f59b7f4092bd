package export_calendar

import (
	"net/http"

	"github.com/peppertree17/booking-service/internal/api/handlers"
)

type Handler struct {
	useCase ExportCalendarUseCase
	logger  Logger
}

func NewHandler(useCase ExportCalendarUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/calendar/bookings.ics
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.useCase.Execute(r.Context())
	if err != nil {
		h.logger.Error("GET /calendar/bookings.ics - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="calendar.ics"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(result.ICS))
}

package import_calendar

import (
	"errors"
	"net/http"

	"github.com/peppertree17/booking-service/internal/api/handlers"
	importCalendar "github.com/peppertree17/booking-service/internal/usecase/import_calendar"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidInput       = "invalid import request"
	msgFetchFailed        = "failed to fetch the calendar feed"
	msgParseFailed        = "the calendar feed could not be parsed"
)

type Handler struct {
	useCase ImportCalendarUseCase
	logger  Logger
}

func NewHandler(useCase ImportCalendarUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/calendar/import
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req importCalendar.Request
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/calendar/import - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, importCalendar.ErrInvalidInput):
			h.logger.Warn("POST /admin/calendar/import - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, importCalendar.ErrFetchFailed):
			h.logger.Warn("POST /admin/calendar/import - Fetch failed: url=%s, error=%v", req.URL, err)
			handlers.RespondError(w, http.StatusBadGateway, msgFetchFailed)

		case errors.Is(err, importCalendar.ErrParseFailed):
			h.logger.Warn("POST /admin/calendar/import - Parse failed: url=%s, error=%v", req.URL, err)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgParseFailed)

		default:
			h.logger.Error("POST /admin/calendar/import - Failed: url=%s, error=%v", req.URL, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/calendar/import - Import done: platform=%s, imported=%d, skipped=%d",
		req.Platform, result.Imported, result.Skipped)
	handlers.RespondJSON(w, http.StatusOK, result)
}

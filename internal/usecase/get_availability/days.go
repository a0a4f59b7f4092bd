package get_availability

import (
	"time"

	"github.com/peppertree17/booking-service/internal/domain"
	"github.com/peppertree17/booking-service/pkg/types"
)

// occupiedDays разворачивает блокирующие бронирования в отсортированный
// список занятых дней месяца. Каждое бронирование занимает полуинтервал
// [CheckIn, CheckOut): день выезда свободен.
func occupiedDays(year int, month time.Month, bookings []*domain.Booking) []string {
	monthStart := types.NewDate(year, month, 1)
	nextMonth := monthStart.AddDays(daysInMonth(year, month))

	occupied := make(map[types.Date]struct{})
	for _, b := range bookings {
		from := maxDate(b.CheckIn, monthStart)
		to := minDate(b.CheckOut, nextMonth)
		for d := from; d.Before(to); d = d.AddDays(1) {
			occupied[d] = struct{}{}
		}
	}

	out := make([]string, 0, len(occupied))
	for d := monthStart; d.Before(nextMonth); d = d.AddDays(1) {
		if _, ok := occupied[d]; ok {
			out = append(out, d.String())
		}
	}
	return out
}

// daysInMonth число дней в месяце
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func maxDate(a, b types.Date) types.Date {
	if a.After(b) {
		return a
	}
	return b
}

func minDate(a, b types.Date) types.Date {
	if a.Before(b) {
		return a
	}
	return b
}

package import_calendar

// Request запрос на импорт iCal-фида внешней платформы
type Request struct {
	URL      string `json:"icalUrl"`
	Platform string `json:"platform"` // "airbnb", "booking.com", ...
}

// Response итог импорта: события без дубликатов создали бронирования,
// уже известные UID пропущены
type Response struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

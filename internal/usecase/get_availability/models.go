package get_availability

// Request запрос занятости календарного месяца
type Request struct {
	Year  int
	Month int
}

// Response занятые дни месяца.
// День занят, если его покрывает хотя бы одно блокирующее бронирование;
// день выезда свободен для нового заезда и занятым не считается.
type Response struct {
	Year          int      `json:"year"`
	Month         int      `json:"month"`
	OccupiedDates []string `json:"occupiedDates"` // "2025-07-01"
}

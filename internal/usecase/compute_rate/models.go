package compute_rate

// Request запрос на расчет стоимости проживания
type Request struct {
	CheckinDate  string `json:"checkinDate"`  // "2025-12-19"
	CheckoutDate string `json:"checkoutDate"` // "2025-12-22"
	Guests       int    `json:"guests"`
}

// NightPrice цена одной ночи в разбивке стоимости
type NightPrice struct {
	Date        string  `json:"date"`
	Amount      string  `json:"amount"`
	Kind        string  `json:"kind"` // "base" | "special"
	Description *string `json:"description,omitempty"`
}

// Response стоимость проживания с разбивкой по ночам.
// Расчет информационный: итог фиксируется только при создании бронирования.
type Response struct {
	CheckinDate  string       `json:"checkinDate"`
	CheckoutDate string       `json:"checkoutDate"`
	Nights       int          `json:"nights"`
	Guests       int          `json:"guests"`
	Breakdown    []NightPrice `json:"breakdown"`
	Total        string       `json:"total"`
}

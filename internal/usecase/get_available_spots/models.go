package get_available_spots

// Request модель запроса на получение остатка мест
type Request struct {
	TourID       int64 // ID тура
	Participants int   // Запрашиваемое число участников (0 = просто остаток)
}

// Response модель ответа с остатком мест
type Response struct {
	TourID             int64  `json:"tourId"`
	MaxParticipants    int    `json:"maxParticipants"`
	BookedParticipants int    `json:"bookedParticipants"`
	SpotsRemaining     int    `json:"spotsRemaining"`
	IsBookable         bool   `json:"isBookable"`
	CanAccommodate     bool   `json:"canAccommodate"`
	PricePerPerson     string `json:"pricePerPerson"`
	Currency           string `json:"currency"`
}

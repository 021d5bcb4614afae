package submit_review

import "time"

// Request модель запроса на создание отзыва
type Request struct {
	UserID    int64  // ID пользователя, владелец бронирования
	BookingID int64  // ID завершенного бронирования
	Rating    int    // Оценка 1..5
	Title     string // Заголовок отзыва
	Comment   string // Текст отзыва
}

// Response модель ответа с созданным отзывом
type Response struct {
	ID         int64  `json:"id"`
	BookingID  int64  `json:"bookingId"`
	TourID     int64  `json:"tourId"`
	UserID     int64  `json:"userId"`
	Rating     int    `json:"rating"`
	Title      string `json:"title"`
	Comment    string `json:"comment"`
	IsVerified bool   `json:"isVerified"`
	IsApproved bool   `json:"isApproved"`

	CreatedAt time.Time `json:"createdAt"`
}

package create_booking

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ParticipantInput данные одного участника тура
type ParticipantInput struct {
	FullName       string  // Полное имя (обязательно)
	Email          *string // Email (опционально)
	Phone          *string // Телефон (опционально)
	PassportNumber *string // Номер паспорта (опционально)
	DietaryNotes   *string // Диетические ограничения (опционально)
	MedicalNotes   *string // Медицинские заметки (опционально)
}

// Request модель запроса на создание бронирования
type Request struct {
	UserID int64 // ID пользователя
	TourID int64 // ID тура

	// Контактные данные бронирования. Имя по умолчанию берется
	// из первого участника.
	ContactName  string
	ContactEmail string
	ContactPhone string

	Participants    []ParticipantInput // Участники, минимум один
	SpecialRequests *string            // Пожелания к туру (опционально)

	// TotalPriceOverride итоговая стоимость вместо расчётной
	// (price × participants). Стафф-операция для скидок.
	TotalPriceOverride *decimal.Decimal
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID            int64     // Внутренний ID бронирования
	Token         uuid.UUID // Внешний непрозрачный идентификатор
	Reference     string    // Человекочитаемый номер, BK-YYYYMMDD-XXXX
	UserID        int64     // ID пользователя
	TourID        int64     // ID тура
	Participants  int       // Число участников
	Status        string    // Статус бронирования
	PaymentStatus string    // Агрегатный статус оплаты
	TotalPrice    string    // Итоговая стоимость
	Currency      string    // Валюта

	ContactName     string
	ContactEmail    string
	ContactPhone    string
	SpecialRequests *string

	SpotsRemaining int // Остаток мест в туре после создания

	CreatedAt time.Time // Время создания
}

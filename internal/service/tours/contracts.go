package tours

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
)

// TourRepository интерфейс репозитория туров
type TourRepository interface {
	Create(ctx context.Context, tour *domain.Tour) (*domain.Tour, error)
	GetByID(ctx context.Context, id int64) (*domain.Tour, error)
	ListActive(ctx context.Context) ([]*domain.Tour, error)
	Update(ctx context.Context, tour *domain.Tour) error
}

// BookingRepository интерфейс репозитория бронирований.
// Нужен для подсчёта занятых мест при чтении и валидации обновлений.
type BookingRepository interface {
	GetActiveByTour(ctx context.Context, tourID int64) ([]*domain.Booking, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

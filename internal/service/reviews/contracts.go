package reviews

import (
	"context"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
)

// ReviewRepository интерфейс репозитория отзывов
type ReviewRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Review, error)
	GetByTourID(ctx context.Context, tourID int64, approvedOnly bool) ([]*domain.Review, error)
	SetApproved(ctx context.Context, id int64, approved bool) error
}

// TourRepository интерфейс репозитория туров.
// Нужен для проверки прав организатора.
type TourRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Tour, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

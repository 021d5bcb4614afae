package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	"github.com/m04kA/SMC-TourBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TourBookingService/pkg/psqlbuilder"
)

const pgUniqueViolation = "23505"

var reviewColumns = []string{
	"id",
	"booking_id",
	"tour_id",
	"user_id",
	"rating",
	"title",
	"comment",
	"is_verified",
	"is_approved",
	"created_at",
}

// Repository репозиторий для работы с отзывами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория отзывов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает отзыв. Повторный отзыв на то же бронирование
// отклоняется базой (unique (booking_id, tour_id)) и возвращается
// как ErrAlreadyExists.
func (r *Repository) Create(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reviews").
		Columns(
			"booking_id",
			"tour_id",
			"user_id",
			"rating",
			"title",
			"comment",
			"is_verified",
			"is_approved",
		).
		Values(
			review.BookingID,
			review.TourID,
			review.UserID,
			review.Rating,
			review.Title,
			review.Comment,
			review.IsVerified,
			review.IsApproved,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&review.ID,
		&createdAt,
	)

	if isUniqueViolation(err) {
		return nil, ErrAlreadyExists
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	review.CreatedAt = createdAt.Time

	return review, nil
}

// GetByID получает отзыв по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reviewColumns...).
		From("reviews").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	review, err := scanReview(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReviewNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan review: %w", ErrScanRow, err)
	}

	return review, nil
}

// GetByBookingID получает отзыв бронирования, если он есть
func (r *Repository) GetByBookingID(ctx context.Context, bookingID int64) (*domain.Review, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reviewColumns...).
		From("reviews").
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - build select query: %w", ErrBuildQuery, err)
	}

	review, err := scanReview(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReviewNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - scan review: %w", ErrScanRow, err)
	}

	return review, nil
}

// GetByTourID получает отзывы тура.
// approvedOnly ограничивает выборку прошедшими модерацию отзывами
// (публичная витрина); стафф видит все.
func (r *Repository) GetByTourID(ctx context.Context, tourID int64, approvedOnly bool) ([]*domain.Review, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reviewColumns...).
		From("reviews").
		Where(squirrel.Eq{"tour_id": tourID}).
		OrderBy("created_at DESC")

	if approvedOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_approved": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTourID - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTourID - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	reviews := make([]*domain.Review, 0)
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByTourID - scan row: %w", ErrScanRow, err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByTourID - rows error: %w", ErrScanRow, err)
	}

	return reviews, nil
}

// SetApproved выставляет флаг модерации отзыва
func (r *Repository) SetApproved(ctx context.Context, id int64, approved bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reviews").
		Set("is_approved", approved).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetApproved - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetApproved - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetApproved - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReviewNotFound
	}

	return nil
}

func scanReview(row interface{ Scan(dest ...interface{}) error }) (*domain.Review, error) {
	var review domain.Review
	var createdAt sql.NullTime

	err := row.Scan(
		&review.ID,
		&review.BookingID,
		&review.TourID,
		&review.UserID,
		&review.Rating,
		&review.Title,
		&review.Comment,
		&review.IsVerified,
		&review.IsApproved,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	review.CreatedAt = createdAt.Time

	return &review, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgUniqueViolation
	}
	return false
}

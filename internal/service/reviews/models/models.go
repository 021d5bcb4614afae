package models

import (
	"time"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
)

// ListTourReviewsRequest запрос на получение отзывов по туру.
// UserID опционален: организатор тура видит и неопубликованные отзывы.
type ListTourReviewsRequest struct {
	TourID int64
	UserID int64
}

// ApproveReviewRequest запрос на модерацию отзыва
type ApproveReviewRequest struct {
	ReviewID int64
	UserID   int64
	Approved bool
}

// ReviewResponse проекция отзыва
type ReviewResponse struct {
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

// ReviewListResponse ответ со списком отзывов
type ReviewListResponse struct {
	Reviews []ReviewResponse `json:"reviews"`
}

// FromDomainReview конвертирует domain модель в DTO
func FromDomainReview(r *domain.Review) *ReviewResponse {
	if r == nil {
		return nil
	}

	return &ReviewResponse{
		ID:         r.ID,
		BookingID:  r.BookingID,
		TourID:     r.TourID,
		UserID:     r.UserID,
		Rating:     r.Rating,
		Title:      r.Title,
		Comment:    r.Comment,
		IsVerified: r.IsVerified,
		IsApproved: r.IsApproved,
		CreatedAt:  r.CreatedAt,
	}
}

// FromDomainReviewList конвертирует список domain моделей в DTO
func FromDomainReviewList(reviews []*domain.Review) *ReviewListResponse {
	resp := &ReviewListResponse{
		Reviews: make([]ReviewResponse, 0, len(reviews)),
	}

	for _, review := range reviews {
		if dto := FromDomainReview(review); dto != nil {
			resp.Reviews = append(resp.Reviews, *dto)
		}
	}

	return resp
}

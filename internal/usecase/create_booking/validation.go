package create_booking

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.TourID <= 0 {
		return fmt.Errorf("%w: tourID must be positive", ErrInvalidInput)
	}

	if len(req.Participants) == 0 {
		return fmt.Errorf("%w: at least one participant is required", ErrInvalidInput)
	}

	for i, p := range req.Participants {
		if strings.TrimSpace(p.FullName) == "" {
			return fmt.Errorf("%w: participant %d: fullName is required", ErrInvalidInput, i+1)
		}
	}

	if strings.TrimSpace(req.ContactEmail) == "" {
		return fmt.Errorf("%w: contactEmail is required", ErrInvalidInput)
	}

	if req.SpecialRequests != nil && len(*req.SpecialRequests) > domain.MaxSpecialRequestsLength {
		return fmt.Errorf("%w: specialRequests exceeds %d characters", ErrInvalidInput, domain.MaxSpecialRequestsLength)
	}

	if req.TotalPriceOverride != nil && req.TotalPriceOverride.IsNegative() {
		return fmt.Errorf("%w: totalPriceOverride cannot be negative", ErrInvalidInput)
	}

	return nil
}

// totalPrice возвращает итоговую стоимость: явное переопределение из запроса
// либо расчётная цена тура
func totalPrice(req *Request, tour *domain.Tour) decimal.Decimal {
	if req.TotalPriceOverride != nil {
		return *req.TotalPriceOverride
	}
	return tour.TotalPriceFor(len(req.Participants))
}

// contactName возвращает контактное имя: явное из запроса либо
// имя первого участника
func contactName(req *Request) string {
	if name := strings.TrimSpace(req.ContactName); name != "" {
		return name
	}
	return strings.TrimSpace(req.Participants[0].FullName)
}

// toDomainParticipants конвертирует входные данные участников в domain модели
func toDomainParticipants(inputs []ParticipantInput) []*domain.BookingParticipant {
	participants := make([]*domain.BookingParticipant, 0, len(inputs))
	for _, in := range inputs {
		participants = append(participants, &domain.BookingParticipant{
			FullName:       strings.TrimSpace(in.FullName),
			Email:          in.Email,
			Phone:          in.Phone,
			PassportNumber: in.PassportNumber,
			DietaryNotes:   in.DietaryNotes,
			MedicalNotes:   in.MedicalNotes,
		})
	}
	return participants
}

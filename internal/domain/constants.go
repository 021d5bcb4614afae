package domain

// Cancellation policy
const (
	// CancellationNoticeDays минимальное число полных дней до начала тура,
	// при котором бронирование ещё можно отменить
	CancellationNoticeDays = 2
)

// Review validation constants
const (
	MinRating           = 1
	MaxRating           = 5
	MinReviewTitleLen   = 5
	MinReviewCommentLen = 10
)

// Business validation constants
const (
	MaxSpecialRequestsLength    = 500
	MaxCancellationReasonLength = 500
	MaxContactNameLength        = 200
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы бронирований, занимающих места в туре.
// Используется при подсчёте оставшейся вместимости.
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// TerminalStatuses статусы, из которых нет дальнейших переходов
var TerminalStatuses = []BookingStatus{
	StatusCancelled,
	StatusCompleted,
	StatusRefunded,
}

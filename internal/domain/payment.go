package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus represents the status of a single payment transaction
type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "pending"
	PaymentProcessing PaymentStatus = "processing"
	PaymentCompleted  PaymentStatus = "completed"
	PaymentFailed     PaymentStatus = "failed"
	PaymentRefunded   PaymentStatus = "refunded"
)

// PaymentMethod represents how a payment was made
type PaymentMethod string

const (
	MethodCard         PaymentMethod = "card"
	MethodCash         PaymentMethod = "cash"
	MethodBankTransfer PaymentMethod = "bank_transfer"
)

// PaymentType represents which part of the booking total the payment covers
type PaymentType string

const (
	TypeFull    PaymentType = "full"
	TypeDeposit PaymentType = "deposit"
	TypeBalance PaymentType = "balance"
	TypeRefund  PaymentType = "refund"
)

// Payment represents a single payment transaction against a booking.
// A booking may have many payments; the booking's aggregate payment status
// is recomputed from the completed ones.
type Payment struct {
	ID            int64
	TransactionID string // TXN-YYYYMMDDHHMMSS-XXXXXX
	BookingID     int64
	Amount        decimal.Decimal
	Currency      string
	Method        PaymentMethod
	Type          PaymentType
	Status        PaymentStatus

	// GatewayResponse opaque payload from the payment gateway, stored as-is
	GatewayResponse json.RawMessage

	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// CanBeProcessed returns true if the payment can still be completed or failed
func (p *Payment) CanBeProcessed() bool {
	return p.Status == PaymentPending || p.Status == PaymentProcessing
}

// IsCompleted returns true if the payment went through
func (p *Payment) IsCompleted() bool {
	return p.Status == PaymentCompleted
}

// DerivePaymentStatus computes a booking's aggregate payment status from the
// sum of its completed payments. This is the single source of truth for the
// booking payment_status field.
func DerivePaymentStatus(totalPrice, completedSum decimal.Decimal) BookingPaymentStatus {
	switch {
	case completedSum.GreaterThanOrEqual(totalPrice) && totalPrice.IsPositive():
		return PaymentStatusPaid
	case completedSum.IsPositive():
		return PaymentStatusPartial
	default:
		return PaymentStatusUnpaid
	}
}

// SumCompleted sums the amounts of completed payments
func SumCompleted(payments []*Payment) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range payments {
		if p.IsCompleted() {
			sum = sum.Add(p.Amount)
		}
	}
	return sum
}

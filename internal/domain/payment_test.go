package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPayment_CanBeProcessed(t *testing.T) {
	tests := []struct {
		status PaymentStatus
		want   bool
	}{
		{PaymentPending, true},
		{PaymentProcessing, true},
		{PaymentCompleted, false},
		{PaymentFailed, false},
		{PaymentRefunded, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			p := &Payment{Status: tt.status}
			assert.Equal(t, tt.want, p.CanBeProcessed())
		})
	}
}

func TestDerivePaymentStatus(t *testing.T) {
	total := decimal.RequireFromString("300.00")

	tests := []struct {
		name         string
		completedSum decimal.Decimal
		want         BookingPaymentStatus
	}{
		{"ничего не оплачено", decimal.Zero, PaymentStatusUnpaid},
		{"частичная оплата", decimal.RequireFromString("100.00"), PaymentStatusPartial},
		{"оплачено точно", decimal.RequireFromString("300.00"), PaymentStatusPaid},
		{"переплата", decimal.RequireFromString("350.00"), PaymentStatusPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DerivePaymentStatus(total, tt.completedSum))
		})
	}
}

func TestDerivePaymentStatus_ZeroTotal(t *testing.T) {
	// Бронирование с нулевой стоимостью не считается оплаченным
	// при нулевой сумме платежей.
	assert.Equal(t, PaymentStatusUnpaid, DerivePaymentStatus(decimal.Zero, decimal.Zero))
}

func TestSumCompleted(t *testing.T) {
	payments := []*Payment{
		{Status: PaymentCompleted, Amount: decimal.RequireFromString("100.00")},
		{Status: PaymentCompleted, Amount: decimal.RequireFromString("50.25")},
		{Status: PaymentPending, Amount: decimal.RequireFromString("200.00")},
		{Status: PaymentFailed, Amount: decimal.RequireFromString("300.00")},
	}

	assert.True(t, decimal.RequireFromString("150.25").Equal(SumCompleted(payments)))
}

func TestSumCompleted_Empty(t *testing.T) {
	assert.True(t, decimal.Zero.Equal(SumCompleted(nil)))
}

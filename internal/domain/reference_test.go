package domain

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewBookingReference_Format(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 30, 45, 0, time.UTC)

	ref := NewBookingReference(now)

	assert.Regexp(t, regexp.MustCompile(`^BK-20250615-[0-9A-Z]{4}$`), ref)
}

func TestNewTransactionID_Format(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 30, 45, 0, time.UTC)

	txnID := NewTransactionID(now)

	assert.Regexp(t, regexp.MustCompile(`^TXN-20250615123045-[0-9A-Z]{6}$`), txnID)
}

func TestNewBookingReference_Varies(t *testing.T) {
	now := time.Now()

	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		seen[NewBookingReference(now)] = struct{}{}
	}

	// Случайный суффикс: 50 генераций практически не могут дать один вариант
	assert.Greater(t, len(seen), 1)
}

package domain

import (
	"crypto/rand"
	"fmt"
	"time"
)

// base36Alphabet uppercase alphanumeric charset used in external identifiers
const base36Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

const (
	bookingReferenceSuffixLen = 4
	transactionIDSuffixLen    = 6
)

// NewBookingReference generates a booking reference of the form
// BK-YYYYMMDD-XXXX. Uniqueness is enforced by the database; callers retry
// generation on collision.
func NewBookingReference(now time.Time) string {
	return fmt.Sprintf("BK-%s-%s", now.Format("20060102"), randBase36(bookingReferenceSuffixLen))
}

// NewTransactionID generates a payment transaction id of the form
// TXN-YYYYMMDDHHMMSS-XXXXXX. Uniqueness is enforced by the database; callers
// retry generation on collision.
func NewTransactionID(now time.Time) string {
	return fmt.Sprintf("TXN-%s-%s", now.Format("20060102150405"), randBase36(transactionIDSuffixLen))
}

func randBase36(n int) string {
	buf := make([]byte, n)
	// crypto/rand.Read на всех поддерживаемых платформах не возвращает ошибку
	_, _ = rand.Read(buf)
	for i := range buf {
		buf[i] = base36Alphabet[int(buf[i])%len(base36Alphabet)]
	}
	return string(buf)
}

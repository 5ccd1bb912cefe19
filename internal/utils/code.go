package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// codeAlphabet deliberately omits 0/O and 1/I so reservation codes can
// be read over the phone without ambiguity.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// NewReservationCode generates a short human-facing reservation code
// like "RES-7KQ2M9".  Codes are random; the database enforces
// per-hotel uniqueness and callers retry on a duplicate key.
func NewReservationCode() (string, error) {
	buf := make([]byte, 6)
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = codeAlphabet[n.Int64()]
	}
	return fmt.Sprintf("RES-%s", buf), nil
}

// NewInvoiceNumber formats a sequential per-hotel invoice number.  The
// sequence value comes from the repository (MAX + 1 inside the insert
// transaction).
func NewInvoiceNumber(seq uint64) string {
	return fmt.Sprintf("INV-%06d", seq)
}

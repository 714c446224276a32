package utils

import (
	"crypto/rand"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateRandomString returns n characters from an unambiguous uppercase alphabet.
func GenerateRandomString(n int) string {
	b := make([]byte, n)
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic("crypto/rand unavailable")
		}
		b[i] = codeAlphabet[idx.Int64()]
	}
	return string(b)
}

// GenerateVoucherCode builds a code like "VC-3F9A12BC".
func GenerateVoucherCode() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "VC-" + strings.ToUpper(id[:8])
}

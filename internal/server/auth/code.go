package auth

import (
	"crypto/rand"
	"encoding/binary"
)

// NewVerificationCode returns a uniformly random 32-bit single-use code.
// Persistence is the caller's responsibility.
func NewVerificationCode() (uint32, error) {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(buf[:]), nil
}

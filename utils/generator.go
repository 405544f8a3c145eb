package utils

import (
	"math/rand"
	"time"
)

const initialPasswordLength = 12
const passwordBytes = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateInitialPassword builds a random password for admin-created accounts.
// The user is expected to change it after first login.
func GenerateInitialPassword() string {
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))

	b := make([]byte, initialPasswordLength)
	for i := range b {
		b[i] = passwordBytes[seededRand.Intn(len(passwordBytes))]
	}
	return string(b)
}

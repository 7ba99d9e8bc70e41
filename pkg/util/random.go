package util

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

// RandomHex returns n random uppercase hexadecimal characters.
func RandomHex(n int) string {
	buf := make([]byte, (n+1)/2)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand only fails when the OS entropy source is broken
		panic(err)
	}
	return strings.ToUpper(hex.EncodeToString(buf))[:n]
}

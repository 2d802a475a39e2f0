package utils

import (
	"crypto/rand"
	"fmt"
)

// Same 64-character alphabet nanoid uses; 8 characters give 64^8 ≈ 2.8e14
// combinations. Collisions are not actively checked.
const idAlphabet = "useandom-26T198340PX75pxJACKVERYMINDBUSHWOLF_GQZbfghjklqvwyzrict"

// NewSessionID returns a short random opaque session identifier.
func NewSessionID() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session id: %w", err)
	}
	for i, b := range buf {
		buf[i] = idAlphabet[b&63]
	}
	return string(buf), nil
}

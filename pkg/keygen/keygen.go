package keygen

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"
)

// Prefix identifies secrets issued by this service. Keys look like
// "lpk_<url-safe-base64>".
const Prefix = "lpk_"

// keyBytes is the number of random bytes per key (256 bits).
const keyBytes = 32

// NewKey generates a cryptographically random, URL-safe API key secret.
func NewKey() (string, error) {
	raw := make([]byte, keyBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return Prefix + base64.RawURLEncoding.EncodeToString(raw), nil
}

// ValidFormat reports whether s looks like a key this service could have
// issued. It is a cheap check that lets validation reject garbage without a
// storage lookup; it says nothing about whether the key actually exists.
func ValidFormat(s string) bool {
	if !strings.HasPrefix(s, Prefix) {
		return false
	}
	body := s[len(Prefix):]
	if body == "" {
		return false
	}
	for _, c := range body {
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '-' || c == '_':
		default:
			return false
		}
	}
	return true
}

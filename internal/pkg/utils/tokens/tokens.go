package tokens

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// ParseToken strips prefix from raw. The prefix match is case-insensitive
// so "bearer x" and "Bearer x" both parse.
func ParseToken(raw, prefix string) (token string, ok bool) {
	if len(raw) < len(prefix) || !strings.EqualFold(raw[:len(prefix)], prefix) {
		return "", false
	}
	token = strings.TrimSpace(raw[len(prefix):])
	return token, token != ""
}

func HMAC256Hex(pepper, secret string) string {
	m := hmac.New(sha256.New, []byte(pepper))
	m.Write([]byte(secret))
	return hex.EncodeToString(m.Sum(nil)) // 64 hex chars
}

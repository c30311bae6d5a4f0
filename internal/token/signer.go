package token

import (
	"encoding/base64"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// MAC (Message Authentication Code) used for every token signature
var signingMethod = jwt.SigningMethodHS256

// Sign content with the secret and return base64 encoded HMAC-SHA256 digest
// Deterministic: the same content and secret always give the same signature
func Sign(content string, secret string) (string, error) {
	mac, err := signingMethod.Sign(content, []byte(secret))
	if err != nil {
		return "", fmt.Errorf("error while signing content. Err: %w", err)
	}

	return base64.StdEncoding.EncodeToString(mac), nil
}

// Check that signature is a valid signature of content made with the secret
// Signature bytes compared in constant time
func Verify(content string, signature string, secret string) bool {
	if secret == "" {
		return false
	}

	// Strict decoding rejects non-canonical padding bits,
	// so two different signature strings never decode to the same digest
	mac, err := base64.StdEncoding.Strict().DecodeString(signature)
	if err != nil {
		return false
	}

	return signingMethod.Verify(content, mac, []byte(secret)) == nil
}

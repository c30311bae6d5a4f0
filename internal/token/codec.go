package token

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nkiryanov/sat/internal/apperrors"
)

const (
	segmentSeparator = "."
	segmentsCount    = 3
)

// Alphabet has no '.' so the separator is unambiguous
var segmentEncoding = base64.StdEncoding

// Token split into its three segments; each is still base64 encoded
type segments struct {
	claims    string
	payload   string
	signature string
}

// Signed part of the token: "claims.payload"
func (s segments) content() string {
	return s.claims + segmentSeparator + s.payload
}

// Serialize claims and payload into "base64(json(claims)).base64(json(payload))"
func assemble(claims Claims, payload any) (string, error) {
	claimsSegment, err := encodeSegment(claims)
	if err != nil {
		return "", fmt.Errorf("error while encoding claims. Err: %w", err)
	}

	payloadSegment, err := encodeSegment(payload)
	if err != nil {
		return "", fmt.Errorf("error while encoding payload. Err: %w", err)
	}

	return claimsSegment + segmentSeparator + payloadSegment, nil
}

// Split token into segments
// Token must contain exactly three segments
func parse(token string) (segments, error) {
	parts := strings.Split(token, segmentSeparator)
	if len(parts) != segmentsCount {
		return segments{}, fmt.Errorf("expected %d segments, got %d: %w", segmentsCount, len(parts), apperrors.ErrMalformedToken)
	}

	return segments{
		claims:    parts[0],
		payload:   parts[1],
		signature: parts[2],
	}, nil
}

func decodeClaims(segment string) (Claims, error) {
	var claims Claims

	data, err := segmentEncoding.DecodeString(segment)
	if err != nil {
		return claims, fmt.Errorf("claims segment is not base64: %w", apperrors.ErrMalformedToken)
	}

	if err := json.Unmarshal(data, &claims); err != nil {
		return claims, fmt.Errorf("claims segment is not valid JSON: %w", apperrors.ErrMalformedToken)
	}

	return claims, nil
}

func decodePayload(segment string) (json.RawMessage, error) {
	data, err := segmentEncoding.DecodeString(segment)
	if err != nil {
		return nil, fmt.Errorf("payload segment is not base64: %w", apperrors.ErrMalformedToken)
	}

	if !json.Valid(data) {
		return nil, fmt.Errorf("payload segment is not valid JSON: %w", apperrors.ErrMalformedToken)
	}

	return json.RawMessage(data), nil
}

func encodeSegment(value any) (string, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return "", err
	}

	return segmentEncoding.EncodeToString(data), nil
}

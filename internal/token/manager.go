package token

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nkiryanov/sat/internal/apperrors"
	"github.com/nkiryanov/sat/internal/logger"
)

const (
	DefaultExpiry        = 3600 * time.Second
	DefaultRefreshWindow = 86400 * time.Second
)

// Token manager with sensible defaults
type Config struct {
	// Token lifetime and refresh window used when a call does not set its own
	// If not set than default is used
	Expiry        time.Duration
	RefreshWindow time.Duration

	// Time source. SystemClock if not set
	Clock Clock

	// Logger for rejected tokens. Discards everything if not set
	Logger logger.Logger
}

// Per call windows
// Window that is not set takes the manager default. Zero is a valid window:
// zero expiry gives a token with exp equal to iat
type Windows struct {
	expiry        *time.Duration
	refreshWindow *time.Duration
}

// Return copy of the windows with expiry set
func (w Windows) WithExpiry(d time.Duration) Windows {
	w.expiry = &d
	return w
}

// Return copy of the windows with refresh window set
func (w Windows) WithRefreshWindow(d time.Duration) Windows {
	w.refreshWindow = &d
	return w
}

// Claims of a verified token and where the token is in its lifecycle
type Status struct {
	Claims      Claims
	Expired     bool
	Refreshable bool
}

// Manager issues and checks tokens
// It keeps no secrets and no per-token state, so it is safe for concurrent use
type Manager struct {
	expiry        time.Duration
	refreshWindow time.Duration
	clock         Clock
	logger        logger.Logger
}

func New(cfg Config) *Manager {
	setDefaultDuration := func(field *time.Duration, def time.Duration) {
		if *field == 0 {
			*field = def
		}
	}
	setDefaultDuration(&cfg.Expiry, DefaultExpiry)
	setDefaultDuration(&cfg.RefreshWindow, DefaultRefreshWindow)

	if cfg.Clock == nil {
		cfg.Clock = SystemClock
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.NewNoOpLogger()
	}

	return &Manager{
		expiry:        cfg.Expiry,
		refreshWindow: cfg.RefreshWindow,
		clock:         cfg.Clock,
		logger:        cfg.Logger.With("component", "token"),
	}
}

// Encode payload into a new signed token
func (m *Manager) Encode(payload any, secret string, w Windows) (string, error) {
	if secret == "" {
		return "", m.reject("encode", apperrors.ErrEmptySecret)
	}

	expiry, refreshWindow := m.windows(w)
	claims := NewClaims(m.clock.Now(), expiry, refreshWindow)

	return m.issue(claims, payload, secret)
}

// Report whether the token is signed with the secret
// Claims are not checked: expired tokens verify fine
func (m *Manager) Verify(token string, secret string) bool {
	s, err := parse(token)
	if err != nil {
		return false
	}

	return Verify(s.content(), s.signature, secret)
}

// Decode payload of a signed and not expired token
func (m *Manager) Decode(token string, secret string) (json.RawMessage, error) {
	s, err := m.verified(token, secret)
	if err != nil {
		return nil, m.reject("decode", err)
	}

	claims, err := decodeClaims(s.claims)
	if err != nil {
		return nil, m.reject("decode", err)
	}

	if claims.IsExpired(m.clock.Now()) {
		return nil, m.reject("decode", apperrors.ErrExpiredToken)
	}

	payload, err := decodePayload(s.payload)
	if err != nil {
		return nil, m.reject("decode", err)
	}

	return payload, nil
}

// Report whether the token is not expired
//
// It takes the whole token and reads its first (claims) segment only.
// Bare claims segment is accepted too, cause it is its own first segment.
// Signature is NOT checked, use Decode or Inspect when the token comes from an untrusted party.
func (m *Manager) Validate(token string) bool {
	claimsSegment, _, _ := strings.Cut(token, segmentSeparator)

	claims, err := decodeClaims(claimsSegment)
	if err != nil {
		return false
	}

	return !claims.IsExpired(m.clock.Now())
}

// Issue a new token with the payload of the given one and fresh claims
// The given token is not revoked and stays valid until it expires
func (m *Manager) Refresh(token string, secret string, w Windows) (string, error) {
	if secret == "" {
		return "", m.reject("refresh", apperrors.ErrEmptySecret)
	}

	s, err := m.verified(token, secret)
	if err != nil {
		return "", m.reject("refresh", err)
	}

	claims, err := decodeClaims(s.claims)
	if err != nil {
		return "", m.reject("refresh", err)
	}

	now := m.clock.Now()
	if !claims.IsRefreshable(now) {
		return "", m.reject("refresh", apperrors.ErrTokenNotRefreshable)
	}

	payload, err := decodePayload(s.payload)
	if err != nil {
		return "", m.reject("refresh", err)
	}

	expiry, refreshWindow := m.windows(w)

	return m.issue(NewClaims(now, expiry, refreshWindow), payload, secret)
}

// Return claims of a signed token together with its expiry and refresh state
// Expired or unrefreshable tokens are not an error here
func (m *Manager) Inspect(token string, secret string) (Status, error) {
	s, err := m.verified(token, secret)
	if err != nil {
		return Status{}, m.reject("inspect", err)
	}

	claims, err := decodeClaims(s.claims)
	if err != nil {
		return Status{}, m.reject("inspect", err)
	}

	now := m.clock.Now()

	return Status{
		Claims:      claims,
		Expired:     claims.IsExpired(now),
		Refreshable: claims.IsRefreshable(now),
	}, nil
}

// Read claims without signature verification
func ParseClaims(token string) (Claims, error) {
	s, err := parse(token)
	if err != nil {
		return Claims{}, err
	}

	return decodeClaims(s.claims)
}

// Decode payload of the token into T
func DecodeInto[T any](m *Manager, token string, secret string) (T, error) {
	var value T

	payload, err := m.Decode(token, secret)
	if err != nil {
		return value, err
	}

	if err := json.Unmarshal(payload, &value); err != nil {
		return value, fmt.Errorf("error while unmarshalling payload. Err: %w", err)
	}

	return value, nil
}

func (m *Manager) issue(claims Claims, payload any, secret string) (string, error) {
	content, err := assemble(claims, payload)
	if err != nil {
		return "", err
	}

	signature, err := Sign(content, secret)
	if err != nil {
		return "", err
	}

	return content + segmentSeparator + signature, nil
}

// Parse token and check its signature
// Any failure, wrong segments count included, is reported as invalid signature
func (m *Manager) verified(token string, secret string) (segments, error) {
	s, err := parse(token)
	if err != nil {
		return s, fmt.Errorf("%w: %w", apperrors.ErrInvalidSignature, err)
	}

	if !Verify(s.content(), s.signature, secret) {
		return s, apperrors.ErrInvalidSignature
	}

	return s, nil
}

// Resolve per call windows against the manager defaults
func (m *Manager) windows(w Windows) (expiry time.Duration, refreshWindow time.Duration) {
	expiry, refreshWindow = m.expiry, m.refreshWindow
	if w.expiry != nil {
		expiry = *w.expiry
	}
	if w.refreshWindow != nil {
		refreshWindow = *w.refreshWindow
	}
	return expiry, refreshWindow
}

// Log rejected operation and return the error as is
// Never log token or secret values here
func (m *Manager) reject(op string, err error) error {
	m.logger.Debug("token rejected", "op", op, "reason", err.Error())
	return err
}

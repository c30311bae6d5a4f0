package token

import (
	"time"
)

// Time source used to build and check claims
type Clock interface {
	Now() time.Time
}

// Allow to use a function as Clock
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// Clock that reads the wall clock
var SystemClock Clock = ClockFunc(time.Now)

// Claims embedded into every token
// All values are Unix timestamps in whole seconds
type Claims struct {
	// Issued at
	IssuedAt int64 `json:"iat"`

	// Token is expired after this moment
	ExpiresAt int64 `json:"exp"`

	// Token may be refreshed until this moment (inclusive)
	// Independent of ExpiresAt: it may be before or after it
	RefreshBefore int64 `json:"rbt"`
}

// Build claims for a token issued at now
// Negative windows are allowed and produce already expired or already unrefreshable claims
func NewClaims(now time.Time, expiry time.Duration, refreshWindow time.Duration) Claims {
	iat := now.Unix()

	return Claims{
		IssuedAt:      iat,
		ExpiresAt:     iat + int64(expiry/time.Second),
		RefreshBefore: iat + int64(refreshWindow/time.Second),
	}
}

func (c Claims) IsExpired(now time.Time) bool {
	return c.ExpiresAt < now.Unix()
}

func (c Claims) IsRefreshable(now time.Time) bool {
	return c.RefreshBefore >= now.Unix()
}

package subscription

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"time"
)

// PendingRecord is the per-address record kept while a subscription awaits
// verification. The pending resource maps email address -> PendingRecord.
type PendingRecord struct {
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
}

// Expired reports whether the record is older than ttl at the given time.
// A ttl of zero disables expiry.
func (r PendingRecord) Expired(ttl time.Duration, now time.Time) bool {
	return ttl > 0 && now.Sub(r.CreatedAt) > ttl
}

// State is the position of an email address in the subscription workflow.
type State string

const (
	StateUnknown  State = "unknown"
	StatePending  State = "pending"
	StateVerified State = "verified"
)

var (
	ErrAlreadyPending  = errors.New("a verification is already pending for this email")
	ErrAlreadyVerified = errors.New("email is already subscribed")
	// ErrInvalidCode covers every verification failure mode: unknown address,
	// wrong code, expired code. Callers must not distinguish them.
	ErrInvalidCode   = errors.New("invalid or expired verification code")
	ErrNotSubscribed = errors.New("email is not subscribed")
)

// GenerateCode returns a random 6-digit verification code in [100000, 999999].
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}
	return strconv.FormatInt(n.Int64()+100000, 10), nil
}

// SubscribeRequest represents the request to start a subscription
type SubscribeRequest struct {
	Email string `json:"email" form:"email"`
}

// VerifyRequest represents the request to confirm a pending subscription
type VerifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

package entity

import (
	"errors"
	"time"
)

// OTPTTL is the validity window of an issued code. It is not configurable
// so that callers cannot widen it per request.
const OTPTTL = 5 * time.Minute

var (
	// ErrUsernameTaken reports a username uniqueness violation.
	ErrUsernameTaken = errors.New("identity: username already taken")
	// ErrPhoneTaken reports a phone uniqueness violation.
	ErrPhoneTaken = errors.New("identity: phone already taken")
)

// OTP is an outstanding verification code together with its expiry. An
// account either holds both values or neither.
type OTP struct {
	Code      string
	ExpiresAt time.Time
}

// NewOTP pairs code with an expiry OTPTTL after now.
func NewOTP(code string, now time.Time) OTP {
	return OTP{Code: code, ExpiresAt: now.Add(OTPTTL)}
}

// ValidAt reports whether the code is still usable at now. The expiry
// instant itself is already expired.
func (o OTP) ValidAt(now time.Time) bool {
	return now.Before(o.ExpiresAt)
}

// Account is a registered user.
type Account struct {
	ID              int64
	FullName        string
	Username        string
	Phone           string
	Email           *string
	PasswordHash    string
	PhoneVerifiedAt *time.Time
	OTP             *OTP
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// State derives the verification state from the stored fields.
func (a Account) State() State {
	if a.PhoneVerifiedAt != nil {
		return StateVerified
	}
	return StatePendingVerification
}

// IsVerified reports whether the phone number was confirmed.
func (a Account) IsVerified() bool {
	return a.State() == StateVerified
}

// ProfileUpdate carries the optional fields of a profile patch. Nil means
// leave unchanged.
type ProfileUpdate struct {
	FullName  *string
	Username  *string
	UpdatedAt time.Time
}

// IsEmpty reports whether the patch changes nothing.
func (p ProfileUpdate) IsEmpty() bool {
	return p.FullName == nil && p.Username == nil
}

package otp

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	libOTP "github.com/pquerna/otp"
)

// Generator produces one-time codes.
type Generator interface {
	Generate() string
}

// Numeric draws codes uniformly from [0, 10^digits) and zero-pads them.
type Numeric struct {
	digits libOTP.Digits
	max    *big.Int
	rand   io.Reader
}

// NewNumeric returns a generator backed by crypto/rand.
//
// Digits other than six or eight fall back to six.
func NewNumeric(digits libOTP.Digits) *Numeric {
	return newNumeric(digits, rand.Reader)
}

func newNumeric(digits libOTP.Digits, r io.Reader) *Numeric {
	if digits != libOTP.DigitsSix && digits != libOTP.DigitsEight {
		digits = libOTP.DigitsSix
	}

	return &Numeric{
		digits: digits,
		max:    new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits.Length())), nil),
		rand:   r,
	}
}

// Generate returns a fresh code.
//
// It panics when the random source fails: a process that cannot read
// randomness must not keep issuing codes.
func (n *Numeric) Generate() string {
	v, err := rand.Int(n.rand, n.max)
	if err != nil {
		panic(fmt.Sprintf("otp: random source failed: %v", err))
	}

	return n.digits.Format(int32(v.Int64()))
}

// Length returns the number of characters in every generated code.
func (n *Numeric) Length() int {
	return n.digits.Length()
}

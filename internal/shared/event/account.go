// Package event holds the destinations and payloads of events shared between
// modules and external consumers.
package event

import "time"

const AccountRegisteredDestination string = "phonegate.identity.account_registered"

const PhoneVerifiedDestination string = "phonegate.identity.phone_verified"

type AccountRegisteredMessage struct {
	UserID   int64  `json:"user_id,string"`
	Username string `json:"username"`
	Phone    string `json:"phone"`
}

type PhoneVerifiedMessage struct {
	UserID     int64     `json:"user_id,string"`
	Phone      string    `json:"phone"`
	VerifiedAt time.Time `json:"verified_at"`
}

package sms

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	// DriverTwilio selects the Twilio Programmable Messaging driver.
	DriverTwilio = "twilio"
	// DriverLog selects the logging driver.
	DriverLog = "log"
)

var (
	// ErrUnknownDriver indicates an unsupported sms driver.
	ErrUnknownDriver = errors.New("sms: unknown driver")
	// ErrRecipientRequired is returned when the destination number is empty.
	ErrRecipientRequired = errors.New("sms: recipient is required")
	// ErrBodyRequired is returned when the message body is empty.
	ErrBodyRequired = errors.New("sms: body is required")
)

// Sender delivers one text message and returns the provider message id.
type Sender interface {
	Send(ctx context.Context, to, body string) (messageID string, err error)
}

// FactoryOptions groups config for supported sms drivers.
type FactoryOptions struct {
	Twilio TwilioConfig
}

// NewFromDriver constructs a Sender by driver name.
func NewFromDriver(driver string, opts FactoryOptions) (Sender, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case DriverTwilio:
		return NewTwilio(opts.Twilio)
	case DriverLog, "":
		return NewLog(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, driver)
	}
}

func checkMessage(ctx context.Context, to, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(to) == "" {
		return ErrRecipientRequired
	}
	if body == "" {
		return ErrBodyRequired
	}
	return nil
}

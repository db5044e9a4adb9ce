package sms

import (
	"context"
	"errors"
	"fmt"

	twilio "github.com/twilio/twilio-go"
	twilioclient "github.com/twilio/twilio-go/client"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

var (
	// ErrTwilioCredentialsRequired is returned when the account sid or auth token is missing.
	ErrTwilioCredentialsRequired = errors.New("sms: twilio account sid and auth token are required")
	// ErrTwilioSenderRequired is returned when the from number is missing.
	ErrTwilioSenderRequired = errors.New("sms: twilio from number is required")
)

// TwilioConfig configures the Twilio driver.
type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	// From is the Twilio phone number messages are sent from, in E.164 form.
	From string
}

type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// Twilio sends messages through the Twilio REST API.
type Twilio struct {
	api  messageCreator
	from string
}

// NewTwilio builds a Twilio sender from credentials.
func NewTwilio(cfg TwilioConfig) (*Twilio, error) {
	if cfg.AccountSID == "" || cfg.AuthToken == "" {
		return nil, ErrTwilioCredentialsRequired
	}
	if cfg.From == "" {
		return nil, ErrTwilioSenderRequired
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})

	return &Twilio{api: client.Api, from: cfg.From}, nil
}

// Send creates one outbound message. The Twilio client does not accept a
// context, so ctx is only checked before the request is made.
func (t *Twilio) Send(ctx context.Context, to, body string) (string, error) {
	if err := checkMessage(ctx, to, body); err != nil {
		return "", err
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(t.from)
	params.SetBody(body)

	msg, err := t.api.CreateMessage(params)
	if err != nil {
		var restErr *twilioclient.TwilioRestError
		if errors.As(err, &restErr) {
			return "", fmt.Errorf("sms: twilio rejected message: %d %s", restErr.Code, restErr.Message)
		}
		return "", fmt.Errorf("sms: twilio create message: %w", err)
	}

	if msg == nil || msg.Sid == nil {
		return "", nil
	}
	return *msg.Sid, nil
}

package sms

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	twilioclient "github.com/twilio/twilio-go/client"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

type fakeCreator struct {
	got *twilioApi.CreateMessageParams
	msg *twilioApi.ApiV2010Message
	err error
}

func (f *fakeCreator) CreateMessage(p *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error) {
	f.got = p
	return f.msg, f.err
}

func TestNewFromDriver(t *testing.T) {
	s, err := NewFromDriver("", FactoryOptions{})
	require.NoError(t, err)
	assert.IsType(t, &Log{}, s)

	_, err = NewFromDriver("carrier-pigeon", FactoryOptions{})
	require.ErrorIs(t, err, ErrUnknownDriver)

	_, err = NewFromDriver(DriverTwilio, FactoryOptions{})
	require.ErrorIs(t, err, ErrTwilioCredentialsRequired)

	_, err = NewFromDriver(DriverTwilio, FactoryOptions{Twilio: TwilioConfig{AccountSID: "AC1", AuthToken: "tok"}})
	require.ErrorIs(t, err, ErrTwilioSenderRequired)

	s, err = NewFromDriver(" Twilio ", FactoryOptions{Twilio: TwilioConfig{AccountSID: "AC1", AuthToken: "tok", From: "+15005550006"}})
	require.NoError(t, err)
	assert.IsType(t, &Twilio{}, s)
}

func TestTwilio_Send(t *testing.T) {
	sid := "SM123"
	fc := &fakeCreator{msg: &twilioApi.ApiV2010Message{Sid: &sid}}
	tw := &Twilio{api: fc, from: "+15005550006"}

	id, err := tw.Send(context.Background(), "+998901234567", "Your verification code is: 123456.")
	require.NoError(t, err)
	assert.Equal(t, "SM123", id)

	require.NotNil(t, fc.got)
	assert.Equal(t, "+998901234567", *fc.got.To)
	assert.Equal(t, "+15005550006", *fc.got.From)
	assert.Equal(t, "Your verification code is: 123456.", *fc.got.Body)
}

func TestTwilio_SendErrors(t *testing.T) {
	tests := []struct {
		name    string
		ctx     func() context.Context
		to      string
		body    string
		creator *fakeCreator
		wantIs  error
		wantMsg string
	}{
		{name: "empty recipient", to: " ", body: "x", creator: &fakeCreator{}, wantIs: ErrRecipientRequired},
		{name: "empty body", to: "+998901234567", creator: &fakeCreator{}, wantIs: ErrBodyRequired},
		{
			name: "canceled",
			ctx: func() context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx
			},
			to: "+998901234567", body: "x", creator: &fakeCreator{}, wantIs: context.Canceled,
		},
		{
			name: "rest error", to: "+998901234567", body: "x",
			creator: &fakeCreator{err: &twilioclient.TwilioRestError{Code: 21211, Message: "Invalid 'To' Phone Number"}},
			wantMsg: "sms: twilio rejected message: 21211 Invalid 'To' Phone Number",
		},
		{
			name: "transport error", to: "+998901234567", body: "x",
			creator: &fakeCreator{err: errors.New("dial tcp: timeout")},
			wantMsg: "sms: twilio create message: dial tcp: timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			if tt.ctx != nil {
				ctx = tt.ctx()
			}
			tw := &Twilio{api: tt.creator, from: "+15005550006"}

			id, err := tw.Send(ctx, tt.to, tt.body)
			require.Error(t, err)
			assert.Empty(t, id)
			if tt.wantIs != nil {
				require.ErrorIs(t, err, tt.wantIs)
				assert.Nil(t, tt.creator.got)
			}
			if tt.wantMsg != "" {
				assert.EqualError(t, err, tt.wantMsg)
			}
		})
	}
}

func TestLog_Send(t *testing.T) {
	l := NewLog()

	id, err := l.Send(context.Background(), "+998901234567", "hello")
	require.NoError(t, err)
	assert.Equal(t, "log-1", id)

	id, err = l.Send(context.Background(), "+998901234567", "hello")
	require.NoError(t, err)
	assert.Equal(t, "log-2", id)

	_, err = l.Send(context.Background(), "", "hello")
	require.ErrorIs(t, err, ErrRecipientRequired)
}

package mq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/azizbek-web-dev/phonegate/internal/identity/usecase"
	"github.com/azizbek-web-dev/phonegate/internal/pkg/instrument"
	"github.com/azizbek-web-dev/phonegate/internal/pkg/messaging"
	"github.com/azizbek-web-dev/phonegate/internal/shared/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	destination string
	msg         messaging.OutgoingMessage
	err         error
}

func (f *fakePublisher) Publish(_ context.Context, destination string, msg messaging.OutgoingMessage) (messaging.PublishResult, error) {
	f.destination = destination
	f.msg = msg
	return messaging.PublishResult{Topic: destination}, f.err
}

func TestMessaging_PublishAccountRegistered(t *testing.T) {
	pub := &fakePublisher{}
	ctx := instrument.SetCorrelationID(context.Background(), "cid-1")

	err := NewMessaging(pub, instrument.NewNoop()).PublishAccountRegistered(ctx, usecase.AccountRegisteredEvent{
		UserID:   1234567890123456789,
		Username: "alice",
		Phone:    "+998901234567",
	})

	require.NoError(t, err)
	assert.Equal(t, event.AccountRegisteredDestination, pub.destination)
	assert.JSONEq(t, `{"user_id":"1234567890123456789","username":"alice","phone":"+998901234567"}`, string(pub.msg.Body))
	assert.Equal(t, []byte("1234567890123456789"), pub.msg.Key)
	assert.Equal(t, []messaging.Header{{Key: "cID", Value: []byte("cid-1")}}, pub.msg.Headers)
}

func TestMessaging_PublishPhoneVerified(t *testing.T) {
	pub := &fakePublisher{}
	at := time.Date(2026, 1, 2, 15, 4, 5, 0, time.FixedZone("UZT", 5*3600))

	err := NewMessaging(pub, instrument.NewNoop()).PublishPhoneVerified(context.Background(), usecase.PhoneVerifiedEvent{
		UserID:     7,
		Phone:      "+998901234567",
		VerifiedAt: at,
	})

	require.NoError(t, err)
	assert.Equal(t, event.PhoneVerifiedDestination, pub.destination)

	var got event.PhoneVerifiedMessage
	require.NoError(t, json.Unmarshal(pub.msg.Body, &got))
	assert.Equal(t, int64(7), got.UserID)
	assert.True(t, at.Equal(got.VerifiedAt))
	assert.Equal(t, time.UTC, got.VerifiedAt.Location())
}

func TestMessaging_PublishError(t *testing.T) {
	pub := &fakePublisher{err: messaging.ErrClosed}

	err := NewMessaging(pub, instrument.NewNoop()).PublishPhoneVerified(context.Background(), usecase.PhoneVerifiedEvent{UserID: 1})

	assert.True(t, errors.Is(err, messaging.ErrClosed))
}

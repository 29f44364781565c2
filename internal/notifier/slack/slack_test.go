package slack

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/clubops/teesheet/internal/booking"
	"github.com/clubops/teesheet/internal/folio"
	"github.com/clubops/teesheet/internal/metrics"
	"github.com/shopspring/decimal"
	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSlackAPI is a mock implementation of the parts of the slack.Client that we use.
type mockSlackAPI struct {
	postMessageContextFunc func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

func (m *mockSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	if m.postMessageContextFunc != nil {
		return m.postMessageContextFunc(ctx, channelID, options...)
	}
	return "C12345", "123456789.12345", nil
}

func testBooking(t *testing.T) *booking.Booking {
	t.Helper()
	teeTime := time.Date(2026, 4, 11, 8, 30, 0, 0, time.UTC)
	b, err := booking.New(teeTime, teeTime, "main", 18, []booking.Player{
		{Name: "Sato", IdentityCode: "MEMBER"},
		{Name: "Tanaka", IdentityCode: "GUEST"},
	})
	require.NoError(t, err)
	b.Resources.CaddyID = "caddy-7"
	b.Resources.CartNo = "cart-12"
	return b
}

func TestSendMessage_DryRun(t *testing.T) {
	metrics := metrics.NewMock()
	// Pass nil for the api, as it shouldn't be called in dry-run mode.
	notifier := NewNotifierWithAPI(nil, "C123", metrics)

	message := slackapi.NewBlockMessage()
	_, _, err := notifier.sendMessage(message, true)
	require.NoError(t, err)
}

func TestSendMessage_Success(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			assert.Equal(t, "C123", channelID)
			return "C123", "ts123", nil
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	message := slackapi.NewBlockMessage(slackapi.NewSectionBlock(slackapi.NewTextBlockObject("plain_text", "hello", false, false), nil, nil))
	_, _, err := notifier.sendMessage(message, false)

	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
	assert.Equal(t, 1, metrics.StaffNotifSent())
	assert.Equal(t, 0, metrics.StaffNotifFailed())
}

func TestSendMessage_Failure(t *testing.T) {
	postMessageCalled := false
	expectedErr := errors.New("slack API is down")
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			return "", "", expectedErr
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	message := slackapi.NewBlockMessage()
	_, _, err := notifier.sendMessage(message, false)

	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
	assert.Equal(t, 0, metrics.StaffNotifSent())
	assert.Equal(t, 1, metrics.StaffNotifFailed())
}

func TestSendCheckInNotification_CallsSender(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			return "C123", "ts123", nil
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	err := notifier.SendCheckInNotification(testBooking(t), false)
	require.NoError(t, err)
	assert.True(t, postMessageCalled)
	assert.Equal(t, 1, metrics.StaffNotifSent())
}

func TestSendRateGapWarning_CallsSender(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			return "C123", "ts123", nil
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	err := notifier.SendRateGapWarning(testBooking(t), "VISITOR", false)
	require.NoError(t, err)
	assert.True(t, postMessageCalled)
}

func TestSendSettlementNotification_CallsSender(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			return "C123", "ts123", nil
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	f := folio.NewFolio("booking-1")
	_, err := f.PostCharge("green_fee", decimal.NewFromInt(8000), "check_in")
	require.NoError(t, err)
	_, err = f.AddPayment(decimal.NewFromInt(8000), "cash", "")
	require.NoError(t, err)
	require.NoError(t, f.Settle(false))

	err = notifier.SendSettlementNotification(f, false, false)
	require.NoError(t, err)
	assert.True(t, postMessageCalled)
}

func TestFormatCheckInNotification(t *testing.T) {
	notifier := NewNotifierWithAPI(nil, "C123", metrics.NewMock())

	msg := notifier.formatCheckInNotification(testBooking(t))
	require.NotEmpty(t, msg.Blocks.BlockSet)

	header, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
	require.True(t, ok, "first block should be a header")
	assert.Equal(t, "Party checked in", header.Text.Text)
}

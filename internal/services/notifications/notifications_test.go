package notifications

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/fashion-admin/internal/broker"
	"github.com/magabrotheeeer/fashion-admin/internal/lib/clock"
	"github.com/magabrotheeeer/fashion-admin/internal/metrics"
	"github.com/magabrotheeeer/fashion-admin/internal/models"
	"github.com/magabrotheeeer/fashion-admin/internal/storage/memory"
)

type PublisherMock struct{ mock.Mock }

func (m *PublisherMock) Publish(ctx context.Context, routingKey string, message any) error {
	return m.Called(ctx, routingKey, message).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

var fixedNow = time.Date(2024, 12, 21, 10, 0, 0, 0, time.UTC)

func TestService_Send(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		in         SendInput
		pubErr     error
		wantTarget models.NotificationTarget
		wantStatus string
		wantMsg    string
		wantErr    bool
	}{
		{
			name:       "everyone by default",
			in:         SendInput{Title: "New Weekly Challenge!", Body: "Check out this week's outfit challenge", SentBy: "admin"},
			wantTarget: models.TargetAll,
			wantStatus: "sent",
		},
		{
			name:       "single user",
			in:         SendInput{Title: "Your Poll Results", Body: "See who voted", TargetType: "user", TargetValue: "fcm-token"},
			wantTarget: models.TargetUser,
			wantStatus: "sent",
		},
		{
			name:       "broker failure is recorded",
			in:         SendInput{Title: "Sale", Body: "20% off"},
			pubErr:     errors.New("channel closed"),
			wantTarget: models.TargetAll,
			wantStatus: "failed",
			wantErr:    true,
		},
		{name: "missing title", in: SendInput{Body: "x"}, wantMsg: "Title and body are required"},
		{name: "blank body", in: SendInput{Title: "x", Body: "  "}, wantMsg: "Title and body are required"},
		{name: "bad target", in: SendInput{Title: "x", Body: "y", TargetType: "nobody"}, wantMsg: "Invalid target type"},
		{name: "segment without value", in: SendInput{Title: "x", Body: "y", TargetType: "segment"}, wantMsg: "Target value is required for segment notifications"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewDefault()
			pub := &PublisherMock{}
			pub.On("Publish", ctx, broker.RoutingPush, mock.AnythingOfType("models.Notification")).Return(tt.pubErr).Maybe()
			svc := NewService(store, pub, metrics.Noop{}, clock.Fixed(fixedNow), newNoopLogger())

			n, err := svc.Send(ctx, tt.in)
			history, herr := store.Notifications(ctx, 0)
			require.NoError(t, herr)

			if tt.wantMsg != "" {
				assert.ErrorIs(t, err, models.ErrInvalidArgument)
				assert.EqualError(t, err, tt.wantMsg)
				assert.Empty(t, history)
				pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
				return
			}
			if tt.wantErr {
				assert.ErrorIs(t, err, tt.pubErr)
			} else {
				require.NoError(t, err)
			}
			assert.NotEmpty(t, n.ID)
			assert.Equal(t, tt.wantTarget, n.TargetType)
			assert.Equal(t, tt.wantStatus, n.Status)
			assert.Equal(t, fixedNow, n.SentAt)
			require.Len(t, history, 1)
			assert.Equal(t, n, history[0])
			pub.AssertExpectations(t)
		})
	}
}

func TestService_History(t *testing.T) {
	ctx := context.Background()
	store := memory.NewDefault()
	svc := NewService(store, broker.Noop{}, metrics.Noop{}, clock.Fixed(fixedNow), newNoopLogger())

	for _, title := range []string{"first", "second", "third"} {
		_, err := svc.Send(ctx, SendInput{Title: title, Body: "body"})
		require.NoError(t, err)
	}

	history, err := svc.History(ctx, 2)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "third", history[0].Title)
	assert.Equal(t, "second", history[1].Title)

	history, err = svc.History(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, history, 3)
}

func TestService_Templates(t *testing.T) {
	svc := NewService(memory.NewDefault(), broker.Noop{}, metrics.Noop{}, clock.Fixed(fixedNow), newNoopLogger())

	templates, err := svc.Templates(context.Background())
	require.NoError(t, err)
	require.Len(t, templates, 3)
	assert.Equal(t, models.NotificationTemplate{
		ID:       3,
		Name:     "Subscription Reminder",
		Title:    "Premium Features Awaiting!",
		Body:     "Upgrade to premium for unlimited polls and AI recommendations",
		Category: "subscription",
	}, templates[2])
}

package recovery_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/marketplace/pkg/email"
	"github.com/dmitrymomot/marketplace/svc/recovery"
)

type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, msg email.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func TestEmailNotifier_SendResetLink(t *testing.T) {
	t.Parallel()

	sender := &MockSender{}
	var sent email.Message
	sender.On("Send", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		sent = args.Get(1).(email.Message)
	}).Return(nil)

	n := recovery.NewEmailNotifier(sender, recovery.WithSupportEmail("help@shop.example"))
	link := "https://shop.example/reset-password?token=abc&x=<y>"

	require.NoError(t, n.SendResetLink(context.Background(), "owner@x.io", link, 15*time.Minute))

	assert.Equal(t, "owner@x.io", sent.To)
	assert.Equal(t, "Reset your password", sent.Subject)
	assert.Equal(t, "password-reset", sent.Tag)
	assert.Contains(t, sent.HTML, "token=abc&amp;x=&lt;y&gt;")
	assert.Contains(t, sent.HTML, "15m0s")
	assert.Contains(t, sent.HTML, "mailto:help@shop.example")
	require.NoError(t, sent.Validate())
}

func TestEmailNotifier_SenderFailure(t *testing.T) {
	t.Parallel()

	sender := &MockSender{}
	sender.On("Send", mock.Anything, mock.Anything).Return(errors.New("postmark: 500"))

	n := recovery.NewEmailNotifier(sender, recovery.WithSubject("Password help"))
	err := n.SendResetLink(context.Background(), "owner@x.io", "https://shop.example/reset-password?token=t", time.Minute)

	require.Error(t, err)
	sent := sender.Calls[0].Arguments.Get(1).(email.Message)
	assert.Equal(t, "Password help", sent.Subject)
}

package utils

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pulok-thedeveloper/music-spot-server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMail struct{ to, subject, body string }

type fakeSender struct {
	sent []sentMail
	err  error
}

func (f *fakeSender) send(_ context.Context, toEmail, subject, htmlContent string) error {
	f.sent = append(f.sent, sentMail{toEmail, subject, htmlContent})
	return f.err
}

// hangingSender blocks until its context ends, like an unresponsive provider
type hangingSender struct{ deadline time.Time }

func (h *hangingSender) send(ctx context.Context, _, _, _ string) error {
	h.deadline, _ = ctx.Deadline()
	<-ctx.Done()
	return ctx.Err()
}

func TestNewEmailService(t *testing.T) {
	es, err := NewEmailService("", "", "")
	require.NoError(t, err)
	assert.Nil(t, es)

	es, err = NewEmailService(ProviderPostmark, "token", "noreply@musicspot.com")
	require.NoError(t, err)
	require.IsType(t, &postmarkSender{}, es.sender)
	pm := es.sender.(*postmarkSender)
	require.NotNil(t, pm.client.HTTPClient)
	assert.Equal(t, mailTimeout, pm.client.HTTPClient.Timeout)

	es, err = NewEmailService(ProviderSendgrid, "SG.key", "noreply@musicspot.com")
	require.NoError(t, err)
	assert.IsType(t, &sendgridSender{}, es.sender)

	_, err = NewEmailService(ProviderPostmark, "", "noreply@musicspot.com")
	assert.Error(t, err)
	_, err = NewEmailService(ProviderSendgrid, "SG.key", "")
	assert.Error(t, err)
	_, err = NewEmailService("mailgun", "key", "noreply@musicspot.com")
	assert.Error(t, err)
}

func TestNilEmailServiceIsNoop(t *testing.T) {
	var es *EmailService
	assert.NoError(t, es.SendEmail("a@x.com", "hi", "body"))
	assert.NoError(t, es.SendBookingConfirmation(models.Booking{Email: "a@x.com"}))
}

func TestBookingConfirmation(t *testing.T) {
	sender := &fakeSender{}
	es := &EmailService{sender: sender}

	err := es.SendBookingConfirmation(models.Booking{ProductName: "Yamaha <F310>", Email: "b@x.com"})
	require.NoError(t, err)

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "b@x.com", sender.sent[0].to)
	assert.Contains(t, sender.sent[0].body, "Yamaha &lt;F310&gt;")
	assert.Contains(t, sender.sent[0].body, "Hi b@x.com")
}

func TestSellerVerifiedWrapsErrors(t *testing.T) {
	sender := &fakeSender{err: errors.New("422 inactive recipient")}
	es := &EmailService{sender: sender}

	err := es.SendSellerVerified(models.User{Name: "Rahim", Email: "s@x.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to send email")
	assert.Contains(t, sender.sent[0].body, "Hi Rahim")
}

func TestSendEmailIsBounded(t *testing.T) {
	old := mailTimeout
	mailTimeout = 50 * time.Millisecond
	t.Cleanup(func() { mailTimeout = old })

	sender := &hangingSender{}
	es := &EmailService{sender: sender}

	start := time.Now()
	err := es.SendEmail("a@x.com", "hi", "body")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, sender.deadline.IsZero())
	assert.WithinDuration(t, start.Add(mailTimeout), sender.deadline, 40*time.Millisecond)
}

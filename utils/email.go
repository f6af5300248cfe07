// utils/email.go
package utils

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/http"
	"time"

	"github.com/keighl/postmark"
	"github.com/pulok-thedeveloper/music-spot-server/models"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Supported MAIL_PROVIDER values
const (
	ProviderPostmark = "postmark"
	ProviderSendgrid = "sendgrid"
)

// mailTimeout bounds a single provider call
var mailTimeout = 15 * time.Second

type mailSender interface {
	send(ctx context.Context, toEmail, subject, htmlContent string) error
}

// EmailService sends transactional mail through Postmark or SendGrid
type EmailService struct {
	sender mailSender
}

// NewEmailService initializes an EmailService for provider.
// An empty provider returns a nil service, whose methods are no-ops.
func NewEmailService(provider, apiKey, from string) (*EmailService, error) {
	if provider == "" {
		return nil, nil
	}
	if apiKey == "" {
		return nil, fmt.Errorf("mail provider %q configured without an API key", provider)
	}
	if from == "" {
		return nil, errors.New("EMAIL_SENDER is not set")
	}

	switch provider {
	case ProviderPostmark:
		client := postmark.NewClient(apiKey, "")
		client.HTTPClient = &http.Client{Timeout: mailTimeout}
		return &EmailService{sender: &postmarkSender{client: client, from: from}}, nil
	case ProviderSendgrid:
		return &EmailService{sender: &sendgridSender{client: sendgrid.NewSendClient(apiKey), from: from}}, nil
	default:
		return nil, fmt.Errorf("unknown mail provider %q", provider)
	}
}

// SendEmail sends a basic email to the specified recipient
func (es *EmailService) SendEmail(toEmail, subject, htmlContent string) error {
	if es == nil || es.sender == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), mailTimeout)
	defer cancel()
	if err := es.sender.send(ctx, toEmail, subject, htmlContent); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendBookingConfirmation tells the buyer their booking was recorded
func (es *EmailService) SendBookingConfirmation(booking models.Booking) error {
	subject := "Booking Confirmed - musicSpot"
	htmlContent := fmt.Sprintf(
		"<strong>Hi %s,</strong><br><br>Your booking for <strong>%s</strong> has been recorded. The seller will contact you to arrange the meeting.<br><br>Thank you for using musicSpot!",
		html.EscapeString(displayName(booking.BuyerName, booking.Email)),
		html.EscapeString(booking.ProductName),
	)
	return es.SendEmail(booking.Email, subject, htmlContent)
}

// SendSellerVerified tells a seller an admin verified their account
func (es *EmailService) SendSellerVerified(user models.User) error {
	subject := "Your seller account is verified - musicSpot"
	htmlContent := fmt.Sprintf(
		"<strong>Hi %s,</strong><br><br>An administrator has verified your seller account. Your listings now show the verified badge.<br><br>Happy selling!",
		html.EscapeString(displayName(user.Name, user.Email)),
	)
	return es.SendEmail(user.Email, subject, htmlContent)
}

func displayName(name, email string) string {
	if name != "" {
		return name
	}
	return email
}

type postmarkSender struct {
	client *postmark.Client
	from   string
}

// The postmark client has no context support; its HTTPClient timeout applies instead.
func (p *postmarkSender) send(_ context.Context, toEmail, subject, htmlContent string) error {
	_, err := p.client.SendEmail(postmark.Email{
		From:     p.from,
		To:       toEmail,
		Subject:  subject,
		HtmlBody: htmlContent,
		TextBody: htmlContent,
	})
	return err
}

type sendgridSender struct {
	client *sendgrid.Client
	from   string
}

func (s *sendgridSender) send(ctx context.Context, toEmail, subject, htmlContent string) error {
	message := mail.NewSingleEmail(
		mail.NewEmail("musicSpot", s.from),
		subject,
		mail.NewEmail("", toEmail),
		htmlContent,
		htmlContent,
	)
	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid returned status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

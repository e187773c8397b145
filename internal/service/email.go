package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

// mockEmailID is returned when the message was only logged.
const mockEmailID = "mock-id"

type EmailService struct {
	client    *resend.Client
	fromEmail string
	isDev     bool
	appURL    string
	appName   string
}

func NewEmailService(apiKey, fromEmail, appURL, appName string, isDev bool) *EmailService {
	var client *resend.Client
	if apiKey != "" && !isDev {
		client = resend.NewClient(apiKey)
	}

	return &EmailService{
		client:    client,
		fromEmail: fromEmail,
		isDev:     isDev,
		appURL:    appURL,
		appName:   appName,
	}
}

// send delivers a plain-text message and returns the provider message id.
// Without a configured client the message is logged and a mock id returned.
func (s *EmailService) send(ctx context.Context, kind, to, subject, body string) (string, error) {
	if s.client == nil {
		slog.Info("email sent (dev mode)", "type", kind, "to", to, "subject", subject)
		return mockEmailID, nil
	}

	params := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{to},
		Subject: subject,
		Text:    body,
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return "", fmt.Errorf("failed to send %s email: %w", kind, err)
	}

	slog.Info("email sent", "type", kind, "to", to, "id", sent.Id)
	return sent.Id, nil
}

func (s *EmailService) SendWelcomeEmail(ctx context.Context, email, name string) error {
	dashboardURL := fmt.Sprintf("%s/app/dashboard", s.appURL)
	subject, body := welcomeEmailTemplate(name, dashboardURL, s.appName)

	_, err := s.send(ctx, "welcome", email, subject, body)
	return err
}

// SendPropertyOnboardedEmail tells staff that a property was submitted for review.
func (s *EmailService) SendPropertyOnboardedEmail(ctx context.Context, to, propertyName, propertyID string) (string, error) {
	reviewURL := fmt.Sprintf("%s/admin/properties/%s", s.appURL, propertyID)
	subject, body := propertyOnboardedEmailTemplate(propertyName, propertyID, reviewURL, s.appName)

	return s.send(ctx, "property_onboarded", to, subject, body)
}

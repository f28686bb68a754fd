// Package notify delivers outbound email, used for the contact-shelter
// flow. The production implementation goes through SES; LogSender is a
// drop-in for local development where no mail should leave the box.
package notify

import (
	"context"
	"fmt"
	"html"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// EmailSender sends one HTML email.
type EmailSender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// SESSender sends through Amazon SES using the default credential chain.
type SESSender struct {
	client *ses.Client
	sender string
	logger *slog.Logger
}

func NewSESSender(ctx context.Context, region, sender string, logger *slog.Logger) (*SESSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("notify: loading aws config: %w", err)
	}
	return &SESSender{
		client: ses.NewFromConfig(cfg),
		sender: sender,
		logger: logger,
	}, nil
}

func (s *SESSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	_, err := s.client.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(s.sender),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Html: &types.Content{Data: aws.String(htmlBody)},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("notify: sending email to %s: %w", to, err)
	}
	s.logger.Info("email sent", "to", to, "subject", subject)
	return nil
}

// LogSender logs instead of sending. Used when no SES region is
// configured.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(_ context.Context, to, subject, htmlBody string) error {
	s.logger.Info("email suppressed (no sender configured)",
		"to", to, "subject", subject, "bytes", len(htmlBody))
	return nil
}

// ContactShelterBody renders the message an adopter sends to a shelter,
// with the adopter's address as the reply contact. All three values are
// caller-supplied text and get escaped into the HTML.
func ContactShelterBody(adopterName, adopterEmail, message string) string {
	return fmt.Sprintf(`<html>
<body>
    <p>Hi, my name is %s.</p>
    <p>%s</p>
    <p>Please contact me at %s</p>
</body>
</html>`, html.EscapeString(adopterName), html.EscapeString(message), html.EscapeString(adopterEmail))
}

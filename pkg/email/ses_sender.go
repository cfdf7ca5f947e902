package email

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/labstack/echo/v4"
)

type ServiceInterface interface {
	SendEmail(ctx context.Context, to, subject, plainTextContent, htmlContent string) error
}

// SESV2Sender implements ServiceInterface using AWS SES v2.
type SESV2Sender struct {
	client    *sesv2.Client
	fromEmail string
	log       echo.Logger
}

// NewSESV2Sender creates a new sender for Amazon SES.
// Credentials come from the default AWS chain (env, shared config, instance role).
func NewSESV2Sender(ctx context.Context, region, fromEmail string, log echo.Logger) (*SESV2Sender, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("email.NewSESV2Sender: load aws config: %w", err)
	}

	return &SESV2Sender{
		client:    sesv2.NewFromConfig(cfg),
		fromEmail: fromEmail,
		log:       log,
	}, nil
}

func (s *SESV2Sender) SendEmail(ctx context.Context, to, subject, plainTextContent, htmlContent string) error {
	input := &sesv2.SendEmailInput{
		FromEmailAddress: &s.fromEmail,
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    &subject,
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Text: &types.Content{
						Data:    &plainTextContent,
						Charset: aws.String("UTF-8"),
					},
					Html: &types.Content{
						Data:    &htmlContent,
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("email.SendEmail via SES to %s: %w", to, err)
	}

	s.log.Infof("sent email %q to %s", subject, to)
	return nil
}

// NoopSender logs instead of sending. Used when SES is not configured.
type NoopSender struct {
	log echo.Logger
}

func NewNoopSender(log echo.Logger) *NoopSender {
	return &NoopSender{log: log}
}

func (s *NoopSender) SendEmail(_ context.Context, to, subject, _, _ string) error {
	s.log.Debugf("email disabled, dropping %q to %s", subject, to)
	return nil
}

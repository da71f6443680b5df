package email

import (
	"context"
	"pwreset/internal/core/domain/mail"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

const charset = "UTF-8"

type sesClient interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// EmailSender delivers plain text messages through Amazon SES.
// The From address of every message must be verified with SES.
type EmailSender struct {
	ses sesClient
}

func NewEmailSender(awsConfig aws.Config) *EmailSender {
	return &EmailSender{ses: ses.NewFromConfig(awsConfig)}
}

func (s *EmailSender) Send(ctx context.Context, message mail.Message) error {
	if err := message.Validate(); err != nil {
		return err
	}
	_, err := s.ses.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(message.From),
		Destination: &types.Destination{
			CcAddresses: []string{},
			ToAddresses: []string{message.To},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(message.Subject), Charset: aws.String(charset)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(message.Body), Charset: aws.String(charset)},
			},
		},
	})
	return err
}

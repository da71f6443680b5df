package sendpasswordresetlink

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	e "pwreset/internal/core/domain/errors"
	"pwreset/internal/core/domain/logging"
	"pwreset/internal/core/domain/mail"
	"pwreset/internal/core/domain/user"
	"pwreset/internal/core/services"
)

const (
	Subject      = "Password Reset"
	bodyTemplate = "Click the link below to reset your password:\n\n%s\n\n" +
		"If you did not request a password reset, please ignore this email."
)

type LinkSettings struct {
	// Sender address of the reset email.
	From string
	// The token is appended to this URL as the last path segment.
	BaseURL url.URL
}

func (s LinkSettings) Link(token user.PasswordResetToken) string {
	return s.BaseURL.JoinPath(string(token)).String()
}

type serviceWithLinkSending struct {
	log      logging.Logger
	sender   mail.Sender
	settings LinkSettings
	inner    services.Service[Input, Result]
}

func NewWithLinkSending(
	log logging.Logger,
	sender mail.Sender,
	settings LinkSettings,
	inner services.Service[Input, Result],
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if sender == nil {
		panic(e.NewNilArgumentError("sender"))
	}
	if inner == nil {
		panic(e.NewNilArgumentError("inner"))
	}
	return &serviceWithLinkSending{
		log:      log,
		sender:   sender,
		settings: settings,
		inner:    inner,
	}
}

func (s *serviceWithLinkSending) Run(ctx context.Context, input Input) (result Result, err error) {
	result, err = s.inner.Run(ctx, input)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Info(ctx, "Skip sending password reset link.", logging.Entry("err", err))
		return result, err
	}

	// The token stays stored when sending fails, a new request replaces it.
	err = s.sender.Send(ctx, s.message(result.User, result.Reset.Token))
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not send password reset link.",
			logging.Entry("userID", result.User.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(
		ctx,
		"Password reset link has been sent to the user.",
		logging.Entry("userID", result.User.ID),
	)
	return result, nil
}

func (s *serviceWithLinkSending) message(u user.User, token user.PasswordResetToken) mail.Message {
	return mail.Message{
		From:    s.settings.From,
		To:      string(u.Email),
		Subject: Subject,
		Body:    fmt.Sprintf(bodyTemplate, s.settings.Link(token)),
	}
}

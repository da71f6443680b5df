package sendpasswordresetlink

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	c "pwreset/internal/core/domain/common"
	"pwreset/internal/core/domain/logging"
	"pwreset/internal/core/domain/mail"
	"pwreset/internal/core/domain/user"
	"pwreset/internal/core/services"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const SENDER = "no-reply@x.com"

var errTest = fmt.Errorf("test error")

func stubInner(err error) services.Service[Input, Result] {
	return services.ServiceFunc[Input, Result](func(ctx context.Context, input Input) (result Result, _ error) {
		if err != nil {
			return result, err
		}
		result.User = user.User{ID: 42, Email: input.Email}
		result.Reset = user.NewPasswordReset(user.PasswordResetToken("0a1b2c"), Now, time.Hour)
		return result, nil
	})
}

type testLinkSuite struct {
	suite.Suite
	Logger   *logging.FakeLogger
	Sender   *mail.FakeSender
	Settings LinkSettings
}

func (s *testLinkSuite) SetupTest() {
	baseURL, err := url.Parse("https://app.x.com/password-reset")
	s.Require().Nil(err)
	s.Logger = logging.NewFakeLogger()
	s.Sender = mail.NewFakeSender()
	s.Settings = LinkSettings{From: SENDER, BaseURL: *baseURL}
}

func TestSendLinkService(t *testing.T) {
	suite.Run(t, new(testLinkSuite))
}

func (s *testLinkSuite) TestLinkEmailSent() {
	service := NewWithLinkSending(s.Logger, s.Sender, s.Settings, stubInner(nil))

	result, err := service.Run(context.Background(), Input{Email: c.Email(EMAIL)})

	assert := s.Require()
	assert.Nil(err)
	assert.Equal(user.PasswordResetToken("0a1b2c"), result.Reset.Token)
	assert.Equal(1, s.Sender.SentCount())

	message := s.Sender.LastSent()
	assert.Equal(SENDER, message.From)
	assert.Equal(EMAIL, message.To)
	assert.Equal("Password Reset", message.Subject)
	assert.Equal(
		"Click the link below to reset your password:\n\n"+
			"https://app.x.com/password-reset/0a1b2c\n\n"+
			"If you did not request a password reset, please ignore this email.",
		message.Body,
	)
}

func (s *testLinkSuite) TestInnerServiceError() {
	service := NewWithLinkSending(s.Logger, s.Sender, s.Settings, stubInner(errTest))

	_, err := service.Run(context.Background(), Input{Email: c.Email(EMAIL)})

	s.True(errors.Is(err, errTest))
	s.Equal(0, s.Sender.SentCount())
}

func (s *testLinkSuite) TestUserDoesNotExist() {
	service := NewWithLinkSending(s.Logger, s.Sender, s.Settings, stubInner(user.ErrUserDoesNotExist))

	_, err := service.Run(context.Background(), Input{Email: c.Email(EMAIL)})

	s.ErrorIs(err, user.ErrUserDoesNotExist)
	s.Equal(0, s.Sender.SentCount())
}

func (s *testLinkSuite) TestSenderError() {
	s.Sender.ReturnError = true
	service := NewWithLinkSending(s.Logger, s.Sender, s.Settings, stubInner(nil))

	_, err := service.Run(context.Background(), Input{Email: c.Email(EMAIL)})

	s.NotNil(err)
	s.Equal(1, s.Logger.CountLevel(logging.ERROR))
}

func (s *testLinkSuite) TestLinkKeepsBasePath() {
	cases := []struct {
		base     string
		expected string
	}{
		{base: "https://x.com", expected: "https://x.com/abc"},
		{base: "https://x.com/", expected: "https://x.com/abc"},
		{base: "https://x.com/password-reset/", expected: "https://x.com/password-reset/abc"},
		{base: "http://localhost:3000/app/password-reset", expected: "http://localhost:3000/app/password-reset/abc"},
	}
	for _, testcase := range cases {
		s.Run(testcase.base, func() {
			baseURL, err := url.Parse(testcase.base)
			s.Require().Nil(err)
			settings := LinkSettings{From: SENDER, BaseURL: *baseURL}
			s.Equal(testcase.expected, settings.Link(user.PasswordResetToken("abc")))
		})
	}
}

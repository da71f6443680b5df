package services

import (
	"pwreset/internal/app/deps"
	"pwreset/internal/core/services"
	confirmpasswordreset "pwreset/internal/core/services/confirm_password_reset"
	sendpasswordresetlink "pwreset/internal/core/services/send_password_reset_link"
)

type Services struct {
	SendPasswordResetLink services.Service[sendpasswordresetlink.Input, sendpasswordresetlink.Result]
	ConfirmPasswordReset  services.Service[confirmpasswordreset.Input, confirmpasswordreset.Result]
}

func InitServices(deps *deps.Deps) *Services {
	return &Services{
		SendPasswordResetLink: sendpasswordresetlink.NewWithLinkSending(
			deps.Logger,
			deps.MailSender,
			sendpasswordresetlink.LinkSettings{
				From:    deps.Config.MailFrom,
				BaseURL: deps.Config.PasswordResetBaseURL,
			},
			sendpasswordresetlink.New(
				deps.Logger,
				deps.UserRepository,
				deps.PasswordResetTokenGenerator,
				deps.Config.PasswordResetValidDuration,
				deps.Now,
			),
		),
		ConfirmPasswordReset: confirmpasswordreset.New(
			deps.Logger,
			deps.UnitOfWork,
			deps.PasswordHasher,
			deps.Now,
		),
	}
}

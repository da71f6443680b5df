package confirmpasswordreset

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	e "pwreset/internal/core/domain/errors"
	"pwreset/internal/core/domain/user"
	"pwreset/internal/core/services"
	service "pwreset/internal/core/services/confirm_password_reset"
	"pwreset/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
)

const (
	MsgReset        = "Password has been reset successfully."
	MsgInvalidToken = "Token is invalid or has expired."
	MsgInternal     = "Internal server error."
)

const (
	MAX_TOKEN_LENGTH = 1024
	// bcrypt ignores input past 72 bytes.
	MAX_PASSWORD_LENGTH = 72
)

type Handler struct {
	service services.Service[service.Input, service.Result]
}

func New(service services.Service[service.Input, service.Result]) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Token, validation.Required, validation.Length(0, MAX_TOKEN_LENGTH)),
		validation.Field(&i.Password, validation.Required, maxByteLength(MAX_PASSWORD_LENGTH)),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderInvalidRequestData(rw)
		return
	}
	if err := input.Validate(); err != nil {
		var errs validation.Errors
		if errors.As(err, &errs) && errs["token"] != nil {
			response.RenderError(rw, MsgInvalidToken, http.StatusBadRequest)
			return
		}
		response.Render(rw, err, http.StatusBadRequest)
		return
	}

	_, err := h.service.Run(
		r.Context(),
		service.Input{
			Token:       user.PasswordResetToken(input.Token),
			NewPassword: user.RawPassword(input.Password),
		},
	)
	if errors.Is(err, user.ErrInvalidPasswordResetToken) {
		response.RenderError(rw, MsgInvalidToken, http.StatusBadRequest)
		return
	}
	if err != nil {
		response.RenderError(rw, MsgInternal, http.StatusInternalServerError)
		return
	}

	response.RenderMessage(rw, MsgReset)
}

// byteLength checks the length of a string in bytes, unlike validation.Length
// that counts runes.
func maxByteLength(max int) validation.Rule {
	return validation.By(func(value interface{}) error {
		s, _ := value.(string)
		if len(s) > max {
			return fmt.Errorf("the length must be no more than %d bytes", max)
		}
		return nil
	})
}

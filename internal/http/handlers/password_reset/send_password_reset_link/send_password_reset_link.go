package sendpasswordresetlink

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	c "pwreset/internal/core/domain/common"
	e "pwreset/internal/core/domain/errors"
	"pwreset/internal/core/domain/user"
	"pwreset/internal/core/services"
	service "pwreset/internal/core/services/send_password_reset_link"
	"pwreset/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
)

const (
	TEST_TOKEN_HEADER = "x-test-password-reset-token"

	MsgSent          = "Reset email sent successfully."
	MsgEmailNotFound = "Email not found."
	MsgUnexpected    = "An unexpected error occurred."
)

type Handler struct {
	service    services.Service[service.Input, service.Result]
	isTestMode bool
}

func New(
	service services.Service[service.Input, service.Result],
	isTestMode bool,
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service, isTestMode: isTestMode}
}

type Input struct {
	Email string `json:"email"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

// Validate only checks that an email was sent. Any other value is looked
// up as is, so an address that is malformed answers the same as an unknown one.
func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Email, validation.Required, validation.Length(0, 512)),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderInvalidRequestData(rw)
		return
	}
	if err := input.Validate(); err != nil {
		response.Render(rw, err, http.StatusBadRequest)
		return
	}

	result, err := h.service.Run(
		r.Context(),
		service.Input{Email: c.NewEmail(input.Email)},
	)
	if errors.Is(err, user.ErrUserDoesNotExist) {
		response.RenderError(rw, MsgEmailNotFound, http.StatusNotFound)
		return
	}
	if err != nil {
		response.RenderError(rw, MsgUnexpected, http.StatusInternalServerError)
		return
	}

	if h.isTestMode {
		rw.Header().Set(TEST_TOKEN_HEADER, string(result.Reset.Token))
	}
	response.RenderMessage(rw, MsgSent)
}

package helpers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gookit/validate"

	"github.com/wyhar1/execsim/config"
	"github.com/wyhar1/execsim/oms"
)

type Errors struct {
	Errors []string `json:"errors"`
}

func (e Errors) Size() int {
	return len(e.Errors)
}

func Vaildate(payload interface{}, err_src *Errors) {
	v := validate.Struct(payload)
	if !v.Validate() {
		for _, errs := range v.Errors.All() {
			for _, err := range errs {
				err_src.Errors = append(err_src.Errors, err)
			}
		}
	}
}

// VaildateMessage returns the gookit messages for a params struct, every
// rule reported as <prefix>.invalid_{field}.
func VaildateMessage(prefix string) map[string]string {
	invalid_message := prefix + ".invalid_{field}"

	return validate.MS{
		"required": invalid_message,
		"uint":     invalid_message,
	}
}

// ErrorResponse writes err with the status matching its kind.
func ErrorResponse(c *fiber.Ctx, err error) error {
	var validationErr *oms.ValidationError

	switch {
	case errors.As(err, &validationErr):
		return c.Status(422).JSON(Errors{Errors: validationErr.Errors})
	case oms.IsNotFound(err):
		return c.Status(404).JSON(Errors{Errors: []string{"record.not_found"}})
	case oms.IsInvalidState(err):
		return c.Status(409).JSON(Errors{Errors: []string{"market.order.invalid_state"}})
	default:
		config.Logger.Errorf("[execsim.api] %v", err)

		return c.Status(500).JSON(Errors{Errors: []string{"server.internal_error"}})
	}
}

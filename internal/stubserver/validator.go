package stubserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// requestValidator adapts go-playground/validator to echo's Validator
// interface. Validation failures become 422 responses with a readable
// field message.
type requestValidator struct {
	validate *validator.Validate
}

func newValidator() *requestValidator {
	return &requestValidator{validate: validator.New()}
}

func (v *requestValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			msg := fmt.Sprintf("field %s failed on the %s rule", fe.Field(), fe.Tag())
			return echo.NewHTTPError(http.StatusUnprocessableEntity, msg)
		}
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return nil
}

func errorsAs(err error, target **echo.HTTPError) bool {
	return errors.As(err, target)
}

// messageOf flattens an echo.HTTPError message into a string.
func messageOf(he *echo.HTTPError) string {
	switch m := he.Message.(type) {
	case string:
		return m
	case error:
		return m.Error()
	default:
		return fmt.Sprintf("%v", m)
	}
}

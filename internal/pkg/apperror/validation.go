package apperror

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
)

type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

// FromValidation converts validator output into a VALIDATION_ERROR carrying
// one entry per failed field.
func FromValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Wrap(err, CodeValidation, "Invalid input", http.StatusBadRequest)
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{
			Field: fe.Field(),
			Rule:  fe.Tag(),
			Param: fe.Param(),
		})
	}

	return &AppError{
		Code:       CodeValidation,
		Message:    "Invalid input",
		HTTPStatus: http.StatusBadRequest,
		Details:    fields,
		Err:        err,
	}
}

package validator

import (
	"fmt"
	"strings"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (fe FieldError) Error() string {
	return fmt.Sprintf("field %s: %s", fe.Field, fe.Message)
}

type ValidationError struct {
	Errors []FieldError `json:"errors"`
}

func (ve ValidationError) Error() string {
	errs := make([]string, 0, len(ve.Errors))
	for _, fe := range ve.Errors {
		errs = append(errs, fe.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(errs, ", "))
}

// ForField returns the messages reported for one field, in report order.
func (ve ValidationError) ForField(field string) []string {
	var out []string
	for _, fe := range ve.Errors {
		if fe.Field == field {
			out = append(out, fe.Message)
		}
	}
	return out
}

// Messages flattens the errors into plain strings, as shown in a form banner.
func (ve ValidationError) Messages() []string {
	out := make([]string, 0, len(ve.Errors))
	for _, fe := range ve.Errors {
		out = append(out, fe.Message)
	}
	return out
}

type Validator interface {
	Validate(s interface{}) error
}

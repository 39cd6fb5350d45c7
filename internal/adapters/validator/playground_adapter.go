package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"evalportal/internal/core/domain/fieldcheck"
	"evalportal/internal/core/domain/user"
	validatorPlatform "evalportal/internal/platform/validator"
)

const MsgInvalidRole = user.MsgInvalidRole

// fieldRules back the custom tags. Emptiness is left to the required tag.
var fieldRules = map[string]fieldcheck.Rule{
	"numericid":  fieldcheck.NumericID(false, 0),
	"strength":   fieldcheck.Strength(),
	"nameshape":  fieldcheck.NameShape(false, 0),
	"emailshape": fieldcheck.EmailShape(false),
}

type playgroundValidator struct {
	validate *validator.Validate
}

func NewPlaygroundAdapter() validatorPlatform.Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(fieldName)

	for tag, rule := range fieldRules {
		mustRegister(v, tag, func(fl validator.FieldLevel) bool {
			return rule(fl.Field().String()).Valid
		})
	}
	mustRegister(v, "role", func(fl validator.FieldLevel) bool {
		_, err := user.ParseRole(fl.Field().String())
		return err == nil
	})

	return &playgroundValidator{
		validate: v,
	}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %q: %v", tag, err))
	}
}

// fieldName reports fields by their form name, then their json name.
func fieldName(sf reflect.StructField) string {
	for _, key := range []string{"form", "json"} {
		name, _, _ := strings.Cut(sf.Tag.Get(key), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return strings.ToLower(sf.Name)
}

func (v *playgroundValidator) Validate(s interface{}) error {
	if err := v.validate.Struct(s); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			structType := reflect.TypeOf(s)
			for structType.Kind() == reflect.Pointer {
				structType = structType.Elem()
			}

			outErrors := make([]validatorPlatform.FieldError, 0, len(validationErrors))
			for _, fe := range validationErrors {
				label := fieldLabel(structType, fe)
				for _, msg := range getValidationErrorMessages(fe) {
					if label != "" {
						msg = label + ": " + msg
					}
					outErrors = append(outErrors, validatorPlatform.FieldError{
						Field:   fe.Field(),
						Message: msg,
					})
				}
			}
			return validatorPlatform.ValidationError{Errors: outErrors}
		}
		return err
	}
	return nil
}

func fieldLabel(structType reflect.Type, fe validator.FieldError) string {
	if structType.Kind() != reflect.Struct {
		return ""
	}
	sf, ok := structType.FieldByName(fe.StructField())
	if !ok {
		return ""
	}
	return sf.Tag.Get("label")
}

// getValidationErrorMessages re-runs the field rule behind a custom tag so
// every violated check gets its own message.
func getValidationErrorMessages(e validator.FieldError) []string {
	if rule, ok := fieldRules[e.Tag()]; ok {
		value, _ := e.Value().(string)
		if res := rule(value); !res.Valid {
			return res.Errors
		}
	}

	switch e.Tag() {
	case "required":
		return []string{fieldcheck.MsgRequired}
	case "email":
		return []string{fieldcheck.MsgEmailInvalid}
	case "role":
		return []string{MsgInvalidRole}
	default:
		return []string{fmt.Sprintf("Este campo falhou na regra '%s'.", e.Tag())}
	}
}

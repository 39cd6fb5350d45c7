// Package fieldcheck holds the field rules shared by the profile and
// administration forms. Every check is a pure function of its arguments and
// reports violations as user-facing messages, never as errors.
package fieldcheck

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	DefaultNumericMaxLength = 20
	DefaultNameMinLength    = 2
	StrengthMinLength       = 8
)

const (
	MsgRequired      = "Este campo é obrigatório."
	MsgDigitsOnly    = "Deve conter apenas números."
	MsgEmailRequired = "O email é obrigatório."
	MsgEmailInvalid  = "Digite um email válido."
	MsgLettersOnly   = "Deve conter apenas letras."

	MsgStrengthLength    = "A senha deve ter pelo menos 8 caracteres."
	MsgStrengthLowercase = "A senha deve conter pelo menos uma letra minúscula."
	MsgStrengthUppercase = "A senha deve conter pelo menos uma letra maiúscula."
	MsgStrengthDigit     = "A senha deve conter pelo menos um número."
	MsgStrengthCommon    = "Esta senha é muito comum. Escolha uma senha mais segura."
)

var (
	digitsPattern   = regexp.MustCompile(`^\d+$`)
	lowerPattern    = regexp.MustCompile(`[a-z]`)
	upperPattern    = regexp.MustCompile(`[A-Z]`)
	digitPattern    = regexp.MustCompile(`\d`)
	emailPattern    = regexp.MustCompile(`^[^\s\v\p{Z}\x{FEFF}@]+@[^\s\v\p{Z}\x{FEFF}@]+\.[^\s\v\p{Z}\x{FEFF}@]+$`)
	namePattern     = regexp.MustCompile(`^[a-zA-ZÀ-ÿ\s\v\p{Z}\x{FEFF}]+$`)
	commonPasswords = map[string]struct{}{
		"12345678":  {},
		"password":  {},
		"123456789": {},
		"qwerty":    {},
		"abc123":    {},
		"password1": {},
		"11111111":  {},
		"00000000":  {},
	}
)

type Result struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// isSpace matches the white space browsers strip from form input: ASCII
// spacing, the Zs separators, line and paragraph separators and the byte
// order mark. U+0085 is not included.
func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ', '\u2028', '\u2029', '\uFEFF':
		return true
	}
	return unicode.Is(unicode.Zs, r)
}

// Trim removes the leading and trailing white space the rules ignore.
func Trim(s string) string {
	return strings.TrimFunc(s, isSpace)
}

func result(errs []string) Result {
	if errs == nil {
		errs = []string{}
	}
	return Result{Valid: len(errs) == 0, Errors: errs}
}

// ValidateNumericID checks a registration number. A non-positive maxLength
// falls back to DefaultNumericMaxLength.
func ValidateNumericID(value string, required bool, maxLength int) Result {
	if maxLength <= 0 {
		maxLength = DefaultNumericMaxLength
	}

	var errs []string
	trimmed := Trim(value)

	switch {
	case trimmed == "":
		if required {
			errs = append(errs, MsgRequired)
		}
	default:
		if !digitsPattern.MatchString(trimmed) {
			errs = append(errs, MsgDigitsOnly)
		}
		if utf8.RuneCountInString(trimmed) > maxLength {
			errs = append(errs, fmt.Sprintf("Deve ter no máximo %d dígitos.", maxLength))
		}
	}

	return result(errs)
}

// ValidateStrength checks a new password. An empty value means the password
// is left unchanged and is always valid. The value is not trimmed.
func ValidateStrength(value string) Result {
	var errs []string
	if value == "" {
		return result(errs)
	}

	if utf8.RuneCountInString(value) < StrengthMinLength {
		errs = append(errs, MsgStrengthLength)
	}
	if !lowerPattern.MatchString(value) {
		errs = append(errs, MsgStrengthLowercase)
	}
	if !upperPattern.MatchString(value) {
		errs = append(errs, MsgStrengthUppercase)
	}
	if !digitPattern.MatchString(value) {
		errs = append(errs, MsgStrengthDigit)
	}
	if IsCommonPassword(value) {
		errs = append(errs, MsgStrengthCommon)
	}

	return result(errs)
}

func IsCommonPassword(value string) bool {
	_, ok := commonPasswords[strings.ToLower(value)]
	return ok
}

func ValidateEmailShape(value string, required bool) Result {
	var errs []string
	trimmed := Trim(value)

	switch {
	case trimmed == "":
		if required {
			errs = append(errs, MsgEmailRequired)
		}
	case !emailPattern.MatchString(trimmed):
		errs = append(errs, MsgEmailInvalid)
	}

	return result(errs)
}

// ValidateNameShape checks a person's name. Length is counted in characters.
// A non-positive minLength falls back to DefaultNameMinLength.
func ValidateNameShape(value string, required bool, minLength int) Result {
	if minLength <= 0 {
		minLength = DefaultNameMinLength
	}

	var errs []string
	trimmed := Trim(value)

	switch {
	case trimmed == "":
		if required {
			errs = append(errs, MsgRequired)
		}
	default:
		if utf8.RuneCountInString(trimmed) < minLength {
			errs = append(errs, fmt.Sprintf("Deve ter pelo menos %d caracteres.", minLength))
		}
		if !namePattern.MatchString(trimmed) {
			errs = append(errs, MsgLettersOnly)
		}
	}

	return result(errs)
}

package fieldcheck

import (
	"regexp"
	"strings"
	"testing"
	"testing/quick"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateNumericID(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		required  bool
		maxLength int
		expected  []string
	}{
		{name: "digits", value: "20231234", required: true, expected: []string{}},
		{name: "surrounding spaces trimmed", value: "  42 ", required: true, expected: []string{}},
		{name: "required empty", value: "", required: true, expected: []string{MsgRequired}},
		{name: "required blank", value: "   ", required: true, expected: []string{MsgRequired}},
		{name: "optional empty", value: "", required: false, expected: []string{}},
		{name: "letters", value: "12a4", required: true, expected: []string{MsgDigitsOnly}},
		{name: "too long", value: "123456", required: true, maxLength: 5, expected: []string{"Deve ter no máximo 5 dígitos."}},
		{
			name:      "letters and too long",
			value:     "abc123",
			required:  false,
			maxLength: 3,
			expected:  []string{MsgDigitsOnly, "Deve ter no máximo 3 dígitos."},
		},
		{name: "default max length", value: strings.Repeat("9", 21), required: true, expected: []string{"Deve ter no máximo 20 dígitos."}},
		{name: "negative max falls back", value: strings.Repeat("9", 20), required: true, maxLength: -1, expected: []string{}},
		{name: "leading byte order mark", value: "\ufeff123", required: true, expected: []string{}},
		{name: "no-break spaces trimmed", value: "\u00a0123\u00a0", required: true, expected: []string{}},
		{name: "only no-break space", value: "\u00a0", required: true, expected: []string{MsgRequired}},
		{name: "next line is not trimmed", value: "\u0085123", required: true, expected: []string{MsgDigitsOnly}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateNumericID(tt.value, tt.required, tt.maxLength)

			assert.Equal(t, tt.expected, res.Errors)
			assert.Equal(t, len(tt.expected) == 0, res.Valid)
		})
	}
}

func TestValidateNumericID_Property(t *testing.T) {
	digits := regexp.MustCompile(`^[0-9]+$`)

	property := func(s string) bool {
		trimmed := Trim(s)
		want := trimmed != "" && digits.MatchString(trimmed) && utf8.RuneCountInString(trimmed) <= DefaultNumericMaxLength
		return ValidateNumericID(s, true, DefaultNumericMaxLength).Valid == want
	}

	require.NoError(t, quick.Check(property, nil))

	for _, s := range []string{"0", "007", "12345678901234567890", "123456789012345678901", "1 2", "١٢٣"} {
		assert.True(t, property(s), s)
	}
}

func TestValidateStrength(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected []string
	}{
		{name: "empty means unchanged", value: "", expected: []string{}},
		{name: "strong", value: "Avaliacao2024", expected: []string{}},
		{name: "missing uppercase only", value: "abc12345", expected: []string{MsgStrengthUppercase}},
		{name: "deny list and uppercase", value: "password1", expected: []string{MsgStrengthUppercase, MsgStrengthCommon}},
		{name: "deny list case insensitive", value: "PassWord1", expected: []string{MsgStrengthCommon}},
		{
			name:     "all character classes missing",
			value:    "!!!",
			expected: []string{MsgStrengthLength, MsgStrengthLowercase, MsgStrengthUppercase, MsgStrengthDigit},
		},
		{
			name:     "short digits in deny list",
			value:    "abc123",
			expected: []string{MsgStrengthLength, MsgStrengthUppercase, MsgStrengthCommon},
		},
		{name: "whitespace is not trimmed", value: " Ab1 ", expected: []string{MsgStrengthLength}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateStrength(tt.value)

			assert.Equal(t, tt.expected, res.Errors)
			assert.Equal(t, len(tt.expected) == 0, res.Valid)
		})
	}
}

func TestIsCommonPassword(t *testing.T) {
	for _, pw := range []string{"12345678", "password", "123456789", "qwerty", "QWERTY", "abc123", "password1", "11111111", "00000000"} {
		assert.True(t, IsCommonPassword(pw), pw)
	}
	assert.False(t, IsCommonPassword("Password12"))
	assert.False(t, IsCommonPassword(""))
}

func TestValidateEmailShape(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		required bool
		expected []string
	}{
		{name: "valid", value: "user@example.com", required: true, expected: []string{}},
		{name: "subdomain", value: "ana.souza@ifrn.edu.br", required: true, expected: []string{}},
		{name: "trimmed", value: "  user@example.com ", required: true, expected: []string{}},
		{name: "double at", value: "user@@example.com", required: true, expected: []string{MsgEmailInvalid}},
		{name: "no at", value: "userexample.com", required: true, expected: []string{MsgEmailInvalid}},
		{name: "no dot after at", value: "user@example", required: true, expected: []string{MsgEmailInvalid}},
		{name: "inner space", value: "us er@example.com", required: true, expected: []string{MsgEmailInvalid}},
		{name: "inner no-break space", value: "us\u00a0er@example.com", required: true, expected: []string{MsgEmailInvalid}},
		{name: "ideographic space in domain", value: "user@exam\u3000ple.com", required: true, expected: []string{MsgEmailInvalid}},
		{name: "byte order mark in domain", value: "user@example.\ufeffcom", required: true, expected: []string{MsgEmailInvalid}},
		{name: "trimmed byte order mark", value: "\ufeffuser@example.com\u00a0", required: true, expected: []string{}},
		{name: "blank required", value: " ", required: true, expected: []string{MsgEmailRequired}},
		{name: "blank optional", value: " ", required: false, expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateEmailShape(tt.value, tt.required)

			assert.Equal(t, tt.expected, res.Errors)
			assert.Equal(t, len(tt.expected) == 0, res.Valid)
		})
	}
}

func TestValidateNameShape(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		required  bool
		minLength int
		expected  []string
	}{
		{name: "two words", value: "Ana Clara", required: true, expected: []string{}},
		{name: "accented", value: "João Conceição", required: true, expected: []string{}},
		{name: "digit", value: "Ana123", required: true, expected: []string{MsgLettersOnly}},
		{name: "below default minimum", value: "A", required: true, expected: []string{"Deve ter pelo menos 2 caracteres."}},
		{name: "accented counted as one character", value: "É", required: true, minLength: 2, expected: []string{"Deve ter pelo menos 2 caracteres."}},
		{name: "two accented characters", value: "Éô", required: true, minLength: 2, expected: []string{}},
		{name: "custom minimum", value: "Ana", required: true, minLength: 5, expected: []string{"Deve ter pelo menos 5 caracteres."}},
		{name: "short with digit", value: "1", required: true, expected: []string{"Deve ter pelo menos 2 caracteres.", MsgLettersOnly}},
		{name: "required empty", value: "", required: true, expected: []string{MsgRequired}},
		{name: "optional empty", value: "  ", required: false, expected: []string{}},
		{name: "punctuation", value: "D'Ávila", required: true, expected: []string{MsgLettersOnly}},
		{name: "no-break space between words", value: "Ana\u00a0Clara", required: true, expected: []string{}},
		{name: "narrow no-break space between words", value: "Ana\u202fClara", required: true, expected: []string{}},
		{name: "byte order mark trimmed", value: "\ufeffAna", required: true, expected: []string{}},
		{name: "only no-break spaces", value: "\u00a0\u00a0", required: true, expected: []string{MsgRequired}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateNameShape(tt.value, tt.required, tt.minLength)

			assert.Equal(t, tt.expected, res.Errors)
			assert.Equal(t, len(tt.expected) == 0, res.Valid)
		})
	}
}

func TestResultsAreFresh(t *testing.T) {
	first := ValidateNumericID("x", true, 0)
	first.Errors[0] = "mutated"

	second := ValidateNumericID("x", true, 0)
	assert.Equal(t, []string{MsgDigitsOnly}, second.Errors)
}

package formdom

import (
	"strings"

	"golang.org/x/net/html"

	"evalportal/internal/core/domain/fieldcheck"
	"evalportal/internal/platform/dom"
)

type Kind int

const (
	KindNumericID Kind = iota
	KindStrength
	KindEmail
	KindName
)

const (
	DefaultNumericLabel = "Matrícula"
	DefaultNameLabel    = "Nome"
)

// Options tunes a binding. The zero value is a required field with the
// default label and rule of its kind.
type Options struct {
	Label    string
	Optional bool
	// Rule replaces the default rule of the kind. Labels still apply to it.
	Rule fieldcheck.Rule
}

// Binding ties one input of a document to a rule. Input and Blur stand in for
// the input and blur events of the field.
type Binding struct {
	input    *html.Node
	kind     Kind
	label    string
	required bool
	rule     fieldcheck.Rule
}

// Attach binds the input with the given id. It returns nil when doc has no
// such element.
func Attach(doc *html.Node, id string, kind Kind, opts Options) *Binding {
	input := dom.ByID(doc, id)
	if input == nil {
		return nil
	}

	b := &Binding{
		input:    input,
		kind:     kind,
		required: !opts.Optional,
		rule:     opts.Rule,
	}

	switch kind {
	case KindNumericID:
		b.label = labelOr(opts.Label, DefaultNumericLabel)
		if b.rule == nil {
			b.rule = fieldcheck.NumericID(b.required, 0)
		}
	case KindName:
		b.label = labelOr(opts.Label, DefaultNameLabel)
		if b.rule == nil {
			b.rule = fieldcheck.NameShape(b.required, 0)
		}
	case KindEmail:
		b.label = opts.Label
		if b.rule == nil {
			b.rule = fieldcheck.EmailShape(b.required)
		}
	case KindStrength:
		b.label = opts.Label
		if b.rule == nil {
			b.rule = fieldcheck.Strength()
		}
	}

	return b
}

func labelOr(label, fallback string) string {
	if label == "" {
		return fallback
	}
	return label
}

func (b *Binding) Node() *html.Node {
	return b.input
}

func (b *Binding) Value() string {
	return FieldValue(b.input)
}

// Input stores a new value typed into the field and clears its errors.
// Numeric fields drop every non-digit character.
func (b *Binding) Input(value string) {
	if b.kind == KindNumericID {
		value = digitsOnly(value)
	}
	SetFieldValue(b.input, value)
	ClearFieldErrors(b.input)
}

// Blur validates the current value and renders the outcome next to the field.
func (b *Binding) Blur() fieldcheck.Result {
	value := b.Value()

	switch b.kind {
	case KindNumericID:
		value = fieldcheck.Trim(value)
		if !b.required && value == "" {
			ClearFieldErrors(b.input)
			return fieldcheck.Result{Valid: true, Errors: []string{}}
		}
	case KindStrength:
		if value == "" {
			ClearFieldErrors(b.input)
			return fieldcheck.Result{Valid: true, Errors: []string{}}
		}
	}

	res := fieldcheck.Labelled(b.label, b.rule)(value)
	if res.Valid {
		ClearFieldErrors(b.input)
	} else {
		ShowFieldErrors(b.input, res.Errors)
	}
	return res
}

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// Field pairs an input id with the rule checked on submit.
type Field struct {
	ID   string
	Rule fieldcheck.Rule
}

// ValidateForm checks every field in order, rendering or clearing its
// errors, and reports whether all of them passed. Fields whose input is
// missing are skipped. The first failing input receives autofocus and a
// scroll hint for the page script.
func ValidateForm(doc *html.Node, fields []Field) bool {
	var first *html.Node

	for _, f := range fields {
		input := dom.ByID(doc, f.ID)
		if input == nil || f.Rule == nil {
			continue
		}

		res := f.Rule(FieldValue(input))
		if res.Valid {
			ClearFieldErrors(input)
			continue
		}

		ShowFieldErrors(input, res.Errors)
		if first == nil {
			first = input
		}
	}

	if first != nil {
		Focus(doc, first)
	}

	return first == nil
}

const ScrollHintAttr = "data-scroll-into-view"

var focusedSelector = dom.MustCompile("[autofocus], [" + ScrollHintAttr + "]")

// Focus moves autofocus to n and marks it to be scrolled to the centre of
// the viewport.
func Focus(doc, n *html.Node) {
	for _, other := range dom.QueryAll(doc, focusedSelector) {
		dom.RemoveAttr(other, "autofocus")
		dom.RemoveAttr(other, ScrollHintAttr)
	}
	dom.SetAttr(n, "autofocus", "")
	dom.SetAttr(n, ScrollHintAttr, "center")
}

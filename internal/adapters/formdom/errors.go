// Package formdom renders field validation feedback into a parsed page and
// binds fieldcheck rules to its inputs. Every operation tolerates missing
// elements and does nothing when a node it needs is absent.
package formdom

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"evalportal/internal/platform/dom"
)

const (
	ErrorClass      = "error"
	FieldErrorClass = "field-error"
	GroupClass      = "form-group"
)

var (
	groupSelector      = dom.MustCompile("." + GroupClass)
	fieldErrorSelector = dom.MustCompile("." + FieldErrorClass)
)

// FieldContainer returns the nearest form group around input, or its parent.
func FieldContainer(input *html.Node) *html.Node {
	if input == nil {
		return nil
	}
	if group := dom.Closest(input, groupSelector); group != nil {
		return group
	}
	return input.Parent
}

// ShowFieldErrors replaces the rendered errors of input with errs. An empty
// errs leaves the field clear.
func ShowFieldErrors(input *html.Node, errs []string) {
	if input == nil {
		return
	}
	ClearFieldErrors(input)
	if len(errs) == 0 {
		return
	}

	block := dom.Element("div",
		html.Attribute{Key: "class", Val: FieldErrorClass},
		html.Attribute{Key: "role", Val: "alert"},
	)
	for i, msg := range errs {
		if i > 0 {
			block.AppendChild(dom.Element("br"))
		}
		block.AppendChild(dom.TextNode(msg))
	}

	if container := FieldContainer(input); container != nil {
		container.AppendChild(block)
	}

	dom.AddClass(input, ErrorClass)
	dom.SetAttr(input, "aria-invalid", "true")
}

func ClearFieldErrors(input *html.Node) {
	if input == nil {
		return
	}
	if container := FieldContainer(input); container != nil {
		dom.Detach(dom.QueryOne(container, fieldErrorSelector))
	}
	dom.RemoveClass(input, ErrorClass)
	dom.RemoveAttr(input, "aria-invalid")
}

// HasFieldErrors reports whether input is currently marked invalid.
func HasFieldErrors(input *html.Node) bool {
	return dom.HasClass(input, ErrorClass)
}

// FieldValue reads the current value of a form control: the value attribute
// of an input, the text of a textarea or the selected option of a select.
func FieldValue(n *html.Node) string {
	if n == nil {
		return ""
	}
	switch n.DataAtom {
	case atom.Textarea:
		return dom.Text(n)
	case atom.Select:
		var first *html.Node
		for _, opt := range dom.QueryAll(n, optionSelector) {
			if first == nil {
				first = opt
			}
			if _, ok := dom.Attr(opt, "selected"); ok {
				return optionValue(opt)
			}
		}
		if first != nil {
			return optionValue(first)
		}
		return ""
	default:
		return dom.AttrOr(n, "value", "")
	}
}

// SetFieldValue is the write counterpart of FieldValue. Setting a select to a
// value no option carries leaves no option selected.
func SetFieldValue(n *html.Node, value string) {
	if n == nil {
		return
	}
	switch n.DataAtom {
	case atom.Textarea:
		dom.SetText(n, value)
	case atom.Select:
		for _, opt := range dom.QueryAll(n, optionSelector) {
			if optionValue(opt) == value {
				dom.SetAttr(opt, "selected", "")
			} else {
				dom.RemoveAttr(opt, "selected")
			}
		}
	default:
		dom.SetAttr(n, "value", value)
	}
}

var optionSelector = dom.MustCompile("option")

func optionValue(opt *html.Node) string {
	if v, ok := dom.Attr(opt, "value"); ok {
		return v
	}
	return dom.Text(opt)
}

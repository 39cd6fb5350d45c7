package formdom

import (
	"golang.org/x/net/html"

	"evalportal/internal/platform/dom"
)

const DefaultFormSelector = "form"

var messagesSelector = dom.MustCompile(".messages")

// ShowFormErrorMessage puts message at the top of the form matched by
// selector, replacing any earlier message block. An empty selector means the
// first form of the page. A missing form or an invalid selector is a no-op.
func ShowFormErrorMessage(doc *html.Node, message, selector string) {
	if selector == "" {
		selector = DefaultFormSelector
	}
	sel, err := dom.Compile(selector)
	if err != nil {
		return
	}
	form := dom.QueryOne(doc, sel)
	if form == nil {
		return
	}

	dom.Detach(dom.QueryOne(form, messagesSelector))

	item := dom.Element("li", html.Attribute{Key: "class", Val: "error"})
	item.AppendChild(dom.TextNode(message))
	list := dom.Element("ul", html.Attribute{Key: "class", Val: "messages"})
	list.AppendChild(item)

	dom.Prepend(form, list)
}

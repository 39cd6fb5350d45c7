// Package dom is a small toolkit over golang.org/x/net/html for the page
// mutations the portal performs before a document is written to the client.
package dom

import (
	"bytes"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func Parse(r io.Reader) (*html.Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return doc, nil
}

func ParseString(s string) (*html.Node, error) {
	return Parse(strings.NewReader(s))
}

func Render(w io.Writer, n *html.Node) error {
	return html.Render(w, n)
}

func RenderString(n *html.Node) string {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return ""
	}
	return buf.String()
}

// Compile parses a CSS selector. Callers with literal selectors use MustCompile.
func Compile(selector string) (cascadia.Matcher, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("compile selector %q: %w", selector, err)
	}
	return sel, nil
}

func MustCompile(selector string) cascadia.Matcher {
	return cascadia.MustCompile(selector)
}

func QueryOne(root *html.Node, sel cascadia.Matcher) *html.Node {
	if root == nil {
		return nil
	}
	return cascadia.Query(root, sel)
}

func QueryAll(root *html.Node, sel cascadia.Matcher) []*html.Node {
	if root == nil {
		return nil
	}
	return cascadia.QueryAll(root, sel)
}

func ByID(root *html.Node, id string) *html.Node {
	if root == nil || id == "" {
		return nil
	}
	var found *html.Node
	walk(root, func(n *html.Node) bool {
		if n.Type == html.ElementNode {
			if v, ok := Attr(n, "id"); ok && v == id {
				found = n
				return false
			}
		}
		return true
	})
	return found
}

// Closest returns the nearest ancestor of n (n excluded) matching sel.
func Closest(n *html.Node, sel cascadia.Matcher) *html.Node {
	if n == nil {
		return nil
	}
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && sel.Match(p) {
			return p
		}
	}
	return nil
}

func walk(n *html.Node, visit func(*html.Node) bool) bool {
	if !visit(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, visit) {
			return false
		}
	}
	return true
}

func Attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func AttrOr(n *html.Node, key, fallback string) string {
	if v, ok := Attr(n, key); ok {
		return v
	}
	return fallback
}

func SetAttr(n *html.Node, key, val string) {
	if n == nil {
		return
	}
	for i := range n.Attr {
		if n.Attr[i].Namespace == "" && n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func RemoveAttr(n *html.Node, key string) {
	if n == nil {
		return
	}
	n.Attr = slices.DeleteFunc(n.Attr, func(a html.Attribute) bool {
		return a.Namespace == "" && a.Key == key
	})
}

func Classes(n *html.Node) []string {
	return strings.Fields(AttrOr(n, "class", ""))
}

func HasClass(n *html.Node, class string) bool {
	return slices.Contains(Classes(n), class)
}

func AddClass(n *html.Node, class string) {
	if n == nil || HasClass(n, class) {
		return
	}
	SetAttr(n, "class", strings.Join(append(Classes(n), class), " "))
}

func RemoveClass(n *html.Node, class string) {
	if n == nil || !HasClass(n, class) {
		return
	}
	rest := slices.DeleteFunc(Classes(n), func(c string) bool { return c == class })
	if len(rest) == 0 {
		RemoveAttr(n, "class")
		return
	}
	SetAttr(n, "class", strings.Join(rest, " "))
}

// SetStyle sets one declaration of the inline style, keeping the others in order.
// An empty value removes the property.
func SetStyle(n *html.Node, property, value string) {
	if n == nil {
		return
	}
	var decls []string
	replaced := false
	for _, d := range strings.Split(AttrOr(n, "style", ""), ";") {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		name, _, _ := strings.Cut(d, ":")
		if strings.EqualFold(strings.TrimSpace(name), property) {
			replaced = true
			if value != "" {
				decls = append(decls, property+": "+value)
			}
			continue
		}
		decls = append(decls, d)
	}
	if !replaced && value != "" {
		decls = append(decls, property+": "+value)
	}
	if len(decls) == 0 {
		RemoveAttr(n, "style")
		return
	}
	SetAttr(n, "style", strings.Join(decls, "; "))
}

func Style(n *html.Node, property string) string {
	for _, d := range strings.Split(AttrOr(n, "style", ""), ";") {
		name, val, ok := strings.Cut(d, ":")
		if ok && strings.EqualFold(strings.TrimSpace(name), property) {
			return strings.TrimSpace(val)
		}
	}
	return ""
}

func Element(tag string, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
		Attr:     attrs,
	}
}

func TextNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// Text concatenates the text content of n and its descendants.
func Text(n *html.Node) string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
		return true
	})
	return sb.String()
}

func SetText(n *html.Node, s string) {
	if n == nil {
		return
	}
	RemoveChildren(n)
	n.AppendChild(TextNode(s))
}

func RemoveChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
	}
}

// Detach removes n from its parent. Detaching a parentless node does nothing.
func Detach(n *html.Node) {
	if n != nil && n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

func Prepend(parent, child *html.Node) {
	if parent.FirstChild == nil {
		parent.AppendChild(child)
		return
	}
	parent.InsertBefore(child, parent.FirstChild)
}

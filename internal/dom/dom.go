// Package dom builds and queries headless HTML element trees.
//
// Nodes are plain *html.Node values from golang.org/x/net/html, so anything
// built here can be rendered with html.Render or inspected in tests. Markup
// passed through the "html" attribute is inserted verbatim: callers are
// responsible for only handing it trusted input.
package dom

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Attrs describes the attributes of an element built by El.
//
// Reserved keys:
//   - "class": the class attribute
//   - "text":  a single text child
//   - "html":  raw markup parsed and appended as children
//   - "on<event>" with a Handler value: an event binding fired by Dispatch
//
// Every other key becomes an attribute with its value formatted by fmt.Sprint.
// Nil values are skipped.
type Attrs map[string]any

// Handler is an event handler bound to an element.
type Handler func(n *html.Node)

// Document owns a node tree and the event bindings of the elements built for it.
type Document struct {
	Root     *html.Node
	handlers map[*html.Node]map[string][]Handler
}

// New wraps an existing tree. A nil root starts an empty document.
func New(root *html.Node) *Document {
	if root == nil {
		root = &html.Node{Type: html.DocumentNode}
	}
	return &Document{
		Root:     root,
		handlers: make(map[*html.Node]map[string][]Handler),
	}
}

// Parse reads a full HTML document.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return New(root), nil
}

// El creates a detached element with attrs applied and children appended in order.
// Children may be strings (text nodes), *html.Node values, or nil (skipped).
func (d *Document) El(tag string, attrs Attrs, children ...any) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}

	keys := make([]string, 0, len(attrs))
	for k, v := range attrs {
		if v == nil {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var text, markup *string
	for _, k := range keys {
		v := attrs[k]
		switch {
		case k == "class":
			SetAttr(n, "class", fmt.Sprint(v))
		case k == "text":
			s := fmt.Sprint(v)
			text = &s
		case k == "html":
			s := fmt.Sprint(v)
			markup = &s
		case strings.HasPrefix(k, "on") && isHandler(v):
			d.On(n, strings.TrimPrefix(k, "on"), toHandler(v))
		default:
			SetAttr(n, k, fmt.Sprint(v))
		}
	}

	if text != nil {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: *text})
	}
	if markup != nil {
		SetHTML(n, *markup)
	}

	Append(n, children...)
	return n
}

// On binds h to the given event on n.
func (d *Document) On(n *html.Node, event string, h Handler) {
	byEvent, ok := d.handlers[n]
	if !ok {
		byEvent = make(map[string][]Handler)
		d.handlers[n] = byEvent
	}
	byEvent[event] = append(byEvent[event], h)
}

// Dispatch fires every handler bound to event on n and reports how many ran.
func (d *Document) Dispatch(n *html.Node, event string) int {
	hs := d.handlers[n][event]
	for _, h := range hs {
		h(n)
	}
	return len(hs)
}

// Query returns the first element in the document matching sel.
func (d *Document) Query(sel string) *html.Node { return Query(d.Root, sel) }

// QueryAll returns every element in the document matching sel.
func (d *Document) QueryAll(sel string) []*html.Node { return QueryAll(d.Root, sel) }

// ByID returns the element with the given id, or nil.
func (d *Document) ByID(id string) *html.Node {
	var found *html.Node
	walk(d.Root, func(n *html.Node) bool {
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

// SetText replaces the text of the first element matching sel. Missing elements are ignored.
func (d *Document) SetText(sel, text string) { SetText(d.Root, sel, text) }

// Render writes the whole document as HTML.
func (d *Document) Render(w io.Writer) error { return html.Render(w, d.Root) }

func isHandler(v any) bool {
	switch v.(type) {
	case Handler, func(*html.Node), func():
		return true
	}
	return false
}

func toHandler(v any) Handler {
	switch h := v.(type) {
	case Handler:
		return h
	case func(*html.Node):
		return h
	case func():
		return func(*html.Node) { h() }
	}
	return nil
}

// Append adds children to parent in order, skipping nil values.
// Nodes that are still attached elsewhere are moved.
func Append(parent *html.Node, children ...any) {
	for _, c := range children {
		switch v := c.(type) {
		case nil:
		case string:
			parent.AppendChild(&html.Node{Type: html.TextNode, Data: v})
		case *html.Node:
			if v == nil {
				continue
			}
			if v.Parent != nil {
				v.Parent.RemoveChild(v)
			}
			parent.AppendChild(v)
		case []*html.Node:
			for _, n := range v {
				Append(parent, n)
			}
		default:
			parent.AppendChild(&html.Node{Type: html.TextNode, Data: fmt.Sprint(v)})
		}
	}
}

// Clear removes every child of n.
func Clear(n *html.Node) {
	if n == nil {
		return
	}
	for n.FirstChild != nil {
		n.RemoveChild(n.FirstChild)
	}
}

// SetHTML replaces the children of n with the parsed markup.
func SetHTML(n *html.Node, markup string) {
	Clear(n)
	ctx := &html.Node{Type: html.ElementNode, Data: n.Data, DataAtom: n.DataAtom}
	if ctx.DataAtom == 0 {
		ctx.Data, ctx.DataAtom = "div", atom.Div
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), ctx)
	if err != nil {
		return
	}
	for _, c := range nodes {
		n.AppendChild(c)
	}
}

// SetText replaces the text of the first element under root matching sel.
func SetText(root *html.Node, sel, text string) {
	if n := Query(root, sel); n != nil {
		ReplaceText(n, text)
	}
}

// ReplaceText replaces all children of n with a single text node.
func ReplaceText(n *html.Node, text string) {
	if n == nil {
		return
	}
	Clear(n)
	if text != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
}

// Text returns the concatenated text content of n.
func Text(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
		return true
	})
	return b.String()
}

// Query returns the first element under root matching the CSS selector sel.
// An invalid selector matches nothing.
func Query(root *html.Node, sel string) *html.Node {
	if root == nil {
		return nil
	}
	s, err := cascadia.Compile(sel)
	if err != nil {
		return nil
	}
	return s.MatchFirst(root)
}

// QueryAll returns every element under root matching sel, in document order.
func QueryAll(root *html.Node, sel string) []*html.Node {
	if root == nil {
		return nil
	}
	s, err := cascadia.Compile(sel)
	if err != nil {
		return nil
	}
	return s.MatchAll(root)
}

// Attr returns the value of the named attribute.
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

// SetAttr sets or replaces the named attribute.
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// HasClass reports whether n carries class in its class attribute.
func HasClass(n *html.Node, class string) bool {
	v, _ := Attr(n, "class")
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

// Show makes a hidden element visible.
func Show(n *html.Node) {
	if n == nil {
		return
	}
	SetAttr(n, "style", "display: block")
}

// Render serializes n and its subtree.
func Render(w io.Writer, n *html.Node) error {
	return html.Render(w, n)
}

// String renders n to a string, mostly for tests and logging.
func String(n *html.Node) string {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return ""
	}
	return buf.String()
}

// walk visits n and its descendants depth first until fn returns false.
func walk(n *html.Node, fn func(*html.Node) bool) bool {
	if !fn(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, fn) {
			return false
		}
	}
	return true
}

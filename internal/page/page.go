// Package page carries what a controller needs to render one page: where it
// is being rendered (Context) and the named output slots it writes into.
package page

import (
	"net/url"
	"time"

	"golang.org/x/net/html"

	"homepage/internal/dom"
)

// Context describes the page being rendered.
type Context struct {
	// Path is the request path, e.g. "/apps/".
	Path string
	// Origin is the scheme://host the page is served from.
	Origin *url.URL
	// Clock returns the current time; nil means time.Now.
	Clock func() time.Time
}

// Now returns the current time from the context clock.
func (c Context) Now() time.Time {
	if c.Clock != nil {
		return c.Clock()
	}
	return time.Now()
}

// Href returns the absolute URL of the page.
func (c Context) Href() string {
	if c.Origin == nil {
		return c.Path
	}
	return c.Origin.ResolveReference(&url.URL{Path: c.Path}).String()
}

// Slots resolves named output targets. A missing slot returns nil.
type Slots interface {
	Slot(name string) *html.Node
}

// Page is a document being rendered for a context.
type Page struct {
	Context
	Doc   *dom.Document
	Slots Slots
}

// New creates a Page whose slots are the elements of doc looked up by id.
func New(ctx Context, doc *dom.Document) *Page {
	return &Page{Context: ctx, Doc: doc, Slots: idSlots{doc}}
}

// Slot returns the named slot or nil.
func (p *Page) Slot(name string) *html.Node {
	return p.Slots.Slot(name)
}

// SetText replaces the text of a slot. Missing slots are ignored.
func (p *Page) SetText(name, text string) {
	dom.ReplaceText(p.Slot(name), text)
}

// Notify writes msg into a notice slot and makes it visible.
func (p *Page) Notify(name, msg string) {
	n := p.Slot(name)
	if n == nil {
		return
	}
	dom.Show(n)
	dom.ReplaceText(n, msg)
}

// El builds an element owned by the page document.
func (p *Page) El(tag string, attrs dom.Attrs, children ...any) *html.Node {
	return p.Doc.El(tag, attrs, children...)
}

type idSlots struct {
	doc *dom.Document
}

func (s idSlots) Slot(name string) *html.Node {
	return s.doc.ByID(name)
}

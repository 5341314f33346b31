// Package ui holds the widgets shared by the page controllers: cards, tag
// lists, footer links and external-link marking.
package ui

import (
	"net/url"
	"strconv"

	"golang.org/x/net/html"

	"homepage/internal/dom"
	"homepage/internal/models"
	"homepage/internal/page"
	"homepage/internal/urlutil"
)

// MaxTags is the number of tags a card displays.
const MaxTags = 6

// FooterSeparator sits between footer links.
const FooterSeparator = " · "

// CardSpec is what a card displays.
type CardSpec struct {
	Title   string
	Badge   string
	Desc    string
	Href    string
	Tags    []string
	Feature bool
}

// Card renders a linked card. Cross-origin hrefs open in a new tab.
func Card(p *page.Page, c CardSpec) *html.Node {
	class := "card span-6"
	if c.Feature {
		class += " feature"
	}

	var badge, desc, tags *html.Node
	if c.Badge != "" {
		badge = p.El("span", dom.Attrs{"class": "badge", "text": c.Badge})
	}
	if c.Desc != "" {
		desc = p.El("p", dom.Attrs{"class": "card-desc", "text": c.Desc})
	}
	if len(c.Tags) > 0 {
		tags = Tags(p, c.Tags)
	}

	a := p.El("a", dom.Attrs{"class": class, "href": c.Href},
		p.El("div", dom.Attrs{"class": "card-top"},
			p.El("h3", dom.Attrs{"class": "card-title", "text": c.Title}),
			badge,
		),
		desc,
		tags,
	)
	MarkExternal(a, p.Origin)
	return a
}

// Tags renders at most MaxTags tag chips.
func Tags(p *page.Page, tags []string) *html.Node {
	if len(tags) > MaxTags {
		tags = tags[:MaxTags]
	}
	box := p.El("div", dom.Attrs{"class": "tags"})
	for _, t := range tags {
		dom.Append(box, p.El("span", dom.Attrs{"class": "tag", "text": t}))
	}
	return box
}

// MarkExternal makes a link whose href resolves to another origin open in a
// new browsing context without opener or referrer. Unparseable hrefs are left alone.
func MarkExternal(a *html.Node, origin *url.URL) *html.Node {
	href, ok := dom.Attr(a, "href")
	if !ok {
		return a
	}
	external, err := urlutil.IsExternal(href, origin)
	if err != nil || !external {
		return a
	}
	dom.SetAttr(a, "target", "_blank")
	dom.SetAttr(a, "rel", "noopener noreferrer")
	return a
}

// Link renders an anchor, marked external when needed.
func Link(p *page.Page, attrs dom.Attrs, href, text string) *html.Node {
	if attrs == nil {
		attrs = dom.Attrs{}
	}
	attrs["href"] = href
	attrs["text"] = text
	return MarkExternal(p.El("a", attrs), p.Origin)
}

// Grid clears the named slot and fills it with one card per item, in order.
// A missing slot is skipped.
func Grid(p *page.Page, slot string, items []models.Item, card func(models.Item) *html.Node) {
	grid := p.Slot(slot)
	if grid == nil {
		return
	}
	dom.Clear(grid)
	for _, it := range items {
		dom.Append(grid, card(it))
	}
}

// FooterLinks replaces the footer-links slot with links separated by FooterSeparator.
func FooterLinks(p *page.Page, links []models.FooterLink) {
	box := p.Slot("footer-links")
	if box == nil {
		return
	}
	dom.Clear(box)
	for i, l := range links {
		dom.Append(box, Link(p, nil, l.Href, l.Name))
		if i < len(links)-1 {
			dom.Append(box, FooterSeparator)
		}
	}
}

// SetYear writes the current year into the year slot.
func SetYear(p *page.Page) {
	p.SetText("year", strconv.Itoa(p.Now().Year()))
}

// Package topbar renders the shared navigation header.
package topbar

import (
	"strings"

	"golang.org/x/net/html"

	"homepage/internal/dom"
	"homepage/internal/models"
	"homepage/internal/page"
)

const (
	// Brand is the site name shown in the header.
	Brand = "buk1t"
	// DefaultTagline is used for the tagline span when no hint is given.
	DefaultTagline = "a personal internet system"

	// HintAttr and TaglineAttr are read from the mount element.
	HintAttr    = "data-hint"
	TaglineAttr = "data-tagline"
)

// Links is the fixed navigation.
var Links = []models.Link{
	{Label: "Home", Href: "/"},
	{Label: "Apps", Href: "/apps/"},
	{Label: "Status", Href: "/status/"},
	{Label: "About", Href: "/about/"},
	{Label: "Contact", Href: "/contact/"},
}

// NormalizePath gives p a leading and trailing slash. Empty becomes "/".
func NormalizePath(p string) string {
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return p
}

// IsActive reports whether the link to href is highlighted on the page at current.
// Home is only active on an exact match; other sections match by prefix.
func IsActive(current, href string) bool {
	c := NormalizePath(current)
	h := NormalizePath(href)
	if h == "/" {
		return c == "/"
	}
	return strings.HasPrefix(c, h)
}

// Mount renders the header into mount, replacing anything already there.
func Mount(p *page.Page, mount *html.Node) {
	if mount == nil {
		return
	}

	hint, _ := dom.Attr(mount, HintAttr)
	tagline, _ := dom.Attr(mount, TaglineAttr)

	var hintSpan *html.Node
	if tagline == "true" {
		text := hint
		if text == "" {
			text = DefaultTagline
		}
		hintSpan = p.El("span", dom.Attrs{"class": "hint", "id": "tagline", "text": text})
	} else {
		hintSpan = p.El("span", dom.Attrs{"class": "hint", "text": hint})
	}

	nav := p.El("nav", dom.Attrs{"class": "nav"})
	for _, l := range Links {
		class := "pill"
		if IsActive(p.Path, l.Href) {
			class += " is-active"
		}
		dom.Append(nav, p.El("a", dom.Attrs{"class": class, "href": l.Href, "text": l.Label}))
	}

	header := p.El("header", dom.Attrs{"class": "topbar"},
		p.El("a", dom.Attrs{"class": "brand", "href": "/"},
			p.El("span", dom.Attrs{"class": "name", "text": Brand}),
			hintSpan,
		),
		nav,
	)

	dom.Clear(mount)
	dom.Append(mount, header)
}

// MountSlot renders the header into the "topbar" slot.
func MountSlot(p *page.Page) {
	Mount(p, p.Slot("topbar"))
}

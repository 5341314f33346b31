package ui

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"homepage/internal/dom"
	"homepage/internal/models"
	"homepage/internal/page"
)

func newPage(t *testing.T, body string) *page.Page {
	t.Helper()
	doc, err := dom.Parse(strings.NewReader("<!DOCTYPE html><html><body>" + body + "</body></html>"))
	require.NoError(t, err)
	origin, _ := url.Parse("https://www.buk1t.com")
	return page.New(page.Context{
		Path:   "/",
		Origin: origin,
		Clock:  func() time.Time { return time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC) },
	}, doc)
}

func TestCard(t *testing.T) {
	p := newPage(t, "")

	t.Run("tags are truncated", func(t *testing.T) {
		card := Card(p, CardSpec{
			Title: "Search",
			Href:  "/apps/",
			Tags:  []string{"a", "b", "c", "d", "e", "f", "g", "h"},
		})
		tags := dom.QueryAll(card, ".tag")
		require.Len(t, tags, MaxTags)
		assert.Equal(t, "f", dom.Text(tags[5]))
	})

	t.Run("optional parts are omitted", func(t *testing.T) {
		card := Card(p, CardSpec{Title: "Bare", Href: "/"})
		assert.Nil(t, dom.Query(card, ".badge"))
		assert.Nil(t, dom.Query(card, ".card-desc"))
		assert.Nil(t, dom.Query(card, ".tags"))
		assert.Equal(t, "Bare", dom.Text(dom.Query(card, ".card-title")))
	})

	t.Run("feature class", func(t *testing.T) {
		card := Card(p, CardSpec{Title: "F", Href: "/", Feature: true, Badge: "active", Desc: "d"})
		assert.True(t, dom.HasClass(card, "feature"))
		assert.Equal(t, "active", dom.Text(dom.Query(card, ".badge")))
		assert.Equal(t, "d", dom.Text(dom.Query(card, ".card-desc")))
	})
}

func TestMarkExternal(t *testing.T) {
	p := newPage(t, "")

	tests := []struct {
		href     string
		external bool
	}{
		{"/apps/", false},
		{"https://www.buk1t.com/status/", false},
		{"https://search.buk1t.com", true},
		{"https://github.com/buk1t", true},
		{"mailto:dev@buk1t.com", true},
		{"http://[::1", false},
	}
	for _, tt := range tests {
		a := Link(p, nil, tt.href, "x")
		target, hasTarget := dom.Attr(a, "target")
		rel, _ := dom.Attr(a, "rel")
		if tt.external {
			assert.Equal(t, "_blank", target, tt.href)
			assert.Equal(t, "noopener noreferrer", rel, tt.href)
		} else {
			assert.False(t, hasTarget, tt.href)
		}
	}
}

func TestFooterLinks(t *testing.T) {
	p := newPage(t, `<p id="footer-links">old</p>`)

	FooterLinks(p, []models.FooterLink{
		{Name: "Apps", Href: "/apps/"},
		{Name: "GitHub", Href: "https://github.com/buk1t"},
	})

	box := p.Slot("footer-links")
	assert.Equal(t, "Apps · GitHub", dom.Text(box))
	links := dom.QueryAll(box, "a")
	require.Len(t, links, 2)
	_, ok := dom.Attr(links[0], "target")
	assert.False(t, ok)
	target, _ := dom.Attr(links[1], "target")
	assert.Equal(t, "_blank", target)
}

func TestGridAndYear(t *testing.T) {
	p := newPage(t, `<div id="grid"><span>stale</span></div><span id="year"></span>`)

	Grid(p, "grid", []models.Item{{Title: "one", Href: "/"}, {Title: "two", Href: "/"}}, func(it models.Item) *html.Node {
		return Card(p, CardSpec{Title: it.Title, Href: it.Href})
	})
	titles := p.Doc.QueryAll("#grid .card-title")
	require.Len(t, titles, 2)
	assert.Equal(t, "one", dom.Text(titles[0]))
	assert.Equal(t, "two", dom.Text(titles[1]))
	assert.Nil(t, p.Doc.Query("#grid > span"))

	assert.NotPanics(t, func() { Grid(p, "missing", nil, nil) })

	SetYear(p)
	assert.Equal(t, "2026", dom.Text(p.Slot("year")))
}

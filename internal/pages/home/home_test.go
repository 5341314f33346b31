package home

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homepage/internal/dom"
	"homepage/internal/pages"
	"homepage/internal/pages/pagestest"
)

const homeShell = `<span id="tagline">a personal internet system</span>
<span id="updated"></span>
<div id="notice" style="display: none"></div>
<h1 id="hero-title"></h1><p id="hero-sub"></p>
<h2 id="philosophy-title"></h2><p id="philosophy-body"></p>
<div id="hero-ctas"><a class="btn">static</a></div>
<div id="featured-grid"></div><div id="now-grid"></div><div id="future-grid"></div>
<p id="footer-links"></p><span id="year"></span>`

func TestRenderFromRegistry(t *testing.T) {
	body := `{
	  "meta": {"tagline": "small fast pages", "updated": "2026-02-01"},
	  "identity": {"title": "Hello", "headline": "Just a headline"},
	  "featured": [{"title": "Search", "href": "https://search.buk1t.com", "status": "active",
	                "tags": ["a","b","c","d","e","f","g"]}],
	  "now": [],
	  "links": [{"name": "Status", "href": "/status/"}],
	  "cta": {"primary": {"href": "https://search.buk1t.com"}, "secondary": {"label": "Apps", "href": "/apps/"}}
	}`
	fetcher := &pagestest.Fetcher{Body: body}
	p := pagestest.NewPage(t, "/", homeShell)

	require.NoError(t, New(fetcher, "https://api.buk1t.com/www.json").Render(context.Background(), p))

	assert.Equal(t, []string{"https://api.buk1t.com/www.json"}, fetcher.URLs)
	assert.Equal(t, "small fast pages", pagestest.Text(p, "tagline"))
	assert.Equal(t, "Updated 2026-02-01", pagestest.Text(p, "updated"))
	assert.Equal(t, "Hello", pagestest.Text(p, "hero-title"))
	assert.Equal(t, "Just a headline", pagestest.Text(p, "hero-sub"), "headline stands in for a missing body")
	assert.Equal(t, Fallback.Philosophy.Title, pagestest.Text(p, "philosophy-title"))
	assert.Equal(t, "", pagestest.Text(p, "notice"))

	featured := p.Doc.QueryAll("#featured-grid .card")
	require.Len(t, featured, 1)
	assert.True(t, dom.HasClass(featured[0], "feature"))
	assert.Len(t, dom.QueryAll(featured[0], ".tag"), 6)
	target, _ := dom.Attr(featured[0], "target")
	assert.Equal(t, "_blank", target)

	assert.Empty(t, p.Doc.QueryAll("#now-grid .card"), "an empty list stays empty")
	assert.Len(t, p.Doc.QueryAll("#future-grid .card"), len(Fallback.Future), "an absent list falls back")

	ctas := p.Doc.QueryAll("#hero-ctas a")
	require.Len(t, ctas, 2)
	assert.Equal(t, "Open", dom.Text(ctas[0]))
	assert.True(t, dom.HasClass(ctas[0], "primary"))
	assert.Equal(t, "Apps", dom.Text(ctas[1]))
	_, ok := dom.Attr(ctas[1], "target")
	assert.False(t, ok)

	assert.Equal(t, "Status", pagestest.Text(p, "footer-links"))
}

func TestRenderFallback(t *testing.T) {
	fetcher := &pagestest.Fetcher{Err: errors.New("connection refused")}
	p := pagestest.NewPage(t, "/", homeShell)

	require.NoError(t, New(fetcher, "https://api.buk1t.com/www.json").Render(context.Background(), p))

	assert.Equal(t, "Couldn’t load www.json (connection refused). Showing fallback.", pagestest.Text(p, "notice"))
	assert.Equal(t, "Offline mode", pagestest.Text(p, "updated"))
	assert.Equal(t, Fallback.Identity.Title, pagestest.Text(p, "hero-title"))
	assert.Equal(t, Fallback.Identity.Body, pagestest.Text(p, "hero-sub"))
	assert.Len(t, p.Doc.QueryAll("#featured-grid .card"), len(Fallback.Featured))
	assert.Len(t, p.Doc.QueryAll("#now-grid .card"), len(Fallback.Now))
	assert.Equal(t, "Open Search", dom.Text(p.Doc.Query("#hero-ctas a.primary")))
	assert.Equal(t, "Apps · GitHub · Email", pagestest.Text(p, "footer-links"))
	assert.Equal(t, "2026", pagestest.Text(p, "year"))

	// Card titles fall back to "Untitled" only when nothing else is set.
	assert.Equal(t, "Search", dom.Text(p.Doc.Query("#featured-grid .card-title")))
}

func TestRenderNoUpdatedStamp(t *testing.T) {
	p := pagestest.NewPage(t, "/", homeShell)
	require.NoError(t, New(&pagestest.Fetcher{Body: `{"featured": [{"href": "/x/"}]}`}, "u").Render(context.Background(), p))

	assert.Equal(t, "—", pagestest.Text(p, "updated"))
	assert.Equal(t, "a personal internet system", pagestest.Text(p, "tagline"), "tagline untouched when absent")
	assert.Equal(t, "Untitled", dom.Text(p.Doc.Query("#featured-grid .card-title")))
}

func TestRenderIncompleteCTAKeepsMarkup(t *testing.T) {
	p := pagestest.NewPage(t, "/", homeShell)
	body := `{"cta": {"primary": {"label": "Go", "href": "/go/"}, "secondary": {"label": "Nowhere"}}}`
	require.NoError(t, New(&pagestest.Fetcher{Body: body}, "u").Render(context.Background(), p))

	assert.Equal(t, "static", pagestest.Text(p, "hero-ctas"))
}

func TestRenderRequiresGrid(t *testing.T) {
	p := pagestest.NewPage(t, "/", `<span id="updated"></span>`)
	err := New(&pagestest.Fetcher{Body: "{}"}, "u").Render(context.Background(), p)
	assert.ErrorIs(t, err, pages.ErrMissingSlot)
}

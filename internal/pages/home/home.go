// Package home renders the landing page from www.json.
package home

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/net/html"

	"homepage/internal/dom"
	"homepage/internal/logger"
	"homepage/internal/models"
	"homepage/internal/page"
	"homepage/internal/pages"
	"homepage/internal/ui"
)

// Controller renders the home page.
type Controller struct {
	fetcher pages.Fetcher
	url     string
	log     zerolog.Logger
}

// New creates a home page controller reading the registry at url.
func New(fetcher pages.Fetcher, url string) *Controller {
	return &Controller{
		fetcher: fetcher,
		url:     url,
		log:     logger.WithComponent("home"),
	}
}

// Render populates the home page slots. Fetch failures fall back to the
// embedded registry and surface a notice.
func (c *Controller) Render(ctx context.Context, p *page.Page) error {
	if err := pages.RequireSlots(p, "featured-grid"); err != nil {
		return err
	}

	ui.SetYear(p)

	data := Fallback
	usingFallback := false

	var remote models.Registry
	if err := c.fetcher.JSON(ctx, c.url, &remote); err != nil {
		usingFallback = true
		c.log.Warn().Err(err).Str("url", c.url).Msg("www.json unavailable, rendering fallback")
		p.Notify("notice", pages.FailureNotice("www.json", err, "Showing fallback."))
	} else {
		data = remote
	}

	if data.Meta != nil && data.Meta.Tagline != "" {
		p.SetText("tagline", data.Meta.Tagline)
	}

	switch {
	case data.Meta != nil && data.Meta.Updated != "":
		p.SetText("updated", "Updated "+data.Meta.Updated)
	case usingFallback:
		p.SetText("updated", "Offline mode")
	default:
		p.SetText("updated", "—")
	}

	identity := data.Identity
	if identity == nil {
		identity = Fallback.Identity
	}
	if identity.Title != "" {
		p.SetText("hero-title", identity.Title)
	}
	sub := identity.Body
	if sub == "" {
		sub = identity.Headline
	}
	if sub == "" {
		sub = Fallback.Identity.Body
	}
	p.SetText("hero-sub", sub)

	philosophy := data.Philosophy
	if philosophy == nil {
		philosophy = Fallback.Philosophy
	}
	if philosophy.Title != "" {
		p.SetText("philosophy-title", philosophy.Title)
	}
	if philosophy.Body != "" {
		p.SetText("philosophy-body", philosophy.Body)
	}

	renderCTAs(p, data.CTA)

	ui.Grid(p, "featured-grid", orFallback(data.Featured, Fallback.Featured), func(it models.Item) *html.Node {
		return card(p, it, true)
	})
	ui.Grid(p, "now-grid", orFallback(data.Now, Fallback.Now), func(it models.Item) *html.Node {
		return card(p, it, false)
	})
	ui.Grid(p, "future-grid", orFallback(data.Future, Fallback.Future), func(it models.Item) *html.Node {
		return card(p, it, false)
	})

	links := data.Links
	if links == nil {
		links = Fallback.Links
	}
	ui.FooterLinks(p, links)

	return nil
}

// orFallback keeps an empty but present list; only an absent one falls back.
func orFallback(items, fallback []models.Item) []models.Item {
	if items == nil {
		return fallback
	}
	return items
}

func card(p *page.Page, it models.Item, feature bool) *html.Node {
	title := it.Title
	if title == "" {
		title = it.Name
	}
	if title == "" {
		title = "Untitled"
	}
	return ui.Card(p, ui.CardSpec{
		Title:   title,
		Badge:   it.Label(),
		Desc:    it.Desc,
		Href:    it.Href,
		Tags:    it.Tags,
		Feature: feature,
	})
}

// renderCTAs rebuilds the hero buttons. Nothing changes unless both buttons have an href.
func renderCTAs(p *page.Page, cta *models.CTA) {
	row := p.Slot("hero-ctas")
	if row == nil {
		return
	}
	if cta == nil {
		cta = Fallback.CTA
	}
	primary, secondary := cta.Primary, cta.Secondary
	if primary == nil || secondary == nil || primary.Href == "" || secondary.Href == "" {
		return
	}

	dom.Clear(row)
	dom.Append(row,
		ui.Link(p, dom.Attrs{"class": "btn primary"}, primary.Href, orDefault(primary.Label, "Open")),
		ui.Link(p, dom.Attrs{"class": "btn"}, secondary.Href, orDefault(secondary.Label, "Browse")),
	)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// Package apps renders the apps listing from www.json.
package apps

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/net/html"

	"homepage/internal/logger"
	"homepage/internal/models"
	"homepage/internal/page"
	"homepage/internal/pages"
	"homepage/internal/ui"
)

// FallbackApps is listed when www.json cannot be loaded or has no apps.
var FallbackApps = []models.Item{
	{ID: "search", Name: "Search", Desc: "Fast routing across buk1t.", Href: "https://search.buk1t.com", Stage: "stable", Tags: []string{"utility"}},
	{ID: "labs", Name: "Labs", Desc: "Experiments & prototypes.", Href: "https://labs.buk1t.com", Stage: "experimental", Tags: []string{"playground"}},
}

// DefaultLinks is the footer when the registry declares none.
var DefaultLinks = []models.FooterLink{{Name: "Home", Href: "/"}}

// Controller renders the apps page.
type Controller struct {
	fetcher pages.Fetcher
	url     string
	log     zerolog.Logger
}

// New creates an apps page controller reading the registry at url.
func New(fetcher pages.Fetcher, url string) *Controller {
	return &Controller{
		fetcher: fetcher,
		url:     url,
		log:     logger.WithComponent("apps"),
	}
}

// Render fills the apps grid, the meta line and the footer.
func (c *Controller) Render(ctx context.Context, p *page.Page) error {
	if err := pages.RequireSlots(p, "apps-grid"); err != nil {
		return err
	}

	ui.SetYear(p)

	var data *models.Registry
	var remote models.Registry
	if err := c.fetcher.JSON(ctx, c.url, &remote); err != nil {
		c.log.Warn().Err(err).Str("url", c.url).Msg("apps JSON unavailable, rendering fallback")
		p.Notify("apps-notice", pages.FailureNotice("apps JSON", err, "Showing fallback."))
	} else {
		data = &remote
	}

	apps := FallbackApps
	links := DefaultLinks
	switch {
	case data == nil:
		p.SetText("apps-meta", "Offline mode")
	case data.Meta != nil && data.Meta.Updated != "":
		p.SetText("apps-meta", "Updated "+data.Meta.Updated)
	default:
		p.SetText("apps-meta", "—")
	}
	if data != nil && data.Apps != nil {
		apps = data.Apps
	}
	if data != nil && data.Links != nil {
		links = data.Links
	}

	ui.Grid(p, "apps-grid", apps, func(app models.Item) *html.Node {
		return Card(p, app)
	})
	ui.FooterLinks(p, links)

	return nil
}

// Card renders one app. The title falls back through name, title and id.
func Card(p *page.Page, app models.Item) *html.Node {
	title := app.Name
	if title == "" {
		title = app.Title
	}
	if title == "" {
		title = app.ID
	}
	if title == "" {
		title = "App"
	}
	return ui.Card(p, ui.CardSpec{
		Title: title,
		Badge: app.Label(),
		Desc:  app.Desc,
		Href:  app.Href,
		Tags:  app.Tags,
	})
}

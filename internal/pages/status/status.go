// Package status renders the uptime page: it resolves the probe targets from
// buk1t.json, probes them all concurrently and reports up, slow or down.
package status

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
	"homepage/internal/urlutil"
)

// Options configures a Controller.
type Options struct {
	// RegistryURL locates buk1t.json.
	RegistryURL string
	// Domain is the apex domain for fallback and wildcard targets.
	Domain string
	// IssueEmail receives reports from the report button.
	IssueEmail string
}

// Controller renders the status page.
type Controller struct {
	fetcher pages.Fetcher
	prober  Prober
	opts    Options
	log     zerolog.Logger
}

// New creates a status controller.
func New(fetcher pages.Fetcher, prober Prober, opts Options) *Controller {
	if opts.Domain == "" {
		opts.Domain = DefaultDomain
	}
	if opts.IssueEmail == "" {
		opts.IssueEmail = DefaultIssueEmail
	}
	return &Controller{
		fetcher: fetcher,
		prober:  prober,
		opts:    opts,
		log:     logger.WithComponent("status"),
	}
}

// Resolution is the outcome of target resolution.
type Resolution struct {
	Targets []models.Target
	// Links are the registry's footer links, if it declared any.
	Links []models.FooterLink
	// Err is the registry fetch failure. Targets are still usable when set.
	Err error
}

// Resolve loads the registry and returns the merged target list with the
// wildcard target last. A registry failure falls back to the fixed targets.
func (c *Controller) Resolve(ctx context.Context, p page.Context) Resolution {
	var reg models.Registry
	if err := c.fetcher.JSON(ctx, c.opts.RegistryURL, &reg); err != nil {
		c.log.Warn().Err(err).Str("url", c.opts.RegistryURL).Msg("buk1t.json unavailable, using fallback targets")
		targets := append(FallbackTargets(c.opts.Domain), WildcardTarget(c.opts.Domain, p.Now()))
		return Resolution{Targets: targets, Err: err}
	}

	targets := Merge(TargetsFromServices(reg.Services), FallbackTargets(c.opts.Domain))
	targets = append(targets, WildcardTarget(c.opts.Domain, p.Now()))
	return Resolution{Targets: targets, Links: reg.Links}
}

// Check resolves and probes without rendering.
func (c *Controller) Check(ctx context.Context, p page.Context) models.Report {
	res := c.Resolve(ctx, p)
	results := ProbeAll(ctx, c.prober, res.Targets)
	rep := Aggregate(res.Targets, results, p.Now())
	if res.Err != nil {
		rep.Notice = registryNotice(res.Err)
	}
	c.logReport(rep)
	return rep
}

// Render scaffolds one card per target, probes them all and then fills in
// the results, the summary and the report link.
func (c *Controller) Render(ctx context.Context, p *page.Page) error {
	if err := pages.RequireSlots(p, "checks"); err != nil {
		return err
	}

	ui.SetYear(p)
	p.SetText("subtitle", "Checking services…")

	res := c.Resolve(ctx, p.Context)
	if res.Err != nil {
		p.Notify("notice", registryNotice(res.Err))
	} else if len(res.Links) > 0 {
		ui.FooterLinks(p, res.Links)
	}

	checks := p.Slot("checks")
	dom.Clear(checks)
	cards := make([]statusCard, len(res.Targets))
	for i, t := range res.Targets {
		cards[i] = newCard(p, t)
		dom.Append(checks, cards[i].root)
	}

	results := ProbeAll(ctx, c.prober, res.Targets)
	rep := Aggregate(res.Targets, results, p.Now())

	for i, chk := range rep.Checks {
		cards[i].update(p, chk)
	}

	p.SetText("summary", rep.Summary)
	p.SetText("subtitle", rep.Summary)
	p.SetText("meta", "checked: "+rep.CheckedAt.Format(LocalTimeLayout))

	if btn := p.Slot("reportBtn"); btn != nil {
		dom.SetAttr(btn, "href", ReportMailto(c.opts.IssueEmail, p.Href(), rep.Summary, p.Now()))
	}

	c.logReport(rep)
	return nil
}

func (c *Controller) logReport(rep models.Report) {
	c.log.Info().
		Int("up", rep.Up).
		Int("slow", rep.Slow).
		Int("down", rep.Down).
		Msg(rep.Summary)
}

func registryNotice(err error) string {
	return pages.FailureNotice("buk1t.json", err, "Using fallback targets.")
}

// statusCard keeps handles on the parts of a card that change after probing.
type statusCard struct {
	root  *html.Node
	badge *html.Node
	pills *html.Node
}

func newCard(p *page.Page, t models.Target) statusCard {
	title := t.Name
	if title == "" {
		title = t.ID
	}
	if title == "" {
		title = "service"
	}

	var line *html.Node
	if t.HideURL {
		line = urlLine(p, "", t.Subtitle)
	} else {
		line = urlLine(p, t.URL, "")
	}

	badge := p.El("span", dom.Attrs{"class": "badge", "text": "checking…"})
	pills := p.El("div", dom.Attrs{"class": "pills"}, chip(p, models.StatusChecking, "checking…", ""))
	root := p.El("div", dom.Attrs{"class": "card span-6 status-card"},
		p.El("div", dom.Attrs{"class": "card-top"},
			p.El("h3", dom.Attrs{"class": "card-title", "text": title}),
			badge,
		),
		line,
		pills,
	)
	return statusCard{root: root, badge: badge, pills: pills}
}

func (sc statusCard) update(p *page.Page, chk models.Check) {
	dom.ReplaceText(sc.badge, string(chk.Status))
	dom.Clear(sc.pills)
	dom.Append(sc.pills, chip(p, chk.Status, ChipText(chk.Status, chk.Result), chk.Target.URL))
}

// urlLine shows the subtitle when given, else the URL with its first host
// label emphasized. Malformed URLs are shown as text without the scheme.
func urlLine(p *page.Page, rawURL, subtitle string) *html.Node {
	d := p.El("div", dom.Attrs{"class": "status-url"})
	if subtitle != "" {
		dom.ReplaceText(d, subtitle)
		return d
	}

	first, rest, path, err := urlutil.HostParts(rawURL)
	if err != nil {
		dom.ReplaceText(d, urlutil.TrimScheme(rawURL))
		return d
	}

	tail := ""
	if rest != "" {
		tail = "." + rest
	}
	if path != "/" {
		tail += path
	}
	dom.Append(d,
		p.El("span", dom.Attrs{"class": "subdomain", "text": first}),
		p.El("span", dom.Attrs{"text": tail}),
	)
	return d
}

// chip renders a status dot with text, linked to href when given.
func chip(p *page.Page, s models.Status, text, href string) *html.Node {
	var content *html.Node
	if href != "" {
		content = ui.Link(p, nil, href, text)
	} else {
		content = p.El("span", dom.Attrs{"text": text})
	}
	return p.El("span", dom.Attrs{"class": "pill-chip"},
		p.El("span", dom.Attrs{"class": "dot " + string(s)}),
		content,
	)
}

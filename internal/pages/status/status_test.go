package status

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homepage/internal/dom"
	"homepage/internal/fetch"
	"homepage/internal/models"
	"homepage/internal/page"
	"homepage/internal/pages"
	"homepage/internal/pages/pagestest"
)

const statusShell = `<p id="subtitle"></p>
<p id="meta"></p>
<p id="summary"></p>
<div id="notice" style="display: none"></div>
<div id="checks"><p>loading</p></div>
<a id="reportBtn" href="#">Report an issue</a>
<p id="footer-links"></p>
<span id="year"></span>`

// mapProber answers from a fixed table; unknown URLs are down.
type mapProber struct {
	mu      sync.Mutex
	results map[string]models.ProbeResult
	probed  []string
}

func (m *mapProber) Probe(ctx context.Context, url string) models.ProbeResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.probed = append(m.probed, url)
	return m.results[url]
}

const registry = `{
  "services": [
    {"id": "search", "name": "Search", "check_url": "https://search.buk1t.com/health"},
    {"id": "www", "name": "Website", "base_url": "https://www.buk1t.com/"},
    {"id": "nourl"}
  ],
  "links": [{"name": "GitHub", "href": "https://github.com/buk1t"}]
}`

func TestRender(t *testing.T) {
	prober := &mapProber{results: map[string]models.ProbeResult{
		"https://search.buk1t.com/health": {OK: true, ElapsedMS: 120},
		"https://www.buk1t.com/":          {OK: true, ElapsedMS: 80},
		"https://labs.buk1t.com/":         {OK: true, ElapsedMS: 1400},
		"https://search.buk1t.com/":       {OK: true, ElapsedMS: 90},
		"https://api.buk1t.com/":          {OK: true, ElapsedMS: 60},
	}}
	c := New(&pagestest.Fetcher{Body: registry}, prober, Options{RegistryURL: "https://api.buk1t.com/buk1t.json"})
	p := pagestest.NewPage(t, "/status/", statusShell)

	require.NoError(t, c.Render(context.Background(), p))

	cards := p.Doc.QueryAll("#checks .status-card")
	require.Len(t, cards, 6)
	assert.Nil(t, p.Doc.Query("#checks > p"), "scaffold replaces prior content")

	titles := make([]string, len(cards))
	for i, card := range cards {
		titles[i] = dom.Text(dom.Query(card, ".card-title"))
	}
	assert.Equal(t, []string{"Search", "Website", "labs", "search", "api", "catch-all routing"}, titles)

	badge := func(i int) string { return dom.Text(dom.Query(cards[i], ".badge")) }
	assert.Equal(t, "up", badge(0))
	assert.Equal(t, "slow", badge(2))
	assert.Equal(t, "down", badge(5), "the wildcard host is unknown to the fake prober")

	assert.Equal(t, "slow • 1400ms", dom.Text(dom.Query(cards[2], ".pill-chip a")))
	assert.Equal(t, "down • unreachable", dom.Text(dom.Query(cards[5], ".pill-chip")))
	assert.True(t, dom.HasClass(dom.Query(cards[2], ".dot"), "slow"))

	// External chip links open in a new tab; the same-origin www link does not.
	target, _ := dom.Attr(dom.Query(cards[0], ".pill-chip a"), "target")
	assert.Equal(t, "_blank", target)
	_, ok := dom.Attr(dom.Query(cards[1], ".pill-chip a"), "target")
	assert.False(t, ok)

	assert.Equal(t, "search.buk1t.com/health", dom.Text(dom.Query(cards[0], ".status-url")))
	assert.Equal(t, "search", dom.Text(dom.Query(cards[0], ".status-url .subdomain")))
	assert.Equal(t, "www.buk1t.com", dom.Text(dom.Query(cards[1], ".status-url")))
	wildcardLine := dom.Text(dom.Query(cards[5], ".status-url"))
	assert.True(t, strings.HasPrefix(wildcardLine, "__status-"))
	assert.Nil(t, dom.Query(cards[5], ".status-url .subdomain"))

	summary := "4 up • 1 slow • 1 down"
	assert.Equal(t, summary, pagestest.Text(p, "summary"))
	assert.Equal(t, summary, pagestest.Text(p, "subtitle"))
	assert.Equal(t, "checked: 3/4/2026, 5:06:07 PM", pagestest.Text(p, "meta"))
	assert.Equal(t, "2026", pagestest.Text(p, "year"))
	assert.Equal(t, "GitHub", pagestest.Text(p, "footer-links"))
	assert.Equal(t, "", pagestest.Text(p, "notice"))

	href, _ := dom.Attr(p.Slot("reportBtn"), "href")
	assert.True(t, strings.HasPrefix(href, "mailto:dev@buk1t.com?subject="))
	assert.Contains(t, href, "Context%3A%204%20up")

	assert.Len(t, prober.probed, 6)
}

func TestRenderRegistryFailure(t *testing.T) {
	prober := &mapProber{results: map[string]models.ProbeResult{
		"https://www.buk1t.com/":    {OK: true, ElapsedMS: 10},
		"https://labs.buk1t.com/":   {OK: true, ElapsedMS: 10},
		"https://search.buk1t.com/": {OK: true, ElapsedMS: 10},
		"https://api.buk1t.com/":    {OK: true, ElapsedMS: 10},
	}}
	fetcher := &pagestest.Fetcher{Err: &fetch.HTTPError{StatusCode: 503, Status: "Service Unavailable"}}
	c := New(fetcher, prober, Options{RegistryURL: "https://api.buk1t.com/buk1t.json"})
	p := pagestest.NewPage(t, "/status/", statusShell)

	require.NoError(t, c.Render(context.Background(), p))

	assert.Equal(t, "Couldn’t load buk1t.json (HTTP 503 Service Unavailable). Using fallback targets.", pagestest.Text(p, "notice"))
	style, _ := dom.Attr(p.Slot("notice"), "style")
	assert.Equal(t, "display: block", style)

	cards := p.Doc.QueryAll("#checks .status-card")
	require.Len(t, cards, 5)
	assert.Equal(t, "catch-all routing", dom.Text(dom.Query(cards[4], ".card-title")))
	assert.Equal(t, "4 up • 0 slow • 1 down", pagestest.Text(p, "summary"))
}

func TestRenderMissingChecksSlot(t *testing.T) {
	c := New(&pagestest.Fetcher{Body: "{}"}, &mapProber{}, Options{})
	p := pagestest.NewPage(t, "/status/", `<p id="summary"></p>`)

	err := c.Render(context.Background(), p)
	assert.True(t, errors.Is(err, pages.ErrMissingSlot))
}

func TestCheck(t *testing.T) {
	prober := &mapProber{results: map[string]models.ProbeResult{
		"https://www.example.org/":    {OK: true, ElapsedMS: 10},
		"https://labs.example.org/":   {OK: true, ElapsedMS: 10},
		"https://search.example.org/": {OK: true, ElapsedMS: 10},
		"https://api.example.org/":    {OK: true, ElapsedMS: 10},
	}}
	fetcher := &pagestest.Fetcher{Err: fetch.ErrTimeout}
	c := New(fetcher, prober, Options{Domain: "example.org", RegistryURL: "https://api.example.org/buk1t.json"})

	rep := c.Check(context.Background(), page.Context{Clock: func() time.Time { return pagestest.Clock }})

	require.Len(t, rep.Checks, 5)
	last := rep.Checks[4]
	assert.Equal(t, "wildcard", last.Target.ID)
	assert.True(t, strings.HasSuffix(last.Target.Subtitle, ".example.org"))
	assert.Equal(t, 4, rep.Up)
	assert.Equal(t, 1, rep.Down)
	assert.Contains(t, rep.Notice, "Using fallback targets.")
	assert.Equal(t, pagestest.Clock, rep.CheckedAt)
	assert.Equal(t, []string{"https://api.example.org/buk1t.json"}, fetcher.URLs)
}

func TestURLLineMalformed(t *testing.T) {
	p := pagestest.NewPage(t, "/status/", "")
	line := urlLine(p, "https//broken url", "")
	assert.Equal(t, "https//broken url", dom.Text(line))

	line = urlLine(p, "http://[::1", "")
	assert.Equal(t, "[::1", dom.Text(line))
}

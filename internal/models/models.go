package models

import (
	"encoding/json"
	"time"
)

// Link is a navigation entry rendered in the topbar.
type Link struct {
	Label string
	Href  string
}

// FooterLink is a link listed in a page footer.
type FooterLink struct {
	Name string `json:"name"`
	Href string `json:"href"`
}

// Item is a card on the home page or the apps listing.
// The registry uses both name/title and stage/status, so both spellings are accepted.
type Item struct {
	ID     string   `json:"id,omitempty"`
	Name   string   `json:"name,omitempty"`
	Title  string   `json:"title,omitempty"`
	Desc   string   `json:"desc,omitempty"`
	Href   string   `json:"href"`
	Stage  string   `json:"stage,omitempty"`
	Status string   `json:"status,omitempty"`
	Tags   []string `json:"tags,omitempty"`
}

// Label returns the status badge text, preferring stage over status.
func (i Item) Label() string {
	if i.Stage != "" {
		return i.Stage
	}
	return i.Status
}

// Meta describes the registry document itself.
type Meta struct {
	Title   string `json:"title,omitempty"`
	Tagline string `json:"tagline,omitempty"`
	Updated string `json:"updated,omitempty"`
}

// Identity is the home page hero copy.
type Identity struct {
	Title    string `json:"title,omitempty"`
	Headline string `json:"headline,omitempty"`
	Body     string `json:"body,omitempty"`
}

// Philosophy is the side tile next to the hero.
type Philosophy struct {
	Title string `json:"title,omitempty"`
	Body  string `json:"body,omitempty"`
}

// Button is a call-to-action link.
type Button struct {
	Label string `json:"label,omitempty"`
	Href  string `json:"href,omitempty"`
}

// CTA holds the two hero buttons.
type CTA struct {
	Primary   *Button `json:"primary,omitempty"`
	Secondary *Button `json:"secondary,omitempty"`
}

// Service is a subdomain declared in the site registry.
type Service struct {
	ID        string `json:"id,omitempty"`
	Subdomain string `json:"subdomain,omitempty"`
	Name      string `json:"name,omitempty"`
	CheckURL  string `json:"check_url,omitempty"`
	BaseURL   string `json:"base_url,omitempty"`
}

// Registry is the shape of the remote JSON documents (www.json, buk1t.json).
// Every field is optional; nil means absent and triggers the page's fallback.
type Registry struct {
	Meta       *Meta        `json:"meta,omitempty"`
	Identity   *Identity    `json:"identity,omitempty"`
	Philosophy *Philosophy  `json:"philosophy,omitempty"`
	Featured   []Item       `json:"featured,omitempty"`
	Now        []Item       `json:"now,omitempty"`
	Future     []Item       `json:"future,omitempty"`
	Apps       []Item       `json:"apps,omitempty"`
	Links      []FooterLink `json:"links,omitempty"`
	Services   []Service    `json:"services,omitempty"`
	CTA        *CTA         `json:"cta,omitempty"`
}

// UnmarshalJSON decodes each top-level field on its own. A field whose value
// has the wrong shape is left absent so only that part of the page falls
// back; a document that is not a JSON object is still an error.
func (r *Registry) UnmarshalJSON(b []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}

	*r = Registry{}
	decodeField(fields, "meta", &r.Meta)
	decodeField(fields, "identity", &r.Identity)
	decodeField(fields, "philosophy", &r.Philosophy)
	decodeField(fields, "featured", &r.Featured)
	decodeField(fields, "now", &r.Now)
	decodeField(fields, "future", &r.Future)
	decodeField(fields, "apps", &r.Apps)
	decodeField(fields, "links", &r.Links)
	decodeField(fields, "services", &r.Services)
	decodeField(fields, "cta", &r.CTA)
	return nil
}

func decodeField[T any](fields map[string]json.RawMessage, key string, dst *T) {
	raw, ok := fields[key]
	if !ok {
		return
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return
	}
	*dst = v
}

// Target is a named URL probed by the status page.
type Target struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	HideURL  bool   `json:"hide_url,omitempty"`
	Subtitle string `json:"subtitle,omitempty"`
}

// ProbeResult is the outcome of one reachability probe.
type ProbeResult struct {
	OK        bool  `json:"ok"`
	ElapsedMS int64 `json:"elapsed_ms"`
}

// Status is the classification of a probe result.
type Status string

const (
	StatusChecking Status = "checking"
	StatusUp       Status = "up"
	StatusSlow     Status = "slow"
	StatusDown     Status = "down"
)

// Check pairs a target with its classified result.
type Check struct {
	Target Target      `json:"target"`
	Result ProbeResult `json:"result"`
	Status Status      `json:"status"`
}

// Report is a completed status page run.
type Report struct {
	Checks    []Check   `json:"checks"`
	Up        int       `json:"up"`
	Slow      int       `json:"slow"`
	Down      int       `json:"down"`
	Summary   string    `json:"summary"`
	CheckedAt time.Time `json:"checked_at"`
	// Notice is set when the registry could not be loaded.
	Notice string `json:"notice,omitempty"`
}

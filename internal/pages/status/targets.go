package status

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	"homepage/internal/models"
)

// DefaultDomain is the apex domain whose subdomains are probed.
const DefaultDomain = "buk1t.com"

const labelAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// FallbackTargets are probed whatever the registry says. They must not
// depend on the api subdomain being up.
func FallbackTargets(domain string) []models.Target {
	subs := []string{"www", "labs", "search", "api"}
	out := make([]models.Target, 0, len(subs))
	for _, s := range subs {
		out = append(out, models.Target{ID: s, Name: s, URL: fmt.Sprintf("https://%s.%s/", s, domain)})
	}
	return out
}

// TargetsFromServices maps registry services to targets, preferring
// check_url over base_url. Services without either are dropped.
func TargetsFromServices(services []models.Service) []models.Target {
	out := make([]models.Target, 0, len(services))
	for _, s := range services {
		url := s.CheckURL
		if url == "" {
			url = s.BaseURL
		}
		if url == "" {
			continue
		}

		id := s.ID
		if id == "" {
			id = s.Subdomain
		}
		if id == "" {
			id = s.Name
		}
		name := s.Name
		if name == "" {
			name = id
		}
		out = append(out, models.Target{ID: id, Name: name, URL: url})
	}
	return out
}

// Merge concatenates the lists and drops every target whose URL was already
// seen. Earlier lists win and first-seen order is kept.
func Merge(lists ...[]models.Target) []models.Target {
	seen := make(map[string]struct{})
	var out []models.Target
	for _, list := range lists {
		for _, t := range list {
			if _, dup := seen[t.URL]; dup {
				continue
			}
			seen[t.URL] = struct{}{}
			out = append(out, t)
		}
	}
	return out
}

// WildcardLabel returns a subdomain label nobody registered:
// "__status-<base36 unix ms>-<6 random base36 chars>".
func WildcardLabel(now time.Time) string {
	b := make([]byte, 6)
	for i := range b {
		b[i] = labelAlphabet[rand.IntN(len(labelAlphabet))]
	}
	return "__status-" + strconv.FormatInt(now.UnixMilli(), 36) + "-" + string(b)
}

// WildcardTarget probes a fresh random subdomain to check that catch-all
// routing answers for hosts that were never registered.
func WildcardTarget(domain string, now time.Time) models.Target {
	host := WildcardLabel(now) + "." + domain
	return models.Target{
		ID:       "wildcard",
		Name:     "catch-all routing",
		URL:      "https://" + host + "/",
		HideURL:  true,
		Subtitle: host,
	}
}

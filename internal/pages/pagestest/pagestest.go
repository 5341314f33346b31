// Package pagestest provides fakes and page fixtures for controller tests.
package pagestest

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"testing"
	"time"

	"homepage/internal/dom"
	"homepage/internal/fetch"
	"homepage/internal/page"
)

// Origin is the origin test pages are served from.
const Origin = "https://www.buk1t.com"

// Clock is the fixed time test pages see.
var Clock = time.Date(2026, 3, 4, 17, 6, 7, 0, time.UTC)

// Fetcher answers every request with Body, or Err when set.
type Fetcher struct {
	Body string
	Err  error
	URLs []string
}

// JSON implements pages.Fetcher.
func (f *Fetcher) JSON(ctx context.Context, url string, v any, opts ...fetch.Option) error {
	f.URLs = append(f.URLs, url)
	if f.Err != nil {
		return f.Err
	}
	return json.Unmarshal([]byte(f.Body), v)
}

// NewPage parses body into a document and returns a page rendered at path.
func NewPage(t testing.TB, path, body string) *page.Page {
	t.Helper()
	doc, err := dom.Parse(strings.NewReader("<!DOCTYPE html><html><body>" + body + "</body></html>"))
	if err != nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}
	origin, _ := url.Parse(Origin)
	return page.New(page.Context{
		Path:   path,
		Origin: origin,
		Clock:  func() time.Time { return Clock },
	}, doc)
}

// Text returns the text of the slot with the given id.
func Text(p *page.Page, id string) string {
	return dom.Text(p.Slot(id))
}

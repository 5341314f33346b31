// Package pages holds what the page controllers share.
package pages

import (
	"context"
	"errors"
	"fmt"

	"homepage/internal/fetch"
	"homepage/internal/page"
)

// ErrMissingSlot is returned when a page lacks a slot its controller cannot render without.
var ErrMissingSlot = errors.New("missing slot")

// Fetcher loads a remote JSON document. *fetch.Client implements it.
type Fetcher interface {
	JSON(ctx context.Context, url string, v any, opts ...fetch.Option) error
}

// Controller renders one kind of page.
type Controller interface {
	Render(ctx context.Context, p *page.Page) error
}

// RequireSlots checks that every named slot exists on p.
func RequireSlots(p *page.Page, names ...string) error {
	for _, name := range names {
		if p.Slot(name) == nil {
			return fmt.Errorf("%w: #%s", ErrMissingSlot, name)
		}
	}
	return nil
}

// FailureNotice formats the one-line notice shown when a JSON document could not be loaded.
func FailureNotice(what string, err error, outcome string) string {
	return fmt.Sprintf("Couldn’t load %s (%v). %s", what, err, outcome)
}

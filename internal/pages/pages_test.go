package pages_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"homepage/internal/pages"
	"homepage/internal/pages/pagestest"
)

func TestRequireSlots(t *testing.T) {
	p := pagestest.NewPage(t, "/", `<div id="featured-grid"></div>`)

	assert.NoError(t, pages.RequireSlots(p, "featured-grid"))

	err := pages.RequireSlots(p, "featured-grid", "apps-grid")
	assert.ErrorIs(t, err, pages.ErrMissingSlot)
	assert.Contains(t, err.Error(), "#apps-grid")
}

func TestFailureNotice(t *testing.T) {
	got := pages.FailureNotice("apps JSON", errors.New("HTTP 404 Not Found"), "Showing fallback.")
	assert.Equal(t, "Couldn’t load apps JSON (HTTP 404 Not Found). Showing fallback.", got)
}

package site

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"homepage/internal/dom"
	"homepage/internal/logger"
	"homepage/internal/models"
	"homepage/internal/page"
	"homepage/internal/pages"
	"homepage/internal/topbar"
	"homepage/internal/ui"
)

//go:embed shells/*.html
var shells embed.FS

// StatusController renders the status page and runs headless checks.
type StatusController interface {
	pages.Controller
	Check(ctx context.Context, p page.Context) models.Report
}

// Controllers are the page controllers the site serves.
type Controllers struct {
	Home   pages.Controller
	Apps   pages.Controller
	Status StatusController
}

// Handlers holds dependencies for the HTTP handlers.
type Handlers struct {
	controllers Controllers
	origin      *url.URL
	clock       func() time.Time
	log         zerolog.Logger
}

// NewHandlers creates the handlers. A nil origin derives the page origin from each request.
func NewHandlers(controllers Controllers, origin *url.URL) *Handlers {
	return &Handlers{
		controllers: controllers,
		origin:      origin,
		clock:       time.Now,
		log:         logger.WithComponent("site"),
	}
}

// pageContext describes the page a request is rendering.
func (h *Handlers) pageContext(r *http.Request) page.Context {
	origin := h.origin
	if origin == nil {
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		if proto := r.Header.Get("X-Forwarded-Proto"); proto == "http" || proto == "https" {
			scheme = proto
		}
		origin = &url.URL{Scheme: scheme, Host: r.Host}
	}
	return page.Context{Path: r.URL.Path, Origin: origin, Clock: h.clock}
}

// Render builds a page from shell, mounts the topbar and runs ctl, returning the HTML.
// hint, when set, overrides the topbar hint of the shell.
func (h *Handlers) Render(ctx context.Context, pc page.Context, shell, hint string, ctl pages.Controller) ([]byte, error) {
	f, err := shells.Open("shells/" + shell)
	if err != nil {
		return nil, fmt.Errorf("unknown shell %s: %w", shell, err)
	}
	defer f.Close()

	doc, err := dom.Parse(f)
	if err != nil {
		return nil, err
	}
	p := page.New(pc, doc)

	if mount := p.Slot("topbar"); mount != nil && hint != "" {
		dom.SetAttr(mount, topbar.HintAttr, hint)
	}
	topbar.MountSlot(p)

	if ctl != nil {
		if err := ctl.Render(ctx, p); err != nil {
			return nil, fmt.Errorf("rendering %s: %w", pc.Path, err)
		}
	}

	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		return nil, fmt.Errorf("serializing %s: %w", pc.Path, err)
	}
	return buf.Bytes(), nil
}

// ErrNotFound is returned by RenderPath for paths the site does not serve.
var ErrNotFound = errors.New("page not found")

type route struct {
	shell string
	hint  string
	ctl   pages.Controller
}

// route maps a site path to its shell and controller.
func (h *Handlers) route(path string) (route, bool) {
	switch topbar.NormalizePath(path) {
	case "/":
		return route{shell: "home.html", ctl: h.controllers.Home}, true
	case "/apps/":
		return route{shell: "apps.html", ctl: h.controllers.Apps}, true
	case "/status/":
		return route{shell: "status.html", ctl: h.controllers.Status}, true
	case "/about/":
		return route{shell: "section.html", hint: "about", ctl: sectionController{title: "About"}}, true
	case "/contact/":
		return route{shell: "section.html", hint: "contact", ctl: sectionController{title: "Contact"}}, true
	}
	return route{}, false
}

// RenderPath renders the page served at pc.Path.
func (h *Handlers) RenderPath(ctx context.Context, pc page.Context) ([]byte, error) {
	rt, ok := h.route(pc.Path)
	if !ok {
		return nil, fmt.Errorf("%s: %w", pc.Path, ErrNotFound)
	}
	pc.Path = topbar.NormalizePath(pc.Path)
	return h.Render(ctx, pc, rt.shell, rt.hint, rt.ctl)
}

// Page serves the page registered for the request path. The status page is
// written once every probe has settled.
func (h *Handlers) Page(w http.ResponseWriter, r *http.Request) {
	body, err := h.RenderPath(r.Context(), h.pageContext(r))
	if errors.Is(err, ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.log.Error().Err(err).Str("request_id", middleware.GetReqID(r.Context())).Msg("page render failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(body)
}

// StatusReport runs the status checks and returns them as JSON.
func (h *Handlers) StatusReport(w http.ResponseWriter, r *http.Request) {
	pc := h.pageContext(r)
	pc.Path = "/status/"
	rep := h.controllers.Status.Check(r.Context(), pc)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	json.NewEncoder(w).Encode(rep)
}

// Healthz is a simple health check endpoint.
func (h *Handlers) Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// sectionController fills the title of a chrome-only page.
type sectionController struct {
	title string
}

func (s sectionController) Render(ctx context.Context, p *page.Page) error {
	ui.SetYear(p)
	p.SetText("section-title", s.title)
	return nil
}

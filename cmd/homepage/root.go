package main

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"homepage/internal/config"
	"homepage/internal/fetch"
	"homepage/internal/logger"
	"homepage/internal/pages/apps"
	"homepage/internal/pages/home"
	"homepage/internal/pages/status"
	"homepage/internal/site"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "homepage",
	Short: "Server-rendered buk1t homepage, apps listing and status board",
	Long: `homepage renders the buk1t site pages from the remote www.json and
buk1t.json registries, falling back to built-in data when they are
unreachable, and probes every registered service for the status board.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "homepage.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig loads and validates the config and initializes logging.
// Commands that write their result to stdout log to stderr.
func loadConfig(stdoutIsOutput bool) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	if stdoutIsOutput {
		cfg.Log.Output = "stderr"
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := logger.Init(cfg.Log); err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}
	return cfg, nil
}

// newHandlers wires the page controllers from cfg.
func newHandlers(cfg *config.Config) (*site.Handlers, *status.Controller, error) {
	var origin *url.URL
	if cfg.Site.Origin != "" {
		u, err := url.Parse(cfg.Site.Origin)
		if err != nil {
			return nil, nil, fmt.Errorf("parsing site origin: %w", err)
		}
		origin = u
	}

	fetcher := fetch.New(nil, cfg.FetchTimeout)
	statusCtl := status.New(fetcher, status.NewHTTPProber(nil, 0), status.Options{
		RegistryURL: cfg.Sources.Buk1tJSONURL,
		Domain:      cfg.Site.Domain,
		IssueEmail:  cfg.Site.IssueEmail,
	})

	h := site.NewHandlers(site.Controllers{
		Home:   home.New(fetcher, cfg.Sources.WWWJSONURL),
		Apps:   apps.New(fetcher, cfg.Sources.WWWJSONURL),
		Status: statusCtl,
	}, origin)
	return h, statusCtl, nil
}

// originOf returns the configured origin, or one derived from the domain.
func originOf(cfg *config.Config) *url.URL {
	if cfg.Site.Origin != "" {
		if u, err := url.Parse(cfg.Site.Origin); err == nil {
			return u
		}
	}
	return &url.URL{Scheme: "https", Host: "www." + cfg.Site.Domain}
}

package home

import "homepage/internal/models"

// Fallback is rendered when www.json cannot be loaded.
var Fallback = models.Registry{
	Meta: &models.Meta{Title: "buk1t", Tagline: "a personal internet system"},

	Identity: &models.Identity{
		Title:    "What is Buk1t?",
		Headline: "A personal internet system",
		Body:     "Buk1t is a collection of small, fast pages that (hopefully) do useful things. I built it to feel cohesive, cool, and a little bit futuristic.",
	},

	Philosophy: &models.Philosophy{
		Title: "Design rule",
		Body:  "Less is more. Every page should be simple, focused, and intentional. If something feels heavy, it probably is.",
	},

	Featured: []models.Item{
		{
			Title:  "Search",
			Desc:   "Fast routing across buk1t. Ships separately as a real app.",
			Href:   "https://search.buk1t.com",
			Status: "active",
			Tags:   []string{"app", "core"},
		},
		{
			Title:  "Soundscapes",
			Desc:   "Ambient background for studying — currently in Labs.",
			Href:   "https://labs.buk1t.com/soundscapes/",
			Status: "active",
			Tags:   []string{"labs", "audio"},
		},
	},

	Now: []models.Item{
		{
			Title:  "Reorganizing buk1t",
			Desc:   "Reducing subdomains, simplifying styles, and making api the single source of truth.",
			Href:   "/apps/",
			Status: "in progress",
			Tags:   []string{"infra", "cleanup", "json"},
		},
	},

	Future: []models.Item{
		{
			Title:  "iPhone custom start page",
			Desc:   "A clean, touch-first start page built for mobile.",
			Href:   "/apps/",
			Status: "planned",
			Tags:   []string{"mobile", "ui"},
		},
		{
			Title:  "Family tree maker",
			Desc:   "A simple tool for building and exporting family trees.",
			Href:   "/apps/",
			Status: "planned",
			Tags:   []string{"tool", "data"},
		},
	},

	Links: []models.FooterLink{
		{Name: "Apps", Href: "/apps/"},
		{Name: "GitHub", Href: "https://github.com/buk1t"},
		{Name: "Email", Href: "mailto:dev@buk1t.com"},
	},

	CTA: &models.CTA{
		Primary:   &models.Button{Label: "Open Search", Href: "https://search.buk1t.com"},
		Secondary: &models.Button{Label: "Browse Apps", Href: "/apps/"},
	},
}

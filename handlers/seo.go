package handlers

import (
	"unicode/utf8"

	"toorrii_site/config"
	"toorrii_site/models"
	"toorrii_site/services/i18n"

	"github.com/labstack/echo/v4"
)

const defaultOGImagePath = "/static/images/og-image.png"

// sitePage is a public page with its sitemap settings
type sitePage struct {
	Name       string // seo.<name>.* translation keys
	Path       string
	ChangeFreq string
	Priority   float32
}

var sitePages = []sitePage{
	{Name: "home", Path: "/", ChangeFreq: "weekly", Priority: 1.0},
	{Name: "partners", Path: "/partners", ChangeFreq: "weekly", Priority: 0.9},
	{Name: "about", Path: "/about-us", ChangeFreq: "monthly", Priority: 0.8},
	{Name: "contact", Path: "/contact", ChangeFreq: "monthly", Priority: 0.8},
	{Name: "privacy", Path: "/privacy-policy", ChangeFreq: "yearly", Priority: 0.5},
	{Name: "terms", Path: "/terms-of-service", ChangeFreq: "yearly", Priority: 0.5},
}

func findPage(name string) sitePage {
	for _, p := range sitePages {
		if p.Name == name {
			return p
		}
	}
	return sitePage{Name: name, Path: "/"}
}

// GetSEO returns the SEO metadata of a named page in the request locale.
func GetSEO(c echo.Context, name string) *models.SEO {
	ctx := c.Request().Context()
	page := findPage(name)
	return newSEO(c, i18n.T(ctx, "seo."+name+".title"), i18n.T(ctx, "seo."+name+".description"), page.Path)
}

// partnerSEO describes a partner detail page
func partnerSEO(c echo.Context, p models.Partner) *models.SEO {
	ctx := c.Request().Context()
	description := p.DescriptionText()
	if description == "" {
		description = i18n.T(ctx, "seo.partners.description")
	}
	seo := newSEO(c, p.Name+" | "+i18n.T(ctx, "site.name"), truncate(description, 160), "/partners/"+p.Key())
	if p.Logo != "" {
		seo.WithOGImage(p.Logo)
	}
	return seo
}

func newSEO(c echo.Context, title, description, path string) *models.SEO {
	lang := i18n.GetLocale(c.Request().Context())
	seo := models.DefaultSEO(title, description).WithLocale(lang, i18n.Supported()...)

	if cfg, ok := c.Get("config").(*config.Config); ok && cfg.AppURL != "" {
		seo.WithCanonical(cfg.AppURL + path).WithOGImage(cfg.AppURL + defaultOGImagePath)
	}
	return seo
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-1]) + "…"
}

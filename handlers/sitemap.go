package handlers

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"time"

	"toorrii_site/config"
	"toorrii_site/models"
	"toorrii_site/templates/pages"

	"github.com/labstack/echo/v4"
)

type SitemapURL struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod,omitempty"`
	ChangeFreq string  `xml:"changefreq,omitempty"`
	Priority   float32 `xml:"priority,omitempty"`
}

type SitemapURLSet struct {
	XMLName string       `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// GetSitemapHandler generates the XML sitemap: static pages plus one entry
// per active partner.
func GetSitemapHandler(c echo.Context) error {
	cfg := c.Get("config").(*config.Config)
	baseURL := cfg.AppURL

	urls := make([]SitemapURL, 0, len(sitePages))
	for _, page := range sitePages {
		urls = append(urls, SitemapURL{Loc: baseURL + page.Path, ChangeFreq: page.ChangeFreq, Priority: page.Priority})
	}

	// Partners: the sitemap is still served with the static pages when the
	// backend is down
	partners := fetch(c, contentQueries.Partners)
	if partners.HasData() {
		lastMod := ""
		if !partners.UpdatedAt.IsZero() {
			lastMod = partners.UpdatedAt.UTC().Format(time.RFC3339)
		}
		for _, p := range models.ActivePartners(partners.Data, now()) {
			if p.Key() == "" {
				continue
			}
			urls = append(urls, SitemapURL{
				Loc:        baseURL + pages.PartnerURL(p),
				ChangeFreq: "weekly",
				Priority:   0.7,
				LastMod:    lastMod,
			})
		}
	} else if partners.IsError() {
		c.Logger().Error("Failed to fetch partners for sitemap", partners.Err)
	}

	urlSet := SitemapURLSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}

	c.Response().Header().Set(echo.HeaderContentType, echo.MIMEApplicationXML)
	c.Response().WriteHeader(http.StatusOK)
	if _, err := c.Response().Write([]byte(xml.Header)); err != nil {
		return err
	}

	encoder := xml.NewEncoder(c.Response().Writer)
	encoder.Indent("", "  ")
	return encoder.Encode(urlSet)
}

// RobotsHandler serves robots.txt pointing at the sitemap
func RobotsHandler(c echo.Context) error {
	cfg := c.Get("config").(*config.Config)
	body := "User-agent: *\nAllow: /\nDisallow: /api/\n"
	if !cfg.IsProduction() {
		body = "User-agent: *\nDisallow: /\n"
	}
	body += fmt.Sprintf("Sitemap: %s/sitemap.xml\n", cfg.AppURL)
	return c.String(http.StatusOK, body)
}

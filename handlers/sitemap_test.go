package handlers

import (
	"encoding/xml"
	"net/http"
	"testing"

	"toorrii_site/config"
	"toorrii_site/services/content"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeSitemap(t *testing.T, body []byte) []string {
	t.Helper()
	var set struct {
		URLs []SitemapURL `xml:"url"`
	}
	require.NoError(t, xml.Unmarshal(body, &set))

	locs := make([]string, 0, len(set.URLs))
	for _, u := range set.URLs {
		locs = append(locs, u.Loc)
	}
	return locs
}

func TestGetSitemapHandler(t *testing.T) {
	t.Run("Static pages and active partners", func(t *testing.T) {
		setupContent(t)
		_, c, rec := setupEcho(http.MethodGet, "/sitemap.xml", nil)

		require.NoError(t, GetSitemapHandler(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		locs := decodeSitemap(t, rec.Body.Bytes())
		assert.Contains(t, locs, "https://toorrii.test/")
		assert.Contains(t, locs, "https://toorrii.test/terms-of-service")
		assert.Contains(t, locs, "https://toorrii.test/partners/p1")
		assert.Contains(t, locs, "https://toorrii.test/partners/42")
		assert.NotContains(t, locs, "https://toorrii.test/partners/gone")
	})

	t.Run("Backend down keeps static pages", func(t *testing.T) {
		backend, _ := setupContent(t)
		backend.fail(content.PartnersPath)
		_, c, rec := setupEcho(http.MethodGet, "/sitemap.xml", nil)

		require.NoError(t, GetSitemapHandler(c))
		assert.Len(t, decodeSitemap(t, rec.Body.Bytes()), len(sitePages))
	})
}

func TestRobotsHandler(t *testing.T) {
	t.Run("Production", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodGet, "/robots.txt", nil)
		c.Set("config", &config.Config{Environment: "production", AppURL: "https://toorrii.com"})

		require.NoError(t, RobotsHandler(c))
		assert.Contains(t, rec.Body.String(), "Allow: /\nDisallow: /api/")
		assert.Contains(t, rec.Body.String(), "Sitemap: https://toorrii.com/sitemap.xml")
	})

	t.Run("Other environments are not indexed", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodGet, "/robots.txt", nil)

		require.NoError(t, RobotsHandler(c))
		assert.Contains(t, rec.Body.String(), "Disallow: /\n")
		assert.NotContains(t, rec.Body.String(), "Allow: /\n")
	})
}

func TestGetSEO(t *testing.T) {
	_, c, _ := setupEcho(http.MethodGet, "/contact", nil)
	withLocale(c, "en")

	seo := GetSEO(c, "contact")
	assert.Equal(t, "Contact | Toorrii", seo.Title)
	assert.Equal(t, "https://toorrii.test/contact", seo.Canonical)
	assert.Equal(t, "https://toorrii.test/static/images/og-image.png", seo.OGImage)
	assert.Equal(t, "en", seo.Locale)
	assert.Equal(t, []string{"fr", "en", "ar"}, seo.AltLocales)

	assert.Equal(t, "abc", truncate("abc", 3))
	assert.Equal(t, "ab…", truncate("abcd", 3))
}

package handlers

import (
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"toorrii_site/services/content"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHomeHandler(t *testing.T) {
	setupContent(t)
	_, c, rec := setupEcho(http.MethodGet, "/", nil)
	withLocale(c, "en")

	require.NoError(t, HomeHandler(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `<html lang="en" dir="ltr">`)
	assert.Contains(t, body, `id="partnerships"`)
	assert.Contains(t, body, `href="/partners/42"`)
	assert.Contains(t, body, `<link rel="canonical" href="https://toorrii.test/">`)
	assert.NotContains(t, body, "Ancien partenaire")
	assert.Less(t, strings.Index(body, "CNAS"), strings.Index(body, "Algérie Poste"))
}

func TestDocumentPages(t *testing.T) {
	t.Run("About us", func(t *testing.T) {
		setupContent(t)
		_, c, rec := setupEcho(http.MethodGet, "/about-us", nil)

		require.NoError(t, AboutUsHandler(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "<h1>Qui sommes-nous</h1>")
		assert.Contains(t, rec.Body.String(), "Toorrii simplifie l&#39;attente.")
	})

	t.Run("Privacy policy links its PDF", func(t *testing.T) {
		setupContent(t)
		_, c, rec := setupEcho(http.MethodGet, "/privacy-policy", nil)
		withLocale(c, "ar")

		require.NoError(t, PrivacyPolicyHandler(c))
		body := rec.Body.String()
		assert.Contains(t, body, `dir="rtl"`)
		assert.Contains(t, body, "<p>Vos données</p>")
		assert.Contains(t, body, `href="/privacy-policy.pdf?lang=ar"`)
	})

	t.Run("Privacy policy unavailable", func(t *testing.T) {
		backend, _ := setupContent(t)
		backend.fail(content.PrivacyPolicyPath)
		_, c, rec := setupEcho(http.MethodGet, "/privacy-policy", nil)

		require.NoError(t, PrivacyPolicyHandler(c))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), "state-unavailable")
		assert.NotContains(t, rec.Body.String(), "privacy-policy.pdf")
	})

	t.Run("Terms still render without the backend", func(t *testing.T) {
		backend, _ := setupContent(t)
		backend.fail(content.TermsOfServicePath)
		_, c, rec := setupEcho(http.MethodGet, "/terms-of-service", nil)

		require.NoError(t, TermsOfServiceHandler(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `id="termination"`)
		assert.NotContains(t, rec.Body.String(), "Article premier")
	})

	t.Run("Terms include the published document", func(t *testing.T) {
		setupContent(t)
		_, c, rec := setupEcho(http.MethodGet, "/terms-of-service", nil)

		require.NoError(t, TermsOfServiceHandler(c))
		assert.Contains(t, rec.Body.String(), "<p>Article premier</p>")
		assert.Contains(t, rec.Body.String(), `href="/terms-of-service.pdf?lang=fr"`)
	})
}

func TestSlowBackendRendersLoading(t *testing.T) {
	backend, _ := setupContent(t)
	backend.holdAll()

	previous := pageWait
	pageWait = 50 * time.Millisecond
	defer func() { pageWait = previous }()

	_, c, rec := setupEcho(http.MethodGet, "/about-us", nil)
	require.NoError(t, AboutUsHandler(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "data-reload-after")

	backend.release()
	require.Eventually(t, func() bool {
		return contentQueries.AboutUs.Peek(c.Request().Context()).IsSuccess()
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, backend.count(content.AboutUsPath))
}

func TestStaleContentServedWhileRevalidating(t *testing.T) {
	backend, _ := setupContent(t)

	_, c, _ := setupEcho(http.MethodGet, "/about-us", nil)
	require.NoError(t, AboutUsHandler(c))

	contentQueries.AboutUs.Invalidate()
	backend.holdAll()

	_, c, rec := setupEcho(http.MethodGet, "/about-us", nil)
	started := time.Now()
	require.NoError(t, AboutUsHandler(c))

	assert.Less(t, time.Since(started), time.Second)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<h1>Qui sommes-nous</h1>")
	assert.NotContains(t, rec.Body.String(), "data-reload-after")

	require.Eventually(t, func() bool {
		return backend.count(content.AboutUsPath) == 2
	}, 2*time.Second, 10*time.Millisecond)
	backend.release()
}

func TestContactHandler(t *testing.T) {
	setupContent(t)
	_, c, rec := setupEcho(http.MethodGet, "/contact", nil)

	require.NoError(t, ContactHandler(c))
	body := rec.Body.String()
	assert.Contains(t, body, `href="tel:+21321000000"`)
	assert.Contains(t, body, `href="mailto:hello@toorrii.com"`)
}

func TestPartnersHandler(t *testing.T) {
	t.Run("List", func(t *testing.T) {
		setupContent(t)
		_, c, rec := setupEcho(http.MethodGet, "/partners", nil)

		require.NoError(t, PartnersHandler(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `href="/partners/p1"`)
	})

	t.Run("Backend down", func(t *testing.T) {
		backend, _ := setupContent(t)
		backend.fail(content.PartnersPath)
		_, c, rec := setupEcho(http.MethodGet, "/partners", nil)

		require.NoError(t, PartnersHandler(c))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), "state-unavailable")
	})
}

func TestPartnerDetailHandler(t *testing.T) {
	cases := []struct {
		name   string
		id     string
		status int
		want   string
	}{
		{"By partenaire_id", "p1", http.StatusOK, "<h1>Algérie Poste</h1>"},
		{"By numeric id", "42", http.StatusOK, "<h1>CNAS</h1>"},
		{"Escaped id", "p%31", http.StatusOK, "<h1>Algérie Poste</h1>"},
		{"Unknown", "nope", http.StatusNotFound, "This partner does not exist"},
		{"Inactive", "gone", http.StatusNotFound, "This partner does not exist"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			backend, _ := setupContent(t)
			_, c, rec := setupEcho(http.MethodGet, "/partners/"+tc.id, nil)
			withLocale(c, "en")
			c.SetParamNames("id")
			c.SetParamValues(tc.id)

			require.NoError(t, PartnerDetailHandler(c))
			assert.Equal(t, tc.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.want)
			assert.Equal(t, 1, backend.count(content.PartnersPath))
		})
	}

	t.Run("Detail SEO", func(t *testing.T) {
		setupContent(t)
		_, c, rec := setupEcho(http.MethodGet, "/partners/p1", nil)
		c.SetParamNames("id")
		c.SetParamValues("p1")

		require.NoError(t, PartnerDetailHandler(c))
		body := rec.Body.String()
		assert.Contains(t, body, "<title>Algérie Poste | Toorrii</title>")
		assert.Contains(t, body, `content="Bureaux de poste"`)
		assert.Contains(t, body, `href="https://toorrii.test/partners/p1"`)
	})

	t.Run("Not found page is not indexed", func(t *testing.T) {
		setupContent(t)
		_, c, rec := setupEcho(http.MethodGet, "/partners/nope", nil)
		c.SetParamNames("id")
		c.SetParamValues("nope")

		require.NoError(t, PartnerDetailHandler(c))
		assert.Contains(t, rec.Body.String(), `content="noindex, nofollow"`)
	})
}

func TestHTTPErrorHandler(t *testing.T) {
	t.Run("Not found page", func(t *testing.T) {
		setupContent(t)
		_, c, rec := setupEcho(http.MethodGet, "/missing", nil)
		withLocale(c, "en")

		HTTPErrorHandler(echo.ErrNotFound, c)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "Page not found")
	})

	t.Run("API errors are JSON", func(t *testing.T) {
		setupContent(t)
		_, c, rec := setupEcho(http.MethodGet, "/api/content/unknown", nil)

		HTTPErrorHandler(echo.NewHTTPError(http.StatusNotFound, "Unknown resource"), c)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error":"Unknown resource"}`, rec.Body.String())
	})

	t.Run("Internal errors", func(t *testing.T) {
		setupContent(t)
		_, c, rec := setupEcho(http.MethodGet, "/about-us", nil)
		withLocale(c, "en")

		HTTPErrorHandler(errors.New("boom"), c)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "Something went wrong")
		assert.NotContains(t, rec.Body.String(), "boom")
	})
}

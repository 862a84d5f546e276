package handlers

import (
	"net/http"
	"testing"

	"toorrii_site/services/content"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTermsOfServicePDFHandler(t *testing.T) {
	_, renderer := setupContent(t)

	_, c, rec := setupEcho(http.MethodGet, "/terms-of-service.pdf", nil)
	withLocale(c, "en")
	require.NoError(t, TermsOfServicePDFHandler(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, `inline; filename="toorrii-terms-of-service-en.pdf"`, rec.Header().Get(echo.HeaderContentDisposition))
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	assert.Equal(t, "%PDF-1.4 stub", rec.Body.String())
	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)

	t.Run("Second request is served from storage", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodGet, "/terms-of-service.pdf", nil)
		withLocale(c, "en")
		require.NoError(t, TermsOfServicePDFHandler(c))

		assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))
		assert.Equal(t, etag, rec.Header().Get("ETag"))
		assert.Equal(t, int32(1), renderer.calls.Load())
	})

	t.Run("Matching ETag", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodGet, "/terms-of-service.pdf", nil)
		withLocale(c, "en")
		c.Request().Header.Set("If-None-Match", etag)
		require.NoError(t, TermsOfServicePDFHandler(c))

		assert.Equal(t, http.StatusNotModified, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("Each language has its own PDF", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodGet, "/terms-of-service.pdf", nil)
		withLocale(c, "ar")
		require.NoError(t, TermsOfServicePDFHandler(c))

		assert.NotEqual(t, etag, rec.Header().Get("ETag"))
		assert.Equal(t, int32(2), renderer.calls.Load())
	})
}

func TestPrivacyPolicyPDFHandler(t *testing.T) {
	t.Run("Rendered", func(t *testing.T) {
		setupContent(t)
		_, c, rec := setupEcho(http.MethodGet, "/privacy-policy.pdf", nil)

		require.NoError(t, PrivacyPolicyPDFHandler(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, `inline; filename="toorrii-privacy-policy-fr.pdf"`, rec.Header().Get(echo.HeaderContentDisposition))
	})

	t.Run("Unavailable without content", func(t *testing.T) {
		backend, renderer := setupContent(t)
		backend.fail(content.PrivacyPolicyPath)
		_, c, _ := setupEcho(http.MethodGet, "/privacy-policy.pdf", nil)

		err := PrivacyPolicyPDFHandler(c)
		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, http.StatusServiceUnavailable, he.Code)
		assert.Zero(t, renderer.calls.Load())
	})
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"toorrii_site/config"
	"toorrii_site/services/i18n"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func runLocale(t *testing.T, cfg *config.Config, req *http.Request) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Locale(cfg)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	assert.NoError(t, handler(c))
	return c, rec
}

func langCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "lang" {
			return cookie
		}
	}
	return nil
}

func TestLocale(t *testing.T) {
	cfg := &config.Config{Environment: "development"}

	t.Run("PriorityQueryParam", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/?lang=ar", nil)
		req.AddCookie(&http.Cookie{Name: "lang", Value: "en"})
		c, rec := runLocale(t, cfg, req)

		assert.Equal(t, "ar", c.Get("locale"))
		cookie := langCookie(rec)
		if assert.NotNil(t, cookie) {
			assert.Equal(t, "ar", cookie.Value)
			assert.False(t, cookie.Secure)
		}
	})

	t.Run("UnsupportedQueryParamFallsBack", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/?lang=es", nil)
		c, rec := runLocale(t, cfg, req)

		assert.Equal(t, "fr", c.Get("locale"))
		assert.Equal(t, "fr", langCookie(rec).Value)
	})

	t.Run("PriorityCookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "lang", Value: "en"})
		req.Header.Set("Accept-Language", "ar")
		c, _ := runLocale(t, cfg, req)

		assert.Equal(t, "en", c.Get("locale"))
	})

	t.Run("PriorityHeader", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept-Language", "es-ES,es;q=0.9,en-US;q=0.8,fr;q=0.5")
		c, _ := runLocale(t, cfg, req)

		assert.Equal(t, "en", c.Get("locale"))
	})

	t.Run("DefaultLanguage", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		c, _ := runLocale(t, cfg, req)

		assert.Equal(t, "fr", c.Get("locale"))
	})

	t.Run("RequestContext", func(t *testing.T) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/?lang=en", nil)
		c := e.NewContext(req, httptest.NewRecorder())

		handler := Locale(cfg)(func(c echo.Context) error {
			assert.Equal(t, "en", i18n.GetLocale(c.Request().Context()))
			return c.NoContent(http.StatusOK)
		})
		assert.NoError(t, handler(c))
	})

	t.Run("SecureCookieInProduction", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/?lang=en", nil)
		_, rec := runLocale(t, &config.Config{Environment: "production"}, req)

		assert.True(t, langCookie(rec).Secure)
	})
}

func TestGetLocale(t *testing.T) {
	e := echo.New()
	t.Run("WithLocale", func(t *testing.T) {
		c := e.NewContext(nil, nil)
		c.Set("locale", "ar")
		assert.Equal(t, "ar", GetLocale(c))
	})

	t.Run("WithoutLocale", func(t *testing.T) {
		c := e.NewContext(nil, nil)
		assert.Equal(t, "fr", GetLocale(c))
	})
}

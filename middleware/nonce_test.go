package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/iotest"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateNonce(t *testing.T) {
	nonce1, err := GenerateNonce()
	assert.NoError(t, err)
	assert.Len(t, nonce1, 22)

	nonce2, err := GenerateNonce()
	assert.NoError(t, err)
	assert.NotEqual(t, nonce1, nonce2)
}

func TestCSPPolicyHeader(t *testing.T) {
	policy := CSPPolicy{
		{Name: "default-src", Sources: []string{"'self'"}},
		{Name: "script-src", Sources: []string{"'self'", NonceSource}},
		{Name: "upgrade-insecure-requests"},
	}
	assert.Equal(t,
		"default-src 'self'; script-src 'self' 'nonce-xyz'; upgrade-insecure-requests",
		policy.Header("xyz"))
}

func TestCSPNonce(t *testing.T) {
	e := echo.New()

	t.Run("SetsContextAndHeader", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		var ctxNonce string
		handler := CSPNonce(SiteCSP)(func(c echo.Context) error {
			ctxNonce = templ.GetNonce(c.Request().Context())
			return c.NoContent(http.StatusOK)
		})
		require.NoError(t, handler(c))

		nonce := c.Get("csp_nonce").(string)
		assert.NotEmpty(t, nonce)
		assert.Equal(t, nonce, ctxNonce)

		csp := rec.Header().Get("Content-Security-Policy")
		assert.Contains(t, csp, "script-src 'self' 'nonce-"+nonce+"'")
		assert.Contains(t, csp, "img-src 'self' data: https:")
		assert.Contains(t, csp, "frame-ancestors 'none'")
		assert.NotContains(t, csp, "unsafe-eval")
	})

	t.Run("FailsWithoutRandomness", func(t *testing.T) {
		saved := nonceReader
		nonceReader = iotest.ErrReader(errors.New("entropy exhausted"))
		defer func() { nonceReader = saved }()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		called := false
		handler := CSPNonce(SiteCSP)(func(c echo.Context) error {
			called = true
			return nil
		})

		err := handler(c)
		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, http.StatusInternalServerError, he.Code)
		assert.False(t, called)
		assert.Empty(t, rec.Header().Get("Content-Security-Policy"))
	})
}

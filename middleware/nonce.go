package middleware

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// NonceSource is replaced by the request nonce when a policy is rendered
const NonceSource = "'nonce-{nonce}'"

// CSPDirective is one directive of a Content-Security-Policy header
type CSPDirective struct {
	Name    string
	Sources []string
}

// CSPPolicy renders its directives in order
type CSPPolicy []CSPDirective

// SiteCSP is the policy of every page. Partner logos and banners come from
// the backend, so remote https images are allowed.
var SiteCSP = CSPPolicy{
	{Name: "default-src", Sources: []string{"'self'"}},
	{Name: "script-src", Sources: []string{"'self'", NonceSource}},
	{Name: "style-src", Sources: []string{"'self'", "'unsafe-inline'", "https://fonts.googleapis.com"}},
	{Name: "img-src", Sources: []string{"'self'", "data:", "https:"}},
	{Name: "font-src", Sources: []string{"'self'", "https://fonts.gstatic.com"}},
	{Name: "connect-src", Sources: []string{"'self'"}},
	{Name: "frame-ancestors", Sources: []string{"'none'"}},
}

// Header renders the policy for one response
func (p CSPPolicy) Header(nonce string) string {
	var b strings.Builder
	for i, d := range p {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(d.Name)
		for _, src := range d.Sources {
			if src == NonceSource {
				src = "'nonce-" + nonce + "'"
			}
			b.WriteByte(' ')
			b.WriteString(src)
		}
	}
	return b.String()
}

var nonceReader io.Reader = rand.Reader

// GenerateNonce returns 128 random bits, base64url encoded
func GenerateNonce() (string, error) {
	buf := make([]byte, 16)
	if _, err := io.ReadFull(nonceReader, buf); err != nil {
		return "", fmt.Errorf("reading nonce: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// CSPNonce issues a fresh nonce per request. The nonce is stored on the
// echo context under "csp_nonce" and in the request context for templ
// components, and the policy header is set with it. A request fails with
// 500 rather than reuse a predictable nonce.
func CSPNonce(policy CSPPolicy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			nonce, err := GenerateNonce()
			if err != nil {
				log.Printf("[ERROR] CSP nonce for %s: %v", c.Request().URL.Path, err)
				return echo.NewHTTPError(http.StatusInternalServerError)
			}

			c.Set("csp_nonce", nonce)
			req := c.Request()
			c.SetRequest(req.WithContext(templ.WithNonce(req.Context(), nonce)))
			c.Response().Header().Set(echo.HeaderContentSecurityPolicy, policy.Header(nonce))

			return next(c)
		}
	}
}

package components

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"toorrii_site/models"
	"toorrii_site/services/i18n"
	"toorrii_site/services/query"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if err := i18n.Load(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func localeCtx(lang string) context.Context {
	return context.WithValue(context.Background(), i18n.LocaleContextKey, lang)
}

func render(t *testing.T, ctx context.Context, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(ctx, &buf))
	return buf.String()
}

func strPtr(s string) *string { return &s }

func spread(attrs templ.Attributer) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return templ.RenderAttributes(ctx, w, attrs)
	})
}

func TestReveal(t *testing.T) {
	t.Run("Attributes", func(t *testing.T) {
		attrs := Reveal{Element: "x", Delay: 150 * time.Millisecond, Transition: FadeUp}.Attrs()
		out := render(t, context.Background(), spread(attrs))

		assert.Equal(t, ` data-reveal="fade-up" data-reveal-delay="150" data-reveal-duration="600"`, out)
	})

	t.Run("No delay attribute at zero", func(t *testing.T) {
		attrs := Reveal{Element: "x", Transition: SlideStart}.Attrs()
		out := render(t, context.Background(), spread(attrs))

		assert.NotContains(t, out, "data-reveal-delay")
		assert.Len(t, attrs, 2)
	})

	t.Run("Stagger", func(t *testing.T) {
		r := Reveal{Element: "item", Delay: 100 * time.Millisecond, Transition: Fade}
		assert.Equal(t, 250*time.Millisecond, r.Stagger(3, 50*time.Millisecond).Delay)
		assert.Equal(t, 100*time.Millisecond, r.Delay)
	})

	t.Run("Plan lookup", func(t *testing.T) {
		assert.Equal(t, 300*time.Millisecond, FooterReveal.For("social").Delay)
		missing := FooterReveal.For("unknown")
		assert.Equal(t, Fade, missing.Transition)
		assert.Zero(t, missing.Delay)
	})
}

func TestFooter(t *testing.T) {
	footerYear = func() int { return 2031 }
	defer func() { footerYear = func() int { return time.Now().Year() } }()

	t.Run("Default contact while loading", func(t *testing.T) {
		out := render(t, localeCtx("en"), Footer(query.Pending[models.ContactInfo]()))

		assert.Contains(t, out, "mailto:contact@toorrii.com")
		assert.Contains(t, out, "Algiers, Algeria")
		assert.Contains(t, out, `data-footer="social"`)
		assert.Contains(t, out, "© 2031 Toorrii. All rights reserved.")
	})

	t.Run("Default contact on error", func(t *testing.T) {
		out := render(t, localeCtx("en"), Footer(query.Failed[models.ContactInfo](errors.New("down"))))
		assert.Contains(t, out, "mailto:contact@toorrii.com")
	})

	t.Run("Only present channels", func(t *testing.T) {
		info := models.ContactInfo{Phone: strPtr("+213 555 12 34 56")}
		out := render(t, localeCtx("en"), Footer(query.Succeeded(info, time.Now())))

		assert.Contains(t, out, `data-channel="phone"`)
		assert.Contains(t, out, `href="tel:+213555123456"`)
		assert.NotContains(t, out, `data-channel="email"`)
		assert.NotContains(t, out, `data-footer="social"`)
	})

	t.Run("Page and legal links", func(t *testing.T) {
		out := render(t, localeCtx("fr"), Footer(query.Pending[models.ContactInfo]()))
		for _, href := range []string{"/#partnerships", "/about-us", "/privacy-policy", "/terms-of-service", "/contact"} {
			assert.Contains(t, out, `href="`+href+`"`)
		}
		assert.Equal(t, 2, strings.Count(out, `href="/terms-of-service"`))
	})

	t.Run("Reveal order", func(t *testing.T) {
		out := render(t, localeCtx("en"), Footer(query.Pending[models.ContactInfo]()))

		assert.Contains(t, out, `data-footer="pages" data-reveal="fade-up" data-reveal-delay="100"`)
		assert.Contains(t, out, `data-footer="contact" data-reveal="fade-up" data-reveal-delay="200"`)
		assert.Contains(t, out, `footer-bottom" data-reveal="fade" data-reveal-delay="500"`)
		// first page link follows its column by one step
		assert.Contains(t, out, `<li data-reveal="fade-up" data-reveal-delay="150"`)
	})

	t.Run("External links open in a new tab", func(t *testing.T) {
		out := render(t, localeCtx("en"), Footer(query.Pending[models.ContactInfo]()))
		assert.Contains(t, out, `href="https://facebook.com/toorrii" target="_blank" rel="noopener noreferrer"`)
		assert.NotContains(t, out, `href="mailto:contact@toorrii.com" target="_blank"`)
	})
}

func TestChannelValue(t *testing.T) {
	ctx := localeCtx("en")

	t.Run("Plain text without a link", func(t *testing.T) {
		out := render(t, ctx, ChannelValue(models.ContactChannel{Kind: models.ChannelAddress, Value: "Algiers & Oran"}))
		assert.Equal(t, "<span>Algiers &amp; Oran</span>", out)
	})

	t.Run("Unsafe link is sanitized", func(t *testing.T) {
		ch := models.ContactChannel{Kind: models.ChannelWebsite, Value: "site", Href: "javascript:alert(1)"}
		out := render(t, ctx, ChannelValue(ch))
		assert.Equal(t, `<a href="about:invalid#TemplFailedSanitizationURL">site</a>`, out)
	})
}

func TestChannelLabel(t *testing.T) {
	assert.Equal(t, "Phone", ChannelLabel(localeCtx("en"), models.ChannelPhone))
	assert.Equal(t, "mastodon", ChannelLabel(localeCtx("en"), models.ChannelKind("mastodon")))
}

func TestLayout(t *testing.T) {
	body := templ.Raw(`<p id="body">content</p>`)

	t.Run("Document attributes", func(t *testing.T) {
		seo := models.DefaultSEO("Terms <Toorrii>", "desc").WithCanonical("https://toorrii.com/terms-of-service")
		out := render(t, localeCtx("ar"), Layout(seo, query.Pending[models.ContactInfo](), body))

		assert.True(t, strings.HasPrefix(out, "<!doctype html>"))
		assert.Contains(t, out, `<html lang="ar" dir="rtl">`)
		assert.Contains(t, out, "<title>Terms &lt;Toorrii&gt;</title>")
		assert.Contains(t, out, `<link rel="canonical" href="https://toorrii.com/terms-of-service">`)
		assert.Contains(t, out, `hreflang="en" href="https://toorrii.com/terms-of-service?lang=en"`)
		assert.Contains(t, out, `<p id="body">content</p>`)
		assert.Contains(t, out, `<footer class="site-footer">`)
	})

	t.Run("Left to right and active language", func(t *testing.T) {
		out := render(t, localeCtx("en"), Layout(nil, query.Pending[models.ContactInfo](), body))

		assert.Contains(t, out, `<html lang="en" dir="ltr">`)
		assert.Contains(t, out, `href="?lang=en" hreflang="en" aria-current="true"`)
		assert.NotContains(t, out, `rel="canonical"`)
	})

	t.Run("Script nonce", func(t *testing.T) {
		ctx := templ.WithNonce(localeCtx("fr"), "abc123")
		out := render(t, ctx, Layout(nil, query.Pending[models.ContactInfo](), body))
		assert.Contains(t, out, `nonce="abc123" defer></script>`)
	})

	t.Run("No nonce attribute outside the middleware", func(t *testing.T) {
		out := render(t, localeCtx("fr"), Layout(nil, query.Pending[models.ContactInfo](), body))
		assert.NotContains(t, out, "nonce=")
	})

	t.Run("Escapes backend SEO values", func(t *testing.T) {
		seo := models.DefaultSEO("x", `"><script>alert(1)</script>`).WithCanonical(`javascript:alert(1)`)
		out := render(t, localeCtx("en"), Layout(seo, query.Pending[models.ContactInfo](), body))

		assert.NotContains(t, out, "<script>alert(1)")
		assert.Contains(t, out, `<link rel="canonical" href="about:invalid#TemplFailedSanitizationURL">`)
	})

	t.Run("No index", func(t *testing.T) {
		seo := models.DefaultSEO("Missing", "").WithNoIndex()
		out := render(t, localeCtx("fr"), Layout(seo, query.Pending[models.ContactInfo](), body))
		assert.Contains(t, out, `content="noindex, nofollow"`)
	})
}

func TestStates(t *testing.T) {
	ctx := localeCtx("en")

	loading := render(t, ctx, Loading())
	assert.Contains(t, loading, `data-reload-after="2000"`)
	assert.Contains(t, loading, "Loading")

	assert.Contains(t, render(t, ctx, Unavailable()), "temporarily unavailable")
	assert.Contains(t, render(t, ctx, Empty("partners.empty")), "No partners to show yet.")

	hero := render(t, ctx, Hero("Title", "", "note"))
	assert.Contains(t, hero, "<h1>Title</h1>")
	assert.NotContains(t, hero, "hero-subtitle")
	assert.Contains(t, hero, `<p class="hero-note">note</p>`)
}

package pages

import (
	"bytes"
	"context"
	"errors"
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

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	ctx := context.WithValue(context.Background(), i18n.LocaleContextKey, "en")
	var buf bytes.Buffer
	require.NoError(t, c.Render(ctx, &buf))
	return buf.String()
}

func doc(raw string) query.Result[models.Document] {
	return query.Succeeded(models.Document(raw), time.Now())
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool     { return &b }
func int64Ptr(i int64) *int64  { return &i }

func TestTermsArticle(t *testing.T) {
	t.Run("Static sections always render", func(t *testing.T) {
		out := render(t, TermsArticle(query.Failed[models.TermsOfServiceData](errors.New("down"))))

		for _, id := range []string{"introduction", "acceptance", "userRights", "limitations", "termination", "additional"} {
			assert.Contains(t, out, `id="`+id+`"`)
		}
		assert.Contains(t, out, "Last updated: January 2025")
		assert.Contains(t, out, "These terms are governed by Algerian law.")
		assert.NotContains(t, out, "terms-published")
	})

	t.Run("Section content keeps line breaks", func(t *testing.T) {
		out := render(t, TermsArticle(query.Pending[models.TermsOfServiceData]()))
		assert.Contains(t, out, "Using the platform means you accept these terms in full.<br>If you do not agree")
	})

	t.Run("Loading", func(t *testing.T) {
		out := render(t, TermsArticle(query.Pending[models.TermsOfServiceData]()))
		assert.Contains(t, out, "data-reload-after")
	})

	t.Run("Published document is sanitized and comes first", func(t *testing.T) {
		out := render(t, TermsArticle(doc(`{
			"titre": "CGU 2025",
			"contenu": "<p>Article 1</p><script>alert(1)</script>",
			"date_mise_a_jour": "2025-03-01"
		}`)))

		assert.Contains(t, out, "<h2>CGU 2025</h2>")
		assert.Contains(t, out, "<p>Article 1</p>")
		assert.NotContains(t, out, "<script>")
		assert.Contains(t, out, "Last updated: March 1, 2025")
		assert.Less(t, strings.Index(out, "Article 1"), strings.Index(out, `id="introduction"`))
	})

	t.Run("Section reveals are staggered", func(t *testing.T) {
		out := render(t, TermsArticle(query.Pending[models.TermsOfServiceData]()))
		assert.Contains(t, out, `id="acceptance" data-reveal="slide-start" data-reveal-delay="300"`)
		assert.Contains(t, out, `id="termination" data-reveal="slide-start" data-reveal-delay="600"`)
	})
}

func TestDocumentArticle(t *testing.T) {
	t.Run("Loading", func(t *testing.T) {
		out := render(t, DocumentArticle(query.Pending[models.Document](), PrivacyPage))
		assert.Contains(t, out, "data-reload-after")
		assert.Contains(t, out, "<h1>Privacy Policy</h1>")
		assert.Contains(t, out, `<article class="document" data-document="privacy">`)
	})

	t.Run("Error without data", func(t *testing.T) {
		out := render(t, DocumentArticle(query.Failed[models.Document](errors.New("down")), AboutPage))
		assert.Contains(t, out, "temporarily unavailable")
	})

	t.Run("Empty document", func(t *testing.T) {
		out := render(t, DocumentArticle(doc(`{}`), PrivacyPage))
		assert.Contains(t, out, "Our privacy policy will be available soon.")
	})

	t.Run("Plain text with sections", func(t *testing.T) {
		out := render(t, DocumentArticle(doc(`[{
			"title": "Who we are",
			"content": "Toorrii & co\n\nSince 2023",
			"sections": [{"titre": "Mission", "contenu": "<b>Less waiting</b>"}]
		}]`), AboutPage))

		assert.Contains(t, out, "<h1>Who we are</h1>")
		assert.Contains(t, out, "<p>Toorrii &amp; co</p><p>Since 2023</p>")
		assert.Contains(t, out, "<h2>Mission</h2>")
		assert.Contains(t, out, "<b>Less waiting</b>")
	})

	t.Run("PDF link", func(t *testing.T) {
		out := render(t, WithPDFLink(DocumentArticle(doc(`{"contenu":"x"}`), PrivacyPage), "/privacy-policy.pdf"))
		assert.Contains(t, out, `href="/privacy-policy.pdf?lang=en"`)
	})
}

func TestPartnersList(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	partners := []models.Partner{
		{PartenaireID: strPtr("b"), Name: "Beta", DisplayPriority: 2},
		{PartenaireID: strPtr("a"), Name: "Alpha", DisplayPriority: 1, Logo: "https://cdn.toorrii.com/a.png"},
		{ID: int64Ptr(7), Name: "Hidden", Active: boolPtr(false)},
		{PartenaireID: strPtr("old"), Name: "Expired", EndDate: "2024-12-31"},
	}

	t.Run("Active partners in priority order", func(t *testing.T) {
		out := render(t, PartnersList(query.Succeeded(partners, now), now))

		assert.Contains(t, out, `href="/partners/a"`)
		assert.Contains(t, out, `src="https://cdn.toorrii.com/a.png"`)
		assert.NotContains(t, out, "Hidden")
		assert.NotContains(t, out, "Expired")
		assert.Less(t, strings.Index(out, "Alpha"), strings.Index(out, "Beta"))
	})

	t.Run("Empty", func(t *testing.T) {
		out := render(t, PartnersList(query.Succeeded([]models.Partner{}, now), now))
		assert.Contains(t, out, "No partners to show yet.")
	})

	t.Run("Loading and error", func(t *testing.T) {
		assert.Contains(t, render(t, PartnersList(query.Pending[[]models.Partner](), now)), "data-reload-after")
		assert.Contains(t, render(t, PartnersList(query.Failed[[]models.Partner](errors.New("down")), now)), "temporarily unavailable")
	})

	t.Run("Home caps the cards", func(t *testing.T) {
		many := make([]models.Partner, 12)
		for i := range many {
			many[i] = models.Partner{ID: int64Ptr(int64(i + 1)), Name: "P", DisplayPriority: float64(i)}
		}
		out := render(t, Home(query.Succeeded(many, now), now))

		assert.Equal(t, homePartnerLimit, strings.Count(out, `class="partner-card"`))
		assert.Contains(t, out, `id="partnerships"`)
	})

	t.Run("Unsafe logo URL is sanitized", func(t *testing.T) {
		bad := []models.Partner{{PartenaireID: strPtr("x"), Name: "X", Logo: "javascript:alert(1)"}}
		out := render(t, PartnersList(query.Succeeded(bad, now), now))

		assert.NotContains(t, out, "javascript:")
		assert.Contains(t, out, `src="about:invalid#TemplFailedSanitizationURL"`)
	})

	t.Run("URL escapes the key", func(t *testing.T) {
		assert.Equal(t, "/partners/a%2Fb", PartnerURL(models.Partner{PartenaireID: strPtr("a/b")}))
		assert.Equal(t, "/partners/42", PartnerURL(models.Partner{ID: int64Ptr(42)}))
	})
}

func TestPartnerDetail(t *testing.T) {
	p := models.Partner{
		PartenaireID:     strPtr("p1"),
		Name:             "Clinique El Amel",
		Description:      "Soins\n\nUrgences",
		Address:          "Alger",
		Type:             "Santé",
		Website:          "elamel.dz",
		Email:            "contact@elamel.dz",
		StartDate:        "2024-01-01",
		CompanyCreatedAt: "2010-05-01",
	}

	out := render(t, PartnerDetail(p))

	assert.Contains(t, out, "<h1>Clinique El Amel</h1>")
	assert.Contains(t, out, "Santé")
	assert.Contains(t, out, "<p>Soins</p><p>Urgences</p>")
	assert.Contains(t, out, "Partner since January 1, 2024")
	assert.Contains(t, out, "Company founded on May 1, 2010")
	assert.Contains(t, out, `href="https://elamel.dz" target="_blank" rel="noopener noreferrer"`)
	assert.Contains(t, out, `href="mailto:contact@elamel.dz"`)
	assert.Contains(t, out, `href="/partners" class="back-link"`)

	t.Run("Unsafe banner URL is sanitized", func(t *testing.T) {
		bad := models.Partner{Name: "X", BannerImage: "data:text/html;base64,PHNjcmlwdD4=", Logo: "/static/images/x.png"}
		out := render(t, PartnerDetail(bad))

		assert.Contains(t, out, `<div class="partner-banner"><img src="about:invalid#TemplFailedSanitizationURL" alt=""></div>`)
		assert.Contains(t, out, `src="/static/images/x.png"`)
	})
}

func TestContact(t *testing.T) {
	t.Run("Loading", func(t *testing.T) {
		out := render(t, Contact(query.Pending[models.ContactInfo]()))
		assert.Contains(t, out, "data-reload-after")
		assert.NotContains(t, out, "contact-channels")
	})

	t.Run("Default details after an error", func(t *testing.T) {
		out := render(t, Contact(query.Failed[models.ContactInfo](errors.New("down"))))
		assert.Contains(t, out, "mailto:contact@toorrii.com")
	})

	t.Run("Backend details", func(t *testing.T) {
		info := models.ContactInfo{
			Phone:          strPtr("021 00 00 00"),
			OpeningHours:   strPtr("8:00 - 16:00"),
			WelcomeMessage: strPtr("Bienvenue"),
		}
		out := render(t, Contact(query.Succeeded(info, time.Now())))

		assert.Contains(t, out, "Bienvenue")
		assert.Contains(t, out, "Opening hours")
		assert.Contains(t, out, `href="tel:021000000"`)
		assert.NotContains(t, out, `data-channel="email"`)
	})
}

func TestErrorPages(t *testing.T) {
	out := render(t, NotFound("errors.partnerNotFound"))
	assert.Contains(t, out, "Page not found")
	assert.Contains(t, out, "This partner does not exist")

	assert.Contains(t, render(t, NotFound("")), "does not exist or has moved")
	assert.Contains(t, render(t, ServerError()), "Something went wrong")
}

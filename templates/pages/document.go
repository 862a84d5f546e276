package pages

import (
	"context"
	"time"

	"toorrii_site/models"
	"toorrii_site/services"
	"toorrii_site/services/i18n"
	"toorrii_site/services/query"
	"toorrii_site/templates/components"
)

// DocumentPage names the translations of a backend document page
type DocumentPage struct {
	Name        string // used in reveal ids and data-document
	TitleKey    string
	SubtitleKey string
	EmptyKey    string
}

var (
	PrivacyPage = DocumentPage{Name: "privacy", TitleKey: "privacy.title", SubtitleKey: "privacy.subtitle", EmptyKey: "privacy.empty"}
	AboutPage   = DocumentPage{Name: "about", TitleKey: "about.title", SubtitleKey: "about.subtitle", EmptyKey: "about.empty"}
)

// DocumentReveal is the entrance order of a document article
var DocumentReveal = components.RevealPlan{
	{Element: "body", Delay: 150 * time.Millisecond, Transition: components.FadeUp},
	{Element: "section", Delay: 250 * time.Millisecond, Transition: components.FadeUp},
}

const documentSectionStep = 100 * time.Millisecond

// documentTitle prefers the title the backend sent over the page default
func documentTitle(ctx context.Context, doc query.Result[models.Document], page DocumentPage) string {
	if doc.HasData() {
		if t := doc.Data.Title(); t != "" {
			return t
		}
	}
	return i18n.T(ctx, page.TitleKey)
}

// lastUpdated formats the update date of a document, or returns fallback
func lastUpdated(ctx context.Context, doc models.Document, ok bool, fallback string) string {
	if !ok {
		return fallback
	}
	updated := doc.UpdatedAt()
	if updated == "" {
		return fallback
	}
	return i18n.T(ctx, "common.lastUpdated", map[string]any{"date": services.FormatDate(updated, i18n.GetLocale(ctx))})
}

func documentIsBlank(d models.Document) bool {
	return d.IsEmpty() || (d.Content() == "" && len(d.Sections()) == 0)
}

func pdfHref(ctx context.Context, href string) string {
	return href + "?lang=" + i18n.GetLocale(ctx)
}

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

// termsSections are the numbered sections of the terms, in order
var termsSections = []string{"acceptance", "userRights", "limitations", "termination"}

// termsAdditional are the closing entries, as (term, definition) keys
var termsAdditional = [][2]string{
	{"terms.additional.modifications", "terms.additional.modificationsContent"},
	{"terms.additional.governing", "terms.additional.governingContent"},
	{"terms.additional.contact", "terms.additional.contactContent"},
}

// TermsReveal is the entrance order of the terms of service page
var TermsReveal = components.RevealPlan{
	{Element: "backend", Delay: 100 * time.Millisecond, Transition: components.FadeUp},
	{Element: "introduction", Delay: 200 * time.Millisecond, Transition: components.FadeUp},
	{Element: "section", Delay: 300 * time.Millisecond, Transition: components.SlideStart},
	{Element: "additional", Delay: 700 * time.Millisecond, Transition: components.FadeUp},
}

const termsSectionStep = 100 * time.Millisecond

// termsNote is the hero note: the backend update date when there is one.
func termsNote(ctx context.Context, doc query.Result[models.TermsOfServiceData]) string {
	return lastUpdated(ctx, doc.Data, doc.HasData(), i18n.T(ctx, "terms.lastUpdated"))
}

// termsContent renders a translated section body, keeping its line breaks
func termsContent(ctx context.Context, key string) string {
	return services.DocumentHTML(i18n.T(ctx, key))
}

package components

import (
	"context"
	"time"

	"toorrii_site/models"
	"toorrii_site/services/i18n"
	"toorrii_site/services/query"
)

// FooterReveal is the entrance order of the footer columns
var FooterReveal = RevealPlan{
	{Element: "brand", Transition: FadeUp},
	{Element: "pages", Delay: 100 * time.Millisecond, Transition: FadeUp},
	{Element: "contact", Delay: 200 * time.Millisecond, Transition: FadeUp},
	{Element: "social", Delay: 300 * time.Millisecond, Transition: FadeUp},
	{Element: "bottom", Delay: 500 * time.Millisecond, Transition: Fade},
}

const footerItemStep = 50 * time.Millisecond

var footerPages = []navLink{
	{"/#partnerships", "nav.partnerships"},
	{"/about-us", "nav.aboutUs"},
	{"/privacy-policy", "footer.privacyPolicy"},
	{"/terms-of-service", "footer.termsOfService"},
	{"/contact", "nav.contact"},
}

// footerLegal are the links of the bottom bar
var footerLegal = footerPages[2:4]

// footerYear is replaced in tests
var footerYear = func() int { return time.Now().Year() }

// footerInfo picks the contact details to show. Until the backend answers,
// the published default contact details are shown.
func footerInfo(contact query.Result[models.ContactInfo]) models.ContactInfo {
	if contact.HasData() && !contact.Data.IsEmpty() {
		return contact.Data
	}
	return models.DefaultContactInfo()
}

func footerRights(ctx context.Context) string {
	return i18n.T(ctx, "footer.rights", map[string]any{"year": footerYear()})
}

// ChannelLabel translates a channel kind, falling back to the kind itself.
func ChannelLabel(ctx context.Context, kind models.ChannelKind) string {
	key := "channels." + string(kind)
	if label := i18n.T(ctx, key); label != key {
		return label
	}
	return string(kind)
}

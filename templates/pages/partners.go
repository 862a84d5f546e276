package pages

import (
	"context"
	"net/url"
	"time"

	"toorrii_site/models"
	"toorrii_site/services"
	"toorrii_site/services/i18n"
	"toorrii_site/templates/components"

	"github.com/a-h/templ"
)

// partnerCardReveal is the entrance of the first card; later cards follow
// every partnerCardStep.
var partnerCardReveal = components.Reveal{Element: "partner", Delay: 100 * time.Millisecond, Transition: components.FadeUp}

const partnerCardStep = 80 * time.Millisecond

var (
	partnerHeaderReveal      = components.Reveal{Element: "header", Transition: components.FadeUp}
	partnerDescriptionReveal = components.Reveal{Element: "description", Delay: 100 * time.Millisecond, Transition: components.FadeUp}
)

// PartnerURL returns the detail page path of p
func PartnerURL(p models.Partner) string {
	return "/partners/" + url.PathEscape(p.Key())
}

// visiblePartners returns the active partners in display order, at most
// limit of them when limit > 0.
func visiblePartners(partners []models.Partner, now time.Time, limit int) []models.Partner {
	active := models.ActivePartners(partners, now)
	if limit > 0 && len(active) > limit {
		active = active[:limit]
	}
	return active
}

// imageSrc sanitizes a backend image URL the way templ sanitizes hrefs
func imageSrc(src string) string {
	return string(templ.URL(src))
}

type partnerFact struct {
	label string
	value string
}

func partnerFacts(ctx context.Context, p models.Partner) []partnerFact {
	var facts []partnerFact
	if a := p.AddressText(); a != "" {
		facts = append(facts, partnerFact{components.ChannelLabel(ctx, models.ChannelAddress), a})
	}
	lang := i18n.GetLocale(ctx)
	if p.StartDate != "" {
		facts = append(facts, partnerFact{value: i18n.T(ctx, "partners.since", map[string]any{"date": services.FormatDate(p.StartDate, lang)})})
	}
	if p.CompanyCreatedAt != "" {
		facts = append(facts, partnerFact{value: i18n.T(ctx, "partners.founded", map[string]any{"date": services.FormatDate(p.CompanyCreatedAt, lang)})})
	}
	return facts
}

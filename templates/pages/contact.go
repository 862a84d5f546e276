package pages

import (
	"context"
	"time"

	"toorrii_site/models"
	"toorrii_site/services/i18n"
	"toorrii_site/services/query"
	"toorrii_site/templates/components"
)

var (
	contactWelcomeReveal = components.Reveal{Element: "welcome", Transition: components.FadeUp}
	contactChannelReveal = components.Reveal{Element: "channel", Delay: 100 * time.Millisecond, Transition: components.FadeUp}
)

const contactChannelStep = 60 * time.Millisecond

// contactInfo picks the details to show. Without backend data the published
// default contact details are shown, once the fetch has failed; ok is false
// while it is still pending.
func contactInfo(contact query.Result[models.ContactInfo]) (info models.ContactInfo, ok bool) {
	switch {
	case contact.HasData() && !contact.Data.IsEmpty():
		return contact.Data, true
	case contact.IsLoading():
		return models.ContactInfo{}, false
	default:
		return models.DefaultContactInfo(), true
	}
}

func contactLabel(ctx context.Context, kind models.ChannelKind) string {
	if kind == models.ChannelHours {
		return i18n.T(ctx, "contact.hours")
	}
	return components.ChannelLabel(ctx, kind)
}

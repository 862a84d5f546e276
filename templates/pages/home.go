package pages

import "toorrii_site/templates/components"

// homePartnerLimit caps the partner cards shown on the home page
const homePartnerLimit = 8

var (
	homeHeroReveal     = components.Reveal{Element: "hero", Transition: components.FadeUp}
	partnershipsReveal = components.Reveal{Element: "partnerships", Transition: components.Fade}
)

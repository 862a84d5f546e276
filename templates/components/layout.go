package components

import (
	"context"

	"toorrii_site/models"
	"toorrii_site/services/i18n"
)

type navLink struct {
	href string
	key  string // translation key of the label
}

// navLinks are the header entries
var navLinks = []navLink{
	{"/", "nav.home"},
	{"/partners", "nav.partners"},
	{"/about-us", "nav.aboutUs"},
	{"/contact", "nav.contact"},
}

// pageSEO falls back to the site name and tagline when a page has no SEO
func pageSEO(ctx context.Context, seo *models.SEO) *models.SEO {
	if seo == nil {
		return models.DefaultSEO(i18n.T(ctx, "site.name"), i18n.T(ctx, "site.tagline"))
	}
	return seo
}

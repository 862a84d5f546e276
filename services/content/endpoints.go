// Package content maps the backend content endpoints to typed fetch functions.
// Services hold no state beyond their API client.
package content

import "toorrii_site/services/api"

// Backend endpoints, relative to the API base URL
const (
	AboutUsPath        = "/home/aboutnous/"
	PartnersPath       = "/home/partenaire/"
	PrivacyPolicyPath  = "/home/politique_confidentialite/"
	TermsOfServicePath = "/home/condition_dutilisation/"
	ContactInfoPath    = "/home/contact/"
)

// Services bundles every resource service over one API client.
type Services struct {
	AboutUs        *AboutUsService
	Partners       *PartnerService
	PrivacyPolicy  *PrivacyPolicyService
	TermsOfService *TermsOfServiceService
	ContactInfo    *ContactInfoService
}

// NewServices creates all resource services.
func NewServices(client api.Getter) *Services {
	return &Services{
		AboutUs:        NewAboutUsService(client),
		Partners:       NewPartnerService(client),
		PrivacyPolicy:  NewPrivacyPolicyService(client),
		TermsOfService: NewTermsOfServiceService(client),
		ContactInfo:    NewContactInfoService(client),
	}
}

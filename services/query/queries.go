package query

import (
	"context"
	"errors"
	"log"
	"time"

	"toorrii_site/models"
	"toorrii_site/services/content"
)

// Cache keys, one entry per resource type
const (
	KeyAboutUs        = "aboutUs"
	KeyPartners       = "partners"
	KeyPrivacyPolicy  = "privacyPolicy"
	KeyTermsOfService = "termsOfService"
	KeyContactInfo    = "contactInfo"
)

// Queries exposes the content resources to the views.
type Queries struct {
	AboutUs        *Query[models.AboutUsData]
	Partners       *Query[[]models.Partner]
	PrivacyPolicy  *Query[models.PrivacyPolicyData]
	TermsOfService *Query[models.TermsOfServiceData]
	ContactInfo    *Query[models.ContactInfo]

	cache *Cache
}

// NewQueries wires every resource service into cache.
func NewQueries(cache *Cache, svc *content.Services, staleTime time.Duration) *Queries {
	opt := WithStaleTime(staleTime)
	return &Queries{
		AboutUs:        New(cache, KeyAboutUs, svc.AboutUs.GetAboutUs, opt),
		Partners:       New(cache, KeyPartners, svc.Partners.GetPartners, opt),
		PrivacyPolicy:  New(cache, KeyPrivacyPolicy, svc.PrivacyPolicy.GetPrivacyPolicy, opt),
		TermsOfService: New(cache, KeyTermsOfService, svc.TermsOfService.GetTermsOfService, opt),
		ContactInfo:    New(cache, KeyContactInfo, svc.ContactInfo.GetContactInfo, opt),
		cache:          cache,
	}
}

// Cache returns the underlying cache
func (q *Queries) Cache() *Cache {
	return q.cache
}

// PartnerByID resolves a partner from the cached partner list, stale or not
// (see Query.Load). A missing partner is StatusError with a
// *content.NotFoundError.
func (q *Queries) PartnerByID(ctx context.Context, id string) Result[models.Partner] {
	list := q.Partners.Load(ctx)
	r := Result[models.Partner]{
		Status:    list.Status,
		Err:       list.Err,
		UpdatedAt: list.UpdatedAt,
	}
	if !list.HasData() {
		return r
	}

	partner, err := content.FindPartner(list.Data, id)
	if err != nil {
		r.Status = StatusError
		r.Err = err
		return r
	}
	r.Data = partner
	r.hasData = true
	return r
}

// resource is implemented by every *Query
type resource interface {
	Key() string
	Invalidate()
	Restore(ctx context.Context) (bool, error)
}

func (q *Queries) resources() []resource {
	return []resource{q.AboutUs, q.Partners, q.PrivacyPolicy, q.TermsOfService, q.ContactInfo}
}

// Restore seeds the cache from persisted snapshots. Failures are logged and
// skipped; the resource is simply fetched on first use.
func (q *Queries) Restore(ctx context.Context) int {
	restored := 0
	for _, item := range q.resources() {
		ok, err := item.Restore(ctx)
		if err != nil {
			log.Printf("[WARNING] %v", err)
			continue
		}
		if ok {
			restored++
		}
	}
	return restored
}

// Refresh revalidates every resource, one coalesced fetch per key, and
// returns the joined fetch errors.
func (q *Queries) Refresh(ctx context.Context) error {
	for _, item := range q.resources() {
		item.Invalidate()
	}

	return errors.Join(
		q.AboutUs.Fetch(ctx).Err,
		q.Partners.Fetch(ctx).Err,
		q.PrivacyPolicy.Fetch(ctx).Err,
		q.TermsOfService.Fetch(ctx).Err,
		q.ContactInfo.Fetch(ctx).Err,
	)
}

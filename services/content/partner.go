package content

import (
	"context"
	"errors"
	"fmt"

	"toorrii_site/models"
	"toorrii_site/services/api"
)

// ErrPartnerNotFound is matched by errors.Is for every *NotFoundError.
var ErrPartnerNotFound = errors.New("partner not found")

// NotFoundError is returned when no partner matches the requested id.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("partner not found: %q", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrPartnerNotFound
}

type PartnerService struct {
	client api.Getter
}

func NewPartnerService(client api.Getter) *PartnerService {
	return &PartnerService{client: client}
}

// GetPartners returns the full partner list.
func (s *PartnerService) GetPartners(ctx context.Context) ([]models.Partner, error) {
	return api.Get[[]models.Partner](ctx, s.client, PartnersPath)
}

// GetPartnerByID fetches the partner list and returns the partner whose
// partenaire_id or numeric id equals id. The list endpoint is the only
// source, so every call re-fetches it.
func (s *PartnerService) GetPartnerByID(ctx context.Context, id string) (models.Partner, error) {
	partners, err := s.GetPartners(ctx)
	if err != nil {
		return models.Partner{}, err
	}
	return FindPartner(partners, id)
}

// FindPartner scans partners for the first one matching id on either key.
func FindPartner(partners []models.Partner, id string) (models.Partner, error) {
	for _, p := range partners {
		if p.MatchesID(id) {
			return p, nil
		}
	}
	return models.Partner{}, &NotFoundError{ID: id}
}

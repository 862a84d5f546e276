package content

import (
	"context"

	"toorrii_site/models"
	"toorrii_site/services/api"
)

type ContactInfoService struct {
	client api.Getter
}

func NewContactInfoService(client api.Getter) *ContactInfoService {
	return &ContactInfoService{client: client}
}

// GetContactInfo returns the organisation contact record.
func (s *ContactInfoService) GetContactInfo(ctx context.Context) (models.ContactInfo, error) {
	return api.Get[models.ContactInfo](ctx, s.client, ContactInfoPath)
}

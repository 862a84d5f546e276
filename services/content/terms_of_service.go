package content

import (
	"context"

	"toorrii_site/models"
	"toorrii_site/services/api"
)

type TermsOfServiceService struct {
	client api.Getter
}

func NewTermsOfServiceService(client api.Getter) *TermsOfServiceService {
	return &TermsOfServiceService{client: client}
}

// GetTermsOfService returns the terms of service document as sent by the backend.
func (s *TermsOfServiceService) GetTermsOfService(ctx context.Context) (models.TermsOfServiceData, error) {
	return api.Get[models.TermsOfServiceData](ctx, s.client, TermsOfServicePath)
}

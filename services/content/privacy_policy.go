package content

import (
	"context"

	"toorrii_site/models"
	"toorrii_site/services/api"
)

type PrivacyPolicyService struct {
	client api.Getter
}

func NewPrivacyPolicyService(client api.Getter) *PrivacyPolicyService {
	return &PrivacyPolicyService{client: client}
}

// GetPrivacyPolicy returns the privacy policy document as sent by the backend.
func (s *PrivacyPolicyService) GetPrivacyPolicy(ctx context.Context) (models.PrivacyPolicyData, error) {
	return api.Get[models.PrivacyPolicyData](ctx, s.client, PrivacyPolicyPath)
}

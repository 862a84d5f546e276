package content

import (
	"context"

	"toorrii_site/models"
	"toorrii_site/services/api"
)

type AboutUsService struct {
	client api.Getter
}

func NewAboutUsService(client api.Getter) *AboutUsService {
	return &AboutUsService{client: client}
}

// GetAboutUs returns the about-us document as sent by the backend.
func (s *AboutUsService) GetAboutUs(ctx context.Context) (models.AboutUsData, error) {
	return api.Get[models.AboutUsData](ctx, s.client, AboutUsPath)
}

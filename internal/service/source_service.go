package service

import (
	"context"
	"fmt"

	"admin-chatbot-be/internal/dto"
	"admin-chatbot-be/internal/pkg/serverutils"
	"admin-chatbot-be/pkg/rag/intent"
	"admin-chatbot-be/pkg/rag/source"
)

type ISourceService interface {
	Search(ctx context.Context, req *dto.SourceSearchRequest) (*dto.SourceSearchResponse, error)
}

type sourceService struct {
	registry *source.Registry
}

func NewSourceService(registry *source.Registry) ISourceService {
	return &sourceService{registry: registry}
}

func (s *sourceService) Search(ctx context.Context, req *dto.SourceSearchRequest) (*dto.SourceSearchResponse, error) {
	category := intent.Category(req.Category)
	adapter, ok := s.registry.Get(category)
	if !ok {
		return nil, fmt.Errorf("source %q: %w", req.Category, serverutils.ErrNotFound)
	}

	page, err := adapter.SearchPaginated(ctx, req.Query, req.Page, req.PageSize)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", category, err)
	}

	records := make([]map[string]interface{}, len(page.Records))
	for i, r := range page.Records {
		records[i] = r
	}

	return &dto.SourceSearchResponse{
		Category: category.String(),
		Records:  records,
		Total:    page.Total,
		Page:     page.Page,
		PageSize: page.PageSize,
		HasMore:  page.HasMore,
	}, nil
}

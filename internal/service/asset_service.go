package service

import (
	"context"
	"errors"
	"fmt"
	"pong-web/internal/models"
	"pong-web/internal/repository"
)

// IndexName is the page served at the site root
const IndexName = "index.html"

var (
	ErrAssetNotFound = errors.New("asset not found")
	ErrInvalidPath   = errors.New("invalid asset path")
)

// AssetService resolves the index page and static assets
type AssetService struct {
	content repository.AssetRepository
	static  repository.AssetRepository
}

// NewAssetService creates a new asset service. content holds index.html,
// static holds everything served under /static/.
func NewAssetService(content, static repository.AssetRepository) *AssetService {
	return &AssetService{
		content: content,
		static:  static,
	}
}

// Index opens the index page from the content root
func (s *AssetService) Index(ctx context.Context) (*models.Asset, error) {
	asset, err := s.content.Open(ctx, IndexName)
	if err != nil {
		return nil, mapRepositoryError(IndexName, err)
	}
	return asset, nil
}

// Static opens a file from the static root
func (s *AssetService) Static(ctx context.Context, name string) (*models.Asset, error) {
	asset, err := s.static.Open(ctx, name)
	if err != nil {
		return nil, mapRepositoryError(name, err)
	}
	return asset, nil
}

func mapRepositoryError(name string, err error) error {
	if errors.Is(err, repository.ErrAssetNotFound) {
		return ErrAssetNotFound
	}

	var pathErr *repository.ErrInvalidPath
	if errors.As(err, &pathErr) {
		return fmt.Errorf("%w: %s", ErrInvalidPath, pathErr.Path)
	}

	return fmt.Errorf("failed to open asset %s: %w", name, err)
}

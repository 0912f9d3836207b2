package repository

import (
	"context"
	"errors"
	"fmt"
	"pong-web/internal/models"
)

// ErrAssetNotFound is returned when a name resolves to nothing servable
var ErrAssetNotFound = errors.New("asset not found")

// ErrInvalidPath is returned when a requested name would leave the asset root
type ErrInvalidPath struct {
	Path string
}

func (e *ErrInvalidPath) Error() string {
	return fmt.Sprintf("invalid asset path %q", e.Path)
}

// AssetRepository defines the interface for read-only asset lookup
type AssetRepository interface {
	Open(ctx context.Context, name string) (*models.Asset, error)
}

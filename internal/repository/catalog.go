package repository

import (
	"context"

	"github.com/stormvale/vocation-engine/internal/domain"
)

// Catalog exposes the designer-owned templates: resources (with their
// requirements) and items. Read-only to the engine.
type Catalog interface {
	// GetResource returns a resource template with requirements populated.
	// Returns domain.ErrResourceNotFound when absent.
	GetResource(ctx context.Context, resourceID int) (*domain.VocationalResource, error)
	ListResources(ctx context.Context) ([]domain.VocationalResource, error)

	// ResourceAvailableAt reports whether the resource is enabled at a location.
	ResourceAvailableAt(ctx context.Context, resourceID, locationID int) (bool, error)

	// GetItemByID returns domain.ErrItemNotFound when absent.
	GetItemByID(ctx context.Context, itemID int) (*domain.Item, error)
	GetItemsByIDs(ctx context.Context, itemIDs []int) ([]domain.Item, error)
}

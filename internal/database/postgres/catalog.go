package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stormvale/vocation-engine/internal/domain"
)

// CatalogRepository serves resource and item templates from PostgreSQL.
type CatalogRepository struct {
	db *pgxpool.Pool
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(db *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// GetResource returns a resource template with its requirements populated.
func (r *CatalogRepository) GetResource(ctx context.Context, resourceID int) (*domain.VocationalResource, error) {
	var res domain.VocationalResource
	err := r.db.QueryRow(ctx, sqlSelectResource, resourceID).Scan(
		&res.ID, &res.ActionType, &res.OutputItemID, &res.YieldPerUnit,
		&res.XPPerUnit, &res.BaseUnitSeconds, &res.MinLevel, &res.Rarity,
		&res.RequiredBaitItemID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrResourceNotFound
		}
		return nil, fmt.Errorf("failed to get resource: %w", err)
	}

	rows, err := r.db.Query(ctx, sqlSelectRequirements, resourceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get requirements: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var req domain.VocationalRequirement
		if err := rows.Scan(&req.ItemID, &req.QuantityPerUnit); err != nil {
			return nil, fmt.Errorf("failed to scan requirement: %w", err)
		}
		res.Requirements = append(res.Requirements, req)
	}
	return &res, rows.Err()
}

// ListResources returns every resource template with requirements attached.
func (r *CatalogRepository) ListResources(ctx context.Context) ([]domain.VocationalResource, error) {
	rows, err := r.db.Query(ctx, sqlSelectAllResources)
	if err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}
	defer rows.Close()

	var resources []domain.VocationalResource
	index := make(map[int]int)
	for rows.Next() {
		var res domain.VocationalResource
		err := rows.Scan(
			&res.ID, &res.ActionType, &res.OutputItemID, &res.YieldPerUnit,
			&res.XPPerUnit, &res.BaseUnitSeconds, &res.MinLevel, &res.Rarity,
			&res.RequiredBaitItemID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan resource: %w", err)
		}
		index[res.ID] = len(resources)
		resources = append(resources, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	reqRows, err := r.db.Query(ctx, sqlSelectAllRequirements)
	if err != nil {
		return nil, fmt.Errorf("failed to list requirements: %w", err)
	}
	defer reqRows.Close()

	for reqRows.Next() {
		var resourceID int
		var req domain.VocationalRequirement
		if err := reqRows.Scan(&resourceID, &req.ItemID, &req.QuantityPerUnit); err != nil {
			return nil, fmt.Errorf("failed to scan requirement: %w", err)
		}
		if i, ok := index[resourceID]; ok {
			resources[i].Requirements = append(resources[i].Requirements, req)
		}
	}
	return resources, reqRows.Err()
}

// ResourceAvailableAt reports whether the resource is enabled at a location.
// Resources with no location rows are available everywhere.
func (r *CatalogRepository) ResourceAvailableAt(ctx context.Context, resourceID, locationID int) (bool, error) {
	var available bool
	if err := r.db.QueryRow(ctx, sqlResourceAvailableAt, resourceID, locationID).Scan(&available); err != nil {
		return false, fmt.Errorf("failed to check resource availability: %w", err)
	}
	return available, nil
}

// GetItemByID returns a single item template.
func (r *CatalogRepository) GetItemByID(ctx context.Context, itemID int) (*domain.Item, error) {
	var item domain.Item
	err := r.db.QueryRow(ctx, sqlSelectItem, itemID).Scan(
		&item.ID, &item.InternalName, &item.DisplayName, &item.Types,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return &item, nil
}

// GetItemsByIDs returns the item templates for the given IDs, skipping unknowns.
func (r *CatalogRepository) GetItemsByIDs(ctx context.Context, itemIDs []int) ([]domain.Item, error) {
	rows, err := r.db.Query(ctx, sqlSelectItemsByIDs, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get items: %w", err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		var item domain.Item
		if err := rows.Scan(&item.ID, &item.InternalName, &item.DisplayName, &item.Types); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

package repositories

import (
	"context"

	"katalog/internal/models"
)

// ProductRepository defines the interface for product data access.
//
// Every write validates its drafts before touching storage. Lookups with an
// ID that is not a well-formed object id report ErrProductNotFound.
type ProductRepository interface {
	Create(ctx context.Context, draft *models.ProductDraft) (*models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	UpdateByID(ctx context.Context, id string, draft *models.ProductDraft) (*models.Product, error)
	DeleteByID(ctx context.Context, id string) (*models.Product, error)
	// DeleteAll removes every product and reports how many were removed.
	DeleteAll(ctx context.Context) (int64, error)
	// InsertMany stores drafts in order. Either all drafts are stored or none.
	InsertMany(ctx context.Context, drafts []models.ProductDraft) ([]models.Product, error)
	Ping(ctx context.Context) error
}

package repositories

import (
	"context"
	"sync"

	"katalog/internal/models"
)

// MemoryProductRepository is an in-memory implementation of ProductRepository.
type MemoryProductRepository struct {
	products map[string]models.Product
	mu       sync.RWMutex
}

// NewMemoryProductRepository creates a new instance of MemoryProductRepository.
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{
		products: make(map[string]models.Product),
	}
}

// Create validates and stores a new product.
func (r *MemoryProductRepository) Create(_ context.Context, draft *models.ProductDraft) (*models.Product, error) {
	if err := ValidateDraft(draft); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	product := draft.ToProduct(newID())
	r.products[product.ID] = product
	return clone(product), nil
}

// GetByID returns a product by its ID.
func (r *MemoryProductRepository) GetByID(_ context.Context, id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	return clone(product), nil
}

// UpdateByID replaces every mutable field of an existing product.
func (r *MemoryProductRepository) UpdateByID(_ context.Context, id string, draft *models.ProductDraft) (*models.Product, error) {
	if !validID(id) {
		return nil, ErrProductNotFound
	}
	if err := ValidateDraft(draft); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return nil, ErrProductNotFound
	}
	product := draft.ToProduct(id)
	r.products[id] = product
	return clone(product), nil
}

// DeleteByID removes a product and returns it.
func (r *MemoryProductRepository) DeleteByID(_ context.Context, id string) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	delete(r.products, id)
	return clone(product), nil
}

// DeleteAll removes every product.
func (r *MemoryProductRepository) DeleteAll(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := int64(len(r.products))
	r.products = make(map[string]models.Product)
	return n, nil
}

// InsertMany validates every draft before storing any of them.
func (r *MemoryProductRepository) InsertMany(_ context.Context, drafts []models.ProductDraft) ([]models.Product, error) {
	if err := validateDrafts(drafts); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	created := make([]models.Product, 0, len(drafts))
	for i := range drafts {
		product := drafts[i].ToProduct(newID())
		r.products[product.ID] = product
		created = append(created, *clone(product))
	}
	return created, nil
}

// Ping always succeeds.
func (r *MemoryProductRepository) Ping(context.Context) error {
	return nil
}

// Count reports how many products are stored.
func (r *MemoryProductRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.products)
}

func clone(p models.Product) *models.Product {
	tags := make([]string, len(p.Tags))
	copy(tags, p.Tags)
	p.Tags = tags
	return &p
}

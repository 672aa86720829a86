package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"katalog/internal/models"
)

// productRecord is the relational row layout of a product.
type productRecord struct {
	ID          string   `gorm:"primaryKey;type:varchar(24)"`
	Name        string   `gorm:"not null"`
	Description string   `gorm:"not null"`
	Price       float64  `gorm:"not null"`
	Category    string   `gorm:"type:varchar(32);not null"`
	InStock     bool     `gorm:"not null"`
	Tags        []string `gorm:"serializer:json;type:text"`
}

func (productRecord) TableName() string { return "products" }

func toRecord(p models.Product) productRecord {
	return productRecord{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		InStock:     p.InStock,
		Tags:        p.Tags,
	}
}

func (rec productRecord) toProduct() models.Product {
	tags := rec.Tags
	if tags == nil {
		tags = []string{}
	}
	return models.Product{
		ID:          rec.ID,
		Name:        rec.Name,
		Description: rec.Description,
		Price:       rec.Price,
		Category:    rec.Category,
		InStock:     rec.InStock,
		Tags:        tags,
	}
}

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// Migrate creates or updates the products table.
func (r *GORMProductRepository) Migrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&productRecord{}); err != nil {
		return storeFailure("migrate products table", err)
	}
	return nil
}

// Create validates and inserts a new product.
func (r *GORMProductRepository) Create(ctx context.Context, draft *models.ProductDraft) (*models.Product, error) {
	if err := ValidateDraft(draft); err != nil {
		return nil, err
	}

	rec := toRecord(draft.ToProduct(newID()))
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, storeFailure("create product", err)
	}
	product := rec.toProduct()
	return &product, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	if !validID(id) {
		return nil, ErrProductNotFound
	}

	rec, err := r.find(r.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	product := rec.toProduct()
	return &product, nil
}

// UpdateByID replaces every mutable field of an existing product.
func (r *GORMProductRepository) UpdateByID(ctx context.Context, id string, draft *models.ProductDraft) (*models.Product, error) {
	if !validID(id) {
		return nil, ErrProductNotFound
	}
	if err := ValidateDraft(draft); err != nil {
		return nil, err
	}

	rec := toRecord(draft.ToProduct(id))
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := r.find(tx, id); err != nil {
			return err
		}
		if err := tx.Save(&rec).Error; err != nil {
			return storeFailure(fmt.Sprintf("update product %s", id), err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	product := rec.toProduct()
	return &product, nil
}

// DeleteByID deletes a product by its ID and returns the removed row.
func (r *GORMProductRepository) DeleteByID(ctx context.Context, id string) (*models.Product, error) {
	if !validID(id) {
		return nil, ErrProductNotFound
	}

	var deleted productRecord
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec, err := r.find(tx, id)
		if err != nil {
			return err
		}
		if err := tx.Delete(&productRecord{}, "id = ?", id).Error; err != nil {
			return storeFailure(fmt.Sprintf("delete product %s", id), err)
		}
		deleted = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	product := deleted.toProduct()
	return &product, nil
}

// DeleteAll removes every row of the products table.
func (r *GORMProductRepository) DeleteAll(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Where("1 = 1").Delete(&productRecord{})
	if res.Error != nil {
		return 0, storeFailure("delete all products", res.Error)
	}
	return res.RowsAffected, nil
}

// InsertMany inserts all drafts in a single transaction.
func (r *GORMProductRepository) InsertMany(ctx context.Context, drafts []models.ProductDraft) ([]models.Product, error) {
	if err := validateDrafts(drafts); err != nil {
		return nil, err
	}
	if len(drafts) == 0 {
		return []models.Product{}, nil
	}

	records := make([]productRecord, len(drafts))
	for i := range drafts {
		records[i] = toRecord(drafts[i].ToProduct(newID()))
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&records).Error
	})
	if err != nil {
		return nil, storeFailure("insert products", err)
	}

	products := make([]models.Product, len(records))
	for i, rec := range records {
		products[i] = rec.toProduct()
	}
	return products, nil
}

// Ping checks the underlying database connection.
func (r *GORMProductRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return storeFailure("get database handle", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return storeFailure("ping database", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (r *GORMProductRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (r *GORMProductRepository) find(db *gorm.DB, id string) (productRecord, error) {
	var rec productRecord
	if err := db.First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return productRecord{}, ErrProductNotFound
		}
		return productRecord{}, storeFailure(fmt.Sprintf("get product %s", id), err)
	}
	return rec, nil
}

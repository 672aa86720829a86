package models

// Product categories recognized by the catalog.
const (
	CategoryVehicles  = "vehicles"
	CategoryArmaments = "armaments"
	CategoryEquipment = "equipment"
)

// DefaultInStock is applied when a draft omits inStock.
const DefaultInStock = true

// Categories returns the recognized product categories.
func Categories() []string {
	return []string{CategoryVehicles, CategoryArmaments, CategoryEquipment}
}

// Product represents a stored catalog product.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	InStock     bool     `json:"inStock"`
	Tags        []string `json:"tags"`
}

// ProductDraft is the client-supplied shape of a product, without an ID.
// Price and InStock are pointers so that a missing field can be told apart
// from its zero value.
type ProductDraft struct {
	Name        string   `json:"name" validate:"required,notblank"`
	Description string   `json:"description" validate:"required,notblank"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Category    string   `json:"category" validate:"required,category"`
	InStock     *bool    `json:"inStock"`
	Tags        []string `json:"tags" validate:"omitempty,dive,notblank"`
}

// ToProduct builds a Product from the draft with the given ID, applying
// defaults for omitted fields. The draft must have been validated.
func (d *ProductDraft) ToProduct(id string) Product {
	inStock := DefaultInStock
	if d.InStock != nil {
		inStock = *d.InStock
	}
	var price float64
	if d.Price != nil {
		price = *d.Price
	}
	tags := make([]string, len(d.Tags))
	copy(tags, d.Tags)

	return Product{
		ID:          id,
		Name:        d.Name,
		Description: d.Description,
		Price:       price,
		Category:    d.Category,
		InStock:     inStock,
		Tags:        tags,
	}
}

// Float64 returns a pointer to v. Handy for building drafts.
func Float64(v float64) *float64 { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

package models

import "time"

// Product event types published after successful mutations.
const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
	EventProductsSeeded = "product.seeded"
)

// ProductEvent describes a change to the catalog.
type ProductEvent struct {
	Type       string    `json:"type"`
	ProductID  string    `json:"productId,omitempty"`
	Products   []Product `json:"products,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

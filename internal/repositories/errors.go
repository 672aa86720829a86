package repositories

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrProductNotFound is returned when an ID does not resolve to a product.
	ErrProductNotFound = errors.New("product not found")
	// ErrStoreUnavailable wraps connection and driver failures.
	ErrStoreUnavailable = errors.New("product store unavailable")
)

// ValidationError lists the draft fields that failed validation, keyed by
// their JSON name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "product validation failed: " + strings.Join(parts, "; ")
}

func storeFailure(op string, err error) error {
	return fmt.Errorf("failed to %s: %w: %w", op, ErrStoreUnavailable, err)
}

// newID returns a fresh object id in hex form. All stores use the same
// id shape so clients see identical ids regardless of the backend.
func newID() string {
	return primitive.NewObjectID().Hex()
}

func validID(id string) bool {
	return primitive.IsValidObjectID(id)
}

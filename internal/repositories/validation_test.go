package repositories_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"katalog/internal/models"
	"katalog/internal/repositories"
)

func TestValidateDraft(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *models.ProductDraft)
		fields map[string]string
	}{
		{
			name:   "valid",
			mutate: func(*models.ProductDraft) {},
		},
		{
			name:   "missing price",
			mutate: func(d *models.ProductDraft) { d.Price = nil },
			fields: map[string]string{"price": "is required"},
		},
		{
			name:   "negative price",
			mutate: func(d *models.ProductDraft) { d.Price = models.Float64(-0.01) },
			fields: map[string]string{"price": "must be greater than or equal to 0"},
		},
		{
			name:   "unknown category",
			mutate: func(d *models.ProductDraft) { d.Category = "food" },
			fields: map[string]string{"category": "must be one of vehicles, armaments, equipment"},
		},
		{
			name:   "empty tag",
			mutate: func(d *models.ProductDraft) { d.Tags = []string{""} },
			fields: map[string]string{"tags[0]": "must not be empty"},
		},
		{
			name:   "whitespace tag",
			mutate: func(d *models.ProductDraft) { d.Tags = []string{"gu-11", "  "} },
			fields: map[string]string{"tags[1]": "must not be empty"},
		},
		{
			name:   "whitespace name and description",
			mutate: func(d *models.ProductDraft) { d.Name, d.Description = "   ", "\t" },
			fields: map[string]string{"name": "is required", "description": "is required"},
		},
		{
			name:   "blank name and description",
			mutate: func(d *models.ProductDraft) { d.Name, d.Description = "", "" },
			fields: map[string]string{"name": "is required", "description": "is required"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := gunpodDraft()
			tt.mutate(draft)

			err := repositories.ValidateDraft(draft)
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}
			var vErr *repositories.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.fields, vErr.Fields)
		})
	}
}

func TestValidateDraftNil(t *testing.T) {
	var vErr *repositories.ValidationError
	require.ErrorAs(t, repositories.ValidateDraft(nil), &vErr)
	assert.Contains(t, vErr.Fields, "body")
}

func TestValidationErrorMessage(t *testing.T) {
	err := &repositories.ValidationError{Fields: map[string]string{
		"price": "is required",
		"name":  "is required",
	}}
	assert.Equal(t, "product validation failed: name: is required; price: is required", err.Error())
}

package repositories

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"katalog/internal/models"
)

var validate = newDraftValidator()

func newDraftValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON name so errors match the request body.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Whitespace-only text counts as missing.
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(fmt.Sprintf("register notblank validation: %v", err))
	}
	if err := v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return slices.Contains(models.Categories(), fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("register category validation: %v", err))
	}
	return v
}

// ValidateDraft checks a draft against the product rules shared by every
// store. It returns a *ValidationError describing each failing field.
func ValidateDraft(draft *models.ProductDraft) error {
	if draft == nil {
		return &ValidationError{Fields: map[string]string{"body": "is required"}}
	}

	err := validate.Struct(draft)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return &ValidationError{Fields: map[string]string{"body": err.Error()}}
	}

	fields := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		fields[e.Field()] = describe(e)
	}
	return &ValidationError{Fields: fields}
}

// validateDrafts validates a batch, prefixing failing fields with the index
// of their draft.
func validateDrafts(drafts []models.ProductDraft) error {
	fields := make(map[string]string)
	for i := range drafts {
		err := ValidateDraft(&drafts[i])
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			for k, msg := range vErr.Fields {
				fields[fmt.Sprintf("[%d].%s", i, k)] = msg
			}
		}
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func describe(e validator.FieldError) string {
	switch e.Tag() {
	case "required", "notblank":
		if strings.HasPrefix(e.Field(), "tags[") {
			return "must not be empty"
		}
		return "is required"
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", e.Param())
	case "category":
		return fmt.Sprintf("must be one of %s", strings.Join(models.Categories(), ", "))
	default:
		return fmt.Sprintf("failed on the '%s' rule", e.Tag())
	}
}

package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"katalog/internal/metrics"
	"katalog/internal/models"
	"katalog/internal/repositories"
)

// EventPublisher delivers product change events to interested consumers.
type EventPublisher interface {
	PublishProductEvent(ctx context.Context, event models.ProductEvent) error
}

type noopPublisher struct{}

func (noopPublisher) PublishProductEvent(context.Context, models.ProductEvent) error { return nil }

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher
	metrics   *metrics.Metrics
	tracer    trace.Tracer
	now       func() time.Time
}

// NewProductService creates a new ProductService. publisher and m may be nil.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher, m *metrics.Metrics) *ProductService {
	if publisher == nil {
		publisher = noopPublisher{}
	}
	return &ProductService{
		repo:      repo,
		publisher: publisher,
		metrics:   m,
		tracer:    otel.Tracer("katalog/internal/services"),
		now:       time.Now,
	}
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.GetProductByID",
		trace.WithAttributes(attribute.String("product.id", id)))
	defer span.End()

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.fail(ctx, span, "read", err)
		return nil, err
	}

	s.succeed(span, "read")
	return product, nil
}

// CreateProduct validates and stores a new product.
func (s *ProductService) CreateProduct(ctx context.Context, draft *models.ProductDraft) (*models.Product, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.CreateProduct")
	defer span.End()

	product, err := s.repo.Create(ctx, draft)
	if err != nil {
		s.fail(ctx, span, "create", err)
		return nil, err
	}

	span.SetAttributes(attribute.String("product.id", product.ID))
	s.succeed(span, "create")
	s.publish(ctx, models.EventProductCreated, product.ID, *product)
	return product, nil
}

// UpdateProduct replaces an existing product with the draft.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, draft *models.ProductDraft) (*models.Product, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.UpdateProduct",
		trace.WithAttributes(attribute.String("product.id", id)))
	defer span.End()

	product, err := s.repo.UpdateByID(ctx, id, draft)
	if err != nil {
		s.fail(ctx, span, "update", err)
		return nil, err
	}

	s.succeed(span, "update")
	s.publish(ctx, models.EventProductUpdated, product.ID, *product)
	return product, nil
}

// DeleteProduct deletes a product by its ID and returns the removed product.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) (*models.Product, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.DeleteProduct",
		trace.WithAttributes(attribute.String("product.id", id)))
	defer span.End()

	product, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		s.fail(ctx, span, "delete", err)
		return nil, err
	}

	s.succeed(span, "delete")
	s.publish(ctx, models.EventProductDeleted, product.ID, *product)
	return product, nil
}

// SeedProducts wipes the whole catalog and repopulates it with the sample
// products. The wipe cannot be undone.
func (s *ProductService) SeedProducts(ctx context.Context) ([]models.Product, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.SeedProducts")
	defer span.End()

	removed, err := s.repo.DeleteAll(ctx)
	if err != nil {
		s.fail(ctx, span, "seed", err)
		return nil, err
	}
	zerolog.Ctx(ctx).Info().Int64("removed", removed).Msg("Cleared product collection for seeding")

	products, err := s.repo.InsertMany(ctx, SampleProducts())
	if err != nil {
		s.fail(ctx, span, "seed", err)
		return nil, err
	}

	span.SetAttributes(
		attribute.Int64("product.removed", removed),
		attribute.Int("product.count", len(products)),
	)
	s.succeed(span, "seed")
	s.publish(ctx, models.EventProductsSeeded, "", products...)
	return products, nil
}

func (s *ProductService) succeed(span trace.Span, operation string) {
	s.metrics.ObserveOperation(operation, metrics.ResultSuccess)
	span.SetStatus(codes.Ok, "")
}

func (s *ProductService) fail(ctx context.Context, span trace.Span, operation string, err error) {
	logger := zerolog.Ctx(ctx)
	var vErr *repositories.ValidationError

	switch {
	case errors.Is(err, repositories.ErrProductNotFound):
		s.metrics.ObserveOperation(operation, metrics.ResultNotFound)
		logger.Debug().Str("operation", operation).Msg("Product not found")
	case errors.As(err, &vErr):
		s.metrics.ObserveOperation(operation, metrics.ResultInvalid)
		logger.Debug().Str("operation", operation).Interface("fields", vErr.Fields).Msg("Product validation failed")
	default:
		s.metrics.ObserveOperation(operation, metrics.ResultFailure)
		logger.Error().Err(err).Str("operation", operation).Msg("Product operation failed")
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

func (s *ProductService) publish(ctx context.Context, eventType, productID string, products ...models.Product) {
	event := models.ProductEvent{
		Type:       eventType,
		ProductID:  productID,
		Products:   products,
		OccurredAt: s.now().UTC(),
	}
	if err := s.publisher.PublishProductEvent(ctx, event); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("event", eventType).Msg("Failed to publish product event")
	}
}

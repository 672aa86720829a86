package services_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"katalog/internal/metrics"
	"katalog/internal/models"
	"katalog/internal/repositories"
	"katalog/internal/services"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, draft *models.ProductDraft) (*models.Product, error) {
	args := m.Called(ctx, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) UpdateByID(ctx context.Context, id string, draft *models.ProductDraft) (*models.Product, error) {
	args := m.Called(ctx, id, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) DeleteByID(ctx context.Context, id string) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) DeleteAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) InsertMany(ctx context.Context, drafts []models.ProductDraft) ([]models.Product, error) {
	args := m.Called(ctx, drafts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockPublisher records published events.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishProductEvent(ctx context.Context, event models.ProductEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func eventOfType(eventType string) interface{} {
	return mock.MatchedBy(func(e models.ProductEvent) bool { return e.Type == eventType })
}

func operationCount(t *testing.T, reg *prometheus.Registry, operation, result string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != "katalog_product_operations_total" {
			continue
		}
		for _, metric := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range metric.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			if labels["operation"] == operation && labels["result"] == result {
				return metric.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func TestProductService_GetProductByID(t *testing.T) {
	mockRepo := new(MockProductRepository)
	reg := prometheus.NewRegistry()
	service := services.NewProductService(mockRepo, nil, metrics.New(reg))
	ctx := context.Background()

	expectedProduct := &models.Product{ID: "66f1c0ffee0000000000aaaa", Name: "GU-11 Gunpod", Price: 5500}

	// Test successful retrieval
	mockRepo.On("GetByID", mock.Anything, expectedProduct.ID).Return(expectedProduct, nil).Once()
	product, err := service.GetProductByID(ctx, expectedProduct.ID)
	assert.NoError(t, err)
	assert.Equal(t, expectedProduct, product)

	// Test product not found
	mockRepo.On("GetByID", mock.Anything, "99").Return(nil, repositories.ErrProductNotFound).Once()
	product, err = service.GetProductByID(ctx, "99")
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	assert.Nil(t, product)
	mockRepo.AssertExpectations(t)

	assert.Equal(t, 1.0, operationCount(t, reg, "read", metrics.ResultSuccess))
	assert.Equal(t, 1.0, operationCount(t, reg, "read", metrics.ResultNotFound))
}

func TestProductService_CreateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	publisher := new(MockPublisher)
	reg := prometheus.NewRegistry()
	service := services.NewProductService(mockRepo, publisher, metrics.New(reg))
	ctx := context.Background()

	draft := &models.ProductDraft{Name: "Gunpod", Description: "x", Price: models.Float64(5500), Category: models.CategoryArmaments}
	created := &models.Product{ID: "66f1c0ffee0000000000aaaa", Name: "Gunpod", Description: "x", Price: 5500, Category: models.CategoryArmaments, InStock: true, Tags: []string{}}

	// Test successful creation
	mockRepo.On("Create", mock.Anything, draft).Return(created, nil).Once()
	publisher.On("PublishProductEvent", mock.Anything, mock.MatchedBy(func(e models.ProductEvent) bool {
		return e.Type == models.EventProductCreated && e.ProductID == created.ID && len(e.Products) == 1
	})).Return(nil).Once()

	product, err := service.CreateProduct(ctx, draft)
	assert.NoError(t, err)
	assert.Equal(t, created, product)

	// Test validation failure
	invalid := &repositories.ValidationError{Fields: map[string]string{"price": "is required"}}
	mockRepo.On("Create", mock.Anything, draft).Return(nil, invalid).Once()
	product, err = service.CreateProduct(ctx, draft)
	assert.Nil(t, product)
	var vErr *repositories.ValidationError
	assert.ErrorAs(t, err, &vErr)

	// Test creation failure (e.g., database error)
	mockRepo.On("Create", mock.Anything, draft).Return(nil, fmt.Errorf("database error: %w", repositories.ErrStoreUnavailable)).Once()
	_, err = service.CreateProduct(ctx, draft)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database error")

	mockRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
	assert.Equal(t, 1.0, operationCount(t, reg, "create", metrics.ResultSuccess))
	assert.Equal(t, 1.0, operationCount(t, reg, "create", metrics.ResultInvalid))
	assert.Equal(t, 1.0, operationCount(t, reg, "create", metrics.ResultFailure))
}

func TestProductService_UpdateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	publisher := new(MockPublisher)
	service := services.NewProductService(mockRepo, publisher, nil)
	ctx := context.Background()

	draft := &models.ProductDraft{Name: "Gunpod Mk II", Description: "x", Price: models.Float64(6000), Category: models.CategoryArmaments}
	updated := &models.Product{ID: "66f1c0ffee0000000000aaaa", Name: "Gunpod Mk II", Description: "x", Price: 6000, Category: models.CategoryArmaments, InStock: true, Tags: []string{}}

	// Test successful update
	mockRepo.On("UpdateByID", mock.Anything, updated.ID, draft).Return(updated, nil).Once()
	publisher.On("PublishProductEvent", mock.Anything, eventOfType(models.EventProductUpdated)).Return(nil).Once()
	product, err := service.UpdateProduct(ctx, updated.ID, draft)
	assert.NoError(t, err)
	assert.Equal(t, updated, product)

	// Test update failure (e.g., product not found in repo)
	mockRepo.On("UpdateByID", mock.Anything, "000000000000000000000000", draft).Return(nil, repositories.ErrProductNotFound).Once()
	_, err = service.UpdateProduct(ctx, "000000000000000000000000", draft)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)

	mockRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestProductService_DeleteProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	publisher := new(MockPublisher)
	service := services.NewProductService(mockRepo, publisher, nil)
	ctx := context.Background()

	deleted := &models.Product{ID: "66f1c0ffee0000000000aaaa", Name: "Gunpod"}

	// Test successful deletion
	mockRepo.On("DeleteByID", mock.Anything, deleted.ID).Return(deleted, nil).Once()
	publisher.On("PublishProductEvent", mock.Anything, eventOfType(models.EventProductDeleted)).Return(nil).Once()
	product, err := service.DeleteProduct(ctx, deleted.ID)
	assert.NoError(t, err)
	assert.Equal(t, deleted, product)

	// Test deletion failure (e.g., product not found)
	mockRepo.On("DeleteByID", mock.Anything, "99").Return(nil, repositories.ErrProductNotFound).Once()
	_, err = service.DeleteProduct(ctx, "99")
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)

	mockRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestProductService_PublishFailureDoesNotFailRequest(t *testing.T) {
	mockRepo := new(MockProductRepository)
	publisher := new(MockPublisher)
	service := services.NewProductService(mockRepo, publisher, nil)

	deleted := &models.Product{ID: "66f1c0ffee0000000000aaaa"}
	mockRepo.On("DeleteByID", mock.Anything, deleted.ID).Return(deleted, nil).Once()
	publisher.On("PublishProductEvent", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()

	product, err := service.DeleteProduct(context.Background(), deleted.ID)
	assert.NoError(t, err)
	assert.Equal(t, deleted, product)
	publisher.AssertExpectations(t)
}

func TestProductService_SeedProducts(t *testing.T) {
	repo := repositories.NewMemoryProductRepository()
	publisher := new(MockPublisher)
	publisher.On("PublishProductEvent", mock.Anything, eventOfType(models.EventProductsSeeded)).Return(nil).Twice()
	service := services.NewProductService(repo, publisher, nil)
	ctx := context.Background()

	// Pre-existing data must be wiped
	_, err := repo.Create(ctx, &services.SampleProducts()[0])
	require.NoError(t, err)

	first, err := service.SeedProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, first, 6)
	assert.Equal(t, 6, repo.Count())

	second, err := service.SeedProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, second, 6)
	assert.Equal(t, 6, repo.Count())

	for i := range first {
		assert.Equal(t, first[i].Name, second[i].Name)
		assert.NotEqual(t, first[i].ID, second[i].ID)

		_, err := repo.GetByID(ctx, first[i].ID)
		assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	}
	publisher.AssertExpectations(t)
}

func TestProductService_SeedProductsStoreFailure(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil, nil)

	mockRepo.On("DeleteAll", mock.Anything).Return(int64(0), repositories.ErrStoreUnavailable).Once()

	products, err := service.SeedProducts(context.Background())
	assert.Nil(t, products)
	assert.ErrorIs(t, err, repositories.ErrStoreUnavailable)
	mockRepo.AssertNotCalled(t, "InsertMany", mock.Anything, mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestSampleProductsAreValid(t *testing.T) {
	samples := services.SampleProducts()
	require.Len(t, samples, 6)
	for i := range samples {
		assert.NoError(t, repositories.ValidateDraft(&samples[i]), samples[i].Name)
	}
}

func TestSampleProductsText(t *testing.T) {
	samples := services.SampleProducts()
	assert.Equal(t, "VF-1J Armored Valkyrie", samples[3].Name)
	assert.Contains(t, samples[0].Tags[0], "RÖV-20")
	for _, p := range samples {
		for _, tag := range p.Tags {
			assert.Equal(t, strings.TrimSpace(tag), tag, p.Name)
		}
	}
}

func TestSampleProductsReturnsFreshSlice(t *testing.T) {
	a := services.SampleProducts()
	a[0].Name = "changed"
	assert.Equal(t, "VF-1S Valkyrie", services.SampleProducts()[0].Name)
}

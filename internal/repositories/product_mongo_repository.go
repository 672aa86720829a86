package repositories

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"katalog/internal/models"
)

// ProductCollection is the name of the MongoDB collection holding products.
const ProductCollection = "products"

type productDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	Price       float64            `bson:"price"`
	Category    string             `bson:"category"`
	InStock     bool               `bson:"inStock"`
	Tags        []string           `bson:"tags"`
}

func toDocument(p models.Product) productDocument {
	return productDocument{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		InStock:     p.InStock,
		Tags:        p.Tags,
	}
}

func (doc productDocument) toProduct() models.Product {
	tags := doc.Tags
	if tags == nil {
		tags = []string{}
	}
	return models.Product{
		ID:          doc.ID.Hex(),
		Name:        doc.Name,
		Description: doc.Description,
		Price:       doc.Price,
		Category:    doc.Category,
		InStock:     doc.InStock,
		Tags:        tags,
	}
}

// MongoProductRepository is a MongoDB implementation of ProductRepository.
type MongoProductRepository struct {
	coll *mongo.Collection
}

// NewMongoProductRepository creates a repository over the given collection.
func NewMongoProductRepository(coll *mongo.Collection) *MongoProductRepository {
	return &MongoProductRepository{
		coll: coll,
	}
}

// Create validates and inserts a new product document.
func (r *MongoProductRepository) Create(ctx context.Context, draft *models.ProductDraft) (*models.Product, error) {
	if err := ValidateDraft(draft); err != nil {
		return nil, err
	}

	doc := toDocument(draft.ToProduct(""))
	doc.ID = primitive.NewObjectID()
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, storeFailure("insert product", err)
	}
	product := doc.toProduct()
	return &product, nil
}

// GetByID finds a product document by its object id.
func (r *MongoProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrProductNotFound
	}

	var doc productDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, notFoundOr(err, fmt.Sprintf("get product %s", id))
	}
	product := doc.toProduct()
	return &product, nil
}

// UpdateByID replaces every mutable field and returns the updated document.
func (r *MongoProductRepository) UpdateByID(ctx context.Context, id string, draft *models.ProductDraft) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrProductNotFound
	}
	if err := ValidateDraft(draft); err != nil {
		return nil, err
	}

	update := bson.M{"$set": toDocument(draft.ToProduct(""))}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc productDocument
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc); err != nil {
		return nil, notFoundOr(err, fmt.Sprintf("update product %s", id))
	}
	product := doc.toProduct()
	return &product, nil
}

// DeleteByID removes a product document and returns it.
func (r *MongoProductRepository) DeleteByID(ctx context.Context, id string) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrProductNotFound
	}

	var doc productDocument
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, notFoundOr(err, fmt.Sprintf("delete product %s", id))
	}
	product := doc.toProduct()
	return &product, nil
}

// DeleteAll removes every document of the collection.
func (r *MongoProductRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.D{})
	if err != nil {
		return 0, storeFailure("delete all products", err)
	}
	return res.DeletedCount, nil
}

// InsertMany inserts drafts in order. If the server rejects part of the
// batch, the documents already written are removed again.
func (r *MongoProductRepository) InsertMany(ctx context.Context, drafts []models.ProductDraft) ([]models.Product, error) {
	if err := validateDrafts(drafts); err != nil {
		return nil, err
	}
	if len(drafts) == 0 {
		return []models.Product{}, nil
	}

	docs := make([]productDocument, len(drafts))
	batch := make([]interface{}, len(drafts))
	ids := make([]primitive.ObjectID, len(drafts))
	for i := range drafts {
		docs[i] = toDocument(drafts[i].ToProduct(""))
		docs[i].ID = primitive.NewObjectID()
		ids[i] = docs[i].ID
		batch[i] = docs[i]
	}

	opts := options.InsertMany().SetOrdered(true)
	if _, err := r.coll.InsertMany(ctx, batch, opts); err != nil {
		cleanupCtx := context.WithoutCancel(ctx)
		if _, delErr := r.coll.DeleteMany(cleanupCtx, bson.M{"_id": bson.M{"$in": ids}}); delErr != nil {
			return nil, storeFailure("insert products", errors.Join(err, delErr))
		}
		return nil, storeFailure("insert products", err)
	}

	products := make([]models.Product, len(docs))
	for i, doc := range docs {
		products[i] = doc.toProduct()
	}
	return products, nil
}

// Ping checks that the primary is reachable.
func (r *MongoProductRepository) Ping(ctx context.Context) error {
	if err := r.coll.Database().Client().Ping(ctx, readpref.Primary()); err != nil {
		return storeFailure("ping MongoDB", err)
	}
	return nil
}

func notFoundOr(err error, op string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrProductNotFound
	}
	return storeFailure(op, err)
}

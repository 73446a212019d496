package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/supplyhub/marketplace-api/internal/core/domain"
	"github.com/supplyhub/marketplace-api/internal/core/ports"
)

const productCollection = "products"

type MongoProductRepository struct {
	coll *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *MongoProductRepository {
	return &MongoProductRepository{coll: db.Collection(productCollection)}
}

type mongoProduct struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	ProducerID    string             `bson:"producer_id"`
	Name          string             `bson:"name"`
	Description   string             `bson:"description"`
	Category      string             `bson:"category"`
	Price         float64            `bson:"price"`
	DiscountPrice float64            `bson:"discount_price,omitempty"`
	ImageURLs     []string           `bson:"image_urls,omitempty"`
	Badges        []string           `bson:"badges,omitempty"`
	CreatedAt     int64              `bson:"created_at"`
	UpdatedAt     int64              `bson:"updated_at"`
}

func (r *MongoProductRepository) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	doc := toMongoProduct(product)

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}

	created := *product
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrProductNotFound
	}

	var mp mongoProduct
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mp); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return mp.toDomain(), nil
}

func (r *MongoProductRepository) List(ctx context.Context, filter ports.ProductFilter) ([]domain.Product, int64, error) {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.ProducerID != "" {
		query["producer_id"] = filter.ProducerID
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	order := -1
	if filter.SortAsc {
		order = 1
	}
	opts := options.Find().
		SetSort(bson.D{{Key: filter.SortBy, Value: order}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer cur.Close(ctx)

	var products []domain.Product
	for cur.Next(ctx) {
		var mp mongoProduct
		if err := cur.Decode(&mp); err != nil {
			return nil, 0, fmt.Errorf("decode product: %w", err)
		}
		products = append(products, *mp.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate products: %w", err)
	}
	return products, total, nil
}

func (r *MongoProductRepository) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(product.ID)
	if err != nil {
		return nil, domain.ErrProductNotFound
	}

	doc := toMongoProduct(product)
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrProductNotFound
	}
	return product, nil
}

func (r *MongoProductRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrProductNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func toMongoProduct(p *domain.Product) mongoProduct {
	return mongoProduct{
		ProducerID:    p.ProducerID,
		Name:          p.Name,
		Description:   p.Description,
		Category:      p.Category,
		Price:         p.Price,
		DiscountPrice: p.DiscountPrice,
		ImageURLs:     p.ImageURLs,
		Badges:        p.Badges,
		CreatedAt:     p.CreatedAt.Unix(),
		UpdatedAt:     p.UpdatedAt.Unix(),
	}
}

func (mp *mongoProduct) toDomain() *domain.Product {
	return &domain.Product{
		ID:            mp.ID.Hex(),
		ProducerID:    mp.ProducerID,
		Name:          mp.Name,
		Description:   mp.Description,
		Category:      mp.Category,
		Price:         mp.Price,
		DiscountPrice: mp.DiscountPrice,
		ImageURLs:     mp.ImageURLs,
		Badges:        mp.Badges,
		CreatedAt:     unixToTime(mp.CreatedAt),
		UpdatedAt:     unixToTime(mp.UpdatedAt),
	}
}

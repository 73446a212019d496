package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/supplyhub/marketplace-api/internal/core/domain"
)

const reviewCollection = "reviews"

type MongoReviewRepository struct {
	coll *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) *MongoReviewRepository {
	return &MongoReviewRepository{coll: db.Collection(reviewCollection)}
}

type mongoReview struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	ProductID string             `bson:"product_id"`
	UserID    string             `bson:"user_id"`
	UserName  string             `bson:"user_name"`
	Rating    int                `bson:"rating"`
	Comment   string             `bson:"comment,omitempty"`
	CreatedAt int64              `bson:"created_at"`
}

func (r *MongoReviewRepository) Create(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	doc := mongoReview{
		ProductID: review.ProductID,
		UserID:    review.UserID,
		UserName:  review.UserName,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert review: %w", err)
	}

	created := *review
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoReviewRepository) FindByID(ctx context.Context, id string) (*domain.Review, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrReviewNotFound
	}

	var mr mongoReview
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mr); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrReviewNotFound
		}
		return nil, fmt.Errorf("find review: %w", err)
	}
	return mr.toDomain(), nil
}

func (r *MongoReviewRepository) ListByProduct(ctx context.Context, productID string, page, limit int) ([]domain.Review, int64, error) {
	query := bson.M{"product_id": productID}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count reviews: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list reviews: %w", err)
	}
	defer cur.Close(ctx)

	var reviews []domain.Review
	for cur.Next(ctx) {
		var mr mongoReview
		if err := cur.Decode(&mr); err != nil {
			return nil, 0, fmt.Errorf("decode review: %w", err)
		}
		reviews = append(reviews, *mr.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate reviews: %w", err)
	}
	return reviews, total, nil
}

func (r *MongoReviewRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrReviewNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrReviewNotFound
	}
	return nil
}

func (mr *mongoReview) toDomain() *domain.Review {
	return &domain.Review{
		ID:        mr.ID.Hex(),
		ProductID: mr.ProductID,
		UserID:    mr.UserID,
		UserName:  mr.UserName,
		Rating:    mr.Rating,
		Comment:   mr.Comment,
		CreatedAt: unixToTime(mr.CreatedAt),
	}
}

package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/reviewhub/catalog-api/internal/core/domain"
	"github.com/reviewhub/catalog-api/internal/core/ports"
)

const (
	reviewsCollection  = "reviews"
	commentsCollection = "comments"
)

type MongoReviewRepository struct {
	coll *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) *MongoReviewRepository {
	return &MongoReviewRepository{coll: db.Collection(reviewsCollection)}
}

type mongoReview struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	TitleID        string             `bson:"title_id"`
	AuthorID       string             `bson:"author_id"`
	AuthorUsername string             `bson:"author_username"`
	Text           string             `bson:"text"`
	Score          int                `bson:"score"`
	PubDate        int64              `bson:"pub_date"`
}

func (r *MongoReviewRepository) ListByTitle(ctx context.Context, titleID string, params ports.ListParams) ([]domain.Review, int64, error) {
	filter := bson.M{"title_id": titleID}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count reviews: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "pub_date", Value: -1}}).
		SetSkip(params.Offset()).
		SetLimit(int64(params.Limit))

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list reviews: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoReview
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode reviews: %w", err)
	}

	items := make([]domain.Review, len(docs))
	for i, d := range docs {
		items[i] = *toDomainReview(d)
	}
	return items, total, nil
}

func (r *MongoReviewRepository) FindByID(ctx context.Context, titleID, reviewID string) (*domain.Review, error) {
	oid, err := primitive.ObjectIDFromHex(reviewID)
	if err != nil {
		return nil, domain.ErrReviewNotFound
	}

	var d mongoReview
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid, "title_id": titleID}).Decode(&d); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrReviewNotFound
		}
		return nil, fmt.Errorf("find review: %w", err)
	}
	return toDomainReview(d), nil
}

func (r *MongoReviewRepository) Create(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	doc := mongoReview{
		TitleID:        review.TitleID,
		AuthorID:       review.AuthorID,
		AuthorUsername: review.AuthorUsername,
		Text:           review.Text,
		Score:          review.Score,
		PubDate:        review.PubDate.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrReviewExists
		}
		return nil, fmt.Errorf("insert review: %w", err)
	}
	created := *review
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *MongoReviewRepository) Update(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	oid, err := primitive.ObjectIDFromHex(review.ID)
	if err != nil {
		return nil, domain.ErrReviewNotFound
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"text": review.Text, "score": review.Score}},
	)
	if err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrReviewNotFound
	}
	return r.FindByID(ctx, review.TitleID, review.ID)
}

func (r *MongoReviewRepository) Delete(ctx context.Context, titleID, reviewID string) error {
	oid, err := primitive.ObjectIDFromHex(reviewID)
	if err != nil {
		return domain.ErrReviewNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid, "title_id": titleID})
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrReviewNotFound
	}
	return nil
}

func (r *MongoReviewRepository) AverageScore(ctx context.Context, titleID string) (*float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"title_id": titleID}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "avg": bson.M{"$avg": "$score"}}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("average score: %w", err)
	}
	defer cur.Close(ctx)

	var results []struct {
		Avg float64 `bson:"avg"`
	}
	if err := cur.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("decode average: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}
	avg := results[0].Avg
	return &avg, nil
}

func toDomainReview(d mongoReview) *domain.Review {
	return &domain.Review{
		ID:             d.ID.Hex(),
		TitleID:        d.TitleID,
		AuthorID:       d.AuthorID,
		AuthorUsername: d.AuthorUsername,
		Text:           d.Text,
		Score:          d.Score,
		PubDate:        unixToTime(d.PubDate),
	}
}

// ── Comments ──────────────────────────────────────────────────────────────────

type MongoCommentRepository struct {
	coll *mongo.Collection
}

func NewCommentRepository(db *mongo.Database) *MongoCommentRepository {
	return &MongoCommentRepository{coll: db.Collection(commentsCollection)}
}

type mongoComment struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	ReviewID       string             `bson:"review_id"`
	AuthorID       string             `bson:"author_id"`
	AuthorUsername string             `bson:"author_username"`
	Text           string             `bson:"text"`
	PubDate        int64              `bson:"pub_date"`
}

func (r *MongoCommentRepository) ListByReview(ctx context.Context, reviewID string, params ports.ListParams) ([]domain.Comment, int64, error) {
	filter := bson.M{"review_id": reviewID}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count comments: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "pub_date", Value: 1}}).
		SetSkip(params.Offset()).
		SetLimit(int64(params.Limit))

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list comments: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoComment
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode comments: %w", err)
	}

	items := make([]domain.Comment, len(docs))
	for i, d := range docs {
		items[i] = *toDomainComment(d)
	}
	return items, total, nil
}

func (r *MongoCommentRepository) FindByID(ctx context.Context, reviewID, commentID string) (*domain.Comment, error) {
	oid, err := primitive.ObjectIDFromHex(commentID)
	if err != nil {
		return nil, domain.ErrCommentNotFound
	}

	var d mongoComment
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid, "review_id": reviewID}).Decode(&d); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrCommentNotFound
		}
		return nil, fmt.Errorf("find comment: %w", err)
	}
	return toDomainComment(d), nil
}

func (r *MongoCommentRepository) Create(ctx context.Context, comment *domain.Comment) (*domain.Comment, error) {
	doc := mongoComment{
		ReviewID:       comment.ReviewID,
		AuthorID:       comment.AuthorID,
		AuthorUsername: comment.AuthorUsername,
		Text:           comment.Text,
		PubDate:        comment.PubDate.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}
	created := *comment
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *MongoCommentRepository) Update(ctx context.Context, comment *domain.Comment) (*domain.Comment, error) {
	oid, err := primitive.ObjectIDFromHex(comment.ID)
	if err != nil {
		return nil, domain.ErrCommentNotFound
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"text": comment.Text}},
	)
	if err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrCommentNotFound
	}
	return r.FindByID(ctx, comment.ReviewID, comment.ID)
}

func (r *MongoCommentRepository) Delete(ctx context.Context, reviewID, commentID string) error {
	oid, err := primitive.ObjectIDFromHex(commentID)
	if err != nil {
		return domain.ErrCommentNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid, "review_id": reviewID})
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCommentNotFound
	}
	return nil
}

func toDomainComment(d mongoComment) *domain.Comment {
	return &domain.Comment{
		ID:             d.ID.Hex(),
		ReviewID:       d.ReviewID,
		AuthorID:       d.AuthorID,
		AuthorUsername: d.AuthorUsername,
		Text:           d.Text,
		PubDate:        unixToTime(d.PubDate),
	}
}

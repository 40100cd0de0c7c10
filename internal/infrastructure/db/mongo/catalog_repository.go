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
	categoriesCollection = "categories"
	genresCollection     = "genres"
	titlesCollection     = "titles"
)

// slugDoc backs both categories and genres; the two collections share a shape.
type slugDoc struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	Name string             `bson:"name"`
	Slug string             `bson:"slug"`
}

// listSlugDocs runs the shared search/paginate query for slug collections.
func listSlugDocs(ctx context.Context, coll *mongo.Collection, params ports.ListParams) ([]slugDoc, int64, error) {
	filter := bson.M{}
	if params.Search != "" {
		filter["name"] = bson.M{"$regex": params.Search, "$options": "i"}
	}

	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", coll.Name(), err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "slug", Value: 1}}).
		SetSkip(params.Offset()).
		SetLimit(int64(params.Limit))

	cur, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list %s: %w", coll.Name(), err)
	}
	defer cur.Close(ctx)

	var docs []slugDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode %s: %w", coll.Name(), err)
	}
	return docs, total, nil
}

// ── Categories ────────────────────────────────────────────────────────────────

type MongoCategoryRepository struct {
	coll *mongo.Collection
}

func NewCategoryRepository(db *mongo.Database) *MongoCategoryRepository {
	return &MongoCategoryRepository{coll: db.Collection(categoriesCollection)}
}

func (r *MongoCategoryRepository) List(ctx context.Context, params ports.ListParams) ([]domain.Category, int64, error) {
	docs, total, err := listSlugDocs(ctx, r.coll, params)
	if err != nil {
		return nil, 0, err
	}
	items := make([]domain.Category, len(docs))
	for i, d := range docs {
		items[i] = domain.Category{ID: d.ID.Hex(), Name: d.Name, Slug: d.Slug}
	}
	return items, total, nil
}

func (r *MongoCategoryRepository) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	res, err := r.coll.InsertOne(ctx, slugDoc{Name: category.Name, Slug: category.Slug})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrSlugExists
		}
		return nil, fmt.Errorf("insert category: %w", err)
	}
	created := *category
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *MongoCategoryRepository) FindBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	var d slugDoc
	if err := r.coll.FindOne(ctx, bson.M{"slug": slug}).Decode(&d); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("find category: %w", err)
	}
	return &domain.Category{ID: d.ID.Hex(), Name: d.Name, Slug: d.Slug}, nil
}

func (r *MongoCategoryRepository) Delete(ctx context.Context, slug string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"slug": slug})
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

// ── Genres ────────────────────────────────────────────────────────────────────

type MongoGenreRepository struct {
	coll *mongo.Collection
}

func NewGenreRepository(db *mongo.Database) *MongoGenreRepository {
	return &MongoGenreRepository{coll: db.Collection(genresCollection)}
}

func (r *MongoGenreRepository) List(ctx context.Context, params ports.ListParams) ([]domain.Genre, int64, error) {
	docs, total, err := listSlugDocs(ctx, r.coll, params)
	if err != nil {
		return nil, 0, err
	}
	items := make([]domain.Genre, len(docs))
	for i, d := range docs {
		items[i] = domain.Genre{ID: d.ID.Hex(), Name: d.Name, Slug: d.Slug}
	}
	return items, total, nil
}

func (r *MongoGenreRepository) Create(ctx context.Context, genre *domain.Genre) (*domain.Genre, error) {
	res, err := r.coll.InsertOne(ctx, slugDoc{Name: genre.Name, Slug: genre.Slug})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrSlugExists
		}
		return nil, fmt.Errorf("insert genre: %w", err)
	}
	created := *genre
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *MongoGenreRepository) FindBySlug(ctx context.Context, slug string) (*domain.Genre, error) {
	var d slugDoc
	if err := r.coll.FindOne(ctx, bson.M{"slug": slug}).Decode(&d); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrGenreNotFound
		}
		return nil, fmt.Errorf("find genre: %w", err)
	}
	return &domain.Genre{ID: d.ID.Hex(), Name: d.Name, Slug: d.Slug}, nil
}

func (r *MongoGenreRepository) Delete(ctx context.Context, slug string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"slug": slug})
	if err != nil {
		return fmt.Errorf("delete genre: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrGenreNotFound
	}
	return nil
}

// ── Titles ────────────────────────────────────────────────────────────────────

type MongoTitleRepository struct {
	coll *mongo.Collection
}

func NewTitleRepository(db *mongo.Database) *MongoTitleRepository {
	return &MongoTitleRepository{coll: db.Collection(titlesCollection)}
}

type mongoTitle struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Year         int                `bson:"year"`
	Description  string             `bson:"description,omitempty"`
	CategorySlug string             `bson:"category_slug,omitempty"`
	GenreSlugs   []string           `bson:"genre_slugs,omitempty"`
}

func (r *MongoTitleRepository) List(ctx context.Context, filter ports.TitleFilter, params ports.ListParams) ([]domain.Title, int64, error) {
	query := bson.M{}
	if filter.CategorySlug != "" {
		query["category_slug"] = filter.CategorySlug
	}
	if filter.GenreSlug != "" {
		query["genre_slugs"] = filter.GenreSlug
	}
	if filter.Name != "" {
		query["name"] = bson.M{"$regex": filter.Name, "$options": "i"}
	}
	if filter.Year != 0 {
		query["year"] = filter.Year
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count titles: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetSkip(params.Offset()).
		SetLimit(int64(params.Limit))

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list titles: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoTitle
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode titles: %w", err)
	}

	items := make([]domain.Title, len(docs))
	for i, d := range docs {
		items[i] = *toDomainTitle(d)
	}
	return items, total, nil
}

func (r *MongoTitleRepository) FindByID(ctx context.Context, id string) (*domain.Title, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTitleNotFound
	}

	var d mongoTitle
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrTitleNotFound
		}
		return nil, fmt.Errorf("find title: %w", err)
	}
	return toDomainTitle(d), nil
}

func (r *MongoTitleRepository) Create(ctx context.Context, title *domain.Title) (*domain.Title, error) {
	doc := mongoTitle{
		Name:         title.Name,
		Year:         title.Year,
		Description:  title.Description,
		CategorySlug: title.CategorySlug,
		GenreSlugs:   title.GenreSlugs,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert title: %w", err)
	}
	created := *title
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *MongoTitleRepository) Update(ctx context.Context, title *domain.Title) (*domain.Title, error) {
	oid, err := primitive.ObjectIDFromHex(title.ID)
	if err != nil {
		return nil, domain.ErrTitleNotFound
	}

	set := bson.M{
		"name":          title.Name,
		"year":          title.Year,
		"description":   title.Description,
		"category_slug": title.CategorySlug,
		"genre_slugs":   title.GenreSlugs,
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("update title: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrTitleNotFound
	}
	return r.FindByID(ctx, title.ID)
}

func (r *MongoTitleRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrTitleNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete title: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTitleNotFound
	}
	return nil
}

func toDomainTitle(d mongoTitle) *domain.Title {
	return &domain.Title{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Year:         d.Year,
		Description:  d.Description,
		CategorySlug: d.CategorySlug,
		GenreSlugs:   d.GenreSlugs,
	}
}

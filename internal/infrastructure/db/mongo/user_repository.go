package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/reviewhub/catalog-api/internal/core/domain"
	"github.com/reviewhub/catalog-api/internal/core/ports"
)

const usersCollection = "users"

type MongoUserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{coll: db.Collection(usersCollection)}
}

type mongoUser struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Username    string             `bson:"username"`
	Email       string             `bson:"email"`
	FirstName   string             `bson:"first_name,omitempty"`
	LastName    string             `bson:"last_name,omitempty"`
	Bio         string             `bson:"bio,omitempty"`
	Role        string             `bson:"role"`
	IsSuperuser bool               `bson:"is_superuser,omitempty"`
	OTPHash     string             `bson:"otp_hash,omitempty"`
	CreatedAt   int64              `bson:"created_at"`
	UpdatedAt   int64              `bson:"updated_at"`
}

func (r *MongoUserRepository) UpsertSignup(ctx context.Context, username, email, otpHash string) (*domain.User, error) {
	now := time.Now().UTC().Unix()
	filter := bson.M{"username": username, "email": email}
	update := bson.M{
		"$set": bson.M{
			"otp_hash":   otpHash,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{
			"username":   username,
			"email":      email,
			"role":       string(domain.RoleUser),
			"created_at": now,
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var mu mongoUser
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&mu); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, r.conflictFields(ctx, username, email)
		}
		return nil, fmt.Errorf("upsert signup: %w", err)
	}
	return toDomainUser(mu), nil
}

// conflictFields determines which of the unique fields collided so the
// client error can name them.
func (r *MongoUserRepository) conflictFields(ctx context.Context, username, email string) error {
	conflict := &domain.ConflictError{}
	if n, err := r.coll.CountDocuments(ctx, bson.M{"username": username}); err == nil && n > 0 {
		conflict.Fields = append(conflict.Fields, "username")
	}
	if n, err := r.coll.CountDocuments(ctx, bson.M{"email": email}); err == nil && n > 0 {
		conflict.Fields = append(conflict.Fields, "email")
	}
	if len(conflict.Fields) == 0 {
		conflict.Fields = []string{"username", "email"}
	}
	return conflict
}

func (r *MongoUserRepository) ClearOTP(ctx context.Context, username, otpHash string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"username": username, "otp_hash": otpHash},
		bson.M{"$set": bson.M{"otp_hash": "", "updated_at": time.Now().UTC().Unix()}},
	)
	if err != nil {
		return fmt.Errorf("clear otp: %w", err)
	}
	// No match: the secret was already consumed or reissued in between.
	if res.MatchedCount == 0 {
		return domain.ErrInvalidCredential
	}
	return nil
}

func (r *MongoUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var mu mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return toDomainUser(mu), nil
}

func (r *MongoUserRepository) List(ctx context.Context, params ports.ListParams) ([]domain.User, int64, error) {
	filter := bson.M{}
	if params.Search != "" {
		filter["username"] = bson.M{"$regex": params.Search, "$options": "i"}
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "username", Value: 1}}).
		SetSkip(params.Offset()).
		SetLimit(int64(params.Limit))

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer cur.Close(ctx)

	var users []domain.User
	for cur.Next(ctx) {
		var mu mongoUser
		if err := cur.Decode(&mu); err != nil {
			return nil, 0, fmt.Errorf("decode user: %w", err)
		}
		users = append(users, *toDomainUser(mu))
	}
	return users, total, cur.Err()
}

func (r *MongoUserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	doc := mongoUser{
		Username:    user.Username,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Bio:         user.Bio,
		Role:        string(user.Role),
		IsSuperuser: user.IsSuperuser,
		CreatedAt:   user.CreatedAt.Unix(),
		UpdatedAt:   user.UpdatedAt.Unix(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, r.conflictFields(ctx, user.Username, user.Email)
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return r.FindByUsername(ctx, user.Username)
}

func (r *MongoUserRepository) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	set := bson.M{
		"email":      user.Email,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"bio":        user.Bio,
		"role":       string(user.Role),
		"updated_at": time.Now().UTC().Unix(),
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"username": user.Username}, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, &domain.ConflictError{Fields: []string{"email"}}
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrUserNotFound
	}
	return r.FindByUsername(ctx, user.Username)
}

func (r *MongoUserRepository) Delete(ctx context.Context, username string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"username": username})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func toDomainUser(mu mongoUser) *domain.User {
	return &domain.User{
		ID:          mu.ID.Hex(),
		Username:    mu.Username,
		Email:       mu.Email,
		FirstName:   mu.FirstName,
		LastName:    mu.LastName,
		Bio:         mu.Bio,
		Role:        domain.Role(mu.Role),
		IsSuperuser: mu.IsSuperuser,
		OTPHash:     mu.OTPHash,
		CreatedAt:   unixToTime(mu.CreatedAt),
		UpdatedAt:   unixToTime(mu.UpdatedAt),
	}
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}

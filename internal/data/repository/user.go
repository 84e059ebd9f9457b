// Package repository provides MongoDB-backed persistence for users,
// projects, and tasks.
package repository

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/projectflow/projectflow/internal/structs"
	"github.com/projectflow/projectflow/pkg/ecode"
	"github.com/projectflow/projectflow/pkg/logger"
)

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *structs.User) (*structs.User, error)
	FindByID(ctx context.Context, id string) (*structs.User, error)
	FindByEmail(ctx context.Context, email string) (*structs.User, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*structs.User, error)
	List(ctx context.Context) ([]*structs.User, error)
	Update(ctx context.Context, user *structs.User) (*structs.User, error)
}

type userRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

// NewUserRepository creates the user repository and ensures the unique
// email index. Emails are stored lowercased, so the index enforces
// case-insensitive uniqueness.
func NewUserRepository(db *mongo.Database, log *logger.Logger) UserRepository {
	collection := db.Collection("users")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		log.Warn(ctx, "failed to create unique index on email", "error", err)
	}

	return &userRepository{collection: collection, logger: log}
}

func (r *userRepository) Create(ctx context.Context, user *structs.User) (*structs.User, error) {
	user.ID = primitive.NewObjectID()
	user.Email = strings.ToLower(user.Email)
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ecode.Conflicted("user already exists")
		}
		r.logger.Error(ctx, "failed to create user", "error", err)
		return nil, ecode.Internal("failed to create user", err)
	}

	r.logger.Info(ctx, "user created", "user_id", user.ID.Hex())
	return user, nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*structs.User, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ecode.NotFound("user not found")
	}

	var user structs.User
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ecode.NotFound("user not found")
		}
		r.logger.Error(ctx, "failed to find user", "user_id", id, "error", err)
		return nil, ecode.Internal("failed to find user", err)
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*structs.User, error) {
	var user structs.User
	err := r.collection.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ecode.NotFound("user not found")
		}
		r.logger.Error(ctx, "failed to find user by email", "error", err)
		return nil, ecode.Internal("failed to find user", err)
	}
	return &user, nil
}

func (r *userRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*structs.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		r.logger.Error(ctx, "failed to find users", "error", err)
		return nil, ecode.Internal("failed to find users", err)
	}
	defer cursor.Close(ctx)

	var users []*structs.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, ecode.Internal("failed to decode users", err)
	}
	return users, nil
}

func (r *userRepository) List(ctx context.Context) ([]*structs.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		r.logger.Error(ctx, "failed to list users", "error", err)
		return nil, ecode.Internal("failed to list users", err)
	}
	defer cursor.Close(ctx)

	var users []*structs.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, ecode.Internal("failed to decode users", err)
	}
	return users, nil
}

func (r *userRepository) Update(ctx context.Context, user *structs.User) (*structs.User, error) {
	user.Email = strings.ToLower(user.Email)
	user.UpdatedAt = time.Now().UTC()

	update := bson.M{"$set": bson.M{
		"name":       user.Name,
		"email":      user.Email,
		"password":   user.Password,
		"is_admin":   user.IsAdmin,
		"updated_at": user.UpdatedAt,
	}}

	result := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": user.ID},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		if result.Err() == mongo.ErrNoDocuments {
			return nil, ecode.NotFound("user not found")
		}
		if mongo.IsDuplicateKeyError(result.Err()) {
			return nil, ecode.Validation("email already in use")
		}
		r.logger.Error(ctx, "failed to update user", "user_id", user.ID.Hex(), "error", result.Err())
		return nil, ecode.Internal("failed to update user", result.Err())
	}

	var updated structs.User
	if err := result.Decode(&updated); err != nil {
		return nil, ecode.Internal("failed to decode updated user", err)
	}
	return &updated, nil
}

package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/projectflow/projectflow/internal/structs"
	"github.com/projectflow/projectflow/pkg/ecode"
	"github.com/projectflow/projectflow/pkg/logger"
)

// ProjectRepository defines project persistence operations.
type ProjectRepository interface {
	Create(ctx context.Context, project *structs.Project) (*structs.Project, error)
	FindByID(ctx context.Context, id string) (*structs.Project, error)
	FindVisible(ctx context.Context, userID primitive.ObjectID) ([]*structs.Project, error)
	Update(ctx context.Context, project *structs.Project) (*structs.Project, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type projectRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

// NewProjectRepository creates the project repository.
func NewProjectRepository(db *mongo.Database, log *logger.Logger) ProjectRepository {
	return &projectRepository{collection: db.Collection("projects"), logger: log}
}

func (r *projectRepository) Create(ctx context.Context, project *structs.Project) (*structs.Project, error) {
	project.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	project.CreatedAt = now
	project.UpdatedAt = now
	if project.StartDate.IsZero() {
		project.StartDate = now
	}
	if project.Members == nil {
		project.Members = []primitive.ObjectID{}
	}

	if _, err := r.collection.InsertOne(ctx, project); err != nil {
		r.logger.Error(ctx, "failed to create project", "error", err)
		return nil, ecode.Internal("failed to create project", err)
	}

	r.logger.Info(ctx, "project created", "project_id", project.ID.Hex())
	return project, nil
}

func (r *projectRepository) FindByID(ctx context.Context, id string) (*structs.Project, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ecode.NotFound("project not found")
	}

	var project structs.Project
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&project)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ecode.NotFound("project not found")
		}
		r.logger.Error(ctx, "failed to find project", "project_id", id, "error", err)
		return nil, ecode.Internal("failed to find project", err)
	}
	return &project, nil
}

// FindVisible returns every project where the user is the owner or a
// member.
func (r *projectRepository) FindVisible(ctx context.Context, userID primitive.ObjectID) ([]*structs.Project, error) {
	filter := bson.M{"$or": []bson.M{
		{"user": userID},
		{"members": userID},
	}}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		r.logger.Error(ctx, "failed to list projects", "error", err)
		return nil, ecode.Internal("failed to list projects", err)
	}
	defer cursor.Close(ctx)

	var projects []*structs.Project
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, ecode.Internal("failed to decode projects", err)
	}
	return projects, nil
}

func (r *projectRepository) Update(ctx context.Context, project *structs.Project) (*structs.Project, error) {
	project.UpdatedAt = time.Now().UTC()

	update := bson.M{"$set": bson.M{
		"name":        project.Name,
		"description": project.Description,
		"status":      project.Status,
		"priority":    project.Priority,
		"start_date":  project.StartDate,
		"end_date":    project.EndDate,
		"members":     project.Members,
		"updated_at":  project.UpdatedAt,
	}}

	result := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": project.ID},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		if result.Err() == mongo.ErrNoDocuments {
			return nil, ecode.NotFound("project not found")
		}
		r.logger.Error(ctx, "failed to update project", "project_id", project.ID.Hex(), "error", result.Err())
		return nil, ecode.Internal("failed to update project", result.Err())
	}

	var updated structs.Project
	if err := result.Decode(&updated); err != nil {
		return nil, ecode.Internal("failed to decode updated project", err)
	}
	return &updated, nil
}

func (r *projectRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		r.logger.Error(ctx, "failed to delete project", "project_id", id.Hex(), "error", err)
		return ecode.Internal("failed to delete project", err)
	}
	if result.DeletedCount == 0 {
		return ecode.NotFound("project not found")
	}

	r.logger.Info(ctx, "project deleted", "project_id", id.Hex())
	return nil
}

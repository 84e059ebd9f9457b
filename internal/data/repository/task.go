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

// TaskRepository defines task persistence operations. Comments live inside
// the task document and are appended atomically.
type TaskRepository interface {
	Create(ctx context.Context, task *structs.Task) (*structs.Task, error)
	FindByID(ctx context.Context, id string) (*structs.Task, error)
	FindByProject(ctx context.Context, projectID primitive.ObjectID) ([]*structs.Task, error)
	FindByProjects(ctx context.Context, projectIDs []primitive.ObjectID) ([]*structs.Task, error)
	Update(ctx context.Context, task *structs.Task) (*structs.Task, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByProject(ctx context.Context, projectID primitive.ObjectID) error
	AppendComment(ctx context.Context, id primitive.ObjectID, comment structs.Comment) (*structs.Task, error)
}

type taskRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

// NewTaskRepository creates the task repository.
func NewTaskRepository(db *mongo.Database, log *logger.Logger) TaskRepository {
	return &taskRepository{collection: db.Collection("tasks"), logger: log}
}

func (r *taskRepository) Create(ctx context.Context, task *structs.Task) (*structs.Task, error) {
	task.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now
	if task.Comments == nil {
		task.Comments = []structs.Comment{}
	}

	if _, err := r.collection.InsertOne(ctx, task); err != nil {
		r.logger.Error(ctx, "failed to create task", "error", err)
		return nil, ecode.Internal("failed to create task", err)
	}

	r.logger.Info(ctx, "task created", "task_id", task.ID.Hex(), "project_id", task.Project.Hex())
	return task, nil
}

func (r *taskRepository) FindByID(ctx context.Context, id string) (*structs.Task, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ecode.NotFound("task not found")
	}

	var task structs.Task
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&task)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ecode.NotFound("task not found")
		}
		r.logger.Error(ctx, "failed to find task", "task_id", id, "error", err)
		return nil, ecode.Internal("failed to find task", err)
	}
	return &task, nil
}

func (r *taskRepository) FindByProject(ctx context.Context, projectID primitive.ObjectID) ([]*structs.Task, error) {
	return r.find(ctx, bson.M{"project": projectID})
}

func (r *taskRepository) FindByProjects(ctx context.Context, projectIDs []primitive.ObjectID) ([]*structs.Task, error) {
	if len(projectIDs) == 0 {
		return nil, nil
	}
	return r.find(ctx, bson.M{"project": bson.M{"$in": projectIDs}})
}

func (r *taskRepository) find(ctx context.Context, filter bson.M) ([]*structs.Task, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		r.logger.Error(ctx, "failed to list tasks", "error", err)
		return nil, ecode.Internal("failed to list tasks", err)
	}
	defer cursor.Close(ctx)

	var tasks []*structs.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, ecode.Internal("failed to decode tasks", err)
	}
	return tasks, nil
}

func (r *taskRepository) Update(ctx context.Context, task *structs.Task) (*structs.Task, error) {
	task.UpdatedAt = time.Now().UTC()

	update := bson.M{"$set": bson.M{
		"title":       task.Title,
		"description": task.Description,
		"status":      task.Status,
		"priority":    task.Priority,
		"due_date":    task.DueDate,
		"assigned_to": task.AssignedTo,
		"updated_at":  task.UpdatedAt,
	}}

	result := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": task.ID},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		if result.Err() == mongo.ErrNoDocuments {
			return nil, ecode.NotFound("task not found")
		}
		r.logger.Error(ctx, "failed to update task", "task_id", task.ID.Hex(), "error", result.Err())
		return nil, ecode.Internal("failed to update task", result.Err())
	}

	var updated structs.Task
	if err := result.Decode(&updated); err != nil {
		return nil, ecode.Internal("failed to decode updated task", err)
	}
	return &updated, nil
}

func (r *taskRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		r.logger.Error(ctx, "failed to delete task", "task_id", id.Hex(), "error", err)
		return ecode.Internal("failed to delete task", err)
	}
	if result.DeletedCount == 0 {
		return ecode.NotFound("task not found")
	}

	r.logger.Info(ctx, "task deleted", "task_id", id.Hex())
	return nil
}

// DeleteByProject removes every task belonging to the project. Used by the
// project cascade, which runs this before removing the project itself.
func (r *taskRepository) DeleteByProject(ctx context.Context, projectID primitive.ObjectID) error {
	result, err := r.collection.DeleteMany(ctx, bson.M{"project": projectID})
	if err != nil {
		r.logger.Error(ctx, "failed to delete project tasks", "project_id", projectID.Hex(), "error", err)
		return ecode.Internal("failed to delete project tasks", err)
	}

	r.logger.Info(ctx, "project tasks deleted", "project_id", projectID.Hex(), "count", result.DeletedCount)
	return nil
}

func (r *taskRepository) AppendComment(ctx context.Context, id primitive.ObjectID, comment structs.Comment) (*structs.Task, error) {
	update := bson.M{
		"$push": bson.M{"comments": comment},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}

	result := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		if result.Err() == mongo.ErrNoDocuments {
			return nil, ecode.NotFound("task not found")
		}
		r.logger.Error(ctx, "failed to append comment", "task_id", id.Hex(), "error", result.Err())
		return nil, ecode.Internal("failed to append comment", result.Err())
	}

	var updated structs.Task
	if err := result.Decode(&updated); err != nil {
		return nil, ecode.Internal("failed to decode updated task", err)
	}
	return &updated, nil
}

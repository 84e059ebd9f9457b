// Package data manages the MongoDB connection shared by all repositories.
package data

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/projectflow/projectflow/internal/data/repository"
	"github.com/projectflow/projectflow/pkg/logger"
)

const defaultDatabase = "projectflow"

// Data encapsulates the data layer dependencies.
type Data struct {
	client *mongo.Client
	db     *mongo.Database

	UserRepo    repository.UserRepository
	ProjectRepo repository.ProjectRepository
	TaskRepo    repository.TaskRepository
}

// New connects to MongoDB, verifies the connection, and wires the
// repositories. A connection failure here terminates startup.
func New(mongoURI string, log *logger.Logger) (*Data, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	dbName := databaseName(mongoURI)
	db := client.Database(dbName)
	log.Info(ctx, "Connected to MongoDB", "database", dbName)

	return &Data{
		client:      client,
		db:          db,
		UserRepo:    repository.NewUserRepository(db, log),
		ProjectRepo: repository.NewProjectRepository(db, log),
		TaskRepo:    repository.NewTaskRepository(db, log),
	}, nil
}

// Close disconnects from MongoDB.
func (d *Data) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return d.client.Disconnect(ctx)
}

// DB returns the database handle.
func (d *Data) DB() *mongo.Database {
	return d.db
}

// WithTransaction runs fn inside a multi-document transaction when the
// deployment supports one. Standalone deployments reject transactions; in
// that case fn runs directly against the base context, and callers must
// order their writes so a crash mid-sequence stays safe.
func (d *Data) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if d.client == nil {
		return fn(ctx)
	}
	session, err := d.client.StartSession()
	if err != nil {
		return fn(ctx)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sctx mongo.SessionContext) (any, error) {
		return nil, fn(sctx)
	})
	if err != nil && !transactionsSupported(err) {
		return fn(ctx)
	}
	return err
}

// transactionsSupported reports false for the errors a standalone mongod
// raises when a transaction is attempted.
func transactionsSupported(err error) bool {
	msg := err.Error()
	if strings.Contains(msg, "Transaction numbers are only allowed") {
		return false
	}
	if cmdErr, ok := err.(mongo.CommandError); ok && cmdErr.Code == 20 {
		return false
	}
	return true
}

// databaseName extracts the database from the connection string path,
// falling back to the default.
func databaseName(uri string) string {
	rest := uri
	if i := strings.Index(rest, "://"); i >= 0 {
		rest = rest[i+3:]
	}
	if i := strings.Index(rest, "/"); i >= 0 {
		rest = rest[i+1:]
	} else {
		return defaultDatabase
	}
	if i := strings.Index(rest, "?"); i >= 0 {
		rest = rest[:i]
	}
	if rest == "" {
		return defaultDatabase
	}
	return rest
}

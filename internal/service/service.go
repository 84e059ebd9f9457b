// Package service implements the tracker's business operations on top of
// the repositories. Every operation takes the authenticated caller and runs
// its permission check through the access resolver before touching state.
package service

import (
	"github.com/projectflow/projectflow/internal/data"
	"github.com/projectflow/projectflow/pkg/jwt"
	"github.com/projectflow/projectflow/pkg/logger"
)

// Service aggregates the business services.
type Service struct {
	User    UserService
	Project ProjectService
	Task    TaskService
}

// New creates the service layer over the data layer.
func New(d *data.Data, tokens *jwt.TokenManager, log *logger.Logger) *Service {
	return &Service{
		User:    NewUserService(d, tokens, log),
		Project: NewProjectService(d, log),
		Task:    NewTaskService(d, log),
	}
}

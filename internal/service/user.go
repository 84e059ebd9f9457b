package service

import (
	"context"

	"github.com/projectflow/projectflow/internal/access"
	"github.com/projectflow/projectflow/internal/data"
	"github.com/projectflow/projectflow/internal/structs"
	"github.com/projectflow/projectflow/pkg/crypto"
	"github.com/projectflow/projectflow/pkg/ecode"
	"github.com/projectflow/projectflow/pkg/jwt"
	"github.com/projectflow/projectflow/pkg/logger"
)

// UserService handles registration, authentication, and profile management.
type UserService interface {
	Register(ctx context.Context, req *structs.RegisterRequest) (*structs.AuthResponse, error)
	Login(ctx context.Context, req *structs.LoginRequest) (*structs.AuthResponse, error)
	ResolveCaller(ctx context.Context, token string) (*structs.User, error)
	UpdateSelf(ctx context.Context, caller *structs.User, req *structs.UpdateProfileRequest) (*structs.User, error)
	List(ctx context.Context, caller *structs.User) ([]*structs.User, error)
}

type userService struct {
	data   *data.Data
	tokens *jwt.TokenManager
	logger *logger.Logger
}

// NewUserService creates the user service.
func NewUserService(d *data.Data, tokens *jwt.TokenManager, log *logger.Logger) UserService {
	return &userService{data: d, tokens: tokens, logger: log}
}

// Register creates the account and signs the caller in immediately. Name
// and email are trimmed; a whitespace-only value is treated as missing.
func (s *userService) Register(ctx context.Context, req *structs.RegisterRequest) (*structs.AuthResponse, error) {
	req.Normalize()
	if req.Name == "" {
		return nil, ecode.Validation("please provide name")
	}
	if req.Email == "" {
		return nil, ecode.Validation("please provide a valid email")
	}

	hashed, err := crypto.HashPassword(req.Password)
	if err != nil {
		s.logger.Error(ctx, "failed to hash password", "error", err)
		return nil, ecode.Internal("failed to process password", err)
	}

	user, err := s.data.UserRepo.Create(ctx, &structs.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashed,
	})
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.GenerateAccessToken(user.ID.Hex())
	if err != nil {
		s.logger.Error(ctx, "failed to generate token", "user_id", user.ID.Hex(), "error", err)
		return nil, ecode.Internal("failed to generate token", err)
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID.Hex())
	return &structs.AuthResponse{User: user, Token: token}, nil
}

// Login verifies the credentials. Unknown email and wrong password produce
// the same error so the surface does not leak which accounts exist.
func (s *userService) Login(ctx context.Context, req *structs.LoginRequest) (*structs.AuthResponse, error) {
	req.Normalize()

	user, err := s.data.UserRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if ecode.CodeOf(err) == ecode.NothingFound {
			return nil, ecode.AuthFailed("invalid email or password")
		}
		return nil, err
	}

	if !crypto.ComparePassword(user.Password, req.Password) {
		return nil, ecode.AuthFailed("invalid email or password")
	}

	token, err := s.tokens.GenerateAccessToken(user.ID.Hex())
	if err != nil {
		s.logger.Error(ctx, "failed to generate token", "user_id", user.ID.Hex(), "error", err)
		return nil, ecode.Internal("failed to generate token", err)
	}

	s.logger.Info(ctx, "user logged in", "user_id", user.ID.Hex())
	return &structs.AuthResponse{User: user, Token: token}, nil
}

// ResolveCaller validates the bearer credential and loads the user it names.
func (s *userService) ResolveCaller(ctx context.Context, token string) (*structs.User, error) {
	claims, err := s.tokens.DecodeToken(token)
	if err != nil {
		return nil, ecode.AuthFailed("not authorized, token failed")
	}

	subject := jwt.GetSubject(claims)
	if subject == "" {
		return nil, ecode.AuthFailed("not authorized, token failed")
	}

	user, err := s.data.UserRepo.FindByID(ctx, subject)
	if err != nil {
		return nil, ecode.AuthFailed("not authorized, token failed")
	}
	return user, nil
}

// UpdateSelf applies the provided fields over the caller's own record. Empty
// fields keep the stored value; a password change rehashes.
func (s *userService) UpdateSelf(ctx context.Context, caller *structs.User, req *structs.UpdateProfileRequest) (*structs.User, error) {
	req.Normalize()

	updated := *caller
	if req.Name != "" {
		updated.Name = req.Name
	}
	if req.Email != "" {
		updated.Email = req.Email
	}
	if req.Password != "" {
		hashed, err := crypto.HashPassword(req.Password)
		if err != nil {
			s.logger.Error(ctx, "failed to hash password", "error", err)
			return nil, ecode.Internal("failed to process password", err)
		}
		updated.Password = hashed
	}

	user, err := s.data.UserRepo.Update(ctx, &updated)
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "profile updated", "user_id", user.ID.Hex())
	return user, nil
}

// List returns every registered user. Admin only.
func (s *userService) List(ctx context.Context, caller *structs.User) ([]*structs.User, error) {
	if err := access.Decide(caller, access.UserDirectory{}, access.ActionRead); err != nil {
		return nil, err
	}
	return s.data.UserRepo.List(ctx)
}

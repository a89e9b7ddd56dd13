package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/unn-housing/service-booking/internal/auth"
	"github.com/unn-housing/service-booking/internal/domain"
	userDomain "github.com/unn-housing/service-booking/internal/domain/user"
)

// UpdateProfileRequest carries the account fields a user may change. Empty means unchanged.
type UpdateProfileRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// UpdateUserRequest is the admin variant, which may also change the role.
type UpdateUserRequest struct {
	UpdateProfileRequest
	Role string `json:"role"`
}

// UserService handles account profile and admin user management.
type UserService struct {
	repo   userDomain.UserRepository
	logger *zap.Logger
}

// NewUserService creates a new UserService.
func NewUserService(repo userDomain.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

// GetProfile returns the caller's own account.
func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*UserDTO, error) {
	return s.GetUser(ctx, userID)
}

// UpdateProfile changes the caller's names or email. The role is never touched here.
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*UserDTO, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := u.UpdateProfile(req.FirstName, req.LastName, req.Email); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("profile updated", zap.String("user_id", userID.String()))
	dto := toUserDTO(u)
	return &dto, nil
}

// ListUsers returns a page of accounts (admin).
func (s *UserService) ListUsers(ctx context.Context, page, limit int) (*domain.PaginatedResult[UserDTO], error) {
	users, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	dtos := make([]UserDTO, len(users))
	for i, u := range users {
		dtos[i] = toUserDTO(u)
	}
	result := domain.NewPaginatedResult(dtos, total, page, limit)
	return &result, nil
}

// GetUser returns one account by id.
func (s *UserService) GetUser(ctx context.Context, userID uuid.UUID) (*UserDTO, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	dto := toUserDTO(u)
	return &dto, nil
}

// UpdateUser changes any account's profile and role (admin).
func (s *UserService) UpdateUser(ctx context.Context, userID uuid.UUID, req UpdateUserRequest) (*UserDTO, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := u.UpdateProfile(req.FirstName, req.LastName, req.Email); err != nil {
		return nil, err
	}
	if req.Role != "" {
		role, err := auth.ParseRole(req.Role)
		if err != nil {
			return nil, domain.NewValidationError("invalid role")
		}
		if err := u.ChangeRole(role); err != nil {
			return nil, err
		}
	}
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("user updated by admin",
		zap.String("user_id", userID.String()),
		zap.String("role", string(u.Role())),
	)
	dto := toUserDTO(u)
	return &dto, nil
}

// DeleteUser removes an account (admin). Admins cannot delete themselves.
func (s *UserService) DeleteUser(ctx context.Context, caller auth.Identity, userID uuid.UUID) error {
	if caller.UserID == userID {
		return domain.NewForbiddenError("admins cannot delete their own account")
	}
	if err := s.repo.Delete(ctx, userID); err != nil {
		return err
	}

	s.logger.Info("user deleted",
		zap.String("user_id", userID.String()),
		zap.String("deleted_by", caller.UserID.String()),
	)
	return nil
}

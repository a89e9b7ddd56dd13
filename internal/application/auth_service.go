package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/unn-housing/service-booking/internal/auth"
	"github.com/unn-housing/service-booking/internal/domain"
	userDomain "github.com/unn-housing/service-booking/internal/domain/user"
)

const minPasswordLength = 8

// RegisterRequest is the request DTO for creating an account.
type RegisterRequest struct {
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Role      string `json:"role"`
}

// LoginRequest is the request DTO for password login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest carries a refresh token.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// UserDTO is the public representation of an account.
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuthResponse is returned by register, login and refresh.
type AuthResponse struct {
	User   UserDTO         `json:"user"`
	Tokens *auth.TokenPair `json:"tokens"`
}

// AuthService handles account registration and token issuance.
type AuthService struct {
	users      userDomain.UserRepository
	jwtManager *auth.JWTManager
	logger     *zap.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(users userDomain.UserRepository, jwtManager *auth.JWTManager, logger *zap.Logger) *AuthService {
	return &AuthService{users: users, jwtManager: jwtManager, logger: logger}
}

// Register creates a tenant or property owner account. Admins cannot self-register.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	role := auth.RoleTenant
	if req.Role != "" {
		parsed, err := auth.ParseRole(req.Role)
		if err != nil {
			return nil, domain.NewValidationError("invalid role")
		}
		role = parsed
	}
	if role == auth.RoleAdmin {
		return nil, domain.NewForbiddenError("admin accounts cannot be self-registered")
	}
	if len(req.Password) < minPasswordLength {
		return nil, domain.NewValidationError(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u, err := userDomain.NewUser(req.Email, hash, req.FirstName, req.LastName, role)
	if err != nil {
		return nil, err
	}
	if err := s.users.Save(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		zap.String("user_id", u.ID().String()),
		zap.String("role", string(role)),
	)
	return s.issue(u)
}

// Login verifies credentials and issues a token pair.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	u, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewUnauthorizedError("invalid email or password")
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if !auth.CheckPassword(u.PasswordHash(), req.Password) {
		return nil, domain.NewUnauthorizedError("invalid email or password")
	}
	return s.issue(u)
}

// Refresh exchanges a valid refresh token for a new token pair.
func (s *AuthService) Refresh(ctx context.Context, req RefreshRequest) (*AuthResponse, error) {
	claims, err := s.jwtManager.ValidateToken(req.RefreshToken)
	if err != nil || claims.TokenType != auth.TokenTypeRefresh {
		return nil, domain.NewUnauthorizedError("invalid refresh token")
	}

	u, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewUnauthorizedError("invalid refresh token")
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return s.issue(u)
}

func (s *AuthService) issue(u *userDomain.User) (*AuthResponse, error) {
	tokens, err := s.jwtManager.GenerateTokenPair(u.ID(), u.Roles()...)
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}
	return &AuthResponse{User: toUserDTO(u), Tokens: tokens}, nil
}

func toUserDTO(u *userDomain.User) UserDTO {
	return UserDTO{
		ID:        u.ID(),
		Email:     u.Email(),
		FirstName: u.FirstName(),
		LastName:  u.LastName(),
		Role:      string(u.Role()),
		CreatedAt: u.CreatedAt(),
	}
}

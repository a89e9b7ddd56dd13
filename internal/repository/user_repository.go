package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/unn-housing/service-booking/internal/auth"
	"github.com/unn-housing/service-booking/internal/domain"
	userDomain "github.com/unn-housing/service-booking/internal/domain/user"
)

// UserModel is the GORM model for the users table.
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"uniqueIndex;not null;size:255"`
	PasswordHash string    `gorm:"not null;size:100"`
	FirstName    string    `gorm:"not null;size:100"`
	LastName     string    `gorm:"not null;size:100"`
	Role         string    `gorm:"not null;size:20;default:'TENANT'"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

func (UserModel) TableName() string { return "users" }

// GormUserRepository implements UserRepository using GORM.
type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	var model UserModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("User", id.String())
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return toUserDomain(&model), nil
}

// FindByIDs loads a set of users keyed by id. Missing ids are simply absent from the map.
func (r *GormUserRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*userDomain.User, error) {
	users := make(map[uuid.UUID]*userDomain.User, len(ids))
	if len(ids) == 0 {
		return users, nil
	}

	var models []UserModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find users: %w", err)
	}
	for i := range models {
		users[models[i].ID] = toUserDomain(&models[i])
	}
	return users, nil
}

func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*userDomain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var model UserModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("User", email)
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return toUserDomain(&model), nil
}

func (r *GormUserRepository) Save(ctx context.Context, u *userDomain.User) error {
	model := toUserModel(u)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if derr, ok := translateWriteError(err); ok {
			if derr.Kind == domain.KindConflict {
				return domain.NewConflictError("email is already registered")
			}
			return derr
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

// List returns one page of users, newest first.
func (r *GormUserRepository) List(ctx context.Context, page, limit int) ([]*userDomain.User, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&UserModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	var models []UserModel
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]*userDomain.User, len(models))
	for i := range models {
		users[i] = toUserDomain(&models[i])
	}
	return users, total, nil
}

// Update persists profile and role changes.
func (r *GormUserRepository) Update(ctx context.Context, u *userDomain.User) error {
	result := r.db.WithContext(ctx).
		Model(&UserModel{}).
		Where("id = ?", u.ID()).
		Updates(map[string]interface{}{
			"email":      u.Email(),
			"first_name": u.FirstName(),
			"last_name":  u.LastName(),
			"role":       string(u.Role()),
			"updated_at": u.UpdatedAt(),
		})
	if result.Error != nil {
		if derr, ok := translateWriteError(result.Error); ok && derr.Kind == domain.KindConflict {
			return domain.NewConflictError("email is already registered")
		}
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("User", u.ID().String())
	}
	return nil
}

// Delete removes a user. Accounts that still own bookings, lodges or reviews are refused.
func (r *GormUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, dep := range []struct {
			model  interface{}
			column string
		}{
			{&BookingModel{}, "tenant_id"},
			{&LodgeModel{}, "owner_id"},
			{&ReviewModel{}, "author_id"},
		} {
			var n int64
			if err := tx.Model(dep.model).Where(dep.column+" = ?", id).Count(&n).Error; err != nil {
				return fmt.Errorf("failed to count user records: %w", err)
			}
			if n > 0 {
				return domain.NewConflictError("user still has bookings, lodges or reviews")
			}
		}

		result := tx.Where("id = ?", id).Delete(&UserModel{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete user: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.NewNotFoundError("User", id.String())
		}
		return nil
	})
}

func toUserModel(u *userDomain.User) *UserModel {
	return &UserModel{
		ID:           u.ID(),
		Email:        u.Email(),
		PasswordHash: u.PasswordHash(),
		FirstName:    u.FirstName(),
		LastName:     u.LastName(),
		Role:         string(u.Role()),
		CreatedAt:    u.CreatedAt(),
		UpdatedAt:    u.UpdatedAt(),
	}
}

func toUserDomain(m *UserModel) *userDomain.User {
	return userDomain.Reconstruct(
		m.ID,
		m.Email,
		m.PasswordHash,
		m.FirstName,
		m.LastName,
		auth.Role(m.Role),
		m.CreatedAt,
		m.UpdatedAt,
	)
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/unn-housing/service-booking/internal/domain"
	reviewDomain "github.com/unn-housing/service-booking/internal/domain/review"
)

// ReviewModel is the GORM model for the reviews table.
type ReviewModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	LodgeID   uuid.UUID `gorm:"type:uuid;not null;index"`
	AuthorID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Rating    int       `gorm:"not null"`
	Comment   string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName sets the table name.
func (ReviewModel) TableName() string { return "reviews" }

// GormReviewRepository implements ReviewRepository using GORM.
type GormReviewRepository struct {
	db *gorm.DB
}

// NewGormReviewRepository creates a new GormReviewRepository.
func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// Save persists a new review.
func (r *GormReviewRepository) Save(ctx context.Context, review *reviewDomain.Review) error {
	model := toReviewModel(review)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if derr, ok := translateWriteError(err); ok {
			return derr
		}
		return fmt.Errorf("failed to save review: %w", err)
	}
	return nil
}

// Update persists rating and comment changes.
func (r *GormReviewRepository) Update(ctx context.Context, review *reviewDomain.Review) error {
	result := r.db.WithContext(ctx).
		Model(&ReviewModel{}).
		Where("id = ?", review.ID()).
		Updates(map[string]interface{}{
			"rating":     review.Rating(),
			"comment":    review.Comment(),
			"updated_at": review.UpdatedAt(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update review: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Review", review.ID().String())
	}
	return nil
}

// Delete removes a review.
func (r *GormReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&ReviewModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete review: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Review", id.String())
	}
	return nil
}

// FindByLodgeID returns all reviews for a lodge, newest first.
func (r *GormReviewRepository) FindByLodgeID(ctx context.Context, lodgeID uuid.UUID) ([]*reviewDomain.Review, error) {
	var models []ReviewModel
	if err := r.db.WithContext(ctx).Where("lodge_id = ?", lodgeID).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find lodge reviews: %w", err)
	}

	reviews := make([]*reviewDomain.Review, len(models))
	for i := range models {
		reviews[i] = toReviewDomain(&models[i])
	}
	return reviews, nil
}

// FindByID returns a single review by ID.
func (r *GormReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*reviewDomain.Review, error) {
	var model ReviewModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Review", id.String())
		}
		return nil, fmt.Errorf("failed to find review: %w", err)
	}
	return toReviewDomain(&model), nil
}

func toReviewModel(r *reviewDomain.Review) ReviewModel {
	return ReviewModel{
		ID:        r.ID(),
		LodgeID:   r.LodgeID(),
		AuthorID:  r.AuthorID(),
		Rating:    r.Rating(),
		Comment:   r.Comment(),
		CreatedAt: r.CreatedAt(),
		UpdatedAt: r.UpdatedAt(),
	}
}

func toReviewDomain(m *ReviewModel) *reviewDomain.Review {
	return reviewDomain.Reconstruct(
		m.ID,
		m.LodgeID,
		m.AuthorID,
		m.Rating,
		m.Comment,
		m.CreatedAt,
		m.UpdatedAt,
	)
}

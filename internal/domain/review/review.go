package review

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/unn-housing/service-booking/internal/domain"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Review is a tenant's rating of a lodge.
type Review struct {
	id        uuid.UUID
	lodgeID   uuid.UUID
	authorID  uuid.UUID
	rating    int
	comment   string
	createdAt time.Time
	updatedAt time.Time
}

func validateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return domain.NewValidationError("rating must be between 1 and 5")
	}
	return nil
}

// NewReview creates a new review.
func NewReview(lodgeID, authorID uuid.UUID, rating int, comment string) (*Review, error) {
	if lodgeID == uuid.Nil || authorID == uuid.Nil {
		return nil, domain.NewValidationError("lodge and author are required")
	}
	if err := validateRating(rating); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Review{
		id:        uuid.New(),
		lodgeID:   lodgeID,
		authorID:  authorID,
		rating:    rating,
		comment:   strings.TrimSpace(comment),
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstruct rebuilds a Review from persistence.
func Reconstruct(id, lodgeID, authorID uuid.UUID, rating int, comment string, createdAt, updatedAt time.Time) *Review {
	return &Review{
		id:        id,
		lodgeID:   lodgeID,
		authorID:  authorID,
		rating:    rating,
		comment:   comment,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// Getters.
func (r *Review) ID() uuid.UUID        { return r.id }
func (r *Review) LodgeID() uuid.UUID   { return r.lodgeID }
func (r *Review) AuthorID() uuid.UUID  { return r.authorID }
func (r *Review) Rating() int          { return r.rating }
func (r *Review) Comment() string      { return r.comment }
func (r *Review) CreatedAt() time.Time { return r.createdAt }
func (r *Review) UpdatedAt() time.Time { return r.updatedAt }

// IsAuthoredBy checks if the review was written by the given user.
func (r *Review) IsAuthoredBy(userID uuid.UUID) bool {
	return r.authorID == userID
}

// Edit changes rating and comment.
func (r *Review) Edit(rating int, comment string) error {
	if err := validateRating(rating); err != nil {
		return err
	}
	r.rating = rating
	r.comment = strings.TrimSpace(comment)
	r.updatedAt = time.Now().UTC()
	return nil
}

package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/unn-housing/service-booking/internal/domain"
	lodgeDomain "github.com/unn-housing/service-booking/internal/domain/lodge"
	reviewDomain "github.com/unn-housing/service-booking/internal/domain/review"
)

// ReviewRequest holds the rating and comment for a lodge review.
type ReviewRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

// ReviewDTO is the API response representation of a review.
type ReviewDTO struct {
	ID        uuid.UUID `json:"id"`
	LodgeID   uuid.UUID `json:"lodgeId"`
	AuthorID  uuid.UUID `json:"authorId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReviewService handles lodge review use cases.
type ReviewService struct {
	repo   reviewDomain.ReviewRepository
	lodges lodgeDomain.LodgeRepository
	logger *zap.Logger
}

// NewReviewService creates a new ReviewService.
func NewReviewService(repo reviewDomain.ReviewRepository, lodges lodgeDomain.LodgeRepository, logger *zap.Logger) *ReviewService {
	return &ReviewService{repo: repo, lodges: lodges, logger: logger}
}

// CreateReview adds a review to an existing lodge.
func (s *ReviewService) CreateReview(ctx context.Context, lodgeID, authorID uuid.UUID, req ReviewRequest) (*ReviewDTO, error) {
	if _, err := s.lodges.FindByID(ctx, lodgeID); err != nil {
		return nil, err
	}

	r, err := reviewDomain.NewReview(lodgeID, authorID, req.Rating, req.Comment)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, r); err != nil {
		return nil, err
	}

	s.logger.Info("review created",
		zap.String("review_id", r.ID().String()),
		zap.String("lodge_id", lodgeID.String()),
		zap.Int("rating", r.Rating()),
	)
	return toReviewDTO(r), nil
}

// GetLodgeReviews returns all reviews of a lodge.
func (s *ReviewService) GetLodgeReviews(ctx context.Context, lodgeID uuid.UUID) ([]*ReviewDTO, error) {
	reviews, err := s.repo.FindByLodgeID(ctx, lodgeID)
	if err != nil {
		return nil, err
	}

	dtos := make([]*ReviewDTO, len(reviews))
	for i, r := range reviews {
		dtos[i] = toReviewDTO(r)
	}
	return dtos, nil
}

// GetReview returns a single review.
func (s *ReviewService) GetReview(ctx context.Context, reviewID uuid.UUID) (*ReviewDTO, error) {
	r, err := s.repo.FindByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	return toReviewDTO(r), nil
}

// UpdateReview edits a review. Only its author may do this.
func (s *ReviewService) UpdateReview(ctx context.Context, reviewID, authorID uuid.UUID, req ReviewRequest) (*ReviewDTO, error) {
	r, err := s.loadAuthored(ctx, reviewID, authorID)
	if err != nil {
		return nil, err
	}

	if err := r.Edit(req.Rating, req.Comment); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, r); err != nil {
		return nil, err
	}
	return toReviewDTO(r), nil
}

// DeleteReview removes a review. Only its author may do this.
func (s *ReviewService) DeleteReview(ctx context.Context, reviewID, authorID uuid.UUID) error {
	if _, err := s.loadAuthored(ctx, reviewID, authorID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, reviewID)
}

func (s *ReviewService) loadAuthored(ctx context.Context, reviewID, authorID uuid.UUID) (*reviewDomain.Review, error) {
	r, err := s.repo.FindByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if !r.IsAuthoredBy(authorID) {
		return nil, domain.NewForbiddenError("you can only modify your own reviews")
	}
	return r, nil
}

func toReviewDTO(r *reviewDomain.Review) *ReviewDTO {
	return &ReviewDTO{
		ID:        r.ID(),
		LodgeID:   r.LodgeID(),
		AuthorID:  r.AuthorID(),
		Rating:    r.Rating(),
		Comment:   r.Comment(),
		CreatedAt: r.CreatedAt(),
		UpdatedAt: r.UpdatedAt(),
	}
}

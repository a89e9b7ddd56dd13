package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/unn-housing/service-booking/internal/auth"
	"github.com/unn-housing/service-booking/internal/domain"
	lodgeDomain "github.com/unn-housing/service-booking/internal/domain/lodge"
)

// LodgeRequest is the request DTO for creating or replacing a lodge listing.
type LodgeRequest struct {
	Title         string     `json:"title" binding:"required"`
	Description   string     `json:"description"`
	Location      string     `json:"location" binding:"required"`
	Type          string     `json:"type" binding:"required"`
	Rent          float64    `json:"rent"`
	Deposit       float64    `json:"deposit"`
	Bedrooms      int        `json:"bedrooms"`
	Bathrooms     int        `json:"bathrooms"`
	Amenities     []string   `json:"amenities"`
	AvailableFrom *time.Time `json:"availableFrom"`
	AvailableTo   *time.Time `json:"availableTo"`
}

func (r LodgeRequest) details() lodgeDomain.Details {
	return lodgeDomain.Details{
		Title:         r.Title,
		Description:   r.Description,
		Location:      r.Location,
		Type:          lodgeDomain.LodgeType(strings.ToUpper(strings.TrimSpace(r.Type))),
		Rent:          r.Rent,
		Deposit:       r.Deposit,
		Bedrooms:      r.Bedrooms,
		Bathrooms:     r.Bathrooms,
		Amenities:     r.Amenities,
		AvailableFrom: r.AvailableFrom,
		AvailableTo:   r.AvailableTo,
	}
}

// LodgeDTO is the API response representation of a lodge.
type LodgeDTO struct {
	ID            uuid.UUID  `json:"id"`
	OwnerID       uuid.UUID  `json:"ownerId"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	Location      string     `json:"location"`
	Type          string     `json:"type"`
	Rent          float64    `json:"rent"`
	Deposit       float64    `json:"deposit"`
	Bedrooms      int        `json:"bedrooms"`
	Bathrooms     int        `json:"bathrooms"`
	Amenities     []string   `json:"amenities"`
	AvailableFrom *time.Time `json:"availableFrom,omitempty"`
	AvailableTo   *time.Time `json:"availableTo,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// LodgeService implements use cases for lodge listings.
type LodgeService struct {
	repo   lodgeDomain.LodgeRepository
	logger *zap.Logger
}

// NewLodgeService creates a new LodgeService.
func NewLodgeService(repo lodgeDomain.LodgeRepository, logger *zap.Logger) *LodgeService {
	return &LodgeService{repo: repo, logger: logger}
}

// CreateLodge lists a new lodge for the given owner.
func (s *LodgeService) CreateLodge(ctx context.Context, ownerID uuid.UUID, req LodgeRequest) (*LodgeDTO, error) {
	l, err := lodgeDomain.NewLodge(ownerID, req.details())
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, l); err != nil {
		return nil, fmt.Errorf("failed to create lodge: %w", err)
	}

	s.logger.Info("lodge created",
		zap.String("lodge_id", l.ID().String()),
		zap.String("owner_id", ownerID.String()),
	)
	result := toLodgeDTO(l)
	return &result, nil
}

// ListLodges returns a page of lodges, newest first.
func (s *LodgeService) ListLodges(ctx context.Context, page, limit int) (*domain.PaginatedResult[LodgeDTO], error) {
	lodges, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list lodges: %w", err)
	}

	result := domain.NewPaginatedResult(toLodgeDTOs(lodges), total, page, limit)
	return &result, nil
}

// GetLodge returns a single lodge.
func (s *LodgeService) GetLodge(ctx context.Context, lodgeID uuid.UUID) (*LodgeDTO, error) {
	l, err := s.repo.FindByID(ctx, lodgeID)
	if err != nil {
		return nil, err
	}
	result := toLodgeDTO(l)
	return &result, nil
}

// GetMyLodges returns every lodge listed by the owner.
func (s *LodgeService) GetMyLodges(ctx context.Context, ownerID uuid.UUID) ([]LodgeDTO, error) {
	lodges, err := s.repo.FindByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get lodges: %w", err)
	}
	return toLodgeDTOs(lodges), nil
}

// UpdateLodge replaces a listing. Only its owner or an admin may do this.
func (s *LodgeService) UpdateLodge(ctx context.Context, caller auth.Identity, lodgeID uuid.UUID, req LodgeRequest) (*LodgeDTO, error) {
	l, err := s.loadManaged(ctx, caller, lodgeID)
	if err != nil {
		return nil, err
	}

	if err := l.Update(req.details()); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, l); err != nil {
		return nil, fmt.Errorf("failed to update lodge: %w", err)
	}

	s.logger.Info("lodge updated", zap.String("lodge_id", lodgeID.String()))
	result := toLodgeDTO(l)
	return &result, nil
}

// DeleteLodge removes a listing. Only its owner or an admin may do this.
func (s *LodgeService) DeleteLodge(ctx context.Context, caller auth.Identity, lodgeID uuid.UUID) error {
	if _, err := s.loadManaged(ctx, caller, lodgeID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, lodgeID); err != nil {
		if _, ok := domain.AsDomainError(err); ok {
			return err
		}
		return fmt.Errorf("failed to delete lodge: %w", err)
	}

	s.logger.Info("lodge deleted", zap.String("lodge_id", lodgeID.String()))
	return nil
}

func (s *LodgeService) loadManaged(ctx context.Context, caller auth.Identity, lodgeID uuid.UUID) (*lodgeDomain.Lodge, error) {
	l, err := s.repo.FindByID(ctx, lodgeID)
	if err != nil {
		return nil, err
	}
	if !l.IsOwnedBy(caller.UserID) && !caller.HasRole(auth.RoleAdmin) {
		return nil, domain.NewForbiddenError("you do not own this lodge")
	}
	return l, nil
}

func toLodgeDTO(l *lodgeDomain.Lodge) LodgeDTO {
	amenities := l.Amenities()
	if amenities == nil {
		amenities = []string{}
	}
	return LodgeDTO{
		ID:            l.ID(),
		OwnerID:       l.OwnerID(),
		Title:         l.Title(),
		Description:   l.Description(),
		Location:      l.Location(),
		Type:          string(l.Type()),
		Rent:          l.Rent(),
		Deposit:       l.Deposit(),
		Bedrooms:      l.Bedrooms(),
		Bathrooms:     l.Bathrooms(),
		Amenities:     amenities,
		AvailableFrom: l.AvailableFrom(),
		AvailableTo:   l.AvailableTo(),
		CreatedAt:     l.CreatedAt(),
		UpdatedAt:     l.UpdatedAt(),
	}
}

func toLodgeDTOs(lodges []*lodgeDomain.Lodge) []LodgeDTO {
	dtos := make([]LodgeDTO, len(lodges))
	for i, l := range lodges {
		dtos[i] = toLodgeDTO(l)
	}
	return dtos
}

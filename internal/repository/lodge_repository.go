package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/unn-housing/service-booking/internal/domain"
	lodgeDomain "github.com/unn-housing/service-booking/internal/domain/lodge"
)

// LodgeModel is the GORM model for the lodges table.
type LodgeModel struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey"`
	OwnerID       uuid.UUID      `gorm:"type:uuid;not null;index"`
	Title         string         `gorm:"type:varchar(200);not null"`
	Description   string         `gorm:"type:text"`
	Location      string         `gorm:"type:varchar(255);not null"`
	Type          string         `gorm:"type:varchar(20);not null"`
	Rent          float64        `gorm:"not null;default:0"`
	Deposit       float64        `gorm:"not null;default:0"`
	Bedrooms      int            `gorm:"not null;default:0"`
	Bathrooms     int            `gorm:"not null;default:0"`
	Amenities     datatypes.JSON `gorm:""`
	AvailableFrom *time.Time     `gorm:""`
	AvailableTo   *time.Time     `gorm:""`
	CreatedAt     time.Time      `gorm:"not null"`
	UpdatedAt     time.Time      `gorm:"not null"`
}

func (LodgeModel) TableName() string { return "lodges" }

// GormLodgeRepository implements LodgeRepository using GORM.
type GormLodgeRepository struct {
	db *gorm.DB
}

func NewGormLodgeRepository(db *gorm.DB) *GormLodgeRepository {
	return &GormLodgeRepository{db: db}
}

func (r *GormLodgeRepository) FindByID(ctx context.Context, id uuid.UUID) (*lodgeDomain.Lodge, error) {
	var model LodgeModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Lodge", id.String())
		}
		return nil, fmt.Errorf("failed to find lodge: %w", err)
	}
	return toLodgeDomain(&model)
}

func (r *GormLodgeRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*lodgeDomain.Lodge, error) {
	lodges := make(map[uuid.UUID]*lodgeDomain.Lodge, len(ids))
	if len(ids) == 0 {
		return lodges, nil
	}

	var models []LodgeModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find lodges: %w", err)
	}
	for i := range models {
		l, err := toLodgeDomain(&models[i])
		if err != nil {
			return nil, err
		}
		lodges[l.ID()] = l
	}
	return lodges, nil
}

func (r *GormLodgeRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*lodgeDomain.Lodge, error) {
	var models []LodgeModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find owner lodges: %w", err)
	}
	return toLodgeDomains(models)
}

func (r *GormLodgeRepository) List(ctx context.Context, page, limit int) ([]*lodgeDomain.Lodge, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&LodgeModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count lodges: %w", err)
	}

	var models []LodgeModel
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list lodges: %w", err)
	}

	lodges, err := toLodgeDomains(models)
	if err != nil {
		return nil, 0, err
	}
	return lodges, total, nil
}

func (r *GormLodgeRepository) Save(ctx context.Context, l *lodgeDomain.Lodge) error {
	model, err := toLodgeModel(l)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if derr, ok := translateWriteError(err); ok {
			return derr
		}
		return fmt.Errorf("failed to save lodge: %w", err)
	}
	return nil
}

func (r *GormLodgeRepository) Update(ctx context.Context, l *lodgeDomain.Lodge) error {
	model, err := toLodgeModel(l)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&LodgeModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "owner_id", "created_at").
		Updates(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update lodge: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Lodge", l.ID().String())
	}
	return nil
}

// Delete removes a lodge and its reviews. Lodges that still have bookings are refused.
func (r *GormLodgeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var bookings int64
		if err := tx.Model(&BookingModel{}).Where("lodge_id = ?", id).Count(&bookings).Error; err != nil {
			return fmt.Errorf("failed to count lodge bookings: %w", err)
		}
		if bookings > 0 {
			return domain.NewConflictError("lodge still has bookings")
		}

		if err := tx.Where("lodge_id = ?", id).Delete(&ReviewModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete lodge reviews: %w", err)
		}

		result := tx.Where("id = ?", id).Delete(&LodgeModel{})
		if result.Error != nil {
			if derr, ok := translateWriteError(result.Error); ok && derr.Kind == domain.KindNotFound {
				return domain.NewConflictError("lodge still has bookings")
			}
			return fmt.Errorf("failed to delete lodge: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.NewNotFoundError("Lodge", id.String())
		}
		return nil
	})
}

// --- Conversions ---

func toLodgeModel(l *lodgeDomain.Lodge) (*LodgeModel, error) {
	amenities := l.Amenities()
	if amenities == nil {
		amenities = []string{}
	}
	amenitiesJSON, err := json.Marshal(amenities)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal amenities: %w", err)
	}

	return &LodgeModel{
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
		Amenities:     datatypes.JSON(amenitiesJSON),
		AvailableFrom: l.AvailableFrom(),
		AvailableTo:   l.AvailableTo(),
		CreatedAt:     l.CreatedAt(),
		UpdatedAt:     l.UpdatedAt(),
	}, nil
}

func toLodgeDomain(m *LodgeModel) (*lodgeDomain.Lodge, error) {
	var amenities []string
	if len(m.Amenities) > 0 {
		if err := json.Unmarshal(m.Amenities, &amenities); err != nil {
			return nil, fmt.Errorf("failed to unmarshal amenities: %w", err)
		}
	}

	return lodgeDomain.Reconstruct(
		m.ID, m.OwnerID,
		lodgeDomain.Details{
			Title:         m.Title,
			Description:   m.Description,
			Location:      m.Location,
			Type:          lodgeDomain.LodgeType(m.Type),
			Rent:          m.Rent,
			Deposit:       m.Deposit,
			Bedrooms:      m.Bedrooms,
			Bathrooms:     m.Bathrooms,
			Amenities:     amenities,
			AvailableFrom: m.AvailableFrom,
			AvailableTo:   m.AvailableTo,
		},
		m.CreatedAt, m.UpdatedAt,
	), nil
}

func toLodgeDomains(models []LodgeModel) ([]*lodgeDomain.Lodge, error) {
	lodges := make([]*lodgeDomain.Lodge, len(models))
	for i := range models {
		l, err := toLodgeDomain(&models[i])
		if err != nil {
			return nil, err
		}
		lodges[i] = l
	}
	return lodges, nil
}

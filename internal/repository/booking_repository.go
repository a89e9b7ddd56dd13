package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/unn-housing/service-booking/internal/domain"
	bookingDomain "github.com/unn-housing/service-booking/internal/domain/booking"
)

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey"`
	TenantID       uuid.UUID      `gorm:"type:uuid;index;not null"`
	LodgeID        uuid.UUID      `gorm:"type:uuid;not null;index:idx_bookings_lodge_dates,priority:1"`
	CheckInDate    time.Time      `gorm:"not null;index:idx_bookings_lodge_dates,priority:2"`
	CheckOutDate   time.Time      `gorm:"not null"`
	Status         string         `gorm:"not null;size:20;index"`
	PaymentDetails datatypes.JSON `gorm:"not null"`
	TotalRent      float64        `gorm:"not null"`
	CreatedAt      time.Time      `gorm:"not null"`
	UpdatedAt      time.Time      `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// GormBookingRepository is the GORM-based implementation of BookingRepository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// FindByID retrieves a booking by its unique identifier.
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Booking", id.String())
		}
		return nil, fmt.Errorf("failed to find booking by ID: %w", err)
	}
	return toDomainBooking(&model)
}

// FindByIDAndTenant retrieves a booking only when it belongs to tenantID.
func (r *GormBookingRepository) FindByIDAndTenant(ctx context.Context, id, tenantID uuid.UUID) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Booking", id.String())
		}
		return nil, fmt.Errorf("failed to find tenant booking: %w", err)
	}
	return toDomainBooking(&model)
}

// FindByUnitID retrieves all bookings of a lodge ordered by check-in.
func (r *GormBookingRepository) FindByUnitID(ctx context.Context, unitID uuid.UUID) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := r.db.WithContext(ctx).
		Where("lodge_id = ?", unitID).
		Order("check_in_date ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find unit bookings: %w", err)
	}
	return toDomainBookings(models)
}

// FindByTenantID retrieves all bookings for a tenant, newest first.
func (r *GormBookingRepository) FindByTenantID(ctx context.Context, tenantID uuid.UUID) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find tenant bookings: %w", err)
	}
	return toDomainBookings(models)
}

// FindOverlapping returns bookings of unitID whose stay intersects the given
// half-open range, optionally skipping one booking.
func (r *GormBookingRepository) FindOverlapping(ctx context.Context, unitID uuid.UUID, stay bookingDomain.DateRange, excludeID *uuid.UUID) ([]*bookingDomain.Booking, error) {
	q := r.db.WithContext(ctx).
		Where("lodge_id = ?", unitID).
		Where("check_in_date < ? AND check_out_date > ?", stay.CheckOut(), stay.CheckIn())
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}

	var models []BookingModel
	if err := q.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find overlapping bookings: %w", err)
	}
	return toDomainBookings(models)
}

// Save persists a new booking.
func (r *GormBookingRepository) Save(ctx context.Context, bk *bookingDomain.Booking) error {
	model := toBookingModel(bk)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if derr, ok := translateWriteError(err); ok {
			return derr
		}
		return fmt.Errorf("failed to save booking: %w", err)
	}
	return nil
}

// Update persists the mutable fields of an existing booking.
func (r *GormBookingRepository) Update(ctx context.Context, bk *bookingDomain.Booking) error {
	model := toBookingModel(bk)
	result := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"check_in_date":   model.CheckInDate,
			"check_out_date":  model.CheckOutDate,
			"status":          model.Status,
			"payment_details": model.PaymentDetails,
			"total_rent":      model.TotalRent,
			"updated_at":      model.UpdatedAt,
		})

	if result.Error != nil {
		if derr, ok := translateWriteError(result.Error); ok {
			return derr
		}
		return fmt.Errorf("failed to update booking: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Booking", bk.ID().String())
	}
	return nil
}

// Delete hard-deletes a booking.
func (r *GormBookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&BookingModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete booking: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Booking", id.String())
	}
	return nil
}

// WithUnitLock runs fn inside a transaction that holds a row lock on the lodge.
// SQLite has no row locks, but it already serializes writers.
func (r *GormBookingRepository) WithUnitLock(ctx context.Context, unitID uuid.UUID, fn func(tx bookingDomain.BookingRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Model(&LodgeModel{}).Select("id").Where("id = ?", unitID)
		if tx.Dialector.Name() == "postgres" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var locked LodgeModel
		if err := q.First(&locked).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewNotFoundError("Lodge", unitID.String())
			}
			return fmt.Errorf("failed to lock lodge: %w", err)
		}

		return fn(&GormBookingRepository{db: tx})
	})
}

// ListAll retrieves all bookings with pagination (admin).
func (r *GormBookingRepository) ListAll(ctx context.Context, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	var models []BookingModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}

	bookings, err := toDomainBookings(models)
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

// CountByStatus returns booking counts grouped by status (admin).
func (r *GormBookingRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var results []statusCount
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to count by status: %w", err)
	}

	counts := make(map[string]int64)
	for _, sc := range results {
		counts[sc.Status] = sc.Count
	}
	return counts, nil
}

// --- Conversion Helpers ---

func toBookingModel(bk *bookingDomain.Booking) *BookingModel {
	return &BookingModel{
		ID:             bk.ID(),
		TenantID:       bk.TenantID(),
		LodgeID:        bk.UnitID(),
		CheckInDate:    bk.CheckIn(),
		CheckOutDate:   bk.CheckOut(),
		Status:         string(bk.Status()),
		PaymentDetails: datatypes.JSON(bk.PaymentDetails()),
		TotalRent:      bk.TotalRent(),
		CreatedAt:      bk.CreatedAt(),
		UpdatedAt:      bk.UpdatedAt(),
	}
}

func toDomainBooking(m *BookingModel) (*bookingDomain.Booking, error) {
	status, err := bookingDomain.ParseBookingStatus(m.Status)
	if err != nil {
		return nil, err
	}

	return bookingDomain.ReconstructBooking(
		m.ID,
		m.TenantID,
		m.LodgeID,
		m.CheckInDate,
		m.CheckOutDate,
		status,
		[]byte(m.PaymentDetails),
		m.TotalRent,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}

func toDomainBookings(models []BookingModel) ([]*bookingDomain.Booking, error) {
	bookings := make([]*bookingDomain.Booking, len(models))
	for i := range models {
		bk, err := toDomainBooking(&models[i])
		if err != nil {
			return nil, err
		}
		bookings[i] = bk
	}
	return bookings, nil
}

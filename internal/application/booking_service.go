package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/unn-housing/service-booking/internal/domain"
	bookingDomain "github.com/unn-housing/service-booking/internal/domain/booking"
	lodgeDomain "github.com/unn-housing/service-booking/internal/domain/lodge"
	userDomain "github.com/unn-housing/service-booking/internal/domain/user"
	"github.com/unn-housing/service-booking/internal/events"
)

const msgTenantOrLodgeNotFound = "Tenant or Lodge not found"

// CreateBookingRequest holds the data needed to create a new booking.
// The unit may be given as unitId, propertyId or lodgeId.
type CreateBookingRequest struct {
	UnitID       string `json:"unitId"`
	PropertyID   string `json:"propertyId"`
	LodgeID      string `json:"lodgeId"`
	CheckInDate  string `json:"checkInDate"`
	CheckOutDate string `json:"checkOutDate"`
}

// UnitRef returns the first unit identifier present in the request.
func (r CreateBookingRequest) UnitRef() string {
	for _, ref := range []string{r.UnitID, r.PropertyID, r.LodgeID} {
		if s := strings.TrimSpace(ref); s != "" {
			return s
		}
	}
	return ""
}

// HasRequiredFields reports whether the unit and both dates are present.
func (r CreateBookingRequest) HasRequiredFields() bool {
	return r.UnitRef() != "" && strings.TrimSpace(r.CheckInDate) != "" && strings.TrimSpace(r.CheckOutDate) != ""
}

// UpdateBookingRequest carries the fields a tenant may change. Nil means unchanged.
type UpdateBookingRequest struct {
	CheckInDate    *string         `json:"checkInDate"`
	CheckOutDate   *string         `json:"checkOutDate"`
	PaymentDetails json.RawMessage `json:"paymentDetails"`
}

func (r UpdateBookingRequest) isEmpty() bool {
	return r.CheckInDate == nil && r.CheckOutDate == nil && len(r.PaymentDetails) == 0
}

// TenantSummaryDTO is the tenant attached to bookings listed by unit.
type TenantSummaryDTO struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
}

// UnitSummaryDTO is the lodge attached to bookings listed by tenant.
type UnitSummaryDTO struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Location string    `json:"location"`
	Rent     float64   `json:"rent"`
}

// BookingDTO is the response representation of a booking.
type BookingDTO struct {
	ID             uuid.UUID         `json:"id"`
	TenantID       uuid.UUID         `json:"tenantId"`
	UnitID         uuid.UUID         `json:"unitId"`
	CheckInDate    time.Time         `json:"checkInDate"`
	CheckOutDate   time.Time         `json:"checkOutDate"`
	Status         string            `json:"status"`
	PaymentDetails json.RawMessage   `json:"paymentDetails"`
	TotalRent      float64           `json:"totalRent"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
	Tenant         *TenantSummaryDTO `json:"tenant,omitempty"`
	Unit           *UnitSummaryDTO   `json:"unit,omitempty"`
}

// BookingStatsDTO holds aggregate booking statistics.
type BookingStatsDTO struct {
	TotalBookings int64            `json:"totalBookings"`
	ByStatus      map[string]int64 `json:"byStatus"`
}

// BookingService is the application service orchestrating booking use cases.
type BookingService struct {
	repo             bookingDomain.BookingRepository
	users            userDomain.UserRepository
	lodges           lodgeDomain.LodgeRepository
	publisher        events.Publisher
	defaultTotalRent float64
	logger           *zap.Logger
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	repo bookingDomain.BookingRepository,
	users userDomain.UserRepository,
	lodges lodgeDomain.LodgeRepository,
	publisher events.Publisher,
	defaultTotalRent float64,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		repo:             repo,
		users:            users,
		lodges:           lodges,
		publisher:        publisher,
		defaultTotalRent: defaultTotalRent,
		logger:           logger,
	}
}

// CreateBooking books a unit for the tenant if the stay is free.
func (s *BookingService) CreateBooking(ctx context.Context, tenantID uuid.UUID, req CreateBookingRequest) (*BookingDTO, error) {
	unitID, err := uuid.Parse(req.UnitRef())
	if err != nil {
		return nil, domain.NewValidationError("invalid unit ID")
	}
	checkIn, err := bookingDomain.ParseDate(req.CheckInDate)
	if err != nil {
		return nil, err
	}
	checkOut, err := bookingDomain.ParseDate(req.CheckOutDate)
	if err != nil {
		return nil, err
	}

	if err := s.ensureTenantAndUnit(ctx, tenantID, unitID); err != nil {
		return nil, err
	}

	stay, err := bookingDomain.NewDateRange(checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	var created *bookingDomain.Booking
	err = s.repo.WithUnitLock(ctx, unitID, func(tx bookingDomain.BookingRepository) error {
		if err := bookingDomain.NewAvailabilityChecker(tx).EnsureAvailable(ctx, unitID, stay, nil); err != nil {
			return err
		}

		bk, err := bookingDomain.NewBooking(tenantID, unitID, stay, s.defaultTotalRent)
		if err != nil {
			return err
		}
		if err := tx.Save(ctx, bk); err != nil {
			return err
		}
		created = bk
		return nil
	})
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewNotFoundMessage(msgTenantOrLodgeNotFound)
		}
		return nil, err
	}

	s.logger.Info("booking created",
		zap.String("booking_id", created.ID().String()),
		zap.String("tenant_id", tenantID.String()),
		zap.String("unit_id", unitID.String()),
		zap.Stringer("stay", created.Stay()),
	)
	s.publishBookingEvent(ctx, events.BookingCreated, created)

	result := toBookingDTO(created)
	return &result, nil
}

// GetBookingsByUnit lists every booking of a unit with its tenant attached.
func (s *BookingService) GetBookingsByUnit(ctx context.Context, unitID uuid.UUID) ([]BookingDTO, error) {
	bookings, err := s.repo.FindByUnitID(ctx, unitID)
	if err != nil {
		return nil, fmt.Errorf("failed to get unit bookings: %w", err)
	}

	tenantIDs := make([]uuid.UUID, 0, len(bookings))
	for _, bk := range bookings {
		tenantIDs = append(tenantIDs, bk.TenantID())
	}
	tenants, err := s.users.FindByIDs(ctx, uniqueIDs(tenantIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to load booking tenants: %w", err)
	}

	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		dtos[i] = toBookingDTO(bk)
		if t, ok := tenants[bk.TenantID()]; ok {
			dtos[i].Tenant = toTenantSummary(t)
		}
	}
	return dtos, nil
}

// GetBookingsByTenant lists the tenant's bookings with their units attached.
func (s *BookingService) GetBookingsByTenant(ctx context.Context, tenantID uuid.UUID) ([]BookingDTO, error) {
	bookings, err := s.repo.FindByTenantID(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tenant bookings: %w", err)
	}
	return s.withUnits(ctx, bookings)
}

// GetBookingByTenant returns one of the tenant's bookings. Bookings owned by
// someone else are reported as not found.
func (s *BookingService) GetBookingByTenant(ctx context.Context, tenantID, bookingID uuid.UUID) (*BookingDTO, error) {
	bk, err := s.repo.FindByIDAndTenant(ctx, bookingID, tenantID)
	if err != nil {
		return nil, err
	}

	return s.withUnit(ctx, bk)
}

// UpdateBookingByTenant applies a partial update. Ownership is checked first;
// the merged stay is re-validated and, when it moved, re-checked for overlaps.
func (s *BookingService) UpdateBookingByTenant(ctx context.Context, tenantID, bookingID uuid.UUID, req UpdateBookingRequest) (*BookingDTO, error) {
	bk, err := s.repo.FindByIDAndTenant(ctx, bookingID, tenantID)
	if err != nil {
		return nil, err
	}
	if req.isEmpty() {
		return s.withUnit(ctx, bk)
	}

	checkIn, err := parseOptionalDate(req.CheckInDate)
	if err != nil {
		return nil, err
	}
	checkOut, err := parseOptionalDate(req.CheckOutDate)
	if err != nil {
		return nil, err
	}
	if _, err := bk.Stay().Merge(checkIn, checkOut); err != nil {
		return nil, err
	}

	var updated *bookingDomain.Booking
	err = s.repo.WithUnitLock(ctx, bk.UnitID(), func(tx bookingDomain.BookingRepository) error {
		// Reload under the lock so the merge starts from the committed row.
		current, err := tx.FindByIDAndTenant(ctx, bookingID, tenantID)
		if err != nil {
			return err
		}

		stay, err := current.Stay().Merge(checkIn, checkOut)
		if err != nil {
			return err
		}
		if !stay.Equal(current.Stay()) {
			id := current.ID()
			if err := bookingDomain.NewAvailabilityChecker(tx).EnsureAvailable(ctx, current.UnitID(), stay, &id); err != nil {
				return err
			}
			if err := current.Reschedule(stay); err != nil {
				return err
			}
		}
		if len(req.PaymentDetails) > 0 {
			if err := current.ReplacePaymentDetails(req.PaymentDetails); err != nil {
				return err
			}
		}

		if err := tx.Update(ctx, current); err != nil {
			return err
		}
		updated = current
		return nil
	})
	if err != nil {
		var derr *domain.DomainError
		if errors.As(err, &derr) && derr.Kind == domain.KindNotFound && derr.Entity == "Lodge" {
			return nil, domain.NewNotFoundError("Booking", bookingID.String())
		}
		return nil, err
	}

	s.logger.Info("booking updated",
		zap.String("booking_id", updated.ID().String()),
		zap.String("tenant_id", tenantID.String()),
		zap.Stringer("stay", updated.Stay()),
	)
	s.publishBookingEvent(ctx, events.BookingUpdated, updated)

	return s.withUnit(ctx, updated)
}

// CancelBookingByTenant hard-deletes one of the tenant's bookings and returns
// it as it was before deletion.
func (s *BookingService) CancelBookingByTenant(ctx context.Context, tenantID, bookingID uuid.UUID) (*BookingDTO, error) {
	bk, err := s.repo.FindByIDAndTenant(ctx, bookingID, tenantID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, bk.ID()); err != nil {
		if domain.IsNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to cancel booking: %w", err)
	}

	s.logger.Info("booking cancelled",
		zap.String("booking_id", bk.ID().String()),
		zap.String("tenant_id", tenantID.String()),
	)
	s.publishBookingEvent(ctx, events.BookingCancelled, bk)

	return s.withUnit(ctx, bk)
}

// ListAllBookings returns a paginated list of all bookings (admin).
func (s *BookingService) ListAllBookings(ctx context.Context, page, limit int) ([]BookingDTO, int64, error) {
	bookings, total, err := s.repo.ListAll(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}

	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		dtos[i] = toBookingDTO(bk)
	}
	return dtos, total, nil
}

// GetBookingStats returns aggregate booking statistics (admin).
func (s *BookingService) GetBookingStats(ctx context.Context) (*BookingStatsDTO, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking stats: %w", err)
	}

	var total int64
	for _, c := range counts {
		total += c
	}

	return &BookingStatsDTO{
		TotalBookings: total,
		ByStatus:      counts,
	}, nil
}

// --- Helpers ---

func (s *BookingService) ensureTenantAndUnit(ctx context.Context, tenantID, unitID uuid.UUID) error {
	if _, err := s.users.FindByID(ctx, tenantID); err != nil {
		if domain.IsNotFound(err) {
			return domain.NewNotFoundMessage(msgTenantOrLodgeNotFound)
		}
		return fmt.Errorf("failed to load tenant: %w", err)
	}
	if _, err := s.lodges.FindByID(ctx, unitID); err != nil {
		if domain.IsNotFound(err) {
			return domain.NewNotFoundMessage(msgTenantOrLodgeNotFound)
		}
		return fmt.Errorf("failed to load lodge: %w", err)
	}
	return nil
}

func (s *BookingService) withUnits(ctx context.Context, bookings []*bookingDomain.Booking) ([]BookingDTO, error) {
	unitIDs := make([]uuid.UUID, 0, len(bookings))
	for _, bk := range bookings {
		unitIDs = append(unitIDs, bk.UnitID())
	}
	units, err := s.lodges.FindByIDs(ctx, uniqueIDs(unitIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to load booking units: %w", err)
	}

	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		dtos[i] = toBookingDTO(bk)
		if l, ok := units[bk.UnitID()]; ok {
			dtos[i].Unit = toUnitSummary(l)
		}
	}
	return dtos, nil
}

func (s *BookingService) withUnit(ctx context.Context, bk *bookingDomain.Booking) (*BookingDTO, error) {
	dtos, err := s.withUnits(ctx, []*bookingDomain.Booking{bk})
	if err != nil {
		return nil, err
	}
	return &dtos[0], nil
}

func parseOptionalDate(raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	t, err := bookingDomain.ParseDate(*raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func toBookingDTO(bk *bookingDomain.Booking) BookingDTO {
	return BookingDTO{
		ID:             bk.ID(),
		TenantID:       bk.TenantID(),
		UnitID:         bk.UnitID(),
		CheckInDate:    bk.CheckIn(),
		CheckOutDate:   bk.CheckOut(),
		Status:         string(bk.Status()),
		PaymentDetails: bk.PaymentDetails(),
		TotalRent:      bk.TotalRent(),
		CreatedAt:      bk.CreatedAt(),
		UpdatedAt:      bk.UpdatedAt(),
	}
}

func toTenantSummary(u *userDomain.User) *TenantSummaryDTO {
	return &TenantSummaryDTO{
		ID:        u.ID(),
		FirstName: u.FirstName(),
		LastName:  u.LastName(),
		Email:     u.Email(),
	}
}

func toUnitSummary(l *lodgeDomain.Lodge) *UnitSummaryDTO {
	return &UnitSummaryDTO{
		ID:       l.ID(),
		Title:    l.Title(),
		Location: l.Location(),
		Rent:     l.Rent(),
	}
}

func (s *BookingService) publishBookingEvent(ctx context.Context, eventType string, bk *bookingDomain.Booking) {
	evt := events.BookingEvent{
		BookingID:    bk.ID(),
		TenantID:     bk.TenantID(),
		UnitID:       bk.UnitID(),
		CheckInDate:  bk.CheckIn(),
		CheckOutDate: bk.CheckOut(),
		Status:       string(bk.Status()),
		TotalRent:    bk.TotalRent(),
		OccurredAt:   time.Now().UTC(),
	}
	s.publishEvent(ctx, eventType, bk.ID().String(), evt)
}

func (s *BookingService) publishEvent(ctx context.Context, eventType, key string, data interface{}) {
	cloudEvent, err := events.NewCloudEvent(events.Source, eventType, key, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := s.publisher.Publish(ctx, key, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("event_type", eventType),
			zap.String("key", key),
			zap.Error(err),
		)
	}
}

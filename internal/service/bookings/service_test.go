package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-FacilityService/internal/infra/storage/booking"
	facilityRepo "github.com/m04kA/SMC-FacilityService/internal/infra/storage/facility"
	identityClient "github.com/m04kA/SMC-FacilityService/internal/integrations/identityservice"
	"github.com/m04kA/SMC-FacilityService/internal/service/bookings/models"
	"github.com/m04kA/SMC-FacilityService/pkg/types"
)

// Фейки зависимостей

type fakeBookingRepo struct {
	bookings       map[int64]*domain.Booking
	byEmail        []*domain.Booking
	cancelledID    int64
	cancelReason   string
	updatedStatus  domain.BookingStatus
	updatedPatches []domain.BookingPatch
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	r := &fakeBookingRepo{bookings: make(map[int64]*domain.Booking)}
	for _, b := range bookings {
		r.bookings[b.ID] = b
	}
	return r
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if b, ok := r.bookings[id]; ok {
		return b, nil
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (r *fakeBookingRepo) GetByUserEmail(_ context.Context, _ string, _ *domain.BookingStatus) ([]*domain.Booking, error) {
	return r.byEmail, nil
}

func (r *fakeBookingRepo) Update(_ context.Context, id int64, patch domain.BookingPatch) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	r.updatedPatches = append(r.updatedPatches, patch)
	updated := *b
	if patch.DurationHours != nil {
		updated.DurationHours = *patch.DurationHours
	}
	if patch.Attendees != nil {
		updated.Attendees = *patch.Attendees
	}
	return &updated, nil
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	if _, ok := r.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	r.updatedStatus = status
	return nil
}

func (r *fakeBookingRepo) Cancel(_ context.Context, id int64, reason string) error {
	if _, ok := r.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	r.cancelledID = id
	r.cancelReason = reason
	return nil
}

type fakeFacilityRepo struct {
	facility *domain.Facility
	err      error
}

func (r *fakeFacilityRepo) GetByID(_ context.Context, _ int64) (*domain.Facility, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.facility, nil
}

type fakeIdentityClient struct {
	users map[string]*identityClient.User
}

func (c *fakeIdentityClient) GetUser(_ context.Context, email string) (*identityClient.User, error) {
	if u, ok := c.users[email]; ok {
		return u, nil
	}
	return nil, identityClient.ErrUserNotFound
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Хелперы

const (
	ownerEmail = "owner@example.com"
	adminEmail = "admin@example.com"
	otherEmail = "other@example.com"
)

func identityWithAdmin() *fakeIdentityClient {
	return &fakeIdentityClient{users: map[string]*identityClient.User{
		ownerEmail: {Email: ownerEmail, Name: "Owner", Role: identityClient.RoleUser},
		adminEmail: {Email: adminEmail, Name: "Admin", Role: identityClient.RoleAdmin},
		otherEmail: {Email: otherEmail, Name: "Other", Role: identityClient.RoleUser},
	}}
}

func confirmedBooking(id int64, date string, start string) *domain.Booking {
	d, _ := time.Parse(domain.DateFormat, date)
	return &domain.Booking{
		ID:            id,
		Reference:     "ref-1",
		FacilityID:    10,
		UserEmail:     ownerEmail,
		BookingDate:   d,
		StartTime:     types.TimeString(start),
		DurationHours: 2,
		Attendees:     10,
		Status:        domain.StatusConfirmed,
	}
}

func testService(repo *fakeBookingRepo, facilities *fakeFacilityRepo, now time.Time) *Service {
	return NewServiceWithTimeProvider(
		repo,
		facilities,
		identityWithAdmin(),
		&fixedTimeProvider{now: now},
		nopLogger{},
	)
}

// Тесты

func TestGetByID_OwnerAndAdmin(t *testing.T) {
	booking := confirmedBooking(1, "2026-03-15", "10:00")
	svc := testService(newFakeBookingRepo(booking), &fakeFacilityRepo{}, time.Now())

	resp, err := svc.GetByID(context.Background(), 1, ownerEmail)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)

	_, err = svc.GetByID(context.Background(), 1, adminEmail)
	require.NoError(t, err)

	_, err = svc.GetByID(context.Background(), 1, otherEmail)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := testService(newFakeBookingRepo(), &fakeFacilityRepo{}, time.Now())

	_, err := svc.GetByID(context.Background(), 404, ownerEmail)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetUserBookings_Grouping(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	repo := newFakeBookingRepo()
	upcoming := confirmedBooking(1, "2026-03-15", "10:00")
	past := confirmedBooking(2, "2026-03-01", "10:00")
	cancelled := confirmedBooking(3, "2026-03-20", "10:00")
	cancelled.Status = domain.StatusCancelled
	repo.byEmail = []*domain.Booking{upcoming, past, cancelled}

	svc := testService(repo, &fakeFacilityRepo{}, now)

	resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserEmail:  ownerEmail,
		ActorEmail: ownerEmail,
	})
	require.NoError(t, err)

	require.Len(t, resp.Upcoming, 1)
	require.Len(t, resp.Past, 1)
	require.Len(t, resp.Cancelled, 1)
	assert.Equal(t, int64(1), resp.Upcoming[0].ID)
	assert.Equal(t, int64(2), resp.Past[0].ID)
	assert.Equal(t, int64(3), resp.Cancelled[0].ID)
}

func TestGetUserBookings_AccessControl(t *testing.T) {
	svc := testService(newFakeBookingRepo(), &fakeFacilityRepo{}, time.Now())

	// Чужую историю может смотреть только администратор
	_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserEmail:  ownerEmail,
		ActorEmail: otherEmail,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserEmail:  ownerEmail,
		ActorEmail: adminEmail,
	})
	require.NoError(t, err)
}

func TestCancel_WithinWindow(t *testing.T) {
	booking := confirmedBooking(1, "2026-03-15", "14:00")
	repo := newFakeBookingRepo(booking)
	// За двое суток до начала
	svc := testService(repo, &fakeFacilityRepo{}, time.Date(2026, 3, 13, 14, 0, 0, 0, time.UTC))

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		ActorEmail:         ownerEmail,
		CancellationReason: "plans changed",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), repo.cancelledID)
	assert.Equal(t, "plans changed", repo.cancelReason)
}

func TestCancel_WindowExpiredForOwner(t *testing.T) {
	booking := confirmedBooking(1, "2026-03-15", "14:00")
	repo := newFakeBookingRepo(booking)
	// Менее 24 часов до начала
	svc := testService(repo, &fakeFacilityRepo{}, time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC))

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{ActorEmail: ownerEmail})
	assert.ErrorIs(t, err, ErrCancellationWindowExpired)
}

func TestCancel_AdminBypassesWindow(t *testing.T) {
	booking := confirmedBooking(1, "2026-03-15", "14:00")
	repo := newFakeBookingRepo(booking)
	svc := testService(repo, &fakeFacilityRepo{}, time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC))

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{ActorEmail: adminEmail})
	require.NoError(t, err)
	assert.Equal(t, int64(1), repo.cancelledID)
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	booking := confirmedBooking(1, "2026-03-15", "14:00")
	booking.Status = domain.StatusCancelled
	svc := testService(newFakeBookingRepo(booking), &fakeFacilityRepo{}, time.Now())

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{ActorEmail: ownerEmail})
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
}

func TestCancel_CompletedCannotBeCancelled(t *testing.T) {
	booking := confirmedBooking(1, "2026-03-15", "14:00")
	booking.Status = domain.StatusCompleted
	svc := testService(newFakeBookingRepo(booking), &fakeFacilityRepo{}, time.Now())

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{ActorEmail: ownerEmail})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestUpdate_DoesNotRecomputeTotalAmount(t *testing.T) {
	booking := confirmedBooking(1, "2026-03-15", "10:00")
	booking.TotalAmount = 200
	repo := newFakeBookingRepo(booking)
	facility := &domain.Facility{ID: 10, Capacity: domain.Capacity{Min: 1, Max: 50}}
	svc := testService(repo, &fakeFacilityRepo{facility: facility}, time.Now())

	hours := 4
	resp, err := svc.Update(context.Background(), 1, &models.UpdateBookingRequest{
		ActorEmail:    ownerEmail,
		DurationHours: &hours,
	})
	require.NoError(t, err)

	// Длительность изменилась, сумма зафиксирована на момент создания
	assert.Equal(t, 4, resp.DurationHours)
	assert.Equal(t, 200.0, resp.TotalAmount)
}

func TestUpdate_CapacityCheck(t *testing.T) {
	booking := confirmedBooking(1, "2026-03-15", "10:00")
	facility := &domain.Facility{ID: 10, Capacity: domain.Capacity{Min: 1, Max: 20}}
	svc := testService(newFakeBookingRepo(booking), &fakeFacilityRepo{facility: facility}, time.Now())

	attendees := 21
	_, err := svc.Update(context.Background(), 1, &models.UpdateBookingRequest{
		ActorEmail: ownerEmail,
		Attendees:  &attendees,
	})
	assert.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestUpdate_FacilityDeletedSkipsCapacityCheck(t *testing.T) {
	booking := confirmedBooking(1, "2026-03-15", "10:00")
	svc := testService(
		newFakeBookingRepo(booking),
		&fakeFacilityRepo{err: facilityRepo.ErrFacilityNotFound},
		time.Now(),
	)

	attendees := 500
	_, err := svc.Update(context.Background(), 1, &models.UpdateBookingRequest{
		ActorEmail: ownerEmail,
		Attendees:  &attendees,
	})
	require.NoError(t, err)
}

func TestUpdate_CancelledCannotBeUpdated(t *testing.T) {
	booking := confirmedBooking(1, "2026-03-15", "10:00")
	booking.Status = domain.StatusCancelled
	svc := testService(newFakeBookingRepo(booking), &fakeFacilityRepo{}, time.Now())

	hours := 3
	_, err := svc.Update(context.Background(), 1, &models.UpdateBookingRequest{
		ActorEmail:    ownerEmail,
		DurationHours: &hours,
	})
	assert.ErrorIs(t, err, ErrCannotUpdate)
}

func TestUpdate_EmptyPatch(t *testing.T) {
	booking := confirmedBooking(1, "2026-03-15", "10:00")
	svc := testService(newFakeBookingRepo(booking), &fakeFacilityRepo{}, time.Now())

	_, err := svc.Update(context.Background(), 1, &models.UpdateBookingRequest{ActorEmail: ownerEmail})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateStatus_AdminOnly(t *testing.T) {
	booking := confirmedBooking(1, "2026-03-15", "10:00")
	repo := newFakeBookingRepo(booking)
	svc := testService(repo, &fakeFacilityRepo{}, time.Now())

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		ActorEmail: ownerEmail,
		Status:     "completed",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	err = svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		ActorEmail: adminEmail,
		Status:     "completed",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, repo.updatedStatus)
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	booking := confirmedBooking(1, "2026-03-15", "10:00")
	svc := testService(newFakeBookingRepo(booking), &fakeFacilityRepo{}, time.Now())

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		ActorEmail: adminEmail,
		Status:     "pending",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

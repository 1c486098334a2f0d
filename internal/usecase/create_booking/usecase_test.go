package create_booking

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
	"github.com/m04kA/SMC-FacilityService/pkg/types"
)

// Фейки зависимостей

type fakeBookingRepo struct {
	byReference map[string]*domain.Booking
	existing    []*domain.Booking
	created     []*domain.Booking
	createErr   error
	nextID      int64
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{byReference: make(map[string]*domain.Booking), nextID: 1}
}

func (r *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	created := *b
	created.ID = r.nextID
	created.CreatedAt = time.Now()
	r.nextID++
	r.created = append(r.created, &created)
	r.byReference[created.Reference] = &created
	return &created, nil
}

func (r *fakeBookingRepo) GetByReference(_ context.Context, reference string) (*domain.Booking, error) {
	if b, ok := r.byReference[reference]; ok {
		return b, nil
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (r *fakeBookingRepo) GetByFacilityWithFilter(_ context.Context, _ domain.FacilityBookingsFilter) ([]*domain.Booking, error) {
	return r.existing, nil
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
	user *identityClient.User
}

func (c *fakeIdentityClient) GetUserWithGracefulDegradation(_ context.Context, _ string) (*identityClient.User, error) {
	return c.user, nil
}

type fakeTxManager struct{}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// Хелперы

func testFacility() *domain.Facility {
	return &domain.Facility{
		ID:       10,
		Name:     "Conference Hall West",
		Category: domain.CategoryConferenceHall,
		Capacity: domain.Capacity{Min: 5, Max: 50},
		Pricing:  domain.Pricing{Hourly: 100, HalfDay: 350, FullDay: 600},
		OperatingHours: domain.OperatingHours{
			Start: types.TimeString("08:00"),
			End:   types.TimeString("22:00"),
		},
		Status: domain.FacilityAvailable,
	}
}

func testUseCase(t *testing.T, bookings *fakeBookingRepo, facilities *fakeFacilityRepo) *UseCase {
	t.Helper()
	return NewUseCaseWithTimeProvider(
		bookings,
		facilities,
		&fakeIdentityClient{},
		&fakeTxManager{},
		&fixedTimeProvider{now: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)},
		nopLogger{},
	)
}

func validRequest() *CreateBookingRequest {
	return &CreateBookingRequest{
		FacilityID:    10,
		BookingDate:   "2026-03-15",
		StartTime:     "10:00",
		DurationHours: 2,
		Attendees:     20,
		Purpose:       "Team planning session",
		UserName:      "Alex Chen",
		UserEmail:     "alex@example.com",
		UserPhone:     "+1-555-0100",
	}
}

// Тесты

func TestExecute_Success(t *testing.T) {
	bookings := newFakeBookingRepo()
	uc := testUseCase(t, bookings, &fakeFacilityRepo{facility: testFacility()})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.NotEmpty(t, resp.Reference)
	assert.Equal(t, "Conference Hall West", resp.FacilityName)
	assert.Equal(t, "12:00", resp.EndTime)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	// TotalAmount = почасовая ставка * длительность
	assert.Equal(t, 200.0, resp.TotalAmount)
}

func TestExecute_FacilityNotFound(t *testing.T) {
	uc := testUseCase(t, newFakeBookingRepo(), &fakeFacilityRepo{err: facilityRepo.ErrFacilityNotFound})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrFacilityNotFound)
}

func TestExecute_CapacityExceeded(t *testing.T) {
	uc := testUseCase(t, newFakeBookingRepo(), &fakeFacilityRepo{facility: testFacility()})

	req := validRequest()
	req.Attendees = 51

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestExecute_OutsideOperatingHours(t *testing.T) {
	uc := testUseCase(t, newFakeBookingRepo(), &fakeFacilityRepo{facility: testFacility()})

	tests := []struct {
		name  string
		start string
		hours int
	}{
		{name: "before opening", start: "07:00", hours: 2},
		{name: "ends after closing", start: "21:00", hours: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			req.StartTime = tt.start
			req.DurationHours = tt.hours

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrOutsideOperatingHours)
		})
	}
}

func TestExecute_SlotConflict(t *testing.T) {
	bookings := newFakeBookingRepo()
	date, _ := time.Parse(domain.DateFormat, "2026-03-15")
	bookings.existing = []*domain.Booking{{
		ID:            99,
		FacilityID:    10,
		BookingDate:   date,
		StartTime:     types.TimeString("11:00"),
		DurationHours: 2,
		Status:        domain.StatusConfirmed,
	}}

	uc := testUseCase(t, bookings, &fakeFacilityRepo{facility: testFacility()})

	// 10:00-12:00 пересекается с существующим 11:00-13:00
	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_BoundaryTouchIsNotConflict(t *testing.T) {
	bookings := newFakeBookingRepo()
	date, _ := time.Parse(domain.DateFormat, "2026-03-15")
	bookings.existing = []*domain.Booking{{
		ID:            99,
		FacilityID:    10,
		BookingDate:   date,
		StartTime:     types.TimeString("12:00"),
		DurationHours: 2,
		Status:        domain.StatusConfirmed,
	}}

	uc := testUseCase(t, bookings, &fakeFacilityRepo{facility: testFacility()})

	// 10:00-12:00 заканчивается ровно там, где начинается 12:00-14:00
	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
}

func TestExecute_CancelledBookingDoesNotBlock(t *testing.T) {
	bookings := newFakeBookingRepo()
	date, _ := time.Parse(domain.DateFormat, "2026-03-15")
	bookings.existing = []*domain.Booking{{
		ID:            99,
		FacilityID:    10,
		BookingDate:   date,
		StartTime:     types.TimeString("10:00"),
		DurationHours: 2,
		Status:        domain.StatusCancelled,
	}}

	uc := testUseCase(t, bookings, &fakeFacilityRepo{facility: testFacility()})

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
}

func TestExecute_IdempotentReplay(t *testing.T) {
	bookings := newFakeBookingRepo()
	uc := testUseCase(t, bookings, &fakeFacilityRepo{facility: testFacility()})

	req := validRequest()
	req.Reference = "client-key-42"

	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// Повтор с тем же ключом возвращает то же бронирование без новой вставки
	second, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Reference, second.Reference)
	assert.Len(t, bookings.created, 1)
}

func TestExecute_Validation(t *testing.T) {
	uc := testUseCase(t, newFakeBookingRepo(), &fakeFacilityRepo{facility: testFacility()})

	tests := []struct {
		name   string
		mutate func(*CreateBookingRequest)
	}{
		{name: "missing facility", mutate: func(r *CreateBookingRequest) { r.FacilityID = 0 }},
		{name: "missing user name", mutate: func(r *CreateBookingRequest) { r.UserName = "" }},
		{name: "missing purpose", mutate: func(r *CreateBookingRequest) { r.Purpose = "  " }},
		{name: "missing phone", mutate: func(r *CreateBookingRequest) { r.UserPhone = "" }},
		{name: "zero duration", mutate: func(r *CreateBookingRequest) { r.DurationHours = 0 }},
		{name: "duration too long", mutate: func(r *CreateBookingRequest) { r.DurationHours = 13 }},
		{name: "zero attendees", mutate: func(r *CreateBookingRequest) { r.Attendees = 0 }},
		{name: "bad date format", mutate: func(r *CreateBookingRequest) { r.BookingDate = "15-03-2026" }},
		{name: "date in past", mutate: func(r *CreateBookingRequest) { r.BookingDate = "2026-02-20" }},
		{name: "bad time format", mutate: func(r *CreateBookingRequest) { r.StartTime = "10am" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_ContactFromIdentityService(t *testing.T) {
	bookings := newFakeBookingRepo()
	uc := NewUseCaseWithTimeProvider(
		bookings,
		&fakeFacilityRepo{facility: testFacility()},
		&fakeIdentityClient{user: &identityClient.User{
			Email: "alex@example.com",
			Name:  "Alexandra Chen",
			Phone: "+1-555-0101",
		}},
		&fakeTxManager{},
		&fixedTimeProvider{now: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)},
		nopLogger{},
	)

	req := validRequest()
	req.UserPhone = ""

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Alexandra Chen", resp.UserName)
	assert.Equal(t, "+1-555-0101", resp.UserPhone)
}

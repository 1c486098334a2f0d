package facilities

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	facilityRepo "github.com/m04kA/SMC-FacilityService/internal/infra/storage/facility"
	identityClient "github.com/m04kA/SMC-FacilityService/internal/integrations/identityservice"
	"github.com/m04kA/SMC-FacilityService/internal/service/facilities/models"
	"github.com/m04kA/SMC-FacilityService/pkg/ptr"
)

// Фейки зависимостей

type fakeFacilityRepo struct {
	facilities []*domain.Facility
	byID       map[int64]*domain.Facility
	lastFilter domain.FacilityFilter
	lastSort   domain.FacilitySort
	created    *domain.Facility
	deletedID  int64
	nextID     int64
}

func newFakeFacilityRepo(facilities ...*domain.Facility) *fakeFacilityRepo {
	r := &fakeFacilityRepo{byID: make(map[int64]*domain.Facility), nextID: 1}
	for _, f := range facilities {
		r.facilities = append(r.facilities, f)
		r.byID[f.ID] = f
		if f.ID >= r.nextID {
			r.nextID = f.ID + 1
		}
	}
	return r
}

func (r *fakeFacilityRepo) Create(_ context.Context, f *domain.Facility) (*domain.Facility, error) {
	created := *f
	created.ID = r.nextID
	r.nextID++
	r.created = &created
	return &created, nil
}

func (r *fakeFacilityRepo) GetByID(_ context.Context, id int64) (*domain.Facility, error) {
	if f, ok := r.byID[id]; ok {
		return f, nil
	}
	return nil, facilityRepo.ErrFacilityNotFound
}

func (r *fakeFacilityRepo) List(_ context.Context, filter domain.FacilityFilter, sortBy domain.FacilitySort) ([]*domain.Facility, error) {
	r.lastFilter = filter
	r.lastSort = sortBy
	return r.facilities, nil
}

func (r *fakeFacilityRepo) Update(_ context.Context, id int64, patch domain.FacilityPatch) (*domain.Facility, error) {
	f, ok := r.byID[id]
	if !ok {
		return nil, facilityRepo.ErrFacilityNotFound
	}
	updated := *f
	if patch.Name != nil {
		updated.Name = *patch.Name
	}
	return &updated, nil
}

func (r *fakeFacilityRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return facilityRepo.ErrFacilityNotFound
	}
	r.deletedID = id
	return nil
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

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Хелперы

const (
	adminEmail = "admin@example.com"
	userEmail  = "user@example.com"
)

func testService(repo *fakeFacilityRepo) *Service {
	return NewService(repo, &fakeIdentityClient{users: map[string]*identityClient.User{
		adminEmail: {Email: adminEmail, Role: identityClient.RoleAdmin},
		userEmail:  {Email: userEmail, Role: identityClient.RoleUser},
	}}, nopLogger{})
}

func validCreateRequest() *models.CreateFacilityRequest {
	return &models.CreateFacilityRequest{
		ActorEmail:  adminEmail,
		Name:        "Meeting Room Alpha",
		Description: "Small meeting room with whiteboard",
		Category:    "meeting-room",
		Location:    "Building A, Floor 2",
		City:        "Austin",
		State:       "Texas",
		Capacity:    models.CapacityDTO{Min: 2, Max: 8},
		Pricing:     models.PricingDTO{Hourly: 40, HalfDay: 140, FullDay: 250},
		OperatingHours: models.OperatingHoursDTO{
			Start: "08:00",
			End:   "20:00",
		},
		Amenities: []string{"wifi", "whiteboard"},
	}
}

// Тесты

func TestList_PassesFilterAndSort(t *testing.T) {
	repo := newFakeFacilityRepo(&domain.Facility{ID: 1, Name: "Room A"})
	svc := testService(repo)

	resp, err := svc.List(context.Background(), &models.ListFacilitiesRequest{
		Category:    ptr.Ptr("meeting-room"),
		MinCapacity: ptr.Ptr(10),
		SortBy:      ptr.Ptr("price_asc"),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, len(resp.Facilities))
	require.NotNil(t, repo.lastFilter.Category)
	assert.Equal(t, domain.CategoryMeetingRoom, *repo.lastFilter.Category)
	assert.Equal(t, 10, *repo.lastFilter.MinCapacity)
	assert.Equal(t, domain.SortPriceAsc, repo.lastSort)
}

func TestList_InvalidFilter(t *testing.T) {
	svc := testService(newFakeFacilityRepo())

	_, err := svc.List(context.Background(), &models.ListFacilitiesRequest{
		Category: ptr.Ptr("swimming-pool"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.List(context.Background(), &models.ListFacilitiesRequest{
		SortBy: ptr.Ptr("random"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := testService(newFakeFacilityRepo())

	_, err := svc.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrFacilityNotFound)
}

func TestCreate_AdminOnly(t *testing.T) {
	repo := newFakeFacilityRepo()
	svc := testService(repo)

	req := validCreateRequest()
	req.ActorEmail = userEmail
	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrAccessDenied)

	req = validCreateRequest()
	req.ActorEmail = "ghost@example.com"
	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrUserNotFound)

	resp, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "available", resp.Status)
}

func TestCreate_Validation(t *testing.T) {
	svc := testService(newFakeFacilityRepo())

	tests := []struct {
		name   string
		mutate func(*models.CreateFacilityRequest)
	}{
		{name: "missing name", mutate: func(r *models.CreateFacilityRequest) { r.Name = "" }},
		{name: "missing location", mutate: func(r *models.CreateFacilityRequest) { r.Location = "" }},
		{name: "bad category", mutate: func(r *models.CreateFacilityRequest) { r.Category = "pool" }},
		{name: "zero capacity", mutate: func(r *models.CreateFacilityRequest) { r.Capacity.Max = 0 }},
		{name: "inverted capacity", mutate: func(r *models.CreateFacilityRequest) { r.Capacity.Min = 20 }},
		{name: "negative price", mutate: func(r *models.CreateFacilityRequest) { r.Pricing.Hourly = -1 }},
		{name: "inverted hours", mutate: func(r *models.CreateFacilityRequest) {
			r.OperatingHours = models.OperatingHoursDTO{Start: "20:00", End: "08:00"}
		}},
		{name: "bad status", mutate: func(r *models.CreateFacilityRequest) { r.Status = ptr.Ptr("closed") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			tt.mutate(req)

			_, err := svc.Create(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUpdate_NotFound(t *testing.T) {
	svc := testService(newFakeFacilityRepo())

	_, err := svc.Update(context.Background(), 404, &models.UpdateFacilityRequest{
		ActorEmail: adminEmail,
		Name:       ptr.Ptr("New Name"),
	})
	assert.ErrorIs(t, err, ErrFacilityNotFound)
}

func TestDelete_AdminOnly(t *testing.T) {
	repo := newFakeFacilityRepo(&domain.Facility{ID: 5, Name: "Room"})
	svc := testService(repo)

	err := svc.Delete(context.Background(), 5, userEmail)
	assert.ErrorIs(t, err, ErrAccessDenied)

	err = svc.Delete(context.Background(), 5, adminEmail)
	require.NoError(t, err)
	assert.Equal(t, int64(5), repo.deletedID)
}

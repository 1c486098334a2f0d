package locations

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	locationRepo "github.com/m04kA/SMC-FacilityService/internal/infra/storage/location"
	identityClient "github.com/m04kA/SMC-FacilityService/internal/integrations/identityservice"
	"github.com/m04kA/SMC-FacilityService/internal/service/locations/models"
	"github.com/m04kA/SMC-FacilityService/pkg/ptr"
)

// Фейки зависимостей

type fakeStateRepo struct {
	states    map[int64]*domain.State
	codes     map[string]bool
	deletedID int64
	nextID    int64
}

func newFakeStateRepo(states ...*domain.State) *fakeStateRepo {
	r := &fakeStateRepo{states: make(map[int64]*domain.State), codes: make(map[string]bool), nextID: 1}
	for _, s := range states {
		r.states[s.ID] = s
		r.codes[s.Code] = true
		if s.ID >= r.nextID {
			r.nextID = s.ID + 1
		}
	}
	return r
}

func (r *fakeStateRepo) Create(_ context.Context, s *domain.State) (*domain.State, error) {
	if r.codes[s.Code] {
		return nil, locationRepo.ErrDuplicateCode
	}
	created := *s
	created.ID = r.nextID
	r.nextID++
	r.states[created.ID] = &created
	r.codes[created.Code] = true
	return &created, nil
}

func (r *fakeStateRepo) GetByID(_ context.Context, id int64) (*domain.State, error) {
	if s, ok := r.states[id]; ok {
		return s, nil
	}
	return nil, locationRepo.ErrStateNotFound
}

func (r *fakeStateRepo) List(_ context.Context) ([]*domain.State, error) {
	result := make([]*domain.State, 0, len(r.states))
	for _, s := range r.states {
		result = append(result, s)
	}
	return result, nil
}

func (r *fakeStateRepo) Update(_ context.Context, id int64, patch domain.StatePatch) (*domain.State, error) {
	s, ok := r.states[id]
	if !ok {
		return nil, locationRepo.ErrStateNotFound
	}
	updated := *s
	if patch.Name != nil {
		updated.Name = *patch.Name
	}
	if patch.Cities != nil {
		updated.Cities = patch.Cities
	}
	return &updated, nil
}

func (r *fakeStateRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.states[id]; !ok {
		return locationRepo.ErrStateNotFound
	}
	r.deletedID = id
	delete(r.states, id)
	return nil
}

type fakeFacilityCounter struct {
	counts map[string]int
}

func (c *fakeFacilityCounter) CountByCityAndState(_ context.Context, city, _ string) (int, error) {
	return c.counts[city], nil
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

type captureLogger struct {
	warnings []string
}

func (l *captureLogger) Info(string, ...any) {}
func (l *captureLogger) Warn(format string, _ ...any) {
	l.warnings = append(l.warnings, format)
}
func (l *captureLogger) Error(string, ...any) {}

// Хелперы

const (
	adminEmail = "admin@example.com"
	userEmail  = "user@example.com"
)

func testService(repo *fakeStateRepo, counter *fakeFacilityCounter) (*Service, *captureLogger) {
	if counter == nil {
		counter = &fakeFacilityCounter{counts: map[string]int{}}
	}
	log := &captureLogger{}
	svc := NewService(repo, counter, &fakeIdentityClient{users: map[string]*identityClient.User{
		adminEmail: {Email: adminEmail, Role: identityClient.RoleAdmin},
		userEmail:  {Email: userEmail, Role: identityClient.RoleUser},
	}}, log)
	return svc, log
}

// Тесты

func TestCreate_AdminOnly(t *testing.T) {
	svc, _ := testService(newFakeStateRepo(), nil)

	_, err := svc.Create(context.Background(), &models.CreateStateRequest{
		ActorEmail: userEmail,
		Name:       "Texas",
		Code:       "TX",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	resp, err := svc.Create(context.Background(), &models.CreateStateRequest{
		ActorEmail: adminEmail,
		Name:       "Texas",
		Code:       "tx",
		Cities:     []string{"Austin", "Houston", "Austin"},
	})
	require.NoError(t, err)
	// Код нормализуется к верхнему регистру, дубликаты городов схлопываются
	assert.Equal(t, "TX", resp.Code)
	assert.Equal(t, []string{"Austin", "Houston"}, resp.Cities)
}

func TestCreate_Validation(t *testing.T) {
	svc, _ := testService(newFakeStateRepo(), nil)

	tests := []struct {
		name string
		req  *models.CreateStateRequest
	}{
		{name: "empty name", req: &models.CreateStateRequest{ActorEmail: adminEmail, Code: "TX"}},
		{name: "empty code", req: &models.CreateStateRequest{ActorEmail: adminEmail, Name: "Texas"}},
		{name: "code too long", req: &models.CreateStateRequest{ActorEmail: adminEmail, Name: "Texas", Code: "TEX"}},
		{name: "blank city", req: &models.CreateStateRequest{
			ActorEmail: adminEmail, Name: "Texas", Code: "TX", Cities: []string{"Austin", "  "},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestCreate_DuplicateCode(t *testing.T) {
	svc, _ := testService(newFakeStateRepo(&domain.State{ID: 1, Name: "Texas", Code: "TX"}), nil)

	_, err := svc.Create(context.Background(), &models.CreateStateRequest{
		ActorEmail: adminEmail,
		Name:       "Texarkana",
		Code:       "TX",
	})
	assert.ErrorIs(t, err, ErrDuplicateCode)
}

func TestUpdate_RemovedCityWithFacilitiesWarns(t *testing.T) {
	repo := newFakeStateRepo(&domain.State{
		ID:     1,
		Name:   "Texas",
		Code:   "TX",
		Cities: []string{"Austin", "Houston"},
	})
	counter := &fakeFacilityCounter{counts: map[string]int{"Houston": 3}}
	svc, log := testService(repo, counter)

	resp, err := svc.Update(context.Background(), 1, &models.UpdateStateRequest{
		ActorEmail: adminEmail,
		Cities:     []string{"Austin"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Austin"}, resp.Cities)

	// Площадки в удалённом городе остаются, но предупреждение попадает в лог
	require.NotEmpty(t, log.warnings)
}

func TestUpdate_NotFound(t *testing.T) {
	svc, _ := testService(newFakeStateRepo(), nil)

	_, err := svc.Update(context.Background(), 404, &models.UpdateStateRequest{
		ActorEmail: adminEmail,
		Name:       ptr.Ptr("Nowhere"),
	})
	assert.ErrorIs(t, err, ErrStateNotFound)
}

func TestUpdate_EmptyPatch(t *testing.T) {
	svc, _ := testService(newFakeStateRepo(&domain.State{ID: 1, Name: "Texas", Code: "TX"}), nil)

	_, err := svc.Update(context.Background(), 1, &models.UpdateStateRequest{ActorEmail: adminEmail})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDelete_CascadesCities(t *testing.T) {
	repo := newFakeStateRepo(&domain.State{
		ID:     1,
		Name:   "Texas",
		Code:   "TX",
		Cities: []string{"Austin"},
	})
	svc, _ := testService(repo, nil)

	err := svc.Delete(context.Background(), 1, userEmail)
	assert.ErrorIs(t, err, ErrAccessDenied)

	err = svc.Delete(context.Background(), 1, adminEmail)
	require.NoError(t, err)
	assert.Equal(t, int64(1), repo.deletedID)

	// Регион удалён вместе со списком городов
	_, err = repo.GetByID(context.Background(), 1)
	assert.ErrorIs(t, err, locationRepo.ErrStateNotFound)
}

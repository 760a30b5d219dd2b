package client

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clientwatch-team/clientwatch/internal/domain/entities"
	usecaseErrors "github.com/clientwatch-team/clientwatch/internal/usecase/errors"
)

type fakeClientRepo struct {
	clients map[uuid.UUID]*entities.ClientProfile
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: make(map[uuid.UUID]*entities.ClientProfile)}
}

func (r *fakeClientRepo) Create(_ context.Context, c *entities.ClientProfile) error {
	r.clients[c.ID] = c
	return nil
}

func (r *fakeClientRepo) Update(_ context.Context, c *entities.ClientProfile) error {
	r.clients[c.ID] = c
	return nil
}

func (r *fakeClientRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.ClientProfile, error) {
	return r.clients[id], nil
}

func (r *fakeClientRepo) List(_ context.Context) ([]*entities.ClientProfile, error) {
	var out []*entities.ClientProfile
	for _, c := range r.clients {
		out = append(out, c)
	}
	return out, nil
}

type fakeMappingRepo struct {
	mappings map[uuid.UUID]*entities.ClientMeetingMapping
}

func (r *fakeMappingRepo) Find(_ context.Context, clientID uuid.UUID) (*entities.ClientMeetingMapping, error) {
	return r.mappings[clientID], nil
}

func (r *fakeMappingRepo) Save(_ context.Context, m *entities.ClientMeetingMapping) error {
	r.mappings[m.ClientID] = m
	return nil
}

func (r *fakeMappingRepo) ListAll(_ context.Context) ([]*entities.ClientMeetingMapping, error) {
	var out []*entities.ClientMeetingMapping
	for _, m := range r.mappings {
		out = append(out, m)
	}
	return out, nil
}

type fakePrefsRepo struct {
	prefs map[uuid.UUID]*entities.NotificationPreferences
}

func (r *fakePrefsRepo) Find(_ context.Context, clientID uuid.UUID) (*entities.NotificationPreferences, error) {
	return r.prefs[clientID], nil
}

func (r *fakePrefsRepo) Save(_ context.Context, p *entities.NotificationPreferences) error {
	r.prefs[p.ClientID] = p
	return nil
}

type fakeCache struct {
	lists         map[string][]*entities.ClientProfile
	invalidations []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{lists: make(map[string][]*entities.ClientProfile)}
}

func (c *fakeCache) GetClientList(_ context.Context, ownerID string) ([]*entities.ClientProfile, error) {
	return c.lists[ownerID], nil
}

func (c *fakeCache) SetClientList(_ context.Context, ownerID string, clients []*entities.ClientProfile) error {
	c.lists[ownerID] = clients
	return nil
}

func (c *fakeCache) InvalidateClientList(_ context.Context, ownerID string) error {
	delete(c.lists, ownerID)
	c.invalidations = append(c.invalidations, ownerID)
	return nil
}

func newTestService(t *testing.T) (Service, *fakeClientRepo, *fakeMappingRepo, *fakePrefsRepo, *fakeCache) {
	t.Helper()
	repo := newFakeClientRepo()
	mappings := &fakeMappingRepo{mappings: make(map[uuid.UUID]*entities.ClientMeetingMapping)}
	prefs := &fakePrefsRepo{prefs: make(map[uuid.UUID]*entities.NotificationPreferences)}
	cache := newFakeCache()
	return NewService(repo, mappings, prefs, cache, nil), repo, mappings, prefs, cache
}

func TestCreateAssignsOwnerAndInvalidatesCache(t *testing.T) {
	svc, repo, _, _, cache := newTestService(t)
	cache.lists["leader-1"] = []*entities.ClientProfile{}

	created, err := svc.Create(context.Background(), "leader-1", &entities.ClientProfile{Name: "Acme Corp"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "leader-1", created.OwnerID)
	assert.Contains(t, repo.clients, created.ID)
	assert.Contains(t, cache.invalidations, "leader-1")
}

func TestCreateRejectsEmptyName(t *testing.T) {
	svc, _, _, _, _ := newTestService(t)
	_, err := svc.Create(context.Background(), "leader-1", &entities.ClientProfile{})
	assert.ErrorIs(t, err, usecaseErrors.ErrInvalidInput)
}

func TestGetUnknownClient(t *testing.T) {
	svc, _, _, _, _ := newTestService(t)
	_, err := svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, usecaseErrors.ErrClientNotFound)
}

func TestListScopesToOwnerAndCaches(t *testing.T) {
	svc, _, _, _, cache := newTestService(t)
	_, err := svc.Create(context.Background(), "leader-1", &entities.ClientProfile{Name: "Acme Corp"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), "leader-2", &entities.ClientProfile{Name: "Globex"})
	require.NoError(t, err)

	clients, err := svc.List(context.Background(), "leader-1")
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "Acme Corp", clients[0].Name)
	assert.Len(t, cache.lists["leader-1"], 1)

	// Cached copy is served even if the repo changes underneath.
	cache.lists["leader-1"][0].Name = "Cached Corp"
	clients, err = svc.List(context.Background(), "leader-1")
	require.NoError(t, err)
	assert.Equal(t, "Cached Corp", clients[0].Name)
}

func TestUpdateAppliesPartialFields(t *testing.T) {
	svc, _, _, _, _ := newTestService(t)
	created, err := svc.Create(context.Background(), "leader-1", &entities.ClientProfile{
		Name: "Acme Corp",
		Pod:  "pod-a",
	})
	require.NoError(t, err)

	spend := "$12k/mo"
	updated, err := svc.Update(context.Background(), created.ID, UpdateFields{MonthlySpend: &spend})
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", updated.Name)
	assert.Equal(t, "pod-a", updated.Pod)
	assert.Equal(t, "$12k/mo", updated.MonthlySpend)

	empty := ""
	_, err = svc.Update(context.Background(), created.ID, UpdateFields{Name: &empty})
	assert.ErrorIs(t, err, usecaseErrors.ErrInvalidInput)
}

func TestMappingAndPrefsRequireExistingClient(t *testing.T) {
	svc, _, mappings, prefs, _ := newTestService(t)
	missing := uuid.New()

	err := svc.SaveMapping(context.Background(), &entities.ClientMeetingMapping{ClientID: missing})
	assert.ErrorIs(t, err, usecaseErrors.ErrClientNotFound)
	err = svc.SaveNotificationPrefs(context.Background(), &entities.NotificationPreferences{ClientID: missing})
	assert.ErrorIs(t, err, usecaseErrors.ErrClientNotFound)

	created, err := svc.Create(context.Background(), "leader-1", &entities.ClientProfile{Name: "Acme Corp"})
	require.NoError(t, err)

	require.NoError(t, svc.SaveMapping(context.Background(), &entities.ClientMeetingMapping{
		ClientID:          created.ID,
		ParticipantEmails: []string{"jane@acme.example"},
	}))
	assert.Contains(t, mappings.mappings, created.ID)

	require.NoError(t, svc.SaveNotificationPrefs(context.Background(), &entities.NotificationPreferences{
		ClientID:              created.ID,
		NotifyOnNewTranscript: true,
	}))
	assert.True(t, prefs.prefs[created.ID].NotifyOnNewTranscript)
}

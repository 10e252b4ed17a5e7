package session

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aetherialcal/aethercal/internal/calendar"
	"github.com/aetherialcal/aethercal/internal/platform/apperr"
	"github.com/aetherialcal/aethercal/internal/platform/sec"
	"github.com/aetherialcal/aethercal/internal/realtime"
)

type fakeRepository struct {
	sessions map[string]*Session
	deleted  []string
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{sessions: make(map[string]*Session)}
}

func (fake *fakeRepository) Create(_ context.Context, session *Session) error {
	if _, ok := fake.sessions[session.ID]; ok {
		return apperr.Conflict("A record with this identifier already exists")
	}
	fake.sessions[session.ID] = session
	return nil
}

func (fake *fakeRepository) GetByID(_ context.Context, id string) (*Session, error) {
	found, ok := fake.sessions[id]
	if !ok {
		return nil, apperr.NotFound("Session")
	}
	return found, nil
}

func (fake *fakeRepository) List(_ context.Context) ([]*Session, error) {
	all := make([]*Session, 0, len(fake.sessions))
	for _, s := range fake.sessions {
		all = append(all, s)
	}
	return all, nil
}

func (fake *fakeRepository) Delete(_ context.Context, id string) error {
	if _, ok := fake.sessions[id]; !ok {
		return apperr.NotFound("Session")
	}
	delete(fake.sessions, id)
	fake.deleted = append(fake.deleted, id)
	return nil
}

type fakeBroadcaster struct {
	published []realtime.MessageType
	sessions  []string
}

func (fake *fakeBroadcaster) Publish(_ context.Context, sessionID string, messageType realtime.MessageType, _ any) error {
	fake.published = append(fake.published, messageType)
	fake.sessions = append(fake.sessions, sessionID)
	return nil
}

func newTestService(t *testing.T, repo Repository, broadcaster realtime.Broadcaster) *Service {
	t.Helper()
	deleteHash, err := sec.HashPassword("theonetodeletethem")
	require.NoError(t, err)
	return NewService(repo, calendar.Default(), broadcaster, deleteHash, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCreate_DerivesSlugFromName(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(t, repo, &fakeBroadcaster{})

	created, err := service.Create(context.Background(), CreateInput{Name: "Curse of the Aether"})
	require.NoError(t, err)

	assert.Equal(t, "curse-of-the-aether", created.ID)
	assert.Equal(t, 1048, created.StartYear)
	assert.Equal(t, 0, created.StartMonth)
	assert.Contains(t, repo.sessions, "curse-of-the-aether")
}

func TestCreate_ValidatesInput(t *testing.T) {
	service := newTestService(t, newFakeRepository(), &fakeBroadcaster{})
	badMonth := 12

	tests := []struct {
		name  string
		input CreateInput
	}{
		{"empty_name", CreateInput{Name: ""}},
		{"month_out_of_range", CreateInput{Name: "Test", StartMonth: &badMonth}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Create(context.Background(), tt.input)
			require.Error(t, err)
			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, "VALIDATION_ERROR", appError.Code)
		})
	}
}

func TestCreate_DuplicateIDConflicts(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(t, repo, &fakeBroadcaster{})

	_, err := service.Create(context.Background(), CreateInput{Name: "Dragonlance"})
	require.NoError(t, err)

	_, err = service.Create(context.Background(), CreateInput{Name: "Dragonlance"})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}

func TestExists_ReportsWithoutLeakingDetails(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(t, repo, &fakeBroadcaster{})

	_, err := service.Create(context.Background(), CreateInput{Name: "Dragonlance", Description: "secret notes"})
	require.NoError(t, err)

	result, err := service.Exists(context.Background(), "dragonlance")
	require.NoError(t, err)
	assert.True(t, result.Exists)
	assert.Equal(t, "Dragonlance", result.Name)

	missing, err := service.Exists(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, missing.Exists)
	assert.Empty(t, missing.Name)
}

func TestDelete_RejectsWrongPassword(t *testing.T) {
	repo := newFakeRepository()
	broadcaster := &fakeBroadcaster{}
	service := newTestService(t, repo, broadcaster)

	_, err := service.Create(context.Background(), CreateInput{Name: "Dragonlance"})
	require.NoError(t, err)

	_, err = service.Delete(context.Background(), "dragonlance", "wrong")
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	// The campaign survives and nobody is notified.
	assert.Contains(t, repo.sessions, "dragonlance")
	assert.Empty(t, broadcaster.published)
}

func TestDelete_BroadcastsAfterRemoval(t *testing.T) {
	repo := newFakeRepository()
	broadcaster := &fakeBroadcaster{}
	service := newTestService(t, repo, broadcaster)

	_, err := service.Create(context.Background(), CreateInput{Name: "Dragonlance"})
	require.NoError(t, err)

	result, err := service.Delete(context.Background(), "dragonlance", "theonetodeletethem")
	require.NoError(t, err)
	assert.True(t, result.Deleted)

	assert.Equal(t, []string{"dragonlance"}, repo.deleted)
	require.Len(t, broadcaster.published, 1)
	assert.Equal(t, realtime.TypeSessionDeleted, broadcaster.published[0])
	assert.Equal(t, "dragonlance", broadcaster.sessions[0])
}

func TestDelete_MissingSessionDoesNotBroadcast(t *testing.T) {
	broadcaster := &fakeBroadcaster{}
	service := newTestService(t, newFakeRepository(), broadcaster)

	_, err := service.Delete(context.Background(), "ghost", "theonetodeletethem")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	assert.Empty(t, broadcaster.published)
}

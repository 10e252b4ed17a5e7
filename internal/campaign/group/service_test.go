package group

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aetherialcal/aethercal/internal/calendar"
	"github.com/aetherialcal/aethercal/internal/platform/apperr"
	"github.com/aetherialcal/aethercal/internal/realtime"
)

type fakeRepository struct {
	nextID int64
	groups map[int64]*PartyGroup
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{groups: make(map[int64]*PartyGroup)}
}

func (fake *fakeRepository) Create(_ context.Context, group *PartyGroup) error {
	fake.nextID++
	group.ID = fake.nextID
	group.CurrentYear, group.CurrentMonth, group.CurrentDay = 1048, 0, 1
	stored := *group
	fake.groups[group.ID] = &stored
	return nil
}

func (fake *fakeRepository) List(_ context.Context, sessionID string) ([]*PartyGroup, error) {
	matches := make([]*PartyGroup, 0)
	for _, group := range fake.groups {
		if group.SessionID == sessionID {
			matches = append(matches, group)
		}
	}
	return matches, nil
}

func (fake *fakeRepository) UpdatePosition(_ context.Context, sessionID string, id int64, date calendar.Date) (*PartyGroup, error) {
	group, ok := fake.groups[id]
	if !ok || group.SessionID != sessionID {
		return nil, apperr.NotFound("Party group")
	}
	group.CurrentYear, group.CurrentMonth, group.CurrentDay = date.Year, date.Month, date.Day
	copied := *group
	return &copied, nil
}

func (fake *fakeRepository) Delete(_ context.Context, sessionID string, id int64) error {
	group, ok := fake.groups[id]
	if !ok || group.SessionID != sessionID {
		return apperr.NotFound("Party group")
	}
	delete(fake.groups, id)
	return nil
}

type fakeBroadcaster struct {
	published []realtime.MessageType
}

func (fake *fakeBroadcaster) Publish(_ context.Context, _ string, messageType realtime.MessageType, _ any) error {
	fake.published = append(fake.published, messageType)
	return nil
}

func newTestService(repo Repository, broadcaster realtime.Broadcaster) *Service {
	return NewService(repo, calendar.Default(), broadcaster, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCreate_AppliesDefaultColorAndStartPosition(t *testing.T) {
	broadcaster := &fakeBroadcaster{}
	service := newTestService(newFakeRepository(), broadcaster)

	created, err := service.Create(context.Background(), "dragonlance", "Heroes of the Lance", "")
	require.NoError(t, err)

	assert.Equal(t, DefaultColor, created.Color)
	assert.Equal(t, calendar.Date{Year: 1048, Month: 0, Day: 1}, created.Position())
	assert.Equal(t, []realtime.MessageType{realtime.TypePartyGroupAdded}, broadcaster.published)
}

func TestCreate_RequiresName(t *testing.T) {
	broadcaster := &fakeBroadcaster{}
	service := newTestService(newFakeRepository(), broadcaster)

	_, err := service.Create(context.Background(), "dragonlance", "", "#123456")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	assert.Empty(t, broadcaster.published)
}

func TestUpdatePosition_BroadcastsMove(t *testing.T) {
	repo := newFakeRepository()
	broadcaster := &fakeBroadcaster{}
	service := newTestService(repo, broadcaster)

	created, err := service.Create(context.Background(), "dragonlance", "Heroes", "")
	require.NoError(t, err)

	moved, err := service.UpdatePosition(context.Background(), "dragonlance", created.ID, calendar.Date{Year: 1048, Month: 3, Day: 22})
	require.NoError(t, err)
	assert.Equal(t, calendar.Date{Year: 1048, Month: 3, Day: 22}, moved.Position())
	assert.Equal(t, realtime.TypePartyPositionUpdated, broadcaster.published[len(broadcaster.published)-1])
}

func TestUpdatePosition_RejectsInvalidDate(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo, &fakeBroadcaster{})

	created, err := service.Create(context.Background(), "dragonlance", "Heroes", "")
	require.NoError(t, err)

	_, err = service.UpdatePosition(context.Background(), "dragonlance", created.ID, calendar.Date{Year: 1048, Month: 0, Day: 0})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestDelete_WrongSessionIsNotFound(t *testing.T) {
	repo := newFakeRepository()
	broadcaster := &fakeBroadcaster{}
	service := newTestService(repo, broadcaster)

	created, err := service.Create(context.Background(), "dragonlance", "Heroes", "")
	require.NoError(t, err)

	err = service.Delete(context.Background(), "other-campaign", created.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	assert.Len(t, repo.groups, 1)

	require.NoError(t, service.Delete(context.Background(), "dragonlance", created.ID))
	assert.Empty(t, repo.groups)
	assert.Equal(t, realtime.TypePartyGroupDeleted, broadcaster.published[len(broadcaster.published)-1])
}

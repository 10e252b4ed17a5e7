package event

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aetherialcal/aethercal/internal/calendar"
	"github.com/aetherialcal/aethercal/internal/platform/apperr"
	"github.com/aetherialcal/aethercal/internal/realtime"
)

type fakeRepository struct {
	nextID int64
	events map[int64]*Event
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{events: make(map[int64]*Event)}
}

func (fake *fakeRepository) GetByID(_ context.Context, sessionID string, id int64) (*Event, error) {
	found, ok := fake.events[id]
	if !ok || found.SessionID != sessionID {
		return nil, apperr.NotFound("Event")
	}
	copied := *found
	return &copied, nil
}

func (fake *fakeRepository) ListForMonth(_ context.Context, sessionID string, year, month int) ([]*Event, error) {
	matches := make([]*Event, 0)
	for _, e := range fake.events {
		if e.SessionID == sessionID && e.Year == year && e.Month == month {
			matches = append(matches, e)
		}
	}
	return matches, nil
}

func (fake *fakeRepository) CreateWithSeries(_ context.Context, seed *Event, members []*Event) error {
	fake.nextID++
	seed.ID = fake.nextID
	stored := *seed
	fake.events[seed.ID] = &stored

	for _, member := range members {
		parentID := seed.ID
		member.RecurringParentID = &parentID
		fake.nextID++
		member.ID = fake.nextID
		storedMember := *member
		fake.events[member.ID] = &storedMember
	}
	return nil
}

func (fake *fakeRepository) DeleteOne(_ context.Context, sessionID string, id int64) (int64, error) {
	found, ok := fake.events[id]
	if !ok || found.SessionID != sessionID {
		return 0, apperr.NotFound("Event")
	}
	delete(fake.events, id)
	return 1, nil
}

func (fake *fakeRepository) DeleteSeries(_ context.Context, sessionID string, rootID int64) (int64, error) {
	var count int64
	for id, e := range fake.events {
		if e.SessionID != sessionID {
			continue
		}
		if id == rootID || (e.RecurringParentID != nil && *e.RecurringParentID == rootID) {
			delete(fake.events, id)
			count++
		}
	}
	if count == 0 {
		return 0, apperr.NotFound("Event")
	}
	return count, nil
}

func (fake *fakeRepository) UpdateDate(_ context.Context, sessionID string, id int64, date calendar.Date) (*Event, error) {
	found, ok := fake.events[id]
	if !ok || found.SessionID != sessionID {
		return nil, apperr.NotFound("Event")
	}
	found.SetDate(date)
	copied := *found
	return &copied, nil
}

func (fake *fakeRepository) UpdateConfirmation(_ context.Context, sessionID string, id int64, confirmed bool) (*Event, error) {
	found, ok := fake.events[id]
	if !ok || found.SessionID != sessionID {
		return nil, apperr.NotFound("Event")
	}
	found.Confirmed = confirmed
	copied := *found
	return &copied, nil
}

func (fake *fakeRepository) Search(_ context.Context, sessionID, pattern string, filter SearchFilter) ([]*Event, error) {
	matches := make([]*Event, 0)
	for _, e := range fake.events {
		if e.SessionID != sessionID {
			continue
		}
		if !strings.Contains(strings.ToLower(e.Title), pattern) && !strings.Contains(strings.ToLower(e.Description), pattern) {
			continue
		}
		if filter.Year != nil && e.Year != *filter.Year {
			continue
		}
		if filter.Month != nil && e.Month != *filter.Month {
			continue
		}
		matches = append(matches, e)
	}
	return matches, nil
}

type fakeBroadcaster struct {
	published []realtime.MessageType
	payloads  []any
}

func (fake *fakeBroadcaster) Publish(_ context.Context, _ string, messageType realtime.MessageType, payload any) error {
	fake.published = append(fake.published, messageType)
	fake.payloads = append(fake.payloads, payload)
	return nil
}

func newTestService(repo Repository, broadcaster realtime.Broadcaster) *Service {
	return NewService(repo, calendar.Default(), broadcaster, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCreate_SingleEvent(t *testing.T) {
	repo := newFakeRepository()
	broadcaster := &fakeBroadcaster{}
	service := newTestService(repo, broadcaster)

	result, err := service.Create(context.Background(), CreateInput{
		SessionID: "dragonlance",
		Year:      1048, Month: 0, Day: 5,
		Title: "Council of Whitestone",
	})
	require.NoError(t, err)

	assert.NotZero(t, result.Event.ID)
	assert.Equal(t, KindEvent, result.Event.Kind)
	assert.Empty(t, result.RecurringEvents)
	assert.Len(t, repo.events, 1)

	require.Len(t, broadcaster.published, 1)
	assert.Equal(t, realtime.TypeEventAdded, broadcaster.published[0])
}

func TestCreate_NoteKind(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo, &fakeBroadcaster{})

	result, err := service.Create(context.Background(), CreateInput{
		SessionID: "dragonlance",
		Year:      1048, Month: 0, Day: 5,
		Title: "Loot split still unresolved",
		Kind:  "note",
	})
	require.NoError(t, err)
	assert.Equal(t, KindNote, result.Event.Kind)
}

func TestCreate_RecurringSeriesSpansTwentyMembers(t *testing.T) {
	repo := newFakeRepository()
	broadcaster := &fakeBroadcaster{}
	service := newTestService(repo, broadcaster)

	result, err := service.Create(context.Background(), CreateInput{
		SessionID: "dragonlance",
		Year:      1048, Month: 0, Day: 1,
		Title:       "Full moon ritual",
		IsRecurring: true, RecurringType: RecurDaily, RecurringInterval: 10,
	})
	require.NoError(t, err)

	require.Len(t, result.RecurringEvents, 20)
	assert.Len(t, repo.events, 21)

	def := calendar.Default()
	seedLinear, err := def.ToLinearDay(result.Event.Date())
	require.NoError(t, err)
	lastLinear, err := def.ToLinearDay(result.RecurringEvents[19].Date())
	require.NoError(t, err)
	assert.Equal(t, seedLinear+200, lastLinear)

	for _, member := range result.RecurringEvents {
		require.NotNil(t, member.RecurringParentID)
		assert.Equal(t, result.Event.ID, *member.RecurringParentID)
		assert.Equal(t, result.Event.Title, member.Title)
	}
}

func TestCreate_RejectsInvalidInput(t *testing.T) {
	repo := newFakeRepository()
	broadcaster := &fakeBroadcaster{}
	service := newTestService(repo, broadcaster)

	tests := []struct {
		name  string
		input CreateInput
	}{
		{"missing_title", CreateInput{SessionID: "s", Year: 1048, Month: 0, Day: 1}},
		{"day_out_of_range", CreateInput{SessionID: "s", Year: 1048, Month: 0, Day: 45, Title: "x"}},
		{"month_out_of_range", CreateInput{SessionID: "s", Year: 1048, Month: 12, Day: 1, Title: "x"}},
		{"bad_kind", CreateInput{SessionID: "s", Year: 1048, Month: 0, Day: 1, Title: "x", Kind: "reminder"}},
		{"recurring_without_type", CreateInput{SessionID: "s", Year: 1048, Month: 0, Day: 1, Title: "x", IsRecurring: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Create(context.Background(), tt.input)
			require.Error(t, err)
			assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
		})
	}

	assert.Empty(t, repo.events)
	assert.Empty(t, broadcaster.published)
}

func createSeries(t *testing.T, service *Service, sessionID string, memberCount int) *CreateResult {
	t.Helper()
	end := calendar.Date{Year: 1048, Month: 0, Day: 1 + memberCount}
	result, err := service.Create(context.Background(), CreateInput{
		SessionID: sessionID,
		Year:      1048, Month: 0, Day: 1,
		Title:       "Caravan arrives",
		IsRecurring: true, RecurringType: RecurDaily, RecurringInterval: 1,
		RecurringEnd: &end,
	})
	require.NoError(t, err)
	require.Len(t, result.RecurringEvents, memberCount)
	return result
}

func TestDelete_SeriesFromMemberRemovesSeedAndSiblings(t *testing.T) {
	repo := newFakeRepository()
	broadcaster := &fakeBroadcaster{}
	service := newTestService(repo, broadcaster)

	series := createSeries(t, service, "dragonlance", 5)
	other := createSeries(t, service, "dragonlance", 3)

	// Delete via an arbitrary member, not the seed.
	member := series.RecurringEvents[2]
	result, err := service.Delete(context.Background(), "dragonlance", member.ID, true)
	require.NoError(t, err)
	assert.Equal(t, int64(6), result.DeletedCount)

	// The sibling series in the same campaign is untouched.
	assert.Len(t, repo.events, 4)
	_, err = service.repo.GetByID(context.Background(), "dragonlance", other.Event.ID)
	assert.NoError(t, err)

	assert.Equal(t, realtime.TypeEventDeleted, broadcaster.published[len(broadcaster.published)-1])
}

func TestDelete_SingleLeavesSeriesIntact(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo, &fakeBroadcaster{})

	series := createSeries(t, service, "dragonlance", 5)

	result, err := service.Delete(context.Background(), "dragonlance", series.RecurringEvents[0].ID, false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.DeletedCount)
	assert.Len(t, repo.events, 5)
}

func TestDelete_WrongSessionIsNotFound(t *testing.T) {
	repo := newFakeRepository()
	broadcaster := &fakeBroadcaster{}
	service := newTestService(repo, broadcaster)

	created, err := service.Create(context.Background(), CreateInput{
		SessionID: "dragonlance", Year: 1048, Month: 0, Day: 1, Title: "x",
	})
	require.NoError(t, err)

	_, err = service.Delete(context.Background(), "other-campaign", created.Event.ID, false)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	assert.Len(t, repo.events, 1)
	assert.Len(t, broadcaster.published, 1) // only the event-added
}

func TestMove_PreservesIdentityAndState(t *testing.T) {
	repo := newFakeRepository()
	broadcaster := &fakeBroadcaster{}
	service := newTestService(repo, broadcaster)

	created, err := service.Create(context.Background(), CreateInput{
		SessionID: "dragonlance", Year: 1048, Month: 0, Day: 1, Title: "Ambush",
	})
	require.NoError(t, err)

	_, err = service.SetConfirmation(context.Background(), "dragonlance", created.Event.ID, true)
	require.NoError(t, err)

	moved, err := service.Move(context.Background(), "dragonlance", created.Event.ID, calendar.Date{Year: 1048, Month: 2, Day: 14})
	require.NoError(t, err)

	assert.Equal(t, created.Event.ID, moved.Event.ID)
	assert.True(t, moved.Event.Confirmed)
	assert.Equal(t, calendar.Date{Year: 1048, Month: 0, Day: 1}, moved.OldDate)
	assert.Equal(t, calendar.Date{Year: 1048, Month: 2, Day: 14}, moved.NewDate)
	assert.Equal(t, realtime.TypeEventMoved, broadcaster.published[len(broadcaster.published)-1])
}

func TestMove_RejectsInvalidTargetDate(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo, &fakeBroadcaster{})

	created, err := service.Create(context.Background(), CreateInput{
		SessionID: "dragonlance", Year: 1048, Month: 0, Day: 1, Title: "Ambush",
	})
	require.NoError(t, err)

	_, err = service.Move(context.Background(), "dragonlance", created.Event.ID, calendar.Date{Year: 1048, Month: 0, Day: 45})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	// Date unchanged.
	unchanged, err := service.repo.GetByID(context.Background(), "dragonlance", created.Event.ID)
	require.NoError(t, err)
	assert.Equal(t, calendar.Date{Year: 1048, Month: 0, Day: 1}, unchanged.Date())
}

func TestSearch_RejectsShortQueries(t *testing.T) {
	service := newTestService(newFakeRepository(), &fakeBroadcaster{})

	for _, query := range []string{"", "a", " a ", "  "} {
		_, err := service.Search(context.Background(), "dragonlance", query, SearchFilter{})
		require.Error(t, err, "query %q", query)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	}
}

func TestSearch_MatchesTitleAndDescription(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo, &fakeBroadcaster{})

	_, err := service.Create(context.Background(), CreateInput{
		SessionID: "dragonlance", Year: 1048, Month: 0, Day: 1, Title: "Dragon attack",
	})
	require.NoError(t, err)
	_, err = service.Create(context.Background(), CreateInput{
		SessionID: "dragonlance", Year: 1048, Month: 1, Day: 3,
		Title: "Market day", Description: "rumors of a dragon cult",
	})
	require.NoError(t, err)

	result, err := service.Search(context.Background(), "dragonlance", "DRAGON", SearchFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Total)

	month := 1
	filtered, err := service.Search(context.Background(), "dragonlance", "dragon", SearchFilter{Month: &month})
	require.NoError(t, err)
	assert.Equal(t, 1, filtered.Total)
}

func TestGetForMonth_RejectsBadMonth(t *testing.T) {
	service := newTestService(newFakeRepository(), &fakeBroadcaster{})

	_, err := service.GetForMonth(context.Background(), "dragonlance", 1048, 12)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

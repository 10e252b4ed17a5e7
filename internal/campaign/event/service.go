package event

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/aetherialcal/aethercal/internal/calendar"
	"github.com/aetherialcal/aethercal/internal/platform/apperr"
	"github.com/aetherialcal/aethercal/internal/platform/validate"
	"github.com/aetherialcal/aethercal/internal/realtime"
)

const (
	maxTitleLength       = 200
	maxDescriptionLength = 2000
	minSearchQueryLength = 2
)

type Service struct {
	repo        Repository
	def         *calendar.Definition
	broadcaster realtime.Broadcaster
	logger      *slog.Logger
}

func NewService(repo Repository, def *calendar.Definition, broadcaster realtime.Broadcaster, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		def:         def,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// CreateInput is the client payload for a new event or note.
type CreateInput struct {
	SessionID         string         `json:"session_id"`
	Year              int            `json:"year"`
	Month             int            `json:"month"`
	Day               int            `json:"day"`
	Title             string         `json:"title"`
	Description       string         `json:"description"`
	Kind              string         `json:"type"`
	IsRecurring       bool           `json:"is_recurring"`
	RecurringType     string         `json:"recurring_type"`
	RecurringInterval int            `json:"recurring_interval"`
	RecurringEnd      *calendar.Date `json:"recurring_end"`
	CategoryID        *int64         `json:"category_id"`
}

func (service *Service) GetForMonth(context context.Context, sessionID string, year, month int) ([]*Event, error) {
	if err := service.checkMonth(year, month); err != nil {
		return nil, err
	}
	return service.repo.ListForMonth(context, sessionID, year, month)
}

// Create persists a new event and, for a recurring seed, its whole generated
// series in one transaction. The event-added broadcast carries both so every
// open month view can pick up the occurrences it displays.
func (service *Service) Create(context context.Context, input CreateInput) (*CreateResult, error) {
	kind := input.Kind
	if kind == "" {
		kind = string(KindEvent)
	}
	interval := input.RecurringInterval
	if interval < 1 {
		interval = 1
	}

	validator := &validate.Validator{}
	validator.
		Required("session_id", input.SessionID).
		Required("title", input.Title).
		MaxLen("title", input.Title, maxTitleLength).
		MaxLen("description", input.Description, maxDescriptionLength).
		OneOf("type", kind, string(KindEvent), string(KindNote))
	if input.IsRecurring {
		validator.
			Required("recurring_type", input.RecurringType).
			OneOf("recurring_type", input.RecurringType, RecurDaily, RecurWeekly, RecurMonthly, RecurYearly)
	}
	service.checkDateField(validator, "day", calendar.Date{Year: input.Year, Month: input.Month, Day: input.Day})
	if err := validator.Err(); err != nil {
		return nil, err
	}

	seed := &Event{
		SessionID:         input.SessionID,
		Year:              input.Year,
		Month:             input.Month,
		Day:               input.Day,
		Title:             input.Title,
		Description:       input.Description,
		Kind:              Kind(kind),
		IsRecurring:       input.IsRecurring,
		RecurringInterval: interval,
		RecurringEnd:      input.RecurringEnd,
		CategoryID:        input.CategoryID,
		CreatedAt:         time.Now().UTC(),
	}
	if input.IsRecurring {
		recurringType := input.RecurringType
		seed.RecurringType = &recurringType
	}

	var members []*Event
	if input.IsRecurring {
		dates := ExpandRecurrence(service.def, seed.Date(), Rule{
			Type:     input.RecurringType,
			Interval: interval,
			End:      input.RecurringEnd,
		})
		members = make([]*Event, 0, len(dates))
		for _, date := range dates {
			member := &Event{
				SessionID:         seed.SessionID,
				Title:             seed.Title,
				Description:       seed.Description,
				Kind:              seed.Kind,
				IsRecurring:       true,
				RecurringType:     seed.RecurringType,
				RecurringInterval: interval,
				RecurringEnd:      seed.RecurringEnd,
				CategoryID:        seed.CategoryID,
				CreatedAt:         seed.CreatedAt,
			}
			member.SetDate(date)
			members = append(members, member)
		}
	}

	if err := service.repo.CreateWithSeries(context, seed, members); err != nil {
		return nil, err
	}

	result := &CreateResult{Event: seed, RecurringEvents: members}
	if members == nil {
		result.RecurringEvents = []*Event{}
	}

	service.logger.InfoContext(context, "event_created",
		slog.String("session_id", seed.SessionID),
		slog.Int64("event_id", seed.ID),
		slog.Int("series_members", len(members)),
	)

	service.publish(context, seed.SessionID, realtime.TypeEventAdded, result)
	return result, nil
}

// Delete removes one event, or its entire series when deleteSeries is set.
// For a series member the whole series is resolved through the root seed, so
// deleting from any member removes the seed and every sibling.
func (service *Service) Delete(context context.Context, sessionID string, id int64, deleteSeries bool) (*DeleteResult, error) {
	found, err := service.repo.GetByID(context, sessionID, id)
	if err != nil {
		return nil, err
	}

	var deletedCount int64
	if deleteSeries && found.IsRecurring {
		rootID := found.ID
		if found.RecurringParentID != nil {
			rootID = *found.RecurringParentID
		}
		deletedCount, err = service.repo.DeleteSeries(context, sessionID, rootID)
	} else {
		deletedCount, err = service.repo.DeleteOne(context, sessionID, id)
	}
	if err != nil {
		return nil, err
	}

	result := &DeleteResult{EventID: id, DeletedCount: deletedCount}
	service.publish(context, sessionID, realtime.TypeEventDeleted, map[string]any{
		"event_id":      id,
		"event":         found,
		"deleted_count": deletedCount,
	})
	return result, nil
}

// Move updates an event's date in place, preserving its identity,
// confirmation state and category.
func (service *Service) Move(context context.Context, sessionID string, id int64, newDate calendar.Date) (*MoveResult, error) {
	validator := &validate.Validator{}
	service.checkDateField(validator, "day", newDate)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	current, err := service.repo.GetByID(context, sessionID, id)
	if err != nil {
		return nil, err
	}
	oldDate := current.Date()

	updated, err := service.repo.UpdateDate(context, sessionID, id, newDate)
	if err != nil {
		return nil, err
	}

	result := &MoveResult{EventID: id, Event: updated, OldDate: oldDate, NewDate: newDate}
	service.publish(context, sessionID, realtime.TypeEventMoved, result)
	return result, nil
}

func (service *Service) SetConfirmation(context context.Context, sessionID string, id int64, confirmed bool) (*Event, error) {
	updated, err := service.repo.UpdateConfirmation(context, sessionID, id, confirmed)
	if err != nil {
		return nil, err
	}

	service.publish(context, sessionID, realtime.TypeEventConfirmationUpdated, map[string]any{
		"event_id":  id,
		"confirmed": confirmed,
	})
	return updated, nil
}

// Search runs a case-insensitive substring match over titles and descriptions.
func (service *Service) Search(context context.Context, sessionID, query string, filter SearchFilter) (*SearchResult, error) {
	trimmed := strings.TrimSpace(query)
	if len([]rune(trimmed)) < minSearchQueryLength {
		return nil, apperr.ValidationError("Search query must be at least 2 characters long")
	}

	matches, err := service.repo.Search(context, sessionID, strings.ToLower(trimmed), filter)
	if err != nil {
		return nil, err
	}

	return &SearchResult{Query: trimmed, Total: len(matches), Results: matches}, nil
}

// checkDateField validates a date against the calendar definition, folding the
// engine's errors into the validator as field errors.
func (service *Service) checkDateField(validator *validate.Validator, field string, date calendar.Date) {
	if err := service.def.CheckDate(date); err != nil {
		validator.Check(false, field, err.Error())
	}
}

func (service *Service) checkMonth(year, month int) error {
	if year < 0 {
		return apperr.ValidationError("Year precedes the calendar epoch")
	}
	if month < 0 || month >= len(service.def.Months) {
		return apperr.ValidationError("Month index out of range")
	}
	return nil
}

// publish sends a post-commit broadcast. Delivery failures are logged, never
// surfaced: the write has already committed and must not be reported as failed.
func (service *Service) publish(context context.Context, sessionID string, messageType realtime.MessageType, payload any) {
	if err := service.broadcaster.Publish(context, sessionID, messageType, payload); err != nil {
		service.logger.WarnContext(context, "event_broadcast_failed",
			slog.String("session_id", sessionID),
			slog.String("message_type", string(messageType)),
			slog.Any("error", err),
		)
	}
}

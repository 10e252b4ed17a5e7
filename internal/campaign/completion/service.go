package completion

import (
	"context"
	"log/slog"
	"time"

	"github.com/aetherialcal/aethercal/internal/calendar"
	"github.com/aetherialcal/aethercal/internal/platform/validate"
	"github.com/aetherialcal/aethercal/internal/realtime"
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

func (service *Service) Mark(context context.Context, sessionID string, date calendar.Date) (*CompletedDay, error) {
	if err := service.checkDate(date); err != nil {
		return nil, err
	}

	marker := &CompletedDay{
		SessionID:   sessionID,
		Year:        date.Year,
		Month:       date.Month,
		Day:         date.Day,
		CompletedAt: time.Now().UTC(),
	}
	if err := service.repo.Mark(context, marker); err != nil {
		return nil, err
	}

	service.publish(context, sessionID, realtime.TypeDayCompleted, date)
	return marker, nil
}

func (service *Service) Unmark(context context.Context, sessionID string, date calendar.Date) error {
	if err := service.checkDate(date); err != nil {
		return err
	}

	if err := service.repo.Unmark(context, sessionID, date); err != nil {
		return err
	}

	service.publish(context, sessionID, realtime.TypeDayUncompleted, date)
	return nil
}

func (service *Service) GetForMonth(context context.Context, sessionID string, year, month int) ([]*CompletedDay, error) {
	return service.repo.ListForMonth(context, sessionID, year, month)
}

func (service *Service) GetAll(context context.Context, sessionID string) ([]*CompletedDay, error) {
	return service.repo.ListAll(context, sessionID)
}

// Latest returns the campaign's most recent completed date, or nil when no
// day has been marked yet. Ordering by (year, month, day) agrees with linear
// day ordering because month lengths are always positive.
func (service *Service) Latest(context context.Context, sessionID string) (*calendar.Date, error) {
	marker, err := service.repo.Latest(context, sessionID)
	if err != nil {
		return nil, err
	}
	if marker == nil {
		return nil, nil
	}
	date := marker.Date()
	return &date, nil
}

func (service *Service) checkDate(date calendar.Date) error {
	validator := &validate.Validator{}
	if err := service.def.CheckDate(date); err != nil {
		validator.Check(false, "day", err.Error())
	}
	return validator.Err()
}

func (service *Service) publish(context context.Context, sessionID string, messageType realtime.MessageType, date calendar.Date) {
	err := service.broadcaster.Publish(context, sessionID, messageType, map[string]any{
		"session_id": sessionID,
		"year":       date.Year,
		"month":      date.Month,
		"day":        date.Day,
	})
	if err != nil {
		service.logger.WarnContext(context, "completion_broadcast_failed",
			slog.String("session_id", sessionID),
			slog.String("message_type", string(messageType)),
			slog.Any("error", err),
		)
	}
}

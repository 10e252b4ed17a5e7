package group

import (
	"context"
	"log/slog"

	"github.com/aetherialcal/aethercal/internal/calendar"
	"github.com/aetherialcal/aethercal/internal/platform/validate"
	"github.com/aetherialcal/aethercal/internal/realtime"
)

const maxNameLength = 100

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

func (service *Service) Create(context context.Context, sessionID, name, color string) (*PartyGroup, error) {
	if color == "" {
		color = DefaultColor
	}

	validator := &validate.Validator{}
	validator.
		Required("name", name).
		MaxLen("name", name, maxNameLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	created := &PartyGroup{
		SessionID: sessionID,
		Name:      name,
		Color:     color,
	}
	if err := service.repo.Create(context, created); err != nil {
		return nil, err
	}

	service.publish(context, sessionID, realtime.TypePartyGroupAdded, map[string]any{"group": created})
	return created, nil
}

func (service *Service) List(context context.Context, sessionID string) ([]*PartyGroup, error) {
	return service.repo.List(context, sessionID)
}

// UpdatePosition moves the marker. The broadcast reaches every member of the
// room including the originator, who applies the move only when it arrives.
func (service *Service) UpdatePosition(context context.Context, sessionID string, id int64, date calendar.Date) (*PartyGroup, error) {
	validator := &validate.Validator{}
	if err := service.def.CheckDate(date); err != nil {
		validator.Check(false, "day", err.Error())
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	updated, err := service.repo.UpdatePosition(context, sessionID, id, date)
	if err != nil {
		return nil, err
	}

	service.publish(context, sessionID, realtime.TypePartyPositionUpdated, map[string]any{
		"group_id": id,
		"year":     date.Year,
		"month":    date.Month,
		"day":      date.Day,
	})
	return updated, nil
}

func (service *Service) Delete(context context.Context, sessionID string, id int64) error {
	if err := service.repo.Delete(context, sessionID, id); err != nil {
		return err
	}

	service.publish(context, sessionID, realtime.TypePartyGroupDeleted, map[string]any{"group_id": id})
	return nil
}

func (service *Service) publish(context context.Context, sessionID string, messageType realtime.MessageType, payload any) {
	if err := service.broadcaster.Publish(context, sessionID, messageType, payload); err != nil {
		service.logger.WarnContext(context, "group_broadcast_failed",
			slog.String("session_id", sessionID),
			slog.String("message_type", string(messageType)),
			slog.Any("error", err),
		)
	}
}

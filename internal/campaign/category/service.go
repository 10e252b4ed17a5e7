package category

import (
	"context"
	"log/slog"

	"github.com/aetherialcal/aethercal/internal/platform/validate"
	"github.com/aetherialcal/aethercal/internal/realtime"
)

const maxNameLength = 100

type Service struct {
	repo        Repository
	broadcaster realtime.Broadcaster
	logger      *slog.Logger
}

func NewService(repo Repository, broadcaster realtime.Broadcaster, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

func (service *Service) Create(context context.Context, sessionID, name, color, emoji string) (*Category, error) {
	if color == "" {
		color = DefaultColor
	}
	if emoji == "" {
		emoji = DefaultEmoji
	}

	validator := &validate.Validator{}
	validator.
		Required("name", name).
		MaxLen("name", name, maxNameLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	created := &Category{
		SessionID: sessionID,
		Name:      name,
		Color:     color,
		Emoji:     emoji,
	}
	if err := service.repo.Create(context, created); err != nil {
		return nil, err
	}

	service.publish(context, sessionID, realtime.TypeCategoryAdded, map[string]any{"category": created})
	return created, nil
}

func (service *Service) List(context context.Context, sessionID string) ([]*Category, error) {
	return service.repo.List(context, sessionID)
}

func (service *Service) Delete(context context.Context, sessionID string, id int64) error {
	if err := service.repo.Delete(context, sessionID, id); err != nil {
		return err
	}

	service.publish(context, sessionID, realtime.TypeCategoryDeleted, map[string]any{"category_id": id})
	return nil
}

func (service *Service) publish(context context.Context, sessionID string, messageType realtime.MessageType, payload any) {
	if err := service.broadcaster.Publish(context, sessionID, messageType, payload); err != nil {
		service.logger.WarnContext(context, "category_broadcast_failed",
			slog.String("session_id", sessionID),
			slog.String("message_type", string(messageType)),
			slog.Any("error", err),
		)
	}
}

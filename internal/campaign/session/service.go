package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/aetherialcal/aethercal/internal/calendar"
	"github.com/aetherialcal/aethercal/internal/platform/apperr"
	"github.com/aetherialcal/aethercal/internal/platform/sec"
	"github.com/aetherialcal/aethercal/internal/platform/validate"
	"github.com/aetherialcal/aethercal/internal/realtime"
	"github.com/aetherialcal/aethercal/pkg/slug"
)

const maxNameLength = 100

type Service struct {
	repo        Repository
	def         *calendar.Definition
	broadcaster realtime.Broadcaster
	// deleteHash is the bcrypt hash of the shared campaign-deletion secret,
	// checked independently of token authentication.
	deleteHash string
	logger     *slog.Logger
}

func NewService(repo Repository, def *calendar.Definition, broadcaster realtime.Broadcaster, deleteHash string, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		def:         def,
		broadcaster: broadcaster,
		deleteHash:  deleteHash,
		logger:      logger,
	}
}

// CreateInput carries the client-supplied campaign fields. ID is optional; a
// blank one is derived from the name.
type CreateInput struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	StartYear   *int   `json:"start_year"`
	StartMonth  *int   `json:"start_month"`
}

func (service *Service) Create(context context.Context, input CreateInput) (*Session, error) {
	id := input.ID
	if id == "" {
		id = slug.From(input.Name)
	} else {
		id = slug.From(id)
	}

	startYear := service.def.DisplayYear
	if input.StartYear != nil {
		startYear = *input.StartYear
	}
	startMonth := 0
	if input.StartMonth != nil {
		startMonth = *input.StartMonth
	}

	validator := &validate.Validator{}
	validator.
		Required("name", input.Name).
		MaxLen("name", input.Name, maxNameLength).
		Check(id != "", "id", "Campaign ID cannot be derived from this name").
		Min("start_year", startYear, 0).
		Range("start_month", startMonth, 0, len(service.def.Months)-1)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	created := &Session{
		ID:          id,
		Name:        input.Name,
		Description: input.Description,
		StartYear:   startYear,
		StartMonth:  startMonth,
		CreatedAt:   time.Now().UTC(),
	}
	if err := service.repo.Create(context, created); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "campaign_created", slog.String("session_id", created.ID))
	return created, nil
}

func (service *Service) Get(context context.Context, id string) (*Session, error) {
	return service.repo.GetByID(context, id)
}

func (service *Service) List(context context.Context) ([]*Session, error) {
	return service.repo.List(context)
}

// Exists is the public join-screen check. It never exposes more than the
// campaign's ID and display name.
func (service *Service) Exists(context context.Context, id string) (*ExistsResult, error) {
	found, err := service.repo.GetByID(context, id)
	if err != nil {
		if appError := apperr.As(err); appError != nil && appError.Code == "NOT_FOUND" {
			return &ExistsResult{Exists: false}, nil
		}
		return nil, err
	}
	return &ExistsResult{Exists: true, ID: found.ID, Name: found.Name}, nil
}

// Delete removes the campaign and everything it owns. It is gated by the
// shared deletion secret, not by the login token: knowing the table password
// must not be enough to wipe a campaign.
func (service *Service) Delete(context context.Context, id, password string) (*DeleteResult, error) {
	if !sec.CheckPasswordHash(password, service.deleteHash) {
		return nil, apperr.Forbidden("Invalid deletion password")
	}

	if err := service.repo.Delete(context, id); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "campaign_deleted", slog.String("session_id", id))

	// Members are told after the commit; their only recovery is leaving.
	if err := service.broadcaster.Publish(context, id, realtime.TypeSessionDeleted, map[string]any{
		"session_id": id,
	}); err != nil {
		service.logger.WarnContext(context, "campaign_deleted_broadcast_failed",
			slog.String("session_id", id), slog.Any("error", err))
	}

	return &DeleteResult{SessionID: id, Deleted: true}, nil
}

package almanac

import (
	"context"
	"log/slog"

	"github.com/aetherialcal/aethercal/internal/calendar"
	"github.com/aetherialcal/aethercal/internal/platform/validate"
	"github.com/aetherialcal/aethercal/internal/realtime"
)

const (
	maxNameLength        = 100
	maxDescriptionLength = 2000
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

// HolidayInput carries the fields for creating a holiday. The month and day
// must exist in every year of the calendar since holidays recur annually.
type HolidayInput struct {
	Name        string      `json:"name"`
	Month       int         `json:"month"`
	Day         int         `json:"day"`
	Kind        HolidayKind `json:"type"`
	Description string      `json:"description"`
}

func (service *Service) CreateHoliday(context context.Context, sessionID string, input HolidayInput) (*Holiday, error) {
	if input.Kind == "" {
		input.Kind = HolidayRegional
	}

	validator := &validate.Validator{}
	validator.
		Required("name", input.Name).
		MaxLen("name", input.Name, maxNameLength).
		MaxLen("description", input.Description, maxDescriptionLength).
		OneOf("type", string(input.Kind),
			string(HolidayRegional), string(HolidayWorldly), string(HolidayMagical))
	service.checkDateField(validator, "day",
		calendar.Date{Year: service.def.DisplayYear, Month: input.Month, Day: input.Day})
	if err := validator.Err(); err != nil {
		return nil, err
	}

	created := &Holiday{
		SessionID:   sessionID,
		Name:        input.Name,
		Month:       input.Month,
		Day:         input.Day,
		Kind:        input.Kind,
		Description: input.Description,
	}
	if err := service.repo.CreateHoliday(context, created); err != nil {
		return nil, err
	}

	service.publish(context, sessionID, realtime.TypeHolidayAdded, map[string]any{"holiday": created})
	return created, nil
}

func (service *Service) ListHolidays(context context.Context, sessionID string) ([]*Holiday, error) {
	return service.repo.ListHolidays(context, sessionID)
}

func (service *Service) DeleteHoliday(context context.Context, sessionID string, id int64) error {
	if err := service.repo.DeleteHoliday(context, sessionID, id); err != nil {
		return err
	}

	service.publish(context, sessionID, realtime.TypeHolidayDeleted, map[string]any{"holiday_id": id})
	return nil
}

// SetWeather records the condition for one campaign day, replacing any
// condition already set for that day.
func (service *Service) SetWeather(context context.Context, sessionID string, date calendar.Date, condition string) (*Weather, error) {
	validator := &validate.Validator{}
	validator.
		Required("condition", condition).
		OneOf("condition", condition, Conditions...)
	service.checkDateField(validator, "day", date)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	weather := &Weather{
		SessionID: sessionID,
		Year:      date.Year,
		Month:     date.Month,
		Day:       date.Day,
		Condition: condition,
	}
	if err := service.repo.SetWeather(context, weather); err != nil {
		return nil, err
	}

	service.publish(context, sessionID, realtime.TypeWeatherUpdated, map[string]any{"weather": weather})
	return weather, nil
}

func (service *Service) GetWeatherForMonth(context context.Context, sessionID string, year, month int) ([]*Weather, error) {
	if err := service.def.CheckDate(calendar.Date{Year: year, Month: month, Day: 1}); err != nil {
		validator := &validate.Validator{}
		validator.Check(false, "month", err.Error())
		return nil, validator.Err()
	}
	return service.repo.ListWeatherForMonth(context, sessionID, year, month)
}

func (service *Service) ClearWeather(context context.Context, sessionID string, date calendar.Date) error {
	validator := &validate.Validator{}
	service.checkDateField(validator, "day", date)
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.ClearWeather(context, sessionID, date); err != nil {
		return err
	}

	service.publish(context, sessionID, realtime.TypeWeatherDeleted, map[string]any{
		"session_id": sessionID,
		"year":       date.Year,
		"month":      date.Month,
		"day":        date.Day,
	})
	return nil
}

func (service *Service) checkDateField(validator *validate.Validator, field string, date calendar.Date) {
	if err := service.def.CheckDate(date); err != nil {
		validator.Check(false, field, err.Error())
	}
}

// publish sends a post-commit broadcast. Delivery failures are logged, never
// surfaced: the write has already committed and must not be reported as failed.
func (service *Service) publish(context context.Context, sessionID string, messageType realtime.MessageType, payload any) {
	if err := service.broadcaster.Publish(context, sessionID, messageType, payload); err != nil {
		service.logger.WarnContext(context, "almanac_broadcast_failed",
			slog.String("session_id", sessionID),
			slog.String("message_type", string(messageType)),
			slog.Any("error", err),
		)
	}
}

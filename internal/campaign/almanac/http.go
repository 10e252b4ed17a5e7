package almanac

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aetherialcal/aethercal/internal/calendar"
	requestutil "github.com/aetherialcal/aethercal/internal/platform/request"
	"github.com/aetherialcal/aethercal/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterSessionRoutes mounts the holiday and weather routes under a campaign.
func (handler *Handler) RegisterSessionRoutes(router chi.Router) {
	router.Post("/{sessionID}/holidays", handler.createHoliday)
	router.Get("/{sessionID}/holidays", handler.listHolidays)
	router.Delete("/{sessionID}/holidays/{id}", handler.deleteHoliday)

	router.Get("/{sessionID}/weather/{year}/{month}", handler.weatherForMonth)
	router.Put("/{sessionID}/weather", handler.setWeather)
	router.Delete("/{sessionID}/weather/{year}/{month}/{day}", handler.clearWeather)
}

func (handler *Handler) createHoliday(writer http.ResponseWriter, request *http.Request) {
	var body HolidayInput
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.CreateHoliday(request.Context(), requestutil.Param(request, "sessionID"), body)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, created)
}

func (handler *Handler) listHolidays(writer http.ResponseWriter, request *http.Request) {
	holidays, err := handler.service.ListHolidays(request.Context(), requestutil.Param(request, "sessionID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, holidays)
}

func (handler *Handler) deleteHoliday(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	sessionID := requestutil.Param(request, "sessionID")
	if err := handler.service.DeleteHoliday(request.Context(), sessionID, id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]any{"holiday_id": id, "deleted": true})
}

func (handler *Handler) setWeather(writer http.ResponseWriter, request *http.Request) {
	var body struct {
		Year      int    `json:"year"`
		Month     int    `json:"month"`
		Day       int    `json:"day"`
		Condition string `json:"condition"`
	}
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	weather, err := handler.service.SetWeather(request.Context(),
		requestutil.Param(request, "sessionID"),
		calendar.Date{Year: body.Year, Month: body.Month, Day: body.Day},
		body.Condition)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, weather)
}

func (handler *Handler) weatherForMonth(writer http.ResponseWriter, request *http.Request) {
	year, err := requestutil.IntParam(request, "year")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	month, err := requestutil.IntParam(request, "month")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entries, err := handler.service.GetWeatherForMonth(request.Context(),
		requestutil.Param(request, "sessionID"), year, month)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, entries)
}

func (handler *Handler) clearWeather(writer http.ResponseWriter, request *http.Request) {
	date, err := dateFromParams(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	sessionID := requestutil.Param(request, "sessionID")
	if err := handler.service.ClearWeather(request.Context(), sessionID, date); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]any{
		"session_id": sessionID,
		"year":       date.Year,
		"month":      date.Month,
		"day":        date.Day,
	})
}

func dateFromParams(request *http.Request) (calendar.Date, error) {
	year, err := requestutil.IntParam(request, "year")
	if err != nil {
		return calendar.Date{}, err
	}
	month, err := requestutil.IntParam(request, "month")
	if err != nil {
		return calendar.Date{}, err
	}
	day, err := requestutil.IntParam(request, "day")
	if err != nil {
		return calendar.Date{}, err
	}
	return calendar.Date{Year: year, Month: month, Day: day}, nil
}

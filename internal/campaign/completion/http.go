package completion

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

// RegisterSessionRoutes mounts the completed-day routes under a campaign.
func (handler *Handler) RegisterSessionRoutes(router chi.Router) {
	router.Get("/{sessionID}/completed", handler.listAll)
	router.Get("/{sessionID}/completed/latest", handler.latest)
	router.Get("/{sessionID}/completed/{year}/{month}", handler.listForMonth)
	router.Post("/{sessionID}/completed", handler.mark)
	router.Delete("/{sessionID}/completed/{year}/{month}/{day}", handler.unmark)
}

func (handler *Handler) mark(writer http.ResponseWriter, request *http.Request) {
	var body calendar.Date
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	marker, err := handler.service.Mark(request.Context(), requestutil.Param(request, "sessionID"), body)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, marker)
}

func (handler *Handler) unmark(writer http.ResponseWriter, request *http.Request) {
	date, err := dateFromParams(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	sessionID := requestutil.Param(request, "sessionID")
	if err := handler.service.Unmark(request.Context(), sessionID, date); err != nil {
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

func (handler *Handler) listForMonth(writer http.ResponseWriter, request *http.Request) {
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

	markers, err := handler.service.GetForMonth(request.Context(), requestutil.Param(request, "sessionID"), year, month)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, markers)
}

func (handler *Handler) listAll(writer http.ResponseWriter, request *http.Request) {
	markers, err := handler.service.GetAll(request.Context(), requestutil.Param(request, "sessionID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, markers)
}

func (handler *Handler) latest(writer http.ResponseWriter, request *http.Request) {
	date, err := handler.service.Latest(request.Context(), requestutil.Param(request, "sessionID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, date)
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

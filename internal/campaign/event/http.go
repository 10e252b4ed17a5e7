package event

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aetherialcal/aethercal/internal/calendar"
	requestutil "github.com/aetherialcal/aethercal/internal/platform/request"
	"github.com/aetherialcal/aethercal/internal/platform/respond"
	"github.com/aetherialcal/aethercal/pkg/convert"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the event routes under /events. chi permits only one
// wildcard name per path position, so the month listing shares the {id}
// segment and reads it as the campaign ID.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/", handler.create)
	router.Get("/{id}/{year}/{month}", handler.listForMonth)
	router.Delete("/{id}", handler.delete)
	router.Put("/{id}/move", handler.move)
	router.Put("/{id}/confirm", handler.confirm)
}

// RegisterSessionRoutes mounts the session-scoped search route.
func (handler *Handler) RegisterSessionRoutes(router chi.Router) {
	router.Get("/{sessionID}/search", handler.search)
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

	events, err := handler.service.GetForMonth(request.Context(), requestutil.Param(request, "id"), year, month)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, events)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, result)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body struct {
		SessionID    string `json:"session_id"`
		DeleteSeries bool   `json:"delete_series"`
	}
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.Delete(request.Context(), body.SessionID, id, body.DeleteSeries)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}

func (handler *Handler) move(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body struct {
		SessionID string `json:"session_id"`
		Year      int    `json:"year"`
		Month     int    `json:"month"`
		Day       int    `json:"day"`
	}
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.Move(request.Context(), body.SessionID, id, calendar.Date{
		Year: body.Year, Month: body.Month, Day: body.Day,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}

func (handler *Handler) confirm(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body struct {
		SessionID string `json:"session_id"`
		Confirmed bool   `json:"confirmed"`
	}
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.SetConfirmation(request.Context(), body.SessionID, id, body.Confirmed)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}

func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	filter := SearchFilter{
		Year:  convert.ToIntPtr(request.URL.Query().Get("year")),
		Month: convert.ToIntPtr(request.URL.Query().Get("month")),
	}

	result, err := handler.service.Search(request.Context(),
		requestutil.Param(request, "sessionID"),
		request.URL.Query().Get("q"),
		filter,
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}

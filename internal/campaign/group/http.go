package group

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

// RegisterSessionRoutes mounts creation and listing under a campaign.
func (handler *Handler) RegisterSessionRoutes(router chi.Router) {
	router.Post("/{sessionID}/groups", handler.create)
	router.Get("/{sessionID}/groups", handler.list)
}

// RegisterRoutes mounts the group-scoped routes under /groups.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Put("/{id}/position", handler.updatePosition)
	router.Delete("/{id}", handler.delete)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var body struct {
		Name  string `json:"name"`
		Color string `json:"color"`
	}
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.Create(request.Context(), requestutil.Param(request, "sessionID"), body.Name, body.Color)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, created)
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	groups, err := handler.service.List(request.Context(), requestutil.Param(request, "sessionID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, groups)
}

func (handler *Handler) updatePosition(writer http.ResponseWriter, request *http.Request) {
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

	updated, err := handler.service.UpdatePosition(request.Context(), body.SessionID, id, calendar.Date{
		Year: body.Year, Month: body.Month, Day: body.Day,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body struct {
		SessionID string `json:"session_id"`
	}
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), body.SessionID, id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]any{"group_id": id, "deleted": true})
}

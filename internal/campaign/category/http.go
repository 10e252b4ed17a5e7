package category

import (
	"net/http"

	"github.com/go-chi/chi/v5"

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
	router.Post("/{sessionID}/categories", handler.create)
	router.Get("/{sessionID}/categories", handler.list)
}

// RegisterRoutes mounts the category-scoped routes under /categories.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Delete("/{id}", handler.delete)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var body struct {
		Name  string `json:"name"`
		Color string `json:"color"`
		Emoji string `json:"emoji"`
	}
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.Create(request.Context(),
		requestutil.Param(request, "sessionID"), body.Name, body.Color, body.Emoji)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, created)
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	categories, err := handler.service.List(request.Context(), requestutil.Param(request, "sessionID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, categories)
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
	respond.OK(writer, map[string]any{"category_id": id, "deleted": true})
}

package session

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

// RegisterRoutes mounts the token-protected campaign routes. The wildcard is
// named sessionID because every other route under /sessions shares that
// segment, and chi permits only one wildcard name per position.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Get("/{sessionID}", handler.get)
}

// RegisterPublicRoutes mounts the routes reachable without a token: the join
// screen's existence check and the secret-gated deletion.
func (handler *Handler) RegisterPublicRoutes(router chi.Router) {
	router.Get("/{sessionID}/exists", handler.exists)
	router.Delete("/{sessionID}", handler.delete)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, created)
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	sessions, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, sessions)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	found, err := handler.service.Get(request.Context(), requestutil.Param(request, "sessionID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, found)
}

func (handler *Handler) exists(writer http.ResponseWriter, request *http.Request) {
	result, err := handler.service.Exists(request.Context(), requestutil.Param(request, "sessionID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if !result.Exists {
		respond.JSON(writer, http.StatusNotFound, respond.SuccessEnvelope{Data: result})
		return
	}
	respond.OK(writer, result)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	var body struct {
		Password string `json:"password"`
	}
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.Delete(request.Context(), requestutil.Param(request, "sessionID"), body.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}

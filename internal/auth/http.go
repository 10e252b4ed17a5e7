package auth

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

// RegisterRoutes mounts the login endpoint under /auth.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/login", handler.login)
}

func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var body struct {
		Password string `json:"password"`
	}
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.Login(request.Context(), body.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}

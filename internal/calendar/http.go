package calendar

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aetherialcal/aethercal/internal/platform/respond"
)

// Handler serves the static calendar definition to clients.
type Handler struct {
	definition *Definition
}

func NewHandler(definition *Definition) *Handler {
	return &Handler{definition: definition}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/config", handler.getConfig)
}

// getConfig handles GET /api/calendar/config. The definition is public:
// clients need it to render the grid before they authenticate.
func (handler *Handler) getConfig(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.definition.Payload())
}

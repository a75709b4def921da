package permissions

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/irevlogix/irevlogix-console/internal/platform/httpx"
)

// Handler exposes the permission query surface to the presentation layer.
type Handler struct {
	middleware Middleware
}

// NewHandler builds a Handler around the given source.
func NewHandler(source Source) *Handler {
	return &Handler{middleware: Middleware{Source: source}}
}

// MountRoutes registers permission routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.With(h.middleware.Load).Get("/auth/permissions", h.current)
}

// current always answers 200; an unknown or failed caller sees an empty set.
func (h *Handler) current(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	httpx.JSON(w, http.StatusOK, FromContext(r.Context()))
}

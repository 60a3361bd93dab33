package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-safe-keeper/internal/adapter"
	"github.com/MKhiriev/go-safe-keeper/internal/app"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	router.Get("/v1/version", h.getServerVersion)

	// ledger
	router.Group(func(r chi.Router) {
		r.Use(withGZip)
		r.Post("/v1/ledger/intents", h.submitIntent)
		r.Get("/v1/ledger/objects/{id}", h.getObject)
		r.Get("/v1/ledger/events", h.queryEvents)
	})

	// key service
	router.Post("/v1/keys/encrypt", h.encrypt)
	router.With(h.requestToken).Post("/v1/keys/decrypt", h.decrypt)

	// blob store; ciphertext does not compress, so no gzip here
	router.With(h.blobIntegrity).Put("/v1/blobs", h.putBlob)
	router.Get("/v1/blobs/{ref}", h.getBlob)

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, fmt.Errorf("%w: %s", adapter.ErrNotFound, app.MsgRouteNotFound))
	})
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

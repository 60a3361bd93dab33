package http

import (
	"context"
	"net/http"
	"time"

	"github.com/MKhiriev/go-safe-keeper/internal/logger"
	"github.com/MKhiriev/go-safe-keeper/models"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// accessFields collects what a handler learned about the request for the
// access log entry. Empty fields are omitted.
type accessFields struct {
	intent   models.IntentKind
	sender   models.Address
	objectID models.ObjectID
	event    models.EventKind
	reason   string
}

type accessFieldsKey struct{}

// annotate returns the access log fields of r. Outside withLogging it
// returns a detached value, so handlers never need a nil check.
func annotate(r *http.Request) *accessFields {
	if f, ok := r.Context().Value(accessFieldsKey{}).(*accessFields); ok {
		return f
	}
	return &accessFields{}
}

func (f *accessFields) apply(e *zerolog.Event) *zerolog.Event {
	if f.intent != "" {
		e = e.Str("intent", string(f.intent))
	}
	if f.sender != "" {
		e = e.Str("sender", f.sender.String())
	}
	if f.objectID != "" {
		e = e.Str("object_id", f.objectID.String())
	}
	if f.event != "" {
		e = e.Str("event_kind", string(f.event))
	}
	if f.reason != "" {
		e = e.Str("reason", f.reason)
	}
	return e
}

// withLogging writes one access log entry per request through the request
// logger set by withTraceID. The entry carries the matched route and the
// ledger fields the handler recorded with annotate.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		start := time.Now()
		fields := &accessFields{}
		r = r.WithContext(context.WithValue(r.Context(), accessFieldsKey{}, fields))

		lw := &responseWriter{
			ResponseWriter: w,
		}

		next.ServeHTTP(lw, r)

		entry := log.Info()
		if lw.status >= http.StatusInternalServerError {
			entry = log.Warn()
		}
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if route := rctx.RoutePattern(); route != "" {
				entry = entry.Str("route", route)
			}
		}

		fields.apply(entry).
			Str("uri", r.RequestURI).
			Str("method", r.Method).
			Int("status", lw.status).
			Dur("duration", time.Since(start)).
			Int("size", lw.size).
			Send()
	})
}

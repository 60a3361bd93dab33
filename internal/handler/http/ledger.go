package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-safe-keeper/internal/adapter"
	"github.com/MKhiriev/go-safe-keeper/internal/app"
	"github.com/MKhiriev/go-safe-keeper/internal/logger"
	"github.com/MKhiriev/go-safe-keeper/internal/utils"
	"github.com/MKhiriev/go-safe-keeper/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) submitIntent(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var in models.SignedIntent
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		log.Err(err).Str("func", "*Handler.submitIntent").Msg("error decoding intent")
		writeError(w, r, fmt.Errorf("%w: %s", adapter.ErrBadRequest, app.MsgInvalidDataProvided))
		return
	}

	fields := annotate(r)
	fields.intent = in.Intent.Kind
	fields.sender = in.Intent.Sender
	fields.objectID = intentTarget(in.Intent)

	if key := r.Header.Get(utils.IdempotencyKeyHeader); key != "" && key != in.Intent.IdempotencyKey {
		writeError(w, r, fmt.Errorf("%w: %s", adapter.ErrBadRequest, app.MsgIdempotencyKeyMismatch))
		return
	}

	conf, err := h.ledger.Submit(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, conf, http.StatusOK)
}

func (h *Handler) getObject(w http.ResponseWriter, r *http.Request) {
	id, err := models.ParseObjectID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: %s", adapter.ErrBadRequest, app.MsgInvalidObjectID))
		return
	}
	annotate(r).objectID = id

	obj, err := h.ledger.GetObject(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, obj, http.StatusOK)
}

func (h *Handler) queryEvents(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	kind := models.EventKind(query.Get("kind"))
	annotate(r).event = kind
	cursor, cursorErr := parseUintParam(query.Get("cursor"))
	limit, limitErr := parseUintParam(query.Get("limit"))
	if kind == "" || cursorErr != nil || limitErr != nil {
		writeError(w, r, fmt.Errorf("%w: %s", adapter.ErrBadRequest, app.MsgInvalidEventQuery))
		return
	}

	batch, err := h.ledger.QueryEvents(r.Context(), kind, models.Cursor(cursor), int(limit))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if batch.Events == nil {
		batch.Events = []models.Event{}
	}

	utils.WriteJSON(w, batch, http.StatusOK)
}

// intentTarget is the object an intent acts on: the safe when set,
// otherwise the vault.
func intentTarget(in models.Intent) models.ObjectID {
	if in.SafeID != "" {
		return in.SafeID
	}
	return in.VaultID
}

// parseUintParam treats an absent parameter as zero.
func parseUintParam(raw string) (uint64, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseUint(raw, 10, 32)
}

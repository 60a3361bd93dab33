package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-safe-keeper/internal/adapter"
	"github.com/MKhiriev/go-safe-keeper/internal/app"
	"github.com/MKhiriev/go-safe-keeper/internal/logger"
	"github.com/MKhiriev/go-safe-keeper/internal/utils"
	"github.com/MKhiriev/go-safe-keeper/models"
)

func (h *Handler) encrypt(w http.ResponseWriter, r *http.Request) {
	var req models.EncryptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.encrypt").Msg("error decoding request")
		writeError(w, r, fmt.Errorf("%w: %s", adapter.ErrBadRequest, app.MsgInvalidDataProvided))
		return
	}

	ciphertext, err := h.keys.Encrypt(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.EncryptResponse{Ciphertext: ciphertext}, http.StatusOK)
}

func (h *Handler) decrypt(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.DecryptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.decrypt").Msg("error decoding request")
		writeError(w, r, fmt.Errorf("%w: %s", adapter.ErrBadRequest, app.MsgInvalidDataProvided))
		return
	}
	if token, _ := r.Context().Value(requestTokenCtxKey).(string); token != req.Session.RequestToken {
		log.Warn().Str("func", "*Handler.decrypt").Str("address", req.Session.Address.String()).Msg(app.MsgRequestTokenMismatch)
		writeError(w, r, fmt.Errorf("%w: %s", adapter.ErrUnauthorized, app.MsgRequestTokenMismatch))
		return
	}

	plaintext, err := h.keys.Decrypt(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.DecryptResponse{Plaintext: plaintext}, http.StatusOK)
}

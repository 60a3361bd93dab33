package http

import (
	"io"
	"net/http"

	"github.com/MKhiriev/go-safe-keeper/internal/logger"
	"github.com/MKhiriev/go-safe-keeper/internal/utils"
	"github.com/MKhiriev/go-safe-keeper/models"
	"github.com/go-chi/chi/v5"
)

// maxBlobSize bounds one upload.
const maxBlobSize = 32 << 20

type putBlobResponse struct {
	Ref models.BlobRef `json:"ref"`
}

func (h *Handler) putBlob(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBlobSize))
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.putBlob").Msg("failed to read request body")
		http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
		return
	}

	ref, err := h.blobs.Put(r.Context(), body)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, putBlobResponse{Ref: ref}, http.StatusCreated)
}

func (h *Handler) getBlob(w http.ResponseWriter, r *http.Request) {
	data, err := h.blobs.Get(r.Context(), models.BlobRef(chi.URLParam(r, "ref")))
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Write(data)
}

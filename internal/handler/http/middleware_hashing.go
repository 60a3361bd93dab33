package http

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/MKhiriev/go-safe-keeper/internal/adapter"
	"github.com/MKhiriev/go-safe-keeper/internal/app"
	"github.com/MKhiriev/go-safe-keeper/internal/crypto"
	"github.com/MKhiriev/go-safe-keeper/internal/utils"
	"github.com/MKhiriev/go-safe-keeper/models"
)

// blobIntegrity checks an upload against the reference the client
// announced in the X-Blob-Ref header. Uploads without the header pass
// through unchecked.
func (h *Handler) blobIntegrity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		want := models.BlobRef(r.Header.Get(utils.BlobRefHeader))
		if want == "" {
			next.ServeHTTP(w, r)
			return
		}

		h.logger.Debug().Str("func", "*Handler.blobIntegrity").Msg("checking hash begins")

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBlobSize))
		if err != nil {
			h.logger.Err(err).Str("func", "*Handler.blobIntegrity").Msg("failed to read request body")
			http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
			return
		}
		// restore request body
		r.Body = io.NopCloser(bytes.NewReader(body))

		if got := crypto.BlobRefFor(body); got != want {
			h.logger.Error().Str("func", "*Handler.blobIntegrity").
				Str("announced", string(want)).
				Str("computed", string(got)).
				Msg("hashes are not equal")
			writeError(w, r, fmt.Errorf("%w: %s", adapter.ErrInvalidFormat, app.MsgBlobIntegrityFailed))
			return
		}

		next.ServeHTTP(w, r)
	})
}

package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-safe-keeper/internal/crypto"
	"github.com/MKhiriev/go-safe-keeper/internal/store"
	"github.com/MKhiriev/go-safe-keeper/internal/utils"
	"github.com/MKhiriev/go-safe-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// ── putBlob ──────────────────────────────────────────────────────────────────

func TestPutBlob(t *testing.T) {
	h, m := newMockedHandler(t)
	data := []byte("ciphertext")
	ref := crypto.BlobRefFor(data)
	m.blobs.EXPECT().Put(gomock.Any(), data).Return(ref, nil)

	req := httptest.NewRequest(http.MethodPut, "/v1/blobs", bytes.NewReader(data))
	req.Header.Set(utils.BlobRefHeader, string(ref))
	rec := serve(h, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var got putBlobResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, ref, got.Ref)
}

func TestPutBlob_WithoutAnnouncedRef(t *testing.T) {
	h, m := newMockedHandler(t)
	m.blobs.EXPECT().Put(gomock.Any(), []byte("x")).Return(models.BlobRef("b3:00"), nil)

	rec := serve(h, httptest.NewRequest(http.MethodPut, "/v1/blobs", bytes.NewReader([]byte("x"))))

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestPutBlob_IntegrityMismatch(t *testing.T) {
	h, _ := newMockedHandler(t)

	req := httptest.NewRequest(http.MethodPut, "/v1/blobs", bytes.NewReader([]byte("tampered")))
	req.Header.Set(utils.BlobRefHeader, string(crypto.BlobRefFor([]byte("original"))))
	rec := serve(h, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "InvalidFormat", decodeRejection(t, rec).Reason)
}

// ── getBlob ──────────────────────────────────────────────────────────────────

func TestGetBlob(t *testing.T) {
	h, m := newMockedHandler(t)
	m.blobs.EXPECT().Get(gomock.Any(), models.BlobRef("b3:ab")).Return([]byte{0x01, 0x02}, nil)

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/v1/blobs/b3:ab", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []byte{0x01, 0x02}, rec.Body.Bytes())
	assert.Equal(t, "application/octet-stream", rec.Header().Get("Content-Type"))
}

func TestGetBlob_StorageErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantReason string
	}{
		{"not found", store.ErrBlobNotFound, http.StatusNotFound, "NotFound"},
		{"invalid ref", store.ErrInvalidBlobRef, http.StatusBadRequest, "BadRequest"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newMockedHandler(t)
			m.blobs.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, tt.err)

			rec := serve(h, httptest.NewRequest(http.MethodGet, "/v1/blobs/b3:ff", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantReason, decodeRejection(t, rec).Reason)
		})
	}
}

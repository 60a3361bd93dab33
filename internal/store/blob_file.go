package store

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/go-safe-keeper/internal/crypto"
	"github.com/MKhiriev/go-safe-keeper/internal/logger"
	"github.com/MKhiriev/go-safe-keeper/models"
)

const blobRefPrefix = "b3:"

// FileBlobStorage keeps one file per blob under dir, named by the hex
// digest of its content.
type FileBlobStorage struct {
	dir    string
	logger *logger.Logger
}

// NewFileBlobStorage creates dir if needed.
func NewFileBlobStorage(dir string, log *logger.Logger) (*FileBlobStorage, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("error creating blob dir: %w", err)
	}
	return &FileBlobStorage{dir: dir, logger: log}, nil
}

func (f *FileBlobStorage) Put(ctx context.Context, data []byte) (models.BlobRef, error) {
	ref := crypto.BlobRefFor(data)
	path, err := f.path(ref)
	if err != nil {
		return "", err
	}

	if _, err = os.Stat(path); err == nil {
		return ref, nil
	}

	// write-then-rename so a reader never sees a partial blob
	tmp, err := os.CreateTemp(f.dir, ".blob-*")
	if err != nil {
		return "", fmt.Errorf("error creating blob file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("error writing blob: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return "", fmt.Errorf("error writing blob: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("error storing blob: %w", err)
	}

	f.logger.Debug().Str("func", "FileBlobStorage.Put").Str("ref", string(ref)).Int("size", len(data)).Msg("blob stored")
	return ref, nil
}

func (f *FileBlobStorage) Get(ctx context.Context, ref models.BlobRef) ([]byte, error) {
	path, err := f.path(ref)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrBlobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error reading blob: %w", err)
	}
	return data, nil
}

func (f *FileBlobStorage) path(ref models.BlobRef) (string, error) {
	digest, ok := strings.CutPrefix(string(ref), blobRefPrefix)
	if !ok || len(digest) != 64 {
		return "", ErrInvalidBlobRef
	}
	if _, err := hex.DecodeString(digest); err != nil {
		return "", ErrInvalidBlobRef
	}
	return filepath.Join(f.dir, digest), nil
}

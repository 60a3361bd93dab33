package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Headers shared by the client adapters and the devnet handlers.
const (
	// TraceIDHeader carries the request trace id.
	TraceIDHeader = "X-Trace-ID"
	// IdempotencyKeyHeader repeats the intent's idempotency key so proxies
	// can deduplicate without decoding the body.
	IdempotencyKeyHeader = "Idempotency-Key"
	// BlobRefHeader announces the content address of an uploaded blob so
	// the blob store can reject corrupted uploads.
	BlobRefHeader = "X-Blob-Ref"
)

// WriteJSON serializes the given data to JSON and writes it to the HTTP response.
//
// It sets the "Content-Type" header to "application/json" and writes
// the provided HTTP status code before sending the response body.
//
// If marshaling fails, it responds with 500 Internal Server Error
// and returns a wrapped error.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}

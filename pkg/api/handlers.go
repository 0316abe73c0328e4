package api

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/adfharrison1/go-qbe/pkg/codec"
	"github.com/adfharrison1/go-qbe/pkg/domain"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 10 << 20

// maxBatchSize bounds the number of records in a batch insert.
const maxBatchSize = 1000

// Handler provides HTTP handlers for the database API
type Handler struct {
	storage domain.StorageEngine
}

// NewHandler creates a new API handler with dependency injection
func NewHandler(storage domain.StorageEngine) *Handler {
	return &Handler{
		storage: storage,
	}
}

// decodeBody reads the request body with the codec named by Content-Type.
// An empty body leaves v untouched and reports false.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) (bool, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return false, fmt.Errorf("failed to read body: %w", err)
	}
	if len(data) == 0 {
		return false, nil
	}
	c := codec.ForContentType(r.Header.Get("Content-Type"))
	if err := c.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to decode %s body: %w", c.Name(), err)
	}
	return true, nil
}

// writeResponse encodes v with the codec named by the Accept header.
func writeResponse(w http.ResponseWriter, r *http.Request, status int, v any) {
	c := codec.ForContentType(r.Header.Get("Accept"))
	data, err := c.Marshal(v)
	if err != nil {
		log.Printf("ERROR: Encoding %s response failed: %v", c.Name(), err)
		WriteJSONError(w, http.StatusInternalServerError, "failed to encode response")
		return
	}
	w.Header().Set("Content-Type", c.ContentType())
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		log.Printf("ERROR: Failed to write response: %v", err)
	}
}

// statusForError maps storage errors to HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrCollectionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrCollectionExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrCollectionLimit):
		return http.StatusInsufficientStorage
	case errors.Is(err, domain.ErrConfiguration),
		errors.Is(err, domain.ErrInvalidPagination),
		errors.Is(err, domain.ErrInvalidRecord),
		errors.Is(err, domain.ErrInvalidName):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

package api

import (
	"fmt"
	"log"
	"net/http"

	"github.com/adfharrison1/go-qbe/pkg/domain"
	"github.com/gorilla/mux"
)

// BatchInsertRequest represents the request body for batch insert operations
type BatchInsertRequest struct {
	Records []*domain.Record `json:"records"`
}

// BatchInsertResponse represents the response for batch insert operations
type BatchInsertResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	InsertedCount int    `json:"inserted_count"`
	Collection    string `json:"collection"`
}

// HandleBatchInsert handles POST requests to add multiple records to a collection
func (h *Handler) HandleBatchInsert(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	collName := vars["coll"]

	log.Printf("INFO: handleBatchInsert called for collection '%s'", collName)

	var req BatchInsertRequest
	if _, err := decodeBody(w, r, &req); err != nil {
		log.Printf("ERROR: Decoding body failed: %v", err)
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	// Validate request
	if len(req.Records) == 0 {
		log.Printf("ERROR: No records provided for batch insert")
		WriteJSONError(w, http.StatusBadRequest, "No records provided")
		return
	}

	if len(req.Records) > maxBatchSize {
		log.Printf("ERROR: Too many records for batch insert: %d", len(req.Records))
		WriteJSONError(w, http.StatusBadRequest, fmt.Sprintf("Maximum %d records allowed per batch", maxBatchSize))
		return
	}

	n, err := h.storage.BatchInsert(collName, req.Records)
	if err != nil {
		log.Printf("ERROR: Batch insert failed for collection '%s': %v", collName, err)
		WriteStorageError(w, err)
		return
	}

	response := BatchInsertResponse{
		Success:       true,
		Message:       "Batch insert completed successfully",
		InsertedCount: n,
		Collection:    collName,
	}
	writeResponse(w, r, http.StatusCreated, response)

	log.Printf("INFO: Batch insert successful for collection '%s', inserted %d records", collName, n)
}

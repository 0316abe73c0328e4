package api

import (
	"log"
	"net/http"

	"github.com/adfharrison1/go-qbe/pkg/domain"
	"github.com/gorilla/mux"
)

// InsertResponse represents the response for a single insert
type InsertResponse struct {
	Success    bool           `json:"success"`
	Collection string         `json:"collection"`
	Record     *domain.Record `json:"record"`
}

// HandleInsert handles POST requests to add a record to a collection
func (h *Handler) HandleInsert(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	collName := vars["coll"]

	log.Printf("INFO: handleInsert called for collection '%s'", collName)

	rec := domain.NewRecord()
	ok, err := decodeBody(w, r, rec)
	if err != nil {
		log.Printf("ERROR: Decoding body failed: %v", err)
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if !ok {
		WriteJSONError(w, http.StatusBadRequest, "Request body is required")
		return
	}

	// the stored record belongs to the collection once inserted
	echo := rec.Clone()
	if err := h.storage.Insert(collName, rec); err != nil {
		log.Printf("ERROR: Insert failed for collection '%s': %v", collName, err)
		WriteStorageError(w, err)
		return
	}

	log.Printf("INFO: Insert successful for collection '%s'", collName)
	writeResponse(w, r, http.StatusCreated, InsertResponse{
		Success:    true,
		Collection: collName,
		Record:     echo,
	})
}

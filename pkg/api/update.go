package api

import (
	"log"
	"net/http"

	"github.com/adfharrison1/go-qbe/pkg/domain"
	"github.com/gorilla/mux"
)

// UpdateRequest selects records by query and applies patch to each of them.
// A missing query matches every record.
type UpdateRequest struct {
	Query *domain.Record `json:"query"`
	Patch *domain.Record `json:"patch"`
}

// UpdateResponse reports how many records the query matched
type UpdateResponse struct {
	Success      bool   `json:"success"`
	Collection   string `json:"collection"`
	MatchedCount int    `json:"matched_count"`
}

// HandleUpdate handles PATCH requests that update every record matching a query
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	collName := vars["coll"]

	log.Printf("INFO: handleUpdate called for collection '%s'", collName)

	var req UpdateRequest
	if _, err := decodeBody(w, r, &req); err != nil {
		log.Printf("ERROR: Decoding body failed: %v", err)
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Patch == nil {
		WriteJSONError(w, http.StatusBadRequest, "patch is required")
		return
	}

	matched, err := h.storage.Update(collName, req.Query, req.Patch)
	if err != nil {
		log.Printf("ERROR: Update failed for collection '%s': %v", collName, err)
		WriteStorageError(w, err)
		return
	}

	log.Printf("INFO: Update matched %d records in collection '%s' with query %s", matched, collName, req.Query)
	writeResponse(w, r, http.StatusOK, UpdateResponse{
		Success:      true,
		Collection:   collName,
		MatchedCount: matched,
	})
}

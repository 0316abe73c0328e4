package api

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
)

// IndexesResponse lists the indexed fields of a collection
type IndexesResponse struct {
	Success    bool     `json:"success"`
	Collection string   `json:"collection"`
	Indexes    []string `json:"indexes"`
	IndexCount int      `json:"index_count"`
}

// HandleGetIndexes handles GET requests to retrieve all indexes for a collection
func (h *Handler) HandleGetIndexes(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	collName := vars["coll"]

	log.Printf("INFO: handleGetIndexes called for collection '%s'", collName)

	indexes, err := h.storage.GetIndexes(collName)
	if err != nil {
		log.Printf("ERROR: Failed to get indexes for collection '%s': %v", collName, err)
		WriteStorageError(w, err)
		return
	}

	writeResponse(w, r, http.StatusOK, IndexesResponse{
		Success:    true,
		Collection: collName,
		Indexes:    indexes,
		IndexCount: len(indexes),
	})

	log.Printf("INFO: Retrieved %d indexes for collection '%s'", len(indexes), collName)
}

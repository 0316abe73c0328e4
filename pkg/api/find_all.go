package api

import (
	"log"
	"net/http"

	"github.com/adfharrison1/go-qbe/pkg/domain"
	"github.com/gorilla/mux"
)

// HandleFindAll handles GET requests to page through every record of a collection
func (h *Handler) HandleFindAll(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	collName := vars["coll"]

	log.Printf("INFO: handleFindAll called for collection '%s'", collName)

	opts, err := parsePagination(r.URL.Query())
	if err != nil {
		WriteStorageError(w, err)
		return
	}
	if opts == nil {
		opts = domain.DefaultPaginationOptions()
	}

	result, err := h.storage.FindAll(collName, opts)
	if err != nil {
		log.Printf("ERROR: FindAll failed for collection '%s': %v", collName, err)
		WriteStorageError(w, err)
		return
	}

	log.Printf("INFO: Found %d of %d records in collection '%s'", len(result.Records), result.Total, collName)
	writeResponse(w, r, http.StatusOK, result)
}

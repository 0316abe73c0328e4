package api

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
)

// CreateCollectionRequest is the body of a create request. A missing or
// null indexes list selects autoindexing.
type CreateCollectionRequest struct {
	Indexes *[]string `json:"indexes"`
}

// CollectionListResponse lists every collection name
type CollectionListResponse struct {
	Collections []string `json:"collections"`
	Count       int      `json:"count"`
}

// HandleCreateCollection handles POST requests to create a collection
func (h *Handler) HandleCreateCollection(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	collName := vars["coll"]

	log.Printf("INFO: handleCreateCollection called for collection '%s'", collName)

	var req CreateCollectionRequest
	if _, err := decodeBody(w, r, &req); err != nil {
		log.Printf("ERROR: Decoding body failed: %v", err)
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	var indexes []string
	if req.Indexes != nil {
		indexes = *req.Indexes
		if indexes == nil {
			indexes = []string{}
		}
	}

	if err := h.storage.CreateCollection(collName, indexes); err != nil {
		log.Printf("ERROR: Create failed for collection '%s': %v", collName, err)
		WriteStorageError(w, err)
		return
	}

	info, err := h.storage.GetCollectionInfo(collName)
	if err != nil {
		WriteStorageError(w, err)
		return
	}

	log.Printf("INFO: Created %s collection '%s'", info.Mode, collName)
	writeResponse(w, r, http.StatusCreated, info)
}

// HandleGetCollection handles GET requests for a collection summary
func (h *Handler) HandleGetCollection(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	collName := vars["coll"]

	info, err := h.storage.GetCollectionInfo(collName)
	if err != nil {
		log.Printf("ERROR: Collection '%s' not found: %v", collName, err)
		WriteStorageError(w, err)
		return
	}
	writeResponse(w, r, http.StatusOK, info)
}

// HandleListCollections handles GET requests to list collections
func (h *Handler) HandleListCollections(w http.ResponseWriter, r *http.Request) {
	names := h.storage.ListCollections()
	writeResponse(w, r, http.StatusOK, CollectionListResponse{
		Collections: names,
		Count:       len(names),
	})
}

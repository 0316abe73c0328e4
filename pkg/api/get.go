package api

import (
	"log"
	"net/http"

	"github.com/adfharrison1/go-qbe/pkg/domain"
	"github.com/gorilla/mux"
)

// GetResponse holds the records whose field equals a value
type GetResponse struct {
	Collection string           `json:"collection"`
	Field      string           `json:"field"`
	Value      domain.Value     `json:"value"`
	Records    []*domain.Record `json:"records"`
	Count      int              `json:"count"`
}

// HandleGet handles GET requests that look up records by a single field value
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	collName := vars["coll"]
	field := vars["field"]

	q := r.URL.Query()
	if !q.Has("value") {
		WriteJSONError(w, http.StatusBadRequest, "value query parameter is required")
		return
	}
	value := domain.ParseValue(q.Get("value"))

	log.Printf("INFO: handleGet called for collection '%s' with %s=%s", collName, field, value)

	records, err := h.storage.Get(collName, field, value)
	if err != nil {
		log.Printf("ERROR: Get failed for collection '%s': %v", collName, err)
		WriteStorageError(w, err)
		return
	}

	writeResponse(w, r, http.StatusOK, GetResponse{
		Collection: collName,
		Field:      field,
		Value:      value,
		Records:    records,
		Count:      len(records),
	})
}

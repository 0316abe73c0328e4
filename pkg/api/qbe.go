package api

import (
	"log"
	"net/http"

	"github.com/adfharrison1/go-qbe/pkg/domain"
	"github.com/gorilla/mux"
)

// ExplainResponse wraps a query plan
type ExplainResponse struct {
	Collection string            `json:"collection"`
	Example    *domain.Record    `json:"example"`
	Plan       *domain.QueryPlan `json:"plan"`
}

// readExample decodes the example record from the body. An empty body is
// the empty example.
func readExample(w http.ResponseWriter, r *http.Request) (*domain.Record, bool) {
	example := domain.NewRecord()
	if _, err := decodeBody(w, r, example); err != nil {
		log.Printf("ERROR: Decoding body failed: %v", err)
		WriteJSONError(w, http.StatusBadRequest, "Invalid example: "+err.Error())
		return nil, false
	}
	return example, true
}

// HandleQBE handles POST requests that query by example
func (h *Handler) HandleQBE(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	collName := vars["coll"]

	example, ok := readExample(w, r)
	if !ok {
		return
	}

	log.Printf("INFO: handleQBE called for collection '%s' with example %s", collName, example)

	opts, err := parsePagination(r.URL.Query())
	if err != nil {
		WriteStorageError(w, err)
		return
	}

	result, err := h.storage.QBE(collName, example, opts)
	if err != nil {
		log.Printf("ERROR: QBE failed for collection '%s': %v", collName, err)
		WriteStorageError(w, err)
		return
	}

	log.Printf("INFO: QBE matched %d records in collection '%s'", result.Total, collName)
	writeResponse(w, r, http.StatusOK, result)
}

// HandleExplain handles POST requests that describe how an example would be executed
func (h *Handler) HandleExplain(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	collName := vars["coll"]

	example, ok := readExample(w, r)
	if !ok {
		return
	}

	plan, err := h.storage.Explain(collName, example)
	if err != nil {
		log.Printf("ERROR: Explain failed for collection '%s': %v", collName, err)
		WriteStorageError(w, err)
		return
	}

	writeResponse(w, r, http.StatusOK, ExplainResponse{
		Collection: collName,
		Example:    example,
		Plan:       plan,
	})
}

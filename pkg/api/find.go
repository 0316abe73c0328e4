package api

import (
	"log"
	"net/http"
	"net/url"
	"sort"

	"github.com/adfharrison1/go-qbe/pkg/domain"
	"github.com/gorilla/mux"
)

// exampleFromQuery builds an example record from query parameters. Keys are
// taken in sorted order since url.Values does not keep the request order.
func exampleFromQuery(q url.Values) *domain.Record {
	keys := make([]string, 0, len(q))
	for key, values := range q {
		if key == paramLimit || key == paramOffset || len(values) == 0 {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	example := domain.NewRecord()
	for _, key := range keys {
		// Take first value if multiple provided
		example.Set(key, domain.ParseValue(q.Get(key)))
	}
	return example
}

// HandleFind handles GET requests that query by example using query parameters
func (h *Handler) HandleFind(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	collName := vars["coll"]

	q := r.URL.Query()
	example := exampleFromQuery(q)

	log.Printf("INFO: handleFind called for collection '%s' with example %s", collName, example)

	opts, err := parsePagination(q)
	if err != nil {
		WriteStorageError(w, err)
		return
	}

	result, err := h.storage.QBE(collName, example, opts)
	if err != nil {
		log.Printf("ERROR: Find failed for collection '%s': %v", collName, err)
		WriteStorageError(w, err)
		return
	}

	log.Printf("INFO: Found %d records in collection '%s' with example %s", result.Total, collName, example)
	writeResponse(w, r, http.StatusOK, result)
}

package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"
)

// HandleFindWithStream handles GET requests that stream the records matching
// the query parameters as a chunked JSON array
func (h *Handler) HandleFindWithStream(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	collName := vars["coll"]

	example := exampleFromQuery(r.URL.Query())

	log.Printf("INFO: handleFindWithStream called for collection '%s' with example %s", collName, example)

	// cancelling stops the producer if the client goes away mid-stream
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	recChan, err := h.storage.QBEStream(ctx, collName, example)
	if err != nil {
		log.Printf("ERROR: Stream failed for collection '%s': %v", collName, err)
		WriteStorageError(w, err)
		return
	}

	// Set headers for streaming
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")

	if !writeChunk(w, "[\n") {
		return
	}

	first := true
	count := 0
	flusher, canFlush := w.(http.Flusher)

	for rec := range recChan {
		data, err := json.Marshal(rec)
		if err != nil {
			log.Printf("ERROR: Failed to marshal record: %v", err)
			continue
		}
		if !first && !writeChunk(w, ",\n") {
			return
		}
		first = false

		if !writeChunk(w, string(data)) {
			return
		}
		if canFlush {
			flusher.Flush()
		}
		count++
	}

	if !writeChunk(w, "\n]") {
		return
	}

	log.Printf("INFO: Streamed %d records from collection '%s'", count, collName)
}

func writeChunk(w http.ResponseWriter, chunk string) bool {
	if _, err := w.Write([]byte(chunk)); err != nil {
		log.Printf("ERROR: Failed to write to response: %v", err)
		return false
	}
	return true
}

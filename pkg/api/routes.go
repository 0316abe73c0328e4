package api

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API routes with the given router
func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/health", h.HandleHealth).Methods("GET")
	router.HandleFunc("/stats", h.HandleStats).Methods("GET")

	// Collection operations
	router.HandleFunc("/collections", h.HandleListCollections).Methods("GET")
	router.HandleFunc("/collections/{coll}", h.HandleCreateCollection).Methods("POST")
	router.HandleFunc("/collections/{coll}", h.HandleGetCollection).Methods("GET")
	router.HandleFunc("/collections/{coll}/indexes", h.HandleGetIndexes).Methods("GET")

	// Record operations
	router.HandleFunc("/collections/{coll}/records", h.HandleInsert).Methods("POST")
	router.HandleFunc("/collections/{coll}/records", h.HandleFindAll).Methods("GET")
	router.HandleFunc("/collections/{coll}/batch", h.HandleBatchInsert).Methods("POST")
	router.HandleFunc("/collections/{coll}/update", h.HandleUpdate).Methods("PATCH")

	// Queries
	router.HandleFunc("/collections/{coll}/get/{field}", h.HandleGet).Methods("GET")
	router.HandleFunc("/collections/{coll}/qbe", h.HandleQBE).Methods("POST")
	router.HandleFunc("/collections/{coll}/find", h.HandleFind).Methods("GET")
	router.HandleFunc("/collections/{coll}/find_with_stream", h.HandleFindWithStream).Methods("GET")
	router.HandleFunc("/collections/{coll}/explain", h.HandleExplain).Methods("POST")
}

package api

import (
	"net/http"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// HandleHealth handles GET requests to the health check endpoint
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:  "healthy",
		Message: "go-qbe is running",
	}
	writeResponse(w, r, http.StatusOK, response)
}

// HandleStats handles GET requests for memory and collection statistics
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	writeResponse(w, r, http.StatusOK, h.storage.GetMemoryStats())
}

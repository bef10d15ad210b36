package handler

import (
	"encoding/json"
	"net/http"
)

// HealthCheck godoc
// @Summary      Report service liveness
// @Description  Returns a static payload confirming the catalog API is serving requests.
// @Tags         health
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "book API is up and serving"})
}

package handlers

import "net/http"

type HealthResponse struct {
	Status string `json:"status"`
	LLM    string `json:"llm"`
}

// Health reports liveness and which chat model backs the analysis.
func Health(llmName string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", LLM: llmName})
	}
}

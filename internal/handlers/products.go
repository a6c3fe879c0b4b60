package handlers

import (
	"net/http"
	"strings"

	"github.com/AnshRaj112/feedbackhub-backend/internal/ai"
)

type ProductLinkResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Source  string `json:"source"`
	Link    string `json:"link"`
}

// ProductLink handles GET /api/products/link?source=&title=.
func ProductLink(w http.ResponseWriter, r *http.Request) {
	title := strings.TrimSpace(r.URL.Query().Get("title"))
	if title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	source := ai.NormalizeSource(r.URL.Query().Get("source"))

	writeJSON(w, http.StatusOK, ProductLinkResponse{
		Success: true,
		Message: "Product link generated",
		Source:  source,
		Link:    ai.ProductLink(source, title),
	})
}

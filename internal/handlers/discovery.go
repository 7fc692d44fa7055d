package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/skillswap/backend/internal/logger"
	"github.com/skillswap/backend/internal/models"
)

// Searcher defines the interface that the discovery service must implement.
type Searcher interface {
	Search(ctx context.Context, q, category string, page, pageSize int) ([]models.SearchResult, error)
}

// SearchResponse represents a discovery result page
// swagger:model SearchResponse
type SearchResponse struct {
	// Matching users with their offered skill and reputation summary
	Results []models.SearchResult `json:"results"`

	// Page served
	Page int `json:"page"`
}

// NewSearchHandler returns an HTTP handler for discovery search.
// @Summary Search skill partners
// @Description Finds users offering skills matching the query and/or category
// @Tags discovery
// @Produce json
// @Security BearerAuth
// @Param q query string false "Skill name substring"
// @Param category query string false "Skill category"
// @Param page query int false "Page number, starting at 1"
// @Param page_size query int false "Page size, max 50"
// @Success 200 {object} handlers.SearchResponse "Result page returned"
// @Router /api/discovery/search [get]
func NewSearchHandler(svc Searcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		category := r.URL.Query().Get("category")
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
		if page < 1 {
			page = 1
		}

		results, err := svc.Search(r.Context(), q, category, page, pageSize)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(ErrorResponse{Message: "Internal server error"})
			return
		}

		if results == nil {
			results = []models.SearchResult{}
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(SearchResponse{Results: results, Page: page})
	}
}

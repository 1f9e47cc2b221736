package httpapi

import (
	"time"

	"github.com/kitbuilder587/boolsearch/internal/domain"
)

type searchRequest struct {
	Domain string `json:"domain"`
	Query  string `json:"query"`
}

// searchResponse: error всегда присутствует, null при успехе.
type searchResponse struct {
	URL         string  `json:"url"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Error       *string `json:"error"`
}

func toSearchResponse(r domain.SearchResult) searchResponse {
	resp := searchResponse{
		URL:         r.URL,
		Title:       r.Title,
		Description: r.Description,
	}
	if r.Error != "" {
		msg := r.Error
		resp.Error = &msg
	}
	return resp
}

type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	Status          string `json:"status"`
	Message         string `json:"message"`
	HasAPIKey       bool   `json:"hasApiKey"`
	HasAlternateKey bool   `json:"hasAlternateKey"`
	Storage         bool   `json:"storage"`
}

type runRequest struct {
	Project  string   `json:"project"`
	Domains  []string `json:"domains"`
	Articles []string `json:"articles"`
}

type runStats struct {
	Total    int `json:"total"`
	Found    int `json:"found"`
	NotFound int `json:"notFound"`
	Failed   int `json:"failed"`
}

type runItem struct {
	Position    int     `json:"position"`
	Domain      string  `json:"domain"`
	Article     string  `json:"article"`
	SearchQuery string  `json:"searchQuery"`
	URL         string  `json:"url"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Error       *string `json:"error"`
}

type runResponse struct {
	ID        string    `json:"id"`
	Project   string    `json:"project"`
	CreatedAt time.Time `json:"createdAt"`
	Domains   []string  `json:"domains"`
	Articles  []string  `json:"articles"`
	Stats     runStats  `json:"stats"`
	Items     []runItem `json:"items"`
}

type runSummary struct {
	ID        string    `json:"id"`
	Project   string    `json:"project"`
	CreatedAt time.Time `json:"createdAt"`
	Stats     runStats  `json:"stats"`
}

type runListResponse struct {
	Runs   []runSummary `json:"runs"`
	Total  int          `json:"total"`
	Limit  int          `json:"limit"`
	Offset int          `json:"offset"`
}

func toRunStats(st domain.RunStats) runStats {
	return runStats{Total: st.Total, Found: st.Found, NotFound: st.NotFound, Failed: st.Failed}
}

func toRunResponse(run *domain.Run) runResponse {
	items := make([]runItem, 0, len(run.Items))
	for _, it := range run.Items {
		res := toSearchResponse(it.Result)
		items = append(items, runItem{
			Position:    it.Position,
			Domain:      it.Domain,
			Article:     it.Article,
			SearchQuery: it.SearchQuery,
			URL:         res.URL,
			Title:       res.Title,
			Description: res.Description,
			Error:       res.Error,
		})
	}

	return runResponse{
		ID:        run.ID,
		Project:   run.Project,
		CreatedAt: run.CreatedAt,
		Domains:   run.Domains,
		Articles:  run.Articles,
		Stats:     toRunStats(run.Stats()),
		Items:     items,
	}
}

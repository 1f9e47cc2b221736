package serpapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kitbuilder587/boolsearch/internal/domain"
	"github.com/kitbuilder587/boolsearch/internal/search"
)

func TestClient_Search(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		statusCode int
		wantErr    error
		wantMsg    string
		wantCount  int
	}{
		{
			name:       "organic and inline videos",
			body:       `{"organic_results":[{"title":"Chi siamo","link":"https://www.msn.com/it-it/chi-siamo"}],"inline_videos":[{"title":"Clip","link":"https://www.msn.com/it-it/video/clip","source":"MSN","duration":"0:30"}]}`,
			statusCode: http.StatusOK,
			wantCount:  2,
		},
		{
			name:       "empty result reported as error",
			body:       `{"error":"Bing hasn't returned any results for this query."}`,
			statusCode: http.StatusOK,
			wantCount:  0,
		},
		{
			name:       "invalid key",
			body:       `{"error":"Invalid API key. Your API key should be here: https://serpapi.com/manage-api-key"}`,
			statusCode: http.StatusUnauthorized,
			wantErr:    domain.ErrUpstreamLogical,
			wantMsg:    "Errore SerpAPI: Invalid API key. Your API key should be here: https://serpapi.com/manage-api-key",
		},
		{
			name:       "bad gateway without body",
			body:       `<html>bad gateway</html>`,
			statusCode: http.StatusBadGateway,
			wantErr:    domain.ErrUpstreamTransport,
			wantMsg:    "Errore SerpAPI: HTTP 502",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				q := r.URL.Query()
				if r.URL.Path != "/search.json" {
					t.Errorf("path = %s", r.URL.Path)
				}
				if q.Get("engine") != "bing" || q.Get("cc") != "IT" || q.Get("count") != "10" {
					t.Errorf("unexpected params: %s", r.URL.RawQuery)
				}
				w.WriteHeader(tt.statusCode)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := New(Config{APIKey: "k", BaseURL: server.URL, Timeout: 5 * time.Second}, zap.NewNop())
			payload, err := client.Search(context.Background(), search.Request{Query: `site:msn.com "chi siamo"`})

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Search() error = %v, want %v", err, tt.wantErr)
				}
				if err.Error() != tt.wantMsg {
					t.Errorf("Search() message = %q, want %q", err.Error(), tt.wantMsg)
				}
				return
			}

			if err != nil {
				t.Fatalf("Search() unexpected error = %v", err)
			}
			if got := len(search.Merge(payload)); got != tt.wantCount {
				t.Errorf("Merge() len = %d, want %d", got, tt.wantCount)
			}
		})
	}
}

func TestClient_Engine(t *testing.T) {
	c := New(Config{APIKey: "k"}, zap.NewNop())
	if c.Engine() != "bing" || c.Name() != "SerpAPI" {
		t.Errorf("Name/Engine = %s/%s", c.Name(), c.Engine())
	}
}

package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kitbuilder587/boolsearch/internal/domain"
	"github.com/kitbuilder587/boolsearch/internal/probe"
	"github.com/kitbuilder587/boolsearch/internal/resolver"
	"github.com/kitbuilder587/boolsearch/internal/routing"
	"github.com/kitbuilder587/boolsearch/internal/search"
	searchMock "github.com/kitbuilder587/boolsearch/internal/search/mock"
	"github.com/kitbuilder587/boolsearch/internal/search/valueserp"
)

type stubProber struct {
	result *probe.Result
	calls  int32
}

func (p *stubProber) Probe(ctx context.Context, host, query string) (*probe.Result, bool) {
	atomic.AddInt32(&p.calls, 1)
	return p.result, p.result != nil
}

type panicResolver struct{}

func (panicResolver) Classify(string) domain.RoutingClass { return domain.ClassStandardWebSearch }
func (panicResolver) CheckConfigured(domain.RoutingClass) error { return nil }
func (panicResolver) Resolve(context.Context, domain.SearchRequest, domain.RoutingClass) domain.SearchResult {
	panic("boom")
}

// classifyPanicResolver падает еще до Resolve.
type classifyPanicResolver struct{ panicResolver }

func (classifyPanicResolver) Classify(string) domain.RoutingClass { panic("classify boom") }

type configPanicResolver struct{ panicResolver }

func (configPanicResolver) CheckConfigured(domain.RoutingClass) error { panic("config boom") }

func testRules() *routing.Rules {
	return &routing.Rules{
		InternalSearchOnly: []string{"italiasera.it"},
		AlternateEngine:    []string{"msn.com"},
		DirectURLTemplates: []string{"https://{domain}/video/{slug}/", "https://{domain}/{slug}/"},
	}
}

func newSearchService(standard, alternate search.Provider, prober resolver.Prober) SearchService {
	r := resolver.New(resolver.Deps{
		Classifier: routing.NewClassifier(testRules()),
		Prober:     prober,
		Standard:   standard,
		Alternate:  alternate,
		Logger:     zap.NewNop(),
	})
	return NewSearchService(SearchServiceDeps{Resolver: r, Logger: zap.NewNop()})
}

func TestSearchService_Found(t *testing.T) {
	standard := searchMock.New().WithResults(search.Result{
		Link: "https://example.it/privacy/", Title: "Privacy Policy", Snippet: "...",
	})
	svc := newSearchService(standard, nil, &stubProber{})

	res, err := svc.Search(context.Background(), &domain.SearchRequest{Domain: "https://www.Example.it/", Query: "privacy"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	want := domain.SearchResult{
		URL:         "https://example.it/privacy/",
		Title:       "Privacy Policy",
		Description: "...",
		Similarity:  0.8,
		Outcome:     domain.OutcomeFound,
	}
	if res != want {
		t.Errorf("Search() = %+v, want %+v", res, want)
	}
	if standard.LastRequest.Query != `site:example.it "privacy"` {
		t.Errorf("provider query = %q", standard.LastRequest.Query)
	}
}

func TestSearchService_ValidationBeforeNetwork(t *testing.T) {
	standard := searchMock.New()
	prober := &stubProber{}
	svc := newSearchService(standard, standard, prober)

	tests := []struct {
		name    string
		req     domain.SearchRequest
		wantErr error
	}{
		{"missing query", domain.SearchRequest{Domain: "example.it"}, domain.ErrEmptyQuery},
		{"missing domain", domain.SearchRequest{Query: "privacy"}, domain.ErrEmptyDomain},
		{"blank query", domain.SearchRequest{Domain: "example.it", Query: "   "}, domain.ErrEmptyQuery},
		{"invalid domain", domain.SearchRequest{Domain: "localhost", Query: "privacy"}, domain.ErrInvalidDomain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Search(context.Background(), &tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Search() error = %v, want %v", err, tt.wantErr)
			}
			if !domain.IsInputError(err) {
				t.Errorf("IsInputError(%v) = false", err)
			}
		})
	}

	if standard.Calls() != 0 || prober.calls != 0 {
		t.Errorf("network was touched: provider=%d prober=%d", standard.Calls(), prober.calls)
	}
}

func TestSearchService_NotConfigured(t *testing.T) {
	prober := &stubProber{result: &probe.Result{URL: "https://italiasera.it/a/", Title: "A"}}
	svc := newSearchService(nil, nil, prober)

	res, err := svc.Search(context.Background(), &domain.SearchRequest{Domain: "example.it", Query: "privacy"})
	if !errors.Is(err, domain.ErrProviderNotConfigured) {
		t.Fatalf("Search() error = %v, want ErrProviderNotConfigured", err)
	}
	if res.Error != domain.NotConfiguredMessage {
		t.Errorf("Error = %q", res.Error)
	}

	// internal-search домены работают без ключа
	res, err = svc.Search(context.Background(), &domain.SearchRequest{Domain: "italiasera.it", Query: "a"})
	if err != nil {
		t.Fatalf("Search() internal error = %v", err)
	}
	if !res.Found() {
		t.Errorf("Search() internal = %+v", res)
	}
}

func TestSearchService_UpstreamFailureSingleCall(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	standard := valueserp.New(valueserp.Config{APIKey: "k", BaseURL: server.URL, Timeout: 2 * time.Second}, zap.NewNop())
	svc := newSearchService(standard, nil, &stubProber{})

	res, err := svc.Search(context.Background(), &domain.SearchRequest{Domain: "example.it", Query: "privacy"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if res.Error == "" || res.URL != "" || res.Title != "" || res.Description != "" {
		t.Errorf("Search() = %+v, want error-only result", res)
	}
	if res.Outcome != domain.OutcomeFailed {
		t.Errorf("Outcome = %s", res.Outcome)
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("upstream calls = %d, want 1", n)
	}
}

type rewriteTransport struct {
	target *url.URL
}

func (rt rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.URL.Scheme = rt.target.Scheme
	r.URL.Host = rt.target.Host
	resp, err := http.DefaultTransport.RoundTrip(r)
	if resp != nil {
		resp.Request = req
	}
	return resp, err
}

func TestSearchService_InternalSearchNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Has("s") {
			w.Write([]byte(`<html><body><p>Nessun risultato</p></body></html>`))
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	target, _ := url.Parse(server.URL)
	prober := probe.New(probe.Config{Transport: rewriteTransport{target: target}}, testRules(), zap.NewNop(), nil)
	standard := searchMock.New()
	svc := newSearchService(standard, standard, prober)

	res, err := svc.Search(context.Background(), &domain.SearchRequest{Domain: "italiasera.it", Query: "notizia"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	want := domain.SearchResult{Error: "Nessun risultato trovato", Outcome: domain.OutcomeNotFound}
	if res != want {
		t.Errorf("Search() = %+v, want %+v", res, want)
	}
	if standard.Calls() != 0 {
		t.Error("external provider used for internal-search-only domain")
	}
}

func TestSearchService_RecoversPanic(t *testing.T) {
	svc := NewSearchService(SearchServiceDeps{Resolver: panicResolver{}, Logger: zap.NewNop()})

	res, err := svc.Search(context.Background(), &domain.SearchRequest{Domain: "example.it", Query: "q"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if res.Outcome != domain.OutcomeFailed || res.Error != "Errore: boom" {
		t.Errorf("Search() = %+v", res)
	}
}

func TestSearchService_RecoversPanicBeforeResolve(t *testing.T) {
	tests := []struct {
		name     string
		resolver Resolver
		wantErr  string
	}{
		{"classify", classifyPanicResolver{}, "Errore: classify boom"},
		{"check configured", configPanicResolver{}, "Errore: config boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewSearchService(SearchServiceDeps{Resolver: tt.resolver, Logger: zap.NewNop()})

			res, err := svc.Search(context.Background(), &domain.SearchRequest{Domain: "example.it", Query: "q"})
			if err != nil {
				t.Fatalf("Search() error = %v", err)
			}
			if res.Outcome != domain.OutcomeFailed || res.Error != tt.wantErr {
				t.Errorf("Search() = %+v, want failed %q", res, tt.wantErr)
			}
		})
	}
}

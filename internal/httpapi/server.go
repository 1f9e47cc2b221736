package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kitbuilder587/boolsearch/internal/metrics"
	"github.com/kitbuilder587/boolsearch/internal/service"
)

const (
	healthMessage = "Boolean Search API"
	maxBodySize   = 1 << 20
)

// Limiter - ограничение частоты запросов по ключу клиента.
type Limiter interface {
	Allow(key string) bool
	Limit() int
	RemainingRequests(key string) int
	ResetTime(key string) time.Time
}

// Health - что показывать в GET /, собирается при старте.
type Health struct {
	HasAPIKey       bool
	HasAlternateKey bool
	Storage         bool
}

type Deps struct {
	Search  service.SearchService
	Runs    service.RunService
	Limiter Limiter // nil - без ограничения
	Logger  *zap.Logger
	Metrics *metrics.Metrics
	// MetricsHandler отдается на /metrics; nil - эндпоинта нет
	MetricsHandler http.Handler
	Health         Health
}

type Server struct {
	search  service.SearchService
	runs    service.RunService
	limiter Limiter
	logger  *zap.Logger
	metrics *metrics.Metrics
	health  Health

	router *chi.Mux
}

func New(deps Deps) *Server {
	s := &Server{
		search:  deps.Search,
		runs:    deps.Runs,
		limiter: deps.Limiter,
		logger:  deps.Logger,
		metrics: deps.Metrics,
		health:  deps.Health,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.recoverer)
	r.Use(s.requestLogger)
	r.Use(cors)

	r.Get("/", s.handleHealth)
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(s.rateLimit)

		r.Post("/search", s.handleSearch)

		r.Route("/runs", func(r chi.Router) {
			r.Post("/", s.handleCreateRun)
			r.Get("/", s.handleListRuns)
			r.Get("/{id}", s.handleGetRun)
			r.Get("/{id}/export.xlsx", s.handleExportRun)
			r.Get("/{id}/export.csv", s.handleExportRunCSV)
		})
	})

	s.router = r
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

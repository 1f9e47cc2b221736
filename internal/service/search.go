package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kitbuilder587/boolsearch/internal/domain"
	"github.com/kitbuilder587/boolsearch/internal/metrics"
)

// Resolver - классификация домена и поиск по его стратегии.
type Resolver interface {
	Classify(host string) domain.RoutingClass
	CheckConfigured(class domain.RoutingClass) error
	Resolve(ctx context.Context, req domain.SearchRequest, class domain.RoutingClass) domain.SearchResult
}

// SearchService - граница запроса: дальше нее ошибки и паники не уходят.
type SearchService interface {
	// Search возвращает ошибку только для невалидного запроса или ненастроенного провайдера.
	// Остальные сбои лежат в SearchResult.Error.
	Search(ctx context.Context, req *domain.SearchRequest) (domain.SearchResult, error)
}

type SearchServiceDeps struct {
	Resolver Resolver
	Logger   *zap.Logger
	Metrics  *metrics.Metrics
}

type searchService struct {
	resolver Resolver
	logger   *zap.Logger
	metrics  *metrics.Metrics
}

func NewSearchService(deps SearchServiceDeps) SearchService {
	return &searchService{
		resolver: deps.Resolver,
		logger:   deps.Logger,
		metrics:  deps.Metrics,
	}
}

func (s *searchService) Search(ctx context.Context, req *domain.SearchRequest) (res domain.SearchResult, err error) {
	startTime := time.Now()

	if s.metrics != nil {
		s.metrics.IncRequestsInFlight()
		defer s.metrics.DecRequestsInFlight()
	}

	// паника в любом шаге, от Validate до Resolve, превращается в failed-результат
	defer func() {
		if r := recover(); r != nil {
			var d string
			if req != nil {
				d = req.Domain
			}
			s.logger.Error("panic in search",
				zap.Any("panic", r),
				zap.String("domain", d),
				zap.Stack("stack"),
			)
			s.record("panic", startTime)
			res = domain.FailedResult(fmt.Sprintf("Errore: %v", r))
			err = nil
		}
	}()

	if err := req.Validate(); err != nil {
		s.record("validation_error", startTime)
		return domain.SearchResult{}, err
	}
	req.Sanitize()

	// класс нужен до проверки ключей: у internal-search ключ не нужен
	class := s.resolver.Classify(req.Domain)
	if err := s.resolver.CheckConfigured(class); err != nil {
		s.logger.Error("provider not configured",
			zap.String("domain", req.Domain),
			zap.String("class", class.String()),
		)
		s.record("config_error", startTime)
		return domain.FailedResult(domain.NotConfiguredMessage), err
	}

	s.logger.Info("resolving",
		zap.String("domain", req.Domain),
		zap.Int("query_length", len(req.Query)),
		zap.String("class", class.String()),
	)

	res = s.resolver.Resolve(ctx, *req, class)

	s.logger.Info("resolved",
		zap.String("domain", req.Domain),
		zap.String("outcome", res.Outcome.String()),
		zap.String("url", res.URL),
		zap.Duration("took", time.Since(startTime)),
	)
	s.record(res.Outcome.String(), startTime)

	return res, nil
}

func (s *searchService) record(status string, start time.Time) {
	if s.metrics != nil {
		s.metrics.RecordRequest("search", status, time.Since(start))
	}
}

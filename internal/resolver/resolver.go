package resolver

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/kitbuilder587/boolsearch/internal/domain"
	"github.com/kitbuilder587/boolsearch/internal/metrics"
	"github.com/kitbuilder587/boolsearch/internal/probe"
	"github.com/kitbuilder587/boolsearch/internal/routing"
	"github.com/kitbuilder587/boolsearch/internal/search"
)

// Prober - прямой обход сайта, реализован в probe.Prober.
type Prober interface {
	Probe(ctx context.Context, host, query string) (*probe.Result, bool)
}

type Deps struct {
	Classifier *routing.Classifier
	Prober     Prober
	// Standard и Alternate могут быть nil, если ключ не настроен
	Standard  search.Provider
	Alternate search.Provider
	Logger    *zap.Logger
	Metrics   *metrics.Metrics
}

// Resolver выбирает одну стратегию по классу домена. Между классами фоллбэка нет.
type Resolver struct {
	classifier *routing.Classifier
	prober     Prober
	standard   search.Provider
	alternate  search.Provider
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

func New(deps Deps) *Resolver {
	return &Resolver{
		classifier: deps.Classifier,
		prober:     deps.Prober,
		standard:   deps.Standard,
		alternate:  deps.Alternate,
		logger:     deps.Logger,
		metrics:    deps.Metrics,
	}
}

func (r *Resolver) Classify(host string) domain.RoutingClass {
	return r.classifier.Classify(host)
}

// CheckConfigured проверяет, есть ли у класса всё нужное для запроса.
func (r *Resolver) CheckConfigured(class domain.RoutingClass) error {
	switch class {
	case domain.ClassInternalSearchOnly:
		if r.prober == nil {
			return domain.ErrProviderNotConfigured
		}
	case domain.ClassAlternateEngine:
		if r.alternate == nil {
			return domain.ErrProviderNotConfigured
		}
	default:
		if r.standard == nil {
			return domain.ErrProviderNotConfigured
		}
	}
	return nil
}

// HasStandard - есть ли ключ основного провайдера.
func (r *Resolver) HasStandard() bool { return r.standard != nil }

// HasAlternate - есть ли провайдер для alternate-доменов.
func (r *Resolver) HasAlternate() bool { return r.alternate != nil }

// Resolve всегда возвращает результат; ошибки провайдеров лежат в поле Error.
// req должен быть уже провалидирован.
func (r *Resolver) Resolve(ctx context.Context, req domain.SearchRequest, class domain.RoutingClass) domain.SearchResult {
	var res domain.SearchResult

	switch class {
	case domain.ClassInternalSearchOnly:
		res = r.resolveDirect(ctx, req)
	case domain.ClassAlternateEngine:
		res = r.resolveExternal(ctx, r.alternate, req)
	default:
		res = r.resolveExternal(ctx, r.standard, req)
	}

	if r.metrics != nil {
		r.metrics.RecordResolution(class.String(), res.Outcome.String())
	}
	return res
}

func (r *Resolver) resolveDirect(ctx context.Context, req domain.SearchRequest) domain.SearchResult {
	if r.prober == nil {
		return domain.FailedResult(domain.NotConfiguredMessage)
	}

	found, ok := r.prober.Probe(ctx, req.Domain, req.Query)
	if !ok || found == nil || found.URL == "" {
		return domain.NotFoundResult()
	}
	return domain.FoundResult(found.URL, found.Title, found.Description)
}

func (r *Resolver) resolveExternal(ctx context.Context, provider search.Provider, req domain.SearchRequest) domain.SearchResult {
	if provider == nil {
		return domain.FailedResult(domain.NotConfiguredMessage)
	}

	query := domain.SiteQuery(req.Domain, req.Query)
	start := time.Now()

	payload, err := provider.Search(ctx, search.Request{Query: query})
	if err != nil {
		r.recordSearch(provider, "error", start)
		r.logger.Warn("search provider failed",
			zap.String("provider", provider.Name()),
			zap.String("engine", provider.Engine()),
			zap.String("domain", req.Domain),
			zap.Error(err),
		)
		return domain.FailedResult(errorMessage(err))
	}

	best, ok := search.Best(payload, req.Query)
	if !ok {
		r.recordSearch(provider, "empty", start)
		return domain.NotFoundResult()
	}

	r.recordSearch(provider, "ok", start)
	r.logger.Debug("search hit",
		zap.String("domain", req.Domain),
		zap.String("url", best.URL),
		zap.Float64("similarity", best.Similarity),
	)
	return best
}

func (r *Resolver) recordSearch(p search.Provider, status string, start time.Time) {
	if r.metrics != nil {
		r.metrics.RecordSearchRequest(p.Name(), p.Engine(), status, time.Since(start))
	}
}

func errorMessage(err error) string {
	var perr *search.ProviderError
	if errors.As(err, &perr) {
		return perr.Error()
	}
	return "Errore: " + err.Error()
}

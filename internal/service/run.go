package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kitbuilder587/boolsearch/internal/domain"
	"github.com/kitbuilder587/boolsearch/internal/metrics"
	"github.com/kitbuilder587/boolsearch/internal/repository"
)

type RunService interface {
	// Start проверяет все пары (статья, домен) и сохраняет запуск, если есть хранилище.
	Start(ctx context.Context, req *domain.RunRequest) (*domain.Run, error)
	Get(ctx context.Context, id string) (*domain.Run, error)
	List(ctx context.Context, filter domain.RunFilter) ([]domain.RunSummary, int, error)
}

type RunConfig struct {
	Concurrency int
	Pause       time.Duration
	MaxPairs    int
}

type RunServiceDeps struct {
	Search  SearchService
	Runs    repository.RunRepository // nil - без истории
	Logger  *zap.Logger
	Metrics *metrics.Metrics
	Config  RunConfig
}

type runService struct {
	search  SearchService
	runs    repository.RunRepository
	logger  *zap.Logger
	metrics *metrics.Metrics
	config  RunConfig
	now     func() time.Time
}

func NewRunService(deps RunServiceDeps) RunService {
	if deps.Config.Concurrency <= 0 {
		deps.Config.Concurrency = 2
	}

	return &runService{
		search:  deps.Search,
		runs:    deps.Runs,
		logger:  deps.Logger,
		metrics: deps.Metrics,
		config:  deps.Config,
		now:     time.Now,
	}
}

func (s *runService) Start(ctx context.Context, req *domain.RunRequest) (*domain.Run, error) {
	req.Sanitize()
	if err := req.Validate(s.config.MaxPairs); err != nil {
		s.recordRun("validation_error")
		return nil, err
	}

	pairs := req.Pairs()
	items := make([]domain.RunItem, len(pairs))

	s.logger.Info("run started",
		zap.String("project", req.Project),
		zap.Int("domains", len(req.Domains)),
		zap.Int("articles", len(req.Articles)),
		zap.Int("pairs", len(pairs)),
	)

	g := new(errgroup.Group)
	g.SetLimit(s.config.Concurrency)

	for i, pair := range pairs {
		// пауза отсчитывается между запусками пар, не внутри воркеров
		if i > 0 && s.config.Pause > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(s.config.Pause):
			}
		}
		g.Go(func() error {
			items[i] = s.check(ctx, i, pair)
			return nil
		})
	}
	g.Wait()

	run := &domain.Run{
		ID:        uuid.NewString(),
		Project:   req.Project,
		CreatedAt: s.now().UTC(),
		Domains:   req.Domains,
		Articles:  req.Articles,
		Items:     items,
	}

	stats := run.Stats()
	s.logger.Info("run finished",
		zap.String("run_id", run.ID),
		zap.Int("found", stats.Found),
		zap.Int("not_found", stats.NotFound),
		zap.Int("failed", stats.Failed),
	)

	if s.runs != nil {
		if err := s.runs.SaveRun(ctx, run); err != nil {
			// результаты отдаем даже если история не записалась
			s.logger.Error("failed to save run", zap.String("run_id", run.ID), zap.Error(err))
			s.recordRun("save_error")
			return run, nil
		}
	}

	s.recordRun("ok")
	return run, nil
}

func (s *runService) check(ctx context.Context, pos int, pair domain.SearchRequest) domain.RunItem {
	item := domain.RunItem{
		Position:    pos,
		Domain:      pair.Domain,
		Article:     pair.Query,
		SearchQuery: domain.SiteQuery(pair.Domain, pair.Query),
	}

	if ctx.Err() != nil {
		item.Result = domain.FailedResult("Errore: " + ctx.Err().Error())
		s.recordItem(item.Result)
		return item
	}

	req := pair
	res, err := s.search.Search(ctx, &req)
	if err != nil && res.Error == "" {
		res = domain.FailedResult("Errore: " + err.Error())
	}
	item.Result = res
	s.recordItem(res)
	return item
}

func (s *runService) Get(ctx context.Context, id string) (*domain.Run, error) {
	if s.runs == nil {
		return nil, domain.ErrStorageDisabled
	}
	return s.runs.GetRun(ctx, id)
}

func (s *runService) List(ctx context.Context, filter domain.RunFilter) ([]domain.RunSummary, int, error) {
	if s.runs == nil {
		return nil, 0, domain.ErrStorageDisabled
	}
	filter.Sanitize()
	return s.runs.ListRuns(ctx, filter)
}

func (s *runService) recordRun(status string) {
	if s.metrics != nil {
		s.metrics.RecordRun(status)
	}
}

func (s *runService) recordItem(res domain.SearchResult) {
	if s.metrics != nil {
		s.metrics.RecordRunItem(res.Outcome.String())
	}
}

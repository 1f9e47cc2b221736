package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/kitbuilder587/boolsearch/internal/domain"
)

type MockRunRepository struct {
	mu   sync.RWMutex
	runs map[string]*domain.Run

	// SaveErr возвращается из SaveRun, если задан
	SaveErr error
}

func NewMockRunRepository() *MockRunRepository {
	return &MockRunRepository{
		runs: make(map[string]*domain.Run),
	}
}

func (m *MockRunRepository) SaveRun(ctx context.Context, run *domain.Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SaveErr != nil {
		return m.SaveErr
	}

	cp := *run
	cp.Items = append([]domain.RunItem(nil), run.Items...)
	m.runs[run.ID] = &cp
	return nil
}

func (m *MockRunRepository) GetRun(ctx context.Context, id string) (*domain.Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	run, ok := m.runs[id]
	if !ok {
		return nil, domain.ErrRunNotFound
	}
	cp := *run
	cp.Items = append([]domain.RunItem(nil), run.Items...)
	return &cp, nil
}

func (m *MockRunRepository) ListRuns(ctx context.Context, filter domain.RunFilter) ([]domain.RunSummary, int, error) {
	filter.Sanitize()

	m.mu.RLock()
	defer m.mu.RUnlock()

	var matched []*domain.Run
	for _, r := range m.runs {
		if filter.Project == "" || r.Project == filter.Project {
			matched = append(matched, r)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	if filter.Offset >= total {
		return []domain.RunSummary{}, total, nil
	}
	end := filter.Offset + filter.Limit
	if end > total {
		end = total
	}

	out := make([]domain.RunSummary, 0, end-filter.Offset)
	for _, r := range matched[filter.Offset:end] {
		out = append(out, domain.RunSummary{
			ID:        r.ID,
			Project:   r.Project,
			CreatedAt: r.CreatedAt,
			Stats:     r.Stats(),
		})
	}
	return out, total, nil
}

func (m *MockRunRepository) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.runs)
}

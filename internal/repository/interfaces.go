package repository

import (
	"context"

	"github.com/kitbuilder587/boolsearch/internal/domain"
)

// RunRepository - история пакетных проверок.
type RunRepository interface {
	// SaveRun пишет запуск и все его строки одной транзакцией.
	SaveRun(ctx context.Context, run *domain.Run) error
	GetRun(ctx context.Context, id string) (*domain.Run, error)
	// ListRuns возвращает страницу и общее число запусков под фильтром.
	ListRuns(ctx context.Context, filter domain.RunFilter) ([]domain.RunSummary, int, error)
}

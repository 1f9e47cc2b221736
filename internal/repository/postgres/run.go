package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/kitbuilder587/boolsearch/internal/domain"
)

type RunRepo struct {
	db *DB
}

func NewRunRepo(db *DB) *RunRepo {
	return &RunRepo{db: db}
}

func (r *RunRepo) SaveRun(ctx context.Context, run *domain.Run) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
        INSERT INTO runs (id, project, domains, articles, created_at)
        VALUES ($1::uuid, $2, $3, $4, $5)
    `, run.ID, run.Project, run.Domains, run.Articles, run.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	batch := &pgx.Batch{}
	for _, it := range run.Items {
		batch.Queue(`
            INSERT INTO run_items (run_id, position, domain, article, search_query,
                url, title, description, similarity, error, outcome)
            VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        `,
			run.ID, it.Position, it.Domain, it.Article, it.SearchQuery,
			it.Result.URL, it.Result.Title, it.Result.Description,
			it.Result.Similarity, it.Result.Error, it.Result.Outcome.String(),
		)
	}

	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert run items: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *RunRepo) GetRun(ctx context.Context, id string) (*domain.Run, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrRunNotFound
	}

	var run domain.Run
	err := r.db.Pool.QueryRow(ctx, `
        SELECT id::text, project, domains, articles, created_at
        FROM runs
        WHERE id = $1::uuid
    `, id).Scan(&run.ID, &run.Project, &run.Domains, &run.Articles, &run.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRunNotFound
		}
		return nil, fmt.Errorf("get run: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, `
        SELECT position, domain, article, search_query,
            url, title, description, similarity, error, outcome
        FROM run_items
        WHERE run_id = $1::uuid
        ORDER BY position
    `, id)
	if err != nil {
		return nil, fmt.Errorf("list run items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it domain.RunItem
		var outcome string
		err := rows.Scan(
			&it.Position,
			&it.Domain,
			&it.Article,
			&it.SearchQuery,
			&it.Result.URL,
			&it.Result.Title,
			&it.Result.Description,
			&it.Result.Similarity,
			&it.Result.Error,
			&outcome,
		)
		if err != nil {
			return nil, fmt.Errorf("scan run item: %w", err)
		}
		it.Result.Outcome = domain.Outcome(outcome)
		run.Items = append(run.Items, it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return &run, nil
}

func (r *RunRepo) ListRuns(ctx context.Context, filter domain.RunFilter) ([]domain.RunSummary, int, error) {
	filter.Sanitize()

	var total int
	err := r.db.Pool.QueryRow(ctx, `
        SELECT COUNT(*) FROM runs WHERE ($1::text = '' OR project = $1::text)
    `, filter.Project).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count runs: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, `
        SELECT r.id::text, r.project, r.created_at,
            COUNT(i.position),
            COUNT(*) FILTER (WHERE i.outcome = 'found'),
            COUNT(*) FILTER (WHERE i.outcome = 'not_found'),
            COUNT(*) FILTER (WHERE i.outcome = 'failed')
        FROM runs r
        LEFT JOIN run_items i ON i.run_id = r.id
        WHERE ($1::text = '' OR r.project = $1::text)
        GROUP BY r.id
        ORDER BY r.created_at DESC, r.id
        LIMIT $2 OFFSET $3
    `, filter.Project, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	summaries := make([]domain.RunSummary, 0, filter.Limit)
	for rows.Next() {
		var s domain.RunSummary
		err := rows.Scan(
			&s.ID,
			&s.Project,
			&s.CreatedAt,
			&s.Stats.Total,
			&s.Stats.Found,
			&s.Stats.NotFound,
			&s.Stats.Failed,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan run: %w", err)
		}
		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows error: %w", err)
	}

	return summaries, total, nil
}

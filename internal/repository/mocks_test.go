package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/kitbuilder587/boolsearch/internal/domain"
)

func sampleRun(id, project string, created time.Time) *domain.Run {
	return &domain.Run{
		ID:        id,
		Project:   project,
		CreatedAt: created,
		Domains:   []string{"example.it"},
		Articles:  []string{"chi siamo"},
		Items: []domain.RunItem{
			{Position: 0, Domain: "example.it", Article: "chi siamo", Result: domain.FoundResult("https://example.it/chi-siamo/", "Chi siamo", "")},
			{Position: 1, Domain: "other.it", Article: "chi siamo", Result: domain.NotFoundResult()},
		},
	}
}

func TestMockRunRepository_SaveGet(t *testing.T) {
	repo := NewMockRunRepository()
	ctx := context.Background()

	run := sampleRun("r1", "acme", time.Now())
	if err := repo.SaveRun(ctx, run); err != nil {
		t.Fatalf("SaveRun() error = %v", err)
	}

	// изменения после сохранения не должны протекать в хранилище
	run.Items[0].Article = "changed"

	got, err := repo.GetRun(ctx, "r1")
	if err != nil {
		t.Fatalf("GetRun() error = %v", err)
	}
	if got.Items[0].Article != "chi siamo" {
		t.Errorf("stored run was mutated: %q", got.Items[0].Article)
	}

	if _, err := repo.GetRun(ctx, "missing"); !errors.Is(err, domain.ErrRunNotFound) {
		t.Errorf("GetRun(missing) error = %v, want ErrRunNotFound", err)
	}
}

func TestMockRunRepository_List(t *testing.T) {
	repo := NewMockRunRepository()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		project := "acme"
		if i%2 == 1 {
			project = "beta"
		}
		repo.SaveRun(ctx, sampleRun(fmt.Sprintf("r%d", i), project, base.Add(time.Duration(i)*time.Hour)))
	}

	tests := []struct {
		name      string
		filter    domain.RunFilter
		wantIDs   []string
		wantTotal int
	}{
		{"all newest first", domain.RunFilter{}, []string{"r4", "r3", "r2", "r1", "r0"}, 5},
		{"by project", domain.RunFilter{Project: "acme"}, []string{"r4", "r2", "r0"}, 3},
		{"paged", domain.RunFilter{Limit: 2, Offset: 1}, []string{"r3", "r2"}, 5},
		{"offset past end", domain.RunFilter{Offset: 10}, nil, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, total, err := repo.ListRuns(ctx, tt.filter)
			if err != nil {
				t.Fatalf("ListRuns() error = %v", err)
			}
			if total != tt.wantTotal {
				t.Errorf("total = %d, want %d", total, tt.wantTotal)
			}
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if got[i].ID != id {
					t.Errorf("[%d] = %s, want %s", i, got[i].ID, id)
				}
			}
			if len(got) > 0 && got[0].Stats != (domain.RunStats{Total: 2, Found: 1, NotFound: 1}) {
				t.Errorf("stats = %+v", got[0].Stats)
			}
		})
	}
}

func TestMockRunRepository_SaveErr(t *testing.T) {
	repo := NewMockRunRepository()
	repo.SaveErr = errors.New("db down")

	if err := repo.SaveRun(context.Background(), sampleRun("r1", "", time.Now())); err == nil {
		t.Error("expected error")
	}
	if repo.Len() != 0 {
		t.Error("run saved despite error")
	}
}

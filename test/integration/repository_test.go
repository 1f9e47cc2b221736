package integration

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/kitbuilder587/boolsearch/internal/domain"
	pgRepo "github.com/kitbuilder587/boolsearch/internal/repository/postgres"
)

var testDB *pgRepo.DB

func TestMain(m *testing.M) {
	if os.Getenv("SHORT_TESTS") == "1" {
		os.Exit(0)
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		panic(err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		panic(err)
	}

	testDB, err = pgRepo.New(ctx, connStr)
	if err != nil {
		panic(err)
	}

	if err := testDB.Migrate(ctx); err != nil {
		panic(err)
	}
	// вторая миграция не должна падать
	if err := testDB.Migrate(ctx); err != nil {
		panic(err)
	}

	code := m.Run()

	testDB.Close()
	pgContainer.Terminate(ctx)

	os.Exit(code)
}

func newRun(project string, created time.Time) *domain.Run {
	return &domain.Run{
		ID:        uuid.NewString(),
		Project:   project,
		CreatedAt: created,
		Domains:   []string{"example.it", "italiasera.it"},
		Articles:  []string{"chi siamo"},
		Items: []domain.RunItem{
			{
				Position:    0,
				Domain:      "example.it",
				Article:     "chi siamo",
				SearchQuery: `site:example.it "chi siamo"`,
				Result: domain.SearchResult{
					URL:        "https://example.it/chi-siamo/",
					Title:      "Chi siamo",
					Similarity: 1,
					Outcome:    domain.OutcomeFound,
				},
			},
			{
				Position:    1,
				Domain:      "italiasera.it",
				Article:     "chi siamo",
				SearchQuery: `site:italiasera.it "chi siamo"`,
				Result:      domain.NotFoundResult(),
			},
		},
	}
}

func TestRunRepository_SaveGet_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	repo := pgRepo.NewRunRepo(testDB)

	run := newRun("save-get", time.Now().UTC().Truncate(time.Millisecond))
	if err := repo.SaveRun(ctx, run); err != nil {
		t.Fatalf("SaveRun() error = %v", err)
	}

	got, err := repo.GetRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetRun() error = %v", err)
	}

	if got.ID != run.ID || got.Project != run.Project {
		t.Errorf("GetRun() = %s/%s, want %s/%s", got.ID, got.Project, run.ID, run.Project)
	}
	if !got.CreatedAt.Equal(run.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, run.CreatedAt)
	}
	if len(got.Domains) != 2 || got.Domains[1] != "italiasera.it" {
		t.Errorf("Domains = %v", got.Domains)
	}
	if len(got.Items) != 2 {
		t.Fatalf("Items len = %d, want 2", len(got.Items))
	}
	if got.Items[0].Result != run.Items[0].Result {
		t.Errorf("Items[0].Result = %+v, want %+v", got.Items[0].Result, run.Items[0].Result)
	}
	if got.Items[1].Result.Error != domain.NotFoundMessage {
		t.Errorf("Items[1].Result.Error = %q", got.Items[1].Result.Error)
	}
}

func TestRunRepository_NotFound_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	repo := pgRepo.NewRunRepo(testDB)

	for _, id := range []string{uuid.NewString(), "not-a-uuid"} {
		if _, err := repo.GetRun(ctx, id); !errors.Is(err, domain.ErrRunNotFound) {
			t.Errorf("GetRun(%q) error = %v, want ErrRunNotFound", id, err)
		}
	}
}

func TestRunRepository_SaveRollback_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	repo := pgRepo.NewRunRepo(testDB)

	run := newRun("rollback", time.Now().UTC())
	// дубль позиции ломает вставку строк, запуск тоже не должен сохраниться
	run.Items[1].Position = 0

	if err := repo.SaveRun(ctx, run); err == nil {
		t.Fatal("SaveRun() expected error on duplicate position")
	}
	if _, err := repo.GetRun(ctx, run.ID); !errors.Is(err, domain.ErrRunNotFound) {
		t.Errorf("GetRun() after rollback error = %v, want ErrRunNotFound", err)
	}
}

func TestRunRepository_List_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	repo := pgRepo.NewRunRepo(testDB)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	var ids []string
	for i := 0; i < 3; i++ {
		run := newRun("list-project", base.Add(time.Duration(i)*time.Minute))
		if err := repo.SaveRun(ctx, run); err != nil {
			t.Fatalf("SaveRun() error = %v", err)
		}
		ids = append(ids, run.ID)
	}

	page, total, err := repo.ListRuns(ctx, domain.RunFilter{Project: "list-project", Limit: 2})
	if err != nil {
		t.Fatalf("ListRuns() error = %v", err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
	if len(page) != 2 {
		t.Fatalf("page len = %d, want 2", len(page))
	}
	if page[0].ID != ids[2] || page[1].ID != ids[1] {
		t.Errorf("page order = %s, %s", page[0].ID, page[1].ID)
	}
	if page[0].Stats != (domain.RunStats{Total: 2, Found: 1, NotFound: 1}) {
		t.Errorf("stats = %+v", page[0].Stats)
	}

	next, _, err := repo.ListRuns(ctx, domain.RunFilter{Project: "list-project", Limit: 2, Offset: 2})
	if err != nil {
		t.Fatalf("ListRuns() error = %v", err)
	}
	if len(next) != 1 || next[0].ID != ids[0] {
		t.Errorf("second page = %+v", next)
	}

	all, allTotal, err := repo.ListRuns(ctx, domain.RunFilter{})
	if err != nil {
		t.Fatalf("ListRuns() error = %v", err)
	}
	if allTotal < 3 || len(all) < 3 {
		t.Errorf("unfiltered list total = %d len = %d", allTotal, len(all))
	}
}

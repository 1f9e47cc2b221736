package domain

import (
	"strings"
	"time"
)

const (
	DefaultRunListLimit = 20
	MaxRunListLimit     = 100
)

// Run - один запуск проверки: все пары (статья, домен) и их результаты.
type Run struct {
	ID        string
	Project   string
	CreatedAt time.Time
	Domains   []string
	Articles  []string
	Items     []RunItem
}

type RunItem struct {
	Position    int
	Domain      string
	Article     string
	SearchQuery string
	Result      SearchResult
}

type RunStats struct {
	Total    int
	Found    int
	NotFound int
	Failed   int
}

func (r *Run) Stats() RunStats {
	st := RunStats{Total: len(r.Items)}
	for _, it := range r.Items {
		switch it.Result.Outcome {
		case OutcomeFound:
			st.Found++
		case OutcomeNotFound:
			st.NotFound++
		default:
			st.Failed++
		}
	}
	return st
}

type RunSummary struct {
	ID        string
	Project   string
	CreatedAt time.Time
	Stats     RunStats
}

type RunFilter struct {
	Project string
	Limit   int
	Offset  int
}

func (f *RunFilter) Sanitize() {
	f.Project = strings.TrimSpace(f.Project)
	if f.Limit <= 0 {
		f.Limit = DefaultRunListLimit
	}
	if f.Limit > MaxRunListLimit {
		f.Limit = MaxRunListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}

type RunRequest struct {
	Project  string
	Domains  []string
	Articles []string
}

// Sanitize нормализует домены, выкидывает невалидные и дубли, чистит пустые статьи.
func (r *RunRequest) Sanitize() {
	r.Project = strings.TrimSpace(r.Project)

	seen := make(map[string]struct{}, len(r.Domains))
	domains := make([]string, 0, len(r.Domains))
	for _, raw := range r.Domains {
		d := NormalizeDomain(raw)
		if !IsValidDomain(d) {
			continue
		}
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		domains = append(domains, d)
	}
	r.Domains = domains

	articles := make([]string, 0, len(r.Articles))
	for _, a := range r.Articles {
		a = strings.Join(strings.Fields(a), " ")
		if a != "" {
			articles = append(articles, a)
		}
	}
	r.Articles = articles
}

func (r *RunRequest) Validate(maxPairs int) error {
	if len(r.Domains) == 0 || len(r.Articles) == 0 {
		return ErrEmptyRun
	}
	if maxPairs > 0 && len(r.Domains)*len(r.Articles) > maxPairs {
		return ErrTooManyPairs
	}
	return nil
}

// Pairs - порядок как в интерфейсе: сначала статья, внутри нее все домены.
func (r *RunRequest) Pairs() []SearchRequest {
	pairs := make([]SearchRequest, 0, len(r.Domains)*len(r.Articles))
	for _, a := range r.Articles {
		for _, d := range r.Domains {
			pairs = append(pairs, SearchRequest{Domain: d, Query: a})
		}
	}
	return pairs
}

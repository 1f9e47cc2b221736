package search

import (
	"sort"
	"strings"

	"github.com/kitbuilder587/boolsearch/internal/domain"
)

// Merge склеивает выдачу в фиксированном порядке: organic, video, inline videos, knowledge graph.
// Фильтрации тут нет, только приведение к одной форме.
func Merge(p *Payload) []domain.Candidate {
	if p == nil {
		return nil
	}

	out := make([]domain.Candidate, 0, len(p.OrganicResults)+len(p.VideoResults)+len(p.InlineVideos)+1)
	for _, r := range p.OrganicResults {
		out = append(out, domain.Candidate{Link: r.Link, Title: r.Title, Snippet: r.Snippet})
	}
	for _, r := range p.VideoResults {
		out = append(out, domain.Candidate{Link: r.Link, Title: r.Title, Snippet: r.Snippet})
	}
	for _, v := range p.InlineVideos {
		out = append(out, domain.Candidate{Link: v.Link, Title: v.Title, Snippet: videoSnippet(v)})
	}
	if kg := p.KnowledgeGraph; kg != nil && kg.Source != nil {
		out = append(out, domain.Candidate{Link: kg.Source.Link, Title: kg.Title, Snippet: kg.Description})
	}
	return out
}

// Rank оставляет кандидатов со ссылкой и заголовком и сортирует по близости к запросу.
// Сортировка стабильная: при равном скоре выигрывает тот, кто раньше в Merge.
func Rank(candidates []domain.Candidate, query string) []domain.SearchResult {
	results := make([]domain.SearchResult, 0, len(candidates))
	for _, c := range candidates {
		if c.Link == "" || c.Title == "" {
			continue
		}
		r := domain.FoundResult(c.Link, c.Title, c.Snippet)
		r.Similarity = domain.Similarity(c.Title, query)
		results = append(results, r)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})
	return results
}

// Best - первый после ранжирования, false если выдача пустая.
func Best(p *Payload, query string) (domain.SearchResult, bool) {
	ranked := Rank(Merge(p), query)
	if len(ranked) == 0 {
		return domain.SearchResult{}, false
	}
	return ranked[0], true
}

func videoSnippet(v InlineVideo) string {
	length := v.Length
	if length == "" {
		length = v.Duration
	}

	parts := make([]string, 0, 2)
	for _, p := range []string{v.Source, length} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " · ")
}

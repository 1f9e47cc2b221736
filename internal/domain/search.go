package domain

import (
	"fmt"
	"strings"
)

const (
	MaxQueryLength = 1000

	// NotFoundMessage отдается клиенту, когда ни одна стратегия ничего не нашла.
	NotFoundMessage = "Nessun risultato trovato"

	// NotConfiguredMessage - нет ключа провайдера для класса домена.
	NotConfiguredMessage = "ValueSERP key non configurata"
)

type Outcome string

const (
	OutcomeFound    Outcome = "found"
	OutcomeNotFound Outcome = "not_found"
	OutcomeFailed   Outcome = "failed"
)

func (o Outcome) String() string { return string(o) }

type SearchRequest struct {
	Domain string
	Query  string
}

func (r *SearchRequest) Validate() error {
	if strings.TrimSpace(r.Domain) == "" {
		return ErrEmptyDomain
	}
	if strings.TrimSpace(r.Query) == "" {
		return ErrEmptyQuery
	}
	if len(r.Query) > MaxQueryLength {
		return ErrQueryTooLong
	}
	if !IsValidDomain(NormalizeDomain(r.Domain)) {
		return ErrInvalidDomain
	}
	return nil
}

func (r *SearchRequest) Sanitize() {
	r.Domain = NormalizeDomain(r.Domain)
	r.Query = strings.Join(strings.Fields(r.Query), " ")
}

// SiteQuery - булев запрос: ограничение по сайту + точная фраза.
func SiteQuery(domain, query string) string {
	return fmt.Sprintf("site:%s \"%s\"", domain, query)
}

type SearchResult struct {
	URL         string
	Title       string
	Description string
	Similarity  float64
	Error       string
	Outcome     Outcome
}

func FoundResult(url, title, description string) SearchResult {
	return SearchResult{
		URL:         url,
		Title:       title,
		Description: description,
		Outcome:     OutcomeFound,
	}
}

func NotFoundResult() SearchResult {
	return SearchResult{
		Error:   NotFoundMessage,
		Outcome: OutcomeNotFound,
	}
}

func FailedResult(message string) SearchResult {
	return SearchResult{
		Error:   message,
		Outcome: OutcomeFailed,
	}
}

func (r SearchResult) Found() bool {
	return r.Outcome == OutcomeFound && r.URL != ""
}

// Candidate - сырой элемент выдачи до фильтрации и ранжирования.
type Candidate struct {
	Link    string
	Title   string
	Snippet string
}

package search

import (
	"context"
	"fmt"

	"github.com/kitbuilder587/boolsearch/internal/domain"
)

// Provider - внешний поисковый API. Один вызов = один HTTP-запрос, ретраев нет.
type Provider interface {
	Name() string
	Engine() string
	Search(ctx context.Context, req Request) (*Payload, error)
}

type Request struct {
	// Query уже содержит site: и фразу в кавычках
	Query string
	Num   int
}

// Payload - общая форма ответа обоих провайдеров.
type Payload struct {
	OrganicResults []Result        `json:"organic_results"`
	VideoResults   []Result        `json:"video_results"`
	InlineVideos   []InlineVideo   `json:"inline_videos"`
	KnowledgeGraph *KnowledgeGraph `json:"knowledge_graph,omitempty"`
}

type Result struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

type InlineVideo struct {
	Title    string `json:"title"`
	Link     string `json:"link"`
	Source   string `json:"source"`
	Length   string `json:"length"`
	Duration string `json:"duration"`
}

type KnowledgeGraph struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Source      *KGSource `json:"source,omitempty"`
}

type KGSource struct {
	Name string `json:"name"`
	Link string `json:"link"`
}

// ProviderError - ошибка провайдера; Error() уходит пользователю как есть.
type ProviderError struct {
	Provider   string
	StatusCode int
	Message    string
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("Errore %s: HTTP %d", e.Provider, e.StatusCode)
	}
	return fmt.Sprintf("Errore %s: %s", e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error { return e.Err }

func TransportError(provider string, status int, msg string) *ProviderError {
	return &ProviderError{Provider: provider, StatusCode: status, Message: msg, Err: domain.ErrUpstreamTransport}
}

func LogicalError(provider, msg string) *ProviderError {
	if msg == "" {
		msg = "Unknown error"
	}
	return &ProviderError{Provider: provider, Message: msg, Err: domain.ErrUpstreamLogical}
}

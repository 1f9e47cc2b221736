package domain

import "errors"

// ошибки входных данных
var (
	ErrEmptyDomain   = errors.New("domain is required")
	ErrEmptyQuery    = errors.New("query is required")
	ErrInvalidDomain = errors.New("invalid domain")
	ErrQueryTooLong  = errors.New("query too long")
	ErrEmptyRun      = errors.New("no valid domain/article pairs")
	ErrTooManyPairs  = errors.New("too many domain/article pairs")
)

var (
	ErrProviderNotConfigured = errors.New("search provider not configured")
)

// ошибки внешних провайдеров и сайтов
var (
	ErrUpstreamTransport = errors.New("upstream transport error")
	ErrUpstreamLogical   = errors.New("upstream provider error")
)

var (
	ErrRunNotFound     = errors.New("run not found")
	ErrStorageDisabled = errors.New("run storage disabled")
)

// IsInputError - ошибка на стороне клиента, до сети не доходили.
func IsInputError(err error) bool {
	switch {
	case errors.Is(err, ErrEmptyDomain),
		errors.Is(err, ErrEmptyQuery),
		errors.Is(err, ErrInvalidDomain),
		errors.Is(err, ErrQueryTooLong),
		errors.Is(err, ErrEmptyRun),
		errors.Is(err, ErrTooManyPairs):
		return true
	}
	return false
}

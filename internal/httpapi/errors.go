package httpapi

import (
	"errors"
	"net/http"

	"github.com/kitbuilder587/boolsearch/internal/domain"
)

// mapError переводит ошибку в статус и текст для клиента.
func mapError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrEmptyDomain), errors.Is(err, domain.ErrEmptyQuery):
		return http.StatusBadRequest, "Dominio e query sono richiesti"
	case errors.Is(err, domain.ErrInvalidDomain):
		return http.StatusBadRequest, "Dominio non valido"
	case errors.Is(err, domain.ErrQueryTooLong):
		return http.StatusBadRequest, "Query troppo lunga"
	case errors.Is(err, domain.ErrEmptyRun):
		return http.StatusBadRequest, "Servono almeno un dominio valido e un articolo"
	case errors.Is(err, domain.ErrTooManyPairs):
		return http.StatusBadRequest, "Troppe combinazioni dominio/articolo"
	case errors.Is(err, domain.ErrProviderNotConfigured):
		return http.StatusInternalServerError, domain.NotConfiguredMessage
	case errors.Is(err, domain.ErrRunNotFound):
		return http.StatusNotFound, "Ricerca non trovata"
	case errors.Is(err, domain.ErrStorageDisabled):
		return http.StatusServiceUnavailable, "Archivio ricerche non configurato"
	default:
		return http.StatusInternalServerError, "Errore interno"
	}
}

// searchStatus: not found - нормальный ответ, сбой провайдера - 500.
func searchStatus(r domain.SearchResult) int {
	if r.Outcome == domain.OutcomeFailed {
		return http.StatusInternalServerError
	}
	return http.StatusOK
}

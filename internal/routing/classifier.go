package routing

import (
	"slices"

	"github.com/kitbuilder587/boolsearch/internal/domain"
)

// Classifier - чистая функция от нормализованного домена, без состояния между вызовами.
type Classifier struct {
	internalSearch []string
	alternate      []string
}

func NewClassifier(r *Rules) *Classifier {
	return &Classifier{
		internalSearch: slices.Clone(r.InternalSearchOnly),
		alternate:      slices.Clone(r.AlternateEngine),
	}
}

// Classify: первое совпадение выигрывает, internal-search важнее alternate.
func (c *Classifier) Classify(host string) domain.RoutingClass {
	host = domain.NormalizeDomain(host)

	if matchAny(host, c.internalSearch) {
		return domain.ClassInternalSearchOnly
	}
	if matchAny(host, c.alternate) {
		return domain.ClassAlternateEngine
	}
	return domain.ClassStandardWebSearch
}

func matchAny(host string, list []string) bool {
	for _, d := range list {
		if domain.MatchesDomain(host, d) {
			return true
		}
	}
	return false
}

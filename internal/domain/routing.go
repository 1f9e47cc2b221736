package domain

// RoutingClass - стратегия поиска для домена.
type RoutingClass string

const (
	ClassStandardWebSearch  RoutingClass = "standard_web_search"
	ClassAlternateEngine    RoutingClass = "alternate_engine_domain"
	ClassInternalSearchOnly RoutingClass = "internal_search_only"
)

func (c RoutingClass) IsValid() bool {
	switch c {
	case ClassStandardWebSearch, ClassAlternateEngine, ClassInternalSearchOnly:
		return true
	}
	return false
}

func (c RoutingClass) String() string { return string(c) }

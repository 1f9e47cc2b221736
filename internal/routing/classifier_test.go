package routing

import (
	"testing"

	"github.com/kitbuilder587/boolsearch/internal/domain"
)

func TestClassifier_Classify(t *testing.T) {
	c := NewClassifier(&Rules{
		InternalSearchOnly: []string{"slow.it", "msn.com"},
		AlternateEngine:    []string{"msn.com", "bing-only.it"},
	})

	tests := []struct {
		host string
		want domain.RoutingClass
	}{
		{"example.it", domain.ClassStandardWebSearch},
		{"slow.it", domain.ClassInternalSearchOnly},
		{"news.slow.it", domain.ClassInternalSearchOnly},
		{"HTTPS://WWW.SLOW.IT/path", domain.ClassInternalSearchOnly},
		{"bing-only.it", domain.ClassAlternateEngine},
		{"it.bing-only.it", domain.ClassAlternateEngine},
		{"notslow.it", domain.ClassStandardWebSearch},
		// internal-search список проверяется первым
		{"msn.com", domain.ClassInternalSearchOnly},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			if got := c.Classify(tt.host); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.host, got, tt.want)
			}
		})
	}
}

func TestClassifier_Deterministic(t *testing.T) {
	rules, err := DefaultRules()
	if err != nil {
		t.Fatalf("DefaultRules() error = %v", err)
	}
	c := NewClassifier(rules)

	for _, host := range []string{"msn.com", "example.it", rules.InternalSearchOnly[0]} {
		first := c.Classify(host)
		for i := 0; i < 5; i++ {
			if got := c.Classify(host); got != first {
				t.Fatalf("Classify(%q) changed between calls: %v -> %v", host, first, got)
			}
		}
	}
}

func TestClassifier_IsolatedFromRules(t *testing.T) {
	rules := &Rules{AlternateEngine: []string{"msn.com"}}
	c := NewClassifier(rules)

	rules.AlternateEngine[0] = "changed.it"

	if got := c.Classify("msn.com"); got != domain.ClassAlternateEngine {
		t.Errorf("classifier must not see later rule mutations, got %v", got)
	}
}

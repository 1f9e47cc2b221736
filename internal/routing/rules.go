package routing

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kitbuilder587/boolsearch/internal/domain"
	"github.com/kitbuilder587/boolsearch/internal/extract"
)

//go:embed rules.yaml
var defaultRulesYAML []byte

var (
	ErrInvalidTemplate = errors.New("direct url template must contain {domain} and {slug}")
	ErrInvalidOverride = errors.New("invalid site override")
)

// SiteOverride - отдельные настройки для сайта с нестандартной инфраструктурой.
type SiteOverride struct {
	Domain      string        `yaml:"domain"`
	Timeout     time.Duration `yaml:"timeout"`
	InsecureTLS bool          `yaml:"insecure_tls"`
	WPAPI       bool          `yaml:"wp_api"`
	Template    string        `yaml:"template"`
}

func (o SiteOverride) TemplateFamily() extract.TemplateFamily {
	if o.Template == "" {
		return extract.FamilyGeneric
	}
	return extract.TemplateFamily(o.Template)
}

// Rules читаются один раз при старте и дальше не меняются.
type Rules struct {
	InternalSearchOnly []string       `yaml:"internal_search_only"`
	AlternateEngine    []string       `yaml:"alternate_engine"`
	DirectURLTemplates []string       `yaml:"direct_url_templates"`
	SiteOverrides      []SiteOverride `yaml:"site_overrides"`
}

func DefaultRules() (*Rules, error) {
	return ParseRules(defaultRulesYAML)
}

// LoadRules читает YAML с диска; пустой путь - встроенные правила.
func LoadRules(path string) (*Rules, error) {
	if path == "" {
		return DefaultRules()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read routing rules: %w", err)
	}
	return ParseRules(data)
}

func ParseRules(data []byte) (*Rules, error) {
	var r Rules
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse routing rules: %w", err)
	}

	r.InternalSearchOnly = normalizeList(r.InternalSearchOnly)
	r.AlternateEngine = normalizeList(r.AlternateEngine)

	for _, tpl := range r.DirectURLTemplates {
		if !strings.Contains(tpl, "{domain}") || !strings.Contains(tpl, "{slug}") {
			return nil, fmt.Errorf("%w: %q", ErrInvalidTemplate, tpl)
		}
	}

	for i := range r.SiteOverrides {
		o := &r.SiteOverrides[i]
		o.Domain = domain.NormalizeDomain(o.Domain)
		if !domain.IsValidDomain(o.Domain) {
			return nil, fmt.Errorf("%w: domain %q", ErrInvalidOverride, o.Domain)
		}
		if o.Timeout < 0 {
			return nil, fmt.Errorf("%w: negative timeout for %s", ErrInvalidOverride, o.Domain)
		}
		if _, err := extract.ParseTemplateFamily(o.Template); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidOverride, err)
		}
	}

	return &r, nil
}

// Override ищет настройки сайта по точному совпадению или родительскому домену.
func (r *Rules) Override(host string) (SiteOverride, bool) {
	host = domain.NormalizeDomain(host)
	for _, o := range r.SiteOverrides {
		if domain.MatchesDomain(host, o.Domain) {
			return o, true
		}
	}
	return SiteOverride{}, false
}

func normalizeList(list []string) []string {
	out := make([]string, 0, len(list))
	for _, d := range list {
		if d = domain.NormalizeDomain(d); d != "" {
			out = append(out, d)
		}
	}
	return out
}

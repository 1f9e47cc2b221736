package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kitbuilder587/boolsearch/internal/domain"
	"github.com/kitbuilder587/boolsearch/internal/extract"
	"github.com/kitbuilder587/boolsearch/internal/metrics"
	"github.com/kitbuilder587/boolsearch/internal/routing"
)

const (
	StepWPAPI          = "wp_api"
	StepDirectURL      = "direct_url"
	StepInternalSearch = "internal_search"

	acceptHTML = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
	acceptJSON = "application/json"
)

var errMiss = errors.New("no match")

type Config struct {
	Timeout     time.Duration
	SlowTimeout time.Duration
	MaxBodySize int64
	UserAgent   string
	// Transport подменяется в тестах; nil - http.DefaultTransport
	Transport http.RoundTripper
}

// Result - найденная напрямую страница.
type Result struct {
	URL         string
	Title       string
	Description string
}

type Prober struct {
	cfg            Config
	rules          *routing.Rules
	client         *http.Client
	insecureClient *http.Client
	logger         *zap.Logger
	metrics        *metrics.Metrics
}

func New(cfg Config, rules *routing.Rules, logger *zap.Logger, m *metrics.Metrics) *Prober {
	if cfg.Timeout == 0 {
		cfg.Timeout = 8 * time.Second
	}
	if cfg.SlowTimeout == 0 {
		cfg.SlowTimeout = 22 * time.Second
	}
	if cfg.MaxBodySize == 0 {
		cfg.MaxBodySize = defaultMaxBody
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if rules == nil {
		rules = &routing.Rules{}
	}

	client, insecure := newClients(cfg.Transport)

	return &Prober{
		cfg:            cfg,
		rules:          rules,
		client:         client,
		insecureClient: insecure,
		logger:         logger,
		metrics:        m,
	}
}

type step struct {
	name string
	url  string
	run  func(ctx context.Context) (*Result, error)
}

type target struct {
	domain   string
	query    string
	slug     string
	override routing.SiteOverride
	timeout  time.Duration
	client   *http.Client
}

// Probe ищет статью на самом сайте, без внешнего поиска.
// Ошибка отдельного шага не прерывает цепочку; false - ничего не нашлось.
func (p *Prober) Probe(ctx context.Context, host, query string) (*Result, bool) {
	t := p.target(host, query)
	if t.slug == "" {
		return nil, false
	}

	for _, s := range p.steps(t) {
		if ctx.Err() != nil {
			return nil, false
		}

		attemptCtx, cancel := context.WithTimeout(ctx, t.timeout)
		res, err := s.run(attemptCtx)
		cancel()

		if err == nil && res != nil {
			p.record(s.name, "hit")
			p.logger.Debug("probe hit",
				zap.String("domain", t.domain),
				zap.String("step", s.name),
				zap.String("url", res.URL),
			)
			return res, true
		}

		status := "miss"
		if err != nil && !errors.Is(err, errMiss) && !errors.Is(err, ErrNoResults) {
			status = "error"
		}
		p.record(s.name, status)
		p.logger.Debug("probe step failed",
			zap.String("domain", t.domain),
			zap.String("step", s.name),
			zap.String("url", s.url),
			zap.Error(err),
		)
	}

	return nil, false
}

func (p *Prober) target(host, query string) target {
	t := target{
		domain:  domain.NormalizeDomain(host),
		query:   strings.TrimSpace(query),
		slug:    domain.Slugify(query),
		timeout: p.cfg.Timeout,
		client:  p.client,
	}

	if o, ok := p.rules.Override(t.domain); ok {
		t.override = o
		t.timeout = p.cfg.SlowTimeout
		if o.Timeout > 0 {
			t.timeout = o.Timeout
		}
		if o.InsecureTLS {
			t.client = p.insecureClient
		}
	}
	return t
}

func (p *Prober) steps(t target) []step {
	var steps []step

	if t.override.WPAPI {
		u := wpAPIURL(t.domain, t.query)
		steps = append(steps, step{name: StepWPAPI, url: u, run: func(ctx context.Context) (*Result, error) {
			return p.wpAPI(ctx, t, u)
		}})
	}

	for _, tpl := range p.rules.DirectURLTemplates {
		u := expandTemplate(tpl, t.domain, t.slug)
		steps = append(steps, step{name: StepDirectURL, url: u, run: func(ctx context.Context) (*Result, error) {
			return p.directURL(ctx, t, u)
		}})
	}

	u := internalSearchURL(t.domain, t.query)
	steps = append(steps, step{name: StepInternalSearch, url: u, run: func(ctx context.Context) (*Result, error) {
		return p.internalSearch(ctx, t, u)
	}})

	return steps
}

type wpPost struct {
	Link  string `json:"link"`
	Title struct {
		Rendered string `json:"rendered"`
	} `json:"title"`
	Excerpt struct {
		Rendered string `json:"rendered"`
	} `json:"excerpt"`
}

func (p *Prober) wpAPI(ctx context.Context, t target, rawURL string) (*Result, error) {
	pg, err := p.fetch(ctx, t.client, rawURL, acceptJSON)
	if err != nil {
		return nil, err
	}

	var posts []wpPost
	if err := json.Unmarshal([]byte(pg.Body), &posts); err != nil {
		return nil, fmt.Errorf("decode wp posts: %w", err)
	}
	if len(posts) == 0 || posts[0].Link == "" {
		return nil, errMiss
	}

	post := posts[0]
	title := extract.Text(post.Title.Rendered)
	if title == "" {
		title = t.query
	}
	return &Result{
		URL:         post.Link,
		Title:       title,
		Description: extract.Text(post.Excerpt.Rendered),
	}, nil
}

func (p *Prober) directURL(ctx context.Context, t target, rawURL string) (*Result, error) {
	pg, err := p.fetch(ctx, t.client, rawURL, acceptHTML)
	if err != nil {
		return nil, err
	}
	if isHomepage(pg.FinalURL) {
		return nil, fmt.Errorf("%w: redirected to homepage", errMiss)
	}

	doc := extract.NewPage(pg.Body)
	if hasNoResults(doc.Text()) {
		return nil, ErrNoResults
	}

	return &Result{
		URL:         pg.FinalURL,
		Title:       doc.Title(),
		Description: doc.Description(),
	}, nil
}

func (p *Prober) internalSearch(ctx context.Context, t target, rawURL string) (*Result, error) {
	pg, err := p.fetch(ctx, t.client, rawURL, acceptHTML)
	if err != nil {
		return nil, err
	}

	doc := extract.NewPage(pg.Body)
	if hasNoResults(doc.Text()) {
		return nil, ErrNoResults
	}

	link := doc.FirstMatchingLink(pg.FinalURL, t.override.TemplateFamily())
	if link.Empty() || !isContentLink(link.URL, t.domain) {
		return nil, errMiss
	}

	title := link.Text
	if title == "" {
		title = doc.Title()
	}
	return &Result{URL: link.URL, Title: title}, nil
}

func (p *Prober) record(step, status string) {
	if p.metrics != nil {
		p.metrics.RecordProbeAttempt(step, status)
	}
}

func expandTemplate(tpl, host, slug string) string {
	return strings.NewReplacer("{domain}", host, "{slug}", slug).Replace(tpl)
}

func wpAPIURL(host, query string) string {
	return fmt.Sprintf("https://%s/wp-json/wp/v2/posts?search=%s&per_page=1", host, url.QueryEscape(query))
}

func internalSearchURL(host, query string) string {
	return fmt.Sprintf("https://%s/?s=%s", host, url.QueryEscape(query))
}

func isHomepage(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return strings.Trim(u.Path, "/") == "" && u.RawQuery == ""
}

// isContentLink отсекает ссылки на главную и на чужие хосты (меню, соцсети).
func isContentLink(rawURL, host string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return false
	}
	if !domain.MatchesDomain(domain.NormalizeDomain(u.Host), host) {
		return false
	}
	return strings.Trim(u.Path, "/") != ""
}

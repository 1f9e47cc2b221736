package serpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kitbuilder587/boolsearch/internal/search"
)

const (
	DefaultBaseURL = "https://serpapi.com"

	providerName    = "SerpAPI"
	engine          = "bing"
	maxResponseSize = 4 << 20
)

// пустую выдачу SerpAPI отдает как ошибку, для нас это просто 0 результатов
var emptyResultMarkers = []string{
	"hasn't returned any results",
	"has not returned any results",
}

type Config struct {
	APIKey  string
	BaseURL string
	Country string
	Num     int
	Timeout time.Duration
}

// Client ходит в SerpAPI только движком bing.
type Client struct {
	cfg    Config
	client *http.Client
	logger *zap.Logger
}

func New(cfg Config, logger *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Country == "" {
		cfg.Country = "it"
	}
	if cfg.Num == 0 {
		cfg.Num = 10
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 9 * time.Second
	}

	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

func (c *Client) Name() string   { return providerName }
func (c *Client) Engine() string { return engine }

type response struct {
	Error string `json:"error"`
	search.Payload
}

func (c *Client) Search(ctx context.Context, req search.Request) (*search.Payload, error) {
	num := req.Num
	if num == 0 {
		num = c.cfg.Num
	}

	params := url.Values{}
	params.Set("engine", engine)
	params.Set("q", req.Query)
	params.Set("api_key", c.cfg.APIKey)
	params.Set("cc", strings.ToUpper(c.cfg.Country))
	params.Set("count", strconv.Itoa(num))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/search.json?"+params.Encode(), nil)
	if err != nil {
		return nil, search.TransportError(providerName, 0, err.Error())
	}

	c.logger.Debug("serpapi search", zap.String("query", req.Query))

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, search.TransportError(providerName, 0, search.SafeTransportMessage(err))
	}
	defer resp.Body.Close()

	var out response
	decodeErr := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&out)

	if out.Error != "" {
		if isEmptyResult(out.Error) {
			return &search.Payload{}, nil
		}
		return nil, search.LogicalError(providerName, out.Error)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, search.TransportError(providerName, resp.StatusCode, "")
	}
	if decodeErr != nil {
		return nil, search.TransportError(providerName, 0, "invalid response: "+decodeErr.Error())
	}

	return &out.Payload, nil
}

func isEmptyResult(msg string) bool {
	lower := strings.ToLower(msg)
	for _, m := range emptyResultMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

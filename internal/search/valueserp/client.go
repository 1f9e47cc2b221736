package valueserp

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/kitbuilder587/boolsearch/internal/search"
)

const (
	DefaultBaseURL = "https://api.valueserp.com"

	EngineGoogle = "google"
	EngineBing   = "bing"

	providerName = "ValueSERP"

	// ответ больше этого не ждем, выдача на 10 результатов весит десятки KB
	maxResponseSize = 4 << 20
)

type Config struct {
	APIKey   string
	BaseURL  string
	Engine   string
	Location string
	Country  string
	Language string
	Num      int
	Timeout  time.Duration
}

type Client struct {
	cfg    Config
	client *http.Client
	logger *zap.Logger
}

func New(cfg Config, logger *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Engine == "" {
		cfg.Engine = EngineGoogle
	}
	if cfg.Location == "" {
		cfg.Location = "Italy"
	}
	if cfg.Country == "" {
		cfg.Country = "it"
	}
	if cfg.Language == "" {
		cfg.Language = "it"
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
func (c *Client) Engine() string { return c.cfg.Engine }

type requestInfo struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
}

type response struct {
	RequestInfo *requestInfo `json:"request_info"`
	search.Payload
}

func (c *Client) params(req search.Request) url.Values {
	num := req.Num
	if num == 0 {
		num = c.cfg.Num
	}

	v := url.Values{}
	v.Set("api_key", c.cfg.APIKey)
	v.Set("q", req.Query)
	v.Set("num", strconv.Itoa(num))
	v.Set("location", c.cfg.Location)

	if c.cfg.Engine == EngineBing {
		v.Set("engine", EngineBing)
		return v
	}
	v.Set("gl", c.cfg.Country)
	v.Set("hl", c.cfg.Language)
	return v
}

func (c *Client) Search(ctx context.Context, req search.Request) (*search.Payload, error) {
	endpoint := c.cfg.BaseURL + "/search?" + c.params(req).Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, search.TransportError(providerName, 0, err.Error())
	}
	httpReq.Header.Set("Accept", "application/json")

	c.logger.Debug("valueserp search",
		zap.String("engine", c.cfg.Engine),
		zap.String("query", req.Query),
	)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, search.TransportError(providerName, 0, search.SafeTransportMessage(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseSize))
		return nil, search.TransportError(providerName, resp.StatusCode, "")
	}

	var out response
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&out); err != nil {
		return nil, search.TransportError(providerName, 0, "invalid response: "+err.Error())
	}

	if out.RequestInfo != nil && out.RequestInfo.Success != nil && !*out.RequestInfo.Success {
		return nil, search.LogicalError(providerName, out.RequestInfo.Message)
	}

	return &out.Payload, nil
}

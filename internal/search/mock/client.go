package mock

import (
	"context"
	"sync"
	"time"

	"github.com/kitbuilder587/boolsearch/internal/search"
)

type Client struct {
	Payload *search.Payload
	Error   error
	Delay   time.Duration

	ProviderName string
	EngineName   string

	CallCount   int
	LastRequest search.Request
	AllRequests []search.Request

	mu sync.Mutex
}

func New() *Client {
	return &Client{ProviderName: "mock", EngineName: "google"}
}

func (c *Client) WithPayload(p *search.Payload) *Client {
	c.Payload = p
	return c
}

// WithResults - короткий путь для organic-выдачи.
func (c *Client) WithResults(results ...search.Result) *Client {
	c.Payload = &search.Payload{OrganicResults: results}
	return c
}

func (c *Client) WithError(err error) *Client {
	c.Error = err
	return c
}

func (c *Client) WithDelay(delay time.Duration) *Client {
	c.Delay = delay
	return c
}

func (c *Client) WithEngine(engine string) *Client {
	c.EngineName = engine
	return c
}

func (c *Client) Name() string   { return c.ProviderName }
func (c *Client) Engine() string { return c.EngineName }

func (c *Client) Search(ctx context.Context, req search.Request) (*search.Payload, error) {
	c.mu.Lock()
	c.CallCount++
	c.LastRequest = req
	c.AllRequests = append(c.AllRequests, req)
	delay := c.Delay
	err := c.Error
	payload := c.Payload
	c.mu.Unlock()

	if delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}

	if err != nil {
		return nil, err
	}
	if payload == nil {
		return &search.Payload{}, nil
	}
	return payload, nil
}

func (c *Client) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.CallCount
}

func (c *Client) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.CallCount = 0
	c.LastRequest = search.Request{}
	c.AllRequests = nil
}

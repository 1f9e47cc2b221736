package probe

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/net/html/charset"
)

var (
	ErrBadStatus = errors.New("unexpected status")
	ErrNoResults = errors.New("page reports no results")
)

const (
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
	defaultMaxBody   = 2 << 20
)

type page struct {
	FinalURL string
	Body     string
}

func newClients(base http.RoundTripper) (*http.Client, *http.Client) {
	if base == nil {
		base = http.DefaultTransport
	}

	insecure := base
	if t, ok := base.(*http.Transport); ok {
		clone := t.Clone()
		if clone.TLSClientConfig == nil {
			clone.TLSClientConfig = &tls.Config{}
		}
		// у части сайтов из override битая цепочка сертификатов
		clone.TLSClientConfig.InsecureSkipVerify = true
		insecure = clone
	}

	return &http.Client{Transport: base}, &http.Client{Transport: insecure}
}

func (p *Prober) setHeaders(req *http.Request, accept string) {
	req.Header.Set("User-Agent", p.cfg.UserAgent)
	req.Header.Set("Accept", accept)
	req.Header.Set("Accept-Language", "it-IT,it;q=0.9,en-US;q=0.8,en;q=0.7")
	req.Header.Set("Cache-Control", "no-cache")
}

// fetch делает один GET; таймаут и отмена приходят через ctx.
func (p *Prober) fetch(ctx context.Context, client *http.Client, rawURL, accept string) (*page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	p.setHeaders(req, accept)

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, p.cfg.MaxBodySize))
		return nil, fmt.Errorf("%w: %d", ErrBadStatus, resp.StatusCode)
	}

	reader, err := charset.NewReader(io.LimitReader(resp.Body, p.cfg.MaxBodySize), resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("detect charset: %w", err)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	finalURL := rawURL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	return &page{FinalURL: finalURL, Body: string(body)}, nil
}

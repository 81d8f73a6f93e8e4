package images

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/calzalindo/catalog-backend/pkg/config"
)

// Proxy fetches warehouse images so browsers never touch the internal
// hosts directly.
type Proxy struct {
	httpClient *http.Client
	cfg        config.ImagesConfig
}

// ProxyOption configures optional proxy behavior.
type ProxyOption func(*Proxy)

// WithProxyHTTPClient overrides the default HTTP client.
func WithProxyHTTPClient(client *http.Client) ProxyOption {
	return func(p *Proxy) {
		if client != nil {
			p.httpClient = client
		}
	}
}

// NewProxy builds the image proxy. The configured timeout bounds each
// upstream attempt including the body read.
func NewProxy(cfg config.ImagesConfig, opts ...ProxyOption) *Proxy {
	timeout := cfg.ProxyTimeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	p := &Proxy{
		httpClient: &http.Client{Timeout: timeout},
		cfg:        cfg,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// FetchedImage is one successfully proxied upstream response.
type FetchedImage struct {
	ContentType string
	Body        io.ReadCloser
}

// Placeholder is the redirect target used when no upstream answers.
func (p *Proxy) Placeholder() string {
	return p.cfg.PlaceholderPath
}

// CandidateURLs resolves the request parameters into the upstream URLs to
// try in order. A full URL wins; a relative path is tried against the
// external base first, then the internal one.
func (p *Proxy) CandidateURLs(fullURL, relativePath string) []string {
	if fullURL != "" {
		return []string{fullURL}
	}
	if relativePath == "" {
		return nil
	}

	urls := make([]string, 0, 2)
	for _, base := range []string{p.cfg.ProxyBaseExt, p.cfg.ProxyBaseInt} {
		base = strings.TrimRight(strings.TrimSpace(base), "/")
		if base != "" {
			urls = append(urls, base+"/"+relativePath)
		}
	}
	return urls
}

// Fetch retrieves one upstream URL. The caller owns the body.
func (p *Proxy) Fetch(ctx context.Context, url string) (*FetchedImage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("upstream status %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}
	return &FetchedImage{ContentType: contentType, Body: resp.Body}, nil
}

package images

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	pkgerrors "github.com/calzalindo/catalog-backend/pkg/errors"
)

var errLookupBaseRequired = errors.New("image lookup base URL is required")

// LookupClient queries the warehouse image service for the photo attached
// to a SKU code.
type LookupClient struct {
	httpClient *http.Client
	baseURL    string
}

// LookupOption configures optional client behavior.
type LookupOption func(*LookupClient)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) LookupOption {
	return func(c *LookupClient) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewLookupClient builds a lookup client for the given base URL. The
// timeout applies per request.
func NewLookupClient(baseURL string, timeout time.Duration, opts ...LookupOption) (*LookupClient, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, errLookupBaseRequired
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	client := &LookupClient{
		baseURL:    trimmed,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client, nil
}

// Lookup fetches the absolute image URL for a SKU code. A non-OK status
// or an empty payload means the warehouse has no photo; that is not an
// error.
func (c *LookupClient) Lookup(ctx context.Context, code int) (string, bool, error) {
	if c == nil {
		return "", false, pkgerrors.New(pkgerrors.CodeDependency, "image lookup client not configured")
	}

	url := fmt.Sprintf("%s/%d", c.baseURL, code)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build image lookup request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute image lookup request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", false, nil
	}

	var payload struct {
		AbsoluteURL string `json:"url_absoluta"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode image lookup response")
	}
	if payload.AbsoluteURL == "" {
		return "", false, nil
	}
	return payload.AbsoluteURL, true, nil
}

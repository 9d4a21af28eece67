package catalog

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"movie-review/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const defaultTimeout = 10 * time.Second

// Client talks to the OMDb API. Every failure (transport, timeout, non-2xx,
// undecodable body) is reported as "no result" and never as an error, so
// callers can treat a missing page like an empty one.
type Client struct {
	baseURL    string
	apiKey     string
	timeout    time.Duration
	httpClient *http.Client
	limiter    *rate.Limiter
	log        *zap.Logger
}

func NewClient(cfg utils.CatalogConfig, log *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		timeout: timeout,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		limiter: limiter,
		log:     log.With(zap.String("client", "catalog")),
	}
}

// Fetch issues one GET with params plus the API key and decodes the JSON body
// into out. It reports false when there is no usable result. A true result
// still has to be checked for Response == "False" by the caller.
func (c *Client) Fetch(ctx context.Context, params map[string]string, out any) bool {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			c.log.Warn("Catalog request not sent", zap.Error(err), zap.Any("params", params))
			return false
		}
	}

	endpoint, err := c.buildURL(params)
	if err != nil {
		c.log.Error("Invalid catalog base URL", zap.Error(err), zap.String("base_url", c.baseURL))
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		c.log.Error("Failed to build catalog request", zap.Error(err))
		return false
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("Catalog request failed",
			zap.Error(err),
			zap.Any("params", params),
			zap.Duration("duration", time.Since(start)),
		)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		c.log.Warn("Catalog returned non-2xx status",
			zap.Int("status", resp.StatusCode),
			zap.Any("params", params),
		)
		return false
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.log.Warn("Failed to decode catalog response", zap.Error(err), zap.Any("params", params))
		return false
	}

	c.log.Debug("Catalog request done",
		zap.Any("params", params),
		zap.Duration("duration", time.Since(start)),
	)
	return true
}

// Search runs an "s=" query.
func (c *Client) Search(ctx context.Context, params map[string]string) (*SearchResponse, bool) {
	var resp SearchResponse
	if !c.Fetch(ctx, params, &resp) {
		return nil, false
	}
	return &resp, true
}

// Lookup fetches the full record of one title, with the long plot.
func (c *Client) Lookup(ctx context.Context, imdbID string) (*Detail, bool) {
	var detail Detail
	if !c.Fetch(ctx, map[string]string{"i": imdbID, "plot": "full"}, &detail) {
		return nil, false
	}
	return &detail, true
}

// buildURL never mutates params; the key only lives in the outgoing query.
func (c *Client) buildURL(params map[string]string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", err
	}

	query := u.Query()
	for key, value := range params {
		query.Set(key, value)
	}
	query.Set("apikey", c.apiKey)
	u.RawQuery = query.Encode()

	return u.String(), nil
}

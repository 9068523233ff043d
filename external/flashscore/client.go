package flashscore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/courtdata/flashfeed/internal/platform/logging"
	"github.com/courtdata/flashfeed/internal/platform/resilience"
)

const (
	// Feed endpoints refuse requests that do not carry this signature header.
	feedSignature = "SW9D1eZo"

	defaultTimeout = 20 * time.Second
	maxBodyBytes   = 8 << 20
)

// Results payloads are embedded in the tournament results page instead of
// being served as a standalone document.
var resultsFeedRegex = regexp.MustCompile("cjs\\.initialFeeds\\['results'\\] = \\{[\\s\\S]*?data: `(.*?)`,")

var errFlashscoreTransient = crerr.New("flashscore transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig

	// BaseURL overrides the site root used to resolve relative links.
	BaseURL string

	// SnapshotDir, when set, receives a JSON copy of every fetched payload.
	SnapshotDir string
}

type Client struct {
	httpClient     *http.Client
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
	baseURL        string
	snapshotDir    string
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	baseURL := strings.TrimSuffix(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = siteBaseURL
	}

	return &Client{
		httpClient:     httpClient,
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
		baseURL:        baseURL,
		snapshotDir:    strings.TrimSpace(cfg.SnapshotDir),
	}
}

// FetchText downloads one feed or page as text. Concurrent requests for the
// same URL are collapsed into a single round trip.
func (c *Client) FetchText(ctx context.Context, url string) (string, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "flashscore circuit breaker rejected request", "state", c.breaker.State())
			return "", crerr.Wrap(err, "feed provider is temporarily unavailable")
		}
	}

	out, err, _ := c.flight.Do(url, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, url)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errFlashscoreTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return "", err
	}

	raw, ok := out.([]byte)
	if !ok {
		return "", fmt.Errorf("unexpected response payload type %T", out)
	}

	c.snapshot(ctx, url, raw)
	return string(raw), nil
}

// CheckURL probes a synthesized link. Only a 404 marks the link as dead;
// auth walls and rate limits still prove the resource exists.
func (c *Client) CheckURL(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", crerr.Wrapf(err, "build probe request url=%s", url)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", crerr.Wrapf(err, "probe url=%s", url)
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
	_ = resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", crerr.Newf("url not found: %s", url)
	}
	return url, nil
}

// ResultsFeed fetches a tournament results page and extracts the embedded
// results payload from the page script.
func (c *Client) ResultsFeed(ctx context.Context, resultsURL string) (string, error) {
	page, err := c.FetchText(ctx, resultsURL)
	if err != nil {
		return "", crerr.Wrapf(err, "fetch results page url=%s", resultsURL)
	}

	groups := resultsFeedRegex.FindStringSubmatch(page)
	if len(groups) != 2 {
		return "", crerr.Newf("results feed payload not found in page url=%s", resultsURL)
	}
	return groups[1], nil
}

func (c *Client) executeRequest(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, crerr.Wrap(err, "build request")
		}
		req.Header.Set("x-fsign", feedSignature)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = crerr.Wrapf(errFlashscoreTransient, "send request: %v", err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = crerr.Wrapf(errFlashscoreTransient, "read response body: %v", readErr)
			case resp.StatusCode == http.StatusOK:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = crerr.Wrapf(errFlashscoreTransient, "provider status=%d url=%s", resp.StatusCode, url)
			default:
				return nil, crerr.Newf("provider status=%d url=%s", resp.StatusCode, url)
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "flashscore request failed", "url", url, "error", lastErr)
	return nil, lastErr
}

type payloadSnapshot struct {
	URL       string `json:"url"`
	FetchedAt string `json:"fetched_at"`
	Body      string `json:"body"`
}

func (c *Client) snapshot(ctx context.Context, url string, raw []byte) {
	if c.snapshotDir == "" {
		return
	}

	record := payloadSnapshot{
		URL:       url,
		FetchedAt: time.Now().UTC().Format(time.RFC3339),
		Body:      string(raw),
	}
	encoded, err := sonic.Marshal(record)
	if err != nil {
		c.logger.WarnContext(ctx, "snapshot encode failed", "url", url, "error", err)
		return
	}

	sum := sha256.Sum256([]byte(url))
	path := filepath.Join(c.snapshotDir, hex.EncodeToString(sum[:8])+".json")
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		c.logger.WarnContext(ctx, "snapshot write failed", "url", url, "path", path, "error", err)
	}
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

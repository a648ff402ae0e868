package openf1

import (
	"bytes"
	"context"
	"math"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/openf1-tools/f1arc/internal/domain"
	"github.com/openf1-tools/f1arc/internal/ports"
)

// Config holds fetch client configuration.
type Config struct {
	BaseURL string
	Timeout time.Duration

	// Retries is the total attempt budget; Backoff is the base of the
	// delay schedule backoff^attempt, attempt counted from zero.
	Retries int
	Backoff float64

	// RequestsPerSecond throttles attempts against the upstream API.
	// Zero disables throttling.
	RequestsPerSecond float64

	Logger *zap.SugaredLogger // nil = nop logger
}

// Client fetches tabular datasets from the OpenF1 API. It always requests
// CSV output and maps the API's "no matching data" statuses (204, and the
// 400/404 it answers for some filters) to an empty Table.
type Client struct {
	http    *resty.Client
	retries int
	backoff float64
	limiter *rate.Limiter
	logger  *zap.SugaredLogger

	sleep func(ctx context.Context, d time.Duration) error
}

var _ ports.TableFetcher = (*Client)(nil)

func NewClient(cfg Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	retries := cfg.Retries
	if retries < 1 {
		retries = 1
	}
	backoff := cfg.Backoff
	if backoff <= 0 {
		backoff = 1
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("user-agent", "f1arc")

	return &Client{
		http:    httpClient,
		retries: retries,
		backoff: backoff,
		limiter: limiter,
		logger:  logger,
		sleep:   sleepContext,
	}
}

// Fetch retrieves one endpoint as a Table. Statuses 204, 400, and 404 and
// blank 200 bodies yield an empty Table. Transport errors, other error
// statuses, and malformed bodies are retried with delay backoff^attempt;
// once the budget is exhausted a *domain.FetchError is returned.
func (c *Client) Fetch(ctx context.Context, endpoint string, params map[string]string) (domain.Table, error) {
	query := make(map[string]string, len(params)+1)
	for k, v := range params {
		query[k] = v
	}
	query["csv"] = "true"

	var lastErr error
	for attempt := 0; attempt < c.retries; attempt++ {
		if attempt > 0 {
			delay := time.Duration(math.Pow(c.backoff, float64(attempt-1)) * float64(time.Second))
			if err := c.sleep(ctx, delay); err != nil {
				return domain.Table{}, err
			}
		}

		table, done, err := c.attempt(ctx, endpoint, query)
		if done {
			return table, err
		}
		lastErr = err
		c.logger.Debugw("fetch attempt failed",
			"endpoint", endpoint,
			"attempt", attempt,
			"error", err,
		)
	}

	return domain.Table{}, &domain.FetchError{Endpoint: endpoint, Params: params, Cause: lastErr}
}

// attempt runs one request. done reports a final outcome (success or
// no-data); when done is false err holds the transient cause.
func (c *Client) attempt(ctx context.Context, endpoint string, query map[string]string) (domain.Table, bool, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return domain.Table{}, true, err
		}
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(query).
		Get(endpoint)
	if err != nil {
		return domain.Table{}, false, errors.Wrap(err, "request failed")
	}

	switch resp.StatusCode() {
	case http.StatusNoContent, http.StatusBadRequest, http.StatusNotFound:
		return domain.Table{}, true, nil
	}
	if !resp.IsSuccess() {
		return domain.Table{}, false, errors.Newf("unexpected status %d", resp.StatusCode())
	}

	table, err := domain.DecodeCSV(bytes.NewReader(resp.Body()))
	if err != nil {
		// A malformed 200 body must not be reported as "no data".
		return domain.Table{}, false, err
	}
	return table, true, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

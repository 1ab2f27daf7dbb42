// Package fetch retrieves daily availability pages from the EMS booking
// system. EMS deployments differ in which browse endpoint is enabled, so the
// fetcher walks a fixed list of known paths until one answers usefully.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/olinlib/roomres/internal/logger"
)

// Known EMS browse endpoint patterns, tried in order.
var endpointPaths = []string{
	"/BrowseAvailability.aspx",
	"/RoomRequest.aspx",
	"/Browse/BrowseAvailability",
}

// minUsefulBody filters out stub responses (redirect shells, error pages
// served with status 200).
const minUsefulBody = 500

// EMSFetcher implements collector.Fetcher over an EMS web instance.
type EMSFetcher struct {
	client  *http.Client
	baseURL string
	log     *logger.Logger

	// MaxRetries bounds per-endpoint retry attempts on transient failures.
	MaxRetries uint64
}

// New creates a fetcher rooted at baseURL (e.g. "https://host.example/web")
// using an already-established session client.
func New(client *http.Client, baseURL string, log *logger.Logger) *EMSFetcher {
	if log == nil {
		log = logger.Default()
	}
	return &EMSFetcher{
		client:     client,
		baseURL:    baseURL,
		log:        log,
		MaxRetries: 3,
	}
}

// Fetch returns the availability page for a day, or ok=false when no
// endpoint yields usable content. Absence is not an error to the caller;
// the collector logs and moves on.
func (f *EMSFetcher) Fetch(ctx context.Context, day time.Time) (string, bool) {
	params := url.Values{
		"date": {day.Format("01/02/2006")},
		"view": {"day"},
	}

	for _, path := range endpointPaths {
		endpoint := f.baseURL + path + "?" + params.Encode()

		body, err := f.get(ctx, endpoint)
		if err != nil {
			f.log.Debug("endpoint failed", logger.Fields{
				"endpoint": f.baseURL + path,
				"date":     day.Format("2006-01-02"),
				"reason":   err.Error(),
			})
			continue
		}
		if len(body) <= minUsefulBody {
			f.log.Debug("endpoint returned stub page", logger.Fields{
				"endpoint": f.baseURL + path,
				"bytes":    len(body),
			})
			continue
		}

		f.log.Debug("fetched availability page", logger.Fields{
			"endpoint": f.baseURL + path,
			"date":     day.Format("2006-01-02"),
			"bytes":    len(body),
		})
		return string(body), true
	}

	return "", false
}

// get performs one GET with exponential-backoff retries on transient
// failures. Non-retryable statuses (404 and friends) fail immediately so the
// next candidate endpoint can be tried without burning the retry budget.
func (f *EMSFetcher) get(ctx context.Context, endpoint string) ([]byte, error) {
	var body []byte

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return backoff.Permanent(err)
		}

		resp, err := f.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			body = b
			return nil
		case retryableStatus(resp.StatusCode):
			return fmt.Errorf("retryable status %d from %s", resp.StatusCode, endpoint)
		default:
			return backoff.Permanent(fmt.Errorf("status %d from %s", resp.StatusCode, endpoint))
		}
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 500 * time.Millisecond
	policy.MaxElapsedTime = 20 * time.Second

	err := backoff.Retry(operation,
		backoff.WithContext(backoff.WithMaxRetries(policy, f.MaxRetries), ctx))
	if err != nil {
		return nil, err
	}
	return body, nil
}

func retryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests, http.StatusRequestTimeout:
		return true
	}
	return code >= 500
}

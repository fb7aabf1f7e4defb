package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/alexanderramin/tally/internal/domain"
)

// DefaultTimeout bounds a fetch when none is configured.
const DefaultTimeout = 10 * time.Second

// maxErrorBody caps how much of a failed response is kept for the error.
const maxErrorBody = 512

// HTTPSource fetches a JSON dataset with a single GET.
type HTTPSource struct {
	url     string
	timeout time.Duration
	http    *http.Client
}

// NewHTTPSource creates a source for url. A nil client gets a dialer with a
// five second connect timeout; a non-positive timeout uses DefaultTimeout.
func NewHTTPSource(url string, timeout time.Duration, client *http.Client) *HTTPSource {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if client == nil {
		client = &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		}
	}
	return &HTTPSource{url: url, timeout: timeout, http: client}
}

func (s *HTTPSource) Name() string { return s.url }

func (s *HTTPSource) Fetch(ctx context.Context) ([]domain.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %v", ErrUnsupported, err)
	}
	req.Header.Set("Accept", "application/json")
	if id := FetchID(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, classify(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%w: %d %s", ErrBadStatus, resp.StatusCode, string(body))
	}

	records, err := DecodeRecords(resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return nil, classify(ctx, ctx.Err())
		}
		return nil, err
	}
	return records, nil
}

// classify maps transport failures onto the source sentinels.
func classify(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

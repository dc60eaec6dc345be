package image

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"limban-server-go/internal/platform/errors"
)

// Fetcher downloads source images with bounded retries.
type Fetcher struct {
	client  *http.Client
	backoff BackoffPolicy
}

func NewFetcher(timeout time.Duration, backoff BackoffPolicy) *Fetcher {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Fetcher{
		client:  &http.Client{Timeout: timeout},
		backoff: backoff,
	}
}

// Fetch downloads url, retrying per the fetcher's backoff policy. The
// returned error carries the last attempt's failure.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	var body []byte
	err := f.backoff.Retry(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		resp, err := f.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			io.Copy(io.Discard, resp.Body)
			return fmt.Errorf("unexpected status %d", resp.StatusCode)
		}
		body, err = io.ReadAll(resp.Body)
		return err
	})
	if err != nil {
		return nil, errors.Wrap(errors.KindPipeline, "image.fetch", "failed to download "+url, err)
	}
	return body, nil
}

package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-cleanhttp"
)

const httpTimeout = 5 * time.Minute

// OpenHTTP fetches an archive over HTTP(S) and returns the response body as
// the archive stream.
func OpenHTTP(ctx context.Context, url string) (io.ReadCloser, error) {
	client := cleanhttp.DefaultPooledClient()
	client.Timeout = httpTimeout

	return openHTTPWithClient(ctx, client, url)
}

func openHTTPWithClient(ctx context.Context, client *http.Client, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", url, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %s fetching %s", resp.Status, url)
	}

	return resp.Body, nil
}

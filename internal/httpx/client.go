package httpx

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/klauspost/compress/gzhttp"
)

// Options configures the shared HTTP client.
type Options struct {
	UserAgent string
	// Timeout bounds each request end to end. Zero disables the limit.
	Timeout time.Duration
	// Transport overrides the base round tripper (tests).
	Transport http.RoundTripper
}

// NewClient builds the client used for manifest, index, and segment requests.
// Responses are transparently decompressed when the server honours gzip or zstd.
func NewClient(opts Options) *http.Client {
	base := opts.Transport
	if base == nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.MaxIdleConnsPerHost = 8
		base = transport
	}
	var rt http.RoundTripper = gzhttp.Transport(base)
	if ua := strings.TrimSpace(opts.UserAgent); ua != "" {
		rt = &userAgentTransport{next: rt, userAgent: ua}
	}
	return &http.Client{
		Transport: rt,
		Timeout:   opts.Timeout,
	}
}

type userAgentTransport struct {
	next      http.RoundTripper
	userAgent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") != "" {
		return t.next.RoundTrip(req)
	}
	clone := req.Clone(req.Context())
	clone.Header.Set("User-Agent", t.userAgent)
	return t.next.RoundTrip(clone)
}

// StatusError reports a response outside the 2xx range.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// Get performs a single GET and returns the fully buffered body. Non-2xx
// responses yield *StatusError; there are no retries.
func Get(ctx context.Context, client *http.Client, rawURL string) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request for %s: %w", rawURL, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body of %s: %w", rawURL, err)
	}
	return data, nil
}

// internal/engine/fetcher/fetcher.go

// Package fetcher downloads the activities listing page.
package fetcher

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/law-makers/activities/internal/utils/headers"
	urlutil "github.com/law-makers/activities/internal/utils/url"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultUserAgent identifies the fetcher as a desktop browser
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	DefaultTimeout   = 30 * time.Second
)

// Options configures a Fetcher. Zero values fall back to the defaults above and
// to a clone of http.DefaultTransport.
type Options struct {
	UserAgent string
	Timeout   time.Duration
	Headers   map[string]string

	// Transport is used for the first attempt.
	Transport http.RoundTripper
	// InsecureTransport is used for the single retry after a certificate
	// failure. It must not verify certificates.
	InsecureTransport http.RoundTripper
}

// Fetcher retrieves page content over HTTP(S). A certificate validation
// failure is retried exactly once without verification; nothing else is retried.
type Fetcher struct {
	client         *http.Client
	insecureClient *http.Client
	userAgent      string
	headers        map[string]string
}

// New creates a Fetcher
func New(opts Options) *Fetcher {
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Transport == nil {
		opts.Transport = http.DefaultTransport.(*http.Transport).Clone()
	}
	if opts.InsecureTransport == nil {
		insecure := http.DefaultTransport.(*http.Transport).Clone()
		insecure.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} // #nosec G402 -- fallback after a certificate failure
		opts.InsecureTransport = insecure
	}

	return &Fetcher{
		client:         &http.Client{Timeout: opts.Timeout, Transport: opts.Transport},
		insecureClient: &http.Client{Timeout: opts.Timeout, Transport: opts.InsecureTransport},
		userAgent:      opts.UserAgent,
		headers:        opts.Headers,
	}
}

// Name returns the name of this fetcher
func (f *Fetcher) Name() string {
	return "Fetcher"
}

// Fetch returns the full body of url decoded as UTF-8 text
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := urlutil.ValidateURL(url); err != nil {
		return "", &FetchError{URL: url, Err: err}
	}

	log.Debug().
		Str("url", url).
		Str("fetcher", f.Name()).
		Msg("Starting fetch")

	body, err := f.get(ctx, f.client, url)
	if err == nil {
		return body, nil
	}
	if !IsCertificateError(err) {
		return "", err
	}

	log.Warn().
		Err(err).
		Str("url", url).
		Msg("Certificate verification failed, retrying without verification")

	body, err = f.get(ctx, f.insecureClient, url)
	if err != nil {
		if fe, ok := err.(*FetchError); ok {
			fe.Insecure = true
		}
		return "", err
	}
	return body, nil
}

func (f *Fetcher) get(ctx context.Context, client *http.Client, url string) (string, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &FetchError{URL: url, Err: fmt.Errorf("creating request: %w", err)}
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "pt-BR,pt;q=0.9,en;q=0.8")
	headers.Apply(req, f.headers)

	resp, err := client.Do(req)
	if err != nil {
		return "", &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", &FetchError{
			URL:        url,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status: %s", resp.Status),
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &FetchError{URL: url, Err: fmt.Errorf("reading body: %w", err)}
	}

	log.Debug().
		Str("url", url).
		Int("status", resp.StatusCode).
		Int("bytes", len(data)).
		Dur("elapsed", time.Since(start)).
		Msg("Fetch completed")

	return strings.ToValidUTF8(string(data), "\uFFFD"), nil
}

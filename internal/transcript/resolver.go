// Package transcript resolves gene symbols to MANE Select transcript exon
// coordinates via the VariantValidator gene2transcripts API.
package transcript

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// DefaultBaseURL is the production VariantValidator gene2transcripts endpoint.
const DefaultBaseURL = "https://rest.variantvalidator.org/VariantValidator/tools/gene2transcripts_v2"

const (
	// maxAttempts bounds how many times a rate-limited request is tried.
	maxAttempts = 4
	// backoffBase is the unit for exponential backoff between attempts.
	backoffBase = time.Second
	// throttleDelay is applied after every successful resolution so the
	// next gene's request is less likely to hit the rate limit.
	throttleDelay = time.Second
)

// ResolutionError reports a failed transcript lookup for a gene.
type ResolutionError struct {
	Gene   string
	Status int // HTTP status, 0 when the failure was not an HTTP response
	Err    error
}

func (e *ResolutionError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("resolve %s: status %d", e.Gene, e.Status)
	}
	return fmt.Sprintf("resolve %s: %v", e.Gene, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// Resolver fetches MANE Select transcript structure for single genes.
// Calls are synchronous; the resolver throttles itself between requests.
type Resolver struct {
	baseURL    string
	httpClient *http.Client
	backoff    BackoffPolicy
	throttle   time.Duration
	logger     *zap.Logger
}

// NewResolver creates a resolver against the production VariantValidator API.
func NewResolver() *Resolver {
	return NewResolverWithBaseURL(DefaultBaseURL)
}

// NewResolverWithBaseURL creates a resolver against a custom endpoint.
func NewResolverWithBaseURL(baseURL string) *Resolver {
	return &Resolver{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 25 * time.Second,
		},
		backoff:  ExponentialBackoff(backoffBase),
		throttle: throttleDelay,
		logger:   zap.NewNop(),
	}
}

// SetLogger sets the logger for retry warnings.
func (r *Resolver) SetLogger(l *zap.Logger) {
	r.logger = l
}

// SetBackoff overrides the retry backoff policy. Intended for tests.
func (r *Resolver) SetBackoff(p BackoffPolicy) {
	r.backoff = p
}

// SetThrottle overrides the post-request throttle delay. Intended for tests.
func (r *Resolver) SetThrottle(d time.Duration) {
	r.throttle = d
}

// Resolve fetches the MANE Select transcript structure for a gene symbol on
// the given genome build ("GRCh37" or "GRCh38").
//
// HTTP 429 responses are retried with exponential backoff (2^attempt
// seconds) up to maxAttempts total attempts; any other non-200 status fails
// immediately. Both cases surface as a *ResolutionError.
func (r *Resolver) Resolve(ctx context.Context, gene, build string) ([]GeneData, error) {
	u := fmt.Sprintf("%s/%s/mane_select/refseq/%s", r.baseURL, url.PathEscape(gene), url.PathEscape(build))

	var genes []GeneData
	err := retry(ctx, r.backoff, maxAttempts, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return &ResolutionError{Gene: gene, Err: err}
		}
		req.Header.Set("Accept", "application/json")

		resp, err := r.httpClient.Do(req)
		if err != nil {
			return &ResolutionError{Gene: gene, Err: err}
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			r.logger.Warn("rate limited, backing off",
				zap.String("gene", gene))
			return Retryable(&ResolutionError{Gene: gene, Status: resp.StatusCode})
		case resp.StatusCode != http.StatusOK:
			io.Copy(io.Discard, io.LimitReader(resp.Body, 1024))
			return &ResolutionError{Gene: gene, Status: resp.StatusCode}
		}

		if err := json.NewDecoder(resp.Body).Decode(&genes); err != nil {
			return &ResolutionError{Gene: gene, Err: fmt.Errorf("decode response: %w", err)}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Deliberate inter-gene throttle, not error handling.
	if err := sleep(ctx, r.throttle); err != nil {
		return nil, err
	}

	return genes, nil
}

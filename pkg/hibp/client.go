// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package hibp

import (
	"crypto/tls"
	"errors"
	"fmt"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
	"golang.org/x/net/context"
	"golang.org/x/time/rate"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

const DefaultBaseURL = "https://api.pwnedpasswords.com"

var ErrInvalidPrefix = errors.New("range prefix must be 5 uppercase hexadecimal characters")

// StatusError is returned when the range API answers with a non 2xx status.
type StatusError struct {
	Prefix string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("range %s request failed with status [%d] %s", e.Prefix, e.Code, http.StatusText(e.Code))
}

// Options configures a Client. The zero value of an optional field turns that feature off.
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	// RetryMax is the number of retries on transport errors and 5xx answers.
	RetryMax int
	// Padding asks the API to add decoy entries so the response size says nothing about
	// the prefix.
	Padding bool
	// RateLimit is the max number of range requests per second.
	RateLimit float64
	// FailureThreshold is how many consecutive failures open the circuit.
	FailureThreshold uint32
	CacheEntries     int64
	CacheTTL         time.Duration
}

func DefaultOptions() Options {
	return Options{
		BaseURL:          DefaultBaseURL,
		UserAgent:        "pwd-strength/1.0",
		Timeout:          8 * time.Second,
		RetryMax:         3,
		Padding:          true,
		FailureThreshold: 5,
		CacheEntries:     1024,
		CacheTTL:         time.Hour,
	}
}

// Client checks passwords against the Pwned Passwords range API. Only the first five
// characters of the SHA1 ever leave the process.
type Client struct {
	baseURL   string
	userAgent string
	padding   bool
	http      *retryablehttp.Client
	limiter   *rate.Limiter
	breaker   *gobreaker.CircuitBreaker
	cache     *rangeCache
	stat      *status
}

func NewClient(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.RetryMax < 0 {
		return nil, fmt.Errorf("retry max must not be negative, got %d", opts.RetryMax)
	}

	c := &Client{
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		userAgent: opts.UserAgent,
		padding:   opts.Padding,
		http:      initHttpClient(opts),
		stat:      newStatus(),
	}

	if opts.RateLimit > 0 {
		burst := int(opts.RateLimit)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	if opts.FailureThreshold > 0 {
		threshold := opts.FailureThreshold
		c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "pwned-passwords-range",
			MaxRequests: 1,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= threshold
			},
			// A check dropped by its caller says nothing about the API health.
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, context.Canceled)
			},
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				log.Warn().Msgf("circuit %s changed from %s to %s", name, from, to)
			},
		})
	}

	if opts.CacheEntries > 0 {
		cache, err := newRangeCache(opts.CacheEntries, opts.CacheTTL)
		if err != nil {
			return nil, fmt.Errorf("creating range cache: %w", err)
		}
		c.cache = cache
	}

	return c, nil
}

func initHttpClient(opts Options) *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.Logger = newLeveledLogger()
	client.RetryMax = opts.RetryMax
	client.RetryWaitMin = 200 * time.Millisecond
	client.RetryWaitMax = 2 * time.Second
	client.ErrorHandler = lastResponse

	client.HTTPClient = &http.Client{
		Timeout: opts.Timeout,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
			DialContext: (&net.Dialer{
				Timeout:   opts.Timeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:          10,
			IdleConnTimeout:       30 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
			ForceAttemptHTTP2:     true,
		},
	}

	return client
}

// lastResponse hands back the final response once retries run out, so its status code is
// reported as is. Without a response the error goes through.
func lastResponse(resp *http.Response, err error, _ int) (*http.Response, error) {
	if resp != nil {
		return resp, nil
	}
	return nil, err
}

// Check looks the password up and never fails: transport errors, non 2xx answers, an
// open circuit and cancellation all come back as a Failed result.
func (c *Client) Check(ctx context.Context, password string) Result {
	prefix, suffix := Split(Digest(password))

	body, err := c.Range(ctx, prefix)
	if err != nil {
		c.stat.Failure()
		log.Debug().Err(err).Msgf("breach check for range %s failed", prefix)
		return Errored(err)
	}

	return Count(FindSuffix(body, suffix))
}

// Range returns the raw SUFFIX:COUNT listing for a prefix, from the cache when possible.
func (c *Client) Range(ctx context.Context, prefix string) ([]byte, error) {
	if !ValidPrefix(prefix) {
		return nil, ErrInvalidPrefix
	}

	if c.cache != nil {
		if body, ok := c.cache.get(prefix); ok {
			c.stat.CacheHit()
			return body, nil
		}
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	var body []byte
	if c.breaker != nil {
		v, err := c.breaker.Execute(func() (interface{}, error) {
			return c.downloadRange(ctx, prefix)
		})
		if err != nil {
			return nil, err
		}
		body = v.([]byte)
	} else {
		var err error
		if body, err = c.downloadRange(ctx, prefix); err != nil {
			return nil, err
		}
	}

	if c.cache != nil {
		c.cache.set(prefix, body)
	}

	return body, nil
}

func (c *Client) rangeHttpRequest(ctx context.Context, prefix string) (*retryablehttp.Request, error) {
	req, err := retryablehttp.NewRequestWithContext(
		ctx,
		http.MethodGet,
		fmt.Sprintf("%s/range/%s", c.baseURL, prefix),
		nil,
	)
	if err != nil {
		return nil, err
	}

	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.padding {
		req.Header.Set("Add-Padding", "true")
	}

	return req, nil
}

func (c *Client) downloadRange(ctx context.Context, prefix string) ([]byte, error) {
	timer := time.Now()
	req, err := c.rangeHttpRequest(ctx, prefix)
	if err != nil {
		return nil, err
	}

	res, err := c.http.Do(req)
	if res != nil {
		defer func(Body io.ReadCloser) {
			if err := Body.Close(); err != nil {
				log.Warn().Err(err).Msgf("error closing body for range %s", prefix)
			}
		}(res.Body)
	}
	if err != nil {
		return nil, fmt.Errorf("requesting range %s: %w", prefix, err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &StatusError{Prefix: prefix, Code: res.StatusCode}
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("reading range %s: %w", prefix, err)
	}

	c.stat.RequestComplete(res, time.Since(timer).Milliseconds())
	return body, nil
}

func (c *Client) Stats() Stats {
	return c.stat.snapshot()
}

func (c *Client) LogSummary() {
	c.stat.LogSummary()
}

// Close releases the range cache.
func (c *Client) Close() {
	if c.cache != nil {
		c.cache.close()
	}
}

// Package httpclient issues the single outbound call to the tax service
// and classifies the response.
package httpclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"syscall"
	"time"

	"github.com/tidwall/gjson"

	"tax-tool/internal/logging"
)

// DefaultTimeout is the default HTTP client timeout.
const DefaultTimeout = 30 * time.Second

// TransportKind classifies a network-level failure.
type TransportKind string

const (
	KindTimeout    TransportKind = "timeout"
	KindDNS        TransportKind = "dns"
	KindConnRefuse TransportKind = "connection_refused"
	KindNetwork    TransportKind = "network"
	KindServer     TransportKind = "server_error"
)

// TransportError is a network-level or 5xx failure. No response body is
// available; the request is never retried.
type TransportError struct {
	Kind   TransportKind
	URL    string
	Status int // set only for KindServer
	Err    error
}

func (e *TransportError) Error() string {
	switch e.Kind {
	case KindTimeout:
		return fmt.Sprintf("request to %s timed out", e.URL)
	case KindDNS:
		return fmt.Sprintf("could not resolve host for %s: %v", e.URL, e.Err)
	case KindConnRefuse:
		return fmt.Sprintf("connection refused by %s", e.URL)
	case KindServer:
		return fmt.Sprintf("server error %d from %s", e.Status, e.URL)
	default:
		return fmt.Sprintf("network failure calling %s: %v", e.URL, e.Err)
	}
}

func (e *TransportError) Unwrap() error { return e.Err }

// APIError is a 4xx rejection. Body holds the server's error payload
// verbatim for operator diagnosis.
type APIError struct {
	Status int
	Body   []byte
}

func (e *APIError) Error() string {
	if len(e.Body) == 0 {
		return fmt.Sprintf("tax API rejected the request with status %d", e.Status)
	}
	return fmt.Sprintf("tax API rejected the request with status %d: %s", e.Status, e.Body)
}

// Client sends tax payloads over HTTP.
type Client struct {
	hc     *http.Client
	logger logging.Logger
}

// NewClient creates a Client with the fixed 30-second timeout.
func NewClient(logger logging.Logger) *Client {
	return NewClientWithTimeout(logger, DefaultTimeout)
}

// NewClientWithTimeout exists so tests can exercise the timeout path
// without waiting 30 seconds.
func NewClientWithTimeout(logger logging.Logger, timeout time.Duration) *Client {
	return &Client{
		hc:     &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Send issues one GET request carrying payload as a JSON body and returns
// the response body on success. The remote service expects the payload on
// GET; the method is fixed and never derived from the operation.
// Classification: network failures and 5xx are TransportError, 4xx is
// APIError with the server payload preserved, and anything below 400 is
// success provided the body is valid JSON.
func (c *Client) Send(ctx context.Context, url string, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debugf("Sending %s %s (%d payload bytes)", req.Method, url, len(payload))

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, classifyNetworkError(url, err)
	}
	defer resp.Body.Close()

	c.logger.Debugf("Response status: %d", resp.StatusCode)

	if resp.StatusCode >= 500 {
		// Body is intentionally not parsed for server errors.
		io.Copy(io.Discard, resp.Body)
		return nil, &TransportError{Kind: KindServer, URL: url, Status: resp.StatusCode}
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode >= 400 {
		return nil, &APIError{Status: resp.StatusCode, Body: bodyBytes}
	}

	if !gjson.ValidBytes(bodyBytes) {
		return nil, fmt.Errorf("tax API returned status %d with a non-JSON body", resp.StatusCode)
	}
	return bodyBytes, nil
}

// classifyNetworkError maps a client.Do failure onto a TransportError
// subtype so each produces a distinct diagnostic.
func classifyNetworkError(url string, err error) *TransportError {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) ||
		(errors.As(err, &netErr) && netErr.Timeout()) {
		return &TransportError{Kind: KindTimeout, URL: url, Err: err}
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &TransportError{Kind: KindDNS, URL: url, Err: err}
	}
	// Other dial failures (unreachable network etc.) stay KindNetwork so
	// the diagnostic never misnames the cause.
	if errors.Is(err, syscall.ECONNREFUSED) {
		return &TransportError{Kind: KindConnRefuse, URL: url, Err: err}
	}
	return &TransportError{Kind: KindNetwork, URL: url, Err: err}
}

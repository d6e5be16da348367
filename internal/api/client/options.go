package client

import (
	"net/http"
	"time"
)

type TransportFunc func(http.RoundTripper) http.RoundTripper

type httpConfig struct {
	requestTimeout        time.Duration
	connTimeout           time.Duration
	keepAlive             time.Duration
	tlsHandshakeTimeout   time.Duration
	responseHeaderTimeout time.Duration
	idleConnTimeout       time.Duration
	maxIdleConnsPerHost   int
	transports            []TransportFunc
	retryAttempts         uint
	retryDelay            time.Duration
}

// A zero request timeout waits for the server as long as it takes.
func defaultHTTPConfig() *httpConfig {
	return &httpConfig{
		requestTimeout:      0,
		connTimeout:         30 * time.Second,
		keepAlive:           90 * time.Second,
		tlsHandshakeTimeout: 10 * time.Second,
		idleConnTimeout:     90 * time.Second,
		maxIdleConnsPerHost: 4,
		retryAttempts:       1,
		retryDelay:          200 * time.Millisecond,
	}
}

type Option func(*httpConfig)

func WithRequestTimeout(timeout time.Duration) Option {
	return func(c *httpConfig) {
		c.requestTimeout = timeout
	}
}

func WithConnTimeout(timeout time.Duration) Option {
	return func(c *httpConfig) {
		c.connTimeout = timeout
	}
}

func WithResponseHeaderTimeout(timeout time.Duration) Option {
	return func(c *httpConfig) {
		c.responseHeaderTimeout = timeout
	}
}

func WithTransport(transport TransportFunc) Option {
	return func(c *httpConfig) {
		c.transports = append(c.transports, transport)
	}
}

// WithRetry retries requests that failed before any response arrived.
// attempts counts the first try, so 1 disables retrying.
func WithRetry(attempts uint, delay time.Duration) Option {
	return func(c *httpConfig) {
		if attempts < 1 {
			attempts = 1
		}
		c.retryAttempts = attempts
		c.retryDelay = delay
	}
}

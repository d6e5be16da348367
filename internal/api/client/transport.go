package client

import (
	"net"
	"net/http"
	"time"

	"github.com/bz888/docask/internal/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const RequestIDHeader = "X-Request-ID"

func newHTTPClient(cfg *httpConfig) *http.Client {
	dialer := net.Dialer{
		Timeout:   cfg.connTimeout,
		KeepAlive: cfg.keepAlive,
	}

	var transport http.RoundTripper = &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		TLSHandshakeTimeout:   cfg.tlsHandshakeTimeout,
		ResponseHeaderTimeout: cfg.responseHeaderTimeout,
		IdleConnTimeout:       cfg.idleConnTimeout,
		MaxIdleConnsPerHost:   cfg.maxIdleConnsPerHost,
	}

	for _, wrap := range cfg.transports {
		transport = wrap(transport)
	}

	return &http.Client{
		Timeout:   cfg.requestTimeout,
		Transport: transport,
	}
}

type authTransport struct {
	token     string
	transport http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	reqCopy := req.Clone(req.Context())
	reqCopy.Header.Set("Authorization", "Bearer "+t.token)
	return t.transport.RoundTrip(reqCopy)
}

// WithAuthToken sends a bearer token on every request. An empty token is a no-op.
func WithAuthToken(token string) Option {
	if token == "" {
		return func(*httpConfig) {}
	}
	return WithTransport(func(rt http.RoundTripper) http.RoundTripper {
		return &authTransport{token: token, transport: rt}
	})
}

type logTransport struct {
	log       *logger.Logger
	transport http.RoundTripper
}

func (t *logTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	fields := []zap.Field{
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.String("request_id", req.Header.Get(RequestIDHeader)),
	}

	resp, err := t.transport.RoundTrip(req)
	fields = append(fields, zap.Duration("elapsed", time.Since(start)))
	if err != nil {
		t.log.Warn("outbound request failed", append(fields, zap.Error(err))...)
		return nil, err
	}

	t.log.Info("outbound request", append(fields, zap.Int("status", resp.StatusCode))...)
	return resp, nil
}

// WithRequestLogging logs method, URL, request id, status and latency of every request.
func WithRequestLogging(log *logger.Logger) Option {
	return WithTransport(func(rt http.RoundTripper) http.RoundTripper {
		return &logTransport{log: log, transport: rt}
	})
}

func newRequestID() string {
	return uuid.NewString()
}

package httpclient

import (
	"net"
	"net/http"
	"time"
)

// Config tunes the outbound client used for third-party gateways.
type Config struct {
	Timeout         time.Duration
	MaxConnsPerHost int
}

// DefaultConfig suits short request/response calls to payment and
// messaging APIs.
func DefaultConfig() Config {
	return Config{
		Timeout:         15 * time.Second,
		MaxConnsPerHost: 20,
	}
}

// New returns an *http.Client with bounded dial, TLS and total timeouts.
// It never retries: gateway calls that create resources must run at most once.
func New(cfg Config) *http.Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          50,
		MaxIdleConnsPerHost:   cfg.MaxConnsPerHost,
		MaxConnsPerHost:       cfg.MaxConnsPerHost,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: time.Second,
	}
	return &http.Client{Transport: transport, Timeout: cfg.Timeout}
}

package ownhttp

import (
	"net"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// UserAgent is sent with every request
const UserAgent = "mcfetch (https://github.com/minepkg/mcfetch)"

// NewTransport returns a transport that keeps enough idle connections around
// for a full wave of concurrent downloads from the same host
func NewTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   32,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   20 * time.Second,
		ResponseHeaderTimeout: 60 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
}

// New returns a new http.Client with the AddHeaderTransport (setting the User-Agent header)
func New() *http.Client {
	return &http.Client{Transport: NewAddHeaderTransport(nil)}
}

// NewThrottled returns a client like New that starts at most perSecond requests per second.
// A perSecond of 0 or less disables throttling
func NewThrottled(perSecond float64) *http.Client {
	if perSecond <= 0 {
		return New()
	}
	limiter := rate.NewLimiter(rate.Limit(perSecond), burst(perSecond))
	return &http.Client{Transport: NewAddHeaderTransport(NewThrottleTransport(nil, limiter))}
}

func burst(perSecond float64) int {
	if perSecond < 1 {
		return 1
	}
	return int(perSecond)
}

// AddHeaderTransport sets the User-Agent header on all requests that do not have one
type AddHeaderTransport struct {
	T http.RoundTripper
}

func (adt *AddHeaderTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		// RoundTrippers should not modify the request
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", UserAgent)
	}
	return adt.T.RoundTrip(req)
}

func NewAddHeaderTransport(T http.RoundTripper) *AddHeaderTransport {
	if T == nil {
		T = NewTransport()
	}
	return &AddHeaderTransport{T}
}

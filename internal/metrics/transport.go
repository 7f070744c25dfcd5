package metrics

import (
	"net/http"
	"regexp"
	"strconv"
	"time"
)

// numericSegment is a compiled regex that matches numeric path segments
// It's compiled once at package init time for efficiency
var numericSegment = regexp.MustCompile(`/(\d+)`)

// NormalizePath collapses numeric path segments into ":id" so metric label
// cardinality stays bounded regardless of how many resources exist.
func NormalizePath(path string) string {
	return numericSegment.ReplaceAllString(path, "/:id")
}

// Transport is an http.RoundTripper that records Prometheus metrics for
// each outgoing request. It tracks:
// - Request count by method, normalized path, and status code
// - Request duration (latency)
// - Transport-level failures are recorded with status "error"
type Transport struct {
	Base http.RoundTripper
}

// NewTransport wraps base with request instrumentation. A nil base uses
// http.DefaultTransport.
func NewTransport(base http.RoundTripper) *Transport {
	return &Transport{Base: base}
}

// RoundTrip implements http.RoundTripper interface
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	startTime := time.Now()

	resp, err := t.base().RoundTrip(req)

	duration := time.Since(startTime).Seconds()
	path := NormalizePath(req.URL.Path)

	status := "error"
	if err == nil {
		status = strconv.Itoa(resp.StatusCode)
	}

	RecordRequest(req.Method, path, status)
	RecordRequestDuration(req.Method, path, status, duration)

	return resp, err
}

// base returns the underlying transport or DefaultTransport if nil
func (t *Transport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

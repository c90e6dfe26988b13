// Package httputil abstracts the HTTP transport behind the remote stores so
// tests can exercise request/response handling without a live backend.
package httputil

import (
	"bytes"
	"io"
	"net/http"
	"sync"
)

// Doer sends a single HTTP request. *http.Client satisfies it through
// StandardClient; tests use Mock.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// StandardClient wraps *http.Client to implement Doer.
type StandardClient struct {
	*http.Client
}

// NewStandardClient wraps c, defaulting to http.DefaultClient when nil.
func NewStandardClient(c *http.Client) *StandardClient {
	if c == nil {
		c = http.DefaultClient
	}
	return &StandardClient{Client: c}
}

// Mock is a Doer that records requests and replays canned responses in
// order. Once the queue is exhausted it returns empty 200 responses.
type Mock struct {
	mu       sync.Mutex
	requests []*http.Request
	bodies   []string
	queue    []canned
	next     int
}

type canned struct {
	status int
	body   string
	err    error
}

// NewMock creates an empty mock transport.
func NewMock() *Mock {
	return &Mock{}
}

// Reply queues a response with the given status and body. Returns the mock
// for chaining.
func (m *Mock) Reply(status int, body string) *Mock {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, canned{status: status, body: body})
	return m
}

// Fail queues a transport-level failure.
func (m *Mock) Fail(err error) *Mock {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, canned{err: err})
	return m
}

// Do records the request (including a copy of its body) and pops the next
// canned response.
func (m *Mock) Do(req *http.Request) (*http.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var body []byte
	if req.Body != nil {
		body, _ = io.ReadAll(req.Body)
		req.Body.Close()
	}
	m.requests = append(m.requests, req)
	m.bodies = append(m.bodies, string(body))

	if m.next >= len(m.queue) {
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(bytes.NewReader(nil)),
			Header:     make(http.Header),
			Request:    req,
		}, nil
	}

	c := m.queue[m.next]
	m.next++
	if c.err != nil {
		return nil, c.err
	}
	return &http.Response{
		StatusCode: c.status,
		Body:       io.NopCloser(bytes.NewBufferString(c.body)),
		Header:     make(http.Header),
		Request:    req,
	}, nil
}

// Request returns the nth recorded request, or nil when out of range.
func (m *Mock) Request(n int) *http.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n < 0 || n >= len(m.requests) {
		return nil
	}
	return m.requests[n]
}

// Body returns the recorded body of the nth request.
func (m *Mock) Body(n int) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n < 0 || n >= len(m.bodies) {
		return ""
	}
	return m.bodies[n]
}

// Count reports how many requests have been recorded.
func (m *Mock) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

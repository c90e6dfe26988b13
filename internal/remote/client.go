// Package remote is the JSON client for the dashboard backend: bed CRUD
// scoped by plot, the plot collection itself, spatial-map uploads and the
// rover collection trigger. The client never retries; every failed call
// surfaces as a *RemoteError and retry policy stays with the caller.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/florisys/field.report/internal/httputil"
)

// DefaultBaseURL is used when no dashboard URL has been configured.
const DefaultBaseURL = "http://localhost:8000"

// Client talks to one dashboard backend. The zero value is not usable;
// construct with NewClient.
type Client struct {
	base string
	http httputil.Doer
}

// NewClient builds a client for the given base URL. An empty base falls
// back to DefaultBaseURL; trailing slashes are trimmed. A nil Doer uses
// http.DefaultClient.
func NewClient(base string, d httputil.Doer) *Client {
	if strings.TrimSpace(base) == "" {
		base = DefaultBaseURL
	}
	if d == nil {
		d = httputil.NewStandardClient(nil)
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: d,
	}
}

// BaseURL returns the normalized base URL the client was built with.
func (c *Client) BaseURL() string {
	return c.base
}

// RemoteError describes a failed remote-store call: either a non-success
// HTTP status (Status > 0) or a transport failure (Err set, Status 0). It
// carries no retry metadata.
type RemoteError struct {
	Op     string // operation, e.g. "create bed"
	URL    string
	Status int
	Err    error
}

func (e *RemoteError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("remote: %s %s: %v", e.Op, e.URL, e.Err)
	}
	return fmt.Sprintf("remote: %s %s: unexpected status %d", e.Op, e.URL, e.Status)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// doJSON performs one request. A non-nil in is encoded as a JSON body; a
// non-nil out receives the decoded response body.
func (c *Client) doJSON(ctx context.Context, op, method, url string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return &RemoteError{Op: op, URL: url, Err: err}
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return &RemoteError{Op: op, URL: url, Err: err}
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, op, out)
}

// send dispatches a prepared request and decodes the response into out.
func (c *Client) send(req *http.Request, op string, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return &RemoteError{Op: op, URL: req.URL.String(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so keep-alive connections can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return &RemoteError{Op: op, URL: req.URL.String(), Status: resp.StatusCode}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &RemoteError{Op: op, URL: req.URL.String(), Err: err}
	}
	return nil
}

package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout is the per-request timeout applied by NewClient when none is given.
const DefaultTimeout = 2 * time.Minute

// HTTPError carries status/body for non-2xx responses.
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Header     http.Header
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http error: %s %s status=%d body=%s", e.Method, e.URL, e.StatusCode, snippet(e.Body, 900))
}

// ContentTypeError is returned when a JSON endpoint answers with something else
// (typically an HTML login or error page).
type ContentTypeError struct {
	URL         string
	ContentType string
	Body        []byte
}

func (e *ContentTypeError) Error() string {
	return fmt.Sprintf("expected JSON response from %s, got content-type %q body=%s", e.URL, e.ContentType, snippet(e.Body, 300))
}

// DecodeError wraps a JSON parse failure together with the offending body.
type DecodeError struct {
	URL  string
	Body []byte
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("json parse error from %s: %v body=%s", e.URL, e.Err, snippet(e.Body, 300))
}

func (e *DecodeError) Unwrap() error { return e.Err }

func snippet(b []byte, max int) string {
	s := strings.TrimSpace(string(b))
	if len(s) <= max {
		return s
	}
	return s[:max] + "…"
}

// NewClient returns an http.Client with the given transport and timeout.
// A nil transport means http.DefaultTransport; timeout <= 0 means DefaultTimeout.
func NewClient(tr http.RoundTripper, timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout, Transport: tr}
}

// Do executes one request built by buildReq. There is no retry: the first failure is
// returned to the caller. The body is always read fully so the connection can be reused.
func Do(
	ctx context.Context,
	client *http.Client,
	buildReq func(context.Context) (*http.Request, error),
) (*http.Response, []byte, error) {
	req, err := buildReq(ctx)
	if err != nil {
		return nil, nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}

	body, err := readAndClose(resp.Body)
	if err != nil {
		return resp, body, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp, body, &HTTPError{
			Method:     req.Method,
			URL:        req.URL.String(),
			StatusCode: resp.StatusCode,
			Header:     resp.Header.Clone(),
			Body:       body,
		}
	}
	return resp, body, nil
}

func readAndClose(rc io.ReadCloser) ([]byte, error) {
	defer rc.Close()
	return io.ReadAll(rc)
}

// IsJSONContentType reports whether a Content-Type header value denotes JSON.
func IsJSONContentType(v string) bool {
	mt, _, err := mime.ParseMediaType(v)
	if err != nil {
		return false
	}
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}

// GetJSON runs Do, requires a JSON content type and unmarshals the body into out.
// Numbers are decoded as json.Number so integer ids survive untouched.
func GetJSON(
	ctx context.Context,
	client *http.Client,
	buildReq func(context.Context) (*http.Request, error),
	out any,
) error {
	resp, body, err := Do(ctx, client, buildReq)
	if err != nil {
		return err
	}

	u := resp.Request.URL.String()
	if ct := resp.Header.Get("Content-Type"); !IsJSONContentType(ct) {
		return &ContentTypeError{URL: u, ContentType: ct, Body: body}
	}
	if out == nil {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return &DecodeError{URL: u, Body: body, Err: err}
	}
	return nil
}

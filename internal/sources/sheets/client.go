// Package sheets is the client for the spreadsheet-backed JSON API (source A).
package sheets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"crub-courses/internal/httpx"
	"crub-courses/internal/sources"
)

const (
	TableAssignments  = "materias_equipo"
	TableDesignations = "designaciones_docentes"
)

type Client struct {
	BaseURL string
	Secret  string
	HTTP    *http.Client
	Log     *zap.Logger
}

func New(baseURL, secret string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		BaseURL: baseURL,
		Secret:  secret,
		HTTP:    httpx.NewClient(nil, timeout),
		Log:     logger.With(zap.String("source", "sheets")),
	}
}

func (c *Client) Name() string { return "sheets" }

// FetchTable returns every row of the named sheet.
func (c *Client) FetchTable(ctx context.Context, table string) ([]sources.Record, error) {
	q := url.Values{}
	q.Set("sheet", table)
	rows, err := c.list(ctx, q)
	if err != nil {
		return nil, err
	}
	c.Log.Info("fetched sheet", zap.String("sheet", table), zap.Int("rows", len(rows)))
	return rows, nil
}

// SearchByFilter passes the filters through as query parameters.
func (c *Client) SearchByFilter(ctx context.Context, filters map[string]string) ([]sources.Record, error) {
	q := url.Values{}
	for k, v := range filters {
		q.Set(k, v)
	}
	return c.list(ctx, q)
}

// Sheets lists the sheet names the API exposes (action=getSheets).
func (c *Client) Sheets(ctx context.Context) ([]string, error) {
	q := url.Values{}
	q.Set("action", "getSheets")
	request := q.Encode()

	payload, err := c.get(ctx, q)
	if err != nil {
		return nil, err
	}
	obj, ok := payload.(map[string]any)
	if !ok {
		return nil, sources.NewFetchError(c.Name(), request, sources.KindDecode,
			fmt.Errorf("unexpected response format for getSheets: %T", payload))
	}
	raw, ok := obj["sheets"].([]any)
	if !ok {
		return nil, sources.NewFetchError(c.Name(), request, sources.KindDecode,
			errors.New("unexpected response format for getSheets: missing sheets array"))
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (c *Client) list(ctx context.Context, q url.Values) ([]sources.Record, error) {
	request := q.Encode()
	payload, err := c.get(ctx, q)
	if err != nil {
		return nil, err
	}
	arr, ok := payload.([]any)
	if !ok {
		return nil, sources.NewFetchError(c.Name(), request, sources.KindDecode,
			fmt.Errorf("expected list response, got %T", payload))
	}
	out := make([]sources.Record, 0, len(arr))
	for i, v := range arr {
		rec, ok := v.(map[string]any)
		if !ok {
			return nil, sources.NewFetchError(c.Name(), request, sources.KindDecode,
				fmt.Errorf("row %d is %T, not an object", i, v))
		}
		out = append(out, rec)
	}
	return out, nil
}

// get performs the request and surfaces {"status":"error"} payloads as api errors.
// The request identity used in errors never includes the secret.
func (c *Client) get(ctx context.Context, q url.Values) (any, error) {
	request := q.Encode()

	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, sources.NewFetchError(c.Name(), request, sources.KindTransport, fmt.Errorf("invalid base url: %w", err))
	}
	full := u.Query()
	for k, vs := range q {
		for _, v := range vs {
			full.Add(k, v)
		}
	}
	full.Set("secret", c.Secret)
	u.RawQuery = full.Encode()

	c.Log.Debug("sheets request", zap.String("request", request))

	var payload any
	err = httpx.GetJSON(ctx, c.HTTP, func(ctx context.Context) (*http.Request, error) {
		r, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return nil, err
		}
		r.Header.Set("Accept", "application/json")
		return r, nil
	}, &payload)
	if err != nil {
		return nil, sources.Classify(c.Name(), request, redact(err, c.Secret))
	}

	if obj, ok := payload.(map[string]any); ok {
		if status, _ := obj["status"].(string); status == "error" {
			msg, _ := obj["message"].(string)
			if msg == "" {
				msg = "Unknown error"
			}
			return nil, sources.NewFetchError(c.Name(), request, sources.KindAPI, fmt.Errorf("API Error: %s", msg))
		}
	}
	return payload, nil
}

// redact hides the shared secret from URLs carried by transport and httpx errors.
func redact(err error, secret string) error {
	if secret == "" {
		return err
	}
	var (
		uerr  *url.Error
		herr  *httpx.HTTPError
		cterr *httpx.ContentTypeError
		derr  *httpx.DecodeError
	)
	switch {
	case errors.As(err, &uerr):
		uerr.URL = stripSecret(uerr.URL)
	case errors.As(err, &herr):
		herr.URL = stripSecret(herr.URL)
	case errors.As(err, &cterr):
		cterr.URL = stripSecret(cterr.URL)
	case errors.As(err, &derr):
		derr.URL = stripSecret(derr.URL)
	}
	return err
}

func stripSecret(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	if !q.Has("secret") {
		return raw
	}
	q.Set("secret", "xxxxx")
	u.RawQuery = q.Encode()
	return u.String()
}

var _ sources.TableSource = (*Client)(nil)

// Package huayca is the client for the academic-records REST API (source B).
// The server uses a self-signed certificate and HTTP digest authentication.
package huayca

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/icholy/digest"
	"go.uber.org/zap"

	"crub-courses/internal/httpx"
	"crub-courses/internal/sources"
)

// TableMaterias is the course-details resource.
const TableMaterias = "materias"

type Client struct {
	BaseURL string
	HTTP    *http.Client
	Log     *zap.Logger
}

// Options configures New.
type Options struct {
	Username string
	Password string
	// InsecureSkipVerify disables certificate validation for the self-signed remote.
	InsecureSkipVerify bool
	Timeout            time.Duration
	Logger             *zap.Logger
}

func New(baseURL string, opts Options) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	base := http.DefaultTransport.(*http.Transport).Clone()
	base.TLSHandshakeTimeout = 10 * time.Second
	if opts.InsecureSkipVerify {
		base.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // remote uses a self-signed certificate
	}
	tr := &digest.Transport{
		Username:  opts.Username,
		Password:  opts.Password,
		Transport: base,
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    httpx.NewClient(tr, opts.Timeout),
		Log:     logger.With(zap.String("source", "huayca")),
	}
}

func (c *Client) Name() string { return "huayca" }

// FetchTable fetches every record of a resource below BaseURL. An empty table name
// requests BaseURL itself.
func (c *Client) FetchTable(ctx context.Context, table string) ([]sources.Record, error) {
	rows, err := c.get(ctx, table, nil)
	if err != nil {
		return nil, err
	}
	c.Log.Info("fetched huayca resource", zap.String("table", table), zap.Int("rows", len(rows)))
	return rows, nil
}

// SearchByFilter queries the materias resource with the given filters
// (e.g. cod_carrera, optativa).
func (c *Client) SearchByFilter(ctx context.Context, filters map[string]string) ([]sources.Record, error) {
	q := url.Values{}
	for k, v := range filters {
		q.Set(k, v)
	}
	rows, err := c.get(ctx, TableMaterias, q)
	if err != nil {
		return nil, err
	}
	c.Log.Info("searched huayca materias", zap.String("filters", q.Encode()), zap.Int("rows", len(rows)))
	return rows, nil
}

// Materias returns all course detail records.
func (c *Client) Materias(ctx context.Context) ([]sources.Record, error) {
	return c.FetchTable(ctx, TableMaterias)
}

// ByCareer returns the courses of one career code.
func (c *Client) ByCareer(ctx context.Context, careerCode string) ([]sources.Record, error) {
	return c.SearchByFilter(ctx, map[string]string{"cod_carrera": careerCode})
}

// Electives returns the elective courses.
func (c *Client) Electives(ctx context.Context) ([]sources.Record, error) {
	return c.SearchByFilter(ctx, map[string]string{"optativa": "SI"})
}

func (c *Client) get(ctx context.Context, table string, q url.Values) ([]sources.Record, error) {
	request := table
	if len(q) > 0 {
		request += "?" + q.Encode()
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, sources.NewFetchError(c.Name(), request, sources.KindTransport, fmt.Errorf("invalid base url: %w", err))
	}
	if table != "" {
		u = u.JoinPath(table)
	}
	u.RawQuery = q.Encode()

	c.Log.Debug("huayca request", zap.String("request", request))

	var rows []sources.Record
	err = httpx.GetJSON(ctx, c.HTTP, func(ctx context.Context) (*http.Request, error) {
		r, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return nil, err
		}
		r.Header.Set("Accept", "application/json")
		return r, nil
	}, &rows)
	if err != nil {
		return nil, sources.Classify(c.Name(), request, err)
	}
	if rows == nil {
		// "null" decodes to a nil slice; only an array is a valid answer.
		return nil, sources.NewFetchError(c.Name(), request, sources.KindDecode, fmt.Errorf("expected list response, got null"))
	}
	return rows, nil
}

var _ sources.TableSource = (*Client)(nil)

package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"crub-courses/internal/service"
	"crub-courses/internal/sources"
	"crub-courses/internal/sources/huayca"
	"crub-courses/internal/sources/sheets"
)

type stubSource struct {
	mu     sync.Mutex
	tables map[string][]sources.Record
	err    error
	calls  int
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) FetchTable(ctx context.Context, table string) ([]sources.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.tables[table], nil
}

func (s *stubSource) SearchByFilter(ctx context.Context, filters map[string]string) ([]sources.Record, error) {
	return nil, nil
}

func (s *stubSource) Sheets(ctx context.Context) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []string{sheets.TableAssignments, sheets.TableDesignations}, nil
}

const (
	adminUser = "admin"
	adminPass = "s3cret"
)

func newTestAPI(t *testing.T) (*httptest.Server, *stubSource, *stubSource) {
	t.Helper()
	sheetSrc := &stubSource{tables: map[string][]sources.Record{
		sheets.TableAssignments: {
			{"id_redesignacion": 1, "Materia": "Zoología", "Cod SIU": "101", "Período": "1CUAT", "Docente": "Pérez, Ana", "Legajo": "10", "Desig": "D1", "Rol": "Resp", "Carrera": "Lic. en Biología"},
			{"id_redesignacion": 2, "Materia": "Zoología", "Cod SIU": "101", "Período": "1CUAT", "Docente": "Gómez, Luis", "Legajo": "11", "Desig": "D2", "Rol": "Aux", "Carrera": "Lic. en Biología"},
		},
		sheets.TableDesignations: {
			{"D Desig": "D1", "Apellido y Nombre": "Pérez, Ana", "Departamento": "Biología"},
			{"D Desig": "D2", "Apellido y Nombre": "Gómez, Luis"},
		},
	}}
	detailSrc := &stubSource{tables: map[string][]sources.Record{
		huayca.TableMaterias: {{"cod_guarani": "101", "depto": "Biología"}},
	}}
	svc := service.New(sheetSrc, detailSrc, service.Options{})
	router := NewRouter(NewHandler(svc, zap.NewNop()), Credentials{User: adminUser, Pass: adminPass}, zap.NewNop())
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, sheetSrc, detailSrc
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func TestRoutes(t *testing.T) {
	srv, _, _ := newTestAPI(t)

	testCases := []struct {
		path     string
		status   int
		contains string
	}{
		{"/health", http.StatusOK, `"status":"healthy"`},
		{"/api/courses", http.StatusOK, `"cod_siu":"101"`},
		{"/api/courses?department=biolog%C3%ADa", http.StatusOK, `"team_members"`},
		{"/api/courses/101/1CUAT", http.StatusOK, `"materia":"Zoología"`},
		{"/api/courses/101/ANUAL", http.StatusNotFound, `"code":"NOT_FOUND"`},
		{"/api/departments", http.StatusOK, `["Biología"]`},
		{"/api/summary", http.StatusOK, `"total_courses":1`},
		{"/api/data-status", http.StatusOK, `"faculty_match_rate":100`},
		{"/designaciones", http.StatusOK, `"total_docentes":2`},
		{"/designaciones/flat", http.StatusOK, `"total_materias_asignadas":2`},
		{"/designaciones/by-desig/D2", http.StatusOK, `"apellido_y_nombre":"Gómez, Luis"`},
		{"/designaciones/by-desig/D9", http.StatusNotFound, `"NOT_FOUND"`},
		{"/designaciones/p%C3%A9rez", http.StatusOK, `"total_designaciones":1`},
		{"/designaciones/nadie", http.StatusNotFound, `"NOT_FOUND"`},
		{"/api/departamentos", http.StatusOK, `"total_departamentos":2`},
		{"/api/departamentos/sin%20departamento", http.StatusOK, `"nombre":"SIN DEPARTAMENTO"`},
		{"/api/departamentos/F%C3%ADsica", http.StatusNotFound, `"NOT_FOUND"`},
		{"/nope", http.StatusNotFound, `"route not found"`},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			resp, body := get(t, srv.URL+tc.path)
			assert.Equal(t, tc.status, resp.StatusCode, string(body))
			assert.Contains(t, string(body), tc.contains)
			assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
		})
	}
}

func TestSourceFailureIs503(t *testing.T) {
	srv, sheetSrc, _ := newTestAPI(t)
	sheetSrc.err = sources.NewFetchError("sheets", "sheet=materias_equipo", sources.KindStatus, errors.New("HTTP 500"))

	resp, body := get(t, srv.URL+"/api/courses")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	var eb errorBody
	require.NoError(t, json.Unmarshal(body, &eb))
	assert.Equal(t, "SOURCE_UNAVAILABLE", eb.Error.Code)
	assert.Contains(t, eb.Error.Message, "HTTP 500")

	resp, body = get(t, srv.URL+"/health")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Contains(t, string(body), `"status":"unhealthy"`)
}

func TestAdminRoutes(t *testing.T) {
	srv, _, detailSrc := newTestAPI(t)

	_, _ = get(t, srv.URL+"/api/summary")
	require.Equal(t, 1, detailSrc.calls)

	req, _ := http.NewRequest(http.MethodPost, srv.URL+"/admin/cache/clear", nil)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("WWW-Authenticate"), "Basic")

	req, _ = http.NewRequest(http.MethodPost, srv.URL+"/admin/cache/clear", nil)
	req.SetBasicAuth(adminUser, "wrong")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req, _ = http.NewRequest(http.MethodPost, srv.URL+"/admin/cache/clear", nil)
	req.SetBasicAuth(adminUser, adminPass)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"loaded":false`)

	_, _ = get(t, srv.URL+"/api/summary")
	assert.Equal(t, 2, detailSrc.calls, "details refetched after clear")

	req, _ = http.NewRequest(http.MethodGet, srv.URL+"/admin/stats", nil)
	req.SetBasicAuth(adminUser, adminPass)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"name":"huayca_materias"`)
	assert.Contains(t, string(body), `"huayca_materias_count":1`)
}

func TestBrotliCompression(t *testing.T) {
	srv, _, _ := newTestAPI(t)

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/summary", nil)
	req.Header.Set("Accept-Encoding", "gzip, br")
	// A custom transport keeps net/http from negotiating gzip on its own.
	client := &http.Client{Transport: &http.Transport{DisableCompression: true}}
	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "br", resp.Header.Get("Content-Encoding"))
	plain, err := io.ReadAll(brotli.NewReader(resp.Body))
	require.NoError(t, err)
	assert.Contains(t, string(plain), `"total_courses":1`)
}

func TestAcceptsBrotli(t *testing.T) {
	testCases := []struct {
		header   string
		expected bool
	}{
		{"", false},
		{"gzip", false},
		{"br", true},
		{"gzip, deflate, br", true},
		{"BR;q=0.5", true},
		{"br;q=0", false},
	}
	for _, tc := range testCases {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Accept-Encoding", tc.header)
		if got := acceptsBrotli(r); got != tc.expected {
			t.Errorf("acceptsBrotli(%q) = %v, want %v", tc.header, got, tc.expected)
		}
	}
}

func TestRequestIDPropagation(t *testing.T) {
	srv, _, _ := newTestAPI(t)

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/departments", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "abc-123", resp.Header.Get("X-Request-ID"))
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _, _ := newTestAPI(t)
	_, _ = get(t, srv.URL+"/api/courses/101/1CUAT")

	resp, body := get(t, srv.URL+"/metrics")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	text := string(body)
	assert.True(t, strings.Contains(text, `route="/api/courses/{code}/{period}"`), "route pattern label missing")
	assert.Contains(t, text, "crub_cache_fetches_total")
}

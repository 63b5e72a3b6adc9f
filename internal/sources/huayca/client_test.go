package huayca

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crub-courses/internal/sources"
)

const (
	testUser = "usuario1"
	testPass = "clave"
)

// digestServer challenges unauthenticated requests and serves body for authenticated ones.
func digestServer(t *testing.T, calls *int32, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		auth := r.Header.Get("Authorization")
		if !strings.HasPrefix(auth, "Digest ") {
			w.Header().Set("WWW-Authenticate", `Digest realm="huayca", nonce="dcd98b7102dd2f0e8b11d0f600bfb0c093", qop="auth", algorithm=MD5`)
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if !strings.Contains(auth, `username="`+testUser+`"`) {
			t.Errorf("Expected digest username %q in %q", testUser, auth)
		}
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newClient(srv *httptest.Server, insecure bool) *Client {
	return New(srv.URL+"/catedras/1.0/rest", Options{
		Username:           testUser,
		Password:           testPass,
		InsecureSkipVerify: insecure,
		Timeout:            5 * time.Second,
	})
}

func TestMateriasWithDigestAuth(t *testing.T) {
	var calls int32
	srv := digestServer(t, &calls, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/catedras/1.0/rest/materias", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id_materia": 7, "cod_guarani": "101", "depto": "Biología", "optativa": "NO"}]`))
	})

	rows, err := newClient(srv, true).Materias(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "101", rows[0]["cod_guarani"])
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls), "one challenge plus one authenticated request")
}

func TestSearchByFilter(t *testing.T) {
	var calls int32
	srv := digestServer(t, &calls, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "LIC-BIO", r.URL.Query().Get("cod_carrera"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	})

	rows, err := newClient(srv, true).ByCareer(context.Background(), "LIC-BIO")
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.NotNil(t, rows)
}

func TestCertificateValidation(t *testing.T) {
	var calls int32
	srv := digestServer(t, &calls, func(w http.ResponseWriter, r *http.Request) {})

	_, err := newClient(srv, false).Materias(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, sources.ErrTransport), "expected transport error, got %v", err)
}

func TestFetchErrors(t *testing.T) {
	testCases := []struct {
		name     string
		handler  http.HandlerFunc
		sentinel error
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusBadGateway)
			},
			sentinel: sources.ErrStatus,
		},
		{
			name: "not json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/html")
				w.Write([]byte("<html></html>"))
			},
			sentinel: sources.ErrContentType,
		},
		{
			name: "object instead of list",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"error": "bad filter"}`))
			},
			sentinel: sources.ErrDecode,
		},
		{
			name: "null",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`null`))
			},
			sentinel: sources.ErrDecode,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var calls int32
			srv := digestServer(t, &calls, tc.handler)

			_, err := newClient(srv, true).Electives(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, sources.ErrFetch)
			assert.ErrorIs(t, err, tc.sentinel)

			var fe *sources.FetchError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, "huayca", fe.Source)
			assert.Equal(t, "materias?optativa=SI", fe.Request)
		})
	}
}

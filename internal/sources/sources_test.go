package sources

import (
	"context"
	"errors"
	"testing"

	"crub-courses/internal/httpx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		kind     Kind
		sentinel error
	}{
		{"transport", errors.New("dial tcp: connection refused"), KindTransport, ErrTransport},
		{"deadline", context.DeadlineExceeded, KindTransport, ErrTransport},
		{"status", &httpx.HTTPError{StatusCode: 500}, KindStatus, ErrStatus},
		{"content type", &httpx.ContentTypeError{ContentType: "text/html"}, KindContentType, ErrContentType},
		{"decode", &httpx.DecodeError{Err: errors.New("unexpected EOF")}, KindDecode, ErrDecode},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := Classify("sheets", "materias_equipo", tc.err)
			require.Error(t, err)

			var fe *FetchError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tc.kind, fe.Kind)
			assert.Equal(t, "sheets", fe.Source)
			assert.Equal(t, "materias_equipo", fe.Request)
			assert.ErrorIs(t, err, ErrFetch)
			assert.ErrorIs(t, err, tc.sentinel)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestClassifyKeepsFetchError(t *testing.T) {
	orig := NewFetchError("huayca", "materias", KindAPI, errors.New("boom"))
	err := Classify("other", "other", orig)

	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Same(t, orig, fe)
	assert.ErrorIs(t, err, ErrAPI)
	assert.NotErrorIs(t, err, ErrStatus)
}

func TestClassifyNil(t *testing.T) {
	assert.NoError(t, Classify("sheets", "x", nil))
}

// Package sources defines the contract shared by the external record sources and the
// error taxonomy every client maps its failures into.
package sources

import (
	"context"
	"errors"
	"fmt"

	"crub-courses/internal/httpx"
)

// Record is one raw row as returned by a source. Field names are the source's own.
type Record = map[string]any

// TableSource is implemented by every source client.
type TableSource interface {
	Name() string
	FetchTable(ctx context.Context, table string) ([]Record, error)
	SearchByFilter(ctx context.Context, filters map[string]string) ([]Record, error)
}

// Kind classifies a fetch failure.
type Kind string

const (
	KindTransport   Kind = "transport"
	KindStatus      Kind = "status"
	KindContentType Kind = "content_type"
	KindDecode      Kind = "decode"
	KindAPI         Kind = "api"
)

var (
	ErrFetch       = errors.New("source fetch failed")
	ErrTransport   = errors.New("transport error")
	ErrStatus      = errors.New("non-2xx status")
	ErrContentType = errors.New("non-JSON content type")
	ErrDecode      = errors.New("invalid JSON payload")
	ErrAPI         = errors.New("source reported an error")
)

var kindSentinel = map[Kind]error{
	KindTransport:   ErrTransport,
	KindStatus:      ErrStatus,
	KindContentType: ErrContentType,
	KindDecode:      ErrDecode,
	KindAPI:         ErrAPI,
}

// FetchError is returned by every source client. Request identifies the call
// (table name or filter set) without credentials.
type FetchError struct {
	Source  string
	Request string
	Kind    Kind
	Err     error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: fetch %s failed (%s): %v", e.Source, e.Request, e.Kind, e.Err)
}

// Unwrap exposes ErrFetch, the kind sentinel and the cause to errors.Is/As.
func (e *FetchError) Unwrap() []error {
	errs := []error{ErrFetch}
	if s, ok := kindSentinel[e.Kind]; ok {
		errs = append(errs, s)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// NewFetchError builds a FetchError of an explicit kind.
func NewFetchError(source, request string, kind Kind, err error) *FetchError {
	return &FetchError{Source: source, Request: request, Kind: kind, Err: err}
}

// Classify wraps an error coming out of httpx into a FetchError of the matching kind.
// nil stays nil.
func Classify(source, request string, err error) error {
	if err == nil {
		return nil
	}
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe
	}

	kind := KindTransport
	var (
		herr  *httpx.HTTPError
		cterr *httpx.ContentTypeError
		derr  *httpx.DecodeError
	)
	switch {
	case errors.As(err, &herr):
		kind = KindStatus
	case errors.As(err, &cterr):
		kind = KindContentType
	case errors.As(err, &derr):
		kind = KindDecode
	}
	return NewFetchError(source, request, kind, err)
}

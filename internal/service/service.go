// Package service wires the source clients, field mapping, detail memo and the
// aggregation core into the read operations the REST and console front ends expose.
package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"crub-courses/internal/cache"
	"crub-courses/internal/domain"
	"crub-courses/internal/mappers"
	"crub-courses/internal/sources"
	"crub-courses/internal/sources/huayca"
	"crub-courses/internal/sources/sheets"
)

// SheetSource is the spreadsheet backend: tabular reads plus the sheet listing used
// as a health probe.
type SheetSource interface {
	sources.TableSource
	Sheets(ctx context.Context) ([]string, error)
}

type Options struct {
	Fields *mappers.Set
	Logger *zap.Logger
	Clock  func() time.Time
}

type Service struct {
	sheets  SheetSource
	details sources.TableSource
	fields  *mappers.Set
	memo    *cache.Memo[domain.Detail]
	log     *zap.Logger
	now     func() time.Time
}

func New(sheetSrc SheetSource, detailSrc sources.TableSource, opts Options) *Service {
	s := &Service{
		sheets:  sheetSrc,
		details: detailSrc,
		fields:  opts.Fields,
		log:     opts.Logger,
		now:     opts.Clock,
	}
	if s.fields == nil {
		s.fields = mappers.DefaultSet()
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.log = s.log.With(zap.String("component", "service"))
	s.memo = cache.New("huayca_materias", s.fetchDetails, cache.WithClock[domain.Detail](s.now))
	return s
}

func (s *Service) fetchDetails(ctx context.Context) ([]domain.Detail, error) {
	start := time.Now()
	recs, err := s.details.FetchTable(ctx, huayca.TableMaterias)
	if err != nil {
		return nil, err
	}
	s.log.Info("course details loaded",
		zap.Int("records", len(recs)),
		zap.Duration("elapsed", time.Since(start)))
	return s.fields.DetailsFrom(recs), nil
}

// snapshot is one consistent read of every source a view needs.
type snapshot struct {
	assignments  []domain.Assignment
	designations []domain.Designation
	details      []domain.Detail
}

type need uint8

const (
	needAssignments need = 1 << iota
	needDesignations
	needDetails
	needAll = needAssignments | needDesignations | needDetails
)

// load reads the requested sources concurrently. The first failure cancels the rest.
func (s *Service) load(ctx context.Context, n need) (snapshot, error) {
	var snap snapshot
	g, gctx := errgroup.WithContext(ctx)

	if n&needAssignments != 0 {
		g.Go(func() error {
			recs, err := s.sheets.FetchTable(gctx, sheets.TableAssignments)
			if err != nil {
				return fmt.Errorf("load assignments: %w", err)
			}
			snap.assignments = s.fields.AssignmentsFrom(recs)
			return nil
		})
	}
	if n&needDesignations != 0 {
		g.Go(func() error {
			recs, err := s.sheets.FetchTable(gctx, sheets.TableDesignations)
			if err != nil {
				return fmt.Errorf("load designations: %w", err)
			}
			snap.designations = s.fields.DesignationsFrom(recs)
			return nil
		})
	}
	if n&needDetails != 0 {
		g.Go(func() error {
			details, err := s.memo.Get(gctx)
			if err != nil {
				return fmt.Errorf("load course details: %w", err)
			}
			snap.details = details
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.log.Error("source read failed", zap.Error(err))
		return snapshot{}, err
	}
	return snap, nil
}

// Health lists the spreadsheet tabs; an error means source A is unreachable.
func (s *Service) Health(ctx context.Context) ([]string, error) {
	names, err := s.sheets.Sheets(ctx)
	if err != nil {
		return nil, fmt.Errorf("health: %w", err)
	}
	return names, nil
}

// InvalidateDetails drops the memoized course details.
func (s *Service) InvalidateDetails() {
	s.memo.Invalidate()
	s.log.Info("course detail cache cleared")
}

func (s *Service) CacheStatus() cache.Status {
	return s.memo.Status()
}

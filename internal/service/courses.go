package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"crub-courses/internal/aggregate"
	"crub-courses/internal/domain"
)

// CourseFilter narrows Courses. Empty fields match everything.
type CourseFilter struct {
	Department string
	Area       string
	Career     string
}

func (s *Service) buildCourses(snap snapshot) []domain.Course {
	courses := aggregate.DetectCourses(snap.assignments, s.log)
	faculty := aggregate.EnrichFaculty(courses, snap.designations, s.log)
	details := aggregate.EnrichDetails(courses, snap.details, s.log)
	s.log.Debug("courses built",
		zap.Int("courses", len(courses)),
		zap.Float64("faculty_match_pct", faculty.Rate()),
		zap.Float64("detail_match_pct", details.Rate()))
	return courses
}

// Courses returns every detected course with faculty and detail attached.
func (s *Service) Courses(ctx context.Context, f CourseFilter) ([]domain.Course, error) {
	snap, err := s.load(ctx, needAll)
	if err != nil {
		return nil, err
	}
	courses := s.buildCourses(snap)
	if strings.TrimSpace(f.Department) != "" {
		courses = aggregate.FilterByDepartment(courses, f.Department)
	}
	if strings.TrimSpace(f.Area) != "" {
		courses = aggregate.FilterByArea(courses, f.Area)
	}
	if strings.TrimSpace(f.Career) != "" {
		courses = aggregate.FilterByCareer(courses, f.Career)
	}
	return courses, nil
}

// Course returns one course; the error wraps domain.ErrNotFound when absent.
func (s *Service) Course(ctx context.Context, code string, period domain.Period) (domain.Course, error) {
	courses, err := s.Courses(ctx, CourseFilter{})
	if err != nil {
		return domain.Course{}, err
	}
	return aggregate.FindCourse(courses, code, period)
}

// CourseDepartments lists the departments known from course details.
func (s *Service) CourseDepartments(ctx context.Context) ([]string, error) {
	courses, err := s.Courses(ctx, CourseFilter{})
	if err != nil {
		return nil, err
	}
	return aggregate.CourseDepartments(courses), nil
}

func (s *Service) Summary(ctx context.Context) (domain.Summary, error) {
	courses, err := s.Courses(ctx, CourseFilter{})
	if err != nil {
		return domain.Summary{}, err
	}
	return aggregate.Summarize(courses), nil
}

// Status reports source sizes and match rates computed from a fresh read.
func (s *Service) Status(ctx context.Context) (domain.SourceStatus, error) {
	snap, err := s.load(ctx, needAll)
	if err != nil {
		return domain.SourceStatus{}, err
	}
	faculty, detail := aggregate.MatchRates(snap.assignments, snap.designations, snap.details)
	return domain.SourceStatus{
		AssignmentCount:  len(snap.assignments),
		DesignationCount: len(snap.designations),
		DetailCount:      len(snap.details),
		FacultyMatchRate: faculty,
		DetailMatchRate:  detail,
		DetailsLoadedAt:  s.memo.Status().LoadedAt,
		CheckedAt:        s.now(),
	}, nil
}

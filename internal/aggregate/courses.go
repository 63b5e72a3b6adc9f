// Package aggregate joins assignments, designations and course details into the
// course-centric and person-centric views served by the service layer.
package aggregate

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"crub-courses/internal/domain"
)

func orNop(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}

type courseKey struct {
	code   string
	period domain.Period
}

// DetectCourses partitions assignments by (course code, period). Courses come back in
// first-seen key order and each team keeps source order. Records with an empty code
// or period are dropped. Records with an unknown role or period are skipped with a
// warning, which is attached to their course when that course has valid records.
func DetectCourses(assignments []domain.Assignment, log *zap.Logger) []domain.Course {
	log = orNop(log).With(zap.String("component", "aggregate"))

	index := make(map[courseKey]int)
	pending := make(map[courseKey][]string)
	var courses []domain.Course
	skipped, invalid := 0, 0

	for _, a := range assignments {
		a.CourseCode = strings.TrimSpace(a.CourseCode)
		a.Period = domain.Period(strings.TrimSpace(string(a.Period)))
		if a.CourseCode == "" || a.Period == "" {
			skipped++
			log.Warn("assignment without course key",
				zap.Int("id", a.ID),
				zap.String("cod_siu", a.CourseCode),
				zap.String("periodo", string(a.Period)))
			continue
		}

		k := courseKey{a.CourseCode, a.Period}
		i, ok := index[k]

		if err := a.Validate(); err != nil {
			invalid++
			log.Warn("invalid assignment", zap.String("course", a.CourseCode+"_"+string(a.Period)), zap.Error(err))
			if ok {
				courses[i].Warnings = append(courses[i].Warnings, err.Error())
			} else {
				pending[k] = append(pending[k], err.Error())
			}
			continue
		}

		if !ok {
			i = len(courses)
			index[k] = i
			courses = append(courses, domain.Course{
				Code:     a.CourseCode,
				Name:     strings.TrimSpace(a.CourseName),
				Period:   a.Period,
				Career:   strings.TrimSpace(a.Career),
				Warnings: pending[k],
			})
			delete(pending, k)
		}
		c := &courses[i]

		if ok {
			if name := strings.TrimSpace(a.CourseName); name != "" && name != c.Name {
				w := fmt.Sprintf("assignment %d names the course %q, expected %q", a.ID, name, c.Name)
				log.Warn("inconsistent course name", zap.String("course", c.Key()), zap.Int("id", a.ID))
				c.Warnings = append(c.Warnings, w)
			}
			if career := strings.TrimSpace(a.Career); career != "" && career != c.Career {
				w := fmt.Sprintf("assignment %d lists career %q, expected %q", a.ID, career, c.Career)
				log.Warn("inconsistent course career", zap.String("course", c.Key()), zap.Int("id", a.ID))
				c.Warnings = append(c.Warnings, w)
			}
		}

		c.Team = append(c.Team, domain.TeamMember{Assignment: a})
	}

	log.Debug("courses detected",
		zap.Int("assignments", len(assignments)),
		zap.Int("courses", len(courses)),
		zap.Int("skipped", skipped),
		zap.Int("invalid", invalid))
	return courses
}

func FindCourse(courses []domain.Course, code string, period domain.Period) (domain.Course, error) {
	code = strings.TrimSpace(code)
	for _, c := range courses {
		if c.Code == code && c.Period == period {
			return c, nil
		}
	}
	return domain.Course{}, fmt.Errorf("%w: course %s %s", domain.ErrNotFound, code, period)
}

func filterCourses(courses []domain.Course, value string, field func(domain.Course) string) []domain.Course {
	out := make([]domain.Course, 0)
	for _, c := range courses {
		if strings.EqualFold(field(c), strings.TrimSpace(value)) {
			out = append(out, c)
		}
	}
	return out
}

// FilterByDepartment matches the detail-sourced department, ignoring case.
func FilterByDepartment(courses []domain.Course, department string) []domain.Course {
	return filterCourses(courses, department, domain.Course.Department)
}

func FilterByArea(courses []domain.Course, area string) []domain.Course {
	return filterCourses(courses, area, domain.Course.Area)
}

func FilterByCareer(courses []domain.Course, career string) []domain.Course {
	return filterCourses(courses, career, func(c domain.Course) string { return c.Career })
}

// CourseDepartments lists the distinct non-empty departments, sorted.
func CourseDepartments(courses []domain.Course) []string {
	seen := make(map[string]bool)
	var out []string
	for _, c := range courses {
		if d := c.Department(); d != "" && !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	sort.Strings(out)
	return out
}

func notFound(entity, key string) error {
	return fmt.Errorf("%w: %s %q", domain.ErrNotFound, entity, key)
}

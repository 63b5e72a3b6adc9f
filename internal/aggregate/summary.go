package aggregate

import (
	"strings"

	"crub-courses/internal/domain"
)

// NoCareer counts courses with a blank Carrera in the career histogram.
const NoCareer = "SIN CARRERA"

// Summarize computes headline statistics over enriched courses.
func Summarize(courses []domain.Course) domain.Summary {
	s := domain.Summary{
		TotalCourses:        len(courses),
		CoursesByDepartment: make(map[string]int),
		CoursesByPeriod:     make(map[string]int),
		CoursesByCareer:     make(map[string]int),
	}
	faculty := make(map[string]struct{})

	for _, c := range courses {
		s.TotalAssignments += len(c.Team)
		for _, m := range c.Team {
			if fn := strings.TrimSpace(m.FileNumber); fn != "" {
				faculty[fn] = struct{}{}
			}
			if m.Faculty == nil {
				s.FacultyWithoutDetails++
			}
		}
		if c.Detail == nil {
			s.CoursesWithoutDetail++
		}
		if dept := c.Department(); dept != "" {
			s.CoursesByDepartment[dept]++
		}
		s.CoursesByPeriod[string(c.Period)]++
		career := strings.TrimSpace(c.Career)
		if career == "" {
			career = NoCareer
		}
		s.CoursesByCareer[career]++
	}
	s.UniqueFaculty = len(faculty)
	return s
}

// MatchRates reports, as percentages, the share of assignments whose Desig exists in
// designations and the share of distinct course codes with a detail record.
func MatchRates(assignments []domain.Assignment, designations []domain.Designation, details []domain.Detail) (faculty, detail float64) {
	if len(assignments) == 0 {
		return 0, 0
	}

	if len(designations) > 0 {
		desigs := DesignationIndex(designations)
		matched := 0
		for _, a := range assignments {
			if _, ok := desigs[strings.TrimSpace(a.Desig)]; ok {
				matched++
			}
		}
		faculty = percent(matched, len(assignments))
	}

	if len(details) > 0 {
		codes := DetailIndex(details)
		seen := make(map[string]bool)
		matched := 0
		for _, a := range assignments {
			code := strings.TrimSpace(a.CourseCode)
			if code == "" || seen[code] {
				continue
			}
			seen[code] = true
			if _, ok := codes[code]; ok {
				matched++
			}
		}
		detail = percent(matched, len(seen))
	}
	return faculty, detail
}

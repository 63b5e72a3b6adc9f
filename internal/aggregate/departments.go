package aggregate

import (
	"sort"
	"strings"

	"crub-courses/internal/domain"
)

// NoDepartment groups designations with a blank Departamento.
const NoDepartment = "SIN DEPARTAMENTO"

// GroupByDepartment buckets designations by trimmed department. Each bucket is
// sorted by D Desig; equal keys keep input order.
func GroupByDepartment(designations []domain.Designation) map[string][]domain.Designation {
	groups := make(map[string][]domain.Designation)
	for _, d := range designations {
		dept := strings.TrimSpace(d.Department)
		if dept == "" {
			dept = NoDepartment
		}
		groups[dept] = append(groups[dept], d)
	}
	for _, ds := range groups {
		sort.SliceStable(ds, func(i, j int) bool { return ds[i].Desig < ds[j].Desig })
	}
	return groups
}

// DepartmentNames returns the group keys in ascending order.
func DepartmentNames(groups map[string][]domain.Designation) []string {
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FindDepartment looks a group up ignoring case.
func FindDepartment(groups map[string][]domain.Designation, name string) (string, []domain.Designation, error) {
	want := strings.TrimSpace(name)
	if ds, ok := groups[want]; ok {
		return want, ds, nil
	}
	for _, k := range DepartmentNames(groups) {
		if strings.EqualFold(k, want) {
			return k, groups[k], nil
		}
	}
	return "", nil, notFound("department", name)
}

// DepartmentSummary reports per-department totals, sorted by name. People are counted
// by trimmed person name.
func DepartmentSummary(groups map[string][]domain.Designation) []domain.DepartmentStats {
	stats := make([]domain.DepartmentStats, 0, len(groups))
	for _, name := range DepartmentNames(groups) {
		ds := groups[name]
		people := make(map[string]struct{})
		s := domain.DepartmentStats{Name: name, TotalDesignations: len(ds)}
		for _, d := range ds {
			people[strings.TrimSpace(d.PersonName)] = struct{}{}
			s.TotalCourses += len(d.Courses)
		}
		s.TotalPeople = len(people)
		stats = append(stats, s)
	}
	return stats
}

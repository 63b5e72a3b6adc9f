package domain

import "time"

// Summary holds course-team statistics.
type Summary struct {
	TotalCourses          int            `json:"total_courses"`
	TotalAssignments      int            `json:"total_assignments"`
	UniqueFaculty         int            `json:"unique_faculty"`
	CoursesByDepartment   map[string]int `json:"courses_by_department"`
	CoursesByPeriod       map[string]int `json:"courses_by_period"`
	CoursesByCareer       map[string]int `json:"courses_by_career"`
	FacultyWithoutDetails int            `json:"faculty_without_details"`
	CoursesWithoutDetail  int            `json:"courses_without_huayca_data"`
}

// SourceStatus reports record counts per source and how well they join.
// Match rates are percentages in [0, 100].
type SourceStatus struct {
	AssignmentCount  int       `json:"materias_equipo_count"`
	DesignationCount int       `json:"designaciones_docentes_count"`
	DetailCount      int       `json:"huayca_materias_count"`
	FacultyMatchRate float64   `json:"faculty_match_rate"`
	DetailMatchRate  float64   `json:"huayca_match_rate"`
	DetailsLoadedAt  time.Time `json:"huayca_loaded_at,omitempty"`
	CheckedAt        time.Time `json:"last_sync"`
}

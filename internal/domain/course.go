package domain

import "strings"

// Assignment is one row of the materias_equipo sheet: a person, a role, a course offering
// and a period.
type Assignment struct {
	ID         int    `json:"id_redesignacion"`
	CourseName string `json:"materia"`
	CourseCode string `json:"cod_siu"`
	Career     string `json:"carrera"`
	Ordinance  string `json:"ordenanza"`
	PersonName string `json:"docente"`
	FileNumber string `json:"legajo"`
	Category   string `json:"categoria"`
	Desig      string `json:"desig"`
	From       string `json:"desde"`
	To         string `json:"hasta"`
	Leave      string `json:"lic"`
	Module     string `json:"modulo"`
	Role       Role   `json:"rol"`
	Period     Period `json:"periodo"`
	Status     string `json:"estado"`
}

// Validate checks the enum fields a team member needs.
func (a Assignment) Validate() error {
	if !a.Role.Valid() {
		return &ValidationError{Entity: "assignment", ID: a.ID, Field: "Rol", Value: string(a.Role)}
	}
	if !a.Period.Valid() {
		return &ValidationError{Entity: "assignment", ID: a.ID, Field: "Período", Value: string(a.Period)}
	}
	return nil
}

// TeamMember is an assignment plus the designation it matched, if any.
type TeamMember struct {
	Assignment
	Faculty *Designation `json:"personal_details,omitempty"`
}

// Course is unique per (Code, Period).
type Course struct {
	Code     string       `json:"cod_siu"`
	Name     string       `json:"materia"`
	Period   Period       `json:"periodo"`
	Career   string       `json:"carrera"`
	Team     []TeamMember `json:"team_members"`
	Detail   *Detail      `json:"huayca_details,omitempty"`
	Warnings []string     `json:"warnings,omitempty"`
}

// Key is the unique identifier of the course: "<code>_<period>".
func (c Course) Key() string {
	return c.Code + "_" + string(c.Period)
}

func (c Course) Responsible() []TeamMember { return c.byRole(RoleResponsible) }

func (c Course) Auxiliary() []TeamMember { return c.byRole(RoleAuxiliary) }

func (c Course) byRole(r Role) []TeamMember {
	var out []TeamMember
	for _, m := range c.Team {
		if m.Role == r {
			out = append(out, m)
		}
	}
	return out
}

func (c Course) TeamSize() int { return len(c.Team) }

// Department comes from the detail source; empty when not enriched.
func (c Course) Department() string {
	if c.Detail == nil {
		return ""
	}
	return strings.TrimSpace(c.Detail.Department)
}

func (c Course) Area() string {
	if c.Detail == nil {
		return ""
	}
	return strings.TrimSpace(c.Detail.Area)
}

// IsElective returns nil when the course has no detail record.
func (c Course) IsElective() *bool {
	if c.Detail == nil {
		return nil
	}
	v := c.Detail.Elective == ElectiveYes
	return &v
}

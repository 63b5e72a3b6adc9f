package console

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"crub-courses/internal/cache"
	"crub-courses/internal/domain"
	"crub-courses/internal/service"
)

// View renders domain values for the terminal.
type View struct {
	styles Styles
}

func NewView() *View {
	return &View{styles: NewStyles()}
}

func dash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func (v *View) Courses(courses []domain.Course) string {
	t := NewTable(fmt.Sprintf("Materias (%d)", len(courses)),
		"Cod SIU", "Materia", "Período", "Carrera", "Departamento", "Equipo", "Huayca")
	for _, c := range courses {
		huayca := "no"
		if c.Detail != nil {
			huayca = "sí"
		}
		t.AddRow(c.Code, c.Name, string(c.Period), dash(c.Career), dash(c.Department()),
			strconv.Itoa(c.TeamSize()), huayca)
	}
	return t.Render(v.styles)
}

func (v *View) Course(c domain.Course) string {
	var sb strings.Builder
	sb.WriteString(v.styles.Title.Render(fmt.Sprintf("%s (%s %s)", c.Name, c.Code, c.Period)))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Carrera: %s\n", dash(c.Career)))
	if d := c.Detail; d != nil {
		sb.WriteString(fmt.Sprintf("Departamento: %s  Área: %s  Orientación: %s\n",
			dash(d.Department), dash(d.Area), dash(d.Orientation)))
		sb.WriteString(fmt.Sprintf("Horas: %s totales, %s semanales  Optativa: %s\n",
			dash(d.TotalHours), dash(d.WeeklyHours), d.Elective))
	} else {
		sb.WriteString(v.styles.Muted.Render("Sin datos de Huayca"))
		sb.WriteString("\n")
	}

	t := NewTable("Equipo", "Rol", "Docente", "Legajo", "Desig", "Dedicación", "Correos")
	for _, m := range c.Team {
		dedication, emails := "", ""
		if m.Faculty != nil {
			dedication, emails = m.Faculty.Dedication, m.Faculty.Emails
		}
		t.AddRow(string(m.Role), m.PersonName, dash(m.FileNumber), dash(m.Desig), dash(dedication), dash(emails))
	}
	sb.WriteString(t.Render(v.styles))

	for _, w := range c.Warnings {
		sb.WriteString(v.styles.Warn.Render("! " + w))
		sb.WriteString("\n")
	}
	return sb.String()
}

func countTable(title, label string, counts map[string]int) *Table {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	t := NewTable(title, label, "Materias")
	for _, k := range keys {
		t.AddRow(k, strconv.Itoa(counts[k]))
	}
	return t
}

func (v *View) Summary(s domain.Summary) string {
	var sb strings.Builder
	totals := NewTable("Resumen", "Indicador", "Valor")
	totals.AddRow("Materias", strconv.Itoa(s.TotalCourses))
	totals.AddRow("Asignaciones", strconv.Itoa(s.TotalAssignments))
	totals.AddRow("Docentes únicos", strconv.Itoa(s.UniqueFaculty))
	totals.AddRow("Asignaciones sin designación", strconv.Itoa(s.FacultyWithoutDetails))
	totals.AddRow("Materias sin Huayca", strconv.Itoa(s.CoursesWithoutDetail))
	sb.WriteString(totals.Render(v.styles))
	sb.WriteString(countTable("Por período", "Período", s.CoursesByPeriod).Render(v.styles))
	sb.WriteString(countTable("Por departamento", "Departamento", s.CoursesByDepartment).Render(v.styles))
	sb.WriteString(countTable("Por carrera", "Carrera", s.CoursesByCareer).Render(v.styles))
	return sb.String()
}

func (v *View) Status(st domain.SourceStatus, cs cache.Status) string {
	t := NewTable("Estado de las fuentes", "Fuente", "Registros", "Match")
	t.AddRow("materias_equipo", strconv.Itoa(st.AssignmentCount), "-")
	t.AddRow("designaciones_docentes", strconv.Itoa(st.DesignationCount), fmt.Sprintf("%.1f%%", st.FacultyMatchRate))
	t.AddRow("huayca materias", strconv.Itoa(st.DetailCount), fmt.Sprintf("%.1f%%", st.DetailMatchRate))

	loaded := "nunca"
	if cs.Loaded {
		loaded = cs.LoadedAt.Format("2006-01-02 15:04:05")
	}
	return t.Render(v.styles) + v.styles.Muted.Render(
		fmt.Sprintf("Caché Huayca: %s (%d descargas)", loaded, cs.Fetches)) + "\n"
}

func (v *View) Profiles(profiles []domain.PersonProfile) string {
	t := NewTable(fmt.Sprintf("Docentes (%d)", len(profiles)),
		"Docente", "Legajo", "Designaciones", "Materias", "Correos")
	for _, p := range profiles {
		t.AddRow(p.PersonName, dash(p.FileNumber), strconv.Itoa(p.TotalDesignations),
			strconv.Itoa(p.TotalCourses), dash(p.Emails))
	}
	return t.Render(v.styles)
}

func (v *View) Profile(p domain.PersonProfile) string {
	var sb strings.Builder
	sb.WriteString(v.styles.Title.Render(p.PersonName))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Legajo: %s  Documento: %s  CUIL: %s\nCorreos: %s\n",
		dash(p.FileNumber), dash(p.NationalID), dash(p.CUIL), dash(p.Emails)))

	for _, d := range p.Designations {
		t := NewTable(fmt.Sprintf("Desig %s · %s %s · %s", d.Desig, d.CatMapuche, d.Dedication, dash(d.Department)),
			"Cod SIU", "Materia", "Período", "Rol")
		for _, c := range d.Courses {
			t.AddRow(c.CourseCode, c.CourseName, string(c.Period), string(c.Role))
		}
		sb.WriteString(t.Render(v.styles))
	}
	return sb.String()
}

func (v *View) Departments(stats []domain.DepartmentStats) string {
	t := NewTable(fmt.Sprintf("Departamentos (%d)", len(stats)),
		"Departamento", "Designaciones", "Docentes", "Materias")
	for _, s := range stats {
		t.AddRow(s.Name, strconv.Itoa(s.TotalDesignations), strconv.Itoa(s.TotalPeople), strconv.Itoa(s.TotalCourses))
	}
	return t.Render(v.styles)
}

func (v *View) Department(d service.Department) string {
	t := NewTable(fmt.Sprintf("%s: %d designaciones, %d docentes, %d materias",
		d.Name, d.TotalDesignations, d.TotalPeople, d.TotalCourses),
		"Desig", "Docente", "Categoría", "Dedicación", "Área", "Materias")
	for _, des := range d.Designations {
		t.AddRow(des.Desig, des.PersonName, dash(des.CatMapuche), dash(des.Dedication), dash(des.Area),
			strconv.Itoa(len(des.Courses)))
	}
	return t.Render(v.styles)
}

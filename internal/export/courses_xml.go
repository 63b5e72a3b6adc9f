package export

import (
	"encoding/xml"
	"fmt"
	"os"
	"strings"

	"crub-courses/internal/domain"
)

/*
Course list layout:

<CRUB_Course_List generated="2025-03-10T09:30:00Z">
  <Course cod_siu="101" periodo="1CUAT">
    <materia>...</materia>
    <carrera>...</carrera>
    <departamento>...</departamento>
    <area>...</area>
    <optativa>NO</optativa>
    <horas_totales>...</horas_totales>
    <team>
      <member rol="Resp" desig="D1">
        <docente>...</docente>
        <legajo>...</legajo>
        <correos>...</correos>
      </member>
    </team>
    <warnings>
      <warning>...</warning>
    </warnings>
  </Course>
</CRUB_Course_List>
*/

type xmlCourseList struct {
	XMLName   xml.Name    `xml:"CRUB_Course_List"`
	Generated string      `xml:"generated,attr,omitempty"`
	Courses   []xmlCourse `xml:"Course"`
}

type xmlCourse struct {
	Code   string `xml:"cod_siu,attr"`
	Period string `xml:"periodo,attr"`

	Name       string `xml:"materia"`
	Career     string `xml:"carrera,omitempty"`
	Department string `xml:"departamento,omitempty"`
	Area       string `xml:"area,omitempty"`
	Elective   string `xml:"optativa,omitempty"`
	TotalHours string `xml:"horas_totales,omitempty"`

	Team     *xmlTeam     `xml:"team,omitempty"`
	Warnings *xmlWarnings `xml:"warnings,omitempty"`
}

type xmlTeam struct {
	Members []xmlMember `xml:"member"`
}

type xmlMember struct {
	Role       string `xml:"rol,attr"`
	Desig      string `xml:"desig,attr,omitempty"`
	PersonName string `xml:"docente"`
	FileNumber string `xml:"legajo,omitempty"`
	Emails     string `xml:"correos,omitempty"`
}

type xmlWarnings struct {
	Items []string `xml:"warning"`
}

type XMLConfig struct {
	// Generated is written as the root's generated attribute when set.
	Generated string
	// IncludeWarnings adds each course's data-quality warnings.
	IncludeWarnings bool
}

// WriteCourseXML writes the enriched course list as a single XML file.
func WriteCourseXML(outPath string, courses []domain.Course, cfg XMLConfig) error {
	out := xmlCourseList{
		Generated: strings.TrimSpace(cfg.Generated),
		Courses:   make([]xmlCourse, 0, len(courses)),
	}

	for _, c := range courses {
		row := xmlCourse{
			Code:       c.Code,
			Period:     string(c.Period),
			Name:       strings.TrimSpace(c.Name),
			Career:     strings.TrimSpace(c.Career),
			Department: c.Department(),
			Area:       c.Area(),
		}
		if c.Detail != nil {
			row.Elective = string(c.Detail.Elective)
			row.TotalHours = strings.TrimSpace(c.Detail.TotalHours)
		}

		if len(c.Team) > 0 {
			team := &xmlTeam{Members: make([]xmlMember, 0, len(c.Team))}
			for _, m := range c.Team {
				xm := xmlMember{
					Role:       string(m.Role),
					Desig:      m.Desig,
					PersonName: strings.TrimSpace(m.PersonName),
					FileNumber: m.FileNumber,
				}
				if m.Faculty != nil {
					xm.Emails = strings.TrimSpace(m.Faculty.Emails)
				}
				team.Members = append(team.Members, xm)
			}
			row.Team = team
		}

		if cfg.IncludeWarnings {
			if w := compactStrings(c.Warnings); len(w) > 0 {
				row.Warnings = &xmlWarnings{Items: w}
			}
		}

		out.Courses = append(out.Courses, row)
	}

	b, err := xml.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("export: marshal xml: %w", err)
	}

	if err := os.WriteFile(outPath, append([]byte(xml.Header), b...), 0o644); err != nil {
		return fmt.Errorf("export: write xml: %w", err)
	}

	return nil
}

func compactStrings(in []string) []string {
	out := make([]string, 0, len(in))
	seen := map[string]bool{}
	for _, s := range in {
		v := strings.TrimSpace(s)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"crub-courses/internal/domain"
)

// Team report layout, one row per team member. Keep header order EXACT.
var teamHeader = []string{
	"COD_SIU",
	"MATERIA",
	"PERIODO",
	"CARRERA",
	"DEPARTAMENTO",
	"AREA",
	"OPTATIVA",
	"ROL",
	"DOCENTE",
	"LEGAJO",
	"DESIG",
	"CATEGORIA",
	"DEDICACION",
	"CORREOS",
	"DEPTO_DOCENTE",
}

// WriteTeamCSV writes the course-team report. Courses without a team still get a
// row so they show up in the report.
func WriteTeamCSV(w io.Writer, courses []domain.Course) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write(teamHeader); err != nil {
		return err
	}
	for _, c := range courses {
		if len(c.Team) == 0 {
			if err := cw.Write(teamRow(c, nil)); err != nil {
				return err
			}
			continue
		}
		for i := range c.Team {
			if err := cw.Write(teamRow(c, &c.Team[i])); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTeamCSVFile writes the report to outPath.
func WriteTeamCSVFile(outPath string, courses []domain.Course) error {
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("export: create csv: %w", err)
	}
	if err := WriteTeamCSV(f, courses); err != nil {
		f.Close()
		return fmt.Errorf("export: write csv: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("export: close csv: %w", err)
	}
	return nil
}

func teamRow(c domain.Course, m *domain.TeamMember) []string {
	elective := ""
	if e := c.IsElective(); e != nil {
		elective = "NO"
		if *e {
			elective = "SI"
		}
	}

	row := make([]string, len(teamHeader))
	row[0] = c.Code
	row[1] = clean(c.Name)
	row[2] = string(c.Period)
	row[3] = clean(c.Career)
	row[4] = c.Department()
	row[5] = c.Area()
	row[6] = elective
	if m == nil {
		return row
	}

	row[7] = string(m.Role)
	row[8] = clean(m.PersonName)
	row[9] = m.FileNumber
	row[10] = m.Desig
	row[11] = m.Category
	if f := m.Faculty; f != nil {
		row[12] = f.Dedication
		row[13] = clean(f.Emails)
		row[14] = clean(f.Department)
	}
	return row
}

// clean flattens embedded line breaks so each record stays on one line.
func clean(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "\r", " ")
}

package mappers

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"crub-courses/internal/domain"
	"crub-courses/internal/sources"
)

func TestAssignmentFromSheetRow(t *testing.T) {
	rec := sources.Record{
		"id_redesignacion": json.Number("42"),
		"Materia":          " Zoología General ",
		"Cod SIU":          json.Number("1011"),
		"Carrera":          "Lic. en Biología",
		"Docente":          "Pérez, Ana",
		"Legajo":           json.Number("5531"),
		"Desig":            "D-77",
		"Rol":              "Resp",
		"Peri\u0301odo":    "1CUAT",
		"Columna extra":    "ignorada",
	}

	got := DefaultSet().Assignment(rec)

	want := domain.Assignment{
		ID:         42,
		CourseName: "Zoología General",
		CourseCode: "1011",
		Career:     "Lic. en Biología",
		PersonName: "Pérez, Ana",
		FileNumber: "5531",
		Desig:      "D-77",
		Role:       domain.RoleResponsible,
		Period:     domain.PeriodFirstTerm,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Assignment mismatch (-want +got):\n%s", diff)
	}
}

func TestDesignationAndDetail(t *testing.T) {
	s := DefaultSet()

	d := s.Designation(sources.Record{
		"D Desig":           "D-77",
		"Apellido y Nombre": "Pérez, Ana",
		"Correos":           "ana@crub.uncoma.edu.ar",
		"Departamento":      "Biología",
		"LSGH?":             "NO",
	})
	if d.Desig != "D-77" || d.PersonName != "Pérez, Ana" || d.Department != "Biología" || d.LSGH != "NO" {
		t.Errorf("Unexpected designation: %+v", d)
	}

	det := s.Detail(sources.Record{
		"id_materia":  float64(7),
		"cod_guarani": "1011",
		"ano_plan":    "2",
		"depto":       "Biología",
		"optativa":    "si",
	})
	if det.IDMateria != 7 {
		t.Errorf("Expected IDMateria 7, got %d", det.IDMateria)
	}
	if det.PlanYear != 2 {
		t.Errorf("Expected PlanYear 2, got %d", det.PlanYear)
	}
	if det.CodGuarani != "1011" {
		t.Errorf("Expected CodGuarani '1011', got %q", det.CodGuarani)
	}
	if det.Elective != domain.ElectiveYes {
		t.Errorf("Expected elective SI, got %q", det.Elective)
	}
}

func TestBatchConversions(t *testing.T) {
	s := DefaultSet()
	recs := []sources.Record{{"Cod SIU": "1"}, {"Cod SIU": "2"}}

	if got := s.AssignmentsFrom(recs); len(got) != 2 || got[1].CourseCode != "2" {
		t.Errorf("Unexpected assignments: %+v", got)
	}
	if got := s.DesignationsFrom(nil); got == nil || len(got) != 0 {
		t.Errorf("Expected empty non-nil designations, got %#v", got)
	}
	if got := s.DetailsFrom([]sources.Record{{"cod_guarani": "9"}}); len(got) != 1 || got[0].CodGuarani != "9" {
		t.Errorf("Unexpected details: %+v", got)
	}
}

func TestRowConversions(t *testing.T) {
	row := Row{
		"n":     json.Number("12"),
		"f":     float64(3.5),
		"s":     " 8 ",
		"text":  "abc",
		"bool":  true,
		"nil":   nil,
		"big":   json.Number("1e3"),
		"ratio": json.Number("2.5"),
	}

	testCases := []struct {
		attr  string
		str   string
		num   int
		numOK bool
	}{
		{"n", "12", 12, true},
		{"f", "3.5", 3, true},
		{"s", "8", 8, true},
		{"text", "abc", 0, false},
		{"bool", "true", 0, false},
		{"nil", "", 0, false},
		{"missing", "", 0, false},
		{"big", "1e3", 1000, true},
		{"ratio", "2.5", 2, true},
	}

	for _, tc := range testCases {
		if got := row.String(tc.attr); got != tc.str {
			t.Errorf("String(%q) = %q, want %q", tc.attr, got, tc.str)
		}
		n, ok := row.Int(tc.attr)
		if n != tc.num || ok != tc.numOK {
			t.Errorf("Int(%q) = (%d, %v), want (%d, %v)", tc.attr, n, ok, tc.num, tc.numOK)
		}
	}
}

func TestOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fields.yaml")
	content := `assignments:
  "Cod. SIU": course_code
  "Cod SIU": ""
details:
  codigo_guarani: cod_guarani
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	o, err := LoadOverrides(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	s := WithOverrides(o)

	a := s.Assignment(sources.Record{"Cod. SIU": "55", "Cod SIU": "99"})
	if a.CourseCode != "55" {
		t.Errorf("Expected overridden course code '55', got %q", a.CourseCode)
	}
	d := s.Detail(sources.Record{"codigo_guarani": "55"})
	if d.CodGuarani != "55" {
		t.Errorf("Expected cod_guarani from override, got %q", d.CodGuarani)
	}
	if DefaultSet().Assignment(sources.Record{"Cod SIU": "99"}).CourseCode != "99" {
		t.Error("Overrides must not leak into the default tables")
	}
}

func TestLoadOverridesErrors(t *testing.T) {
	if _, err := LoadOverrides(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("assignments: [1, 2"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadOverrides(path); err == nil {
		t.Error("Expected parse error")
	}
}

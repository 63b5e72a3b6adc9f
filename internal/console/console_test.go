package console

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crub-courses/internal/domain"
)

func TestPick(t *testing.T) {
	v := domain.Assignment{CourseCode: "C1", CourseName: "Algebra", Period: domain.PeriodFirstTerm}
	got := Pick(v, "cod_siu", "periodo", "nope")

	if len(got) != 2 {
		t.Fatalf("Expected 2 keys, got %d", len(got))
	}
	if got["cod_siu"] != "C1" {
		t.Errorf("Expected cod_siu C1, got %v", got["cod_siu"])
	}
	if _, ok := got["nope"]; ok {
		t.Error("Expected unknown key to be dropped")
	}
}

func TestParseFields(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, ParseFields("a,b , c,,"))
	assert.Nil(t, ParseFields(""))
}

func TestWriteJSONList(t *testing.T) {
	var buf bytes.Buffer
	items := []domain.Assignment{{CourseCode: "C1", Desig: "10"}, {CourseCode: "C2", Desig: "11"}}
	require.NoError(t, WriteJSONList(&buf, items, []string{"desig"}))

	var out []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, []map[string]any{{"desig": "10"}, {"desig": "11"}}, out)

	buf.Reset()
	require.NoError(t, WriteJSONList[domain.Assignment](&buf, nil, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestTableRender(t *testing.T) {
	tbl := NewTable("", "A", "Nombre")
	tbl.AddRow("1", "Álgebra")
	tbl.AddRow("22")

	lines := strings.Split(strings.TrimRight(tbl.Render(Styles{}), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "Nombre")
	assert.Contains(t, lines[2], "Álgebra")
	// Short rows are padded to the header width.
	assert.Equal(t, len([]rune(lines[2])), len([]rune(lines[3])))
}

func TestTableRenderEmpty(t *testing.T) {
	out := NewTable("Materias", "Cod SIU").Render(Styles{})
	if !strings.Contains(out, "(sin resultados)") {
		t.Errorf("Expected empty marker, got %q", out)
	}
}

func TestCourseView(t *testing.T) {
	c := domain.Course{
		Code: "C1", Name: "Algebra", Period: domain.PeriodAnnual, Career: "Lic. Matemática",
		Team: []domain.TeamMember{
			{
				Assignment: domain.Assignment{PersonName: "PEREZ, ANA", Role: domain.RoleResponsible, Desig: "10"},
				Faculty:    &domain.Designation{Dedication: "EXCL", Emails: "ana@crub.uncoma.edu.ar"},
			},
			{Assignment: domain.Assignment{PersonName: "GOMEZ, LUIS", Role: domain.RoleAuxiliary}},
		},
		Warnings: []string{"sin designación para desig 99"},
	}

	out := NewView().Course(c)
	for _, want := range []string{"Algebra", "Sin datos de Huayca", "PEREZ, ANA", "ana@crub.uncoma.edu.ar", "GOMEZ, LUIS", "! sin designación"} {
		assert.Contains(t, out, want)
	}
}

func TestSummaryViewOrdersCounts(t *testing.T) {
	s := domain.Summary{
		TotalCourses:        3,
		CoursesByPeriod:     map[string]int{"ANUAL": 1, "1CUAT": 2},
		CoursesByDepartment: map[string]int{},
		CoursesByCareer:     map[string]int{},
	}
	out := NewView().Summary(s)

	first := strings.Index(out, "1CUAT")
	second := strings.Index(out, "ANUAL")
	if first < 0 || second < 0 || first > second {
		t.Errorf("Expected 1CUAT before ANUAL, got %q", out)
	}
}

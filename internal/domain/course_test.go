package domain

import (
	"errors"
	"testing"
)

func TestCourseAccessors(t *testing.T) {
	course := Course{
		Code:   "101",
		Name:   "Algebra",
		Period: PeriodFirstTerm,
		Career: "Profesorado en Matemática",
		Team: []TeamMember{
			{Assignment: Assignment{ID: 1, Desig: "D1", Role: RoleResponsible}},
			{Assignment: Assignment{ID: 2, Desig: "D2", Role: RoleAuxiliary}},
			{Assignment: Assignment{ID: 3, Desig: "D3", Role: RoleAuxiliary}},
		},
	}

	if course.Key() != "101_1CUAT" {
		t.Errorf("Expected Key to be '101_1CUAT', got '%s'", course.Key())
	}
	if course.TeamSize() != 3 {
		t.Errorf("Expected TeamSize to be 3, got %d", course.TeamSize())
	}
	if len(course.Responsible()) != 1 {
		t.Errorf("Expected 1 responsible member, got %d", len(course.Responsible()))
	}
	if len(course.Auxiliary()) != 2 {
		t.Errorf("Expected 2 auxiliary members, got %d", len(course.Auxiliary()))
	}

	if course.Department() != "" {
		t.Errorf("Expected empty Department without detail, got '%s'", course.Department())
	}
	if course.IsElective() != nil {
		t.Error("Expected IsElective to be nil without detail")
	}

	course.Detail = &Detail{Department: " Matemática ", Area: "Álgebra", Elective: ElectiveYes}
	if course.Department() != "Matemática" {
		t.Errorf("Expected Department to be 'Matemática', got '%s'", course.Department())
	}
	if course.Area() != "Álgebra" {
		t.Errorf("Expected Area to be 'Álgebra', got '%s'", course.Area())
	}
	if e := course.IsElective(); e == nil || !*e {
		t.Error("Expected IsElective to be true")
	}
}

func TestAssignmentValidate(t *testing.T) {
	testCases := []struct {
		name    string
		in      Assignment
		wantErr bool
		field   string
	}{
		{"valid", Assignment{Role: RoleResponsible, Period: PeriodAnnual}, false, ""},
		{"missing role", Assignment{Period: PeriodAnnual}, true, "Rol"},
		{"unknown role", Assignment{Role: "Jefe", Period: PeriodAnnual}, true, "Rol"},
		{"missing period", Assignment{Role: RoleAuxiliary}, true, "Período"},
		{"unknown period", Assignment{Role: RoleAuxiliary, Period: "3CUAT"}, true, "Período"},
	}

	for _, tc := range testCases {
		err := tc.in.Validate()
		if (err != nil) != tc.wantErr {
			t.Errorf("%s: Validate() error = %v, wantErr %v", tc.name, err, tc.wantErr)
			continue
		}
		if err == nil {
			continue
		}
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("%s: expected *ValidationError, got %T", tc.name, err)
			continue
		}
		if verr.Field != tc.field {
			t.Errorf("%s: expected field %q, got %q", tc.name, tc.field, verr.Field)
		}
	}
}

func TestParseElective(t *testing.T) {
	testCases := []struct {
		input    string
		expected Elective
	}{
		{"SI", ElectiveYes},
		{"si", ElectiveYes},
		{" Si ", ElectiveYes},
		{"NO", ElectiveNo},
		{"", ElectiveNo},
		{"quizás", ElectiveNo},
	}

	for _, tc := range testCases {
		if got := ParseElective(tc.input); got != tc.expected {
			t.Errorf("ParseElective(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}

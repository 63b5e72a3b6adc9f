package domain

import "strings"

// Period is the academic period tag used in the assignments sheet.
type Period string

const (
	PeriodFirstTerm       Period = "1CUAT"
	PeriodSecondTerm      Period = "2CUAT"
	PeriodAnnual          Period = "ANUAL"
	PeriodSecondBimester2 Period = "2BIMES2C"
	PeriodMonthly         Period = "MENSU"
)

var knownPeriods = map[Period]bool{
	PeriodFirstTerm:       true,
	PeriodSecondTerm:      true,
	PeriodAnnual:          true,
	PeriodSecondBimester2: true,
	PeriodMonthly:         true,
}

func (p Period) Valid() bool { return knownPeriods[p] }

// Role is the role a person plays on a course team.
type Role string

const (
	RoleResponsible Role = "Resp"
	RoleAuxiliary   Role = "Aux"
)

func (r Role) Valid() bool {
	return r == RoleResponsible || r == RoleAuxiliary
}

// Elective reflects the "optativa" flag of a detail record.
type Elective string

const (
	ElectiveYes Elective = "SI"
	ElectiveNo  Elective = "NO"
)

// ParseElective accepts any casing of "si"; everything else is NO.
func ParseElective(s string) Elective {
	if strings.EqualFold(strings.TrimSpace(s), string(ElectiveYes)) {
		return ElectiveYes
	}
	return ElectiveNo
}

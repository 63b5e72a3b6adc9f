package mappers

import (
	"crub-courses/internal/domain"
	"crub-courses/internal/sources"
)

// Canonical attribute names.
const (
	AttrID          = "id"
	AttrCourseName  = "course_name"
	AttrCourseCode  = "course_code"
	AttrCareer      = "career"
	AttrOrdinance   = "ordinance"
	AttrPersonName  = "person_name"
	AttrFileNumber  = "file_number"
	AttrCategory    = "category"
	AttrDesig       = "desig"
	AttrFrom        = "from"
	AttrTo          = "to"
	AttrLeave       = "leave"
	AttrModule      = "module"
	AttrRole        = "role"
	AttrPeriod      = "period"
	AttrStatus      = "status"
	AttrUniAcad     = "uni_acad"
	AttrYear        = "year"
	AttrNorm        = "norm"
	AttrBody        = "body"
	AttrNationalID  = "national_id"
	AttrCUIL        = "cuil"
	AttrHireDate    = "hire_date"
	AttrSex         = "sex"
	AttrBirthDate   = "birth_date"
	AttrEmails      = "emails"
	AttrCatMapuche  = "cat_mapuche"
	AttrCatStatute  = "cat_statute"
	AttrDedication  = "dedication"
	AttrCharacter   = "character"
	AttrDepartment  = "department"
	AttrArea        = "area"
	AttrOrientation = "orientation"
	AttrLSGH        = "lsgh"

	AttrCareerName      = "career_name"
	AttrPlanYear        = "plan_year"
	AttrPlanPeriod      = "plan_period"
	AttrTotalHours      = "total_hours"
	AttrWeeklyHours     = "weekly_hours"
	AttrMainDepartment  = "main_department"
	AttrMinimumContents = "minimum_contents"
	AttrPrereqToAttend  = "prereq_to_attend"
	AttrPrereqToPass    = "prereq_to_pass"
	AttrCompetences     = "competences"
	AttrElective        = "elective"
	AttrTrack           = "track"
	AttrCareerCode      = "career_code"
	AttrPlanGuarani     = "plan_guarani"
	AttrVersionGuarani  = "version_guarani"
	AttrPlanMocovi      = "plan_mocovi"
	AttrPlanOrdinances  = "plan_ordinances"
	AttrCodGuarani      = "cod_guarani"
	AttrNotes           = "notes"
)

// AssignmentFields is the materias_equipo sheet layout.
var AssignmentFields = Table{
	"id_redesignacion": AttrID,
	"Materia":          AttrCourseName,
	"Cod SIU":          AttrCourseCode,
	"Carrera":          AttrCareer,
	"Ordenanza":        AttrOrdinance,
	"Docente":          AttrPersonName,
	"Legajo":           AttrFileNumber,
	"Categoría":        AttrCategory,
	"Desig":            AttrDesig,
	"Desde":            AttrFrom,
	"Hasta":            AttrTo,
	"Lic":              AttrLeave,
	"Módulo":           AttrModule,
	"Rol":              AttrRole,
	"Período":          AttrPeriod,
	"Estado":           AttrStatus,
}

// DesignationFields is the designaciones_docentes sheet layout.
var DesignationFields = Table{
	"id_redesignacion":  AttrID,
	"D Desig":           AttrDesig,
	"Uni Acad":          AttrUniAcad,
	"Año":               AttrYear,
	"Norma":             AttrNorm,
	"Cuerpo":            AttrBody,
	"Legajo":            AttrFileNumber,
	"Documento":         AttrNationalID,
	"CUIL":              AttrCUIL,
	"Fecha Ingreso":     AttrHireDate,
	"Apellido y Nombre": AttrPersonName,
	"Sexo":              AttrSex,
	"Fecha Nacim":       AttrBirthDate,
	"Correos":           AttrEmails,
	"Cat Mapuche":       AttrCatMapuche,
	"Cat Estatuto":      AttrCatStatute,
	"Dedicación":        AttrDedication,
	"Carácter":          AttrCharacter,
	"Desde":             AttrFrom,
	"Hasta":             AttrTo,
	"Departamento":      AttrDepartment,
	"Área":              AttrArea,
	"Orientación":       AttrOrientation,
	"LSGH?":             AttrLSGH,
	"Estado":            AttrStatus,
}

// DetailFields is the huayca materias layout.
var DetailFields = Table{
	"id_materia":                AttrID,
	"nombre_carrera":            AttrCareerName,
	"nombre_materia":            AttrCourseName,
	"ano_plan":                  AttrPlanYear,
	"periodo_plan":              AttrPlanPeriod,
	"horas_totales":             AttrTotalHours,
	"horas_semanales":           AttrWeeklyHours,
	"depto_principal":           AttrMainDepartment,
	"depto":                     AttrDepartment,
	"area":                      AttrArea,
	"orientacion":               AttrOrientation,
	"contenidos_minimos":        AttrMinimumContents,
	"correlativas_para_cursar":  AttrPrereqToAttend,
	"correlativas_para_aprobar": AttrPrereqToPass,
	"competencias":              AttrCompetences,
	"optativa":                  AttrElective,
	"trayecto":                  AttrTrack,
	"cod_carrera":               AttrCareerCode,
	"plan_guarani":              AttrPlanGuarani,
	"version_guarani":           AttrVersionGuarani,
	"plan_mocovi":               AttrPlanMocovi,
	"plan_ordenanzas":           AttrPlanOrdinances,
	"cod_guarani":               AttrCodGuarani,
	"observaciones":             AttrNotes,
}

// Set bundles the field maps of the three record kinds.
type Set struct {
	Assignments  *FieldMap
	Designations *FieldMap
	Details      *FieldMap
}

func DefaultSet() *Set {
	return &Set{
		Assignments:  NewFieldMap(AssignmentFields),
		Designations: NewFieldMap(DesignationFields),
		Details:      NewFieldMap(DetailFields),
	}
}

// WithOverrides returns the default set with o merged on top.
func WithOverrides(o Overrides) *Set {
	s := DefaultSet()
	s.Assignments.Merge(o.Assignments)
	s.Designations.Merge(o.Designations)
	s.Details.Merge(o.Details)
	return s
}

func (s *Set) Assignment(rec sources.Record) domain.Assignment {
	r := s.Assignments.Apply(rec)
	id, _ := r.Int(AttrID)
	return domain.Assignment{
		ID:         id,
		CourseName: r.String(AttrCourseName),
		CourseCode: r.String(AttrCourseCode),
		Career:     r.String(AttrCareer),
		Ordinance:  r.String(AttrOrdinance),
		PersonName: r.String(AttrPersonName),
		FileNumber: r.String(AttrFileNumber),
		Category:   r.String(AttrCategory),
		Desig:      r.String(AttrDesig),
		From:       r.String(AttrFrom),
		To:         r.String(AttrTo),
		Leave:      r.String(AttrLeave),
		Module:     r.String(AttrModule),
		Role:       domain.Role(r.String(AttrRole)),
		Period:     domain.Period(r.String(AttrPeriod)),
		Status:     r.String(AttrStatus),
	}
}

func (s *Set) Designation(rec sources.Record) domain.Designation {
	r := s.Designations.Apply(rec)
	id, _ := r.Int(AttrID)
	return domain.Designation{
		ID:          id,
		Desig:       r.String(AttrDesig),
		UniAcad:     r.String(AttrUniAcad),
		Year:        r.String(AttrYear),
		Norm:        r.String(AttrNorm),
		Body:        r.String(AttrBody),
		FileNumber:  r.String(AttrFileNumber),
		NationalID:  r.String(AttrNationalID),
		CUIL:        r.String(AttrCUIL),
		HireDate:    r.String(AttrHireDate),
		PersonName:  r.String(AttrPersonName),
		Sex:         r.String(AttrSex),
		BirthDate:   r.String(AttrBirthDate),
		Emails:      r.String(AttrEmails),
		CatMapuche:  r.String(AttrCatMapuche),
		CatStatute:  r.String(AttrCatStatute),
		Dedication:  r.String(AttrDedication),
		Character:   r.String(AttrCharacter),
		From:        r.String(AttrFrom),
		To:          r.String(AttrTo),
		Department:  r.String(AttrDepartment),
		Area:        r.String(AttrArea),
		Orientation: r.String(AttrOrientation),
		LSGH:        r.String(AttrLSGH),
		Status:      r.String(AttrStatus),
	}
}

func (s *Set) Detail(rec sources.Record) domain.Detail {
	r := s.Details.Apply(rec)
	id, _ := r.Int(AttrID)
	planYear, _ := r.Int(AttrPlanYear)
	return domain.Detail{
		IDMateria:       id,
		CareerName:      r.String(AttrCareerName),
		CourseName:      r.String(AttrCourseName),
		PlanYear:        planYear,
		PlanPeriod:      r.String(AttrPlanPeriod),
		TotalHours:      r.String(AttrTotalHours),
		WeeklyHours:     r.String(AttrWeeklyHours),
		MainDepartment:  r.String(AttrMainDepartment),
		Department:      r.String(AttrDepartment),
		Area:            r.String(AttrArea),
		Orientation:     r.String(AttrOrientation),
		MinimumContents: r.String(AttrMinimumContents),
		PrereqToAttend:  r.String(AttrPrereqToAttend),
		PrereqToPass:    r.String(AttrPrereqToPass),
		Competences:     r.String(AttrCompetences),
		Elective:        domain.ParseElective(r.String(AttrElective)),
		Track:           r.String(AttrTrack),
		CareerCode:      r.String(AttrCareerCode),
		PlanGuarani:     r.String(AttrPlanGuarani),
		VersionGuarani:  r.String(AttrVersionGuarani),
		PlanMocovi:      r.String(AttrPlanMocovi),
		PlanOrdinances:  r.String(AttrPlanOrdinances),
		CodGuarani:      r.String(AttrCodGuarani),
		Notes:           r.String(AttrNotes),
	}
}

func (s *Set) AssignmentsFrom(recs []sources.Record) []domain.Assignment {
	out := make([]domain.Assignment, 0, len(recs))
	for _, rec := range recs {
		out = append(out, s.Assignment(rec))
	}
	return out
}

func (s *Set) DesignationsFrom(recs []sources.Record) []domain.Designation {
	out := make([]domain.Designation, 0, len(recs))
	for _, rec := range recs {
		out = append(out, s.Designation(rec))
	}
	return out
}

func (s *Set) DetailsFrom(recs []sources.Record) []domain.Detail {
	out := make([]domain.Detail, 0, len(recs))
	for _, rec := range recs {
		out = append(out, s.Detail(rec))
	}
	return out
}

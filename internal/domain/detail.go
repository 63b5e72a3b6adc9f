package domain

// Detail is a course record from the academic-records API. CodGuarani is the link key
// against Assignment.CourseCode.
type Detail struct {
	IDMateria       int      `json:"id_materia"`
	CareerName      string   `json:"nombre_carrera"`
	CourseName      string   `json:"nombre_materia"`
	PlanYear        int      `json:"ano_plan"`
	PlanPeriod      string   `json:"periodo_plan"`
	TotalHours      string   `json:"horas_totales"`
	WeeklyHours     string   `json:"horas_semanales"`
	MainDepartment  string   `json:"depto_principal"`
	Department      string   `json:"depto"`
	Area            string   `json:"area"`
	Orientation     string   `json:"orientacion"`
	MinimumContents string   `json:"contenidos_minimos"`
	PrereqToAttend  string   `json:"correlativas_para_cursar"`
	PrereqToPass    string   `json:"correlativas_para_aprobar"`
	Competences     string   `json:"competencias"`
	Elective        Elective `json:"optativa"`
	Track           string   `json:"trayecto"`
	CareerCode      string   `json:"cod_carrera"`
	PlanGuarani     string   `json:"plan_guarani"`
	VersionGuarani  string   `json:"version_guarani"`
	PlanMocovi      string   `json:"plan_mocovi"`
	PlanOrdinances  string   `json:"plan_ordenanzas"`
	CodGuarani      string   `json:"cod_guarani"`
	Notes           string   `json:"observaciones"`
}

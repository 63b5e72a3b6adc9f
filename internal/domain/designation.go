package domain

// Designation is one row of the designaciones_docentes sheet: an appointment of a person.
type Designation struct {
	ID          int              `json:"id_redesignacion"`
	Desig       string           `json:"d_desig"`
	UniAcad     string           `json:"uni_acad"`
	Year        string           `json:"año"`
	Norm        string           `json:"norma"`
	Body        string           `json:"cuerpo"`
	FileNumber  string           `json:"legajo"`
	NationalID  string           `json:"documento"`
	CUIL        string           `json:"cuil"`
	HireDate    string           `json:"fecha_ingreso"`
	PersonName  string           `json:"apellido_y_nombre"`
	Sex         string           `json:"sexo"`
	BirthDate   string           `json:"fecha_nacim"`
	Emails      string           `json:"correos"`
	CatMapuche  string           `json:"cat_mapuche"`
	CatStatute  string           `json:"cat_estatuto"`
	Dedication  string           `json:"dedicacion"`
	Character   string           `json:"caracter"`
	From        string           `json:"desde"`
	To          string           `json:"hasta"`
	Department  string           `json:"departamento"`
	Area        string           `json:"area"`
	Orientation string           `json:"orientacion"`
	LSGH        string           `json:"lsgh"`
	Status      string           `json:"estado"`
	Courses     []AssignedCourse `json:"materias"`
}

// AssignedCourse is an assignment seen from its designation, with the detail record of
// its course when one matched.
type AssignedCourse struct {
	Assignment
	Detail *Detail `json:"materia_detalle,omitempty"`
}

// DesignationSet is the flat designation-centric view.
type DesignationSet struct {
	TotalDesignations int           `json:"total_designaciones"`
	TotalAssigned     int           `json:"total_materias_asignadas"`
	Designations      []Designation `json:"designaciones"`
}

// PersonProfile groups every designation held by one person.
type PersonProfile struct {
	PersonName        string        `json:"apellido_y_nombre"`
	FileNumber        string        `json:"legajo"`
	NationalID        string        `json:"documento"`
	CUIL              string        `json:"cuil"`
	Sex               string        `json:"sexo"`
	BirthDate         string        `json:"fecha_nacim"`
	Emails            string        `json:"correos"`
	TotalDesignations int           `json:"total_designaciones"`
	TotalCourses      int           `json:"total_materias"`
	Designations      []Designation `json:"designaciones"`
}

// ProfileSet is the person-centric view.
type ProfileSet struct {
	TotalPeople       int             `json:"total_docentes"`
	TotalDesignations int             `json:"total_designaciones"`
	TotalAssigned     int             `json:"total_materias_asignadas"`
	Profiles          []PersonProfile `json:"docentes"`
}

// DepartmentStats summarizes one department group.
type DepartmentStats struct {
	Name              string `json:"nombre"`
	TotalDesignations int    `json:"total_designaciones"`
	TotalPeople       int    `json:"total_docentes"`
	TotalCourses      int    `json:"total_materias"`
}

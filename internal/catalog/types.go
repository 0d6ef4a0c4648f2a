package catalog

// Kind identifies one of the catalog documents the planner reads.
type Kind string

const (
	KindCourses      Kind = "courses"
	KindResearch     Kind = "research"
	KindCompetitions Kind = "competitions"
)

// Course is a catalog course offered by a major.
type Course struct {
	Name             string             `json:"name"`
	Credits          float64            `json:"credits"`
	Category         string             `json:"category"`
	StandardSemester int                `json:"standard_semester"`
	Knowledge        map[string]float64 `json:"knowledge,omitempty"`
}

// Research is a catalog research project offered by a major.
type Research struct {
	Name   string             `json:"name"`
	Skills map[string]float64 `json:"skills,omitempty"`
}

// Competition is a catalog competition offered by a major.
type Competition struct {
	Name            string             `json:"name"`
	Skills          map[string]float64 `json:"skills,omitempty"`
	PotentialAwards []string           `json:"potential_awards,omitempty"`
}

// Document is one catalog file: a list of colleges, each with a list of
// majors, each holding the typed entries for the document's kind. The
// unused lists stay empty (a courses document carries no research).
type Document struct {
	Colleges []College `json:"colleges"`
}

// College groups the majors of one school.
type College struct {
	Name   string  `json:"name"`
	Majors []Major `json:"majors"`
}

// Major holds the catalog entries belonging to one (college, major) pair.
type Major struct {
	Name         string        `json:"name"`
	Courses      []Course      `json:"courses,omitempty"`
	Research     []Research    `json:"research,omitempty"`
	Competitions []Competition `json:"competitions,omitempty"`
}

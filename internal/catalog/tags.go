package catalog

// TagsDocument seeds the dimension names of a newly registered student.
// Each family ("knowledge" or "skills") lists, per college and major, the
// dimension names that major tracks. The set is fixed at registration time.
type TagsDocument struct {
	Families []TagFamily `json:"families"`
}

// TagFamily is one dimension family's per-major tag lists.
type TagFamily struct {
	Family   string       `json:"family"`
	Colleges []TagCollege `json:"colleges"`
}

// TagCollege maps major name to the tag list for one school.
type TagCollege struct {
	Name   string              `json:"name"`
	Majors map[string][]string `json:"majors"`
}

// Dimension family names.
const (
	FamilyKnowledge = "knowledge"
	FamilySkills    = "skills"
)

// DimensionsFor returns the knowledge and skill dimension names configured
// for the (school, major) pair. Unknown pairs yield empty slices.
func (d *TagsDocument) DimensionsFor(school, major string) (knowledge, skills []string) {
	if d == nil {
		return nil, nil
	}
	for _, fam := range d.Families {
		for _, college := range fam.Colleges {
			if college.Name != school {
				continue
			}
			tags := college.Majors[major]
			switch fam.Family {
			case FamilyKnowledge:
				knowledge = append(knowledge, tags...)
			case FamilySkills:
				skills = append(skills, tags...)
			}
		}
	}
	return knowledge, skills
}

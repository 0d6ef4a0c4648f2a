package catalog

// RequirementsDocument describes, per major, which course categories are
// mandatory and how personalized-elective subcategories group into the
// quota buckets shown to the student.
type RequirementsDocument struct {
	Colleges []RequirementsCollege `json:"colleges"`
}

// RequirementsCollege groups major requirement configs of one school.
type RequirementsCollege struct {
	Name   string              `json:"name"`
	Majors []MajorRequirements `json:"majors"`
}

// MajorRequirements is the degree requirement configuration for one major.
type MajorRequirements struct {
	Name               string          `json:"name"`
	RequiredCategories []string        `json:"required_categories"`
	ElectiveGroups     []ElectiveGroup `json:"elective_groups"`
}

// ElectiveGroup is one personalized-elective quota bucket. Courses whose
// category appears in Subcategories count toward the bucket's credits.
type ElectiveGroup struct {
	Name            string   `json:"name"`
	Subcategories   []string `json:"subcategories"`
	RequiredCredits float64  `json:"required_credits"`
}

// ForMajor returns the requirement config for the (school, major) pair,
// reporting whether it exists.
func (d *RequirementsDocument) ForMajor(school, major string) (MajorRequirements, bool) {
	if d == nil {
		return MajorRequirements{}, false
	}
	for _, college := range d.Colleges {
		if college.Name != school {
			continue
		}
		for _, m := range college.Majors {
			if m.Name == major {
				return m, true
			}
		}
	}
	return MajorRequirements{}, false
}

// IsRequired reports whether category is one of the mandatory course
// categories of this major.
func (m MajorRequirements) IsRequired(category string) bool {
	for _, c := range m.RequiredCategories {
		if c == category {
			return true
		}
	}
	return false
}

// ElectiveGroupFor resolves a course category to its parent elective
// bucket name, reporting whether the category maps to any bucket.
func (m MajorRequirements) ElectiveGroupFor(category string) (string, bool) {
	for _, g := range m.ElectiveGroups {
		for _, sub := range g.Subcategories {
			if sub == category {
				return g.Name, true
			}
		}
	}
	return "", false
}

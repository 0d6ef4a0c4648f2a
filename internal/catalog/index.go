package catalog

// Entry is the flattened, kind-agnostic view of one catalog item that the
// scoring engine works with. Credits, Category and StandardSemester are
// only meaningful for courses; Skills only for research and competitions.
type Entry struct {
	Name             string
	College          string
	Major            string
	Credits          float64
	Category         string
	StandardSemester int
	Knowledge        map[string]float64
	Skills           map[string]float64
}

// Index is a name-keyed lookup over catalog entries. Entry names are
// unique within a catalog, so a later duplicate overwrites an earlier one.
type Index map[string]Entry

// BuildIndex flattens a catalog document into a name-keyed index.
// When school and major are both non-empty the index is scoped to that
// (college, major) pair; empty strings build an unscoped index across all
// majors, which is how completed items are resolved to their credit values.
// A document with no matching section yields an empty index, not an error.
func BuildIndex(doc *Document, school, major string) Index {
	idx := make(Index)
	if doc == nil {
		return idx
	}
	scoped := school != "" || major != ""

	for _, college := range doc.Colleges {
		if scoped && college.Name != school {
			continue
		}
		for _, m := range college.Majors {
			if scoped && m.Name != major {
				continue
			}
			for _, c := range m.Courses {
				idx[c.Name] = Entry{
					Name:             c.Name,
					College:          college.Name,
					Major:            m.Name,
					Credits:          c.Credits,
					Category:         c.Category,
					StandardSemester: c.StandardSemester,
					Knowledge:        c.Knowledge,
				}
			}
			for _, r := range m.Research {
				idx[r.Name] = Entry{
					Name:    r.Name,
					College: college.Name,
					Major:   m.Name,
					Skills:  r.Skills,
				}
			}
			for _, ct := range m.Competitions {
				idx[ct.Name] = Entry{
					Name:    ct.Name,
					College: college.Name,
					Major:   m.Name,
					Skills:  ct.Skills,
				}
			}
		}
	}
	return idx
}

// Lookup returns the entry for name, reporting whether it exists.
func (idx Index) Lookup(name string) (Entry, bool) {
	e, ok := idx[name]
	return e, ok
}

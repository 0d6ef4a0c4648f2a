package catalog

import "testing"

func testRequirements() *RequirementsDocument {
	return &RequirementsDocument{
		Colleges: []RequirementsCollege{{
			Name: "School of Computing",
			Majors: []MajorRequirements{{
				Name:               "Software Engineering",
				RequiredCategories: []string{"Major Core", "General Required"},
				ElectiveGroups: []ElectiveGroup{
					{Name: "Personalized Electives", Subcategories: []string{"Major Elective", "Cross-Major Elective"}, RequiredCredits: 12},
					{Name: "Humanities", Subcategories: []string{"Humanities Elective"}, RequiredCredits: 6},
				},
			}},
		}},
	}
}

func TestForMajor(t *testing.T) {
	doc := testRequirements()

	reqs, ok := doc.ForMajor("School of Computing", "Software Engineering")
	if !ok {
		t.Fatal("expected requirements for a configured major")
	}
	if len(reqs.RequiredCategories) != 2 || len(reqs.ElectiveGroups) != 2 {
		t.Errorf("wrong config loaded: %+v", reqs)
	}

	if _, ok := doc.ForMajor("School of Computing", "Philosophy"); ok {
		t.Error("unknown major should not resolve")
	}
	if _, ok := doc.ForMajor("School of Arts", "Software Engineering"); ok {
		t.Error("major under the wrong college should not resolve")
	}

	var nilDoc *RequirementsDocument
	if _, ok := nilDoc.ForMajor("x", "y"); ok {
		t.Error("nil document should not resolve")
	}
}

func TestIsRequired(t *testing.T) {
	reqs, _ := testRequirements().ForMajor("School of Computing", "Software Engineering")

	if !reqs.IsRequired("Major Core") {
		t.Error("Major Core should be required")
	}
	if reqs.IsRequired("Major Elective") {
		t.Error("elective category should not be required")
	}
}

func TestElectiveGroupFor(t *testing.T) {
	reqs, _ := testRequirements().ForMajor("School of Computing", "Software Engineering")

	group, ok := reqs.ElectiveGroupFor("Cross-Major Elective")
	if !ok || group != "Personalized Electives" {
		t.Errorf("got %q ok=%v, want Personalized Electives", group, ok)
	}
	if _, ok := reqs.ElectiveGroupFor("Major Core"); ok {
		t.Error("required category should not map to an elective bucket")
	}
}

func TestDimensionsFor(t *testing.T) {
	tags := &TagsDocument{
		Families: []TagFamily{
			{
				Family: FamilyKnowledge,
				Colleges: []TagCollege{{
					Name: "School of Computing",
					Majors: map[string][]string{
						"Software Engineering": {"Programming", "Algorithms"},
					},
				}},
			},
			{
				Family: FamilySkills,
				Colleges: []TagCollege{{
					Name: "School of Computing",
					Majors: map[string][]string{
						"Software Engineering": {"Research Ability"},
					},
				}},
			},
		},
	}

	knowledge, skills := tags.DimensionsFor("School of Computing", "Software Engineering")
	if len(knowledge) != 2 || len(skills) != 1 {
		t.Fatalf("got %d knowledge + %d skill dims, want 2 + 1", len(knowledge), len(skills))
	}

	knowledge, skills = tags.DimensionsFor("School of Computing", "Philosophy")
	if len(knowledge) != 0 || len(skills) != 0 {
		t.Errorf("unknown major should yield empty dimension sets, got %v / %v", knowledge, skills)
	}
}

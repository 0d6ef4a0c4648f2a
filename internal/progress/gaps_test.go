package progress

import (
	"testing"

	"github.com/zhihang-app/zhihang/internal/catalog"
	"github.com/zhihang-app/zhihang/internal/user"
)

func gapCourses() catalog.Index {
	return catalog.Index{
		"Data Structures":    {Name: "Data Structures", Credits: 4, Category: "Major Core"},
		"Operating Systems":  {Name: "Operating Systems", Credits: 3, Category: "Major Core"},
		"Machine Learning":   {Name: "Machine Learning", Credits: 3, Category: "Major Elective"},
		"Cloud Computing":    {Name: "Cloud Computing", Credits: 2, Category: "Cross-Major Elective"},
		"Art History":        {Name: "Art History", Credits: 2, Category: "Humanities Elective"},
		"Operating Research": {Name: "Operating Research", Credits: 3, Category: "Major Elective"},
	}
}

func gapRequirements() catalog.MajorRequirements {
	return catalog.MajorRequirements{
		Name:               "Software Engineering",
		RequiredCategories: []string{"Major Core"},
		ElectiveGroups: []catalog.ElectiveGroup{
			{Name: "Personalized Electives", Subcategories: []string{"Major Elective", "Cross-Major Elective"}, RequiredCredits: 6},
			{Name: "Humanities", Subcategories: []string{"Humanities Elective"}, RequiredCredits: 4},
		},
	}
}

func seededTasks() user.RemainingTasks {
	return user.RemainingTasks{
		MustRequiredCourses: []user.RoadmapCourse{
			{Name: "Data Structures", Semester: 2, Credits: 4},
			{Name: "Operating Systems", Semester: 4, Credits: 3},
		},
		CreditGaps: []user.CreditGap{
			{Category: "Personalized Electives", RequiredCredits: 6, RemainingCredits: 6},
			{Category: "Humanities", RequiredCredits: 4, RemainingCredits: 4},
		},
	}
}

func TestRecomputeGapsRemovesCompletedRequired(t *testing.T) {
	completed := []user.CompletedCourse{
		{Name: "Data Structures", Grade: 3.8, Semester: 2},
	}

	got := RecomputeGaps(seededTasks(), completed, gapRequirements(), gapCourses())

	if len(got.MustRequiredCourses) != 1 {
		t.Fatalf("expected 1 outstanding required course, got %d", len(got.MustRequiredCourses))
	}
	if got.MustRequiredCourses[0].Name != "Operating Systems" {
		t.Errorf("wrong course left outstanding: %s", got.MustRequiredCourses[0].Name)
	}
}

func TestRecomputeGapsNameCollisionGuard(t *testing.T) {
	// A completed course whose catalog entry is NOT in a required category
	// must not clear a same-named roadmap item.
	tasks := seededTasks()
	tasks.MustRequiredCourses = append(tasks.MustRequiredCourses,
		user.RoadmapCourse{Name: "Machine Learning", Semester: 5, Credits: 3})

	completed := []user.CompletedCourse{
		{Name: "Machine Learning", Grade: 4.0, Semester: 5},
	}

	got := RecomputeGaps(tasks, completed, gapRequirements(), gapCourses())

	for _, rc := range got.MustRequiredCourses {
		if rc.Name == "Machine Learning" {
			return
		}
	}
	t.Error("elective-category completion cleared a roadmap item with the same name")
}

func TestRecomputeGapsSubtractsElectiveCredits(t *testing.T) {
	completed := []user.CompletedCourse{
		{Name: "Machine Learning", Grade: 3.0, Semester: 5},       // 3 credits, Personalized
		{Name: "Cloud Computing", Grade: 3.0, Semester: 5},        // 2 credits, Personalized
		{Name: "Art History", Grade: 3.0, Semester: 3},            // 2 credits, Humanities
		{Name: "Data Structures", Grade: 3.0, Semester: 2},        // required, no bucket
		{Name: "Quantum Basket Weaving", Grade: 3.0, Semester: 3}, // not in catalog
	}

	got := RecomputeGaps(seededTasks(), completed, gapRequirements(), gapCourses())

	byCategory := map[string]user.CreditGap{}
	for _, g := range got.CreditGaps {
		byCategory[g.Category] = g
	}
	if got := byCategory["Personalized Electives"].RemainingCredits; got != 1 {
		t.Errorf("Personalized Electives remaining = %v, want 1", got)
	}
	if got := byCategory["Humanities"].RemainingCredits; got != 2 {
		t.Errorf("Humanities remaining = %v, want 2", got)
	}
}

func TestRecomputeGapsFloorsAtZero(t *testing.T) {
	completed := []user.CompletedCourse{
		{Name: "Machine Learning", Grade: 3.0, Semester: 5},
		{Name: "Operating Research", Grade: 3.0, Semester: 6},
		{Name: "Cloud Computing", Grade: 3.0, Semester: 5},
	}

	got := RecomputeGaps(seededTasks(), completed, gapRequirements(), gapCourses())

	for _, g := range got.CreditGaps {
		if g.Category == "Personalized Electives" {
			// 8 earned credits against a 6-credit quota.
			if g.RemainingCredits != 0 {
				t.Errorf("remaining = %v, want 0", g.RemainingCredits)
			}
			if g.RequiredCredits != 6 {
				t.Errorf("quota target changed: %v", g.RequiredCredits)
			}
			return
		}
	}
	t.Fatal("Personalized Electives bucket missing from result")
}

func TestRecomputeGapsExcessDoesNotCarry(t *testing.T) {
	completed := []user.CompletedCourse{
		{Name: "Machine Learning", Grade: 3.0, Semester: 5},
		{Name: "Operating Research", Grade: 3.0, Semester: 6},
		{Name: "Cloud Computing", Grade: 3.0, Semester: 5},
	}

	got := RecomputeGaps(seededTasks(), completed, gapRequirements(), gapCourses())

	for _, g := range got.CreditGaps {
		if g.Category == "Humanities" && g.RemainingCredits != 4 {
			t.Errorf("excess personalized credit leaked into Humanities: remaining = %v", g.RemainingCredits)
		}
	}
}

package progress

import (
	"github.com/zhihang-app/zhihang/internal/catalog"
	"github.com/zhihang-app/zhihang/internal/user"
)

// RecomputeGaps derives the outstanding-requirements view from the
// completed-course history.
//
// A mandatory course leaves the outstanding list only when its name is
// completed AND its catalog category is in the major's required set; the
// double check guards against a name collision with a non-required course.
// Elective gaps subtract earned credits from the registration-time quota,
// floored at zero. Excess credit in one bucket never carries to another,
// and targets are never recomputed upward from the live catalog: a catalog
// edit after enrollment must not silently reset a student's progress.
func RecomputeGaps(
	tasks user.RemainingTasks,
	completed []user.CompletedCourse,
	reqs catalog.MajorRequirements,
	courses catalog.Index,
) user.RemainingTasks {
	done := make(map[string]bool, len(completed))
	for _, c := range completed {
		done[c.Name] = true
	}

	outstanding := make([]user.RoadmapCourse, 0, len(tasks.MustRequiredCourses))
	for _, rc := range tasks.MustRequiredCourses {
		if done[rc.Name] {
			if entry, ok := courses.Lookup(rc.Name); ok && reqs.IsRequired(entry.Category) {
				continue
			}
		}
		outstanding = append(outstanding, rc)
	}

	earned := make(map[string]float64)
	for _, c := range completed {
		entry, ok := courses.Lookup(c.Name)
		if !ok {
			continue
		}
		if group, ok := reqs.ElectiveGroupFor(entry.Category); ok {
			earned[group] += entry.Credits
		}
	}

	gaps := make([]user.CreditGap, len(tasks.CreditGaps))
	for i, g := range tasks.CreditGaps {
		remaining := g.RequiredCredits - earned[g.Category]
		if remaining < 0 {
			remaining = 0
		}
		g.RemainingCredits = remaining
		gaps[i] = g
	}

	return user.RemainingTasks{
		MustRequiredCourses: outstanding,
		CreditGaps:          gaps,
	}
}

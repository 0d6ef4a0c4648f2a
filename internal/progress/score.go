package progress

import (
	"math"

	"go.uber.org/zap"

	"github.com/zhihang-app/zhihang/internal/catalog"
	"github.com/zhihang-app/zhihang/internal/user"
)

// Aggregates are the credit and grade totals produced alongside the
// dimension scores.
type Aggregates struct {
	TotalCredits float64
	AverageGrade float64
}

// RecomputeScores rebuilds both dimension sets and the credit/grade
// aggregates from the completed-item history. Every dimension is reset to
// zero first, so feeding the same history twice produces the same result.
//
// Courses contribute round2(weight*credits*grade) to knowledge dimensions
// plus credits and credit-weighted grade points to the aggregates.
// Research and competitions contribute their flat skill weights; they are
// not credit-bearing. Items missing from their catalog contribute nothing
// and are logged as a data-quality signal, never an error. Dimensions not
// present in the user's fixed sets are dropped.
func RecomputeScores(
	knowledge, skills map[string]float64,
	ap user.AcademicProgress,
	courses, research, competitions catalog.Index,
	log *zap.Logger,
) Aggregates {
	if log == nil {
		log = zap.NewNop()
	}

	for k := range knowledge {
		knowledge[k] = 0
	}
	for k := range skills {
		skills[k] = 0
	}

	var totalCredits, gradePoints float64

	for _, done := range ap.CompletedCourses {
		entry, ok := courses.Lookup(done.Name)
		if !ok {
			log.Warn("completed course not in catalog, skipped for scoring",
				zap.String("course", done.Name))
			continue
		}
		totalCredits += entry.Credits
		gradePoints += entry.Credits * done.Grade

		for dim, weight := range entry.Knowledge {
			if _, ok := knowledge[dim]; ok {
				knowledge[dim] += round2(weight * entry.Credits * done.Grade)
			}
		}
	}

	for _, done := range ap.ResearchDone {
		entry, ok := research.Lookup(done.Name)
		if !ok {
			log.Warn("completed research not in catalog, skipped for scoring",
				zap.String("research", done.Name))
			continue
		}
		addSkills(skills, entry.Skills)
	}

	for _, done := range ap.CompetitionsDone {
		entry, ok := competitions.Lookup(done.Name)
		if !ok {
			log.Warn("completed competition not in catalog, skipped for scoring",
				zap.String("competition", done.Name))
			continue
		}
		addSkills(skills, entry.Skills)
	}

	agg := Aggregates{TotalCredits: totalCredits}
	if totalCredits > 0 {
		agg.AverageGrade = round2(gradePoints / totalCredits)
	}
	return agg
}

func addSkills(skills map[string]float64, weights map[string]float64) {
	for dim, w := range weights {
		if _, ok := skills[dim]; ok {
			skills[dim] += w
		}
	}
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

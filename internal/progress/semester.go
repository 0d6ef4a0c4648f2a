package progress

import "time"

// MaxSemester is the last semester of the standard eight-term curriculum.
const MaxSemester = 8

// warningSemester is the first semester the graduate-progress check fires.
const warningSemester = 7

// CurrentSemester derives the academic semester index for a student who
// enrolled in September of enrollmentYear, evaluated at asOf.
//
// The academic year has two terms: autumn (October through March, crossing
// the new year) and spring/summer (April through September). The index is
// 2*(termYear-enrollmentYear)+termOffset+1, clamped to [1, MaxSemester].
// September of the enrollment year itself counts as semester 1.
func CurrentSemester(enrollmentYear int, asOf time.Time) int {
	year, month := asOf.Year(), asOf.Month()

	if year == enrollmentYear && month == time.September {
		return 1
	}

	var termYear, termOffset int
	switch {
	case month >= time.October:
		// Autumn term of the current calendar year.
		termYear, termOffset = year, 0
	case month <= time.March:
		// Tail of the autumn term that started the previous year.
		termYear, termOffset = year-1, 0
	default:
		// Spring/summer term of the academic year that started the
		// previous autumn.
		termYear, termOffset = year-1, 1
	}

	semester := 2*(termYear-enrollmentYear) + termOffset + 1
	if semester < 1 {
		return 1
	}
	if semester > MaxSemester {
		return MaxSemester
	}
	return semester
}

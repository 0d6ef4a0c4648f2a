package user

import (
	"fmt"
	"strings"
)

// Record is the full persisted state for one student. It is the unit of
// persistence: repositories read and write it whole, never field by field.
type Record struct {
	Profile          Profile          `json:"profile"`
	AcademicProgress AcademicProgress `json:"academic_progress"`
	RemainingTasks   RemainingTasks   `json:"remaining_tasks"`
	PathReview       PathReview       `json:"path_review"`

	// Knowledge and Skills are the two dimension sets. Their key sets are
	// seeded from the tags catalog at registration and never grow or
	// shrink afterwards; catalog weights for unknown keys are dropped.
	Knowledge map[string]float64 `json:"knowledge"`
	Skills    map[string]float64 `json:"skills"`

	// TotalCredits and AverageGrade are caches of a full recompute over
	// CompletedCourses and the course catalog, never mutated on their own.
	TotalCredits float64 `json:"total_credits"`
	AverageGrade float64 `json:"average_grades"`
}

// Profile holds the registration-time attributes that decide which catalog
// sections apply to the student.
type Profile struct {
	Name           string `json:"name"`
	StudentID      string `json:"student_id"`
	EnrollmentYear int    `json:"enrollment_year"`
	School         string `json:"school"`
	Major          string `json:"major"`
	Target         string `json:"target"`
}

// AcademicProgress is the raw source-of-truth history of completed items.
type AcademicProgress struct {
	CurrentSemester  int                    `json:"current_semester"`
	CompletedCourses []CompletedCourse      `json:"completed_courses"`
	ResearchDone     []CompletedResearch    `json:"research_done"`
	CompetitionsDone []CompletedCompetition `json:"competitions_done"`
}

// CompletedCourse records one passed course. At most one record exists per
// course name; resubmission replaces the earlier record.
type CompletedCourse struct {
	Name     string  `json:"name"`
	Grade    float64 `json:"grade"`
	Semester int     `json:"semester"`
}

// CompletedResearch records one finished research project.
type CompletedResearch struct {
	Name     string `json:"name"`
	Semester int    `json:"semester"`
}

// CompletedCompetition records one finished competition. Award is the tier
// earned; it is kept for display and does not weight skill contribution.
type CompletedCompetition struct {
	Name     string `json:"name"`
	Semester int    `json:"semester"`
	Award    string `json:"award,omitempty"`
}

// RemainingTasks is the outstanding-requirements view derived by the gap
// tracker.
type RemainingTasks struct {
	MustRequiredCourses []RoadmapCourse `json:"must_required_courses"`
	CreditGaps          []CreditGap     `json:"credit_gaps"`
}

// RoadmapCourse is one mandatory course still outstanding.
type RoadmapCourse struct {
	Name     string  `json:"name"`
	Semester int     `json:"semester"`
	Credits  float64 `json:"credits"`
}

// CreditGap is one personalized-elective quota bucket. RequiredCredits is
// fixed when the student registers; RemainingCredits is recomputed from the
// completed-course history on every update and never goes below zero.
type CreditGap struct {
	Category         string  `json:"category"`
	RequiredCredits  float64 `json:"required_credits"`
	RemainingCredits float64 `json:"remaining_credits"`
}

// PathReview is the student's self-authored path review and its peer
// endorsement counters.
type PathReview struct {
	IsPublic    bool   `json:"is_public"`
	Content     string `json:"content"`
	LikeCount   int    `json:"like_count"`
	CurrentRank int    `json:"current_rank"`
}

// ID derives the record key for a student number, zero-padded to ten
// digits for stable lexicographic ordering in the store.
func ID(studentID string) string {
	s := strings.TrimSpace(studentID)
	if len(s) < 10 {
		s = strings.Repeat("0", 10-len(s)) + s
	}
	return fmt.Sprintf("user_%s", s)
}

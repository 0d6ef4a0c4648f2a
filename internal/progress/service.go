package progress

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/zhihang-app/zhihang/internal/catalog"
	"github.com/zhihang-app/zhihang/internal/user"
)

// Update is a full replacement of the user's completed-item lists, not a
// delta. The caller appends new items to the prior history before calling.
type Update struct {
	Courses      []user.CompletedCourse      `json:"courses"`
	Research     []user.CompletedResearch    `json:"research"`
	Competitions []user.CompletedCompetition `json:"competitions"`
}

// Validate rejects malformed records before any computation begins.
func (u Update) Validate() error {
	for _, c := range u.Courses {
		if c.Name == "" {
			return fmt.Errorf("course record with empty name")
		}
		if c.Grade < 0 || math.IsNaN(c.Grade) {
			return fmt.Errorf("course %q: invalid grade %v", c.Name, c.Grade)
		}
		if c.Semester < 1 || c.Semester > MaxSemester {
			return fmt.Errorf("course %q: semester %d out of range [1,%d]", c.Name, c.Semester, MaxSemester)
		}
	}
	for _, r := range u.Research {
		if r.Name == "" {
			return fmt.Errorf("research record with empty name")
		}
	}
	for _, c := range u.Competitions {
		if c.Name == "" {
			return fmt.Errorf("competition record with empty name")
		}
	}
	return nil
}

// Service is the progress-update orchestrator. One Apply call runs to
// completion and persists the record once at the end, or not at all.
type Service struct {
	users    user.Repository
	catalogs catalog.Source
	log      *zap.Logger
	now      func() time.Time
}

// NewService creates a progress service.
func NewService(users user.Repository, catalogs catalog.Source, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{users: users, catalogs: catalogs, log: log, now: time.Now}
}

// Apply replaces the user's completed-item lists with upd, recomputes
// dimension scores, credit/grade aggregates and requirement gaps, and
// persists the updated record. The write happens once, after everything
// succeeded; any earlier failure leaves the stored record untouched.
func (s *Service) Apply(ctx context.Context, userID string, upd Update) error {
	if err := upd.Validate(); err != nil {
		return err
	}

	rec, err := s.users.Get(ctx, userID)
	if err != nil {
		return err
	}

	rec.AcademicProgress.CompletedCourses = dedupeByName(upd.Courses,
		func(c user.CompletedCourse) string { return c.Name })
	rec.AcademicProgress.ResearchDone = dedupeByName(upd.Research,
		func(r user.CompletedResearch) string { return r.Name })
	rec.AcademicProgress.CompetitionsDone = dedupeByName(upd.Competitions,
		func(c user.CompletedCompetition) string { return c.Name })

	courseDoc, err := s.catalogs.Load(ctx, catalog.KindCourses)
	if err != nil {
		return fmt.Errorf("load courses catalog: %w", err)
	}
	researchDoc, err := s.catalogs.Load(ctx, catalog.KindResearch)
	if err != nil {
		return fmt.Errorf("load research catalog: %w", err)
	}
	competitionDoc, err := s.catalogs.Load(ctx, catalog.KindCompetitions)
	if err != nil {
		return fmt.Errorf("load competitions catalog: %w", err)
	}

	// Unscoped indexes: completed items resolve their credit values and
	// weights regardless of which catalog section they came from.
	courseIdx := catalog.BuildIndex(courseDoc, "", "")
	researchIdx := catalog.BuildIndex(researchDoc, "", "")
	competitionIdx := catalog.BuildIndex(competitionDoc, "", "")

	agg := RecomputeScores(rec.Knowledge, rec.Skills, rec.AcademicProgress,
		courseIdx, researchIdx, competitionIdx, s.log)
	rec.TotalCredits = agg.TotalCredits
	rec.AverageGrade = agg.AverageGrade

	reqDoc, err := s.catalogs.Requirements(ctx)
	if err != nil {
		return fmt.Errorf("load requirements catalog: %w", err)
	}
	if reqs, ok := reqDoc.ForMajor(rec.Profile.School, rec.Profile.Major); ok {
		rec.RemainingTasks = RecomputeGaps(rec.RemainingTasks,
			rec.AcademicProgress.CompletedCourses, reqs, courseIdx)
	} else {
		// No requirement config for this major: keep the stored tasks
		// instead of wiping a student's remaining-requirements view.
		s.log.Warn("no requirements config for major, keeping stored tasks",
			zap.String("user_id", userID),
			zap.String("school", rec.Profile.School),
			zap.String("major", rec.Profile.Major))
	}

	rec.AcademicProgress.CurrentSemester = CurrentSemester(rec.Profile.EnrollmentYear, s.now())

	if err := s.users.Put(ctx, userID, rec); err != nil {
		return fmt.Errorf("persist updated record: %w", err)
	}

	s.log.Info("progress updated",
		zap.String("user_id", userID),
		zap.Int("courses", len(rec.AcademicProgress.CompletedCourses)),
		zap.Float64("total_credits", rec.TotalCredits),
		zap.Float64("average_grade", rec.AverageGrade))
	return nil
}

// Warning reports the outstanding requirements of a student close to
// graduation.
type Warning struct {
	UserID              string               `json:"user_id"`
	CurrentSemester     int                  `json:"current_semester"`
	OutstandingRequired []user.RoadmapCourse `json:"outstanding_required"`
	OutstandingGaps     []user.CreditGap     `json:"outstanding_gaps"`
}

// GraduateWarning flags a user whose current semester has reached the late
// threshold while required courses or elective credit gaps remain. It
// returns nil when there is nothing to warn about.
func (s *Service) GraduateWarning(ctx context.Context, userID string) (*Warning, error) {
	rec, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	semester := CurrentSemester(rec.Profile.EnrollmentYear, s.now())
	if semester < warningSemester {
		return nil, nil
	}

	var gaps []user.CreditGap
	for _, g := range rec.RemainingTasks.CreditGaps {
		if g.RemainingCredits > 0 {
			gaps = append(gaps, g)
		}
	}

	if len(rec.RemainingTasks.MustRequiredCourses) == 0 && len(gaps) == 0 {
		return nil, nil
	}

	return &Warning{
		UserID:              userID,
		CurrentSemester:     semester,
		OutstandingRequired: rec.RemainingTasks.MustRequiredCourses,
		OutstandingGaps:     gaps,
	}, nil
}

// dedupeByName keeps the last record for each name while preserving the
// order of first occurrence, so resubmitting a course with a corrected
// grade overwrites the earlier record in place.
func dedupeByName[T any](items []T, name func(T) string) []T {
	pos := make(map[string]int, len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		n := name(item)
		if i, ok := pos[n]; ok {
			out[i] = item
			continue
		}
		pos[n] = len(out)
		out = append(out, item)
	}
	return out
}

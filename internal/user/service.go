package user

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/zhihang-app/zhihang/internal/catalog"
)

var (
	// ErrNotFound is returned when a user id resolves to no stored record.
	ErrNotFound = errors.New("user not found")
	// ErrExists is returned when registering an already-registered student id.
	ErrExists = errors.New("student id already registered")
	// ErrMajorNotFound is returned when the requirements catalog has no
	// section for the student's (school, major) pair.
	ErrMajorNotFound = errors.New("school/major not found in requirements catalog")
)

// Repository is the persistence contract for user records. Implementations
// overwrite whole records and must serialize concurrent writes to the same
// record (single writer per record).
type Repository interface {
	Get(ctx context.Context, id string) (*Record, error)
	Put(ctx context.Context, id string, rec *Record) error
	Delete(ctx context.Context, id string) error
	All(ctx context.Context) (map[string]*Record, error)
}

// Service handles registration, login and profile-scoped catalog queries.
type Service struct {
	users    Repository
	catalogs catalog.Source
	log      *zap.Logger
}

// NewService creates a user service.
func NewService(users Repository, catalogs catalog.Source, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{users: users, catalogs: catalogs, log: log}
}

// Register creates a new user record: seeds the fixed dimension sets from
// the tags catalog, the mandatory roadmap from the courses catalog and the
// elective credit-gap targets from the requirements catalog. Returns the
// new record's id.
func (s *Service) Register(ctx context.Context, in RegisterInput) (string, error) {
	if err := in.Validate(); err != nil {
		return "", err
	}

	id := ID(in.StudentID)
	if _, err := s.users.Get(ctx, id); err == nil {
		return "", ErrExists
	} else if !errors.Is(err, ErrNotFound) {
		return "", fmt.Errorf("check existing user: %w", err)
	}

	reqDoc, err := s.catalogs.Requirements(ctx)
	if err != nil {
		return "", fmt.Errorf("load requirements catalog: %w", err)
	}
	reqs, ok := reqDoc.ForMajor(in.School, in.Major)
	if !ok {
		return "", ErrMajorNotFound
	}

	tags, err := s.catalogs.Tags(ctx)
	if err != nil {
		return "", fmt.Errorf("load tags catalog: %w", err)
	}
	knowledgeDims, skillDims := tags.DimensionsFor(in.School, in.Major)

	coursesDoc, err := s.catalogs.Load(ctx, catalog.KindCourses)
	if err != nil {
		return "", fmt.Errorf("load courses catalog: %w", err)
	}

	rec := &Record{
		Profile: Profile{
			Name:           in.Name,
			StudentID:      in.StudentID,
			EnrollmentYear: in.EnrollmentYear,
			School:         in.School,
			Major:          in.Major,
			Target:         in.Target,
		},
		AcademicProgress: AcademicProgress{
			CurrentSemester:  in.CurrentSemester,
			CompletedCourses: []CompletedCourse{},
			ResearchDone:     []CompletedResearch{},
			CompetitionsDone: []CompletedCompetition{},
		},
		RemainingTasks: RemainingTasks{
			MustRequiredCourses: buildRoadmap(coursesDoc, in.School, in.Major, reqs),
			CreditGaps:          seedCreditGaps(reqs),
		},
		Knowledge: zeroDimensions(knowledgeDims),
		Skills:    zeroDimensions(skillDims),
	}

	if err := s.users.Put(ctx, id, rec); err != nil {
		return "", fmt.Errorf("persist new user: %w", err)
	}

	s.log.Info("user registered",
		zap.String("user_id", id),
		zap.String("school", in.School),
		zap.String("major", in.Major),
		zap.Int("knowledge_dims", len(rec.Knowledge)),
		zap.Int("skill_dims", len(rec.Skills)))
	return id, nil
}

// Login checks that a student id maps to an existing record and returns it
// together with the record id.
func (s *Service) Login(ctx context.Context, studentID string) (string, *Record, error) {
	id := ID(studentID)
	rec, err := s.users.Get(ctx, id)
	if err != nil {
		return "", nil, err
	}
	return id, rec, nil
}

// Get loads a user record by id.
func (s *Service) Get(ctx context.Context, id string) (*Record, error) {
	return s.users.Get(ctx, id)
}

// Delete removes a user record.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("user deleted", zap.String("user_id", id))
	return nil
}

// SelectionOptions lists the catalog items the student's major offers,
// used to populate the progress-report forms.
type SelectionOptions struct {
	Courses      []string            `json:"courses"`
	Research     []string            `json:"research"`
	Competitions []string            `json:"competitions"`
	Awards       map[string][]string `json:"awards"`
}

// Options returns the selectable courses, research projects and
// competitions (with their award tiers) for the user's major.
func (s *Service) Options(ctx context.Context, id string) (*SelectionOptions, error) {
	rec, err := s.users.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	school, major := rec.Profile.School, rec.Profile.Major

	opts := &SelectionOptions{
		Courses:      []string{},
		Research:     []string{},
		Competitions: []string{},
		Awards:       map[string][]string{},
	}

	for _, kind := range []catalog.Kind{catalog.KindCourses, catalog.KindResearch, catalog.KindCompetitions} {
		doc, err := s.catalogs.Load(ctx, kind)
		if err != nil {
			return nil, fmt.Errorf("load %s catalog: %w", kind, err)
		}
		for _, college := range doc.Colleges {
			if college.Name != school {
				continue
			}
			for _, m := range college.Majors {
				if m.Name != major {
					continue
				}
				for _, c := range m.Courses {
					opts.Courses = append(opts.Courses, c.Name)
				}
				for _, r := range m.Research {
					opts.Research = append(opts.Research, r.Name)
				}
				for _, ct := range m.Competitions {
					opts.Competitions = append(opts.Competitions, ct.Name)
					awards := ct.PotentialAwards
					if len(awards) == 0 {
						awards = []string{"Participation"}
					}
					opts.Awards[ct.Name] = awards
				}
			}
		}
	}
	return opts, nil
}

// Roadmap rebuilds the mandatory-course roadmap for the user's major,
// syncs it into the stored record and returns it. Used when a first-term
// student has no history yet.
func (s *Service) Roadmap(ctx context.Context, id string) ([]RoadmapCourse, error) {
	rec, err := s.users.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	reqDoc, err := s.catalogs.Requirements(ctx)
	if err != nil {
		return nil, fmt.Errorf("load requirements catalog: %w", err)
	}
	reqs, ok := reqDoc.ForMajor(rec.Profile.School, rec.Profile.Major)
	if !ok {
		return nil, ErrMajorNotFound
	}

	coursesDoc, err := s.catalogs.Load(ctx, catalog.KindCourses)
	if err != nil {
		return nil, fmt.Errorf("load courses catalog: %w", err)
	}

	roadmap := buildRoadmap(coursesDoc, rec.Profile.School, rec.Profile.Major, reqs)
	rec.RemainingTasks.MustRequiredCourses = roadmap
	if err := s.users.Put(ctx, id, rec); err != nil {
		return nil, fmt.Errorf("persist roadmap: %w", err)
	}
	return roadmap, nil
}

// buildRoadmap collects the major's required-category courses sorted by
// their standard semester.
func buildRoadmap(doc *catalog.Document, school, major string, reqs catalog.MajorRequirements) []RoadmapCourse {
	roadmap := []RoadmapCourse{}
	for _, college := range doc.Colleges {
		if college.Name != school {
			continue
		}
		for _, m := range college.Majors {
			if m.Name != major {
				continue
			}
			for _, c := range m.Courses {
				if reqs.IsRequired(c.Category) {
					roadmap = append(roadmap, RoadmapCourse{
						Name:     c.Name,
						Semester: c.StandardSemester,
						Credits:  c.Credits,
					})
				}
			}
		}
	}
	sort.SliceStable(roadmap, func(i, j int) bool {
		return roadmap[i].Semester < roadmap[j].Semester
	})
	return roadmap
}

func seedCreditGaps(reqs catalog.MajorRequirements) []CreditGap {
	gaps := make([]CreditGap, 0, len(reqs.ElectiveGroups))
	for _, g := range reqs.ElectiveGroups {
		gaps = append(gaps, CreditGap{
			Category:         g.Name,
			RequiredCredits:  g.RequiredCredits,
			RemainingCredits: g.RequiredCredits,
		})
	}
	return gaps
}

func zeroDimensions(names []string) map[string]float64 {
	dims := make(map[string]float64, len(names))
	for _, n := range names {
		dims[n] = 0
	}
	return dims
}

package advisor

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/zhihang-app/zhihang/internal/catalog"
	"github.com/zhihang-app/zhihang/internal/user"
)

const planSystemPrompt = `You are an academic planning advisor for undergraduate students. Using the student's profile, their progress so far and the catalogs of their major, give concrete, actionable recommendations: which personalized elective courses to take next semester, which research projects fit their target, and which competitions to enter. Ground every suggestion in the catalog data provided; never invent courses, projects or competitions. Answer in the language the student writes in.`

const matchSystemPrompt = `You identify students with similar learning trajectories. Compare the target student's completed courses, research, competitions, dimension scores and stated target against every other student in the database, and pick the ones whose path is most similar. Respond with user ids from the database only.`

// majorScope is the slice of one catalog document that applies to a major,
// serialized into the prompt context.
type majorScope struct {
	College string        `json:"college"`
	Major   catalog.Major `json:"major"`
}

// filterByMajor extracts the sections of a catalog document that belong to
// the given major, across all colleges offering it.
func filterByMajor(doc *catalog.Document, major string) []majorScope {
	var out []majorScope
	if doc == nil {
		return out
	}
	for _, college := range doc.Colleges {
		for _, m := range college.Majors {
			if m.Name == major {
				out = append(out, majorScope{College: college.Name, Major: m})
			}
		}
	}
	return out
}

// buildPlanBasePrompt assembles the frozen first-turn context of a plan
// session: the student's record plus the major-scoped catalogs.
func buildPlanBasePrompt(rec *user.Record, courses, research, competitions *catalog.Document, reqs *catalog.RequirementsDocument) (string, error) {
	var b strings.Builder

	if err := writeJSONSection(&b, "Student Profile", rec); err != nil {
		return "", err
	}

	major := rec.Profile.Major
	sections := []struct {
		label string
		data  any
	}{
		{"Courses", filterByMajor(courses, major)},
		{"Research Projects", filterByMajor(research, major)},
		{"Competitions", filterByMajor(competitions, major)},
		{"Degree Requirements", reqs},
	}
	for _, s := range sections {
		if err := writeJSONSection(&b, s.label, s.data); err != nil {
			return "", err
		}
	}

	return b.String(), nil
}

func writeJSONSection(b *strings.Builder, label string, data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal %s context: %w", label, err)
	}
	fmt.Fprintf(b, "%s:\n%s\n\n", label, raw)
	return nil
}

// buildMatchPrompt assembles the peer-matching context: the target user's
// record and the whole user database.
func buildMatchPrompt(targetID string, target *user.Record, all map[string]*user.Record) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Target User ID: %s\n\n", targetID)
	if err := writeJSONSection(&b, "Target User Profile", target); err != nil {
		return "", err
	}
	if err := writeJSONSection(&b, "All Users Database", all); err != nil {
		return "", err
	}
	b.WriteString("Identify the 3 most similar users based on learning experiences.\n")
	return b.String(), nil
}

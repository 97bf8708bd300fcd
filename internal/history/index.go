// Package history indexes a student's completed courses and derives the
// grade and retake counts the risk rules consume.
package history

import (
	"fmt"
	"strings"

	"github.com/abhisek/uniguide/internal/record"
)

// NormalizeID folds a course identifier for matching: "CSC101",
// " csc101 " and "Csc101" share one key.
func NormalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// Index maps normalized course identifiers to their final grade.
// When a course appears more than once the later entry wins.
type Index struct {
	grades map[string]record.Grade
}

// Build indexes past courses. Entries with unrecognized grades are skipped;
// an entry with an empty identifier is malformed and fails the build.
func Build(past []record.PastCourse) (*Index, error) {
	ix := &Index{grades: make(map[string]record.Grade, len(past))}
	for i, c := range past {
		id := NormalizeID(c.Course)
		if id == "" {
			return nil, fmt.Errorf("past course %d: empty course identifier", i+1)
		}
		g, ok := record.ParseGrade(c.Grade)
		if !ok {
			continue
		}
		ix.grades[id] = g
	}
	return ix, nil
}

// Grade returns the indexed grade for a course identifier in any casing.
func (ix *Index) Grade(id string) (record.Grade, bool) {
	g, ok := ix.grades[NormalizeID(id)]
	return g, ok
}

// Len returns the number of distinct indexed courses.
func (ix *Index) Len() int {
	return len(ix.grades)
}

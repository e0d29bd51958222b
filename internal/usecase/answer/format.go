package answer

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/pensum/internal/domain/course"
)

// NoCourses is returned when a list would be empty.
const NoCourses = "No courses were found."

// FormatList renders records as a numbered list. Prerequisites are shown only
// when the course has any.
func FormatList(records []course.Record) string {
	if len(records) == 0 {
		return NoCourses
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d course(s):\n\n", len(records))
	for i, r := range records {
		fmt.Fprintf(&b, "%d. Subject: %s\n", i+1, r.Name)
		fmt.Fprintf(&b, "   Code: %s\n", r.Code)
		fmt.Fprintf(&b, "   Credits: %s\n", r.Credits)
		fmt.Fprintf(&b, "   Typology: %s\n", r.Typology)
		if r.HasPrerequisites() {
			fmt.Fprintf(&b, "   Prerequisites: %s\n", r.Prerequisites)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// NoCoursesForSemester is the answer for a semester-scoped listing with no matches.
func NoCoursesForSemester(semester int) string {
	return fmt.Sprintf("No courses were found for semester %d.", semester)
}

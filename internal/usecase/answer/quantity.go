package answer

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/pensum/internal/domain/typology"
)

// countKey is a (kind, category) combination. An empty field means "any".
type countKey struct {
	kind     typology.Kind
	category typology.Category
}

// courseCounts is static curriculum data and is not derived from the store.
// It must be updated by hand whenever the corpus changes.
var courseCounts = map[countKey]int{
	{"", ""}: 59,

	{typology.Mandatory, ""}: 49,
	{typology.Elective, ""}:  10,

	{"", typology.Foundational}:    23,
	{"", typology.Disciplinary}:    31,
	{"", typology.ForeignLanguage}: 4,
	{"", typology.Capstone}:        1,

	{typology.Mandatory, typology.Foundational}:    20,
	{typology.Mandatory, typology.Disciplinary}:    24,
	{typology.Mandatory, typology.ForeignLanguage}: 4,
	{typology.Mandatory, typology.Capstone}:        1,

	{typology.Elective, typology.Foundational}:    3,
	{typology.Elective, typology.Disciplinary}:    7,
	{typology.Elective, typology.ForeignLanguage}: 0,
	{typology.Elective, typology.Capstone}:        0,
}

// CourseCount returns the number of courses for a combination; empty values mean "any".
func CourseCount(kind typology.Kind, category typology.Category) int {
	return courseCounts[countKey{kind: kind, category: category}]
}

// QuantitySentence reports the course count for a combination.
func QuantitySentence(kind typology.Kind, category typology.Category) string {
	n := CourseCount(kind, category)

	var words []string
	if l := kind.Label(); l != "" {
		words = append(words, l)
	}
	if l := category.Label(); l != "" {
		words = append(words, l)
	}
	desc := ""
	if len(words) > 0 {
		desc = strings.Join(words, " ") + " "
	}

	if n == 1 {
		return fmt.Sprintf("There is 1 %scourse in the curriculum.", desc)
	}
	return fmt.Sprintf("There are %d %scourses in the curriculum.", n, desc)
}

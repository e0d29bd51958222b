// Package question holds the lexical analysis shared by intent classification,
// filter building and field extraction. Every phrase table is matched on whole
// normalized tokens, so "semester 1" never matches inside "semester 10".
package question

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/kailas-cloud/pensum/internal/domain/course"
	"github.com/kailas-cloud/pensum/internal/domain/typology"
)

// Text is a question together with its normalized form.
type Text struct {
	raw    string
	norm   string
	padded string
}

// Parse normalizes q once for repeated phrase matching.
func Parse(q string) Text {
	n := Normalize(q)
	return Text{raw: q, norm: n, padded: " " + n + " "}
}

// Normalize lowercases q, turns every rune that is neither a letter nor a digit
// into a space and collapses runs of spaces. Input is composed first, so a
// decomposed "código" stays one token; combining marks left over are dropped.
// An ordinal indicator after a digit ("1°", "2ª") becomes a letter suffix ("1o", "2a").
func Normalize(q string) string {
	var b strings.Builder
	b.Grow(len(q))
	pendingSpace := false
	var last rune
	for _, r := range strings.ToLower(norm.NFC.String(q)) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		if unicode.IsDigit(last) && !pendingSpace {
			switch r {
			case '°', 'º':
				r = 'o'
			case 'ª':
				r = 'a'
			}
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
			last = r
			continue
		}
		pendingSpace = true
	}
	return b.String()
}

// Raw returns the question as received.
func (t Text) Raw() string { return t.raw }

// Normalized returns the normalized question.
func (t Text) Normalized() string { return t.norm }

// IsEmpty reports whether the question carries no letters or digits.
func (t Text) IsEmpty() bool { return t.norm == "" }

// Tokens returns the normalized tokens.
func (t Text) Tokens() []string { return strings.Fields(t.norm) }

// HasPhrase reports whether the normalized phrase occurs on token boundaries.
func (t Text) HasPhrase(phrase string) bool {
	return strings.Contains(t.padded, " "+phrase+" ")
}

// HasAny reports whether any phrase occurs.
func (t Text) HasAny(phrases []string) bool {
	_, ok := t.FirstOf(phrases)
	return ok
}

// FirstOf returns the first phrase of the table, in table order, that occurs in the question.
func (t Text) FirstOf(phrases []string) (string, bool) {
	for _, p := range phrases {
		if t.HasPhrase(p) {
			return p, true
		}
	}
	return "", false
}

// Equals reports whether the whole normalized question is one of the phrases.
func (t Text) Equals(phrases []string) bool {
	for _, p := range phrases {
		if t.norm == p {
			return true
		}
	}
	return false
}

type ordinal struct {
	token string
	n     int
}

// ordinals is checked in order before the numeric fallback; the first hit wins.
// The "No"/"Na" forms come from Normalize rewriting "1°" and "1ª".
var ordinals = []ordinal{
	{"primer", 1}, {"primero", 1}, {"primera", 1}, {"1er", 1}, {"1ro", 1}, {"1ra", 1}, {"1o", 1}, {"1a", 1}, {"first", 1}, {"1st", 1},
	{"segundo", 2}, {"segunda", 2}, {"2do", 2}, {"2da", 2}, {"2o", 2}, {"2a", 2}, {"second", 2}, {"2nd", 2},
	{"tercer", 3}, {"tercero", 3}, {"tercera", 3}, {"3er", 3}, {"3ro", 3}, {"3ra", 3}, {"3o", 3}, {"3a", 3}, {"third", 3}, {"3rd", 3},
	{"cuarto", 4}, {"cuarta", 4}, {"4to", 4}, {"4ta", 4}, {"4o", 4}, {"4a", 4}, {"fourth", 4}, {"4th", 4},
	{"quinto", 5}, {"quinta", 5}, {"5to", 5}, {"5ta", 5}, {"5o", 5}, {"5a", 5}, {"fifth", 5}, {"5th", 5},
	{"sexto", 6}, {"sexta", 6}, {"6to", 6}, {"6ta", 6}, {"6o", 6}, {"6a", 6}, {"sixth", 6}, {"6th", 6},
	{"séptimo", 7}, {"septimo", 7}, {"séptima", 7}, {"septima", 7}, {"7mo", 7}, {"7ma", 7}, {"7o", 7}, {"7a", 7}, {"seventh", 7}, {"7th", 7},
	{"octavo", 8}, {"octava", 8}, {"8vo", 8}, {"8va", 8}, {"8o", 8}, {"8a", 8}, {"eighth", 8}, {"8th", 8},
	{"noveno", 9}, {"novena", 9}, {"9no", 9}, {"9na", 9}, {"9o", 9}, {"9a", 9}, {"ninth", 9}, {"9th", 9},
	{"décimo", 10}, {"decimo", 10}, {"décima", 10}, {"decima", 10}, {"10mo", 10}, {"10ma", 10}, {"10o", 10}, {"10a", 10}, {"tenth", 10}, {"10th", 10},
}

// semesterWords are the nouns an ordinal must stand next to.
var semesterWords = []string{"semester", "semestre"}

// semesterNumber runs on normalized text, where digits are always followed by a space or the end.
var semesterNumber = regexp.MustCompile(`(?:^| )semest(?:er|re) (\d+)(?: |$)`)

// Semester returns the semester the question is scoped to. An ordinal only counts
// right before or after a semester word, so "the first course of semester 3" is 3.
func (t Text) Semester() (int, bool) {
	for _, o := range ordinals {
		for _, w := range semesterWords {
			if t.HasPhrase(o.token+" "+w) || t.HasPhrase(w+" "+o.token) {
				return o.n, true
			}
		}
	}
	m := semesterNumber.FindStringSubmatch(t.norm)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

type kindFamily struct {
	kind     typology.Kind
	keywords []string
}

// kindFamilies is in priority order: a question naming both kinds is treated as mandatory.
var kindFamilies = []kindFamily{
	{typology.Mandatory, []string{
		"mandatory", "compulsory", "obligatory",
		"obligatoria", "obligatorias", "obligatorio", "obligatorios",
	}},
	{typology.Elective, []string{
		"elective", "electives", "optional",
		"optativa", "optativas", "optativo", "optativos", "electiva", "electivas",
		"libre elección", "libre eleccion",
	}},
}

// Kind returns the typology kind named by the question.
func (t Text) Kind() (typology.Kind, bool) {
	for _, f := range kindFamilies {
		if t.HasAny(f.keywords) {
			return f.kind, true
		}
	}
	return "", false
}

type categoryFamily struct {
	category typology.Category
	keywords []string
}

var categoryFamilies = []categoryFamily{
	{typology.Foundational, []string{
		"foundational", "foundation", "fundamentación", "fundamentacion",
	}},
	{typology.Disciplinary, []string{
		"disciplinary", "professional", "disciplinar", "disciplinares", "profesional", "profesionales",
	}},
	{typology.ForeignLanguage, []string{
		"foreign language", "foreign languages", "language", "languages", "english",
		"lengua extranjera", "idioma", "idiomas", "inglés", "ingles",
	}},
	{typology.Capstone, []string{
		"capstone", "thesis", "degree project", "degree work", "final project",
		"trabajo de grado", "tesis",
	}},
}

// Category returns the typology category named by the question.
func (t Text) Category() (typology.Category, bool) {
	for _, f := range categoryFamilies {
		if t.HasAny(f.keywords) {
			return f.category, true
		}
	}
	return "", false
}

type attributeFamily struct {
	attr     course.Attribute
	keywords []string
	// weak keywords only count when the question names a course.
	weak []string
}

// attributeFamilies is in priority order: "prerequisites of the course with code X" asks for prerequisites.
var attributeFamilies = []attributeFamily{
	{course.Prerequisites, []string{
		"prerequisite", "prerequisites", "pre requisite", "pre requisites", "requirement", "requirements",
		"prerrequisito", "prerrequisitos", "requisito", "requisitos",
	}, nil},
	{course.Code, []string{"code", "codes", "código", "códigos", "codigo", "codigos"}, nil},
	{course.Credits, []string{"credit", "credits", "crédito", "créditos", "credito", "creditos"}, nil},
	{course.Typology, []string{"typology", "tipología", "tipologia"}, []string{"type", "tipo"}},
	{course.Semester, []string{"semester", "semesters", "semestre", "semestres"}, nil},
}

// Attribute returns the course attribute the question asks for. A semester keyword
// only counts as an attribute when the question is not already scoped to a semester.
func (t Text) Attribute() (course.Attribute, bool) {
	for _, f := range attributeFamilies {
		if !t.HasAny(f.keywords) && !(t.HasAny(f.weak) && t.namesCourse()) {
			continue
		}
		if f.attr == course.Semester {
			if _, scoped := t.Semester(); scoped {
				continue
			}
		}
		return f.attr, true
	}
	return "", false
}

var courseNouns = []string{
	"course", "courses", "subject", "subjects", "class", "classes",
	"materia", "materias", "asignatura", "asignaturas", "curso", "cursos",
}

// genericTypeFrames are "type of X" shapes where X is not a course unless a course noun says so.
var genericTypeFrames = []string{"type of", "types of", "tipo de", "tipos de"}

// namesCourse reports whether the question is about a course: it carries a course
// noun, or it names a subject outside a generic "type of X" frame.
func (t Text) namesCourse() bool {
	if t.HasAny(courseNouns) {
		return true
	}
	return !t.HasAny(genericTypeFrames) && t.Subject() != ""
}

var subjectStopwords = toSet(
	// English function and question words.
	"what", "whats", "which", "who", "whom", "is", "are", "was", "were", "be", "the", "a", "an",
	"of", "for", "in", "on", "at", "to", "from", "with", "by", "about", "and", "or", "s",
	"does", "do", "did", "has", "have", "had", "how", "many", "much", "me", "tell", "give", "show",
	"please", "can", "could", "would", "you", "my", "your", "it", "its", "this", "that", "there",
	"need", "needs", "take", "taking", "get", "know", "want", "like", "called", "named", "worth",
	"belong", "belongs", "list", "number", "total",
	// Spanish function and question words.
	"qué", "que", "cuál", "cuáles", "cual", "cuales", "cuántos", "cuantos", "cuántas", "cuantas",
	"es", "son", "el", "la", "los", "las", "lo", "un", "una", "de", "del", "al", "en", "para",
	"por", "con", "y", "o", "sobre", "tiene", "tienen", "tengo", "hay", "dime", "dame",
	"puedes", "cómo", "como", "se", "llama", "necesito", "necesita",
	// Course nouns and attribute words.
	"course", "courses", "subject", "subjects", "class", "classes",
	"materia", "materias", "asignatura", "asignaturas", "curso", "cursos",
	"code", "codes", "código", "códigos", "codigo", "codigos",
	"credit", "credits", "crédito", "créditos", "credito", "creditos",
	"semester", "semesters", "semestre", "semestres",
	"typology", "type", "tipología", "tipologia", "tipo",
	"prerequisite", "prerequisites", "pre", "requisite", "requisites", "requirement", "requirements",
	"prerrequisito", "prerrequisitos", "requisito", "requisitos",
)

// Subject returns the normalized subject-name fragment left after removing question
// words, course nouns and attribute keywords. It is "" when nothing names a subject.
func (t Text) Subject() string {
	var kept []string
	for _, tok := range t.Tokens() {
		if _, stop := subjectStopwords[tok]; stop {
			continue
		}
		kept = append(kept, tok)
	}
	return strings.Join(kept, " ")
}

func toSet(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

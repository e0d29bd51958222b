package classifier

// Phrase tables are written in normalized form: lowercase, punctuation replaced by spaces.

var identityPhrases = []string{
	"who are you", "what are you", "what is your name", "what s your name", "whats your name",
	"what university are you from", "which university are you from",
	"what university do you belong to", "which university do you belong to",
	"who made you", "who created you", "who built you", "introduce yourself",
	"are you a bot", "are you human", "are you a person",
	"quién eres", "quien eres", "qué eres", "que eres",
	"cómo te llamas", "como te llamas", "cuál es tu nombre", "cual es tu nombre",
	"de qué universidad eres", "de que universidad eres",
	"quién te creó", "quien te creo", "preséntate", "presentate",
}

var socialPhrases = []string{
	"hi", "hello", "hey", "hi there", "hello there", "good morning", "good afternoon", "good evening",
	"how are you", "how is it going", "thanks", "thank you", "thank you very much",
	"bye", "goodbye", "see you", "ok", "okay",
	"hola", "buenos días", "buenos dias", "buenas tardes", "buenas noches", "buenas",
	"cómo estás", "como estas", "qué tal", "que tal", "gracias", "muchas gracias",
	"adiós", "adios", "chao", "hasta luego",
}

// academicKeywords decide whether a question is about the curriculum at all.
var academicKeywords = []string{
	"course", "courses", "subject", "subjects", "class", "classes", "curriculum", "program",
	"programme", "degree", "career", "major", "syllabus", "study", "studies", "plan",
	"semester", "semesters", "credit", "credits", "code", "codes", "prerequisite", "prerequisites",
	"pre requisite", "pre requisites", "requirement", "requirements", "typology", "type",
	"mandatory", "compulsory", "elective", "electives", "optional", "foundational", "foundation",
	"disciplinary", "professional", "language", "english", "capstone", "thesis",
	"about", "explain", "describe", "topics", "content", "learn", "teach", "taught",
	"materia", "materias", "asignatura", "asignaturas", "curso", "cursos", "carrera", "pensum",
	"plan de estudios", "semestre", "semestres", "crédito", "créditos", "credito", "creditos",
	"código", "codigo", "prerrequisito", "prerrequisitos", "requisito", "requisitos",
	"tipología", "tipologia", "obligatoria", "obligatorias", "optativa", "optativas",
	"electiva", "electivas", "fundamentación", "fundamentacion", "disciplinar", "idioma",
	"inglés", "trabajo de grado", "tesis", "sobre", "explica", "temas", "contenido",
}

// subjectFrames ask about a named thing ("what is Linear Algebra"); with a subject
// left over they make a question academic even without a keyword.
var subjectFrames = []string{
	"what is", "what are", "who teaches", "teaches",
	"qué es", "que es", "qué son", "que son", "quién enseña", "quien enseña", "enseña", "ensena",
	"quién dicta", "quien dicta", "dicta",
}

var quantityKeywords = []string{
	"how many", "total", "number of", "count of",
	"cuántas", "cuantas", "cuántos", "cuantos", "número de", "numero de", "cantidad de", "total de",
}

// semesterCountPhrases ask for the length of the program, not for a course's semester.
var semesterCountPhrases = []string{
	"how many semesters", "number of semesters",
	"cuántos semestres", "cuantos semestres", "número de semestres", "numero de semestres",
}

var listingKeywords = []string{
	"list", "enumerate", "which courses", "what courses", "which subjects", "what subjects",
	"courses of", "courses in", "courses from", "courses for",
	"subjects of", "subjects in", "all courses", "all the courses", "show me the courses",
	"qué materias", "que materias", "cuáles materias", "cuales materias",
	"lista", "listar", "materias del", "materias de", "materias en",
	"materias que hay", "materias que tiene",
}

var courseNouns = []string{
	"course", "courses", "subject", "subjects", "class", "classes",
	"materia", "materias", "asignatura", "asignaturas", "curso", "cursos",
}

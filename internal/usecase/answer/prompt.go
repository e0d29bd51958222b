package answer

import "fmt"

// DefaultIdentity is the fixed reply to questions about the assistant itself.
const DefaultIdentity = "I am the university's academic assistant. " +
	"I answer questions about the courses of the degree program: codes, credits, semesters, " +
	"typologies and prerequisites."

// DefaultPersona is the system prompt for greetings and small talk.
const DefaultPersona = "You are a friendly university academic assistant. " +
	"Reply briefly and kindly in the language of the user, and offer help with questions " +
	"about the courses of the degree program."

// emptyQuestion stands in for a question with no letters or digits on the social path.
const emptyQuestion = "Hello"

const groundedTemplate = `You are a university academic assistant. The context contains information about the courses of a university degree program.

CONTEXT:
%s

QUESTION: %s

INSTRUCTIONS:
- Answer clearly and precisely using only the information in the context
- If the question asks to list courses, include EVERY course you find in the context
- For each course mention: code, name, credits and typology
- If the information is not in the context, say clearly that it is not available

ANSWER:`

// GroundedPrompt builds the user message for a context-grounded answer.
func GroundedPrompt(retrieved, question string) string {
	return fmt.Sprintf(groundedTemplate, retrieved, question)
}

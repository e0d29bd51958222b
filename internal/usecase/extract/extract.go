// Package extract reads course records out of retrieved context text without
// calling the generative service.
package extract

import (
	"regexp"
	"strings"

	"github.com/kailas-cloud/pensum/internal/domain/course"
	"github.com/kailas-cloud/pensum/internal/domain/question"
)

// recordBlock matches one complete block of labelled lines. Prerequisites is the only optional label.
var recordBlock = regexp.MustCompile(
	`(?m)^Subject: ([^\n]+)\nCode: ([^\n]+)\nSemester: ([^\n]+)\nCredits: ([^\n]+)\nTypology: ([^\n]+)(?:\nPrerequisites: ([^\n]+))?`,
)

// Records parses every complete course block in context, in order. Incomplete
// blocks are skipped.
func Records(context string) []course.Record {
	matches := recordBlock.FindAllStringSubmatch(context, -1)
	if len(matches) == 0 {
		return nil
	}
	records := make([]course.Record, 0, len(matches))
	for _, m := range matches {
		r := course.Record{
			Name:          strings.TrimSpace(m[1]),
			Code:          strings.TrimSpace(m[2]),
			Semester:      strings.TrimSpace(m[3]),
			Credits:       strings.TrimSpace(m[4]),
			Typology:      strings.TrimSpace(m[5]),
			Prerequisites: strings.TrimSpace(m[6]),
		}
		if r.Prerequisites == "" {
			r.Prerequisites = course.NoPrerequisites
		}
		records = append(records, r)
	}
	return records
}

// Field answers a single-attribute question from context. ok is false when no
// record parses or the question names no attribute.
func Field(context, q string) (value string, ok bool) {
	return FieldText(context, question.Parse(q))
}

// FieldText is Field over an already parsed question.
func FieldText(context string, t question.Text) (value string, ok bool) {
	records := Records(context)
	if len(records) == 0 {
		return "", false
	}
	attr, ok := t.Attribute()
	if !ok {
		return "", false
	}
	return Target(records, t.Subject()).Get(attr)
}

// Target picks the record a question refers to. A single record is used as is.
// Otherwise an exact name match wins, then a case-insensitive substring match in
// either direction, then the first record.
func Target(records []course.Record, subject string) course.Record {
	if len(records) == 1 || subject == "" {
		return records[0]
	}
	names := make([]string, len(records))
	for i := range records {
		names[i] = question.Normalize(records[i].Name)
		if names[i] == subject {
			return records[i]
		}
	}
	for i, name := range names {
		if strings.Contains(name, subject) || strings.Contains(subject, name) {
			return records[i]
		}
	}
	return records[0]
}

// BySemester keeps the records whose semester string equals semester exactly.
func BySemester(records []course.Record, semester string) []course.Record {
	var out []course.Record
	for _, r := range records {
		if r.Semester == semester {
			out = append(out, r)
		}
	}
	return out
}

package types

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TextHeader is the comment line written at the top of every data file.
const TextHeader = "#id,firstName,lastName,dob,major,gpa"

// textFields is the number of fields in an encoded line.
const textFields = 6

var errFieldCount = errors.New("expected 6 fields")

// Text encodes s as one data-file line:
//
//	id,firstName,lastName,dob,major,gpa
//
// dob is YYYY-MM-DD (empty when absent) and gpa always has two decimals.
// A comma inside a name or the major is written as `\,`; nothing else is
// escaped.
func (s Student) Text() string {
	dob := ""
	if s.hasDOB {
		dob = s.dateOfBirth.Format(DateLayout)
	}

	return fmt.Sprintf("%d,%s,%s,%s,%s,%.2f",
		s.id,
		escapeField(s.firstName),
		escapeField(s.lastName),
		dob,
		escapeField(s.major),
		s.gpa,
	)
}

// ParseStudent decodes a line in the Text format. Decoded values are taken
// as written: a hand-edited file may carry values the setters would refuse,
// and those are loaded rather than rejected. Only structural problems
// (field count, numbers, dates) fail, with a *FormatError.
func ParseStudent(line string) (Student, error) {
	parts := splitFields(line)
	if len(parts) < textFields {
		return Student{}, &FormatError{Text: line, Err: fmt.Errorf("%w, got %d", errFieldCount, len(parts))}
	}

	id, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Student{}, &FormatError{Text: line, Err: fmt.Errorf("id: %w", err)}
	}

	var (
		dob    time.Time
		hasDOB bool
	)
	if strings.TrimSpace(parts[3]) != "" {
		dob, err = ParseDate(parts[3])
		if err != nil {
			return Student{}, &FormatError{Text: line, Err: fmt.Errorf("dob: %w", err)}
		}
		hasDOB = true
	}

	gpa, err := strconv.ParseFloat(strings.TrimSpace(parts[5]), 64)
	if err != nil {
		return Student{}, &FormatError{Text: line, Err: fmt.Errorf("gpa: %w", err)}
	}

	return Student{
		id:          id,
		firstName:   parts[1],
		lastName:    parts[2],
		dateOfBirth: dob,
		hasDOB:      hasDOB,
		major:       parts[4],
		gpa:         gpa,
	}, nil
}

func escapeField(s string) string {
	return strings.ReplaceAll(s, ",", `\,`)
}

// splitFields splits on unescaped commas. `\,` becomes a literal comma;
// a backslash before any other character is kept together with that
// character, and the character is never itself treated as an escape. A
// trailing lone backslash is dropped.
func splitFields(line string) []string {
	var (
		parts  []string
		cur    strings.Builder
		escape bool
	)

	for _, r := range line {
		switch {
		case escape:
			if r != ',' {
				cur.WriteByte('\\')
			}
			cur.WriteRune(r)
			escape = false
		case r == '\\':
			escape = true
		case r == ',':
			parts = append(parts, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}

	return append(parts, cur.String())
}

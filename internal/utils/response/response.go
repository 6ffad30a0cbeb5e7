// Package response provides helpers for writing consistent console output
// from the menu handlers.
//
// Every handler talks to the user through an io.Writer. Rather than
// repeating Fprintf calls with slightly different wording in every
// handler, the shared shapes live here: one line per message, a uniform
// prefix for errors, and one line per student for listings.
package response

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/roster/internal/types"
)

// WriteLine writes a single formatted line to w.
func WriteLine(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format+"\n", args...)
	return err
}

// WriteStudents writes one display line per student, or the empty
// message when there are none.
func WriteStudents(w io.Writer, students []types.Student, empty string) error {
	if len(students) == 0 {
		return WriteLine(w, "%s", empty)
	}

	for _, s := range students {
		if err := WriteLine(w, "%s", s.String()); err != nil {
			return err
		}
	}

	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// GeneralError formats any error for the user, prefixed with what failed.
//
//	response.WriteLine(w, "%s", response.GeneralError("Failed to save", err))
//
// ─────────────────────────────────────────────────────────────────────────────
func GeneralError(prefix string, err error) string {
	return fmt.Sprintf("%s: %s", prefix, err.Error())
}

// ─────────────────────────────────────────────────────────────────────────────
// ValidationError turns a *types.ValidationError into a sentence.
//
// When the failing rule was checked by go-playground/validator, the
// wrapped validator.FieldError tells which tag broke and the message is
// built from that; otherwise the error's own reason is used.
//
// Example output:
//
//	Invalid data: field gpa must be between 0.0 and 4.0
//
// ─────────────────────────────────────────────────────────────────────────────
func ValidationError(err error) string {
	var verr *types.ValidationError
	if !errors.As(err, &verr) {
		return GeneralError("Invalid data", err)
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(verr, &fieldErrs) {
		return fmt.Sprintf("Invalid data: field %s %s", verr.Field, verr.Reason)
	}

	var msgs []string
	for _, e := range fieldErrs {
		switch e.ActualTag() {
		// "required" tag — blank after trimming
		case "required":
			msgs = append(msgs, fmt.Sprintf("field %s is required", verr.Field))
		// range tags on the gpa
		case "gte", "lte":
			msgs = append(msgs, fmt.Sprintf("field %s %s", verr.Field, verr.Reason))
		default:
			msgs = append(msgs, fmt.Sprintf("field %s is invalid", verr.Field))
		}
	}

	return "Invalid data: " + strings.Join(msgs, ", ")
}

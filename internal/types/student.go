// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles —
// the store, the menu handlers, and the response helpers can all import
// types without depending on each other.
package types

import (
	"cmp"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the only date format accepted and produced anywhere in
// the application (ISO-8601 calendar date).
const DateLayout = "2006-01-02"

// GPA bounds, inclusive.
const (
	MinGPA = 0.0
	MaxGPA = 4.0
)

// validate is shared by every setter. A *validator.Validate caches
// struct and tag metadata and is safe for concurrent use, so one
// package-level instance is enough.
var validate = validator.New()

// Student represents one student's academic profile.
//
// Fields are unexported: the setters below are the only way to
// change a field after construction, so a Student can never hold a value
// that broke its rules. The id is assigned by the store and has no
// exported setter at all.
//
// Student is a plain value. Copying it copies the whole record, which is
// what lets the store hand out snapshots that later mutations never touch.
type Student struct {
	id          int
	firstName   string
	lastName    string
	dateOfBirth time.Time
	hasDOB      bool
	major       string
	gpa         float64
}

// NewStudent builds a validated Student with no id (0). A nil dob means
// the date is missing and is rejected.
//
// Validation runs through the same setters used for updates, so the two
// paths can never disagree about what is valid. The first failing field
// is returned as a *ValidationError.
func NewStudent(firstName, lastName string, dob *time.Time, major string, gpa float64) (Student, error) {
	var s Student

	if err := s.SetFirstName(firstName); err != nil {
		return Student{}, err
	}
	if err := s.SetLastName(lastName); err != nil {
		return Student{}, err
	}
	if err := s.SetDateOfBirth(dob); err != nil {
		return Student{}, err
	}
	s.SetMajor(major)
	if err := s.SetGPA(gpa); err != nil {
		return Student{}, err
	}

	return s, nil
}

func (s Student) ID() int           { return s.id }
func (s Student) FirstName() string { return s.firstName }
func (s Student) LastName() string  { return s.lastName }
func (s Student) Major() string     { return s.major }
func (s Student) GPA() float64      { return s.gpa }

// DateOfBirth returns the date and whether one is set. Only a record
// decoded from a line with an empty dob field has none.
func (s Student) DateOfBirth() (time.Time, bool) {
	return s.dateOfBirth, s.hasDOB
}

// FullName is "first last", the form searched by the store.
func (s Student) FullName() string {
	return s.firstName + " " + s.lastName
}

// WithID returns a copy of s carrying the given id. Only the store calls
// this; it is the single place ids are handed out.
func (s Student) WithID(id int) Student {
	s.id = id
	return s
}

// ─────────────────────────────────────────────────────────────────────────────
// Setters
//
// Each setter checks only its own field and leaves the record untouched
// when the new value is rejected.
// ─────────────────────────────────────────────────────────────────────────────

// SetFirstName trims and stores the first name. Blank names are rejected.
func (s *Student) SetFirstName(name string) error {
	name, err := requiredName("firstName", name)
	if err != nil {
		return err
	}
	s.firstName = name
	return nil
}

// SetLastName trims and stores the last name. Blank names are rejected.
func (s *Student) SetLastName(name string) error {
	name, err := requiredName("lastName", name)
	if err != nil {
		return err
	}
	s.lastName = name
	return nil
}

// SetDateOfBirth stores the calendar date of dob. A nil dob is rejected;
// every other value, 0001-01-01 included, is a date.
func (s *Student) SetDateOfBirth(dob *time.Time) error {
	if dob == nil {
		return &ValidationError{Field: "dateOfBirth", Reason: "is required"}
	}
	s.dateOfBirth = dateOnly(*dob)
	s.hasDOB = true
	return nil
}

// SetMajor stores the trimmed major. An empty major means undeclared, so
// there is nothing to reject.
func (s *Student) SetMajor(major string) {
	s.major = strings.TrimSpace(major)
}

// SetGPA stores gpa if it lies within [MinGPA, MaxGPA]. NaN is rejected
// because it fails both comparisons.
func (s *Student) SetGPA(gpa float64) error {
	rule := fmt.Sprintf("gte=%g,lte=%g", MinGPA, MaxGPA)
	if err := validate.Var(gpa, rule); err != nil {
		return &ValidationError{
			Field:  "gpa",
			Reason: fmt.Sprintf("must be between %.1f and %.1f", MinGPA, MaxGPA),
			Err:    err,
		}
	}
	s.gpa = gpa
	return nil
}

func requiredName(field, name string) (string, error) {
	name = strings.TrimSpace(name)
	if err := validate.Var(name, "required"); err != nil {
		return "", &ValidationError{Field: field, Reason: "cannot be empty", Err: err}
	}
	return name, nil
}

// dateOnly drops the clock and zone so two dates compare equal whenever
// they name the same calendar day.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a DateLayout string into a date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

// ─────────────────────────────────────────────────────────────────────────────
// Identity
// ─────────────────────────────────────────────────────────────────────────────

// SameAs reports whether s and other are the same entity. Only the id
// counts; two records with one id are one student whatever else differs.
func (s Student) SameAs(other Student) bool {
	return s.id == other.id
}

// Compare orders students by id, ascending. It has the shape
// slices.SortFunc expects.
func Compare(a, b Student) int {
	return cmp.Compare(a.id, b.id)
}

// String is the human-readable summary printed by the menu.
//
//	Student{id=1, name=Ada Lovelace, dob=1815-12-10, major=Mathematics, gpa=4.00}
func (s Student) String() string {
	dob := "N/A"
	if s.hasDOB {
		dob = s.dateOfBirth.Format(DateLayout)
	}

	major := s.major
	if major == "" {
		major = "Undeclared"
	}

	return fmt.Sprintf("Student{id=%d, name=%s %s, dob=%s, major=%s, gpa=%.2f}",
		s.id, s.firstName, s.lastName, dob, major, s.gpa)
}

// StudentUpdate describes a partial update. A nil field means "keep the
// current value". For Major, a non-nil pointer to "" is a real change
// (back to undeclared), distinct from nil.
type StudentUpdate struct {
	FirstName   *string
	LastName    *string
	DateOfBirth *time.Time
	Major       *string
	GPA         *float64
}

// Apply runs the setters for every supplied field against s. On error, s
// may already hold some of the new values; callers that need
// all-or-nothing semantics apply to a copy and keep it only on success.
func (u StudentUpdate) Apply(s *Student) error {
	if u.FirstName != nil {
		if err := s.SetFirstName(*u.FirstName); err != nil {
			return err
		}
	}
	if u.LastName != nil {
		if err := s.SetLastName(*u.LastName); err != nil {
			return err
		}
	}
	if u.DateOfBirth != nil {
		if err := s.SetDateOfBirth(u.DateOfBirth); err != nil {
			return err
		}
	}
	if u.Major != nil {
		s.SetMajor(*u.Major)
	}
	if u.GPA != nil {
		if err := s.SetGPA(*u.GPA); err != nil {
			return err
		}
	}
	return nil
}

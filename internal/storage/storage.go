// Package storage defines the Storage interface — the contract the menu
// handlers talk to.
//
// Handlers should not know or care how records are held. By depending only
// on this interface they can be exercised against any implementation, and
// the in-memory store in storage/memory can change without touching them.
package storage

import (
	"time"

	"github.com/aanand-mishra/roster/internal/types"
)

// Storage is the roster contract. Every method is atomic with respect to
// every other method: no caller ever observes a half-applied add, remove,
// update, or load.
type Storage interface {
	// Add validates and stores a new student under the next id. A
	// validation failure (including a nil dob) comes back unchanged and
	// consumes no id.
	Add(firstName, lastName string, dob *time.Time, major string, gpa float64) (types.Student, error)

	// Remove deletes the student with the given id and reports whether
	// there was one. A missing id is not an error.
	Remove(id int) bool

	// Get returns the student with the given id, or false if absent.
	Get(id int) (types.Student, bool)

	// List returns every student, ascending by id. The slice is a snapshot
	// that later mutations never change.
	List() []types.Student

	// Search returns students whose first name, last name, or
	// "first last" contains query, ignoring case, ascending by id.
	Search(query string) []types.Student

	// Update applies the supplied fields to the student with the given id.
	// It reports false, and changes nothing, if the id is unknown or any
	// supplied field is invalid.
	Update(id int, update types.StudentUpdate) bool

	// SaveToFile writes every student to path in the text line format.
	SaveToFile(path string) error

	// LoadFromFile replaces the whole roster with the contents of path.
	LoadFromFile(path string) error

	// Len returns the number of students held.
	Len() int
}

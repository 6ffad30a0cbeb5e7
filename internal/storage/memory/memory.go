// Package memory provides the in-memory implementation of the
// storage.Storage interface: a map of students keyed by id plus the id
// counter, guarded by one mutex.
//
// WHY ONE LOCK?
// ─────────────
// Every operation, including the file read/write of save and load, holds
// the same mutex from start to finish. That makes each call atomic with
// respect to all the others without any finer bookkeeping, and the roster
// is small enough that nothing ever waits long.
package memory

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/aanand-mishra/roster/internal/types"
)

// Store is the concrete implementation of storage.Storage.
//
// Students are held by value. Anything returned to a caller is therefore
// a copy, and no later mutation can reach into a result already handed
// out.
type Store struct {
	mu       sync.Mutex
	students map[int]types.Student
	nextID   int
}

// New returns an empty store whose first id will be 1.
func New() *Store {
	return &Store{
		students: make(map[int]types.Student),
		nextID:   1,
	}
}

// Add validates the fields, assigns the next id, and stores the student.
// The id counter only moves after validation succeeds.
func (s *Store) Add(firstName, lastName string, dob *time.Time, major string, gpa float64) (types.Student, error) {
	student, err := types.NewStudent(firstName, lastName, dob, major, gpa)
	if err != nil {
		return types.Student{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	student = student.WithID(s.nextID)
	s.nextID++
	s.students[student.ID()] = student

	return student, nil
}

// Remove deletes the student with the given id if present.
func (s *Store) Remove(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.students[id]; !ok {
		return false
	}
	delete(s.students, id)

	return true
}

// Get returns the student with the given id.
func (s *Store) Get(id int) (types.Student, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	student, ok := s.students[id]
	return student, ok
}

// List returns all students ascending by id.
func (s *Store) List() []types.Student {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sortedLocked(func(types.Student) bool { return true })
}

// Search matches query case-insensitively against the first name, the
// last name, and "first last". An empty query matches everyone.
func (s *Store) Search(query string) []types.Student {
	q := strings.ToLower(query)

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sortedLocked(func(st types.Student) bool {
		return strings.Contains(strings.ToLower(st.FirstName()), q) ||
			strings.Contains(strings.ToLower(st.LastName()), q) ||
			strings.Contains(strings.ToLower(st.FullName()), q)
	})
}

// Update applies the supplied fields to a copy of the stored student and
// commits the copy only if every field was accepted.
func (s *Store) Update(id int, update types.StudentUpdate) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	student, ok := s.students[id]
	if !ok {
		return false
	}

	if err := update.Apply(&student); err != nil {
		return false
	}
	s.students[id] = student

	return true
}

// Len returns the number of students held.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.students)
}

// sortedLocked returns the students accepted by keep, ascending by id.
// The caller must hold s.mu.
func (s *Store) sortedLocked(keep func(types.Student) bool) []types.Student {
	// Non-nil even when empty so callers can range and compare freely.
	out := make([]types.Student, 0, len(s.students))
	for _, st := range s.students {
		if keep(st) {
			out = append(out, st)
		}
	}
	slices.SortFunc(out, types.Compare)

	return out
}

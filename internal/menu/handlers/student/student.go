// Package student contains all menu handlers for the Student roster.
//
// HANDLER PATTERN USED HERE — THE CLOSURE / FACTORY PATTERN:
// ────────────────────────────────────────────────────────────
// The menu expects handlers with the signature:
//
//	func(*menu.Session) error
//
// That signature has no room for the store. To inject it, each factory
// accepts the dependencies and returns the actual handler, which closes
// over them:
//
//	menu.Command{Key: "1", Label: "Add student", Run: student.New(store)}
//	//                                                 ^^^^^^^^^^^^^^^^^
//	//                               New(store) runs ONCE at start-up.
//	//                               The returned func runs on EVERY pick.
//
// Input loops (re-prompt until a valid integer, date, or GPA) live in
// menu.Session; handlers only turn answers into store calls and report
// the outcome.
package student

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/aanand-mishra/roster/internal/menu"
	"github.com/aanand-mishra/roster/internal/storage"
	"github.com/aanand-mishra/roster/internal/types"
	"github.com/aanand-mishra/roster/internal/utils/response"
)

// ─────────────────────────────────────────────────────────────────────────────
// New handles "Add student".
//
// Prompts for every field, then stores the student. Names are not
// re-prompted: a blank name comes back from the store as a validation
// error and is reported as "Invalid data: ...".
// ─────────────────────────────────────────────────────────────────────────────
func New(store storage.Storage) menu.Handler {
	return func(s *menu.Session) error {
		slog.Info("creating a student")

		first, err := s.Prompt("First name")
		if err != nil {
			return err
		}
		last, err := s.Prompt("Last name")
		if err != nil {
			return err
		}
		dob, err := s.ReadDate("Date of birth (yyyy-MM-dd)")
		if err != nil {
			return err
		}
		major, err := s.Prompt("Major (press enter for none)")
		if err != nil {
			return err
		}
		gpa, err := s.ReadFloat("GPA (0.0 - 4.0)", types.MinGPA, types.MaxGPA)
		if err != nil {
			return err
		}

		student, err := store.Add(first, last, &dob, major, gpa)
		if err != nil {
			if errors.Is(err, types.ErrValidation) {
				slog.Info("student rejected", slog.String("error", err.Error()))
				s.Linef("%s", response.ValidationError(err))
				return nil
			}
			return err
		}

		slog.Info("student created", slog.Int("id", student.ID()))
		s.Linef("Added: %s", student)

		return nil
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Update handles "Update student".
//
// Shows the current record, then asks for each field. A blank answer
// keeps the field. An unparseable date or GPA cancels the whole update
// before the store is called; a value the store rejects (e.g. GPA 5)
// leaves the record untouched and reports "Update failed.".
// ─────────────────────────────────────────────────────────────────────────────
func Update(store storage.Storage) menu.Handler {
	return func(s *menu.Session) error {
		id, err := s.ReadInt("Student ID to update")
		if err != nil {
			return err
		}
		slog.Info("updating a student", slog.Int("id", id))

		current, ok := store.Get(id)
		if !ok {
			s.Linef("No student with ID %d", id)
			return nil
		}
		s.Linef("Current: %s", current)

		var update types.StudentUpdate

		first, err := s.Prompt("New first name (leave blank to keep)")
		if err != nil {
			return err
		}
		update.FirstName = optional(first)

		last, err := s.Prompt("New last name (leave blank to keep)")
		if err != nil {
			return err
		}
		update.LastName = optional(last)

		dobStr, err := s.Prompt("New dob yyyy-MM-dd (leave blank to keep)")
		if err != nil {
			return err
		}
		if strings.TrimSpace(dobStr) != "" {
			dob, err := types.ParseDate(dobStr)
			if err != nil {
				s.Linef("Invalid date format. Update cancelled.")
				return nil
			}
			update.DateOfBirth = &dob
		}

		major, err := s.Prompt("New major (leave blank to keep)")
		if err != nil {
			return err
		}
		update.Major = optional(major)

		gpaStr, err := s.Prompt("New GPA (leave blank to keep)")
		if err != nil {
			return err
		}
		if strings.TrimSpace(gpaStr) != "" {
			gpa, err := strconv.ParseFloat(strings.TrimSpace(gpaStr), 64)
			if err != nil {
				s.Linef("Invalid GPA. Update cancelled.")
				return nil
			}
			update.GPA = &gpa
		}

		if !store.Update(id, update) {
			slog.Info("student update rejected", slog.Int("id", id))
			s.Linef("Update failed.")
			return nil
		}

		slog.Info("student updated", slog.Int("id", id))
		s.Linef("Updated.")

		return nil
	}
}

// optional maps a blank answer to "keep" (nil).
func optional(answer string) *string {
	if strings.TrimSpace(answer) == "" {
		return nil
	}
	return &answer
}

// Delete handles "Remove student".
func Delete(store storage.Storage) menu.Handler {
	return func(s *menu.Session) error {
		id, err := s.ReadInt("Student ID to remove")
		if err != nil {
			return err
		}
		slog.Info("deleting a student", slog.Int("id", id))

		if !store.Remove(id) {
			s.Linef("No student with ID %d", id)
			return nil
		}

		slog.Info("student deleted", slog.Int("id", id))
		s.Linef("Removed.")

		return nil
	}
}

// GetByID handles "View student by ID".
func GetByID(store storage.Storage) menu.Handler {
	return func(s *menu.Session) error {
		id, err := s.ReadInt("Student ID to view")
		if err != nil {
			return err
		}
		slog.Info("getting a student", slog.Int("id", id))

		student, ok := store.Get(id)
		if !ok {
			s.Linef("No student with ID %d", id)
			return nil
		}

		s.Linef("%s", student)
		return nil
	}
}

// GetList handles "List all students".
func GetList(store storage.Storage) menu.Handler {
	return func(s *menu.Session) error {
		slog.Info("getting all students")
		return response.WriteStudents(s.Out(), store.List(), "No students.")
	}
}

// Search handles "Search by name".
func Search(store storage.Storage) menu.Handler {
	return func(s *menu.Session) error {
		q, err := s.Prompt("Name query")
		if err != nil {
			return err
		}
		slog.Info("searching students", slog.String("query", q))

		return response.WriteStudents(s.Out(), store.Search(q), "No matches.")
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Save handles "Save to file". A blank path means defaultPath.
//
// Failures are reported to the user and the session continues; the
// roster in memory is unaffected by a failed save.
// ─────────────────────────────────────────────────────────────────────────────
func Save(store storage.Storage, defaultPath string) menu.Handler {
	return func(s *menu.Session) error {
		path, err := promptPath(s, "Path to save file", defaultPath)
		if err != nil {
			return err
		}
		slog.Info("saving students", slog.String("path", path))

		if err := store.SaveToFile(path); err != nil {
			slog.Error("error saving students",
				slog.String("path", path),
				slog.String("error", err.Error()))
			s.Linef("%s", response.GeneralError("Failed to save", err))
			return nil
		}

		slog.Info("students saved", slog.String("path", path), slog.Int("count", store.Len()))
		s.Linef("Saved to %s", path)

		return nil
	}
}

// Load handles "Load from file". A blank path means defaultPath.
//
// A failed load leaves the roster as it was.
func Load(store storage.Storage, defaultPath string) menu.Handler {
	return func(s *menu.Session) error {
		path, err := promptPath(s, "Path to load file", defaultPath)
		if err != nil {
			return err
		}
		slog.Info("loading students", slog.String("path", path))

		if err := store.LoadFromFile(path); err != nil {
			slog.Error("error loading students",
				slog.String("path", path),
				slog.String("error", err.Error()))
			s.Linef("%s", response.GeneralError("Failed to load", err))
			return nil
		}

		slog.Info("students loaded", slog.String("path", path), slog.Int("count", store.Len()))
		s.Linef("Loaded from %s", path)

		return nil
	}
}

func promptPath(s *menu.Session, label, defaultPath string) (string, error) {
	path, err := s.Prompt(label + " (default " + defaultPath + ")")
	if err != nil {
		return "", err
	}

	path = strings.TrimSpace(path)
	if path == "" {
		path = defaultPath
	}

	return path, nil
}

// Commands returns the full menu, numbered as the user sees it.
func Commands(store storage.Storage, dataFile string) []menu.Command {
	return []menu.Command{
		{Key: "1", Label: "Add student", Run: New(store)},
		{Key: "2", Label: "Update student", Run: Update(store)},
		{Key: "3", Label: "Remove student", Run: Delete(store)},
		{Key: "4", Label: "View student by ID", Run: GetByID(store)},
		{Key: "5", Label: "List all students", Run: GetList(store)},
		{Key: "6", Label: "Search by name", Run: Search(store)},
		{Key: "7", Label: "Save to file", Run: Save(store, dataFile)},
		{Key: "8", Label: "Load from file", Run: Load(store, dataFile)},
	}
}

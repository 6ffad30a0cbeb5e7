package memory

import (
	"bufio"
	"bytes"
	"errors"
	"os"
	"runtime"
	"strings"

	"github.com/natefinch/atomic"

	"github.com/aanand-mishra/roster/internal/types"
)

// filePerms is the mode of a newly created data file. atomic.WriteFile
// creates its temp file with 0600; an existing file keeps its own mode.
const filePerms os.FileMode = 0o644

// maxLineSize bounds a single data-file line when loading.
const maxLineSize = 1 << 20

// lineTerminator is the platform line ending used when saving.
func lineTerminator() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}

// ─────────────────────────────────────────────────────────────────────────────
// SaveToFile writes the header line followed by one Text() line per
// student, ascending by id.
//
// The content is built in memory and handed to atomic.WriteFile, which
// writes a temp file next to path and renames it into place. A failed
// save therefore leaves any previous file untouched, and the temp file
// handle is closed on every path.
// ─────────────────────────────────────────────────────────────────────────────
func (s *Store) SaveToFile(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	eol := lineTerminator()

	var buf bytes.Buffer
	buf.WriteString(types.TextHeader)
	buf.WriteString(eol)
	for _, st := range s.sortedLocked(func(types.Student) bool { return true }) {
		buf.WriteString(st.Text())
		buf.WriteString(eol)
	}

	perm := filePerms
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	if err := atomic.WriteFile(path, &buf); err != nil {
		return &types.PersistenceError{Op: "save", Path: path, Err: err}
	}

	if err := os.Chmod(path, perm); err != nil {
		return &types.PersistenceError{Op: "save", Path: path, Err: err}
	}

	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// LoadFromFile replaces the roster with the students stored in path.
//
// Lines are trimmed; blank lines and lines starting with '#' are skipped.
// A later line wins over an earlier one with the same id. The whole file
// is decoded before anything is swapped in, so any failure leaves the
// store exactly as it was.
//
// The id counter only ever moves forward: it becomes
// max(current counter, highest loaded id + 1).
// ─────────────────────────────────────────────────────────────────────────────
func (s *Store) LoadFromFile(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	loaded, maxID, err := readFile(path)
	if err != nil {
		return err
	}

	s.students = loaded
	s.nextID = max(s.nextID, maxID+1)

	return nil
}

func readFile(path string) (map[int]types.Student, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, &types.PersistenceError{Op: "load", Path: path, Err: err}
	}
	defer f.Close()

	loaded := make(map[int]types.Student)
	maxID := 0

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		st, err := types.ParseStudent(line)
		if err != nil {
			var ferr *types.FormatError
			if errors.As(err, &ferr) {
				ferr.Line = lineNo
			}
			return nil, 0, &types.PersistenceError{Op: "load", Path: path, Err: err}
		}

		loaded[st.ID()] = st
		maxID = max(maxID, st.ID())
	}

	if err := scanner.Err(); err != nil {
		return nil, 0, &types.PersistenceError{Op: "load", Path: path, Err: err}
	}

	return loaded, maxID, nil
}

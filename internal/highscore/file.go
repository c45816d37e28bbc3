// Package highscore persists the best score as a single decimal integer in
// a plain text file.
package highscore

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// File is the on-disk high score. It is only touched from the game loop
// goroutine.
type File struct {
	path string
	best int
}

// Open reads the stored high score. A missing, unreadable or malformed file
// counts as 0 and is rewritten with "0". Only a failure of that rewrite is
// returned.
func Open(path string) (*File, error) {
	f := &File{path: path}

	best, err := read(path)
	if err == nil {
		f.best = best
		return f, nil
	}

	if err := f.write(0); err != nil {
		return nil, err
	}
	return f, nil
}

func read(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("highscore: parse %s: %w", path, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("highscore: negative score in %s", path)
	}
	return n, nil
}

// Best returns the stored high score.
func (f *File) Best() int {
	return f.best
}

// Path returns the file location.
func (f *File) Path() string {
	return f.path
}

// Record stores score if it beats the current best. The file is truncated
// and rewritten; write errors are returned to the caller.
func (f *File) Record(score int) error {
	if score <= f.best {
		return nil
	}
	if err := f.write(score); err != nil {
		return err
	}
	f.best = score
	return nil
}

func (f *File) write(score int) error {
	if dir := filepath.Dir(f.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("highscore: create directory: %w", err)
		}
	}
	if err := os.WriteFile(f.path, []byte(strconv.Itoa(score)+"\n"), 0o644); err != nil {
		return fmt.Errorf("highscore: write %s: %w", f.path, err)
	}
	return nil
}

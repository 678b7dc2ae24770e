package checkpoint

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/afero"
)

const suffix = "_position.data"

// PathFor returns the checkpoint location of an input spreadsheet.
func PathFor(input string) string {
	return input + suffix
}

// Store keeps the index of the first record that was not fully imported
// as plain decimal text next to the input file.
type Store struct {
	fs   afero.Fs
	path string
}

func New(fs afero.Fs, input string) *Store {
	return &Store{fs: fs, path: PathFor(input)}
}

func (s *Store) Path() string {
	return s.path
}

// Load returns the stored index. ok is false when there is no checkpoint.
func (s *Store) Load() (index int, ok bool, err error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("reading checkpoint %s: %w", s.path, err)
	}

	index, err = strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || index < 0 {
		return 0, false, fmt.Errorf("checkpoint %s is corrupted: %q", s.path, data)
	}

	return index, true, nil
}

func (s *Store) Save(index int) error {
	if index < 0 {
		return fmt.Errorf("checkpoint index must not be negative: %d", index)
	}

	if err := afero.WriteFile(s.fs, s.path, []byte(strconv.Itoa(index)), 0o644); err != nil {
		return fmt.Errorf("writing checkpoint %s: %w", s.path, err)
	}

	return nil
}

// Remove deletes the checkpoint. It is not an error if it does not exist.
func (s *Store) Remove() error {
	if err := s.fs.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing checkpoint %s: %w", s.path, err)
	}

	return nil
}

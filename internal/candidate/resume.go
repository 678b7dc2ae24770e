package candidate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"golang.org/x/text/unicode/norm"

	"github.com/spigell/hf-importer/internal/huntflow"
)

// Uploader sends a resume file for server side parsing.
type Uploader interface {
	UploadFile(ctx context.Context, localPath, displayName string) (*huntflow.UploadedFile, error)
}

// LocateResumeFile looks in baseDir/<position>/ for a file whose name starts with
// the candidate full name. Names are compared in NFKD form so that files written
// by systems with decomposed file names still match. When several files match,
// the lexicographically first one wins. An empty path means nothing was found.
func (c *Candidate) LocateResumeFile(fs afero.Fs, baseDir string) (string, error) {
	dir := filepath.Join(baseDir, c.Position)

	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("listing resumes in %s: %w", dir, err)
	}

	prefix := norm.NFKD.String(c.FullName())

	var matches []string
	for _, entry := range entries {
		if !entry.Mode().IsRegular() {
			continue
		}

		if strings.HasPrefix(norm.NFKD.String(entry.Name()), prefix) {
			matches = append(matches, entry.Name())
		}
	}

	if len(matches) == 0 {
		return "", nil
	}

	sort.Strings(matches)

	return filepath.Join(dir, matches[0]), nil
}

// EnrichFromResume uploads the resume and copies the parsed fields into the candidate.
// Nothing changes when the uploader returns no result.
func (c *Candidate) EnrichFromResume(ctx context.Context, uploader Uploader, path string) error {
	uploaded, err := uploader.UploadFile(ctx, path, c.FullName())
	if err != nil {
		return err
	}

	if uploaded == nil {
		return nil
	}

	c.applyUpload(uploaded)

	return nil
}

func (c *Candidate) applyUpload(uploaded *huntflow.UploadedFile) {
	c.ResumeID = optionalInt(uploaded.ID)
	c.ResumeText = uploaded.Text

	if uploaded.Photo != nil {
		c.PhotoID = optionalInt(uploaded.Photo.ID)
	}

	fields := uploaded.Fields
	if fields == nil {
		return
	}

	c.Phones = fields.Phones
	c.Email = fields.Email
	c.Skype = fields.Skype
	c.Telegram = fields.Telegram
	c.Experience = fields.Experience

	if fields.Birthdate != nil {
		c.BirthDay = fields.Birthdate.Day
		c.BirthMonth = fields.Birthdate.Month
		c.BirthYear = fields.Birthdate.Year
	}
}

func optionalInt(v int) *int {
	if v == 0 {
		return nil
	}

	return &v
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}

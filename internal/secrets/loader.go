package secrets

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/afero"
)

const bearerPrefix = "bearer "

var ErrNotConfigured = errors.New("not configured")

// Source describes where a secret comes from. File wins over Value.
type Source struct {
	// Name only shows up in error messages.
	Name  string
	Value string
	File  string
}

func (s Source) name() string {
	if name := strings.TrimSpace(s.Name); name != "" {
		return name
	}

	return "secret"
}

// Loader reads secrets, files are opened through FS.
type Loader struct {
	FS afero.Fs
}

func NewLoader(fs afero.Fs) *Loader {
	if fs == nil {
		fs = afero.NewOsFs()
	}

	return &Loader{FS: fs}
}

// Load returns the trimmed secret.
func (l *Loader) Load(src Source) (string, error) {
	if file := strings.TrimSpace(src.File); file != "" {
		data, err := afero.ReadFile(l.FS, file)
		if err != nil {
			return "", fmt.Errorf("reading %s from %q: %w", src.name(), file, err)
		}

		secret := strings.TrimSpace(string(data))
		if secret == "" {
			return "", fmt.Errorf("%s file %q is empty", src.name(), file)
		}

		return secret, nil
	}

	secret := strings.TrimSpace(src.Value)
	if secret == "" {
		return "", fmt.Errorf("%s: %w", src.name(), ErrNotConfigured)
	}

	return secret, nil
}

// LoadToken loads an API token. A pasted "Bearer <token>" header value is
// reduced to the token itself.
func (l *Loader) LoadToken(src Source) (string, error) {
	token, err := l.Load(src)
	if err != nil {
		return "", err
	}

	if len(token) > len(bearerPrefix) && strings.EqualFold(token[:len(bearerPrefix)], bearerPrefix) {
		token = strings.TrimSpace(token[len(bearerPrefix):])
	}

	if token == "" || strings.ContainsAny(token, " \t\r\n") {
		return "", fmt.Errorf("%s has an unexpected format", src.name())
	}

	return token, nil
}

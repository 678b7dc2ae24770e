package secrets

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
)

func newTestLoader(t *testing.T, files map[string]string) *Loader {
	t.Helper()

	fs := afero.NewMemMapFs()
	for path, content := range files {
		if err := afero.WriteFile(fs, path, []byte(content), 0o600); err != nil {
			t.Fatalf("writing %s: %v", path, err)
		}
	}

	return NewLoader(fs)
}

func TestLoad(t *testing.T) {
	loader := newTestLoader(t, map[string]string{
		"/run/token":       "from-file\n",
		"/run/empty-token": "  \n",
	})

	tests := []struct {
		name    string
		src     Source
		expect  string
		wantErr bool
	}{
		{name: "inline value", src: Source{Value: "  abc  "}, expect: "abc"},
		{name: "file wins over value", src: Source{Value: "inline", File: "/run/token"}, expect: "from-file"},
		{name: "empty file", src: Source{File: "/run/empty-token"}, wantErr: true},
		{name: "missing file", src: Source{File: "/run/missing"}, wantErr: true},
		{name: "nothing configured", src: Source{Name: "huntflow token"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := loader.Load(tt.src)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestLoadNotConfigured(t *testing.T) {
	_, err := newTestLoader(t, nil).Load(Source{Name: "huntflow token"})
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestLoadToken(t *testing.T) {
	loader := newTestLoader(t, map[string]string{"/run/token": "Bearer from-file\n"})

	tests := []struct {
		name    string
		src     Source
		expect  string
		wantErr bool
	}{
		{name: "plain token", src: Source{Value: "abc123"}, expect: "abc123"},
		{name: "bearer header value", src: Source{Value: "Bearer abc123"}, expect: "abc123"},
		{name: "lowercase bearer", src: Source{Value: "bearer   abc123 "}, expect: "abc123"},
		{name: "bearer in file", src: Source{File: "/run/token"}, expect: "from-file"},
		{name: "token with spaces", src: Source{Value: "abc 123"}, wantErr: true},
		{name: "empty", src: Source{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := loader.LoadToken(tt.src)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

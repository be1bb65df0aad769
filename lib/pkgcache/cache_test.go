package pkgcache

import (
	"errors"
	"testing"

	git "github.com/go-git/go-git/v5"
)

func TestPrepURL(t *testing.T) {
	tests := []struct {
		input  string
		url    string
		branch string
	}{
		{"owner/repo", "https://github.com/owner/repo", "main"},
		{"owner/repo@dev", "https://github.com/owner/repo", "dev"},
		{"https://github.com/owner/repo", "https://github.com/owner/repo", "main"},
		{"https://gitlab.com/owner/repo@v2", "https://gitlab.com/owner/repo", "v2"},
		{"http://example.com/owner/repo", "http://example.com/owner/repo", "main"},
	}

	for _, tt := range tests {
		url, branch, err := PrepURL(tt.input)
		if err != nil {
			t.Errorf("PrepURL(%q): unexpected error: %v", tt.input, err)
			continue
		}
		if url != tt.url {
			t.Errorf("PrepURL(%q): url = %q, want %q", tt.input, url, tt.url)
		}
		if branch != tt.branch {
			t.Errorf("PrepURL(%q): branch = %q, want %q", tt.input, branch, tt.branch)
		}
	}
}

func TestUpdateRequiresClone(t *testing.T) {
	cache := &Cache{}
	err := cache.Update(Package{Path: t.TempDir()})
	if !errors.Is(err, git.ErrRepositoryNotExists) {
		t.Errorf("Update on a plain directory = %v, want git.ErrRepositoryNotExists", err)
	}
}

func TestFindRespectsConstraint(t *testing.T) {
	cache := &Cache{
		Packages: []Package{
			{Name: "stdmath", Identifier: "stdmath", Version: "1.2.0"},
			{Name: "stdmath", Identifier: "stdmath", Version: "1.4.1"},
			{Name: "strutil", Identifier: "strutil", Version: "0.3.0"},
		},
	}

	tests := []struct {
		identifier string
		constraint string
		version    string
		found      bool
	}{
		{"stdmath", "*", "1.2.0", true},
		{"stdmath", "^1.3.0", "1.4.1", true},
		{"stdmath", "~1.2.0", "1.2.0", true},
		{"stdmath", "^2.0.0", "", false},
		{"strutil", "", "0.3.0", true},
		{"missing", "*", "", false},
	}

	for _, tt := range tests {
		pkg, ok := cache.Find(tt.identifier, tt.constraint)
		if ok != tt.found {
			t.Errorf("Find(%q, %q): found = %v, want %v", tt.identifier, tt.constraint, ok, tt.found)
			continue
		}
		if ok && pkg.Version != tt.version {
			t.Errorf("Find(%q, %q): version = %q, want %q",
				tt.identifier, tt.constraint, pkg.Version, tt.version)
		}
	}
}

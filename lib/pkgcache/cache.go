// Package pkgcache manages the per-user cache of Tisane libraries.
// Libraries are cloned from git remotes into the cache directory and
// looked up by identifier and version.
package pkgcache

import (
	"encoding/gob"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/tisane-lang/tisane/lib/project"
	"github.com/tisane-lang/tisane/util"
)

type Cache struct {
	RootDir  string // cache root, holds the index file
	BaseDir  string // cloned library sources
	Packages []Package
}

type Package struct {
	Name       string
	Version    string
	Identifier string
	Branch     string
	Path       string
}

const indexFile = "cache.bin"

// Init creates the cache directories if needed.
func (c *Cache) Init() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	rootDir := filepath.Join(homeDir, ".local", "lib", "tisane")
	if runtime.GOOS == "windows" {
		rootDir = filepath.Join(homeDir, "AppData", "Local", "Programs", "Tisane")
	}

	baseDir := filepath.Join(rootDir, "packages")
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return err
	}

	c.RootDir = rootDir
	c.BaseDir = baseDir
	c.Packages = nil
	return nil
}

// Scan loads the package index, falling back to a directory walk when the
// index file is missing.
func (c *Cache) Scan() error {
	file, err := os.Open(filepath.Join(c.RootDir, indexFile))
	if err != nil {
		if os.IsNotExist(err) {
			if err := c.DeepScan(); err != nil {
				return err
			}
			return c.Save()
		}
		return err
	}
	defer file.Close()

	return gob.NewDecoder(file).Decode(&c.Packages)
}

// DeepScan rebuilds the package list by walking the cache directory for
// cloned libraries carrying a tisane.yaml.
func (c *Cache) DeepScan() error {
	c.Packages = nil

	return filepath.WalkDir(c.BaseDir, func(path string, d os.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}

		conf, err := project.Load(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}

		identifier := strings.TrimPrefix(strings.TrimPrefix(path, c.BaseDir), string(filepath.Separator))
		branch := filepath.Base(identifier)
		identifier = strings.TrimSuffix(identifier, string(filepath.Separator)+branch)

		c.Packages = append(c.Packages, Package{
			Name:       conf.Name,
			Version:    conf.Version,
			Identifier: identifier,
			Branch:     branch,
			Path:       path,
		})
		return filepath.SkipDir
	})
}

func (c *Cache) Save() error {
	file, err := os.Create(filepath.Join(c.RootDir, indexFile))
	if err != nil {
		return err
	}
	defer file.Close()

	return gob.NewEncoder(file).Encode(c.Packages)
}

// Find returns the cached package matching identifier whose version
// satisfies constraint ("" and "*" match anything).
func (c *Cache) Find(identifier, constraint string) (Package, bool) {
	for _, pkg := range c.Packages {
		if pkg.Identifier != identifier && pkg.Identifier != "github.com/"+identifier {
			continue
		}

		version, err := util.ParseSemver(pkg.Version)
		if err != nil {
			continue
		}
		if version.Satisfies(constraint) {
			return pkg, true
		}
	}

	return Package{}, false
}

// PrepURL normalizes a library URL. A bare "owner/repo" is assumed to
// live on github.com; "@branch" selects a branch, defaulting to main.
func PrepURL(liburl string) (string, string, error) {
	branch := "main"
	if at := strings.LastIndex(liburl, "@"); at != -1 {
		branch = liburl[at+1:]
		liburl = liburl[:at]
	}

	parsed, err := url.Parse(liburl)
	if err != nil {
		return "", "", err
	}
	if parsed.Hostname() == "" {
		liburl = "https://github.com/" + liburl
	}
	if !strings.HasPrefix(liburl, "http://") && !strings.HasPrefix(liburl, "https://") {
		liburl = "https://" + liburl
	}

	return liburl, branch, nil
}

// Install clones the library at liburl into the cache and records it in
// the index. The library's own tisane.yaml provides name and version.
func (c *Cache) Install(liburl string) (Package, error) {
	liburl, branch, err := PrepURL(liburl)
	if err != nil {
		return Package{}, err
	}

	identifier := strings.TrimPrefix(liburl, "https://")
	installDir := filepath.Join(c.BaseDir, identifier, branch)
	if err := os.MkdirAll(installDir, 0700); err != nil {
		return Package{}, err
	}

	_, err = git.PlainClone(installDir, false, &git.CloneOptions{
		URL:           liburl,
		SingleBranch:  true,
		Depth:         1,
		ReferenceName: plumbing.NewBranchReferenceName(branch),
	})
	if err != nil {
		return Package{}, err
	}

	conf, err := project.Load(installDir)
	if err != nil {
		return Package{}, err
	}

	pkg := Package{
		Name:       conf.Name,
		Version:    conf.Version,
		Identifier: identifier,
		Branch:     branch,
		Path:       installDir,
	}
	c.Packages = append(c.Packages, pkg)

	if err := c.Save(); err != nil {
		return Package{}, err
	}
	return pkg, nil
}

// Update pulls the latest revision of a cached library.
func (c *Cache) Update(pkg Package) error {
	repo, err := git.PlainOpen(pkg.Path)
	if err != nil {
		return err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return err
	}

	err = worktree.Pull(&git.PullOptions{SingleBranch: true})
	if err != nil && err != git.NoErrAlreadyUpToDate {
		return err
	}
	return nil
}

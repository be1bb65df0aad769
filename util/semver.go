package util

import (
	"fmt"
	"strconv"
	"strings"
)

// Semver is a parsed major.minor.patch version.
type Semver struct {
	Major int
	Minor int
	Patch int
}

func ParseSemver(version string) (Semver, error) {
	parts := strings.SplitN(strings.TrimPrefix(version, "v"), ".", 3)
	if len(parts) != 3 {
		return Semver{}, fmt.Errorf("invalid version: %s", version)
	}

	var s Semver
	var err error
	if s.Major, err = strconv.Atoi(parts[0]); err != nil {
		return Semver{}, fmt.Errorf("invalid version: %s", version)
	}
	if s.Minor, err = strconv.Atoi(parts[1]); err != nil {
		return Semver{}, fmt.Errorf("invalid version: %s", version)
	}
	if s.Patch, err = strconv.Atoi(parts[2]); err != nil {
		return Semver{}, fmt.Errorf("invalid version: %s", version)
	}
	return s, nil
}

func (s Semver) String() string {
	return fmt.Sprintf("%d.%d.%d", s.Major, s.Minor, s.Patch)
}

// Satisfies reports whether s matches the constraint: "*" matches
// anything, "~x.y.z" pins major.minor, "^x.y.z" pins major, anything
// else is an exact match.
func (s Semver) Satisfies(constraint string) bool {
	if constraint == "" || constraint == "*" {
		return true
	}

	tilde := strings.HasPrefix(constraint, "~")
	caret := strings.HasPrefix(constraint, "^")
	if tilde || caret {
		constraint = constraint[1:]
	}

	c, err := ParseSemver(constraint)
	if err != nil {
		return false
	}

	switch {
	case tilde:
		return s.Major == c.Major && s.Minor == c.Minor && s.Patch >= c.Patch
	case caret:
		return s.Major == c.Major && (s.Minor > c.Minor || s.Minor == c.Minor && s.Patch >= c.Patch)
	default:
		return s == c
	}
}

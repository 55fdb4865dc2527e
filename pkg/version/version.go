// Package version owns semantic-version handling for release runs: bumping
// the stored version by a requested kind and deriving the canonical bare
// version string used for commit messages and tag names.
package version

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Kind is the category of version increment requested by the operator.
type Kind string

const (
	Major      Kind = "major"
	Minor      Kind = "minor"
	Patch      Kind = "patch"
	Premajor   Kind = "premajor"
	Preminor   Kind = "preminor"
	Prepatch   Kind = "prepatch"
	Prerelease Kind = "prerelease"
)

// DefaultKind is used when the operator omits the bump kind argument.
const DefaultKind = Prerelease

// defaultPreLabel is the prerelease label applied when bumping a stable
// version into a prerelease line.
const defaultPreLabel = "prerelease"

// Bump returns the version that follows current for the given kind.
// An unrecognized kind is an error, surfaced to the caller so the run
// aborts without touching the stored version.
func Bump(current string, kind Kind) (string, error) {
	v, err := semver.NewVersion(current)
	if err != nil {
		return "", fmt.Errorf("parsing current version %q: %w", current, err)
	}

	var next semver.Version
	switch kind {
	case Major:
		next = v.IncMajor()
	case Minor:
		next = v.IncMinor()
	case Patch:
		next = v.IncPatch()
	case Premajor:
		return withPrerelease(v.IncMajor(), defaultPreLabel+".0")
	case Preminor:
		return withPrerelease(v.IncMinor(), defaultPreLabel+".0")
	case Prepatch:
		return withPrerelease(v.IncPatch(), defaultPreLabel+".0")
	case Prerelease:
		return bumpPrerelease(v)
	default:
		return "", fmt.Errorf("unrecognized bump kind %q", kind)
	}

	return next.String(), nil
}

// bumpPrerelease increments the numeric tail of an existing prerelease
// suffix, e.g. 1.2.0-prerelease.3 -> 1.2.0-prerelease.4. A stable version
// starts a new prerelease line on the next patch.
func bumpPrerelease(v *semver.Version) (string, error) {
	pre := v.Prerelease()
	if pre == "" {
		return withPrerelease(v.IncPatch(), defaultPreLabel+".0")
	}

	segments := strings.Split(pre, ".")
	last := segments[len(segments)-1]
	if n, err := strconv.Atoi(last); err == nil {
		segments[len(segments)-1] = strconv.Itoa(n + 1)
		return withPrerelease(*v, strings.Join(segments, "."))
	}

	// No numeric tail yet: 1.2.0-rc -> 1.2.0-rc.0
	return withPrerelease(*v, pre+".0")
}

func withPrerelease(v semver.Version, pre string) (string, error) {
	next, err := v.SetPrerelease(pre)
	if err != nil {
		return "", fmt.Errorf("setting prerelease suffix %q: %w", pre, err)
	}
	return next.String(), nil
}

// Canonical strips any packaging-namespace prefix from a raw version string
// read back from project metadata, returning the bare semver string. It
// tolerates "<project> 1.2.3", "<project>-1.2.3", and a leading "v".
func Canonical(project, raw string) (string, error) {
	s := strings.TrimSpace(raw)

	if project != "" {
		for _, sep := range []string{" ", "-", "=", "@"} {
			s = strings.TrimPrefix(s, project+sep)
		}
		s = strings.TrimSpace(s)
	}
	s = strings.TrimPrefix(s, "v")

	if _, err := semver.NewVersion(s); err != nil {
		return "", fmt.Errorf("deriving version from %q: %w", raw, err)
	}
	return s, nil
}

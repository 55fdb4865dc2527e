// Package manifest regenerates pinned dependency manifests from the project
// lockfile. Output is deterministic: an unchanged dependency graph always
// produces byte-identical files.
package manifest

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Package is one locked dependency.
type Package struct {
	Name     string `yaml:"name"`
	Version  string `yaml:"version"`
	Group    string `yaml:"group"`
	Optional bool   `yaml:"optional,omitempty"`
}

const (
	GroupMain = "main"
	GroupDev  = "dev"
)

// Lockfile is the parsed dependency graph.
type Lockfile struct {
	Packages []Package `yaml:"packages"`
}

// LoadLockfile reads and parses the lockfile at path.
func LoadLockfile(path string) (*Lockfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading lockfile %q: %w", path, err)
	}

	var lock Lockfile
	if err := yaml.Unmarshal(data, &lock); err != nil {
		return nil, fmt.Errorf("parsing lockfile YAML: %w", err)
	}

	return &lock, nil
}

// Exporter renders manifests from a lockfile. Extras maps an extra feature
// set name to the optional package names it enables.
type Exporter struct {
	Lock   *Lockfile
	Extras map[string][]string
}

// Runtime renders the runtime manifest: every non-optional main-group
// package, plus optional packages enabled by the given extras.
func (e *Exporter) Runtime(enabled []string) []byte {
	allowed := make(map[string]bool)
	for _, extra := range enabled {
		for _, name := range e.Extras[extra] {
			allowed[name] = true
		}
	}

	var pkgs []Package
	for _, p := range e.Lock.Packages {
		if p.Group != GroupMain {
			continue
		}
		if p.Optional && !allowed[p.Name] {
			continue
		}
		pkgs = append(pkgs, p)
	}

	return render(pkgs)
}

// Dev renders the development manifest: every non-optional package from
// both the main and dev groups.
func (e *Exporter) Dev() []byte {
	var pkgs []Package
	for _, p := range e.Lock.Packages {
		if p.Optional {
			continue
		}
		if p.Group != GroupMain && p.Group != GroupDev {
			continue
		}
		pkgs = append(pkgs, p)
	}

	return render(pkgs)
}

// WriteRuntime writes the runtime manifest to path, overwriting any prior
// contents.
func (e *Exporter) WriteRuntime(path string, enabled []string) error {
	if err := os.WriteFile(path, e.Runtime(enabled), 0644); err != nil {
		return fmt.Errorf("writing runtime manifest %q: %w", path, err)
	}
	return nil
}

// WriteDev writes the development manifest to path, overwriting any prior
// contents.
func (e *Exporter) WriteDev(path string) error {
	if err := os.WriteFile(path, e.Dev(), 0644); err != nil {
		return fmt.Errorf("writing dev manifest %q: %w", path, err)
	}
	return nil
}

// render pins each package as "name==version", one per line, sorted by name.
func render(pkgs []Package) []byte {
	sort.Slice(pkgs, func(i, j int) bool {
		return pkgs[i].Name < pkgs[j].Name
	})

	var buf bytes.Buffer
	for _, p := range pkgs {
		fmt.Fprintf(&buf, "%s==%s\n", p.Name, p.Version)
	}
	return buf.Bytes()
}

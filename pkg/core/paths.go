package core

import "path/filepath"

// ResolvePathFromProject resolves a path from the project file. If the
// provided path is already absolute, it's returned as is. If it's relative,
// it's joined with the projectDir to create an absolute path.
func ResolvePathFromProject(projectDir, pathFromYAML string) string {
	if filepath.IsAbs(pathFromYAML) {
		return pathFromYAML
	}

	return filepath.Join(projectDir, pathFromYAML)
}

// SPDX-License-Identifier: AGPL-3.0-or-later

package roster

import (
	"path/filepath"
	"strings"
)

// DefaultPattern places team repositories under repos/<group>-HospitalSystem/.
const DefaultPattern = "repos/{group}-HospitalSystem/{repo}"

// Layout derives working-copy and artifact locations from group and repository name.
type Layout struct {
	Base    string
	Pattern string
}

// NewLayout returns a Layout rooted at base. An empty pattern means DefaultPattern.
func NewLayout(base, pattern string) Layout {
	if pattern == "" {
		pattern = DefaultPattern
	}
	return Layout{Base: base, Pattern: pattern}
}

// Dir is the repository's working copy.
func (l Layout) Dir(r Repository) string {
	rel := strings.NewReplacer("{group}", string(r.Group), "{repo}", r.Name).Replace(l.Pattern)
	if filepath.IsAbs(rel) {
		return filepath.Clean(rel)
	}
	return filepath.Join(l.Base, filepath.FromSlash(rel))
}

// Artifact is a file named after the repository, stored next to (not inside) its working copy.
func (l Layout) Artifact(r Repository, ext string) string {
	return filepath.Join(filepath.Dir(l.Dir(r)), r.Name+ext)
}

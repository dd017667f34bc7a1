// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Commitscope - extracts commit history from a roster of team repositories and reports it per contributor.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package roster loads the list of team repositories and locates them on disk.
package roster

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// GroupID identifies a course team. Rosters may spell it as a number or a string.
type GroupID string

// UnmarshalYAML accepts any scalar.
func (g *GroupID) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: group must be a scalar", node.Line)
	}
	*g = GroupID(strings.TrimSpace(node.Value))
	return nil
}

// UnmarshalJSON accepts a JSON number or string.
func (g *GroupID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*g = GroupID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("group must be a number or string: %w", err)
	}
	*g = GroupID(n.String())
	return nil
}

// Repository is one roster entry.
type Repository struct {
	Group  GroupID `json:"group_number" yaml:"group_number"`
	Name   string  `json:"repo_name" yaml:"repo_name"`
	Branch string  `json:"git_branch,omitempty" yaml:"git_branch,omitempty"`
}

// Key identifies the repository within a run.
func (r Repository) Key() string {
	return string(r.Group) + "-" + r.Name
}

// Group is a team and its repositories in roster order.
type Group struct {
	ID    GroupID
	Repos []Repository
}

// Load reads a roster file. Files ending in .json are decoded as JSON, anything else as YAML.
func Load(path string) ([]Repository, error) {
	data, err := os.ReadFile(path) //nolint:gosec // roster path is operator supplied
	if err != nil {
		return nil, fmt.Errorf("reading roster: %w", err)
	}
	return Parse(data, strings.EqualFold(filepath.Ext(path), ".json"))
}

// Parse decodes and validates roster content.
func Parse(data []byte, isJSON bool) ([]Repository, error) {
	var repos []Repository
	if isJSON {
		if err := json.Unmarshal(data, &repos); err != nil {
			return nil, fmt.Errorf("decoding roster: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &repos); err != nil {
			return nil, fmt.Errorf("decoding roster: %w", err)
		}
	}

	for i := range repos {
		repos[i].Name = strings.TrimSpace(repos[i].Name)
		repos[i].Branch = strings.TrimSpace(repos[i].Branch)
		if err := validate(repos[i]); err != nil {
			return nil, fmt.Errorf("roster entry %d: %w", i, err)
		}
	}
	return repos, nil
}

func validate(r Repository) error {
	if r.Group == "" {
		return fmt.Errorf("missing group_number")
	}
	if r.Name == "" {
		return fmt.Errorf("missing repo_name")
	}
	if r.Name == "." || r.Name == ".." || strings.ContainsAny(r.Name, `/\`) {
		return fmt.Errorf("invalid repo_name %q", r.Name)
	}
	return nil
}

// Partition groups repositories by team, keeping the order in which teams
// first appear and the roster order within each team.
func Partition(repos []Repository) []Group {
	var groups []Group
	index := make(map[GroupID]int)
	for _, r := range repos {
		i, ok := index[r.Group]
		if !ok {
			i = len(groups)
			index[r.Group] = i
			groups = append(groups, Group{ID: r.Group})
		}
		groups[i].Repos = append(groups[i].Repos, r)
	}
	return groups
}

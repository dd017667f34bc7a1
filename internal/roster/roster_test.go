package roster

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jsonRoster = `[
	{"group_number": 2, "repo_name": "backend", "git_branch": "main"},
	{"group_number": 1, "repo_name": "frontend"},
	{"group_number": 2, "repo_name": "docs", "git_branch": " dev "},
	{"group_number": "1", "repo_name": "mobile"}
]`

const yamlRoster = `
- group_number: 2
  repo_name: backend
  git_branch: main
- group_number: 1
  repo_name: frontend
- group_number: 2
  repo_name: docs
  git_branch: dev
- group_number: "1"
  repo_name: mobile
`

func TestParse_Formats(t *testing.T) {
	want := []Repository{
		{Group: "2", Name: "backend", Branch: "main"},
		{Group: "1", Name: "frontend"},
		{Group: "2", Name: "docs", Branch: "dev"},
		{Group: "1", Name: "mobile"},
	}

	t.Run("json", func(t *testing.T) {
		got, err := Parse([]byte(jsonRoster), true)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("yaml", func(t *testing.T) {
		got, err := Parse([]byte(yamlRoster), false)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errText string
	}{
		{name: "missing group", content: `[{"repo_name": "a"}]`, errText: "roster entry 0: missing group_number"},
		{name: "missing name", content: `[{"group_number": 1}, {"group_number": 1, "repo_name": " "}]`, errText: "roster entry 0: missing repo_name"},
		{name: "path in name", content: `[{"group_number": 1, "repo_name": "../x"}]`, errText: "invalid repo_name"},
		{name: "object group", content: `[{"group_number": {"a": 1}, "repo_name": "x"}]`, errText: "group must be a number or string"},
		{name: "not a list", content: `{"group_number": 1}`, errText: "decoding roster"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.content), true)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errText)
		})
	}
}

func TestLoad_ByExtension(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "repos.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(jsonRoster), 0o600))
	yamlPath := filepath.Join(dir, "repos.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(yamlRoster), 0o600))

	fromJSON, err := Load(jsonPath)
	require.NoError(t, err)
	fromYAML, err := Load(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, fromJSON, fromYAML)

	_, err = Load(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading roster")
}

func TestPartition_PreservesOrder(t *testing.T) {
	repos, err := Parse([]byte(jsonRoster), true)
	require.NoError(t, err)

	groups := Partition(repos)
	require.Len(t, groups, 2)

	assert.Equal(t, GroupID("2"), groups[0].ID)
	assert.Equal(t, []string{"backend", "docs"}, names(groups[0].Repos))
	assert.Equal(t, GroupID("1"), groups[1].ID)
	assert.Equal(t, []string{"frontend", "mobile"}, names(groups[1].Repos))
}

func TestPartition_Empty(t *testing.T) {
	assert.Empty(t, Partition(nil))
}

func TestLayout(t *testing.T) {
	repo := Repository{Group: "7", Name: "hms"}

	l := NewLayout("/data", "")
	assert.Equal(t, filepath.Join("/data", "repos", "7-HospitalSystem", "hms"), l.Dir(repo))
	assert.Equal(t, filepath.Join("/data", "repos", "7-HospitalSystem", "hms.json"), l.Artifact(repo, ".json"))
	assert.Equal(t, filepath.Join("/data", "repos", "7-HospitalSystem", "hms.svg"), l.Artifact(repo, ".svg"))

	custom := NewLayout("/data", "teams/{group}/{repo}")
	assert.Equal(t, filepath.Join("/data", "teams", "7", "hms"), custom.Dir(repo))

	abs := NewLayout("/data", "/srv/{group}/{repo}")
	assert.Equal(t, filepath.Join("/srv", "7", "hms"), abs.Dir(repo))
}

func TestRepository_Key(t *testing.T) {
	assert.Equal(t, "3-web", Repository{Group: "3", Name: "web"}.Key())
}

func names(repos []Repository) []string {
	out := make([]string, 0, len(repos))
	for _, r := range repos {
		out = append(out, r.Name)
	}
	return out
}

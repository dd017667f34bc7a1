package runner

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// StateStore handles reading and writing run results.
type StateStore struct {
	baseDir string
}

// NewStateStore creates a store at the given base directory (e.g. .commitscope/run).
func NewStateStore(baseDir string) *StateStore {
	return &StateStore{baseDir: baseDir}
}

// Dir is the store's base directory.
func (s *StateStore) Dir() string {
	return s.baseDir
}

func (s *StateStore) lastRunPath() string {
	return filepath.Join(s.baseDir, "last-run.json")
}

func (s *StateStore) repoPath(key string) string {
	return filepath.Join(s.baseDir, "repos", key+".json")
}

// ReadLastRun loads the last batch summary.
func (s *StateStore) ReadLastRun() (*LastRun, error) {
	var last LastRun
	ok, err := readJSON(s.lastRunPath(), &last)
	if err != nil {
		return nil, fmt.Errorf("reading last run: %w", err)
	}
	if !ok {
		return nil, nil // Not found is clean state
	}
	return &last, nil
}

// ReadRepo loads the latest result recorded for one repository.
func (s *StateStore) ReadRepo(key string) (*RepoResult, error) {
	var res RepoResult
	ok, err := readJSON(s.repoPath(key), &res)
	if err != nil || !ok {
		return nil, err
	}
	return &res, nil
}

// WriteLastRun saves the batch summary.
func (s *StateStore) WriteLastRun(last LastRun) error {
	return writeJSON(s.lastRunPath(), last)
}

// WriteRepoResult saves a repository's result.
func (s *StateStore) WriteRepoResult(res RepoResult) error {
	return writeJSON(s.repoPath(res.Key()), res)
}

// Reset clears the state directory.
func (s *StateStore) Reset() error {
	return os.RemoveAll(s.baseDir)
}

// LoadFailed returns the keys of repositories that failed in the last run of task.
func (s *StateStore) LoadFailed(task string) ([]string, error) {
	last, err := s.ReadLastRun()
	if err != nil {
		return nil, err
	}
	if last == nil || last.Task != task {
		return nil, nil
	}
	return last.FailedKeys(), nil
}

func readJSON(path string, v any) (bool, error) {
	f, err := os.Open(path) //nolint:gosec // path is built from the state directory
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	defer func() { _ = f.Close() }()

	if err := json.NewDecoder(f).Decode(v); err != nil {
		return false, fmt.Errorf("decoding %s: %w", path, err)
	}
	return true, nil
}

func writeJSON(path string, v any) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		cerr := f.Close()
		if err == nil {
			err = cerr
		}
	}()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

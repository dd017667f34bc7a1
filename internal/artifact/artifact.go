// SPDX-License-Identifier: AGPL-3.0-or-later

// Package artifact writes per-repository JSON reports.
package artifact

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/bartekus/commitscope/internal/contributors"
	"github.com/bartekus/commitscope/internal/gitlog"
)

// WriteCommits stores records as a flat list of {time, author, title} in log order.
func WriteCommits(path, repo string, records []gitlog.Record) error {
	if records == nil {
		records = []gitlog.Record{}
	}
	return write(path, repo, records)
}

// WriteContributors stores ranked contributor summaries as {name, commits:[{date, title}]}.
func WriteContributors(path, repo string, summaries []contributors.Summary) error {
	if summaries == nil {
		summaries = []contributors.Summary{}
	}
	return write(path, repo, summaries)
}

// WriteFile stores raw bytes, such as a rendered graph.
func WriteFile(path, repo string, data []byte) error {
	return writeAtomic(path, repo, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// write encodes v with two-space indentation, leaving non-ASCII text unescaped.
func write(path, repo string, v any) error {
	return writeAtomic(path, repo, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(v)
	})
}

// writeAtomic fills a temporary file beside path and renames it into place.
func writeAtomic(path, repo string, fill func(io.Writer) error) (err error) {
	fail := func(err error) error {
		return &gitlog.Error{Kind: gitlog.KindOutputWrite, Repo: repo, Path: path, Err: err}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fail(err)
	}

	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fail(err)
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
		}
	}()

	if err := fill(f); err != nil {
		return fail(err)
	}
	if err := f.Close(); err != nil {
		return fail(err)
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		return fail(err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fail(err)
	}
	return nil
}

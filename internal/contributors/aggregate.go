// SPDX-License-Identifier: AGPL-3.0-or-later

// Package contributors groups one repository's commits by author and ranks the authors.
package contributors

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/bartekus/commitscope/internal/gitlog"
)

// Commit is one entry in a contributor's history.
type Commit struct {
	Date  string `json:"date"`
	Title string `json:"title"`
}

// Summary is every commit of one author, oldest first.
type Summary struct {
	Name    string   `json:"name"`
	Commits []Commit `json:"commits"`
}

// Aggregate groups records by exact author string, orders each group by date
// and ranks groups by commit count, descending.
// Both sorts are stable: equal dates keep input order and equal counts keep
// first-seen author order. Records with an empty author are left out.
func Aggregate(records []gitlog.Record) []Summary {
	var summaries []Summary
	index := make(map[string]int)

	for _, r := range records {
		if r.Author == "" {
			continue
		}
		i, ok := index[r.Author]
		if !ok {
			i = len(summaries)
			index[r.Author] = i
			summaries = append(summaries, Summary{Name: r.Author})
		}
		summaries[i].Commits = append(summaries[i].Commits, Commit{Date: r.Timestamp, Title: r.Title})
	}

	for i := range summaries {
		commits := summaries[i].Commits
		sort.SliceStable(commits, func(a, b int) bool {
			return commits[a].Date < commits[b].Date
		})
	}

	sort.SliceStable(summaries, func(a, b int) bool {
		return len(summaries[a].Commits) > len(summaries[b].Commits)
	})

	return summaries
}

// NormalizeDates returns a copy of records with timestamps reduced to YYYY-MM-DD.
// A timestamp that cannot be parsed is kept verbatim and logged; it never fails the batch.
func NormalizeDates(records []gitlog.Record, logger zerolog.Logger) (out []gitlog.Record, failed int) {
	out = make([]gitlog.Record, len(records))
	for i, r := range records {
		date, err := gitlog.NormalizeDate(r.Timestamp)
		if err != nil {
			failed++
			logger.Warn().Err(err).
				Str("author", r.Author).
				Str("title", r.Title).
				Msg("Keeping raw timestamp")
			date = r.Timestamp
		}
		r.Timestamp = date
		out[i] = r
	}
	return out, failed
}

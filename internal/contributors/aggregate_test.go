package contributors

import (
	"bytes"
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bartekus/commitscope/internal/gitlog"
)

func rec(date, author, title string) gitlog.Record {
	return gitlog.Record{Timestamp: date, Author: author, Title: title}
}

func TestAggregate_Scenario(t *testing.T) {
	got := Aggregate([]gitlog.Record{
		rec("2024-01-01", "Alice", "fix bug"),
		rec("2024-01-02", "Bob", "add feature"),
	})
	assert.Equal(t, []Summary{
		{Name: "Alice", Commits: []Commit{{Date: "2024-01-01", Title: "fix bug"}}},
		{Name: "Bob", Commits: []Commit{{Date: "2024-01-02", Title: "add feature"}}},
	}, got)

	got = Aggregate([]gitlog.Record{
		rec("2024-01-02", "Bob", "add feature"),
		rec("2024-01-01", "Alice", "fix bug"),
	})
	require.Len(t, got, 2)
	assert.Equal(t, "Bob", got[0].Name)
	assert.Equal(t, "Alice", got[1].Name)
}

func TestAggregate_RanksByCountAndSortsByDate(t *testing.T) {
	got := Aggregate([]gitlog.Record{
		rec("2024-03-01", "Carol", "c1"),
		rec("2024-02-01", "Alice", "a2"),
		rec("2024-01-01", "Alice", "a1"),
		rec("2024-02-01", "Alice", "a3"),
		rec("2024-01-15", "Bob", "b1"),
		rec("2024-01-10", "Bob", "b0"),
	})

	require.Len(t, got, 3)
	assert.Equal(t, "Alice", got[0].Name)
	assert.Equal(t, []Commit{
		{Date: "2024-01-01", Title: "a1"},
		{Date: "2024-02-01", Title: "a2"},
		{Date: "2024-02-01", Title: "a3"},
	}, got[0].Commits)
	assert.Equal(t, "Bob", got[1].Name)
	assert.Equal(t, []Commit{{Date: "2024-01-10", Title: "b0"}, {Date: "2024-01-15", Title: "b1"}}, got[1].Commits)
	assert.Equal(t, "Carol", got[2].Name)
}

func TestAggregate_ExactAuthorMatching(t *testing.T) {
	got := Aggregate([]gitlog.Record{
		rec("2024-01-01", "alice", "x"),
		rec("2024-01-01", "Alice", "y"),
		rec("2024-01-01", "Alice ", "z"),
	})
	assert.Len(t, got, 3)
}

func TestAggregate_SkipsEmptyAuthors(t *testing.T) {
	got := Aggregate([]gitlog.Record{rec("2024-01-01", "", "orphan"), rec("2024-01-02", "Bob", "b")})
	require.Len(t, got, 1)
	assert.Equal(t, "Bob", got[0].Name)
	assert.Empty(t, Aggregate(nil))
}

// TestAggregate_Properties checks grouping, ordering and ranking over random inputs.
func TestAggregate_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	authors := []string{"Alice", "Bob", "Carol", "Dave", ""}

	for iter := 0; iter < 200; iter++ {
		n := rng.Intn(40)
		records := make([]gitlog.Record, n)
		for i := range records {
			records[i] = rec(
				fmt.Sprintf("2024-01-%02d", 1+rng.Intn(5)),
				authors[rng.Intn(len(authors))],
				fmt.Sprintf("t%d", i),
			)
		}

		got := Aggregate(records)

		// multiset of non-empty-author input == multiset of output
		want := map[gitlog.Record]int{}
		firstSeen := map[string]int{}
		for i, r := range records {
			if r.Author == "" {
				continue
			}
			want[r]++
			if _, ok := firstSeen[r.Author]; !ok {
				firstSeen[r.Author] = i
			}
		}
		have := map[gitlog.Record]int{}
		for _, s := range got {
			for _, c := range s.Commits {
				have[rec(c.Date, s.Name, c.Title)]++
			}
		}
		require.Equal(t, want, have)

		for i, s := range got {
			// chronological, ties in input order (titles encode input index)
			assert.True(t, sort.SliceIsSorted(s.Commits, func(a, b int) bool {
				return s.Commits[a].Date < s.Commits[b].Date
			}))
			for j := 1; j < len(s.Commits); j++ {
				if s.Commits[j-1].Date == s.Commits[j].Date {
					assert.Less(t, titleIndex(t, s.Commits[j-1].Title), titleIndex(t, s.Commits[j].Title))
				}
			}
			// ranking: count desc, ties by first appearance
			if i > 0 {
				prev := got[i-1]
				require.GreaterOrEqual(t, len(prev.Commits), len(s.Commits))
				if len(prev.Commits) == len(s.Commits) {
					assert.Less(t, firstSeen[prev.Name], firstSeen[s.Name])
				}
			}
		}
	}
}

func TestNormalizeDates(t *testing.T) {
	var logs bytes.Buffer
	in := []gitlog.Record{
		rec("2024-03-11 10:22:05 +0800", "Alice", "ok"),
		rec("not a date", "Bob", "bad"),
	}

	out, failed := NormalizeDates(in, zerolog.New(&logs))

	assert.Equal(t, 1, failed)
	assert.Equal(t, []gitlog.Record{
		rec("2024-03-11", "Alice", "ok"),
		rec("not a date", "Bob", "bad"),
	}, out)
	assert.Equal(t, "2024-03-11 10:22:05 +0800", in[0].Timestamp, "input must not be mutated")
	assert.Contains(t, logs.String(), "Keeping raw timestamp")
}

func titleIndex(t *testing.T, title string) int {
	t.Helper()
	var i int
	_, err := fmt.Sscanf(title, "t%d", &i)
	require.NoError(t, err)
	return i
}

package runner

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// noteWidth keeps long diagnostics from blowing up the table.
const noteWidth = 60

// PrintSummary renders a run as a table with totals in the footer.
func PrintSummary(w io.Writer, last *LastRun) {
	data := make([][]string, 0, len(last.Repos))
	for _, r := range last.Repos {
		detail := r.Kind
		if r.Note != "" {
			if detail != "" {
				detail += ": "
			}
			detail += r.Note
		}
		data = append(data, []string{
			r.Group,
			r.Repo,
			string(r.Status),
			strconv.Itoa(r.Records),
			truncate(detail, noteWidth),
		})
	}

	_, _ = fmt.Fprintln(w, "")
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Group", "Repository", "Status", "Commits", "Detail"})
	table.SetFooter([]string{
		"",
		fmt.Sprintf("Total %d", last.Total),
		fmt.Sprintf("%d ok / %d failed", last.Succeeded, last.Failed),
		fmt.Sprintf("%d skipped", last.Skipped),
		"",
	})
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.AppendBulk(data)
	table.Render()
	_, _ = fmt.Fprintln(w, "")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

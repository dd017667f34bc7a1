// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Commitscope - extracts commit history from a roster of team repositories and reports it per contributor.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package gitlog turns raw `git log` output into commit records.
package gitlog

const (
	// RecordSeparator ends every commit entry (ASCII RS).
	RecordSeparator = "\x1e"
	// FieldSeparator splits timestamp, author and title inside an entry (ASCII US).
	FieldSeparator = "\x1f"

	// LogFormat asks git for "<author date ISO>US<author name>US<subject>RS" per commit.
	LogFormat = "%ai%x1F%an%x1F%s%x1E"
)

// Record is a single commit as reported by the log command.
// Timestamp is either the raw ISO-8601 author date or a YYYY-MM-DD date once normalized.
type Record struct {
	Timestamp string `json:"time"`
	Author    string `json:"author"`
	Title     string `json:"title"`
}

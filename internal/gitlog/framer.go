// SPDX-License-Identifier: AGPL-3.0-or-later

package gitlog

import (
	"strings"

	"github.com/rs/zerolog"
)

// minFields is timestamp, author and title.
const minFields = 3

// diagnosticRunes is how much of a malformed entry gets logged.
const diagnosticRunes = 100

// Frame is the outcome of splitting one log blob.
type Frame struct {
	Records []Record
	// Malformed counts entries skipped for having fewer than three fields.
	Malformed int
}

// Framer splits log output written with LogFormat into records.
type Framer struct {
	logger zerolog.Logger
}

// NewFramer returns a Framer that reports skipped entries to logger.
func NewFramer(logger zerolog.Logger) *Framer {
	return &Framer{logger: logger}
}

// Parse splits raw on RecordSeparator and each entry on FieldSeparator.
// The title is the last field, so any separators beyond the second belong to it.
// Entries with fewer than three fields are skipped and counted, never fatal.
// Order is preserved and duplicates are kept.
func (f *Framer) Parse(raw string) Frame {
	var frame Frame
	for _, entry := range strings.Split(raw, RecordSeparator) {
		if strings.TrimSpace(entry) == "" {
			continue
		}

		parts := strings.Split(entry, FieldSeparator)
		if len(parts) < minFields {
			frame.Malformed++
			f.logger.Warn().
				Str("record", head(entry, diagnosticRunes)).
				Int("fields", len(parts)).
				Msg("Skipping malformed commit record")
			continue
		}

		frame.Records = append(frame.Records, Record{
			Timestamp: strings.TrimSpace(parts[0]),
			Author:    strings.TrimSpace(parts[1]),
			Title:     strings.TrimSpace(strings.Join(parts[2:], FieldSeparator)),
		})
	}
	return frame
}

func head(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

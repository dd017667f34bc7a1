// SPDX-License-Identifier: AGPL-3.0-or-later

package gitlog

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar-date form produced by NormalizeDate.
const DateLayout = "2006-01-02"

// ErrDateParse marks a timestamp that carries no usable date, time and offset.
var ErrDateParse = errors.New("unparseable commit timestamp")

// timestampLayouts are tried in order; all of them keep the offset as written.
var timestampLayouts = []string{
	"2006-01-02 15:04:05 -0700", // git %ai
	time.RFC3339,                // git %aI
	"2006-01-02T15:04:05-0700",
	"2006-01-02 15:04:05-07:00",
}

// DateParseError reports the timestamp that could not be normalized.
type DateParseError struct {
	Timestamp string
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("%v: %q", ErrDateParse, e.Timestamp)
}

func (e *DateParseError) Unwrap() error { return ErrDateParse }

// NormalizeDate returns the YYYY-MM-DD date of an offset-carrying timestamp.
// The date is read in the timestamp's own offset, never converted to another zone.
// An already normalized date is returned unchanged.
func NormalizeDate(ts string) (string, error) {
	ts = strings.TrimSpace(ts)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, ts); err == nil {
			return t.Format(DateLayout), nil
		}
	}
	if t, err := time.Parse(DateLayout, ts); err == nil {
		return t.Format(DateLayout), nil
	}
	return "", &DateParseError{Timestamp: ts}
}

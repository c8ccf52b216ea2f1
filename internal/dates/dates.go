package dates

import (
	"fmt"
	"strings"
	"time"
)

const (
	// FolderSeparator splits an ordinal prefix from the date in a folder name.
	FolderSeparator = ". "

	folderLayout         = "Jan 2, 2006"
	folderLayoutNoComma  = "Jan 2 2006"
	configLayout         = "January 2, 2006"
	agendaLayout         = "January 2, 2006 3:04 PM"
	agendaClockFormatMsg = "hh:mm AM|PM"
)

// ParseError reports a config date or agenda time that does not match its
// expected format.
type ParseError struct {
	Value  string
	Layout string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("dates: %q does not match %q", e.Value, e.Layout)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parser holds the location every parsed date is placed in.
type Parser struct {
	Location *time.Location
}

// NewParser returns a Parser for loc (UTC when nil).
func NewParser(loc *time.Location) Parser {
	if loc == nil {
		loc = time.UTC
	}
	return Parser{Location: loc}
}

func (p Parser) loc() *time.Location {
	if p.Location == nil {
		return time.UTC
	}
	return p.Location
}

// FolderDate extracts the date from an event folder name such as
// "1. Apr 20, 2025". It reports false when the name has no ". " separator
// or the trailing segment is not a date.
func (p Parser) FolderDate(name string) (time.Time, bool) {
	idx := strings.LastIndex(name, FolderSeparator)
	if idx < 0 {
		return time.Time{}, false
	}
	tail := strings.TrimSpace(name[idx+len(FolderSeparator):])
	for _, layout := range []string{folderLayout, folderLayoutNoComma} {
		if t, err := time.ParseInLocation(layout, tail, p.loc()); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ConfigDate parses the "date" field of an Info.yml, e.g. "October 11, 2025".
func (p Parser) ConfigDate(value string) (time.Time, error) {
	t, err := time.ParseInLocation(configLayout, strings.TrimSpace(value), p.loc())
	if err != nil {
		return time.Time{}, &ParseError{Value: value, Layout: configLayout, Err: err}
	}
	return t, nil
}

// AgendaTime combines an event's date string with an agenda clock such as
// "10:15 AM ". Surrounding whitespace is ignored and am/pm may be lowercase.
func (p Parser) AgendaTime(date, clock string) (time.Time, error) {
	joined := strings.TrimSpace(date) + " " + strings.ToUpper(strings.TrimSpace(clock))
	t, err := time.ParseInLocation(agendaLayout, joined, p.loc())
	if err != nil {
		return time.Time{}, &ParseError{
			Value:  joined,
			Layout: configLayout + " " + agendaClockFormatMsg,
			Err:    err,
		}
	}
	return t, nil
}

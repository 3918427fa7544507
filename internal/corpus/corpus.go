// Package corpus splits a record log into day groups.
//
// A log is newline-delimited. Blank lines are ignored, a line starting with
// '0' closes the current day, and every other line is a point record.
package corpus

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/tkukec/arcus-grid/internal/fsutil"
	"github.com/tkukec/arcus-grid/internal/point"
)

// Delimiter is the first byte of a day-boundary line.
const Delimiter = '0'

var (
	// ErrFileNotFound means the log file does not exist.
	ErrFileNotFound = errors.New("file not found")
	// ErrUnreadable means the log file exists but could not be read.
	ErrUnreadable = errors.New("file unreadable")
	// ErrIncompleteDay means a non-empty day has no point for a slot.
	ErrIncompleteDay = errors.New("incomplete day")
	// ErrSlotOutOfRange means a slot index outside 0..5 was requested.
	ErrSlotOutOfRange = errors.New("slot out of range")
)

// LineError locates a record failure within a log.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// DayGroup holds one day's points in file order.
type DayGroup []point.Point

// Corpus is the ordered sequence of days parsed from one log.
type Corpus struct {
	Name string
	Path string
	Days []DayGroup
}

// Parse splits contents into day groups. The last group is always
// appended, even when empty, so the result is never empty. Consecutive
// delimiter lines are absorbed. The first invalid record aborts the parse.
func Parse(contents string) ([]DayGroup, error) {
	var (
		days []DayGroup
		cur  DayGroup
	)
	for i, line := range strings.Split(contents, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		if line[0] == Delimiter {
			if len(cur) > 0 {
				days = append(days, cur)
				cur = nil
			}
			continue
		}
		p, err := point.Parse(line)
		if err != nil {
			return nil, &LineError{Line: i + 1, Err: err}
		}
		cur = append(cur, p)
	}
	days = append(days, cur)
	return days, nil
}

// Load reads and parses the log at path.
func Load(fsys fsutil.FileSystem, name, path string) (*Corpus, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s log %s: %w: %v", name, path, ErrFileNotFound, err)
		}
		return nil, fmt.Errorf("%s log %s: %w: %v", name, path, ErrUnreadable, err)
	}

	days, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s log %s: %w", name, path, err)
	}
	return &Corpus{Name: name, Path: path, Days: days}, nil
}

// SlotSeries returns the slot-th point of every day, in day order. Empty
// days contribute nothing.
func (c *Corpus) SlotSeries(slot int) ([]point.Point, error) {
	if slot < 0 || slot >= point.GridSize {
		return nil, fmt.Errorf("%w: %d", ErrSlotOutOfRange, slot)
	}
	series := make([]point.Point, 0, len(c.Days))
	for d, day := range c.Days {
		if len(day) == 0 {
			continue
		}
		if slot >= len(day) {
			return nil, fmt.Errorf("%s day %d has %d points, slot %d: %w",
				c.Name, d+1, len(day), slot, ErrIncompleteDay)
		}
		series = append(series, day[slot])
	}
	return series, nil
}

// PointCount returns the number of points across all days.
func (c *Corpus) PointCount() int {
	n := 0
	for _, day := range c.Days {
		n += len(day)
	}
	return n
}

// NonEmptyDays returns the number of days holding at least one point.
func (c *Corpus) NonEmptyDays() int {
	n := 0
	for _, day := range c.Days {
		if len(day) > 0 {
			n++
		}
	}
	return n
}

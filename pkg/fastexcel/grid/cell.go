// Package grid provides the dynamically typed cell range a sheet is read into.
package grid

import (
	"math"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"
)

// Kind identifies the dynamic type held by a Cell.
type Kind uint8

const (
	// KindEmpty is a cell with no value.
	KindEmpty Kind = iota
	// KindBool holds a boolean.
	KindBool
	// KindInt holds a 64-bit signed integer.
	KindInt
	// KindFloat holds a 64-bit float.
	KindFloat
	// KindString holds UTF-8 text.
	KindString
	// KindDateTime holds a date and time.
	KindDateTime
	// KindError holds a spreadsheet error literal such as #DIV/0!.
	KindError
)

var kindNames = [...]string{
	KindEmpty:    "empty",
	KindBool:     "bool",
	KindInt:      "int",
	KindFloat:    "float",
	KindString:   "string",
	KindDateTime: "datetime",
	KindError:    "error",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Cell is a single spreadsheet value. The zero value is an empty cell.
type Cell struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	t    time.Time
}

// Bool returns a boolean cell.
func Bool(v bool) Cell { return Cell{kind: KindBool, b: v} }

// Int returns an integer cell.
func Int(v int64) Cell { return Cell{kind: KindInt, i: v} }

// Float returns a float cell.
func Float(v float64) Cell { return Cell{kind: KindFloat, f: v} }

// String returns a text cell.
func String(v string) Cell { return Cell{kind: KindString, s: v} }

// DateTime returns a date/time cell.
func DateTime(v time.Time) Cell { return Cell{kind: KindDateTime, t: v} }

// Error returns an error cell carrying the error literal.
func Error(v string) Cell { return Cell{kind: KindError, s: v} }

// WithText records the source text of a bool or number cell, as read from a
// text format such as csv. AsString returns that text unchanged.
func (c Cell) WithText(raw string) Cell {
	switch c.kind {
	case KindBool, KindInt, KindFloat:
		c.s = raw
	}
	return c
}

// Kind reports the dynamic type of the cell.
func (c Cell) Kind() Kind { return c.kind }

// IsEmpty reports whether the cell holds no value.
func (c Cell) IsEmpty() bool { return c.kind == KindEmpty }

// AsBool returns the value of a boolean cell.
func (c Cell) AsBool() (bool, bool) {
	if c.kind == KindBool {
		return c.b, true
	}
	return false, false
}

// AsInt returns the value of an integer cell, or of a float cell holding a
// whole number that fits in an int64. Fractional floats are never truncated.
func (c Cell) AsInt() (int64, bool) {
	switch c.kind {
	case KindInt:
		return c.i, true
	case KindFloat:
		if math.IsNaN(c.f) || math.IsInf(c.f, 0) || c.f != math.Trunc(c.f) {
			return 0, false
		}
		// 2^63 itself is not representable.
		if c.f < math.MinInt64 || c.f >= math.MaxInt64 {
			return 0, false
		}
		return int64(c.f), true
	}
	return 0, false
}

// AsFloat returns the value of a float or integer cell.
func (c Cell) AsFloat() (float64, bool) {
	switch c.kind {
	case KindFloat:
		return c.f, true
	case KindInt:
		return float64(c.i), true
	}
	return 0, false
}

// AsString renders every non-empty, non-error cell as text. Cells carrying
// source text return it as is.
func (c Cell) AsString() (string, bool) {
	switch c.kind {
	case KindBool, KindInt, KindFloat:
		if c.s != "" {
			return c.s, true
		}
	}
	switch c.kind {
	case KindString:
		return c.s, true
	case KindInt:
		return strconv.FormatInt(c.i, 10), true
	case KindFloat:
		return strconv.FormatFloat(c.f, 'f', -1, 64), true
	case KindBool:
		return strconv.FormatBool(c.b), true
	case KindDateTime:
		if c.t.Nanosecond() == 0 {
			return c.t.Format(time.DateTime), true
		}
		return c.t.Format("2006-01-02 15:04:05.000"), true
	}
	return "", false
}

// dateLayouts are tried in order when a text cell is read as a date.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	time.DateTime,
	time.DateOnly,
}

// AsTime returns the value of a date/time cell. Numeric cells are read as
// 1900-system Excel serial dates and text cells as ISO-8601 timestamps.
func (c Cell) AsTime() (time.Time, bool) {
	switch c.kind {
	case KindDateTime:
		return c.t, true
	case KindInt, KindFloat:
		serial, _ := c.AsFloat()
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	case KindString:
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, c.s); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// ErrorValue returns the literal of an error cell.
func (c Cell) ErrorValue() (string, bool) {
	if c.kind == KindError {
		return c.s, true
	}
	return "", false
}

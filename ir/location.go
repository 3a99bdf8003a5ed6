package ir

import "fmt"

// Location points at the source position an operation originated from. The
// zero value is the unknown location.
type Location struct {
	File string
	Line int
	Col  int
}

// Loc builds a known location.
func Loc(file string, line, col int) Location {
	return Location{File: file, Line: line, Col: col}
}

// UnknownLoc returns the unknown location.
func UnknownLoc() Location { return Location{} }

// IsUnknown reports whether the location carries no position.
func (l Location) IsUnknown() bool { return l.File == "" && l.Line == 0 }

// String renders the location in its textual form, `loc("file":line:col)`, or
// `loc(unknown)`.
func (l Location) String() string {
	if l.IsUnknown() {
		return "loc(unknown)"
	}
	return fmt.Sprintf("loc(%q:%d:%d)", l.File, l.Line, l.Col)
}

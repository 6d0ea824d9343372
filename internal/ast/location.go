package ast

import "fmt"

// Position is a single point in the template source.
type Position struct {
	Offset int
	Line   int
	Column int
}

// String returns the position as line:column
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// SourceLocation spans a region of the template source together with the
// source text it covers.
type SourceLocation struct {
	Start  Position
	End    Position
	Source string
}

// LocStub marks nodes that were synthesized rather than parsed.
var LocStub = SourceLocation{
	Start: Position{Offset: 0, Line: 1, Column: 1},
	End:   Position{Offset: 0, Line: 1, Column: 1},
}

// IsStub reports whether the location is the synthetic stub location.
func (l SourceLocation) IsStub() bool {
	return l == LocStub
}

// String returns a human readable span
func (l SourceLocation) String() string {
	if l.IsStub() {
		return "<generated>"
	}
	return fmt.Sprintf("%s-%s", l.Start, l.End)
}

// NewLocation builds a location from start/end offsets in src, computing
// line and column numbers (both 1-based).
func NewLocation(src string, start, end int) SourceLocation {
	if start < 0 {
		start = 0
	}
	if end > len(src) {
		end = len(src)
	}
	if end < start {
		end = start
	}
	return SourceLocation{
		Start:  positionAt(src, start),
		End:    positionAt(src, end),
		Source: src[start:end],
	}
}

func positionAt(src string, offset int) Position {
	line, col := 1, 1
	for i := 0; i < offset; i++ {
		if src[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return Position{Offset: offset, Line: line, Column: col}
}

package token

import "fmt"

// Position is a 1-based line/column point in a source file.
type Position struct {
	Line   int
	Column int
}

// Location is a half-open span over source text. Every token and AST node
// carries one; it is never mutated after creation.
type Location struct {
	File  string // empty for in-memory sources
	Start Position
	End   Position
}

func (l Location) String() string {
	file := l.File
	if file == "" {
		file = "<string>"
	}
	return fmt.Sprintf("%s:%d:%d", file, l.Start.Line, l.Start.Column)
}

// Package diag defines the error kinds reported by the compiler. Every
// stage fails fast: the first error aborts the pipeline and is surfaced
// unchanged by the driver.
package diag

import (
	"fmt"

	"github.com/tisane-lang/tisane/lib/token"
)

// Error is implemented by all compiler diagnostics.
type Error interface {
	error
	Kind() string
}

// FileError reports an unreadable or otherwise unusable source path.
type FileError struct {
	Path string
	Msg  string
}

func (e *FileError) Error() string { return fmt.Sprintf("%s: %s: %s", e.Path, e.Kind(), e.Msg) }
func (e *FileError) Kind() string  { return "FileError" }

// SyntaxError reports a lexical or grammatical violation.
type SyntaxError struct {
	Location token.Location
	Msg      string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Location, e.Kind(), e.Msg)
}
func (e *SyntaxError) Kind() string { return "SyntaxError" }

// SemanticError reports a scope or declaration violation.
type SemanticError struct {
	Location token.Location
	Msg      string
}

func (e *SemanticError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Location, e.Kind(), e.Msg)
}
func (e *SemanticError) Kind() string { return "SemanticError" }

// CompilationError reports a failure of the external toolchain. It is the
// only diagnostic without a source location.
type CompilationError struct {
	Msg string
}

func (e *CompilationError) Error() string { return fmt.Sprintf("%s: %s", e.Kind(), e.Msg) }
func (e *CompilationError) Kind() string  { return "CompilationError" }

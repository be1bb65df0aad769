package ast

import (
	"fmt"

	"github.com/tisane-lang/tisane/lib/diag"
	"github.com/tisane-lang/tisane/lib/token"
)

// SymbolTable maps names declared directly inside one block to their
// declaration locations. It is owned by that block, populated by the
// parser, and read-only afterwards.
type SymbolTable struct {
	symbols map[string]token.Location
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{symbols: make(map[string]token.Location)}
}

// Define enters name into the table. Entering a name twice is a semantic
// error reported at the second declaration's location.
func (t *SymbolTable) Define(name string, location token.Location) error {
	if _, ok := t.symbols[name]; ok {
		return &diag.SemanticError{
			Location: location,
			Msg:      fmt.Sprintf("%s already defined in this scope", name),
		}
	}

	t.symbols[name] = location
	return nil
}

// Lookup returns the declaration location stored for name, if any.
func (t *SymbolTable) Lookup(name string) (token.Location, bool) {
	location, ok := t.symbols[name]
	return location, ok
}

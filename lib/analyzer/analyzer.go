// Package analyzer validates identifier references against the symbol
// tables built during parsing. It walks the AST once, keeping a stack of
// the symbol tables of the enclosing blocks, and never mutates them.
package analyzer

import (
	"fmt"

	"github.com/tisane-lang/tisane/lib/ast"
	"github.com/tisane-lang/tisane/lib/diag"
)

type analyzer struct {
	symbolTables []*ast.SymbolTable
}

// Analyze checks every identifier reference in program. The first invalid
// reference aborts the walk.
func Analyze(program *ast.Program) error {
	a := &analyzer{}
	return a.block(program.Block)
}

// isDefined reports whether a reference to identifier is visible: some
// enclosing table, innermost first, must hold the name with a declaration
// line strictly earlier than the reference's line. A declaration on the
// same line never satisfies a reference, even one that textually follows.
func (a *analyzer) isDefined(identifier *ast.Identifier) bool {
	for i := len(a.symbolTables) - 1; i >= 0; i-- {
		declaration, ok := a.symbolTables[i].Lookup(identifier.Name)
		if !ok {
			continue
		}
		if identifier.Location.Start.Line > declaration.Start.Line {
			return true
		}
	}

	return false
}

func (a *analyzer) identifier(identifier *ast.Identifier) error {
	if !a.isDefined(identifier) {
		return &diag.SemanticError{
			Location: identifier.Location,
			Msg:      fmt.Sprintf("Identifier '%s' is not defined", identifier.Name),
		}
	}
	return nil
}

func (a *analyzer) block(block *ast.Block) error {
	a.symbolTables = append(a.symbolTables, block.Symbols)

	for _, statement := range block.Statements {
		if err := a.statement(statement); err != nil {
			return err
		}
	}

	a.symbolTables = a.symbolTables[:len(a.symbolTables)-1]
	return nil
}

func (a *analyzer) statement(statement ast.Statement) error {
	switch s := statement.(type) {
	case *ast.Block:
		return a.block(s)
	case *ast.If:
		if err := a.expression(s.Condition); err != nil {
			return err
		}
		if err := a.block(s.Block); err != nil {
			return err
		}
		if s.Else != nil {
			return a.statement(s.Else)
		}
		return nil
	case *ast.While:
		if err := a.expression(s.Condition); err != nil {
			return err
		}
		return a.block(s.Block)
	case *ast.Input:
		return a.identifier(s.Identifier)
	case *ast.Print:
		return a.expression(s.Value)
	case *ast.Declaration:
		// The declared name is not a reference; only the initializer is.
		if s.Expression != nil {
			return a.expression(s.Expression)
		}
		return nil
	case *ast.Assignment:
		if err := a.identifier(s.Identifier); err != nil {
			return err
		}
		return a.expression(s.Expression)
	default:
		panic(fmt.Sprintf("unhandled statement %T", statement))
	}
}

func (a *analyzer) expression(expression ast.Expression) error {
	switch e := expression.(type) {
	case *ast.Identifier:
		return a.identifier(e)
	case *ast.Number, *ast.String:
		return nil
	case *ast.ParentheseExpression:
		return a.expression(e.Value)
	case *ast.UnaryExpression:
		return a.expression(e.Value)
	case *ast.BinaryExpression:
		if err := a.expression(e.Left); err != nil {
			return err
		}
		return a.expression(e.Right)
	case *ast.Comparison:
		if err := a.expression(e.Left); err != nil {
			return err
		}
		return a.expression(e.Right)
	default:
		panic(fmt.Sprintf("unhandled expression %T", expression))
	}
}

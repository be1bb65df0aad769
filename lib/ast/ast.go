// Package ast declares the node variants produced by the parser. The set
// is closed: consumers switch exhaustively over the concrete types.
package ast

import "github.com/tisane-lang/tisane/lib/token"

// Node is implemented by every AST node.
type Node interface {
	Loc() token.Location
}

// Expression nodes produce a value.
type Expression interface {
	Node
	exprNode()
}

// Statement nodes appear inside blocks.
type Statement interface {
	Node
	stmtNode()
}

// Identifier is a variable reference.
type Identifier struct {
	Name     string
	Location token.Location
}

// Number is a numeric literal.
type Number struct {
	Value    float64
	Location token.Location
}

// String is a string literal; it appears only as a print value.
type String struct {
	Value    string
	Location token.Location
}

// ParentheseExpression is a parenthesized subexpression.
type ParentheseExpression struct {
	Value    Expression
	Location token.Location
}

// UnaryExpression is a sign-prefixed primary.
type UnaryExpression struct {
	Operator UnaryOperator
	Value    Expression
	Location token.Location
}

// BinaryExpression is an arithmetic operation.
type BinaryExpression struct {
	Left     Expression
	Right    Expression
	Operator ArithmeticOperator
	Location token.Location
}

// Comparison compares two expressions. Chains are left-associative: the
// result of one comparison is the left operand of the next.
type Comparison struct {
	Left     Expression
	Right    Expression
	Operator ComparisonOperator
	Location token.Location
}

// Block is a brace-delimited statement list. It introduces a lexical
// scope and owns the symbol table for names declared directly inside it.
type Block struct {
	Statements []Statement
	Symbols    *SymbolTable
	Location   token.Location
}

// If is a conditional. Else is nil, another *If (an "else if" chain) or a
// *Block.
type If struct {
	Condition Expression
	Block     *Block
	Else      Statement
	Location  token.Location
}

// While is a loop.
type While struct {
	Condition Expression
	Block     *Block
	Location  token.Location
}

// Input reads a number from the console into a variable.
type Input struct {
	Identifier *Identifier
	Location   token.Location
}

// Print writes an expression's value or a string literal to the console.
type Print struct {
	Value    Expression
	Location token.Location
}

// Declaration introduces a variable, optionally initialized.
type Declaration struct {
	Identifier *Identifier
	Expression Expression // nil when the declaration has no initializer
	Location   token.Location
}

// Assignment stores an expression's value into a variable.
type Assignment struct {
	Identifier *Identifier
	Expression Expression
	Location   token.Location
}

// Program is the root of a parsed source file.
type Program struct {
	Block *Block
}

func (n *Identifier) Loc() token.Location           { return n.Location }
func (n *Number) Loc() token.Location               { return n.Location }
func (n *String) Loc() token.Location               { return n.Location }
func (n *ParentheseExpression) Loc() token.Location { return n.Location }
func (n *UnaryExpression) Loc() token.Location      { return n.Location }
func (n *BinaryExpression) Loc() token.Location     { return n.Location }
func (n *Comparison) Loc() token.Location           { return n.Location }
func (n *Block) Loc() token.Location                { return n.Location }
func (n *If) Loc() token.Location                   { return n.Location }
func (n *While) Loc() token.Location                { return n.Location }
func (n *Input) Loc() token.Location                { return n.Location }
func (n *Print) Loc() token.Location                { return n.Location }
func (n *Declaration) Loc() token.Location          { return n.Location }
func (n *Assignment) Loc() token.Location           { return n.Location }

func (*Identifier) exprNode()           {}
func (*Number) exprNode()               {}
func (*String) exprNode()               {}
func (*ParentheseExpression) exprNode() {}
func (*UnaryExpression) exprNode()      {}
func (*BinaryExpression) exprNode()     {}
func (*Comparison) exprNode()           {}

func (*Block) stmtNode()       {}
func (*If) stmtNode()          {}
func (*While) stmtNode()       {}
func (*Input) stmtNode()       {}
func (*Print) stmtNode()       {}
func (*Declaration) stmtNode() {}
func (*Assignment) stmtNode()  {}

// Package parser builds the AST from the lexer's token stream. It keeps
// two tokens of lookahead and a stack of symbol tables, one per open
// block; declarations are entered into the innermost table the moment
// they are parsed, so a redeclaration fails before analysis starts.
package parser

import (
	"fmt"

	"github.com/tisane-lang/tisane/lib/ast"
	"github.com/tisane-lang/tisane/lib/diag"
	"github.com/tisane-lang/tisane/lib/lexer"
	"github.com/tisane-lang/tisane/lib/token"
)

type Parser struct {
	lexer *lexer.Lexer

	currentToken token.Token
	peekToken    token.Token

	symbolTables []*ast.SymbolTable
}

// Parse consumes the whole token stream of l and returns the program.
// Anything after the top-level block's closing brace is not validated.
func Parse(l *lexer.Lexer) (*ast.Program, error) {
	p := &Parser{lexer: l}
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	return p.program()
}

func (p *Parser) nextToken() error {
	p.currentToken = p.peekToken

	tok, err := p.lexer.NextToken()
	if err != nil {
		return err
	}
	p.peekToken = tok
	return nil
}

func (p *Parser) expectToken(kind token.Kind) error {
	if p.currentToken.Kind != kind {
		return &diag.SyntaxError{
			Location: p.currentToken.Location,
			Msg:      fmt.Sprintf("Expected %s, got %s", kind, p.currentToken.Kind),
		}
	}
	return nil
}

func (p *Parser) matchToken(kind token.Kind) error {
	if err := p.expectToken(kind); err != nil {
		return err
	}
	return p.nextToken()
}

// span joins two locations into one covering both.
func span(start, end token.Location) token.Location {
	return token.Location{File: start.File, Start: start.Start, End: end.End}
}

func (p *Parser) program() (*ast.Program, error) {
	block, err := p.block()
	if err != nil {
		return nil, err
	}
	return &ast.Program{Block: block}, nil
}

func (p *Parser) block() (*ast.Block, error) {
	if err := p.skipNewlines(); err != nil {
		return nil, err
	}
	if err := p.expectToken(token.OpenBrace); err != nil {
		return nil, err
	}
	return p.blockStatement()
}

func (p *Parser) expression() (ast.Expression, error) {
	left, err := p.additive()
	if err != nil {
		return nil, err
	}

	for {
		operator, ok := ast.ComparisonOperatorFromToken(p.currentToken)
		if !ok {
			return left, nil
		}
		if err := p.nextToken(); err != nil {
			return nil, err
		}

		right, err := p.additive()
		if err != nil {
			return nil, err
		}

		left = &ast.Comparison{
			Left:     left,
			Right:    right,
			Operator: operator,
			Location: span(left.Loc(), right.Loc()),
		}
	}
}

func (p *Parser) additive() (ast.Expression, error) {
	left, err := p.multiplicative()
	if err != nil {
		return nil, err
	}

	for {
		operator, ok := ast.AdditiveOperatorFromToken(p.currentToken)
		if !ok {
			return left, nil
		}
		if err := p.nextToken(); err != nil {
			return nil, err
		}

		right, err := p.multiplicative()
		if err != nil {
			return nil, err
		}

		left = &ast.BinaryExpression{
			Left:     left,
			Right:    right,
			Operator: operator,
			Location: span(left.Loc(), right.Loc()),
		}
	}
}

func (p *Parser) multiplicative() (ast.Expression, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}

	for {
		operator, ok := ast.MultiplicativeOperatorFromToken(p.currentToken)
		if !ok {
			return left, nil
		}
		if err := p.nextToken(); err != nil {
			return nil, err
		}

		right, err := p.unary()
		if err != nil {
			return nil, err
		}

		left = &ast.BinaryExpression{
			Left:     left,
			Right:    right,
			Operator: operator,
			Location: span(left.Loc(), right.Loc()),
		}
	}
}

func (p *Parser) unary() (ast.Expression, error) {
	operator, ok := ast.UnaryOperatorFromToken(p.currentToken)
	if !ok {
		return p.parentheses()
	}

	start := p.currentToken.Location
	if err := p.nextToken(); err != nil {
		return nil, err
	}

	value, err := p.parentheses()
	if err != nil {
		return nil, err
	}

	return &ast.UnaryExpression{
		Operator: operator,
		Value:    value,
		Location: span(start, value.Loc()),
	}, nil
}

func (p *Parser) parentheses() (ast.Expression, error) {
	if p.currentToken.Kind != token.OpenParenthese {
		return p.literal()
	}

	start := p.currentToken.Location
	if err := p.nextToken(); err != nil {
		return nil, err
	}

	value, err := p.expression()
	if err != nil {
		return nil, err
	}

	location := span(start, p.currentToken.Location)
	if err := p.matchToken(token.CloseParenthese); err != nil {
		return nil, err
	}

	return &ast.ParentheseExpression{Value: value, Location: location}, nil
}

func (p *Parser) literal() (ast.Expression, error) {
	switch p.currentToken.Kind {
	case token.Number:
		return p.number()
	case token.Identifier:
		return p.identifier()
	default:
		return nil, &diag.SyntaxError{
			Location: p.currentToken.Location,
			Msg:      fmt.Sprintf("Expected literal, got %s", p.currentToken.Kind),
		}
	}
}

func (p *Parser) number() (*ast.Number, error) {
	node := &ast.Number{
		Value:    p.currentToken.Value,
		Location: p.currentToken.Location,
	}
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	return node, nil
}

func (p *Parser) identifier() (*ast.Identifier, error) {
	node := &ast.Identifier{
		Name:     p.currentToken.Text,
		Location: p.currentToken.Location,
	}
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	return node, nil
}

func (p *Parser) blockStatement() (*ast.Block, error) {
	start := p.currentToken.Location
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	if err := p.skipNewlines(); err != nil {
		return nil, err
	}

	symbols := ast.NewSymbolTable()
	p.symbolTables = append(p.symbolTables, symbols)

	var statements []ast.Statement
	for p.currentToken.Kind != token.CloseBrace {
		statement, err := p.statement()
		if err != nil {
			return nil, err
		}
		statements = append(statements, statement)

		if err := p.newline(); err != nil {
			return nil, err
		}
	}

	location := span(start, p.currentToken.Location)
	if err := p.nextToken(); err != nil {
		return nil, err
	}

	p.symbolTables = p.symbolTables[:len(p.symbolTables)-1]

	return &ast.Block{
		Statements: statements,
		Symbols:    symbols,
		Location:   location,
	}, nil
}

func (p *Parser) ifStatement() (*ast.If, error) {
	start := p.currentToken.Location
	if err := p.nextToken(); err != nil {
		return nil, err
	}

	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	block, err := p.block()
	if err != nil {
		return nil, err
	}

	if p.currentToken.Kind != token.Else {
		return &ast.If{
			Condition: condition,
			Block:     block,
			Location:  span(start, block.Location),
		}, nil
	}
	if err := p.nextToken(); err != nil {
		return nil, err
	}

	var elseBranch ast.Statement
	if p.currentToken.Kind == token.If {
		elseBranch, err = p.ifStatement()
	} else {
		elseBranch, err = p.block()
	}
	if err != nil {
		return nil, err
	}

	return &ast.If{
		Condition: condition,
		Block:     block,
		Else:      elseBranch,
		Location:  span(start, elseBranch.Loc()),
	}, nil
}

func (p *Parser) whileStatement() (*ast.While, error) {
	start := p.currentToken.Location
	if err := p.nextToken(); err != nil {
		return nil, err
	}

	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	block, err := p.block()
	if err != nil {
		return nil, err
	}

	return &ast.While{
		Condition: condition,
		Block:     block,
		Location:  span(start, block.Location),
	}, nil
}

func (p *Parser) inputStatement() (*ast.Input, error) {
	start := p.currentToken.Location
	if err := p.nextToken(); err != nil {
		return nil, err
	}

	if err := p.expectToken(token.Identifier); err != nil {
		return nil, err
	}
	identifier, err := p.identifier()
	if err != nil {
		return nil, err
	}

	return &ast.Input{
		Identifier: identifier,
		Location:   span(start, identifier.Location),
	}, nil
}

func (p *Parser) printStatement() (*ast.Print, error) {
	start := p.currentToken.Location
	if err := p.nextToken(); err != nil {
		return nil, err
	}

	var value ast.Expression
	if p.currentToken.Kind == token.String {
		value = &ast.String{
			Value:    p.currentToken.Text,
			Location: p.currentToken.Location,
		}
		if err := p.nextToken(); err != nil {
			return nil, err
		}
	} else {
		expression, err := p.expression()
		if err != nil {
			return nil, err
		}
		value = expression
	}

	return &ast.Print{
		Value:    value,
		Location: span(start, value.Loc()),
	}, nil
}

func (p *Parser) declarationStatement() (*ast.Declaration, error) {
	start := p.currentToken.Location
	if err := p.nextToken(); err != nil {
		return nil, err
	}

	if err := p.expectToken(token.Identifier); err != nil {
		return nil, err
	}
	identifier, err := p.identifier()
	if err != nil {
		return nil, err
	}

	table := p.symbolTables[len(p.symbolTables)-1]
	if err := table.Define(identifier.Name, identifier.Location); err != nil {
		return nil, err
	}

	var expression ast.Expression
	end := identifier.Location
	if p.currentToken.Kind == token.Assignment {
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		expression, err = p.expression()
		if err != nil {
			return nil, err
		}
		end = expression.Loc()
	}

	return &ast.Declaration{
		Identifier: identifier,
		Expression: expression,
		Location:   span(start, end),
	}, nil
}

func (p *Parser) assignmentStatement() (*ast.Assignment, error) {
	identifier, err := p.identifier()
	if err != nil {
		return nil, err
	}
	if err := p.matchToken(token.Assignment); err != nil {
		return nil, err
	}

	expression, err := p.expression()
	if err != nil {
		return nil, err
	}

	return &ast.Assignment{
		Identifier: identifier,
		Expression: expression,
		Location:   span(identifier.Location, expression.Loc()),
	}, nil
}

func (p *Parser) statement() (ast.Statement, error) {
	switch p.currentToken.Kind {
	case token.OpenBrace:
		return p.blockStatement()
	case token.If:
		return p.ifStatement()
	case token.While:
		return p.whileStatement()
	case token.Input:
		return p.inputStatement()
	case token.Print:
		return p.printStatement()
	case token.Declaration:
		return p.declarationStatement()
	case token.Identifier:
		return p.assignmentStatement()
	default:
		return nil, &diag.SyntaxError{
			Location: p.currentToken.Location,
			Msg:      fmt.Sprintf("Expected statement, got %s", p.currentToken.Kind),
		}
	}
}

// newline consumes the mandatory statement separator, then any extras.
func (p *Parser) newline() error {
	if err := p.matchToken(token.Newline); err != nil {
		return err
	}
	return p.skipNewlines()
}

func (p *Parser) skipNewlines() error {
	for p.currentToken.Kind == token.Newline {
		if err := p.nextToken(); err != nil {
			return err
		}
	}
	return nil
}

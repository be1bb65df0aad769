package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/tisane-lang/tisane/lib/ast"
	"github.com/tisane-lang/tisane/lib/diag"
	"github.com/tisane-lang/tisane/lib/lexer"
	"github.com/tisane-lang/tisane/lib/token"
)

func parse(t *testing.T, source string) *ast.Program {
	t.Helper()
	program, err := Parse(lexer.New("", source))
	if err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
	return program
}

// singleStatement parses a program holding one statement and returns it.
func singleStatement(t *testing.T, statement string) ast.Statement {
	t.Helper()
	program := parse(t, "{\n"+statement+"\n}")
	if len(program.Block.Statements) != 1 {
		t.Fatalf("statements = %d, want 1", len(program.Block.Statements))
	}
	return program.Block.Statements[0]
}

func TestOperatorPrecedence(t *testing.T) {
	statement := singleStatement(t, "print 1 + 2 * 3")

	print, ok := statement.(*ast.Print)
	if !ok {
		t.Fatalf("statement is %T, want *ast.Print", statement)
	}

	add, ok := print.Value.(*ast.BinaryExpression)
	if !ok {
		t.Fatalf("value is %T, want *ast.BinaryExpression", print.Value)
	}
	if add.Operator != ast.Add {
		t.Errorf("operator = %q, want %q", add.Operator, ast.Add)
	}

	left, ok := add.Left.(*ast.Number)
	if !ok || left.Value != 1 {
		t.Errorf("left = %#v, want Number 1", add.Left)
	}

	mul, ok := add.Right.(*ast.BinaryExpression)
	if !ok {
		t.Fatalf("right is %T, want *ast.BinaryExpression", add.Right)
	}
	if mul.Operator != ast.Multiply {
		t.Errorf("right operator = %q, want %q", mul.Operator, ast.Multiply)
	}
}

func TestComparisonChainsLeft(t *testing.T) {
	statement := singleStatement(t, "print 1 < 2 == 3")

	print := statement.(*ast.Print)
	outer, ok := print.Value.(*ast.Comparison)
	if !ok {
		t.Fatalf("value is %T, want *ast.Comparison", print.Value)
	}
	if outer.Operator != ast.Equal {
		t.Errorf("outer operator = %q, want %q", outer.Operator, ast.Equal)
	}

	inner, ok := outer.Left.(*ast.Comparison)
	if !ok {
		t.Fatalf("left is %T, want *ast.Comparison", outer.Left)
	}
	if inner.Operator != ast.Less {
		t.Errorf("inner operator = %q, want %q", inner.Operator, ast.Less)
	}
}

func TestUnaryAndParentheses(t *testing.T) {
	statement := singleStatement(t, "print -(1 + 2)")

	print := statement.(*ast.Print)
	unary, ok := print.Value.(*ast.UnaryExpression)
	if !ok {
		t.Fatalf("value is %T, want *ast.UnaryExpression", print.Value)
	}
	if unary.Operator != ast.Negative {
		t.Errorf("operator = %q, want %q", unary.Operator, ast.Negative)
	}

	parens, ok := unary.Value.(*ast.ParentheseExpression)
	if !ok {
		t.Fatalf("inner is %T, want *ast.ParentheseExpression", unary.Value)
	}
	if _, ok := parens.Value.(*ast.BinaryExpression); !ok {
		t.Errorf("grouped value is %T, want *ast.BinaryExpression", parens.Value)
	}
}

func TestDeclarationWithoutInitializer(t *testing.T) {
	statement := singleStatement(t, "let a")

	declaration, ok := statement.(*ast.Declaration)
	if !ok {
		t.Fatalf("statement is %T, want *ast.Declaration", statement)
	}
	if declaration.Identifier.Name != "a" {
		t.Errorf("name = %q, want %q", declaration.Identifier.Name, "a")
	}
	if declaration.Expression != nil {
		t.Errorf("initializer = %#v, want nil", declaration.Expression)
	}
}

func TestElseIfChain(t *testing.T) {
	program := parse(t, "{\nif 1 == 1 {} else if 2 == 2 {} else {}\n}")

	outer, ok := program.Block.Statements[0].(*ast.If)
	if !ok {
		t.Fatalf("statement is %T, want *ast.If", program.Block.Statements[0])
	}

	middle, ok := outer.Else.(*ast.If)
	if !ok {
		t.Fatalf("else branch is %T, want *ast.If", outer.Else)
	}
	if _, ok := middle.Else.(*ast.Block); !ok {
		t.Fatalf("final else branch is %T, want *ast.Block", middle.Else)
	}

	// The chain's span runs from the if keyword to the last closing brace.
	want := token.Location{
		Start: token.Position{Line: 2, Column: 1},
		End:   token.Position{Line: 2, Column: 39},
	}
	if outer.Location != want {
		t.Errorf("location = %v:%v, want %v:%v",
			outer.Location.Start, outer.Location.End, want.Start, want.End)
	}
}

func TestBlockScopedSymbolTables(t *testing.T) {
	program := parse(t, "{\nlet a = 1\n{\nlet a = 2\n}\n}")

	outer := program.Block
	if _, ok := outer.Symbols.Lookup("a"); !ok {
		t.Errorf("outer table: a not found")
	}

	inner, ok := outer.Statements[1].(*ast.Block)
	if !ok {
		t.Fatalf("statement is %T, want *ast.Block", outer.Statements[1])
	}
	if _, ok := inner.Symbols.Lookup("a"); !ok {
		t.Errorf("inner table: a not found")
	}

	outerLoc, _ := outer.Symbols.Lookup("a")
	innerLoc, _ := inner.Symbols.Lookup("a")
	if outerLoc == innerLoc {
		t.Errorf("both tables store the same location %v", outerLoc)
	}
}

func TestRedeclarationFailsDuringParse(t *testing.T) {
	_, err := Parse(lexer.New("", "{\nlet a = 1\nlet a = 2\n}"))
	if err == nil {
		t.Fatalf("expected error, got none")
	}

	var semanticErr *diag.SemanticError
	if !errors.As(err, &semanticErr) {
		t.Fatalf("expected SemanticError, got %T", err)
	}
	if semanticErr.Msg != "a already defined in this scope" {
		t.Errorf("message = %q", semanticErr.Msg)
	}
	if semanticErr.Location.Start.Line != 3 {
		t.Errorf("line = %d, want 3", semanticErr.Location.Start.Line)
	}
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		msg    string
	}{
		{"missing program block", "let a = 1\n", "Expected '{', got 'let'"},
		{"missing separator", "{ let a = 1 }", "Expected NEWLINE, got '}'"},
		{"modulo never parses", "{\nprint 4 % 2\n}", "Expected NEWLINE, got '%'"},
		{"missing close parenthese", "{\nprint (1\n}", "Expected ')', got NEWLINE"},
		{"statement keyword as expression", "{\nprint print\n}", "Expected literal, got 'print'"},
		{"input needs identifier", "{\ninput 1\n}", "Expected IDENTIFIER, got NUMBER"},
		{"assignment needs value", "{\na =\n}", "Expected literal, got NEWLINE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(lexer.New("", tt.source))
			if err == nil {
				t.Fatalf("expected error, got none")
			}

			var syntaxErr *diag.SyntaxError
			if !errors.As(err, &syntaxErr) {
				t.Fatalf("expected SyntaxError, got %T", err)
			}
			if syntaxErr.Msg != tt.msg {
				t.Errorf("message = %q, want %q", syntaxErr.Msg, tt.msg)
			}
		})
	}
}

// Every node's span must cover its children: starts never after ends.
func TestSpansAreOrdered(t *testing.T) {
	source := strings.Join([]string{
		"{",
		"let a = -(1 + 2) * 3",
		"while a > 0 {",
		"a = a - 1",
		"print a == 1",
		"}",
		"if a == 0 {",
		`print "done"`,
		"} else {",
		"input a",
		"}",
		"}",
	}, "\n")

	program := parse(t, source)
	checkSpan(t, program.Block)
}

func checkSpan(t *testing.T, node ast.Node) {
	t.Helper()

	location := node.Loc()
	start, end := location.Start, location.End
	if end.Line < start.Line || (end.Line == start.Line && end.Column < start.Column) {
		t.Errorf("%T: end %v before start %v", node, end, start)
	}

	switch n := node.(type) {
	case *ast.Block:
		for _, statement := range n.Statements {
			checkSpan(t, statement)
		}
	case *ast.If:
		checkSpan(t, n.Condition)
		checkSpan(t, n.Block)
		if n.Else != nil {
			checkSpan(t, n.Else)
		}
	case *ast.While:
		checkSpan(t, n.Condition)
		checkSpan(t, n.Block)
	case *ast.Input:
		checkSpan(t, n.Identifier)
	case *ast.Print:
		checkSpan(t, n.Value)
	case *ast.Declaration:
		checkSpan(t, n.Identifier)
		if n.Expression != nil {
			checkSpan(t, n.Expression)
		}
	case *ast.Assignment:
		checkSpan(t, n.Identifier)
		checkSpan(t, n.Expression)
	case *ast.ParentheseExpression:
		checkSpan(t, n.Value)
	case *ast.UnaryExpression:
		checkSpan(t, n.Value)
	case *ast.BinaryExpression:
		checkSpan(t, n.Left)
		checkSpan(t, n.Right)
	case *ast.Comparison:
		checkSpan(t, n.Left)
		checkSpan(t, n.Right)
	}
}

// Package emitter renders a validated program to C source text. Every
// variable is a double; console I/O maps to printf, puts and scanf.
package emitter

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/tisane-lang/tisane/lib/ast"
)

type emitter struct {
	libraries map[string]struct{}
	code      strings.Builder
}

// Emit returns the C translation of program, wrapped in int main().
func Emit(program *ast.Program) string {
	e := &emitter{libraries: make(map[string]struct{})}
	e.block(program.Block)

	var header strings.Builder
	includes := make([]string, 0, len(e.libraries))
	for library := range e.libraries {
		includes = append(includes, library)
	}
	sort.Strings(includes)
	for _, library := range includes {
		fmt.Fprintf(&header, "#include<%s>\n", library)
	}

	return header.String() + "int main()" + e.code.String() + "\n"
}

func (e *emitter) block(block *ast.Block) {
	e.code.WriteString("{")
	for _, statement := range block.Statements {
		e.statement(statement)
	}
	e.code.WriteString("}")
}

func (e *emitter) statement(statement ast.Statement) {
	switch s := statement.(type) {
	case *ast.Block:
		e.block(s)
	case *ast.If:
		e.code.WriteString("if(")
		e.expression(s.Condition)
		e.code.WriteString(")")
		e.block(s.Block)
		if s.Else != nil {
			e.code.WriteString("else ")
			e.statement(s.Else)
		}
	case *ast.While:
		e.code.WriteString("while(")
		e.expression(s.Condition)
		e.code.WriteString(")")
		e.block(s.Block)
	case *ast.Input:
		e.libraries["stdio.h"] = struct{}{}
		e.code.WriteString(`if(!scanf("%lf",&`)
		e.code.WriteString(s.Identifier.Name)
		e.code.WriteString("))")
		e.code.WriteString(s.Identifier.Name)
		e.code.WriteString("=0;")
	case *ast.Print:
		e.libraries["stdio.h"] = struct{}{}
		if _, isString := s.Value.(*ast.String); isString {
			e.code.WriteString("puts(")
		} else {
			e.code.WriteString(`printf("%lf\n",`)
		}
		e.expression(s.Value)
		e.code.WriteString(");")
	case *ast.Declaration:
		e.code.WriteString("double ")
		e.code.WriteString(s.Identifier.Name)
		e.code.WriteString("=")
		if s.Expression != nil {
			e.expression(s.Expression)
		} else {
			e.code.WriteString("0.0")
		}
		e.code.WriteString(";")
	case *ast.Assignment:
		e.code.WriteString(s.Identifier.Name)
		e.code.WriteString("=")
		e.expression(s.Expression)
		e.code.WriteString(";")
	default:
		panic(fmt.Sprintf("unhandled statement %T", statement))
	}
}

func (e *emitter) expression(expression ast.Expression) {
	switch x := expression.(type) {
	case *ast.Identifier:
		e.code.WriteString(x.Name)
	case *ast.Number:
		e.code.WriteString(strconv.FormatFloat(x.Value, 'g', -1, 64))
	case *ast.String:
		fmt.Fprintf(&e.code, "%q", x.Value)
	case *ast.ParentheseExpression:
		e.code.WriteString("(")
		e.expression(x.Value)
		e.code.WriteString(")")
	case *ast.UnaryExpression:
		e.code.WriteString(string(x.Operator))
		e.expression(x.Value)
	case *ast.BinaryExpression:
		e.expression(x.Left)
		e.code.WriteString(string(x.Operator))
		e.expression(x.Right)
	case *ast.Comparison:
		e.expression(x.Left)
		e.code.WriteString(string(x.Operator))
		e.expression(x.Right)
	default:
		panic(fmt.Sprintf("unhandled expression %T", expression))
	}
}

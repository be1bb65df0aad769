// Package codegen lowers a validated program to LLVM IR. It is the
// alternative backend to the C emitter: every value is a double, console
// I/O goes through the C library's printf, puts and scanf.
package codegen

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/tisane-lang/tisane/lib/ast"
)

type generator struct {
	module *ir.Module
	fn     *ir.Func
	block  *ir.Block

	printf *ir.Func
	scanf  *ir.Func
	puts   *ir.Func

	globals int
	scopes  []map[string]*ir.InstAlloca
}

// Compile lowers program to an LLVM module with a single main function.
// program must have passed analysis: every identifier resolves to a slot.
func Compile(program *ast.Program) *ir.Module {
	g := &generator{module: ir.NewModule()}

	g.fn = g.module.NewFunc("main", types.I32)
	g.block = g.fn.NewBlock("")

	g.blockStatement(program.Block)

	if g.block.Term == nil {
		g.block.NewRet(constant.NewInt(types.I32, 0))
	}
	return g.module
}

func (g *generator) printfFunc() *ir.Func {
	if g.printf == nil {
		g.printf = g.module.NewFunc("printf", types.I32, ir.NewParam("", types.NewPointer(types.I8)))
		g.printf.Sig.Variadic = true
	}
	return g.printf
}

func (g *generator) scanfFunc() *ir.Func {
	if g.scanf == nil {
		g.scanf = g.module.NewFunc("scanf", types.I32, ir.NewParam("", types.NewPointer(types.I8)))
		g.scanf.Sig.Variadic = true
	}
	return g.scanf
}

func (g *generator) putsFunc() *ir.Func {
	if g.puts == nil {
		g.puts = g.module.NewFunc("puts", types.I32, ir.NewParam("", types.NewPointer(types.I8)))
	}
	return g.puts
}

// stringConstant interns s as a NUL-terminated global and returns a
// pointer to its first character.
func (g *generator) stringConstant(s string) value.Value {
	array := constant.NewCharArrayFromString(s + "\x00")
	global := g.module.NewGlobalDef(fmt.Sprintf(".str.%d", g.globals), array)
	g.globals++

	zero := constant.NewInt(types.I32, 0)
	return constant.NewGetElementPtr(array.Typ, global, zero, zero)
}

func (g *generator) lookupSlot(name string) *ir.InstAlloca {
	for i := len(g.scopes) - 1; i >= 0; i-- {
		if slot, ok := g.scopes[i][name]; ok {
			return slot
		}
	}
	panic(fmt.Sprintf("no slot for variable %q", name))
}

func (g *generator) blockStatement(block *ast.Block) {
	g.scopes = append(g.scopes, make(map[string]*ir.InstAlloca))
	for _, statement := range block.Statements {
		g.statement(statement)
	}
	g.scopes = g.scopes[:len(g.scopes)-1]
}

// condition converts a double to an i1 by comparing against zero.
func (g *generator) condition(expression ast.Expression) value.Value {
	v := g.expression(expression)
	return g.block.NewFCmp(enum.FPredONE, v, constant.NewFloat(types.Double, 0))
}

func (g *generator) statement(statement ast.Statement) {
	switch s := statement.(type) {
	case *ast.Block:
		g.blockStatement(s)
	case *ast.If:
		g.ifStatement(s)
	case *ast.While:
		g.whileStatement(s)
	case *ast.Input:
		g.inputStatement(s)
	case *ast.Print:
		if str, ok := s.Value.(*ast.String); ok {
			g.block.NewCall(g.putsFunc(), g.stringConstant(str.Value))
		} else {
			format := g.stringConstant("%lf\n")
			g.block.NewCall(g.printfFunc(), format, g.expression(s.Value))
		}
	case *ast.Declaration:
		slot := g.block.NewAlloca(types.Double)
		var init value.Value = constant.NewFloat(types.Double, 0)
		if s.Expression != nil {
			init = g.expression(s.Expression)
		}
		g.block.NewStore(init, slot)
		g.scopes[len(g.scopes)-1][s.Identifier.Name] = slot
	case *ast.Assignment:
		g.block.NewStore(g.expression(s.Expression), g.lookupSlot(s.Identifier.Name))
	default:
		panic(fmt.Sprintf("unhandled statement %T", statement))
	}
}

func (g *generator) ifStatement(s *ast.If) {
	cond := g.condition(s.Condition)

	thenBlock := g.fn.NewBlock("")
	elseBlock := g.fn.NewBlock("")
	mergeBlock := g.fn.NewBlock("")
	g.block.NewCondBr(cond, thenBlock, elseBlock)

	g.block = thenBlock
	g.blockStatement(s.Block)
	if g.block.Term == nil {
		g.block.NewBr(mergeBlock)
	}

	g.block = elseBlock
	if s.Else != nil {
		g.statement(s.Else)
	}
	if g.block.Term == nil {
		g.block.NewBr(mergeBlock)
	}

	g.block = mergeBlock
}

func (g *generator) whileStatement(s *ast.While) {
	condBlock := g.fn.NewBlock("")
	loopBlock := g.fn.NewBlock("")
	leaveBlock := g.fn.NewBlock("")

	g.block.NewBr(condBlock)

	g.block = condBlock
	g.block.NewCondBr(g.condition(s.Condition), loopBlock, leaveBlock)

	g.block = loopBlock
	g.blockStatement(s.Block)
	if g.block.Term == nil {
		g.block.NewBr(condBlock)
	}

	g.block = leaveBlock
}

// inputStatement calls scanf and stores zero when the read fails,
// matching the C backend's if(!scanf(...))x=0 shape.
func (g *generator) inputStatement(s *ast.Input) {
	slot := g.lookupSlot(s.Identifier.Name)
	format := g.stringConstant("%lf")
	result := g.block.NewCall(g.scanfFunc(), format, slot)

	failed := g.block.NewICmp(enum.IPredEQ, result, constant.NewInt(types.I32, 0))

	zeroBlock := g.fn.NewBlock("")
	contBlock := g.fn.NewBlock("")
	g.block.NewCondBr(failed, zeroBlock, contBlock)

	zeroBlock.NewStore(constant.NewFloat(types.Double, 0), slot)
	zeroBlock.NewBr(contBlock)

	g.block = contBlock
}

func (g *generator) expression(expression ast.Expression) value.Value {
	switch x := expression.(type) {
	case *ast.Identifier:
		return g.block.NewLoad(types.Double, g.lookupSlot(x.Name))
	case *ast.Number:
		return constant.NewFloat(types.Double, x.Value)
	case *ast.ParentheseExpression:
		return g.expression(x.Value)
	case *ast.UnaryExpression:
		v := g.expression(x.Value)
		if x.Operator == ast.Negative {
			return g.block.NewFNeg(v)
		}
		return v
	case *ast.BinaryExpression:
		left := g.expression(x.Left)
		right := g.expression(x.Right)
		switch x.Operator {
		case ast.Add:
			return g.block.NewFAdd(left, right)
		case ast.Subtract:
			return g.block.NewFSub(left, right)
		case ast.Multiply:
			return g.block.NewFMul(left, right)
		case ast.Divide:
			return g.block.NewFDiv(left, right)
		case ast.Modulo:
			return g.block.NewFRem(left, right)
		default:
			panic(fmt.Sprintf("unhandled arithmetic operator %q", x.Operator))
		}
	case *ast.Comparison:
		left := g.expression(x.Left)
		right := g.expression(x.Right)
		var pred enum.FPred
		switch x.Operator {
		case ast.Equal:
			pred = enum.FPredOEQ
		case ast.NotEqual:
			pred = enum.FPredONE
		case ast.Less:
			pred = enum.FPredOLT
		case ast.LessEqual:
			pred = enum.FPredOLE
		case ast.Greater:
			pred = enum.FPredOGT
		case ast.GreaterEqual:
			pred = enum.FPredOGE
		}
		cmp := g.block.NewFCmp(pred, left, right)
		return g.block.NewUIToFP(cmp, types.Double)
	default:
		panic(fmt.Sprintf("unhandled expression %T", expression))
	}
}

package codegen

import (
	"strings"
	"testing"

	"github.com/tisane-lang/tisane/lib/lexer"
	"github.com/tisane-lang/tisane/lib/parser"
)

func compile(t *testing.T, lines ...string) string {
	t.Helper()
	program, err := parser.Parse(lexer.New("", strings.Join(lines, "\n")))
	if err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
	return Compile(program).String()
}

func contains(t *testing.T, module string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(module, want) {
			t.Errorf("module does not contain %q:\n%s", want, module)
		}
	}
}

func TestCompileEmptyProgram(t *testing.T) {
	module := compile(t, "{", "}")
	contains(t, module,
		"define i32 @main()",
		"ret i32 0",
	)
}

func TestCompileArithmetic(t *testing.T) {
	module := compile(t, "{", "let a = 1.5", "let b = -a * 2 + 4 / a", "}")
	contains(t, module,
		"alloca double",
		"store double 1.5",
		"load double",
		"fneg double",
		"fmul double",
		"fdiv double",
		"fadd double",
	)
}

func TestCompileComparison(t *testing.T) {
	// A comparison result is a double again, so it can feed arithmetic.
	module := compile(t, "{", "let a = 1", "let b = (a < 2) + 1", "}")
	contains(t, module,
		"fcmp olt double",
		"uitofp i1",
		"fadd double",
	)
}

func TestCompilePrint(t *testing.T) {
	module := compile(t, "{", `print "hello"`, "print 1", "}")
	contains(t, module,
		"declare i32 @puts(i8*",
		"declare i32 @printf(i8*",
		`c"hello\00"`,
		`c"%lf\0A\00"`,
		"call i32 @puts",
		// Calls through a variadic signature carry the full type.
		"call i32 (i8*, ...) @printf",
	)
}

func TestCompileInput(t *testing.T) {
	module := compile(t, "{", "let a", "input a", "}")
	contains(t, module,
		"declare i32 @scanf(i8*",
		`c"%lf\00"`,
		"call i32 (i8*, ...) @scanf",
		"icmp eq i32",
		// A failed read stores zero before control continues.
		"store double 0",
	)
}

func TestCompileShadowedSlots(t *testing.T) {
	module := compile(t, "{", "let a = 1", "{", "let a = 2", "}", "a = 3", "}")

	if got := strings.Count(module, "alloca double"); got != 2 {
		t.Fatalf("alloca count = %d, want 2:\n%s", got, module)
	}

	// The assignment after the inner block targets the outer slot again.
	last := module[strings.LastIndex(module, "store double"):]
	if !strings.Contains(last, "%1") {
		t.Errorf("final store does not target the first slot:\n%s", module)
	}
}

func TestCompileIf(t *testing.T) {
	module := compile(t, "{", "let a = 1", "if a == 1 {", `print "yes"`, "} else {", `print "no"`, "}", "}")
	contains(t, module,
		"fcmp oeq double",
		"fcmp one double",
		"br i1",
	)
}

func TestCompileWhile(t *testing.T) {
	module := compile(t, "{", "let i = 0", "while i < 3 {", "i = i + 1", "}", "}")
	contains(t, module,
		"fcmp olt double",
		"br i1",
		"fadd double",
	)

	// The loop branches back to its condition block.
	if strings.Count(module, "br label") < 2 {
		t.Errorf("expected at least two unconditional branches:\n%s", module)
	}
}

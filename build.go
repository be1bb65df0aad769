package main

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/tisane-lang/tisane/lib/analyzer"
	"github.com/tisane-lang/tisane/lib/ast"
	"github.com/tisane-lang/tisane/lib/codegen"
	"github.com/tisane-lang/tisane/lib/diag"
	"github.com/tisane-lang/tisane/lib/emitter"
	"github.com/tisane-lang/tisane/lib/lexer"
	"github.com/tisane-lang/tisane/lib/parser"
)

func init() {
	commands = append(commands, &cli.Command{
		Name:      "build",
		Usage:     "Build a Tisane file",
		Category:  "compile",
		ArgsUsage: "<file.tsn>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "The name for the built binary",
			},
			&cli.BoolFlag{
				Name:    "emit-c",
				Aliases: []string{"c"},
				Usage:   "Write the generated C code instead of building",
			},
			&cli.BoolFlag{
				Name:  "emit-llvm",
				Usage: "Write textual LLVM IR instead of building",
			},
			&cli.BoolFlag{
				Name:    "optimize",
				Aliases: []string{"O"},
				Usage:   "Build with clang optimizations",
			},
		},
		Action: build,
	}, &cli.Command{
		Name:      "run",
		Usage:     "Build and run a Tisane file",
		Category:  "compile",
		ArgsUsage: "<file.tsn> [args...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "optimize",
				Aliases: []string{"O"},
				Usage:   "Build with clang optimizations",
			},
		},
		Action: run,
	})
}

// compileFile runs the front end: read, lex, parse, analyze.
func compileFile(path string) (*ast.Program, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, &diag.FileError{Path: path, Msg: err.Error()}
	}

	program, err := parser.Parse(lexer.New(path, string(source)))
	if err != nil {
		return nil, err
	}

	if err := analyzer.Analyze(program); err != nil {
		return nil, err
	}
	return program, nil
}

func findClang() (string, error) {
	clang, err := exec.LookPath("clang")
	if err != nil {
		return "", &diag.CompilationError{Msg: "clang not found in PATH"}
	}
	return clang, nil
}

// clangCompile pipes C code to clang and links an executable at output.
func clangCompile(code, output string, optimize bool) error {
	clang, err := findClang()
	if err != nil {
		return err
	}

	args := []string{"-xc", "-", "-o", output}
	if optimize {
		args = append(args, "-Ofast")
	}

	var stderr bytes.Buffer
	cmd := exec.Command(clang, args...)
	cmd.Stdin = strings.NewReader(code)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return &diag.CompilationError{Msg: stderr.String()}
	}
	return nil
}

func build(c *cli.Context) error {
	input := c.Args().First()
	if input == "" {
		return cli.Exit(color.RedString("Error: no input file"), 1)
	}

	program, err := compileFile(input)
	if err != nil {
		return cli.Exit(color.RedString(err.Error()), 1)
	}

	base := strings.TrimSuffix(filepath.Base(input), ".tsn")

	switch {
	case c.Bool("emit-llvm"):
		output := c.String("output")
		if output == "" {
			output = base + ".ll"
		}
		module := codegen.Compile(program)
		if err := os.WriteFile(output, []byte(module.String()), 0644); err != nil {
			return cli.Exit(color.RedString(err.Error()), 1)
		}
	case c.Bool("emit-c"):
		output := c.String("output")
		if output == "" {
			output = base + ".c"
		}
		if err := os.WriteFile(output, []byte(emitter.Emit(program)), 0644); err != nil {
			return cli.Exit(color.RedString(err.Error()), 1)
		}
	default:
		output := c.String("output")
		if output == "" {
			output = base
		}
		if err := clangCompile(emitter.Emit(program), output, c.Bool("optimize")); err != nil {
			return cli.Exit(color.RedString(err.Error()), 1)
		}
	}

	return nil
}

func run(c *cli.Context) error {
	input := c.Args().First()
	if input == "" {
		return cli.Exit(color.RedString("Error: no input file"), 1)
	}

	program, err := compileFile(input)
	if err != nil {
		return cli.Exit(color.RedString(err.Error()), 1)
	}

	tmpDir, err := os.MkdirTemp("", "tisane")
	if err != nil {
		return cli.Exit(color.RedString(err.Error()), 1)
	}
	defer os.RemoveAll(tmpDir)

	output := filepath.Join(tmpDir, "output")
	if err := clangCompile(emitter.Emit(program), output, c.Bool("optimize")); err != nil {
		return cli.Exit(color.RedString(err.Error()), 1)
	}

	cmd := exec.Command(output, c.Args().Tail()...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return cli.Exit("", exitErr.ExitCode())
		}
		return cli.Exit(color.RedString("Error running binary: %s", err), 1)
	}
	return nil
}

package asm_test

import (
	"strings"
	"testing"

	"its-hmny.dev/nand2tetris/pkg/asm"
)

func parse(t *testing.T, source string) asm.Program {
	t.Helper()
	parser := asm.NewParser(strings.NewReader(source))
	program, err := parser.Parse()
	if err != nil {
		t.Fatalf("unexpected parse error for %q: %s", source, err)
	}
	return program
}

func TestParseAInstruction(t *testing.T) {
	program := parse(t, "@256\n@LOOP\n@R3\n")
	if len(program) != 3 {
		t.Fatalf("expected 3 instructions, got %d", len(program))
	}

	want := []string{"256", "LOOP", "R3"}
	for i, w := range want {
		a, ok := program[i].(asm.AInstruction)
		if !ok {
			t.Fatalf("instruction %d: expected AInstruction, got %T", i, program[i])
		}
		if a.Location != w {
			t.Fatalf("instruction %d: expected location %q, got %q", i, w, a.Location)
		}
	}
}

func TestParseCInstructionDestOnly(t *testing.T) {
	program := parse(t, "D=A\n")
	c, ok := program[0].(asm.CInstruction)
	if !ok {
		t.Fatalf("expected CInstruction, got %T", program[0])
	}
	if c.Dest != "D" || c.Comp != "A" || c.Jump != "" {
		t.Fatalf("unexpected parse result: %+v", c)
	}
}

func TestParseCInstructionJumpOnly(t *testing.T) {
	program := parse(t, "0;JMP\n")
	c, ok := program[0].(asm.CInstruction)
	if !ok {
		t.Fatalf("expected CInstruction, got %T", program[0])
	}
	if c.Dest != "" || c.Comp != "0" || c.Jump != "JMP" {
		t.Fatalf("unexpected parse result: %+v", c)
	}
}

// A dest clause and a jump clause are independently optional in the grammar
// (spec: '[dest "="] comp [";" jump]') and therefore combinable on the same
// line; the parser must not silently drop either one when both are present.
func TestParseCInstructionDestAndJumpCombined(t *testing.T) {
	program := parse(t, "MD=D+1;JGT\n")
	c, ok := program[0].(asm.CInstruction)
	if !ok {
		t.Fatalf("expected CInstruction, got %T", program[0])
	}
	if c.Dest != "MD" || c.Comp != "D+1" || c.Jump != "JGT" {
		t.Fatalf("expected dest 'MD', comp 'D+1' and jump 'JGT' all preserved, got %+v", c)
	}
}

func TestParseLabelDecl(t *testing.T) {
	program := parse(t, "(LOOP)\n@LOOP\n0;JMP\n")
	label, ok := program[0].(asm.LabelDecl)
	if !ok {
		t.Fatalf("expected LabelDecl, got %T", program[0])
	}
	if label.Name != "LOOP" {
		t.Fatalf("expected label 'LOOP', got %q", label.Name)
	}
}

func TestParseSkipsComments(t *testing.T) {
	program := parse(t, "// a leading comment\n@1\n// trailing\n")
	if len(program) != 1 {
		t.Fatalf("expected comments to be dropped, got %d instructions", len(program))
	}
}

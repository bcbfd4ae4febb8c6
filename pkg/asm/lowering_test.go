package asm_test

import (
	"strings"
	"testing"

	"its-hmny.dev/nand2tetris/pkg/asm"
	"its-hmny.dev/nand2tetris/pkg/hack"
)

func lower(t *testing.T, source string) (hack.Program, hack.SymbolTable, error) {
	t.Helper()
	parser := asm.NewParser(strings.NewReader(source))
	program, err := parser.Parse()
	if err != nil {
		t.Fatalf("unexpected parse error for %q: %s", source, err)
	}

	lowerer := asm.NewLowerer(program)
	return lowerer.Lower()
}

func TestLowerCombinesDestAndJump(t *testing.T) {
	instructions, _, err := lower(t, "MD=D+1;JGT\n")
	if err != nil {
		t.Fatalf("unexpected lowering error: %s", err)
	}

	c, ok := instructions[0].(hack.CInstruction)
	if !ok {
		t.Fatalf("expected hack.CInstruction, got %T", instructions[0])
	}
	if c.Dest != "MD" || c.Comp != "D+1" || c.Jump != "JGT" {
		t.Fatalf("expected dest/comp/jump all preserved, got %+v", c)
	}
}

func TestLowerBindsLabelToNextInstructionAddress(t *testing.T) {
	_, labels, err := lower(t, "@1\n(LOOP)\n@2\nD=A\n")
	if err != nil {
		t.Fatalf("unexpected lowering error: %s", err)
	}
	if addr, ok := labels["LOOP"]; !ok || addr != 1 {
		t.Fatalf("expected 'LOOP' bound to address 1, got %d (found=%v)", addr, ok)
	}
}

func TestLowerRejectsDuplicateLabel(t *testing.T) {
	_, _, err := lower(t, "(LOOP)\n@1\n(LOOP)\n@2\n")
	if err == nil {
		t.Fatalf("expected an error when the same label is declared twice")
	}
}

func TestLowerRejectsEmptyProgram(t *testing.T) {
	lowerer := asm.NewLowerer(asm.Program{})
	if _, _, err := lowerer.Lower(); err == nil {
		t.Fatalf("expected an error lowering an empty program")
	}
}

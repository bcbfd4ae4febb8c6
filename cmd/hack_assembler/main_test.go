package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHackAssemblerLiteralProgram(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "Add.asm")
	output := filepath.Join(dir, "Add.hack")

	source := "@2\nD=A\n@3\nD=D+A\n@0\nM=D\n"
	if err := os.WriteFile(input, []byte(source), 0644); err != nil {
		t.Fatalf("unable to write fixture: %s", err)
	}

	if status := Handler([]string{input}, nil); status != 0 {
		t.Fatalf("unexpected exit status code: expected 0 got: %d", status)
	}

	compiled, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("unable to read compiled output: %s", err)
	}

	expected := strings.Join([]string{
		"0000000000000010",
		"1110110000010000",
		"0000000000000011",
		"1110000010010000",
		"0000000000000000",
		"1110001100001000",
	}, "\n") + "\n"

	if string(compiled) != expected {
		t.Fatalf("compiled output does not match, got:\n%s\nwant:\n%s", compiled, expected)
	}
}

func TestHackAssemblerSymbolicProgram(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "Loop.asm")
	output := filepath.Join(dir, "Loop.hack")

	source := "@LOOP\n(LOOP)\n@i\nM=0\n"
	if err := os.WriteFile(input, []byte(source), 0644); err != nil {
		t.Fatalf("unable to write fixture: %s", err)
	}

	if status := Handler([]string{input}, nil); status != 0 {
		t.Fatalf("unexpected exit status code: expected 0 got: %d", status)
	}

	compiled, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("unable to read compiled output: %s", err)
	}
	lines := strings.Split(strings.TrimSpace(string(compiled)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 emitted instructions (the label binds no output), got %d", len(lines))
	}

	// '(LOOP)' binds to the address of the NEXT instruction, i.e. 1, since it
	// sits right after the first '@LOOP'.
	if lines[0] != "0000000000000001" {
		t.Fatalf("expected '@LOOP' to resolve to address 1, got %q", lines[0])
	}
	// 'i' is the first user variable encountered in pass two, so it lands at 16.
	if lines[1] != "0000000000010000" {
		t.Fatalf("expected '@i' to resolve to address 16, got %q", lines[1])
	}
}

func TestHackAssemblerMissingInput(t *testing.T) {
	dir := t.TempDir()
	if status := Handler([]string{filepath.Join(dir, "missing.asm")}, nil); status == 0 {
		t.Fatalf("expected non-zero exit status for a missing input file")
	}
}

func TestHackAssemblerDerivesOutputFromInputStem(t *testing.T) {
	if got, want := outputPath("Add.asm"), "Add.hack"; got != want {
		t.Fatalf("expected output path %q, got %q", want, got)
	}
	if got, want := outputPath(filepath.Join("dir", "Loop.asm")), filepath.Join("dir", "Loop.hack"); got != want {
		t.Fatalf("expected output path %q, got %q", want, got)
	}
}

func TestHackAssemblerMissingArgs(t *testing.T) {
	if status := Handler([]string{}, nil); status == 0 {
		t.Fatalf("expected non-zero exit status with no input argument")
	}
}

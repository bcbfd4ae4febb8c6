package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestVMTranslatorSingleFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "SimpleAdd.vm")
	output := filepath.Join(dir, "SimpleAdd.asm")

	source := "push constant 7\npush constant 8\nadd\n"
	if err := os.WriteFile(input, []byte(source), 0644); err != nil {
		t.Fatalf("unable to write fixture: %s", err)
	}

	status := Handler([]string{input}, map[string]string{"output": output})
	if status != 0 {
		t.Fatalf("unexpected exit status code: expected 0 got: %d", status)
	}

	compiled, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("unable to read compiled output: %s", err)
	}

	// The bootstrap is emitted unconditionally, single file or not, so the very
	// first line must be the "@256" Stack Pointer initialization.
	lines := strings.Split(strings.TrimSpace(string(compiled)), "\n")
	if len(lines) == 0 || lines[0] != "@256" {
		t.Fatalf("expected bootstrap sequence to start with '@256', got %q", lines[0])
	}
}

func TestVMTranslatorDirectory(t *testing.T) {
	dir := t.TempDir()

	sysInit := "function Sys.init 0\npush constant 1\npush constant 2\nadd\nreturn\n"
	if err := os.WriteFile(filepath.Join(dir, "Sys.vm"), []byte(sysInit), 0644); err != nil {
		t.Fatalf("unable to write fixture: %s", err)
	}
	mainVM := "function Main.main 0\nreturn\n"
	if err := os.WriteFile(filepath.Join(dir, "Main.vm"), []byte(mainVM), 0644); err != nil {
		t.Fatalf("unable to write fixture: %s", err)
	}

	output := filepath.Join(dir, "out.asm")
	status := Handler([]string{dir}, map[string]string{"output": output})
	if status != 0 {
		t.Fatalf("unexpected exit status code: expected 0 got: %d", status)
	}

	compiled, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("unable to read compiled output: %s", err)
	}

	// Multi-module directory translations also begin with the bootstrap sequence.
	lines := strings.Split(strings.TrimSpace(string(compiled)), "\n")
	if len(lines) < 2 || lines[0] != "@256" {
		t.Fatalf("expected bootstrap sequence to start with '@256', got %q", lines[0])
	}
}

func TestVMTranslatorExplicitBootstrapOptOut(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "Lib.vm")
	output := filepath.Join(dir, "Lib.asm")

	if err := os.WriteFile(input, []byte("function Lib.helper 0\nreturn\n"), 0644); err != nil {
		t.Fatalf("unable to write fixture: %s", err)
	}

	status := Handler([]string{input}, map[string]string{"output": output, "bootstrap": "false"})
	if status != 0 {
		t.Fatalf("unexpected exit status code: expected 0 got: %d", status)
	}

	compiled, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("unable to read compiled output: %s", err)
	}

	if strings.HasPrefix(strings.TrimSpace(string(compiled)), "@256") {
		t.Fatalf("expected '--bootstrap=false' to suppress the bootstrap sequence")
	}
}

func TestVMTranslatorMissingArgs(t *testing.T) {
	if status := Handler([]string{}, map[string]string{"output": "out.asm"}); status == 0 {
		t.Fatalf("expected non-zero exit status with no inputs")
	}
	if status := Handler([]string{"Foo.vm"}, map[string]string{}); status == 0 {
		t.Fatalf("expected non-zero exit status with no output option")
	}
}

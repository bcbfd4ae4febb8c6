package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestJackCompilerSingleClass(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "Main.jack")
	output := filepath.Join(dir, "Main.vm")

	source := `
class Main {
    function void main() {
        do Main.run();
        return;
    }

    function void run() {
        return;
    }
}
`
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

	text := string(compiled)
	for _, want := range []string{
		"function Main.main 0",
		"call Main.run 0",
		"function Main.run 0",
		"return",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("expected emitted VM code to contain %q, got:\n%s", want, text)
		}
	}
}

func TestJackCompilerMethodDispatch(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "Counter.jack")
	output := filepath.Join(dir, "Counter.vm")

	source := `
class Counter {
    field int value;

    constructor Counter new() {
        let value = 0;
        return this;
    }

    method int get() {
        return value;
    }

    method void bump() {
        do get();
        return;
    }
}
`
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

	text := string(compiled)
	// Constructors allocate the object and bind 'this' before running their body.
	for _, want := range []string{
		"function Counter.new 0",
		"call Memory.alloc 1",
		"pop pointer 0",
		// An implicit-receiver call ('get()' inside a method) pushes 'this' first.
		"function Counter.bump 0",
		"push pointer 0",
		"call Counter.get 1",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("expected emitted VM code to contain %q, got:\n%s", want, text)
		}
	}
}

func TestJackCompilerMissingArgs(t *testing.T) {
	if status := Handler([]string{}, nil); status == 0 {
		t.Fatalf("expected non-zero exit status with no inputs")
	}
}

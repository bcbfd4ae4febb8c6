package asm

import (
	"errors"
	"fmt"
	"strconv"

	"its-hmny.dev/nand2tetris/pkg/hack"
)

// ----------------------------------------------------------------------------
// Code Generator

// Walks a parsed/lowered Asm program and re-renders each 'asm.Statement' back
// to its canonical textual form. No extra state is needed beyond the program
// itself: every statement renders independently of its neighbours.
type CodeGenerator struct {
	instructions []Statement // statements to render, in program order
}

// NewCodeGenerator wraps 'instructions' (the already-lowered Asm program) so
// it can be rendered with Generate.
func NewCodeGenerator(instructions []Statement) CodeGenerator {
	return CodeGenerator{instructions: instructions}
}

// Generate renders every statement to its textual form, in order. The first
// rendering failure aborts the whole pass: partial output is never returned.
func (cg *CodeGenerator) Generate() ([]string, error) {
	lines := make([]string, 0, len(cg.instructions))

	for _, stmt := range cg.instructions {
		var line string
		var err error

		switch t := stmt.(type) {
		case AInstruction:
			line, err = cg.GenerateAInst(t)
		case CInstruction:
			line, err = cg.GenerateCInst(t)
		case LabelDecl:
			line, err = cg.GenerateLabelDecl(t)
		}

		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	return lines, nil
}

// GenerateAInst renders an A Instruction as '@value'. A raw (numeric) address
// must be below 2^15, the size of the Hack addressable memory.
func (CodeGenerator) GenerateAInst(stmt AInstruction) (string, error) {
	if stmt.Location == "" {
		return "", errors.New("unable to produce empty A Instruction target")
	}
	if address, err := strconv.ParseUint(stmt.Location, 10, 64); err == nil && address >= uint64(hack.MaxAddressableMemory) {
		return "", fmt.Errorf("raw address '%s' is out of the addressable memory", stmt.Location)
	}

	return fmt.Sprintf("@%s", stmt.Location), nil
}

// GenerateCInst renders a C Instruction as 'dest=comp', 'comp;jump', or
// 'dest=comp;jump' when both clauses are present. At least one of Dest/Jump
// must be set; Comp alone is not representable.
func (cg *CodeGenerator) GenerateCInst(stmt CInstruction) (string, error) {
	if stmt.Comp == "" {
		return "", errors.New("expected 'comp' directive in C Instruction")
	}
	if stmt.Dest == "" && stmt.Jump == "" {
		return "", errors.New("expected at least one of 'dest' or 'jump' directive in C Instruction")
	}

	line := stmt.Comp
	if stmt.Dest != "" {
		line = fmt.Sprintf("%s=%s", stmt.Dest, line)
	}
	if stmt.Jump != "" {
		line = fmt.Sprintf("%s;%s", line, stmt.Jump)
	}

	return line, nil
}

// GenerateLabelDecl renders a label pseudo-instruction as '(name)'. Built-in
// symbols (SP, LCL, SCREEN, ...) may not be redeclared as labels, and the name
// may not be empty.
func (cg *CodeGenerator) GenerateLabelDecl(stmt LabelDecl) (string, error) {
	if stmt.Name == "" {
		return "", errors.New("unable to produce empty label declaration")
	}
	if _, found := hack.BuiltInTable[stmt.Name]; found {
		return "", fmt.Errorf("unable to override built-in label '%s'", stmt.Name)
	}

	return fmt.Sprintf("(%s)", stmt.Name), nil
}

package asm

import (
	"fmt"
	"strconv"

	"its-hmny.dev/nand2tetris/pkg/hack"
)

// ----------------------------------------------------------------------------
// Asm Lowerer

// Lowerer rewrites a parsed 'asm.Program' into the 'hack.Program' IR the Hack
// code generator consumes, classifying each A Instruction's target and
// splitting every C Instruction into the dest/comp/jump parts the binary
// encoder keys its lookup tables on. Labels are not carried into the IR as
// instructions: they fold into the returned symbol table, bound to the
// index of the next real instruction.
type Lowerer struct{ program Program }

// NewLowerer wraps the parsed program 'p' so it can be lowered with Lower.
func NewLowerer(p Program) Lowerer {
	return Lowerer{program: p}
}

// Lower walks the program once, instruction by instruction, producing the
// lowered instruction slice alongside the label→address table pass one of
// the Hack assembler needs. An empty program is rejected outright.
func (l *Lowerer) Lower() (hack.Program, hack.SymbolTable, error) {
	out, labels := []hack.Instruction{}, map[string]uint16{}

	if len(l.program) == 0 {
		return nil, nil, fmt.Errorf("the given program has no instructions to lower")
	}

	for _, node := range l.program {
		switch n := node.(type) {
		case AInstruction:
			lowered, err := l.HandleAInst(n)
			if lowered == nil || err != nil {
				return nil, nil, err
			}
			out = append(out, lowered)

		case CInstruction:
			lowered, err := l.HandleCInst(n)
			if lowered == nil || err != nil {
				return nil, nil, err
			}
			out = append(out, lowered)

		case LabelDecl:
			name, err := l.HandleLabelDecl(n)
			if name == "" || err != nil {
				return nil, nil, err
			}
			if _, bound := labels[name]; bound {
				return nil, nil, fmt.Errorf("label '%s' is declared more than once", name)
			}
			labels[name] = uint16(len(out))

		default:
			return nil, nil, fmt.Errorf("unrecognized instruction '%T'", node)
		}
	}

	return out, labels, nil
}

// HandleAInst classifies an A Instruction's target: a built-in symbol
// (SP, SCREEN, ...), a raw decimal literal, or a user symbol resolved later
// by the assembler's two-pass symbol table.
func (Lowerer) HandleAInst(inst AInstruction) (hack.Instruction, error) {
	if _, found := hack.BuiltInTable[inst.Location]; found {
		return hack.AInstruction{LocType: hack.BuiltIn, LocName: inst.Location}, nil
	}
	if _, err := strconv.ParseInt(inst.Location, 10, 16); err == nil {
		return hack.AInstruction{LocType: hack.Raw, LocName: inst.Location}, nil
	}
	return hack.AInstruction{LocType: hack.Label, LocName: inst.Location}, nil
}

// HandleCInst splits a C Instruction into its dest/comp/jump parts. 'Comp' is
// mandatory; 'Dest' and 'Jump' are each independently optional and carried
// through together when both are present (e.g. "MD=D+1;JGT").
func (Lowerer) HandleCInst(inst CInstruction) (hack.Instruction, error) {
	if inst.Comp == "" {
		return nil, fmt.Errorf("'comp' sub-instruction is mandatory on every C Instruction")
	}
	if inst.Dest == "" && inst.Jump == "" {
		return nil, fmt.Errorf("expected at least one of 'dest' or 'jump' on a C Instruction")
	}

	return hack.CInstruction{Dest: inst.Dest, Comp: inst.Comp, Jump: inst.Jump}, nil
}

// HandleLabelDecl extracts the bound identifier out of a label declaration node.
func (Lowerer) HandleLabelDecl(inst LabelDecl) (string, error) {
	return inst.Name, nil
}

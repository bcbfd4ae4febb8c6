package vm

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"its-hmny.dev/nand2tetris/pkg/asm"
)

// segmentBases maps the indirect (pointer-through-a-base-register) segments to the
// register that holds their base address. Temp and Pointer are direct segments (their
// base is a constant RAM address, not a register) and are therefore handled separately.
var segmentBases = map[SegmentType]string{
	Local:    "LCL",
	Argument: "ARG",
	This:     "THIS",
	That:     "THAT",
}

// comparisonJumps maps a comparison ArithOpType to the C Instruction jump mnemonic used
// to detect whether the comparison held (x - y against the relevant condition).
var comparisonJumps = map[ArithOpType]string{Eq: "JEQ", Gt: "JGT", Lt: "JLT"}

// binaryComps maps a binary (non-comparison) ArithOpType to the comp bit-codes that
// compute it, assuming 'D' holds the second (top) operand and 'M' the first.
var binaryComps = map[ArithOpType]string{Add: "D+M", Sub: "M-D", And: "D&M", Or: "D|M"}

// unaryComps maps a unary ArithOpType to the comp bit-codes that compute it in place,
// assuming 'A' already points at the stack's top.
var unaryComps = map[ArithOpType]string{Neg: "-M", Not: "!M"}

// ----------------------------------------------------------------------------
// Vm Lowerer

// The Lowerer takes a 'vm.Program' (every translation unit/module already parsed) and
// flattens it into a single 'asm.Program', implementing the stack machine semantics and
// the calling convention described by the nand2tetris specification (see 'pkg/vm' docs).
//
// Unlike the Asm Lowerer, this one carries per-translation state across operations: the
// current module (needed to qualify 'static' segment accesses) and the current function
// (needed to scope labels and to generate unique return-address labels per call site).
type Lowerer struct {
	program Program

	currentFile     string
	currentFunction string
	callSites       map[string]int
	comparisons     int
}

// Initializes and returns to the caller a brand new 'Lowerer' struct.
// Requires the argument Program to be not nil nor empty.
func NewLowerer(p Program) Lowerer {
	return Lowerer{program: p, callSites: map[string]int{}}
}

// Triggers the lowering process. Modules are visited in sorted (file name) order purely
// for determinism across runs; correctness never depends on it since every function's
// entry point is reachable by name and 'Sys.init' is always invoked explicitly.
func (l *Lowerer) Lowerer() (asm.Program, error) {
	if l.program == nil || len(l.program) == 0 {
		return nil, fmt.Errorf("the given 'program' is empty")
	}

	names := make([]string, 0, len(l.program))
	for name := range l.program {
		names = append(names, name)
	}
	sort.Strings(names)

	program := asm.Program{}
	for _, name := range names {
		l.currentFile = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
		l.currentFunction = ""

		for _, op := range l.program[name] {
			lowered, err := l.HandleOperation(op)
			if err != nil {
				return nil, fmt.Errorf("error lowering module '%s': %w", name, err)
			}
			program = append(program, lowered...)
		}
	}

	return program, nil
}

// Bootstrap returns the standard nand2tetris prologue: it resets the Stack Pointer to
// its base RAM address (256) and calls 'Sys.init' with no arguments. It's built on top
// of the very same call-lowering logic used for every other 'call' VM operation, rather
// than hand-rolling the sequence, so the two never drift apart.
func (l *Lowerer) Bootstrap() (asm.Program, error) {
	saved := l.currentFunction
	l.currentFunction = "Bootstrap"
	defer func() { l.currentFunction = saved }()

	call, err := l.HandleFuncCallOp(FuncCallOp{Name: "Sys.init", NArgs: 0})
	if err != nil {
		return nil, fmt.Errorf("error lowering bootstrap 'call Sys.init 0': %w", err)
	}

	prologue := asm.Program{
		asm.AInstruction{Location: "256"},
		asm.CInstruction{Dest: "D", Comp: "A"},
		asm.AInstruction{Location: "SP"},
		asm.CInstruction{Dest: "M", Comp: "D"},
	}
	return append(prologue, call...), nil
}

// Dispatches a single 'vm.Operation' to its specialized handler based on its concrete type.
func (l *Lowerer) HandleOperation(op Operation) (asm.Program, error) {
	switch tOp := op.(type) {
	case MemoryOp:
		return l.HandleMemoryOp(tOp)
	case ArithmeticOp:
		return l.HandleArithmeticOp(tOp)
	case LabelDecl:
		return l.HandleLabelDecl(tOp)
	case GotoOp:
		return l.HandleGotoOp(tOp)
	case FuncDecl:
		return l.HandleFuncDecl(tOp)
	case FuncCallOp:
		return l.HandleFuncCallOp(tOp)
	case ReturnOp:
		return l.HandleReturnOp(tOp)
	default:
		return nil, fmt.Errorf("unrecognized operation '%T'", op)
	}
}

// pushD appends the instructions that push the current 'D' register value onto the stack.
func pushD() asm.Program {
	return asm.Program{
		asm.AInstruction{Location: "SP"},
		asm.CInstruction{Dest: "A", Comp: "M"},
		asm.CInstruction{Dest: "M", Comp: "D"},
		asm.AInstruction{Location: "SP"},
		asm.CInstruction{Dest: "M", Comp: "M+1"},
	}
}

// Specialized function to lower a 'MemoryOp' (push/pop) to its Asm counterpart.
func (l *Lowerer) HandleMemoryOp(op MemoryOp) (asm.Program, error) {
	if op.Segment == Pointer && op.Offset > 1 {
		return nil, fmt.Errorf("invalid 'pointer' offset, got %d", op.Offset)
	}
	if op.Segment == Temp && op.Offset > 7 {
		return nil, fmt.Errorf("invalid 'temp' offset, got %d", op.Offset)
	}
	if op.Segment == Constant && op.Operation == Pop {
		return nil, fmt.Errorf("cannot 'pop' into the read-only 'constant' segment")
	}

	index := strconv.FormatUint(uint64(op.Offset), 10)

	switch op.Operation {
	case Push:
		return l.lowerPush(op.Segment, index)
	case Pop:
		return l.lowerPop(op.Segment, index)
	default:
		return nil, fmt.Errorf("unrecognized OperationType '%s'", op.Operation)
	}
}

func (l *Lowerer) lowerPush(segment SegmentType, index string) (asm.Program, error) {
	switch segment {
	case Constant:
		program := asm.Program{
			asm.AInstruction{Location: index},
			asm.CInstruction{Dest: "D", Comp: "A"},
		}
		return append(program, pushD()...), nil

	case Local, Argument, This, That:
		base := segmentBases[segment]
		program := asm.Program{
			asm.AInstruction{Location: index},
			asm.CInstruction{Dest: "D", Comp: "A"},
			asm.AInstruction{Location: base},
			asm.CInstruction{Dest: "A", Comp: "D+M"},
			asm.CInstruction{Dest: "D", Comp: "M"},
		}
		return append(program, pushD()...), nil

	case Temp, Pointer:
		base := "5"
		if segment == Pointer {
			base = "3"
		}
		program := asm.Program{
			asm.AInstruction{Location: index},
			asm.CInstruction{Dest: "D", Comp: "A"},
			asm.AInstruction{Location: base},
			asm.CInstruction{Dest: "A", Comp: "D+A"},
			asm.CInstruction{Dest: "D", Comp: "M"},
		}
		return append(program, pushD()...), nil

	case Static:
		symbol := fmt.Sprintf("%s.%s", l.currentFile, index)
		program := asm.Program{
			asm.AInstruction{Location: symbol},
			asm.CInstruction{Dest: "D", Comp: "M"},
		}
		return append(program, pushD()...), nil

	default:
		return nil, fmt.Errorf("unrecognized SegmentType '%s'", segment)
	}
}

func (l *Lowerer) lowerPop(segment SegmentType, index string) (asm.Program, error) {
	popIntoD := asm.Program{
		asm.AInstruction{Location: "SP"},
		asm.CInstruction{Dest: "AM", Comp: "M-1"},
		asm.CInstruction{Dest: "D", Comp: "M"},
	}

	switch segment {
	case Local, Argument, This, That:
		base := segmentBases[segment]
		address := asm.Program{
			asm.AInstruction{Location: index},
			asm.CInstruction{Dest: "D", Comp: "A"},
			asm.AInstruction{Location: base},
			asm.CInstruction{Dest: "D", Comp: "D+M"},
			asm.AInstruction{Location: "R13"},
			asm.CInstruction{Dest: "M", Comp: "D"},
		}
		program := append(address, popIntoD...)
		return append(program,
			asm.AInstruction{Location: "R13"},
			asm.CInstruction{Dest: "A", Comp: "M"},
			asm.CInstruction{Dest: "M", Comp: "D"},
		), nil

	case Temp, Pointer:
		base := "5"
		if segment == Pointer {
			base = "3"
		}
		address := asm.Program{
			asm.AInstruction{Location: index},
			asm.CInstruction{Dest: "D", Comp: "A"},
			asm.AInstruction{Location: base},
			asm.CInstruction{Dest: "D", Comp: "D+A"},
			asm.AInstruction{Location: "R13"},
			asm.CInstruction{Dest: "M", Comp: "D"},
		}
		program := append(address, popIntoD...)
		return append(program,
			asm.AInstruction{Location: "R13"},
			asm.CInstruction{Dest: "A", Comp: "M"},
			asm.CInstruction{Dest: "M", Comp: "D"},
		), nil

	case Static:
		symbol := fmt.Sprintf("%s.%s", l.currentFile, index)
		program := append(asm.Program{}, popIntoD...)
		return append(program,
			asm.AInstruction{Location: symbol},
			asm.CInstruction{Dest: "M", Comp: "D"},
		), nil

	default:
		return nil, fmt.Errorf("unrecognized SegmentType '%s'", segment)
	}
}

// Specialized function to lower an 'ArithmeticOp' to its Asm counterpart. Unary operators
// mutate the stack's top in place; binary operators consume two operands and push one
// result back; comparisons are binary operators that additionally need a pair of unique
// labels (hence the monotonic 'comparisons' counter) to branch on the boolean outcome.
func (l *Lowerer) HandleArithmeticOp(op ArithmeticOp) (asm.Program, error) {
	if comp, ok := unaryComps[op.Operation]; ok {
		return asm.Program{
			asm.AInstruction{Location: "SP"},
			asm.CInstruction{Dest: "A", Comp: "M-1"},
			asm.CInstruction{Dest: "M", Comp: comp},
		}, nil
	}

	if comp, ok := binaryComps[op.Operation]; ok {
		return asm.Program{
			asm.AInstruction{Location: "SP"},
			asm.CInstruction{Dest: "AM", Comp: "M-1"},
			asm.CInstruction{Dest: "D", Comp: "M"},
			asm.CInstruction{Dest: "A", Comp: "A-1"},
			asm.CInstruction{Dest: "M", Comp: comp},
		}, nil
	}

	if jump, ok := comparisonJumps[op.Operation]; ok {
		l.comparisons++
		trueLabel := fmt.Sprintf("TRUE%d", l.comparisons)
		storeLabel := fmt.Sprintf("STORE%d", l.comparisons)

		return asm.Program{
			asm.AInstruction{Location: "SP"},
			asm.CInstruction{Dest: "AM", Comp: "M-1"},
			asm.CInstruction{Dest: "D", Comp: "M"},
			asm.CInstruction{Dest: "A", Comp: "A-1"},
			asm.CInstruction{Dest: "D", Comp: "M-D"},
			asm.AInstruction{Location: trueLabel},
			asm.CInstruction{Comp: "D", Jump: jump},
			asm.AInstruction{Location: "SP"},
			asm.CInstruction{Dest: "A", Comp: "M-1"},
			asm.CInstruction{Dest: "M", Comp: "0"},
			asm.AInstruction{Location: storeLabel},
			asm.CInstruction{Comp: "0", Jump: "JMP"},
			asm.LabelDecl{Name: trueLabel},
			asm.AInstruction{Location: "SP"},
			asm.CInstruction{Dest: "A", Comp: "M-1"},
			asm.CInstruction{Dest: "M", Comp: "-1"},
			asm.LabelDecl{Name: storeLabel},
		}, nil
	}

	return nil, fmt.Errorf("unrecognized ArithOpType '%s'", op.Operation)
}

// qualify scopes a VM label to the function it was declared in, so that two functions
// can freely reuse the same label name without clashing once flattened into one Asm file.
func (l *Lowerer) qualify(label string) string {
	if l.currentFunction == "" {
		return label
	}
	return fmt.Sprintf("%s$%s", l.currentFunction, label)
}

// Specialized function to lower a 'LabelDecl' to its Asm counterpart.
func (l *Lowerer) HandleLabelDecl(op LabelDecl) (asm.Program, error) {
	if op.Name == "" {
		return nil, fmt.Errorf("unable to produce empty label declaration")
	}
	return asm.Program{asm.LabelDecl{Name: l.qualify(op.Name)}}, nil
}

// Specialized function to lower a 'GotoOp' to its Asm counterpart.
func (l *Lowerer) HandleGotoOp(op GotoOp) (asm.Program, error) {
	if op.Label == "" {
		return nil, fmt.Errorf("unable to produce empty jump label")
	}

	qualified := l.qualify(op.Label)

	if op.Jump == Unconditional {
		return asm.Program{
			asm.AInstruction{Location: qualified},
			asm.CInstruction{Comp: "0", Jump: "JMP"},
		}, nil
	}

	return asm.Program{
		asm.AInstruction{Location: "SP"},
		asm.CInstruction{Dest: "AM", Comp: "M-1"},
		asm.CInstruction{Dest: "D", Comp: "M"},
		asm.AInstruction{Location: qualified},
		asm.CInstruction{Comp: "D", Jump: "JNE"},
	}, nil
}

// Specialized function to lower a 'FuncDecl' to its Asm counterpart: the function's entry
// label followed by as many "push 0" sequences as it declares local variables.
func (l *Lowerer) HandleFuncDecl(op FuncDecl) (asm.Program, error) {
	if op.Name == "" {
		return nil, fmt.Errorf("unable to produce empty function declaration")
	}

	l.currentFunction = op.Name
	program := asm.Program{asm.LabelDecl{Name: op.Name}}

	for i := uint8(0); i < op.NLocal; i++ {
		program = append(program,
			asm.AInstruction{Location: "SP"},
			asm.CInstruction{Dest: "A", Comp: "M"},
			asm.CInstruction{Dest: "M", Comp: "0"},
			asm.AInstruction{Location: "SP"},
			asm.CInstruction{Dest: "M", Comp: "M+1"},
		)
	}

	return program, nil
}

// Specialized function to lower a 'FuncCallOp' to its Asm counterpart, implementing the
// nand2tetris calling convention: save the caller's frame, reposition ARG/LCL for the
// callee, jump to it and declare the return-address label right after the call site.
func (l *Lowerer) HandleFuncCallOp(op FuncCallOp) (asm.Program, error) {
	if op.Name == "" {
		return nil, fmt.Errorf("unable to produce empty function call")
	}

	site := l.callSites[l.currentFunction]
	l.callSites[l.currentFunction]++
	retLabel := fmt.Sprintf("%s$ret.%d", l.currentFunction, site)

	program := asm.Program{
		asm.AInstruction{Location: retLabel},
		asm.CInstruction{Dest: "D", Comp: "A"},
	}
	program = append(program, pushD()...)

	for _, reg := range []string{"LCL", "ARG", "THIS", "THAT"} {
		program = append(program,
			asm.AInstruction{Location: reg},
			asm.CInstruction{Dest: "D", Comp: "M"},
		)
		program = append(program, pushD()...)
	}

	nArgsPlus5 := strconv.FormatUint(uint64(op.NArgs)+5, 10)
	program = append(program,
		asm.AInstruction{Location: "SP"},
		asm.CInstruction{Dest: "D", Comp: "M"},
		asm.AInstruction{Location: nArgsPlus5},
		asm.CInstruction{Dest: "D", Comp: "D-A"},
		asm.AInstruction{Location: "ARG"},
		asm.CInstruction{Dest: "M", Comp: "D"},

		asm.AInstruction{Location: "SP"},
		asm.CInstruction{Dest: "D", Comp: "M"},
		asm.AInstruction{Location: "LCL"},
		asm.CInstruction{Dest: "M", Comp: "D"},

		asm.AInstruction{Location: op.Name},
		asm.CInstruction{Comp: "0", Jump: "JMP"},

		asm.LabelDecl{Name: retLabel},
	)

	return program, nil
}

// Specialized function to lower a 'ReturnOp' to its Asm counterpart. The return address is
// fetched into a scratch register before ARG/LCL get overwritten, since it's computed
// relative to the callee's own LCL (the "FRAME"); THAT/THIS/ARG/LCL are restored last,
// walking the frame backwards, in that order.
func (l *Lowerer) HandleReturnOp(ReturnOp) (asm.Program, error) {
	return asm.Program{
		// FRAME (R14) := LCL
		asm.AInstruction{Location: "LCL"},
		asm.CInstruction{Dest: "D", Comp: "M"},
		asm.AInstruction{Location: "R14"},
		asm.CInstruction{Dest: "M", Comp: "D"},

		// RET (R13) := *(FRAME-5), fetched before anything else is overwritten
		asm.AInstruction{Location: "5"},
		asm.CInstruction{Dest: "A", Comp: "D-A"},
		asm.CInstruction{Dest: "D", Comp: "M"},
		asm.AInstruction{Location: "R13"},
		asm.CInstruction{Dest: "M", Comp: "D"},

		// *ARG := pop()
		asm.AInstruction{Location: "SP"},
		asm.CInstruction{Dest: "AM", Comp: "M-1"},
		asm.CInstruction{Dest: "D", Comp: "M"},
		asm.AInstruction{Location: "ARG"},
		asm.CInstruction{Dest: "A", Comp: "M"},
		asm.CInstruction{Dest: "M", Comp: "D"},

		// SP := ARG+1
		asm.AInstruction{Location: "ARG"},
		asm.CInstruction{Dest: "D", Comp: "M+1"},
		asm.AInstruction{Location: "SP"},
		asm.CInstruction{Dest: "M", Comp: "D"},

		// THAT := *(FRAME-1) ... LCL := *(FRAME-4), walking R14 backwards
		asm.AInstruction{Location: "R14"},
		asm.CInstruction{Dest: "AM", Comp: "M-1"},
		asm.CInstruction{Dest: "D", Comp: "M"},
		asm.AInstruction{Location: "THAT"},
		asm.CInstruction{Dest: "M", Comp: "D"},

		asm.AInstruction{Location: "R14"},
		asm.CInstruction{Dest: "AM", Comp: "M-1"},
		asm.CInstruction{Dest: "D", Comp: "M"},
		asm.AInstruction{Location: "THIS"},
		asm.CInstruction{Dest: "M", Comp: "D"},

		asm.AInstruction{Location: "R14"},
		asm.CInstruction{Dest: "AM", Comp: "M-1"},
		asm.CInstruction{Dest: "D", Comp: "M"},
		asm.AInstruction{Location: "ARG"},
		asm.CInstruction{Dest: "M", Comp: "D"},

		asm.AInstruction{Location: "R14"},
		asm.CInstruction{Dest: "AM", Comp: "M-1"},
		asm.CInstruction{Dest: "D", Comp: "M"},
		asm.AInstruction{Location: "LCL"},
		asm.CInstruction{Dest: "M", Comp: "D"},

		// goto RET
		asm.AInstruction{Location: "R13"},
		asm.CInstruction{Dest: "A", Comp: "M"},
		asm.CInstruction{Comp: "0", Jump: "JMP"},
	}, nil
}

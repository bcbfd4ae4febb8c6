package vm

import (
	"fmt"
)

// ----------------------------------------------------------------------------
// Code Generator

// Renders a lowered 'vm.Program' (one operation slice per module) back to
// the VM textual format, one line per operation. No state beyond the
// program is needed: every operation renders independently.
type CodeGenerator struct {
	modules Program // per-module operation slices to render
}

// NewCodeGenerator wraps 'p' (the modules to render) for use with Generate.
func NewCodeGenerator(p Program) CodeGenerator {
	return CodeGenerator{modules: p}
}

// Generate renders every operation of every module to its VM text line,
// keyed by module name. The first rendering failure aborts the whole pass.
func (cg *CodeGenerator) Generate() (map[string][]string, error) {
	out := map[string][]string{}

	for name, ops := range cg.modules {
		for _, op := range ops {
			var line string
			var err error

			switch t := op.(type) {
			case MemoryOp:
				line, err = cg.GenerateMemoryOp(t)
			case ArithmeticOp:
				line, err = cg.GenerateArithmeticOp(t)
			case LabelDecl:
				line, err = cg.GenerateLabelDecl(t)
			case GotoOp:
				line, err = cg.GenerateGotoOp(t)
			case FuncDecl:
				line, err = cg.GenerateFuncDecl(t)
			case ReturnOp:
				line, err = cg.GenerateReturnOp(t)
			case FuncCallOp:
				line, err = cg.GenerateFuncCallOp(t)
			}

			if err != nil {
				return nil, err
			}
			out[name] = append(out[name], line)
		}
	}

	return out, nil
}

// GenerateMemoryOp renders a push/pop operation as 'op segment offset',
// rejecting offsets that overrun the fixed-size pointer/temp segments.
func (cg *CodeGenerator) GenerateMemoryOp(op MemoryOp) (string, error) {
	if op.Segment == Pointer && op.Offset > 1 {
		return "", fmt.Errorf("invalid 'pointer' offset, got %d", op.Offset)
	}
	if op.Segment == Temp && op.Offset > 7 {
		return "", fmt.Errorf("invalid 'temp' offset, got %d", op.Offset)
	}

	return fmt.Sprintf("%s %s %d", string(op.Operation), string(op.Segment), op.Offset), nil
}

// GenerateArithmeticOp renders a unary/binary ALU op by its mnemonic alone.
func (cg *CodeGenerator) GenerateArithmeticOp(op ArithmeticOp) (string, error) {
	return string(op.Operation), nil
}

// GenerateLabelDecl renders a label declaration as 'label name'.
func (cg *CodeGenerator) GenerateLabelDecl(op LabelDecl) (string, error) {
	if op.Name == "" {
		return "", fmt.Errorf("unable to produce empty label declaration")
	}

	return fmt.Sprintf("label %s", op.Name), nil
}

// GenerateGotoOp renders an unconditional/conditional jump as 'op label'.
func (cg *CodeGenerator) GenerateGotoOp(op GotoOp) (string, error) {
	if op.Label == "" {
		return "", fmt.Errorf("unable to produce empty jump target")
	}

	return fmt.Sprintf("%s %s", string(op.Jump), op.Label), nil
}

// GenerateFuncDecl renders a function entry point as 'function name nLocals'.
func (cg *CodeGenerator) GenerateFuncDecl(op FuncDecl) (string, error) {
	if op.Name == "" {
		return "", fmt.Errorf("unable to produce empty function declaration")
	}

	return fmt.Sprintf("function %s %d", op.Name, op.NLocal), nil
}

// GenerateReturnOp renders the (argument-less) return operation.
func (cg *CodeGenerator) GenerateReturnOp(op ReturnOp) (string, error) {
	return "return", nil
}

// GenerateFuncCallOp renders a call site as 'call name nArgs'.
func (cg *CodeGenerator) GenerateFuncCallOp(op FuncCallOp) (string, error) {
	if op.Name == "" {
		return "", fmt.Errorf("unable to produce empty function call target")
	}

	return fmt.Sprintf("call %s %d", op.Name, op.NArgs), nil
}

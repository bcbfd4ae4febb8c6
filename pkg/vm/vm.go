package vm

// ----------------------------------------------------------------------------
// General information

// This section contains some general information about the VM intermediate language.
//
// We declare a shared 'Operation' interface for every macro operation available for the
// language and we define some other useful top-level struct such as Program and Module.
// Is important to note that a VM program can be composed of multiple translation units
// that can be also referenced as file or modules or also classes.

// A VM Program is just a set of multiple modules/files, in the VM spec each Jack class is
// translated to its own .vm file (just like Java .class file) that can be handled as its
// own translation unit during the compilation or lowering phases. Keyed by module name
// (the file's base name, extension included) so the lowerer can resolve 'static' segment
// references and ordering deterministically without re-deriving the name from elsewhere.
type Program map[string]Module

// A VM Module is just a linear list of VM operations/instructions
type Module []Operation

// Used to put together all operation in the VM language (Memory, Arithmetic, ... ops).
type Operation interface{}

// ----------------------------------------------------------------------------
// Memory Op

// In memory representation of a Memory operation for the VM language.
//
// In the VM intermediate language there are only two possible memory operation on the stack.
// We could either push a new value taken from the specified segment location on the stack's
// top or take the stack's top and saves its value at the specified segment location.
type MemoryOp struct {
	Operation OperationType // The type of operation, either 'push' or 'pop'
	Segment   SegmentType   // The named memory segment to use (this, that, temp, ...)
	Offset    uint16        // The specific location/offset inside of the memory segment
}

type OperationType string // Enum to manage the operation allowed for a MemoryOp

const (
	Push OperationType = "push"
	Pop  OperationType = "pop"
)

type SegmentType string // Enum to manage the segment accessible for a MemoryOp

const (
	Temp     SegmentType = "temp"     // Real segment used to store intermediate computations
	Constant SegmentType = "constant" // Virtual segment used to access numeric constant

	Local    SegmentType = "local"    // Real segment used to store local function variables
	Static   SegmentType = "static"   // Real segment used to store shared/static variables
	Argument SegmentType = "argument" // Real segment used to store function's argument

	This    SegmentType = "this"    // Virtual segment used to point to a specific memory location
	That    SegmentType = "that"    // Virtual segment used to point to a specific memory location
	Pointer SegmentType = "pointer" // Real segment w/ 2 location used to set the 'this' and 'that' pointers
)

// ----------------------------------------------------------------------------
// Arithmetic Op

// In memory representation of a Arithmetic operation for the VM language.
//
// In the VM intermediate language there are just a handful of operation available.
// In particular each operation acts directly on the top of the stack, of course we have both unary
// and binary operation, the specific management of each op will be handled in the codegen phase.
type ArithmeticOp struct{ Operation ArithOpType }

type ArithOpType string // Enum to manage the operation allowed for an ArithmeticOp

const (
	Eq ArithOpType = "eq" // Comparison operations
	Gt ArithOpType = "gt"
	Lt ArithOpType = "lt"

	Add ArithOpType = "add" // Arithmetic operations
	Sub ArithOpType = "sub"
	Neg ArithOpType = "neg"

	Not ArithOpType = "not" // Bitwise operations
	And ArithOpType = "and"
	Or  ArithOpType = "or"
)

// ----------------------------------------------------------------------------
// Program flow Ops

// In memory representation of a label declaration statement for the VM language.
//
// Labels are scoped to the function they're declared in (two functions can declare a
// label with the same name), the lowering phase takes care of qualifying the name so
// that it doesn't clash with labels of other functions once flattened to Asm.
type LabelDecl struct{ Name string }

// In memory representation of a goto/if-goto statement for the VM language.
//
// An unconditional goto always jumps to 'Label', a conditional one ('if-goto') pops
// the stack's top and jumps only if the popped value is true (non-zero).
type GotoOp struct {
	Jump  JumpType
	Label string
}

type JumpType string // Enum to manage the kind of jump performed by a GotoOp

const (
	Unconditional JumpType = "goto"    // Always transfers control to 'Label'
	Conditional   JumpType = "if-goto" // Transfers control to 'Label' based on the stack's top
)

// ----------------------------------------------------------------------------
// Function Ops

// In memory representation of a function declaration for the VM language.
//
// 'NLocal' tracks how many local variables the function declares, the lowering phase
// uses it to zero-initialize that many stack slots as part of the function's prologue.
type FuncDecl struct {
	Name   string
	NLocal uint8
}

// In memory representation of a function call for the VM language.
//
// 'NArgs' tracks how many arguments have already been pushed onto the stack by the
// caller right before this operation, used to compute the callee's ARG base address.
type FuncCallOp struct {
	Name  string
	NArgs uint8
}

// In memory representation of a return statement for the VM language.
//
// Carries no data: the calling convention always reconstructs the caller's frame
// from LCL alone, regardless of which function is returning.
type ReturnOp struct{}

package jack

import (
	"fmt"
	"strings"
)

// ----------------------------------------------------------------------------
// Jack Type Checker

// The TypeChecker walks the same class/subroutine/statement tree the Lowerer does, but
// instead of emitting 'vm.Operation(s)' it only confirms that every name referenced
// (variables, fields, and 'do'/'let' call targets) resolves to something declared
// somewhere in scope. This is name/arity resolution, not a full type system: it never
// rejects a program for mismatched operand types, only for undeclared identifiers or
// calls to subroutines that don't exist (or are given the wrong number of arguments).
type TypeChecker struct {
	program Program
	scopes  ScopeTable // Keeps track of the scopes and declared variables inside each one
}

func NewTypeChecker(program Program) TypeChecker {
	return TypeChecker{program: program}
}

func (tc *TypeChecker) Check() (bool, error) {
	if tc.program == nil {
		return false, fmt.Errorf("the given 'program' is empty or nil")
	}

	for name, class := range tc.program {
		if _, err := tc.HandleClass(class); err != nil {
			return false, fmt.Errorf("error type-checking class '%s': %w", name, err)
		}
	}

	return true, nil
}

// Specialized function to type-check a 'jack.Class' and nested fields.
func (tc *TypeChecker) HandleClass(class Class) (bool, error) {
	tc.scopes.PushClassScope(class.Name) // Keep track of the current scope being processed
	defer tc.scopes.PopClassScope()      // Reset the function name after processing

	for _, field := range class.Fields.Entries() {
		tc.scopes.RegisterVariable(field)
	}

	for _, subroutine := range class.Subroutines.Entries() {
		if _, err := tc.HandleSubroutine(subroutine); err != nil {
			return false, fmt.Errorf("error handling subroutine '%s' in class '%s': %w", subroutine.Name, class.Name, err)
		}
	}

	return true, nil
}

// Specialized function to type-check a 'jack.Subroutine' and nested fields.
func (tc *TypeChecker) HandleSubroutine(subroutine Subroutine) (bool, error) {
	tc.scopes.PushSubRoutineScope(subroutine.Name) // Keep track of the current subroutine function being processed
	defer tc.scopes.PopSubroutineScope()           // Reset the function name after processing

	if subroutine.Type == Method {
		tc.scopes.RegisterVariable(Variable{Name: "__obj", VarType: Parameter, DataType: DataType{Main: Object}})
	}

	// We add to the current scope also all of the arguments of the subroutine
	for _, arg := range subroutine.Arguments.Entries() {
		tc.scopes.RegisterVariable(arg)
	}

	for _, stmt := range subroutine.Statements {
		if _, err := tc.HandleStatement(stmt); err != nil {
			return false, fmt.Errorf("error handling nested statement %T: %w", stmt, err)
		}
	}

	return true, nil
}

// Generalized function to type-check multiple statements types.
func (tc *TypeChecker) HandleStatement(stmt Statement) (bool, error) {
	switch tStmt := stmt.(type) {
	case DoStmt:
		if _, err := tc.HandleExpression(tStmt.FuncCall); err != nil {
			return false, fmt.Errorf("error resolving 'do' call target: %w", err)
		}
		return true, nil

	case VarStmt:
		for _, variable := range tStmt.Vars {
			tc.scopes.RegisterVariable(variable)
		}
		return true, nil

	case LetStmt:
		if _, err := tc.HandleExpression(tStmt.Rhs); err != nil {
			return false, fmt.Errorf("error resolving RHS expression: %w", err)
		}
		if _, err := tc.HandleExpression(tStmt.Lhs); err != nil {
			return false, fmt.Errorf("error resolving LHS expression: %w", err)
		}
		return true, nil

	case IfStmt:
		if _, err := tc.HandleExpression(tStmt.Condition); err != nil {
			return false, fmt.Errorf("error resolving 'if' condition: %w", err)
		}
		for _, nested := range append(append([]Statement{}, tStmt.ThenBlock...), tStmt.ElseBlock...) {
			if _, err := tc.HandleStatement(nested); err != nil {
				return false, err
			}
		}
		return true, nil

	case WhileStmt:
		if _, err := tc.HandleExpression(tStmt.Condition); err != nil {
			return false, fmt.Errorf("error resolving 'while' condition: %w", err)
		}
		for _, nested := range tStmt.Block {
			if _, err := tc.HandleStatement(nested); err != nil {
				return false, err
			}
		}
		return true, nil

	case ReturnStmt:
		if tStmt.Expr == nil {
			return true, nil
		}
		if _, err := tc.HandleExpression(tStmt.Expr); err != nil {
			return false, fmt.Errorf("error resolving return expression: %w", err)
		}
		return true, nil

	default:
		return false, fmt.Errorf("unrecognized statement: %T", stmt)
	}
}

// Generalized function to resolve every name referenced by an expression. Returns an error
// (rather than a resolved type) since arity/name resolution, not type propagation, is the goal.
func (tc *TypeChecker) HandleExpression(expr Expression) (bool, error) {
	switch tExpr := expr.(type) {
	case VarExpr:
		if tExpr.Var == "this" {
			return true, nil
		}
		if _, _, err := tc.scopes.ResolveVariable(tExpr.Var); err != nil {
			return false, err
		}
		return true, nil

	case LiteralExpr:
		return true, nil

	case ArrayExpr:
		if _, _, err := tc.scopes.ResolveVariable(tExpr.Var); err != nil {
			return false, fmt.Errorf("error resolving array base variable '%s': %w", tExpr.Var, err)
		}
		return tc.HandleExpression(tExpr.Index)

	case UnaryExpr:
		return tc.HandleExpression(tExpr.Rhs)

	case BinaryExpr:
		if _, err := tc.HandleExpression(tExpr.Lhs); err != nil {
			return false, err
		}
		return tc.HandleExpression(tExpr.Rhs)

	case FuncCallExpr:
		return tc.HandleFuncCallExpr(tExpr)

	default:
		return false, fmt.Errorf("unrecognized expression: %T", expr)
	}
}

// Resolves a call target to a known class/subroutine pair and checks the argument count
// matches the declaration, whether the call is local, qualified by a variable, or a direct
// class reference (constructor or static function call).
func (tc *TypeChecker) HandleFuncCallExpr(call FuncCallExpr) (bool, error) {
	for _, arg := range call.Arguments {
		if _, err := tc.HandleExpression(arg); err != nil {
			return false, fmt.Errorf("error resolving call argument: %w", err)
		}
	}

	// Declared 'Arguments' never list the implicit 'this' of a method, just like the call site
	// does not, so the two counts are compared as they are.
	resolve := func(class Class, name string) (bool, error) {
		routine, exists := class.Subroutines.Get(name)
		if !exists {
			if _, exists := StandardLibraryABI[class.Name]; exists {
				return true, nil // Stdlib ABI entries are trusted without arity re-checking here
			}
			return false, fmt.Errorf("subroutine '%s' not found in class '%s'", name, class.Name)
		}

		want := routine.Arguments.Size()
		got := len(call.Arguments)
		if want != got {
			return false, fmt.Errorf("call to '%s.%s' expects %d argument(s), got %d", class.Name, name, want, got)
		}
		return true, nil
	}

	if !call.IsExtCall {
		className := strings.Split(tc.scopes.GetScope(), ".")[0]
		class, exists := tc.program[className]
		if !exists {
			return false, fmt.Errorf("class definition not found for '%s'", className)
		}
		return resolve(class, call.FuncName)
	}

	if _, variable, err := tc.scopes.ResolveVariable(call.Var); err == nil {
		if variable.DataType.Main != Object {
			return false, fmt.Errorf("variable '%s' is not an object, cannot call '%s' on it", call.Var, call.FuncName)
		}
		if class, exists := tc.program[variable.DataType.Subtype]; exists {
			return resolve(class, call.FuncName)
		}
		if _, exists := StandardLibraryABI[variable.DataType.Subtype]; exists {
			return true, nil
		}
		return false, fmt.Errorf("class definition not found for '%s'", variable.DataType.Subtype)
	}

	if class, exists := tc.program[call.Var]; exists {
		return resolve(class, call.FuncName)
	}
	if _, exists := StandardLibraryABI[call.Var]; exists {
		return true, nil
	}

	return false, fmt.Errorf("unrecognized function call target: %s.%s", call.Var, call.FuncName)
}

package jack

import (
	"fmt"
	"io"
	"os"
	"strings"

	pc "github.com/prataprc/goparsec"
	"its-hmny.dev/nand2tetris/pkg/utils"
)

// ----------------------------------------------------------------------------
// Parser Combinator(s)

// This section defines the Parser Combinator for every token & construct of the Jack language.
//
// Jack has no operator precedence (expressions are evaluated strictly left to right, same
// as the original course compiler), which keeps the 'expression'/'term' grammar a lot flatter
// than a typical C-like language would need. 'term' and 'expression' are mutually recursive
// (parenthesized sub-expressions, array indices and call arguments all nest an 'expression'
// back inside a 'term'), so both are pre-declared and wired together via a lazy reference.

// Top level object, will generate the traversable AST based on the input plus the PCs below.
var ast = pc.NewAST("jack_program", 0)

// pExpr, pStatement and pTermRef are forward-declared since the grammar is mutually recursive (a
// term can contain a parenthesized expression or a nested unary term, and a block can contain
// statements that themselves contain nested blocks of statements). They're assigned in init(),
// once every PC they depend on has been declared; 'lazyExpr'/'lazyStmt'/'lazyTerm' let earlier
// declarations reference them by forwarding to whatever value the variable holds once parsing
// actually begins.
var pExpr, pStatement, pTermRef pc.Parser

func lazyExpr(s pc.Scanner) (pc.ParsecNode, pc.Scanner) { return pExpr(s) }
func lazyStmt(s pc.Scanner) (pc.ParsecNode, pc.Scanner) { return pStatement(s) }

var (
	pClass = ast.And("class_decl", nil,
		pc.Atom("class", "CLASS"), pIdent, pLBrace,
		ast.Kleene("class_var_decs", nil, pClassVarDec),
		ast.Kleene("subroutine_decs", nil, pSubroutineDec),
		pRBrace,
	)

	// A field/static variable declaration: "{static|field} {type} {name}(, {name})*;"
	pClassVarDec = ast.And("class_var_dec", nil,
		pVarScope, pType, pIdent, ast.Kleene("more_names", nil, ast.And("name", nil, pComma, pIdent)), pSemi,
	)

	// A method/function/constructor declaration, with its full parameter list and body.
	pSubroutineDec = ast.And("subroutine_dec", nil,
		pSubroutineType, pReturnType, pIdent,
		pLParen, pParamList, pRParen,
		pLBrace, ast.Kleene("var_decs", nil, pVarDec), ast.Kleene("statements", nil, pc.Parser(lazyStmt)), pRBrace,
	)

	// A comma-separated list of "{type} {name}" pairs, possibly empty.
	pParamList = ast.Maybe("param_list", nil,
		ast.And("params", nil, pParam, ast.Kleene("more_params", nil, ast.And("next_param", nil, pComma, pParam))),
	)
	pParam = ast.And("param", nil, pType, pIdent)

	// A local variable declaration inside a subroutine body: "var {type} {name}(, {name})*;"
	pVarDec = ast.And("var_dec", nil,
		pc.Atom("var", "VAR"), pType, pIdent, ast.Kleene("more_names", nil, ast.And("name", nil, pComma, pIdent)), pSemi,
	)
)

var (
	pVarScope = ast.OrdChoice("var_scope", nil, pc.Atom("static", "STATIC"), pc.Atom("field", "FIELD"))

	pSubroutineType = ast.OrdChoice("subroutine_type", nil,
		pc.Atom("constructor", "CONSTRUCTOR"), pc.Atom("function", "FUNCTION"), pc.Atom("method", "METHOD"),
	)

	pReturnType = ast.OrdChoice("return_type", nil, pc.Token(`void\b`, "VOID"), pType)

	// A Jack type is one of the 3 primitives or a class name (any other identifier).
	// The primitive names only match as whole words, so e.g. 'intList' is read as an identifier.
	pType = ast.OrdChoice("type", nil,
		pc.Token(`int\b`, "INT"), pc.Token(`char\b`, "CHAR"), pc.Token(`boolean\b`, "BOOLEAN"), pIdent,
	)
)

var (
	pStatements = ast.Kleene("block", nil, pc.Parser(lazyStmt))

	pLetStmt = ast.And("let_stmt", nil,
		pc.Atom("let", "LET"), pIdent,
		ast.Maybe("maybe_index", nil, ast.And("index", nil, pLBracket, pc.Parser(lazyExpr), pRBracket)),
		pc.Atom("=", "ASSIGN"), pc.Parser(lazyExpr), pSemi,
	)

	pIfStmt = ast.And("if_stmt", nil,
		pc.Atom("if", "IF"), pLParen, pc.Parser(lazyExpr), pRParen, pLBrace, pStatements, pRBrace,
		ast.Maybe("maybe_else", nil, ast.And("else_block", nil, pc.Atom("else", "ELSE"), pLBrace, pStatements, pRBrace)),
	)

	pWhileStmt = ast.And("while_stmt", nil,
		pc.Atom("while", "WHILE"), pLParen, pc.Parser(lazyExpr), pRParen, pLBrace, pStatements, pRBrace,
	)

	pDoStmt = ast.And("do_stmt", nil, pc.Atom("do", "DO"), pSubroutineCall, pSemi)

	pReturnStmt = ast.And("return_stmt", nil,
		pc.Atom("return", "RETURN"), ast.Maybe("maybe_expr", nil, pc.Parser(lazyExpr)), pSemi,
	)

	// A call is either local ("foo(...)") or qualified by a class/variable name ("obj.foo(...)").
	pSubroutineCall = ast.And("subroutine_call", nil,
		pIdent, ast.Maybe("maybe_qualifier", nil, ast.And("qualifier", nil, pDot, pIdent)),
		pLParen, pExprList, pRParen,
	)

	pExprList = ast.Maybe("expr_list", nil,
		ast.And("exprs", nil, pc.Parser(lazyExpr), ast.Kleene("more_exprs", nil, ast.And("expr", nil, pComma, pc.Parser(lazyExpr)))),
	)
)

var (
	// Jack evaluates left to right, without precedence, so 'expression' is just a flat
	// chain of terms glued together by binary operators.
	pBinExpr = ast.And("expression", nil, pTerm, ast.Kleene("more_terms", nil, ast.And("op_term", nil, pBinOp, pTerm)))

	pTerm = ast.OrdChoice("term", nil,
		pIntConst, pStringConst, pKeywordConst,
		// Order matters: both start with an IDENT, so the more specific alternatives
		// (call, array access) must be tried before falling back to a bare variable name.
		pSubroutineCall,
		ast.And("array_access", nil, pIdent, pLBracket, pc.Parser(lazyExpr), pRBracket),
		pIdent,
		ast.And("paren_expr", nil, pLParen, pc.Parser(lazyExpr), pRParen),
		ast.And("unary_expr", nil, pUnaryOp, pc.Parser(lazyTerm)),
	)

	pIntConst    = pc.Int()
	pStringConst = pc.Token(`"(?:\\.|[^"\\])*"`, "STRING")
	// Keyword constants only match as whole words, so e.g. 'trueCount' is read as an identifier.
	pKeywordConst = ast.OrdChoice("keyword_const", nil,
		pc.Token(`true\b`, "TRUE"), pc.Token(`false\b`, "FALSE"), pc.Token(`null\b`, "NULL"), pc.Token(`this\b`, "THIS"),
	)

	pBinOp = ast.OrdChoice("bin_op", nil,
		pc.Atom("+", "PLUS"), pc.Atom("-", "MINUS"), pc.Atom("*", "STAR"), pc.Atom("/", "SLASH"),
		pc.Atom("&", "AND"), pc.Atom("|", "OR"), pc.Atom("<", "LT"), pc.Atom(">", "GT"), pc.Atom("=", "EQ"),
	)

	pUnaryOp = ast.OrdChoice("unary_op", nil, pc.Atom("-", "NEG"), pc.Atom("~", "NOT"))
)

func lazyTerm(s pc.Scanner) (pc.ParsecNode, pc.Scanner) { return pTermRef(s) }

var (
	// Generic Identifier parser, reused for class/variable/subroutine names.
	pIdent = pc.Token(`[A-Za-z_][0-9a-zA-Z_]*`, "IDENT")

	pDot      = pc.Atom(".", "DOT")
	pSemi     = pc.Atom(";", "SEMI")
	pComma    = pc.Atom(",", "COMMA")
	pLBrace   = pc.Atom("{", "LBRACE")
	pRBrace   = pc.Atom("}", "RBRACE")
	pLParen   = pc.Atom("(", "LPAREN")
	pRParen   = pc.Atom(")", "RPAREN")
	pLBracket = pc.Atom("[", "LBRACKET")
	pRBracket = pc.Atom("]", "RBRACKET")
)

func init() {
	pTermRef = pTerm
	pExpr = pBinExpr
	pStatement = ast.OrdChoice("statement", nil, pLetStmt, pIfStmt, pWhileStmt, pDoStmt, pReturnStmt)
}

// ----------------------------------------------------------------------------
// Jack Parser

// This section defines the Parser for the nand2tetris Jack language.
//
// It uses parser combinator(s) to obtain the AST from the source code (the latter can be provided)
// in multiple ways using a generic io.Reader, the library reads up the feature flags (as env vars):
// - PARSEC_DEBUG: Verbose logging to inspect which of the PCs gets triggered and match
// - EXPORT_AST:   Exports in the DEBUG_FOLDER a Graphviz representation of the AST
// - PRINT_AST:    Print on the stdout a textual representation of the AST
type Parser struct{ reader io.Reader }

// Initializes and returns to the caller a brand new 'Parser' struct.
// Requires the argument io.Reader 'r' to be valid and usable.
func NewParser(r io.Reader) Parser {
	return Parser{reader: r}
}

// Parser entrypoint divides the 2 phases of the parsing pipeline
// Text --> AST: This step is done using PCs and returns a generic traversable AST
// AST --> IR: This step is done by traversing the AST and extracting the 'jack.Class'
func (p *Parser) Parse() (Class, error) {
	content, err := io.ReadAll(p.reader)
	if err != nil {
		return Class{}, fmt.Errorf("cannot read from 'io.Reader': %s", err)
	}

	root, success := p.FromSource(content)
	if !success {
		return Class{}, fmt.Errorf("failed to parse AST from input content")
	}

	return p.FromAST(root)
}

// Scans the textual input stream coming from the 'reader' method and returns a traversable AST
// (Abstract Syntax Tree) that can be eventually visited to extract/transform the info available.
func (p *Parser) FromSource(source []byte) (pc.Queryable, bool) {

	// Feature flag: Enable 'goparsec' library's debug logs
	if os.Getenv("PARSEC_DEBUG") != "" {
		ast.SetDebug()
	}

	// We generate the traversable Abstract Syntax Tree from the source content
	root, _ := ast.Parsewith(pClass, pc.NewScanner(source))

	// Feature flag: Enables export of the AST as Dot file (debug.ast.dot)
	if os.Getenv("EXPORT_AST") != "" {
		file, _ := os.Create(fmt.Sprintf("%s/debug.ast.dot", os.Getenv("DEBUG_FOLDER")))
		defer file.Close()

		file.Write([]byte(ast.Dotstring("\"Jack AST\"")))
	}

	// Feature flag: Enables pretty printing of the AST on the console
	if os.Getenv("PRINT_AST") != "" {
		ast.Prettyprint()
	}

	return root, root != nil
}

// This function takes the root node of the raw parsed AST and does a DFS on it parsing
// one by one each subtree and returning a 'jack.Class' that can be used as in-memory and
// type-safe AST not dependent on the parsing library used.
func (p *Parser) FromAST(root pc.Queryable) (Class, error) {
	if root.GetName() != "class_decl" {
		return Class{}, fmt.Errorf("expected node 'class_decl', found %s", root.GetName())
	}

	children := root.GetChildren()
	if len(children) != 6 {
		return Class{}, fmt.Errorf("expected 'class_decl' with 6 children, got %d", len(children))
	}

	class := Class{
		Name:        children[1].GetValue(),
		Fields:      utils.NewOrderedMap[string, Variable](),
		Subroutines: utils.NewOrderedMap[string, Subroutine](),
	}

	for _, node := range children[3].GetChildren() { // class_var_decs
		for _, field := range p.HandleClassVarDec(node) {
			class.Fields.Set(field.Name, field)
		}
	}

	for _, node := range children[4].GetChildren() { // subroutine_decs
		routine, err := p.HandleSubroutineDec(node)
		if err != nil {
			return Class{}, fmt.Errorf("error handling subroutine declaration: %w", err)
		}
		class.Subroutines.Set(routine.Name, routine)
	}

	return class, nil
}

// Specialized function to convert a "class_var_dec" node to one or more 'jack.Variable'.
func (Parser) HandleClassVarDec(node pc.Queryable) []Variable {
	children := node.GetChildren()

	scope := Static
	if children[0].GetValue() == "field" {
		scope = Field
	}

	dataType := dataTypeFromNode(children[1])
	names := []string{children[2].GetValue()}
	for _, more := range children[3].GetChildren() { // more_names
		names = append(names, more.GetChildren()[1].GetValue())
	}

	vars := make([]Variable, 0, len(names))
	for _, name := range names {
		vars = append(vars, Variable{Name: name, VarType: scope, DataType: dataType})
	}
	return vars
}

// Specialized function to convert a "subroutine_dec" node to a 'jack.Subroutine'.
func (p Parser) HandleSubroutineDec(node pc.Queryable) (Subroutine, error) {
	children := node.GetChildren()
	if len(children) != 10 {
		return Subroutine{}, fmt.Errorf("expected 'subroutine_dec' with 10 children, got %d", len(children))
	}

	subroutine := Subroutine{
		Name:      children[2].GetValue(),
		Type:      SubroutineType(children[0].GetValue()),
		Return:    returnTypeFromNode(children[1]),
		Arguments: utils.NewOrderedMap[string, Variable](),
	}

	for _, param := range flattenParamList(children[4]) {
		subroutine.Arguments.Set(param.Name, param)
	}

	for _, varDecNode := range children[7].GetChildren() { // var_decs
		for _, local := range p.HandleVarDec(varDecNode) {
			subroutine.Statements = append(subroutine.Statements, VarStmt{Vars: []Variable{local}})
		}
	}

	for _, stmtNode := range children[8].GetChildren() { // statements
		stmt, err := p.HandleStatement(stmtNode)
		if err != nil {
			return Subroutine{}, fmt.Errorf("error handling nested statement: %w", err)
		}
		subroutine.Statements = append(subroutine.Statements, stmt)
	}

	return subroutine, nil
}

// Specialized function to convert a "var_dec" node to one or more 'jack.Variable'.
func (Parser) HandleVarDec(node pc.Queryable) []Variable {
	children := node.GetChildren()

	dataType := dataTypeFromNode(children[1])
	names := []string{children[2].GetValue()}
	for _, more := range children[3].GetChildren() {
		names = append(names, more.GetChildren()[1].GetValue())
	}

	vars := make([]Variable, 0, len(names))
	for _, name := range names {
		vars = append(vars, Variable{Name: name, VarType: Local, DataType: dataType})
	}
	return vars
}

// Generalized function to convert any "statement" subtree to a 'jack.Statement'.
func (p Parser) HandleStatement(node pc.Queryable) (Statement, error) {
	switch node.GetName() {
	case "let_stmt":
		return p.HandleLetStmt(node)
	case "if_stmt":
		return p.HandleIfStmt(node)
	case "while_stmt":
		return p.HandleWhileStmt(node)
	case "do_stmt":
		return p.HandleDoStmt(node)
	case "return_stmt":
		return p.HandleReturnStmt(node)
	default:
		return nil, fmt.Errorf("unrecognized statement node '%s'", node.GetName())
	}
}

func (p Parser) HandleBlock(node pc.Queryable) ([]Statement, error) {
	statements := []Statement{}
	for _, child := range node.GetChildren() {
		stmt, err := p.HandleStatement(child)
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}
	return statements, nil
}

func (p Parser) HandleLetStmt(node pc.Queryable) (Statement, error) {
	children := node.GetChildren() // let IDENT maybe_index = expr ;
	varName := children[1].GetValue()

	var lhs Expression = VarExpr{Var: varName}
	if maybeIndex := children[2]; len(maybeIndex.GetChildren()) == 1 {
		indexNode := maybeIndex.GetChildren()[0].GetChildren()[1] // index -> '[' expr ']'
		index, err := p.HandleExpression(indexNode)
		if err != nil {
			return nil, fmt.Errorf("error handling array index expression: %w", err)
		}
		lhs = ArrayExpr{Var: varName, Index: index}
	}

	rhs, err := p.HandleExpression(children[4])
	if err != nil {
		return nil, fmt.Errorf("error handling RHS expression: %w", err)
	}

	return LetStmt{Lhs: lhs, Rhs: rhs}, nil
}

func (p Parser) HandleIfStmt(node pc.Queryable) (Statement, error) {
	children := node.GetChildren() // if ( expr ) { block } maybe_else

	cond, err := p.HandleExpression(children[2])
	if err != nil {
		return nil, fmt.Errorf("error handling 'if' condition expression: %w", err)
	}

	thenBlock, err := p.HandleBlock(children[5])
	if err != nil {
		return nil, fmt.Errorf("error handling 'then' block: %w", err)
	}

	stmt := IfStmt{Condition: cond, ThenBlock: thenBlock}

	if maybeElse := children[7]; len(maybeElse.GetChildren()) == 1 {
		elseBlockNode := maybeElse.GetChildren()[0].GetChildren()[2] // else_block -> else { block }
		elseBlock, err := p.HandleBlock(elseBlockNode)
		if err != nil {
			return nil, fmt.Errorf("error handling 'else' block: %w", err)
		}
		stmt.ElseBlock = elseBlock
	}

	return stmt, nil
}

func (p Parser) HandleWhileStmt(node pc.Queryable) (Statement, error) {
	children := node.GetChildren() // while ( expr ) { block }

	cond, err := p.HandleExpression(children[2])
	if err != nil {
		return nil, fmt.Errorf("error handling 'while' condition expression: %w", err)
	}

	block, err := p.HandleBlock(children[5])
	if err != nil {
		return nil, fmt.Errorf("error handling 'while' block: %w", err)
	}

	return WhileStmt{Condition: cond, Block: block}, nil
}

func (p Parser) HandleDoStmt(node pc.Queryable) (Statement, error) {
	children := node.GetChildren() // do subroutine_call ;

	call, err := p.HandleSubroutineCall(children[1])
	if err != nil {
		return nil, fmt.Errorf("error handling function call expression: %w", err)
	}

	return DoStmt{FuncCall: call}, nil
}

func (p Parser) HandleReturnStmt(node pc.Queryable) (Statement, error) {
	children := node.GetChildren() // return maybe_expr ;

	if maybe := children[1]; len(maybe.GetChildren()) == 1 {
		expr, err := p.HandleExpression(maybe.GetChildren()[0])
		if err != nil {
			return nil, fmt.Errorf("error handling return expression: %w", err)
		}
		return ReturnStmt{Expr: expr}, nil
	}

	return ReturnStmt{}, nil
}

// Specialized function to convert an "expression" node to a 'jack.Expression'.
// Jack has no operator precedence, so this just folds left to right: (((t0 op t1) op t2) op ...).
func (p Parser) HandleExpression(node pc.Queryable) (Expression, error) {
	children := node.GetChildren() // term more_terms
	if len(children) != 2 {
		return nil, fmt.Errorf("expected 'expression' with 2 children, got %d", len(children))
	}

	lhs, err := p.HandleTerm(children[0])
	if err != nil {
		return nil, fmt.Errorf("error handling leading term: %w", err)
	}

	for _, opTerm := range children[1].GetChildren() { // op_term -> bin_op term
		opChildren := opTerm.GetChildren()

		rhs, err := p.HandleTerm(opChildren[1])
		if err != nil {
			return nil, fmt.Errorf("error handling trailing term: %w", err)
		}

		lhs = BinaryExpr{Type: binOpFromToken(opChildren[0].GetValue()), Lhs: lhs, Rhs: rhs}
	}

	return lhs, nil
}

// Specialized function to convert a "term" node to a 'jack.Expression'.
func (p Parser) HandleTerm(node pc.Queryable) (Expression, error) {
	switch node.GetName() {
	case "INT":
		return LiteralExpr{Type: DataType{Main: Int}, Value: node.GetValue()}, nil

	case "STRING":
		raw := node.GetValue()
		return LiteralExpr{Type: DataType{Main: String}, Value: strings.Trim(raw, `"`)}, nil

	case "keyword_const":
		switch keyword := node.GetChildren()[0].GetValue(); keyword {
		case "true":
			return LiteralExpr{Type: DataType{Main: Bool}, Value: "true"}, nil
		case "false":
			return LiteralExpr{Type: DataType{Main: Bool}, Value: "false"}, nil
		case "null":
			return LiteralExpr{Type: DataType{Main: Object}, Value: "null"}, nil
		case "this":
			return VarExpr{Var: "this"}, nil
		default:
			return nil, fmt.Errorf("unrecognized keyword constant '%s'", keyword)
		}

	case "subroutine_call":
		return p.HandleSubroutineCall(node)

	case "array_access":
		children := node.GetChildren() // IDENT [ expr ]
		index, err := p.HandleExpression(children[2])
		if err != nil {
			return nil, fmt.Errorf("error handling array index expression: %w", err)
		}
		return ArrayExpr{Var: children[0].GetValue(), Index: index}, nil

	case "IDENT":
		return VarExpr{Var: node.GetValue()}, nil

	case "paren_expr":
		children := node.GetChildren() // ( expr )
		return p.HandleExpression(children[1])

	case "unary_expr":
		children := node.GetChildren() // unary_op term
		rhs, err := p.HandleTerm(children[1])
		if err != nil {
			return nil, fmt.Errorf("error handling nested term: %w", err)
		}

		exprType := Negation
		if children[0].GetValue() == "~" {
			exprType = BoolNot
		}
		return UnaryExpr{Type: exprType, Rhs: rhs}, nil

	default:
		return nil, fmt.Errorf("unrecognized term node '%s'", node.GetName())
	}
}

// Specialized function to convert a "subroutine_call" node to a 'jack.FuncCallExpr'.
func (p Parser) HandleSubroutineCall(node pc.Queryable) (FuncCallExpr, error) {
	children := node.GetChildren() // IDENT maybe_qualifier ( expr_list )
	if len(children) != 5 {
		return FuncCallExpr{}, fmt.Errorf("expected 'subroutine_call' with 5 children, got %d", len(children))
	}

	call := FuncCallExpr{}

	if maybeQualifier := children[1]; len(maybeQualifier.GetChildren()) == 1 {
		call.IsExtCall = true
		call.Var = children[0].GetValue()
		call.FuncName = maybeQualifier.GetChildren()[0].GetChildren()[1].GetValue() // qualifier -> . IDENT
	} else {
		call.FuncName = children[0].GetValue()
	}

	args, err := p.HandleExprList(children[3])
	if err != nil {
		return FuncCallExpr{}, fmt.Errorf("error handling call arguments: %w", err)
	}
	call.Arguments = args

	return call, nil
}

// Specialized function to convert an "expr_list" node to a slice of 'jack.Expression'.
func (p Parser) HandleExprList(node pc.Queryable) ([]Expression, error) {
	if len(node.GetChildren()) == 0 {
		return nil, nil
	}

	exprs := node.GetChildren()[0] // exprs -> expr more_exprs
	children := exprs.GetChildren()

	first, err := p.HandleExpression(children[0])
	if err != nil {
		return nil, fmt.Errorf("error handling first argument expression: %w", err)
	}

	list := []Expression{first}
	for _, more := range children[1].GetChildren() { // more_exprs -> , expr
		expr, err := p.HandleExpression(more.GetChildren()[1])
		if err != nil {
			return nil, fmt.Errorf("error handling argument expression: %w", err)
		}
		list = append(list, expr)
	}

	return list, nil
}

// ----------------------------------------------------------------------------
// Shared helpers

func dataTypeFromNode(node pc.Queryable) DataType {
	switch value := node.GetValue(); value {
	case "int":
		return DataType{Main: Int}
	case "char":
		return DataType{Main: Char}
	case "boolean":
		return DataType{Main: Bool}
	default:
		return DataType{Main: Object, Subtype: value} // Any other identifier names a class type
	}
}

func returnTypeFromNode(node pc.Queryable) DataType {
	if node.GetValue() == "void" {
		return DataType{Main: Void}
	}
	return dataTypeFromNode(node.GetChildren()[0])
}

func flattenParamList(node pc.Queryable) []Variable {
	if len(node.GetChildren()) == 0 {
		return nil
	}

	params := node.GetChildren()[0] // params -> param more_params
	children := params.GetChildren()

	first := children[0].GetChildren() // param -> type IDENT
	vars := []Variable{{Name: first[1].GetValue(), VarType: Parameter, DataType: dataTypeFromNode(first[0])}}

	for _, more := range children[1].GetChildren() { // more_params -> , param
		paramChildren := more.GetChildren()[1].GetChildren()
		vars = append(vars, Variable{
			Name: paramChildren[1].GetValue(), VarType: Parameter, DataType: dataTypeFromNode(paramChildren[0]),
		})
	}

	return vars
}

func binOpFromToken(token string) ExprType {
	switch token {
	case "+":
		return Plus
	case "-":
		return Minus
	case "*":
		return Multiply
	case "/":
		return Divide
	case "&":
		return BoolAnd
	case "|":
		return BoolOr
	case "<":
		return LessThan
	case ">":
		return GreatThan
	case "=":
		return Equal
	default:
		return ""
	}
}

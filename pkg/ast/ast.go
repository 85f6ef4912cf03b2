package ast

import "roadman/interpreter-go/pkg/lexer"

// NodeType identifies one of the closed set of AST node variants.
type NodeType string

const (
	NodeProgram             NodeType = "Program"
	NodeExpressionStatement NodeType = "ExpressionStatement"
	NodeBlock               NodeType = "Block"
	NodeVarDeclaration      NodeType = "VarDeclaration"
	NodeIfStatement         NodeType = "IfStatement"
	NodeWhileLoop           NodeType = "WhileLoop"
	NodeBreakStatement      NodeType = "BreakStatement"
	NodeFunctionDeclaration NodeType = "FunctionDeclaration"
	NodeReturnStatement     NodeType = "ReturnStatement"

	NodeNumberLiteral  NodeType = "NumberLiteral"
	NodeStringLiteral  NodeType = "StringLiteral"
	NodeBooleanLiteral NodeType = "BooleanLiteral"
	NodeListLiteral    NodeType = "ListLiteral"
	NodeVariable       NodeType = "Variable"
	NodeUnaryOp        NodeType = "UnaryOp"
	NodeBinaryOp       NodeType = "BinaryOp"
	NodeGrouping       NodeType = "Grouping"
	NodeAssignment     NodeType = "Assignment"
	NodeFunctionCall   NodeType = "FunctionCall"
)

// Node is the shared behaviour of every AST node. Nodes are immutable once
// built: the parser produces the tree and neither back end mutates it.
type Node interface {
	NodeType() NodeType
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (nodeImpl) isNode()              {}

// Statement marks nodes usable in statement position.
type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

// Expression marks nodes that evaluate to a value.
type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

// Program is the root of a parsed unit.

type Program struct {
	nodeImpl

	Statements []Statement `json:"statements"`
}

func NewProgram(statements []Statement) *Program {
	return &Program{nodeImpl: newNodeImpl(NodeProgram), Statements: statements}
}

// Statements

type ExpressionStatement struct {
	nodeImpl
	statementMarker

	Expr Expression `json:"expression"`
}

func NewExpressionStatement(expr Expression) *ExpressionStatement {
	return &ExpressionStatement{nodeImpl: newNodeImpl(NodeExpressionStatement), Expr: expr}
}

type Block struct {
	nodeImpl
	statementMarker

	Statements []Statement `json:"statements"`
}

func NewBlock(statements []Statement) *Block {
	return &Block{nodeImpl: newNodeImpl(NodeBlock), Statements: statements}
}

type VarDeclaration struct {
	nodeImpl
	statementMarker

	Name        lexer.Token `json:"name"`
	Initializer Expression  `json:"initializer,omitempty"` // nil when absent
	Constant    bool        `json:"constant"`
}

func NewVarDeclaration(name lexer.Token, initializer Expression, constant bool) *VarDeclaration {
	return &VarDeclaration{nodeImpl: newNodeImpl(NodeVarDeclaration), Name: name, Initializer: initializer, Constant: constant}
}

type IfStatement struct {
	nodeImpl
	statementMarker

	Condition  Expression `json:"condition"`
	ThenBranch Statement  `json:"thenBranch"`
	ElseBranch Statement  `json:"elseBranch,omitempty"` // nil when absent
}

func NewIfStatement(condition Expression, thenBranch, elseBranch Statement) *IfStatement {
	return &IfStatement{nodeImpl: newNodeImpl(NodeIfStatement), Condition: condition, ThenBranch: thenBranch, ElseBranch: elseBranch}
}

type WhileLoop struct {
	nodeImpl
	statementMarker

	Condition Expression `json:"condition"`
	Body      Statement  `json:"body"`
}

func NewWhileLoop(condition Expression, body Statement) *WhileLoop {
	return &WhileLoop{nodeImpl: newNodeImpl(NodeWhileLoop), Condition: condition, Body: body}
}

type BreakStatement struct {
	nodeImpl
	statementMarker

	Keyword lexer.Token `json:"keyword"`
}

func NewBreakStatement(keyword lexer.Token) *BreakStatement {
	return &BreakStatement{nodeImpl: newNodeImpl(NodeBreakStatement), Keyword: keyword}
}

type FunctionDeclaration struct {
	nodeImpl
	statementMarker

	Name   lexer.Token   `json:"name"`
	Params []lexer.Token `json:"params"`
	Body   *Block        `json:"body"`
}

func NewFunctionDeclaration(name lexer.Token, params []lexer.Token, body *Block) *FunctionDeclaration {
	return &FunctionDeclaration{nodeImpl: newNodeImpl(NodeFunctionDeclaration), Name: name, Params: params, Body: body}
}

type ReturnStatement struct {
	nodeImpl
	statementMarker

	Keyword lexer.Token `json:"keyword"`
	Value   Expression  `json:"value,omitempty"` // nil when absent
}

func NewReturnStatement(keyword lexer.Token, value Expression) *ReturnStatement {
	return &ReturnStatement{nodeImpl: newNodeImpl(NodeReturnStatement), Keyword: keyword, Value: value}
}

// Expressions

type NumberLiteral struct {
	nodeImpl
	expressionMarker

	Token lexer.Token `json:"token"`
	Value float64     `json:"value"`
}

func NewNumberLiteral(token lexer.Token, value float64) *NumberLiteral {
	return &NumberLiteral{nodeImpl: newNodeImpl(NodeNumberLiteral), Token: token, Value: value}
}

type StringLiteral struct {
	nodeImpl
	expressionMarker

	Token lexer.Token `json:"token"`
	Value string      `json:"value"`
}

func NewStringLiteral(token lexer.Token, value string) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral), Token: token, Value: value}
}

type BooleanLiteral struct {
	nodeImpl
	expressionMarker

	Token lexer.Token `json:"token"`
	Value bool        `json:"value"`
}

func NewBooleanLiteral(token lexer.Token, value bool) *BooleanLiteral {
	return &BooleanLiteral{nodeImpl: newNodeImpl(NodeBooleanLiteral), Token: token, Value: value}
}

type ListLiteral struct {
	nodeImpl
	expressionMarker

	Elements []Expression `json:"elements"`
}

func NewListLiteral(elements []Expression) *ListLiteral {
	return &ListLiteral{nodeImpl: newNodeImpl(NodeListLiteral), Elements: elements}
}

type Variable struct {
	nodeImpl
	expressionMarker

	Token lexer.Token `json:"token"` // the identifier token
}

func NewVariable(token lexer.Token) *Variable {
	return &Variable{nodeImpl: newNodeImpl(NodeVariable), Token: token}
}

func (v *Variable) Name() string { return v.Token.Value }

type UnaryOp struct {
	nodeImpl
	expressionMarker

	Operator lexer.Token `json:"operator"`
	Right    Expression  `json:"right"`
}

func NewUnaryOp(operator lexer.Token, right Expression) *UnaryOp {
	return &UnaryOp{nodeImpl: newNodeImpl(NodeUnaryOp), Operator: operator, Right: right}
}

type BinaryOp struct {
	nodeImpl
	expressionMarker

	Left     Expression  `json:"left"`
	Operator lexer.Token `json:"operator"`
	Right    Expression  `json:"right"`
}

func NewBinaryOp(left Expression, operator lexer.Token, right Expression) *BinaryOp {
	return &BinaryOp{nodeImpl: newNodeImpl(NodeBinaryOp), Left: left, Operator: operator, Right: right}
}

type Grouping struct {
	nodeImpl
	expressionMarker

	Expr Expression `json:"expression"`
}

func NewGrouping(expr Expression) *Grouping {
	return &Grouping{nodeImpl: newNodeImpl(NodeGrouping), Expr: expr}
}

type Assignment struct {
	nodeImpl
	expressionMarker

	Name  lexer.Token `json:"name"` // the target identifier token
	Value Expression  `json:"value"`
}

func NewAssignment(name lexer.Token, value Expression) *Assignment {
	return &Assignment{nodeImpl: newNodeImpl(NodeAssignment), Name: name, Value: value}
}

type FunctionCall struct {
	nodeImpl
	expressionMarker

	Callee    Expression   `json:"callee"`
	Paren     lexer.Token  `json:"paren"` // closing ')', for error reporting
	Arguments []Expression `json:"arguments"`
}

func NewFunctionCall(callee Expression, paren lexer.Token, arguments []Expression) *FunctionCall {
	return &FunctionCall{nodeImpl: newNodeImpl(NodeFunctionCall), Callee: callee, Paren: paren, Arguments: arguments}
}

package ast

import "roadman/interpreter-go/pkg/lexer"

// Shorthand constructors, mainly for building trees by hand in tests.
// Tokens carry no source position when built this way.

func ident(name string) lexer.Token {
	return lexer.Token{Type: lexer.IDENTIFIER, Value: name}
}

func op(tt lexer.TokenType, text string) lexer.Token {
	return lexer.Token{Type: tt, Value: text}
}

var opTokens = map[string]lexer.TokenType{
	"+":  lexer.PLUS,
	"-":  lexer.MINUS,
	"*":  lexer.STAR,
	"/":  lexer.SLASH,
	"%":  lexer.PERCENT,
	"!":  lexer.BANG,
	"==": lexer.EQ_EQ,
	"!=": lexer.BANG_EQ,
	"<":  lexer.LESS,
	"<=": lexer.LESS_EQ,
	">":  lexer.GREATER,
	">=": lexer.GREATER_EQ,
	"&&": lexer.AND,
	"||": lexer.OR,
}

func opToken(text string) lexer.Token {
	tt, ok := opTokens[text]
	if !ok {
		panic("ast: unknown operator " + text)
	}
	return op(tt, text)
}

func ID(name string) *Variable {
	return NewVariable(ident(name))
}

func Num(value float64) *NumberLiteral {
	return NewNumberLiteral(lexer.Token{Type: lexer.DIGIT}, value)
}

func Str(value string) *StringLiteral {
	return NewStringLiteral(lexer.Token{Type: lexer.WORD, Value: value}, value)
}

func Bool(value bool) *BooleanLiteral {
	tt := lexer.FALSE
	if value {
		tt = lexer.TRUE
	}
	return NewBooleanLiteral(lexer.Token{Type: tt}, value)
}

func List(elements ...Expression) *ListLiteral {
	return NewListLiteral(elements)
}

func Un(operator string, right Expression) *UnaryOp {
	return NewUnaryOp(opToken(operator), right)
}

func Bin(left Expression, operator string, right Expression) *BinaryOp {
	return NewBinaryOp(left, opToken(operator), right)
}

func Group(expr Expression) *Grouping {
	return NewGrouping(expr)
}

func Assign(name string, value Expression) *Assignment {
	return NewAssignment(ident(name), value)
}

func Call(callee Expression, args ...Expression) *FunctionCall {
	return NewFunctionCall(callee, op(lexer.RPAREN, ")"), args)
}

func ExprStmt(expr Expression) *ExpressionStatement {
	return NewExpressionStatement(expr)
}

func BlockOf(statements ...Statement) *Block {
	return NewBlock(statements)
}

func Gimme(name string, initializer Expression) *VarDeclaration {
	return NewVarDeclaration(ident(name), initializer, false)
}

func Conste(name string, initializer Expression) *VarDeclaration {
	return NewVarDeclaration(ident(name), initializer, true)
}

func If(condition Expression, thenBranch, elseBranch Statement) *IfStatement {
	return NewIfStatement(condition, thenBranch, elseBranch)
}

func While(condition Expression, body Statement) *WhileLoop {
	return NewWhileLoop(condition, body)
}

func Brk() *BreakStatement {
	return NewBreakStatement(op(lexer.STOPIT, "stopit"))
}

func Fam(name string, params []string, body ...Statement) *FunctionDeclaration {
	var tokens []lexer.Token
	for _, p := range params {
		tokens = append(tokens, ident(p))
	}
	return NewFunctionDeclaration(ident(name), tokens, NewBlock(body))
}

func Ret(value Expression) *ReturnStatement {
	return NewReturnStatement(op(lexer.RETURNZ, "returnz"), value)
}

func Prog(statements ...Statement) *Program {
	return NewProgram(statements)
}

package parser

import (
	"strconv"

	"roadman/interpreter-go/pkg/ast"
	"roadman/interpreter-go/pkg/lexer"
)

// Parser builds a Roadman AST from a token sequence by recursive descent.
type Parser struct {
	tokens  []lexer.Token
	current int
	errors  ErrorList
}

// New creates a Parser over a token sequence. The sequence must end with an
// EOF token, as produced by the lexer.
func New(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse parses a whole source unit. When any statement violates the
// grammar the parser records the error, skips to the next statement
// boundary and continues, so one pass reports every statement-level
// problem; it then returns nil and the collected ErrorList.
func Parse(tokens []lexer.Token) (*ast.Program, error) {
	return New(tokens).Parse()
}

// Parse consumes the remaining tokens into a Program.
func (p *Parser) Parse() (*ast.Program, error) {
	var statements []ast.Statement
	for !p.isAtEnd() {
		stmt, err := p.declaration()
		if err != nil {
			p.record(err)
			p.synchronize()
			continue
		}
		statements = append(statements, stmt)
	}
	if err := p.errors.Err(); err != nil {
		return nil, err
	}
	return ast.NewProgram(statements), nil
}

func (p *Parser) record(err error) {
	if pe, ok := err.(*ParseError); ok {
		p.errors = append(p.errors, pe)
		return
	}
	p.errors = append(p.errors, errorAt(p.peek(), err.Error()))
}

// Statements

func (p *Parser) declaration() (ast.Statement, error) {
	switch {
	case p.match(lexer.CONSTE):
		return p.varDeclaration(true)
	case p.match(lexer.GIMME):
		return p.varDeclaration(false)
	case p.match(lexer.FAM):
		return p.functionDeclaration()
	default:
		return p.statement()
	}
}

func (p *Parser) varDeclaration(constant bool) (ast.Statement, error) {
	name, err := p.consume(lexer.IDENTIFIER, "Expect variable name.")
	if err != nil {
		return nil, err
	}
	var initializer ast.Expression
	if p.match(lexer.EQ) {
		initializer, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(lexer.SEMICOLON, "Expect ';' after variable declaration."); err != nil {
		return nil, err
	}
	return ast.NewVarDeclaration(name, initializer, constant), nil
}

func (p *Parser) functionDeclaration() (ast.Statement, error) {
	name, err := p.consume(lexer.IDENTIFIER, "Expect function name.")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.LPAREN, "Expect '(' after function name."); err != nil {
		return nil, err
	}
	var params []lexer.Token
	if !p.check(lexer.RPAREN) {
		for {
			param, err := p.consume(lexer.IDENTIFIER, "Expect parameter name.")
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			if !p.match(lexer.COMMA) {
				break
			}
		}
	}
	if _, err := p.consume(lexer.RPAREN, "Expect ')' after parameters."); err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.LBRACE, "Expect '{' before function body."); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return ast.NewFunctionDeclaration(name, params, ast.NewBlock(body)), nil
}

func (p *Parser) statement() (ast.Statement, error) {
	switch {
	case p.match(lexer.INNIT):
		return p.ifStatement()
	case p.match(lexer.LOOPZ):
		return p.whileStatement()
	case p.match(lexer.RETURNZ):
		return p.returnStatement()
	case p.match(lexer.STOPIT):
		return p.breakStatement()
	case p.match(lexer.LBRACE):
		statements, err := p.block()
		if err != nil {
			return nil, err
		}
		return ast.NewBlock(statements), nil
	default:
		return p.expressionStatement()
	}
}

func (p *Parser) ifStatement() (ast.Statement, error) {
	if _, err := p.consume(lexer.LPAREN, "Expect '(' after 'innit'."); err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.RPAREN, "Expect ')' after if condition."); err != nil {
		return nil, err
	}
	thenBranch, err := p.statement()
	if err != nil {
		return nil, err
	}
	var elseBranch ast.Statement
	if p.match(lexer.ELSEWAY) {
		elseBranch, err = p.statement()
		if err != nil {
			return nil, err
		}
	}
	return ast.NewIfStatement(condition, thenBranch, elseBranch), nil
}

func (p *Parser) whileStatement() (ast.Statement, error) {
	if _, err := p.consume(lexer.LPAREN, "Expect '(' after 'loopz'."); err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.RPAREN, "Expect ')' after loop condition."); err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return ast.NewWhileLoop(condition, body), nil
}

func (p *Parser) returnStatement() (ast.Statement, error) {
	keyword := p.previous()
	var value ast.Expression
	if !p.check(lexer.SEMICOLON) {
		var err error
		value, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(lexer.SEMICOLON, "Expect ';' after return value."); err != nil {
		return nil, err
	}
	return ast.NewReturnStatement(keyword, value), nil
}

func (p *Parser) breakStatement() (ast.Statement, error) {
	keyword := p.previous()
	if _, err := p.consume(lexer.SEMICOLON, "Expect ';' after 'stopit'."); err != nil {
		return nil, err
	}
	return ast.NewBreakStatement(keyword), nil
}

// block parses statements until the closing brace. The opening brace is
// already consumed.
func (p *Parser) block() ([]ast.Statement, error) {
	var statements []ast.Statement
	for !p.check(lexer.RBRACE) && !p.isAtEnd() {
		stmt, err := p.declaration()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}
	if _, err := p.consume(lexer.RBRACE, "Expect '}' after block."); err != nil {
		return nil, err
	}
	return statements, nil
}

func (p *Parser) expressionStatement() (ast.Statement, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.SEMICOLON, "Expect ';' after expression."); err != nil {
		return nil, err
	}
	return ast.NewExpressionStatement(expr), nil
}

// Expressions, lowest to highest binding.

func (p *Parser) expression() (ast.Expression, error) {
	return p.assignment()
}

func (p *Parser) assignment() (ast.Expression, error) {
	expr, err := p.logicalOr()
	if err != nil {
		return nil, err
	}
	if p.match(lexer.EQ) {
		equals := p.previous()
		value, err := p.assignment()
		if err != nil {
			return nil, err
		}
		if target, ok := expr.(*ast.Variable); ok {
			return ast.NewAssignment(target.Token, value), nil
		}
		return nil, errorAt(equals, "Invalid assignment target.")
	}
	return expr, nil
}

func (p *Parser) logicalOr() (ast.Expression, error) {
	return p.binaryLevel(p.logicalAnd, lexer.OR)
}

func (p *Parser) logicalAnd() (ast.Expression, error) {
	return p.binaryLevel(p.equality, lexer.AND)
}

func (p *Parser) equality() (ast.Expression, error) {
	return p.binaryLevel(p.comparison, lexer.BANG_EQ, lexer.EQ_EQ)
}

func (p *Parser) comparison() (ast.Expression, error) {
	return p.binaryLevel(p.term, lexer.GREATER, lexer.GREATER_EQ, lexer.LESS, lexer.LESS_EQ)
}

func (p *Parser) term() (ast.Expression, error) {
	return p.binaryLevel(p.factor, lexer.MINUS, lexer.PLUS)
}

func (p *Parser) factor() (ast.Expression, error) {
	return p.binaryLevel(p.unary, lexer.SLASH, lexer.STAR, lexer.PERCENT)
}

// binaryLevel builds one left-associative precedence level, re-wrapping
// while a matching operator is present.
func (p *Parser) binaryLevel(operand func() (ast.Expression, error), types ...lexer.TokenType) (ast.Expression, error) {
	expr, err := operand()
	if err != nil {
		return nil, err
	}
	for p.match(types...) {
		operator := p.previous()
		right, err := operand()
		if err != nil {
			return nil, err
		}
		expr = ast.NewBinaryOp(expr, operator, right)
	}
	return expr, nil
}

func (p *Parser) unary() (ast.Expression, error) {
	if p.match(lexer.BANG, lexer.MINUS) {
		operator := p.previous()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryOp(operator, right), nil
	}
	return p.call()
}

// call allows any number of trailing argument lists, so the result of a
// call can itself be called: counter()() is a FunctionCall whose callee is
// a FunctionCall.
func (p *Parser) call() (ast.Expression, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}
	for p.match(lexer.LPAREN) {
		expr, err = p.finishCall(expr)
		if err != nil {
			return nil, err
		}
	}
	return expr, nil
}

func (p *Parser) finishCall(callee ast.Expression) (ast.Expression, error) {
	var arguments []ast.Expression
	if !p.check(lexer.RPAREN) {
		for {
			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			arguments = append(arguments, arg)
			if !p.match(lexer.COMMA) {
				break
			}
		}
	}
	paren, err := p.consume(lexer.RPAREN, "Expect ')' after arguments.")
	if err != nil {
		return nil, err
	}
	return ast.NewFunctionCall(callee, paren, arguments), nil
}

func (p *Parser) primary() (ast.Expression, error) {
	switch {
	case p.match(lexer.FALSE):
		return ast.NewBooleanLiteral(p.previous(), false), nil
	case p.match(lexer.TRUE):
		return ast.NewBooleanLiteral(p.previous(), true), nil
	case p.match(lexer.DIGIT):
		token := p.previous()
		value, err := strconv.ParseFloat(token.Value, 64)
		if err != nil {
			return nil, errorAt(token, "Invalid number literal.")
		}
		return ast.NewNumberLiteral(token, value), nil
	case p.match(lexer.WORD):
		token := p.previous()
		return ast.NewStringLiteral(token, token.Value), nil
	case p.match(lexer.IDENTIFIER):
		return ast.NewVariable(p.previous()), nil
	case p.match(lexer.LPAREN):
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(lexer.RPAREN, "Expect ')' after expression."); err != nil {
			return nil, err
		}
		return ast.NewGrouping(expr), nil
	case p.match(lexer.LBRACKET):
		return p.listLiteral()
	default:
		return nil, errorAt(p.peek(), "Expect expression.")
	}
}

func (p *Parser) listLiteral() (ast.Expression, error) {
	var elements []ast.Expression
	if !p.check(lexer.RBRACKET) {
		for {
			elem, err := p.expression()
			if err != nil {
				return nil, err
			}
			elements = append(elements, elem)
			if !p.match(lexer.COMMA) {
				break
			}
		}
	}
	if _, err := p.consume(lexer.RBRACKET, "Expect ']' after list elements."); err != nil {
		return nil, err
	}
	return ast.NewListLiteral(elements), nil
}

// Token helpers

func (p *Parser) match(types ...lexer.TokenType) bool {
	for _, tt := range types {
		if p.check(tt) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(tt lexer.TokenType, message string) (lexer.Token, error) {
	if p.check(tt) {
		return p.advance(), nil
	}
	return lexer.Token{}, errorAt(p.peek(), message)
}

func (p *Parser) check(tt lexer.TokenType) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == tt
}

func (p *Parser) advance() lexer.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == lexer.EOF
}

func (p *Parser) peek() lexer.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() lexer.Token {
	return p.tokens[p.current-1]
}

// synchronize skips tokens until the next statement boundary: just past a
// ';' or just before a statement-starting keyword.
func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Type == lexer.SEMICOLON {
			return
		}
		switch p.peek().Type {
		case lexer.FAM, lexer.INNIT, lexer.LOOPZ, lexer.RETURNZ, lexer.GIMME, lexer.CONSTE:
			return
		}
		p.advance()
	}
}

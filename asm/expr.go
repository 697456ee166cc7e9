package asm

import (
	"strconv"

	"github.com/beevik/go6809/cpu"
)

//
// exprOp
//

type exprOp byte

const (
	// operators in descending order of precedence

	// unary operations
	opUnaryMinus exprOp = iota
	opUnaryPlus
	opBitwiseNEG

	// binary operations
	opMultiply
	opDivide
	opAdd
	opSubtract
	opShiftLeft
	opShiftRight
	opBitwiseAND
	opBitwiseXOR
	opBitwiseOR

	// pseudo-operations (used only during parsing but not stored in nodes)
	opLeftParen
	opRightParen
)

type opdata struct {
	precedence      byte
	binary          bool
	leftAssociative bool
	symbol          string
}

var ops = []opdata{
	// unary and binary operations
	{7, false, false, "-"},  // uminus
	{7, false, false, "+"},  // uplus
	{7, false, false, "~"},  // bitneg
	{6, true, true, "*"},    // multiply
	{6, true, true, "/"},    // divide
	{5, true, true, "+"},    // add
	{5, true, true, "-"},    // subtract
	{4, true, true, "<<"},   // shift_left
	{4, true, true, ">>"},   // shift_right
	{3, true, true, "&"},    // and
	{2, true, true, "^"},    // xor
	{1, true, true, "|"},    // or

	// pseudo-operations
	{0, false, false, ""}, // lparen
	{0, false, false, ""}, // rparen
}

func (op exprOp) isBinary() bool {
	return ops[op].binary
}

func (op exprOp) symbol() string {
	return ops[op].symbol
}

func (op exprOp) isCollapsible() bool {
	return ops[op].precedence > 0
}

// Compare the precedence and associativity of 'op' to 'other'. Return true
// if the shunting yard algorithm should cause an expression node collapse.
func (op exprOp) collapses(other exprOp) bool {
	if ops[op].leftAssociative {
		return ops[op].precedence <= ops[other].precedence
	}
	return ops[op].precedence < ops[other].precedence
}

//
// token
//

type tokentype byte

const (
	tokenNil tokentype = iota
	tokenOp
	tokenValue
	tokenLeftParen
	tokenRightParen
)

func (tt tokentype) isValue() bool {
	return tt == tokenValue
}

type token struct {
	tt   tokentype
	node *node
	op   exprOp
}

//
// exprParser
//

type exprParser struct {
	operandStack  exprStack
	operatorStack opStack
	parenCounter  int
	prevToken     token
	errors        []asmerror
}

// Parse an expression from the line until it is exhausted or a character
// that cannot continue the expression is reached.
func (p *exprParser) parse(line fstring) (e *node, remain fstring, err error) {
	p.errors = nil
	p.prevToken = token{}

	// Process expression using Dijkstra's shunting-yard algorithm
	var out fstring
	for err == nil {

		// Parse the next expression token
		var tok token
		tok, out, err = p.parseToken(line)
		if err != nil {
			break
		}

		// We're done when the token parser returns the nil token
		if tok.tt == tokenNil {
			out = line
			break
		}

		// Handle each possible token type
		switch tok.tt {

		case tokenValue:
			p.operandStack.push(tok.node)

		case tokenOp:
			for err == nil && !p.operatorStack.empty() && tok.op.collapses(p.operatorStack.peek()) {
				err = p.operandStack.collapse(p.operatorStack.pop())
				if err != nil {
					p.addError(line, "expression syntax error")
				}
			}
			p.operatorStack.push(tok.op)

		case tokenLeftParen:
			p.operatorStack.push(opLeftParen)

		case tokenRightParen:
			for err == nil {
				if p.operatorStack.empty() {
					p.addError(line, "mismatched parentheses")
					err = errParse
					break
				}
				op := p.operatorStack.pop()
				if op == opLeftParen {
					break
				}
				err = p.operandStack.collapse(op)
				if err != nil {
					p.addError(line, "expression syntax error")
				}
			}
		}
		line = out
	}

	// Collapse any operators (and operands) remaining on the stack
	for err == nil && !p.operatorStack.empty() {
		err = p.operandStack.collapse(p.operatorStack.pop())
		if err != nil {
			p.addError(line, "expression syntax error")
			err = errParse
		}
	}

	if err == nil {
		e = p.operandStack.peek()
		if e == nil {
			p.addError(line, "empty expression")
			err = errParse
		}
	}
	remain = out
	p.reset()
	return
}

// Attempt to parse the next token from the line.
func (p *exprParser) parseToken(line fstring) (t token, out fstring, err error) {
	if line.isEmpty() {
		t.tt, out = tokenNil, line
		return
	}

	valueExpected := !p.prevToken.tt.isValue() && p.prevToken.tt != tokenRightParen

	switch {

	case line.startsWith(decimal) || line.startsWithChar('$') ||
		line.startsWithChar('%') || line.startsWithChar('\''):
		if !valueExpected {
			p.addError(line, "expression syntax error")
			err = errParse
			return
		}
		t.node, out, err = p.parseNumber(line)
		t.tt = tokenValue

	case line.startsWithChar('"'):
		if !valueExpected {
			p.addError(line, "expression syntax error")
			err = errParse
			return
		}
		t.node, out, err = p.parseText(line)
		t.tt = tokenValue

	case line.startsWithChar('*') && valueExpected:
		t.tt, t.node, out = tokenValue, newPCNode(), line.consume(1)

	case line.startsWithChar('&') && valueExpected:
		rest := line.consume(1)
		if !rest.startsWith(decimal) {
			p.addError(line, "invalid positional variable")
			err = errParse
			return
		}
		var num fstring
		num, out = rest.consumeWhile(decimal)
		v, _ := strconv.ParseInt(num.str, 10, 64)
		t.tt, t.node = tokenValue, newInterpNode(v)

	case line.startsWithChar('('):
		p.parenCounter++
		t.tt, t.op = tokenLeftParen, opLeftParen
		out = line.consume(1)

	case line.startsWithChar(')'):
		if p.parenCounter == 0 {
			t.tt, out = tokenNil, line
			return
		}
		p.parenCounter--
		t.tt, t.op, out = tokenRightParen, opRightParen, line.consume(1)

	case line.startsWith(identifierStartChar):
		if !valueExpected {
			p.addError(line, "expression syntax error")
			err = errParse
			return
		}
		t.tt = tokenValue
		var ident fstring
		ident, out = line.consumeWhile(identifierChar)
		// Register names are reserved words.
		if r, ok := cpu.RegByName(ident.str); ok {
			t.node = newRegNode(r)
		} else {
			t.node = newStringNode(ident.str)
		}

	default:
		for i, o := range ops {
			if o.symbol != "" && line.startsWithString(o.symbol) {
				if o.binary == !valueExpected {
					t.tt, t.op, out = tokenOp, exprOp(i), line.consume(len(o.symbol))
					break
				}
			}
		}
		if t.tt != tokenOp {
			// An unrecognized character ends the expression.
			t.tt, out = tokenNil, line
			return
		}
	}

	p.prevToken = t
	out = out.consumeWhitespace()
	return
}

// Parse a numeric literal. The following formats are allowed:
//
//	[0-9]+          decimal integer
//	[0-9]+.[0-9]+   decimal float
//	$[0-9a-fA-F]+   hexadecimal integer
//	0x[0-9a-fA-F]+  hexadecimal integer
//	%[01]+          binary integer
//	0b[01]+         binary integer
//	'c              character literal (closing quote optional)
//
// A decimal integer immediately followed by B or F is a back or forward
// reference to a local label.
func (p *exprParser) parseNumber(line fstring) (n *node, remain fstring, err error) {
	// Select decimal, hexadecimal or binary depending on the prefix
	base, fn := 10, decimal
	switch {
	case line.startsWithChar('\''):
		line = line.consume(1)
		if line.isEmpty() {
			p.addError(line, "invalid character literal")
			return nil, line, errParse
		}
		n, remain = newIntNode(int64(line.str[0])), line.consume(1)
		if remain.startsWithChar('\'') {
			remain = remain.consume(1)
		}
		return
	case line.startsWithChar('$'):
		line = line.consume(1)
		base, fn = 16, hexadecimal
	case line.startsWithString("0x") || line.startsWithString("0X"):
		line = line.consume(2)
		base, fn = 16, hexadecimal
	case line.startsWithChar('%'):
		line = line.consume(1)
		base, fn = 2, binarynum
	case (line.startsWithString("0b") || line.startsWithString("0B")) &&
		len(line.str) > 2 && binarynum(line.str[2]):
		line = line.consume(2)
		base, fn = 2, binarynum
	}

	numstr, remain := line.consumeWhile(fn)
	if numstr.isEmpty() {
		p.addError(line, "failed to parse number")
		return nil, remain, errParse
	}

	if base == 10 {
		// Local label reference?
		if remain.startsWithChar('B') || remain.startsWithChar('b') ||
			remain.startsWithChar('F') || remain.startsWithChar('f') {
			next := remain.consume(1)
			if next.isEmpty() || !identifierChar(next.str[0]) {
				v, _ := strconv.ParseInt(numstr.str, 10, 64)
				switch remain.str[0] {
				case 'B', 'b':
					n = newBackrefNode(v)
				default:
					n = newFwdrefNode(v)
				}
				return n, next, nil
			}
		}

		// Float?
		if remain.startsWithChar('.') {
			frac, rest := remain.consume(1).consumeWhile(decimal)
			if !frac.isEmpty() {
				v, converr := strconv.ParseFloat(numstr.str+"."+frac.str, 64)
				if converr != nil {
					p.addError(numstr, "failed to parse number")
					return nil, rest, errParse
				}
				return newFloatNode(v), rest, nil
			}
		}
	}

	v, converr := strconv.ParseInt(numstr.str, base, 64)
	if converr != nil {
		p.addError(numstr, "failed to parse number")
		return nil, remain, errParse
	}
	return newIntNode(v), remain, nil
}

// Parse a delimited string literal into a text node. An &N sequence inside
// the string becomes an interpolation fragment.
func (p *exprParser) parseText(line fstring) (n *node, remain fstring, err error) {
	q := line.str[0]
	body := line.consume(1)

	i := body.scanUntil(func(c byte) bool { return c == q })
	if i == len(body.str) {
		p.addError(line, "unterminated string")
		return nil, body.consume(i), errParse
	}
	content, remain := body.trunc(i), body.consume(i+1)

	var frags []*node
	s := content.str
	for len(s) > 0 {
		amp := -1
		for j := 0; j+1 < len(s); j++ {
			if s[j] == '&' && decimal(s[j+1]) {
				amp = j
				break
			}
		}
		if amp < 0 {
			frags = append(frags, newStringNode(s))
			break
		}
		if amp > 0 {
			frags = append(frags, newStringNode(s[:amp]))
		}
		j := amp + 1
		for j < len(s) && decimal(s[j]) {
			j++
		}
		v, _ := strconv.ParseInt(s[amp+1:j], 10, 64)
		frags = append(frags, newInterpNode(v))
		s = s[j:]
	}

	return newTextNode(frags), remain, nil
}

func (p *exprParser) addError(line fstring, msg string) {
	p.errors = append(p.errors, asmerror{line: line, kind: errSyntax, msg: msg})
}

func (p *exprParser) reset() {
	p.operandStack.data, p.operatorStack.data = nil, nil
	p.parenCounter = 0
}

//
// exprStack
//

type exprStack struct {
	data []*node
}

func (s *exprStack) empty() bool {
	return len(s.data) == 0
}

func (s *exprStack) push(e *node) {
	s.data = append(s.data, e)
}

func (s *exprStack) pop() *node {
	l := len(s.data)
	e := s.data[l-1]
	s.data = s.data[:l-1]
	return e
}

func (s *exprStack) peek() *node {
	if len(s.data) == 0 {
		return nil
	}
	return s.data[len(s.data)-1]
}

// Collapse one or more expression nodes on the top of the stack into a
// combined operator node, and push the combined node back onto the stack.
func (s *exprStack) collapse(op exprOp) error {
	switch {
	case !op.isCollapsible():
		return errParse
	case op.isBinary():
		if len(s.data) < 2 {
			return errParse
		}
		right, left := s.pop(), s.pop()
		s.push(newOperNode(op, left, right))
	default:
		if s.empty() {
			return errParse
		}
		s.push(newOperNode(op, s.pop()))
	}
	return nil
}

//
// opStack
//

type opStack struct {
	data []exprOp
}

func (s *opStack) push(op exprOp) {
	s.data = append(s.data, op)
}

func (s *opStack) pop() exprOp {
	op := s.data[len(s.data)-1]
	s.data = s.data[0 : len(s.data)-1]
	return op
}

func (s *opStack) empty() bool {
	return len(s.data) == 0
}

func (s *opStack) peek() exprOp {
	return s.data[len(s.data)-1]
}

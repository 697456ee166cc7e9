// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"bufio"
	"strconv"
	"strings"

	"github.com/beevik/go6809/cpu"
)

// Parse all lines of a source file into a program. Parsing never fails as
// a whole; lines that cannot be parsed carry an error message, which the
// driver reports on every pass.
func parseProgram(scanner *bufio.Scanner, filename string, fileIndex int) *program {
	p := &program{name: filename}
	ep := &exprParser{}
	row := 1
	for scanner.Scan() {
		line := newFstring(fileIndex, row, scanner.Text())
		p.lines = append(p.lines, parseLine(ep, line))
		row++
	}
	return p
}

// Parse a single source line into its label, opcode and argument fields.
func parseLine(ep *exprParser, line fstring) *progLine {
	l := &progLine{text: line}

	stripped := line.stripTrailingComment()
	if stripped.isEmpty() || stripped.startsWithChar('*') {
		return l
	}

	// A label starts in the first column. It is either a bare number (a
	// local label) or an identifier, optionally terminated by a colon.
	rest := stripped
	if !rest.startsWith(whitespace) {
		switch {
		case rest.startsWith(decimal):
			var num fstring
			num, rest = rest.consumeWhile(decimal)
			v, _ := strconv.ParseInt(num.str, 10, 64)
			l.label = newIntNode(v)
		case rest.startsWith(labelStartChar):
			var name fstring
			name, rest = rest.consumeWhile(labelChar)
			l.label = identNode(name.str)
		default:
			l.errmsg = "invalid label"
			return l
		}
		if rest.startsWithChar(':') {
			rest = rest.consume(1)
		}
		if !rest.isEmpty() && !rest.startsWith(whitespace) {
			l.errmsg = "invalid label"
			return l
		}
	}

	rest = rest.consumeWhitespace()
	if rest.isEmpty() {
		return l
	}

	var opcode fstring
	opcode, rest = rest.consumeWhile(wordChar)
	l.opcode = identNode(opcode.str)

	rest = rest.consumeWhitespace()
	if !rest.isEmpty() {
		args, err := parseArgs(ep, rest)
		if err != nil {
			l.errmsg = err.Error()
			if len(ep.errors) > 0 {
				l.errmsg = ep.errors[0].msg
			}
			ep.errors = nil
			return l
		}
		l.args = args
	}
	return l
}

// identNode converts an identifier that may contain &N interpolations into
// a node: a plain string node in the common case, or an identifier node
// built from fragments.
func identNode(s string) *node {
	var frags []*node
	rest := s
	for {
		i := strings.IndexByte(rest, '&')
		if i < 0 || i+1 >= len(rest) || !decimal(rest[i+1]) {
			break
		}
		if i > 0 {
			frags = append(frags, newStringNode(rest[:i]))
		}
		j := i + 1
		for j < len(rest) && decimal(rest[j]) {
			j++
		}
		v, _ := strconv.ParseInt(rest[i+1:j], 10, 64)
		frags = append(frags, newInterpNode(v))
		rest = rest[j:]
	}
	if frags == nil {
		return newStringNode(s)
	}
	if rest != "" {
		frags = append(frags, newStringNode(rest))
	}
	return newIDNode(frags)
}

// Parse a comma-separated argument list into an array node. Commas inside
// strings, parentheses and brackets do not split.
func parseArgs(ep *exprParser, line fstring) (*node, error) {
	var args []*node
	remain := line
	for {
		var piece fstring
		piece, remain = remain.consumeUntilUnnestedChar(',')
		arg, err := parseArg(ep, trimWhitespace(piece))
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if remain.isEmpty() {
			break
		}
		remain = remain.consume(1) // skip comma
	}
	return newArrayNode(args), nil
}

// Parse a single argument: an empty slot, a register form with optional
// increment/decrement modifiers, an indirect [..] group, or an expression,
// any of which may carry a leading size hint or immediate marker.
func parseArg(ep *exprParser, line fstring) (*node, error) {
	if line.isEmpty() {
		return newEmptyNode(), nil
	}

	attr := attrNone
	switch {
	case line.startsWithChar('#'):
		attr = attrImmediate
		line = line.consume(1).consumeWhitespace()
	case line.startsWithString("<<"):
		attr = attr5Bit
		line = line.consume(2).consumeWhitespace()
	case line.startsWithChar('<'):
		attr = attr8Bit
		line = line.consume(1).consumeWhitespace()
	case line.startsWithChar('>'):
		attr = attr16Bit
		line = line.consume(1).consumeWhitespace()
	}

	if line.isEmpty() {
		return nil, errParse
	}

	// Indirect group: the entire argument wrapped in brackets becomes a
	// nested array.
	if line.startsWithChar('[') {
		if line.str[len(line.str)-1] != ']' {
			ep.addError(line, "unterminated indirect group")
			return nil, errParse
		}
		inner, err := parseArgs(ep, trimWhitespace(line.consume(1).trunc(len(line.str)-2)))
		if err != nil {
			return nil, err
		}
		return setAttrIf(inner, attr), nil
	}

	// Register forms with index modifiers.
	if r, modAttr, ok := parseRegArg(line); ok {
		n := newRegNode(r)
		n.attr = modAttr
		return setAttrIf(n, attr), nil
	}

	e, remain, err := ep.parse(line)
	if err != nil {
		return nil, err
	}
	if !remain.consumeWhitespace().isEmpty() {
		ep.addError(remain, "invalid expression")
		return nil, errParse
	}
	return setAttrIf(e, attr), nil
}

// parseRegArg recognizes an argument that is exactly a register name,
// optionally decorated with the indexed-mode auto increment/decrement
// syntax: R+ R++ -R --R.
func parseRegArg(line fstring) (r cpu.RegID, attr nodeAttr, ok bool) {
	s := line.str
	switch {
	case strings.HasPrefix(s, "--"):
		attr, s = attrPreDec2, s[2:]
	case strings.HasPrefix(s, "-"):
		attr, s = attrPreDec, s[1:]
	}
	if attr == attrNone {
		switch {
		case strings.HasSuffix(s, "++"):
			attr, s = attrPostInc2, s[:len(s)-2]
		case strings.HasSuffix(s, "+"):
			attr, s = attrPostInc, s[:len(s)-1]
		}
	}
	r, found := cpu.RegByName(s)
	if !found {
		return cpu.RegNone, attrNone, false
	}
	return r, attr, true
}

func trimWhitespace(l fstring) fstring {
	n := len(l.str)
	for n > 0 && whitespace(l.str[n-1]) {
		n--
	}
	return l.trunc(n).consumeWhitespace()
}

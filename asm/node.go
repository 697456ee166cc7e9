// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"fmt"
	"strings"

	"github.com/beevik/go6809/cpu"
)

// A nodeType tags the variant held by a node.
type nodeType byte

const (
	nodeUndef   nodeType = iota // unresolved value
	nodeEmpty                   // explicit empty argument slot
	nodeInt                     // integer literal or evaluated integer
	nodeFloat                   // float literal before coercion
	nodeReg                     // register reference
	nodeString                  // identifier name or evaluated string
	nodeInterp                  // &N macro argument interpolation
	nodePC                      // '*', the current program counter
	nodeBackref                 // NB, nearest preceding local label N
	nodeFwdref                  // NF, nearest following local label N
	nodeID                      // identifier assembled from fragments
	nodeText                    // delimited string assembled from fragments
	nodeOper                    // operator subtree
	nodeArray                   // argument list
)

// A nodeAttr is a per-node annotation orthogonal to the variant: a size
// hint, the immediate marker, or an index-register modifier. A node carries
// at most one.
type nodeAttr byte

const (
	attrNone nodeAttr = iota
	attr5Bit          // <<
	attr8Bit          // <
	attr16Bit         // >
	attrImmediate     // #
	attrPostInc       // ,R+
	attrPostInc2      // ,R++
	attrPreDec        // ,-R
	attrPreDec2       // ,--R
	attrPostDec       // ,R-
)

// A node is one element of an argument tree. Nodes are never mutated once
// published; sharing children between trees is safe, and a nil *node reads
// as the undefined variant.
type node struct {
	typ      nodeType
	attr     nodeAttr
	ival     int64
	fval     float64
	reg      cpu.RegID
	str      string
	op       exprOp
	children []*node
}

//
// constructors
//

func newEmptyNode() *node {
	return &node{typ: nodeEmpty}
}

func newIntNode(v int64) *node {
	return &node{typ: nodeInt, ival: v}
}

func newFloatNode(v float64) *node {
	return &node{typ: nodeFloat, fval: v}
}

func newRegNode(r cpu.RegID) *node {
	return &node{typ: nodeReg, reg: r}
}

func newStringNode(s string) *node {
	return &node{typ: nodeString, str: s}
}

func newInterpNode(index int64) *node {
	return &node{typ: nodeInterp, ival: index}
}

func newPCNode() *node {
	return &node{typ: nodePC}
}

func newBackrefNode(v int64) *node {
	return &node{typ: nodeBackref, ival: v}
}

func newFwdrefNode(v int64) *node {
	return &node{typ: nodeFwdref, ival: v}
}

func newIDNode(frags []*node) *node {
	return &node{typ: nodeID, children: frags}
}

func newTextNode(frags []*node) *node {
	return &node{typ: nodeText, children: frags}
}

func newOperNode(op exprOp, args ...*node) *node {
	return &node{typ: nodeOper, op: op, children: args}
}

func newArrayNode(args []*node) *node {
	return &node{typ: nodeArray, children: args}
}

//
// utility functions
//

// typeOf reads a node's variant, treating nil as the undefined variant.
func typeOf(n *node) nodeType {
	if n == nil {
		return nodeUndef
	}
	return n.typ
}

func attrOf(n *node) nodeAttr {
	if n == nil {
		return attrNone
	}
	return n.attr
}

func arrayCount(n *node) int {
	if typeOf(n) != nodeArray {
		return 0
	}
	return len(n.children)
}

func arrayOf(n *node) []*node {
	if typeOf(n) != nodeArray {
		return nil
	}
	return n.children
}

func argAttr(args *node, index int) nodeAttr {
	a := arrayOf(args)
	if index >= len(a) {
		return attrNone
	}
	return attrOf(a[index])
}

func setAttr(n *node, attr nodeAttr) *node {
	if n != nil {
		n.attr = attr
	}
	return n
}

// setAttrIf overwrites a node's attribute, except that register modifiers
// survive an overwrite with attrNone.
func setAttrIf(n *node, attr nodeAttr) *node {
	if n == nil {
		return nil
	}
	if attr != attrNone {
		n.attr = attr
		return n
	}
	switch n.attr {
	case attrPostInc, attrPostInc2, attrPreDec, attrPreDec2, attrPostDec:
	default:
		n.attr = attr
	}
	return n
}

// withAttr returns n annotated with attr, copying the node when annotation
// would otherwise mutate a shared instance.
func withAttr(n *node, attr nodeAttr) *node {
	if n == nil || attr == attrNone || n.attr == attr {
		return n
	}
	c := *n
	return setAttrIf(&c, attr)
}

// String renders the node in source-like form. Undefined children render
// as "?".
func (n *node) String() string {
	if n == nil {
		return "?"
	}

	var sb strings.Builder
	switch n.attr {
	case attr5Bit:
		sb.WriteString("<<")
	case attr8Bit:
		sb.WriteString("<")
	case attr16Bit:
		sb.WriteString(">")
	case attrImmediate:
		sb.WriteString("#")
	case attrPreDec:
		sb.WriteString("-")
	case attrPreDec2:
		sb.WriteString("--")
	}

	switch n.typ {
	case nodeEmpty:
	case nodeInt:
		sb.WriteString(fmt.Sprintf("%d", n.ival))
	case nodeFloat:
		sb.WriteString(fmt.Sprintf("%g", n.fval))
	case nodeReg:
		sb.WriteString(n.reg.Name())
	case nodeString:
		sb.WriteString(n.str)
	case nodeInterp:
		sb.WriteString(fmt.Sprintf("&%d", n.ival))
	case nodePC:
		sb.WriteString("*")
	case nodeBackref:
		sb.WriteString(fmt.Sprintf("%dB", n.ival))
	case nodeFwdref:
		sb.WriteString(fmt.Sprintf("%dF", n.ival))
	case nodeID:
		for _, c := range n.children {
			sb.WriteString(c.String())
		}
	case nodeText:
		sb.WriteString("\"")
		for _, c := range n.children {
			sb.WriteString(c.String())
		}
		sb.WriteString("\"")
	case nodeOper:
		sb.WriteString("(")
		switch len(n.children) {
		case 1:
			sb.WriteString(n.op.symbol())
			sb.WriteString(n.children[0].String())
		case 2:
			sb.WriteString(n.children[0].String())
			sb.WriteString(n.op.symbol())
			sb.WriteString(n.children[1].String())
		}
		sb.WriteString(")")
	case nodeArray:
		sb.WriteString("[")
		for i, c := range n.children {
			if i > 0 {
				sb.WriteString(",")
			}
			sb.WriteString(c.String())
		}
		sb.WriteString("]")
	}

	switch n.attr {
	case attrPostInc:
		sb.WriteString("+")
	case attrPostInc2:
		sb.WriteString("++")
	case attrPostDec:
		sb.WriteString("-")
	}

	return sb.String()
}

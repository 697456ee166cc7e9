// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"github.com/beevik/go6809/cpu"
)

// Instruction encoders, one per 6809 addressing family. Each receives the
// opcode record and the line's evaluated argument array and emits opcode,
// post-byte and operand bytes into the current section. Undefined operands
// emit maximum-size placeholders so size estimates shrink monotonically
// across passes.

// dispatch selects the encoder for an instruction line. The immediate
// check consults the raw argument (the '#' seen by the parser) as well as
// the evaluated one, so the marker survives both unresolved symbols and
// macro-argument interpolation.
func (a *assembler) dispatch(op *cpu.Opcode, args, rawArgs *node) {
	argsFloatToInt(args)
	immediate := argAttr(args, 0) == attrImmediate || argAttr(rawArgs, 0) == attrImmediate
	switch {
	case op.Type == cpu.Inherent:
		a.instrInherent(op, args)
	case op.Type&(cpu.Imm8|cpu.Imm16) != 0 && immediate:
		a.instrImmediate(op, args)
	case op.Type&cpu.Mem != 0:
		a.instrAddress(op, args)
	case op.Type&cpu.Rel8 != 0:
		a.instrRel(op, args, false)
	case op.Type&cpu.Rel16 != 0:
		a.instrRel(op, args, true)
	case op.Type&cpu.StackS != 0:
		a.instrStack(op, args, cpu.RegS)
	case op.Type&cpu.StackU != 0:
		a.instrStack(op, args, cpu.RegU)
	case op.Type&cpu.Pair != 0:
		a.instrPair(op, args)
	default:
		a.addError(a.line, "invalid addressing mode")
	}
}

func (a *assembler) instrInherent(op *cpu.Opcode, args *node) {
	if arrayCount(args) != 0 {
		a.addError(a.line, "unexpected argument")
		return
	}
	a.emitOp(op.Immediate)
}

func (a *assembler) instrImmediate(op *cpu.Opcode, args *node) {
	if arrayCount(args) != 1 {
		a.addError(a.line, "invalid immediate operand")
		return
	}
	wide := op.Type&cpu.Imm16 != 0
	a.emitOp(op.Immediate)
	arg := arrayOf(args)[0]
	switch typeOf(arg) {
	case nodeUndef:
		if wide {
			a.emitPad(2)
		} else {
			a.emitPad(1)
		}
	case nodeInt:
		if wide {
			a.emitImm16(arg.ival)
		} else {
			a.emitImm8(arg.ival)
		}
	default:
		a.addError(a.line, "invalid immediate operand")
	}
}

// instrAddress encodes the memory forms: indexed when the operand names an
// index register or is an indirect group, otherwise direct when the target
// lies in the direct page (or an 8-bit hint forces it), otherwise
// extended.
func (a *assembler) instrAddress(op *cpu.Opcode, args *node) {
	arga := arrayOf(args)
	switch len(arga) {
	case 2:
		a.instrIndexed(op, arga[0], arga[1], false)
		return
	case 1:
	default:
		a.addError(a.line, "invalid addressing mode")
		return
	}

	arg := arga[0]
	if typeOf(arg) == nodeArray {
		inner := arrayOf(arg)
		switch len(inner) {
		case 1:
			a.instrIndirectExtended(op, inner[0])
		case 2:
			a.instrIndexed(op, inner[0], inner[1], true)
		default:
			a.addError(a.line, "invalid indirect operand")
		}
		return
	}
	if typeOf(arg) == nodeReg {
		a.addError(a.line, "invalid addressing mode")
		return
	}
	if attrOf(arg) == attrImmediate {
		a.addError(a.line, "invalid addressing mode")
		return
	}

	if typeOf(arg) == nodeUndef {
		if op.Type&cpu.Extended == 0 {
			a.addError(a.line, "invalid addressing mode")
			return
		}
		a.emitOp(op.Extended)
		a.emitPad(2)
		return
	}
	if typeOf(arg) != nodeInt {
		a.addError(a.line, "invalid operand")
		return
	}

	v := arg.ival
	direct := false
	if op.Type&cpu.Direct != 0 {
		switch attrOf(arg) {
		case attr8Bit:
			direct = true
		case attr16Bit:
			direct = false
		default:
			direct = a.cur.dp >= 0 && int((v>>8)&0xff) == a.cur.dp
		}
	}

	switch {
	case direct:
		a.emitOp(op.Direct)
		a.emitImm8(v)
	case op.Type&cpu.Extended != 0:
		a.emitOp(op.Extended)
		a.emitImm16(v)
	default:
		a.addError(a.line, "invalid addressing mode")
	}
}

// instrIndirectExtended encodes the [expr] form: extended indirect.
func (a *assembler) instrIndirectExtended(op *cpu.Opcode, arg *node) {
	if op.Type&cpu.Indexed == 0 {
		a.addError(a.line, "invalid addressing mode")
		return
	}
	a.emitOp(op.Indexed)
	a.emitByte(0x9f)
	switch typeOf(arg) {
	case nodeUndef:
		a.emitPad(2)
	case nodeInt:
		a.emitImm16(arg.ival)
	default:
		a.addError(a.line, "invalid indirect operand")
	}
}

func (a *assembler) instrIndexed(op *cpu.Opcode, offset, reg *node, indirect bool) {
	if op.Type&cpu.Indexed == 0 {
		a.addError(a.line, "invalid addressing mode")
		return
	}
	if typeOf(reg) != nodeReg {
		a.addError(a.line, "invalid index register")
		return
	}
	a.emitOp(op.Indexed)
	a.indexedOperand(offset, reg, indirect)
}

// indexedOperand emits the indexed-mode post-byte and any offset bytes.
func (a *assembler) indexedOperand(offset, reg *node, indirect bool) {
	var ind byte
	if indirect {
		ind = 0x10
	}

	r := reg.reg
	if r == cpu.RegPCR || r == cpu.RegPC {
		a.pcOperand(offset, r == cpu.RegPCR, ind)
		return
	}

	rr, ok := r.IndexBits()
	if !ok {
		a.addError(a.line, "invalid index register")
		return
	}

	// Auto increment/decrement forms take no offset.
	switch attrOf(reg) {
	case attrPostInc:
		if indirect {
			a.addError(a.line, "indirect single increment not available")
			return
		}
		a.emitByte(0x80 | rr)
		return
	case attrPostInc2:
		a.emitByte(0x81 | rr | ind)
		return
	case attrPreDec:
		if indirect {
			a.addError(a.line, "indirect single decrement not available")
			return
		}
		a.emitByte(0x82 | rr)
		return
	case attrPreDec2:
		a.emitByte(0x83 | rr | ind)
		return
	}

	switch typeOf(offset) {
	case nodeEmpty:
		a.emitByte(0x84 | rr | ind)

	case nodeUndef:
		a.emitByte(0x89 | rr | ind)
		a.emitPad(2)

	case nodeReg:
		switch offset.reg {
		case cpu.RegA:
			a.emitByte(0x86 | rr | ind)
		case cpu.RegB:
			a.emitByte(0x85 | rr | ind)
		case cpu.RegD:
			a.emitByte(0x8b | rr | ind)
		default:
			a.addError(a.line, "invalid accumulator offset")
		}

	case nodeInt:
		v := offset.ival
		size := 0
		switch attrOf(offset) {
		case attr5Bit:
			if !indirect && v >= -16 && v <= 15 {
				size = 5
			} else {
				size = 8
			}
		case attr8Bit:
			size = 8
		case attr16Bit:
			size = 16
		default:
			switch {
			case v == 0:
				a.emitByte(0x84 | rr | ind)
				return
			case !indirect && v >= -16 && v <= 15:
				size = 5
			case v >= -128 && v <= 127:
				size = 8
			default:
				size = 16
			}
		}
		switch size {
		case 5:
			a.emitByte(rr | byte(v&0x1f))
		case 8:
			if v < -128 || v > 127 {
				a.addErrorKind(a.line, errOutOfRange, "offset out of range")
			}
			a.emitByte(0x88 | rr | ind)
			a.emitImm8(v)
		case 16:
			a.emitByte(0x89 | rr | ind)
			a.emitImm16(v)
		}

	default:
		a.addError(a.line, "invalid indexed offset")
	}
}

// pcOperand encodes the n,PC and n,PCR forms. With PCR the value is a
// target address and the emitted offset is computed against the address
// following the operand; with PC it is a literal offset.
func (a *assembler) pcOperand(offset *node, relative bool, ind byte) {
	undef := typeOf(offset) == nodeUndef
	if !undef && typeOf(offset) != nodeInt {
		a.addError(a.line, "invalid indexed offset")
		return
	}

	wide := false
	switch {
	case undef:
		wide = true
	case attrOf(offset) == attr8Bit:
		wide = false
	case attrOf(offset) == attr16Bit:
		wide = true
	case relative:
		// The 8-bit form occupies a post-byte and one offset byte.
		off := int(offset.ival) - (a.cur.pc + 2)
		wide = off < -128 || off > 127
	default:
		wide = offset.ival < -128 || offset.ival > 127
	}

	switch {
	case wide:
		a.emitByte(0x8d | ind)
		switch {
		case undef:
			a.emitPad(2)
		case relative:
			a.emitRel16(offset.ival)
		default:
			a.emitImm16(offset.ival)
		}
	default:
		a.emitByte(0x8c | ind)
		if relative {
			a.emitRel8(offset.ival)
		} else {
			a.emitImm8(offset.ival)
		}
	}
}

func (a *assembler) instrRel(op *cpu.Opcode, args *node, wide bool) {
	if arrayCount(args) != 1 {
		a.addError(a.line, "branch requires one argument")
		return
	}
	a.emitOp(op.Immediate)
	arg := arrayOf(args)[0]
	switch typeOf(arg) {
	case nodeUndef:
		if wide {
			a.emitPad(2)
		} else {
			a.emitPad(1)
		}
	case nodeInt:
		if wide {
			a.emitRel16(arg.ival)
		} else {
			a.emitRel8(arg.ival)
		}
	default:
		a.addError(a.line, "invalid branch target")
	}
}

// instrStack encodes PSHS/PSHU/PULS/PULU. The register set may arrive as
// comma-separated register arguments or as registers joined with '|'; both
// flatten into the same push/pull mask.
func (a *assembler) instrStack(op *cpu.Opcode, args *node, sp cpu.RegID) {
	arga := arrayOf(args)
	if len(arga) == 0 {
		a.addError(a.line, "register list required")
		return
	}

	var mask byte
	var collect func(n *node) bool
	collect = func(n *node) bool {
		switch typeOf(n) {
		case nodeReg:
			m, ok := n.reg.StackMask(sp)
			if !ok {
				a.addError(a.line, "invalid register '%s' in register list", n.reg.Name())
				return false
			}
			mask |= m
			return true
		case nodeOper:
			if n.op != opBitwiseOR {
				a.addError(a.line, "invalid register list")
				return false
			}
			for _, c := range n.children {
				if !collect(c) {
					return false
				}
			}
			return true
		}
		a.addError(a.line, "invalid register list")
		return false
	}

	for _, c := range arga {
		if !collect(c) {
			return
		}
	}
	a.emitOp(op.Immediate)
	a.emitByte(mask)
}

func (a *assembler) instrPair(op *cpu.Opcode, args *node) {
	arga := arrayOf(args)
	if len(arga) != 2 || typeOf(arga[0]) != nodeReg || typeOf(arga[1]) != nodeReg {
		a.addError(a.line, "register pair required")
		return
	}
	hi, ok0 := arga[0].reg.TransferNibble()
	lo, ok1 := arga[1].reg.TransferNibble()
	if !ok0 || !ok1 {
		a.addError(a.line, "invalid register in pair")
		return
	}
	a.emitOp(op.Immediate)
	a.emitByte(hi<<4 | lo)
}

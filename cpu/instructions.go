// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cpu carries metadata describing the Motorola 6809: its register
// set and its complete instruction table, including the $10- and
// $11-prefixed pages. The assembler consumes this table to select
// addressing modes and emit machine code.
package cpu

import "strings"

// Type is a bit set describing the operand forms an instruction accepts.
type Type uint16

// Instruction form bits.
const (
	Inherent Type = 1 << iota // no operand
	Imm8                      // 8-bit immediate
	Imm16                     // 16-bit immediate
	Direct                    // direct-page addressing
	Indexed                   // indexed post-byte addressing
	Extended                  // 16-bit absolute addressing
	Rel8                      // 8-bit PC-relative branch
	Rel16                     // 16-bit PC-relative branch
	StackS                    // PSHS/PULS register set
	StackU                    // PSHU/PULU register set
	Pair                      // TFR/EXG register pair
)

// Mem covers the three memory-operand forms dispatched together.
const Mem = Direct | Indexed | Extended

// An Opcode describes one 6809 mnemonic. Opcode values above $FF carry a
// $10 or $11 page prefix in the high byte. The Immediate field doubles as
// the opcode for inherent, relative, stack and pair instructions, which
// have exactly one form.
type Opcode struct {
	Name      string
	Type      Type
	Immediate uint16
	Direct    uint16
	Indexed   uint16
	Extended  uint16
}

// Len returns the number of bytes occupied by opcode value op (1, or 2
// when page-prefixed).
func Len(op uint16) int {
	if op > 0xff {
		return 2
	}
	return 1
}

var opcodeTable = []Opcode{
	{"ABX", Inherent, 0x3a, 0, 0, 0},
	{"ADCA", Imm8 | Mem, 0x89, 0x99, 0xa9, 0xb9},
	{"ADCB", Imm8 | Mem, 0xc9, 0xd9, 0xe9, 0xf9},
	{"ADDA", Imm8 | Mem, 0x8b, 0x9b, 0xab, 0xbb},
	{"ADDB", Imm8 | Mem, 0xcb, 0xdb, 0xeb, 0xfb},
	{"ADDD", Imm16 | Mem, 0xc3, 0xd3, 0xe3, 0xf3},
	{"ANDA", Imm8 | Mem, 0x84, 0x94, 0xa4, 0xb4},
	{"ANDB", Imm8 | Mem, 0xc4, 0xd4, 0xe4, 0xf4},
	{"ANDCC", Imm8, 0x1c, 0, 0, 0},
	{"ASL", Mem, 0, 0x08, 0x68, 0x78},
	{"ASLA", Inherent, 0x48, 0, 0, 0},
	{"ASLB", Inherent, 0x58, 0, 0, 0},
	{"ASR", Mem, 0, 0x07, 0x67, 0x77},
	{"ASRA", Inherent, 0x47, 0, 0, 0},
	{"ASRB", Inherent, 0x57, 0, 0, 0},
	{"BCC", Rel8, 0x24, 0, 0, 0},
	{"BCS", Rel8, 0x25, 0, 0, 0},
	{"BEQ", Rel8, 0x27, 0, 0, 0},
	{"BGE", Rel8, 0x2c, 0, 0, 0},
	{"BGT", Rel8, 0x2e, 0, 0, 0},
	{"BHI", Rel8, 0x22, 0, 0, 0},
	{"BITA", Imm8 | Mem, 0x85, 0x95, 0xa5, 0xb5},
	{"BITB", Imm8 | Mem, 0xc5, 0xd5, 0xe5, 0xf5},
	{"BLE", Rel8, 0x2f, 0, 0, 0},
	{"BLS", Rel8, 0x23, 0, 0, 0},
	{"BLT", Rel8, 0x2d, 0, 0, 0},
	{"BMI", Rel8, 0x2b, 0, 0, 0},
	{"BNE", Rel8, 0x26, 0, 0, 0},
	{"BPL", Rel8, 0x2a, 0, 0, 0},
	{"BRA", Rel8, 0x20, 0, 0, 0},
	{"BRN", Rel8, 0x21, 0, 0, 0},
	{"BSR", Rel8, 0x8d, 0, 0, 0},
	{"BVC", Rel8, 0x28, 0, 0, 0},
	{"BVS", Rel8, 0x29, 0, 0, 0},
	{"CLR", Mem, 0, 0x0f, 0x6f, 0x7f},
	{"CLRA", Inherent, 0x4f, 0, 0, 0},
	{"CLRB", Inherent, 0x5f, 0, 0, 0},
	{"CMPA", Imm8 | Mem, 0x81, 0x91, 0xa1, 0xb1},
	{"CMPB", Imm8 | Mem, 0xc1, 0xd1, 0xe1, 0xf1},
	{"CMPD", Imm16 | Mem, 0x1083, 0x1093, 0x10a3, 0x10b3},
	{"CMPS", Imm16 | Mem, 0x118c, 0x119c, 0x11ac, 0x11bc},
	{"CMPU", Imm16 | Mem, 0x1183, 0x1193, 0x11a3, 0x11b3},
	{"CMPX", Imm16 | Mem, 0x8c, 0x9c, 0xac, 0xbc},
	{"CMPY", Imm16 | Mem, 0x108c, 0x109c, 0x10ac, 0x10bc},
	{"COM", Mem, 0, 0x03, 0x63, 0x73},
	{"COMA", Inherent, 0x43, 0, 0, 0},
	{"COMB", Inherent, 0x53, 0, 0, 0},
	{"CWAI", Imm8, 0x3c, 0, 0, 0},
	{"DAA", Inherent, 0x19, 0, 0, 0},
	{"DEC", Mem, 0, 0x0a, 0x6a, 0x7a},
	{"DECA", Inherent, 0x4a, 0, 0, 0},
	{"DECB", Inherent, 0x5a, 0, 0, 0},
	{"EORA", Imm8 | Mem, 0x88, 0x98, 0xa8, 0xb8},
	{"EORB", Imm8 | Mem, 0xc8, 0xd8, 0xe8, 0xf8},
	{"EXG", Pair, 0x1e, 0, 0, 0},
	{"INC", Mem, 0, 0x0c, 0x6c, 0x7c},
	{"INCA", Inherent, 0x4c, 0, 0, 0},
	{"INCB", Inherent, 0x5c, 0, 0, 0},
	{"JMP", Mem, 0, 0x0e, 0x6e, 0x7e},
	{"JSR", Mem, 0, 0x9d, 0xad, 0xbd},
	{"LBCC", Rel16, 0x1024, 0, 0, 0},
	{"LBCS", Rel16, 0x1025, 0, 0, 0},
	{"LBEQ", Rel16, 0x1027, 0, 0, 0},
	{"LBGE", Rel16, 0x102c, 0, 0, 0},
	{"LBGT", Rel16, 0x102e, 0, 0, 0},
	{"LBHI", Rel16, 0x1022, 0, 0, 0},
	{"LBLE", Rel16, 0x102f, 0, 0, 0},
	{"LBLS", Rel16, 0x1023, 0, 0, 0},
	{"LBLT", Rel16, 0x102d, 0, 0, 0},
	{"LBMI", Rel16, 0x102b, 0, 0, 0},
	{"LBNE", Rel16, 0x1026, 0, 0, 0},
	{"LBPL", Rel16, 0x102a, 0, 0, 0},
	{"LBRA", Rel16, 0x16, 0, 0, 0},
	{"LBRN", Rel16, 0x1021, 0, 0, 0},
	{"LBSR", Rel16, 0x17, 0, 0, 0},
	{"LBVC", Rel16, 0x1028, 0, 0, 0},
	{"LBVS", Rel16, 0x1029, 0, 0, 0},
	{"LDA", Imm8 | Mem, 0x86, 0x96, 0xa6, 0xb6},
	{"LDB", Imm8 | Mem, 0xc6, 0xd6, 0xe6, 0xf6},
	{"LDD", Imm16 | Mem, 0xcc, 0xdc, 0xec, 0xfc},
	{"LDS", Imm16 | Mem, 0x10ce, 0x10de, 0x10ee, 0x10fe},
	{"LDU", Imm16 | Mem, 0xce, 0xde, 0xee, 0xfe},
	{"LDX", Imm16 | Mem, 0x8e, 0x9e, 0xae, 0xbe},
	{"LDY", Imm16 | Mem, 0x108e, 0x109e, 0x10ae, 0x10be},
	{"LEAS", Indexed, 0, 0, 0x32, 0},
	{"LEAU", Indexed, 0, 0, 0x33, 0},
	{"LEAX", Indexed, 0, 0, 0x30, 0},
	{"LEAY", Indexed, 0, 0, 0x31, 0},
	{"LSR", Mem, 0, 0x04, 0x64, 0x74},
	{"LSRA", Inherent, 0x44, 0, 0, 0},
	{"LSRB", Inherent, 0x54, 0, 0, 0},
	{"MUL", Inherent, 0x3d, 0, 0, 0},
	{"NEG", Mem, 0, 0x00, 0x60, 0x70},
	{"NEGA", Inherent, 0x40, 0, 0, 0},
	{"NEGB", Inherent, 0x50, 0, 0, 0},
	{"NOP", Inherent, 0x12, 0, 0, 0},
	{"ORA", Imm8 | Mem, 0x8a, 0x9a, 0xaa, 0xba},
	{"ORB", Imm8 | Mem, 0xca, 0xda, 0xea, 0xfa},
	{"ORCC", Imm8, 0x1a, 0, 0, 0},
	{"PSHS", StackS, 0x34, 0, 0, 0},
	{"PSHU", StackU, 0x36, 0, 0, 0},
	{"PULS", StackS, 0x35, 0, 0, 0},
	{"PULU", StackU, 0x37, 0, 0, 0},
	{"ROL", Mem, 0, 0x09, 0x69, 0x79},
	{"ROLA", Inherent, 0x49, 0, 0, 0},
	{"ROLB", Inherent, 0x59, 0, 0, 0},
	{"ROR", Mem, 0, 0x06, 0x66, 0x76},
	{"RORA", Inherent, 0x46, 0, 0, 0},
	{"RORB", Inherent, 0x56, 0, 0, 0},
	{"RTI", Inherent, 0x3b, 0, 0, 0},
	{"RTS", Inherent, 0x39, 0, 0, 0},
	{"SBCA", Imm8 | Mem, 0x82, 0x92, 0xa2, 0xb2},
	{"SBCB", Imm8 | Mem, 0xc2, 0xd2, 0xe2, 0xf2},
	{"SEX", Inherent, 0x1d, 0, 0, 0},
	{"STA", Mem, 0, 0x97, 0xa7, 0xb7},
	{"STB", Mem, 0, 0xd7, 0xe7, 0xf7},
	{"STD", Mem, 0, 0xdd, 0xed, 0xfd},
	{"STS", Mem, 0, 0x10df, 0x10ef, 0x10ff},
	{"STU", Mem, 0, 0xdf, 0xef, 0xff},
	{"STX", Mem, 0, 0x9f, 0xaf, 0xbf},
	{"STY", Mem, 0, 0x109f, 0x10af, 0x10bf},
	{"SUBA", Imm8 | Mem, 0x80, 0x90, 0xa0, 0xb0},
	{"SUBB", Imm8 | Mem, 0xc0, 0xd0, 0xe0, 0xf0},
	{"SUBD", Imm16 | Mem, 0x83, 0x93, 0xa3, 0xb3},
	{"SWI", Inherent, 0x3f, 0, 0, 0},
	{"SWI2", Inherent, 0x103f, 0, 0, 0},
	{"SWI3", Inherent, 0x113f, 0, 0, 0},
	{"SYNC", Inherent, 0x13, 0, 0, 0},
	{"TFR", Pair, 0x1f, 0, 0, 0},
	{"TST", Mem, 0, 0x0d, 0x6d, 0x7d},
	{"TSTA", Inherent, 0x4d, 0, 0, 0},
	{"TSTB", Inherent, 0x5d, 0, 0, 0},
}

// Alternate mnemonics accepted for instructions already in the table.
var synonyms = []struct {
	name  string
	canon string
}{
	{"BHS", "BCC"},
	{"BLO", "BCS"},
	{"LBHS", "LBCC"},
	{"LBLO", "LBCS"},
	{"LSL", "ASL"},
	{"LSLA", "ASLA"},
	{"LSLB", "ASLB"},
}

var opcodeByName map[string]*Opcode

func init() {
	opcodeByName = make(map[string]*Opcode, len(opcodeTable)+len(synonyms))
	for i := range opcodeTable {
		opcodeByName[opcodeTable[i].Name] = &opcodeTable[i]
	}
	for _, s := range synonyms {
		opcodeByName[s.name] = opcodeByName[s.canon]
	}
}

// OpcodeByName returns the instruction record for a mnemonic, or nil if
// the mnemonic is not a 6809 instruction. Lookup is case-insensitive.
func OpcodeByName(name string) *Opcode {
	return opcodeByName[strings.ToUpper(name)]
}

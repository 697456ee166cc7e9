// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

import "testing"

func TestOpcodeLookup(t *testing.T) {
	cases := []struct {
		name string
		typ  Type
	}{
		{"NOP", Inherent},
		{"nop", Inherent},
		{"Lda", Imm8 | Mem},
		{"LDY", Imm16 | Mem},
		{"LEAX", Indexed},
		{"BRA", Rel8},
		{"LBNE", Rel16},
		{"PSHS", StackS},
		{"PULU", StackU},
		{"TFR", Pair},
	}
	for _, c := range cases {
		op := OpcodeByName(c.name)
		if op == nil {
			t.Errorf("%s: not found", c.name)
			continue
		}
		if op.Type != c.typ {
			t.Errorf("%s: type got %x, want %x", c.name, op.Type, c.typ)
		}
	}

	if OpcodeByName("BOGUS") != nil {
		t.Error("BOGUS: unexpected match")
	}
}

func TestOpcodeSynonyms(t *testing.T) {
	pairs := [][2]string{
		{"BHS", "BCC"},
		{"BLO", "BCS"},
		{"LBHS", "LBCC"},
		{"LSL", "ASL"},
		{"LSLA", "ASLA"},
	}
	for _, p := range pairs {
		if OpcodeByName(p[0]) != OpcodeByName(p[1]) {
			t.Errorf("%s should alias %s", p[0], p[1])
		}
	}
}

func TestOpcodeTableConsistency(t *testing.T) {
	for i := range opcodeTable {
		op := &opcodeTable[i]
		if op.Type&Direct != 0 && op.Type&(Indexed|Extended) != Indexed|Extended {
			t.Errorf("%s: direct form without indexed+extended forms", op.Name)
		}
		if op.Type == Inherent && (op.Direct|op.Indexed|op.Extended) != 0 {
			t.Errorf("%s: inherent opcode with memory forms", op.Name)
		}
		if op.Type&(Rel8|Rel16) != 0 && op.Immediate == 0 {
			t.Errorf("%s: branch without opcode value", op.Name)
		}
	}
}

func TestOpcodeLen(t *testing.T) {
	if Len(OpcodeByName("NOP").Immediate) != 1 {
		t.Error("NOP should be one byte")
	}
	if Len(OpcodeByName("SWI2").Immediate) != 2 {
		t.Error("SWI2 should be two bytes")
	}
	if Len(OpcodeByName("LDY").Immediate) != 2 {
		t.Error("LDY immediate should be page-prefixed")
	}
}

func TestRegisters(t *testing.T) {
	if r, ok := RegByName("pcr"); !ok || r != RegPCR {
		t.Error("pcr lookup failed")
	}
	if _, ok := RegByName("Q"); ok {
		t.Error("Q should not be a register")
	}

	if n, ok := RegD.TransferNibble(); !ok || n != 0 {
		t.Error("D transfer nibble should be 0")
	}
	if n, ok := RegCC.TransferNibble(); !ok || n != 0xa {
		t.Error("CC transfer nibble should be $A")
	}
	if _, ok := RegPCR.TransferNibble(); ok {
		t.Error("PCR cannot appear in a transfer pair")
	}

	if m, ok := RegD.StackMask(RegS); !ok || m != 0x06 {
		t.Error("D stack mask should be $06")
	}
	if m, ok := RegU.StackMask(RegS); !ok || m != 0x40 {
		t.Error("U on the S stack should be $40")
	}
	if _, ok := RegS.StackMask(RegS); ok {
		t.Error("S cannot be pushed onto its own stack")
	}

	if b, ok := RegY.IndexBits(); !ok || b != 0x20 {
		t.Error("Y index bits should be $20")
	}
	if _, ok := RegA.IndexBits(); ok {
		t.Error("A cannot be an index register")
	}
}

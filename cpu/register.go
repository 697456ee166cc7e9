// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

import "strings"

// A RegID identifies one of the 6809's programmer-visible registers. The
// pseudo-register PCR selects program-counter-relative indexing and never
// appears in machine state.
type RegID byte

// All 6809 registers.
const (
	RegNone RegID = iota
	RegD          // 16-bit accumulator (A:B)
	RegX          // index register
	RegY          // index register
	RegU          // user stack pointer
	RegS          // system stack pointer
	RegPC         // program counter
	RegA          // accumulator
	RegB          // accumulator
	RegCC         // condition codes
	RegDP         // direct page
	RegPCR        // PC-relative indexing pseudo-register
)

var regNames = []string{
	"", "D", "X", "Y", "U", "S", "PC", "A", "B", "CC", "DP", "PCR",
}

// Name returns the assembly-language name of the register.
func (r RegID) Name() string {
	if int(r) < len(regNames) {
		return regNames[r]
	}
	return ""
}

// RegByName looks up a register by its case-insensitive assembly name.
func RegByName(name string) (RegID, bool) {
	n := strings.ToUpper(name)
	for i, s := range regNames {
		if i > 0 && s == n {
			return RegID(i), true
		}
	}
	return RegNone, false
}

// Transfer nibbles used by the TFR and EXG post-byte. The high nibble
// selects the source register, the low nibble the destination.
var transferNibble = map[RegID]byte{
	RegD:  0x0,
	RegX:  0x1,
	RegY:  0x2,
	RegU:  0x3,
	RegS:  0x4,
	RegPC: 0x5,
	RegA:  0x8,
	RegB:  0x9,
	RegCC: 0xa,
	RegDP: 0xb,
}

// TransferNibble returns the 4-bit register code used in TFR/EXG
// post-bytes. The second return value is false for registers that cannot
// appear in a transfer pair.
func (r RegID) TransferNibble() (byte, bool) {
	n, ok := transferNibble[r]
	return n, ok
}

// Push/pull mask bits shared by PSHS/PULS/PSHU/PULU. Bit 6 selects the
// "other" stack pointer: U for the S-stack instructions and S for the
// U-stack instructions.
const (
	maskCC = 1 << 0
	maskA  = 1 << 1
	maskB  = 1 << 2
	maskDP = 1 << 3
	maskX  = 1 << 4
	maskY  = 1 << 5
	maskSU = 1 << 6
	maskPC = 1 << 7
)

// StackMask returns the PSH/PUL mask bit(s) for register r when the stack
// pointer in use is sp (RegS or RegU). The second return value is false if
// r cannot be pushed onto that stack.
func (r RegID) StackMask(sp RegID) (byte, bool) {
	switch r {
	case RegCC:
		return maskCC, true
	case RegA:
		return maskA, true
	case RegB:
		return maskB, true
	case RegD:
		return maskA | maskB, true
	case RegDP:
		return maskDP, true
	case RegX:
		return maskX, true
	case RegY:
		return maskY, true
	case RegPC:
		return maskPC, true
	case RegU:
		if sp == RegS {
			return maskSU, true
		}
	case RegS:
		if sp == RegU {
			return maskSU, true
		}
	}
	return 0, false
}

// IndexBits returns the 2-bit register field of an indexed-mode post-byte
// (bits 5 and 6). Only X, Y, U and S may serve as index registers.
func (r RegID) IndexBits() (byte, bool) {
	switch r {
	case RegX:
		return 0 << 5, true
	case RegY:
		return 1 << 5, true
	case RegU:
		return 2 << 5, true
	case RegS:
		return 3 << 5, true
	}
	return 0, false
}

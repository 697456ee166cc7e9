// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

// A progLine is one parsed source line: an optional label, an optional
// opcode, an optional argument array, and the original text. The label and
// opcode may be identifier nodes needing evaluation (macro bodies
// interpolate into them).
type progLine struct {
	label  *node
	opcode *node
	args   *node
	text   fstring
	errmsg string // set when the line failed to parse
}

// A program is an ordered list of parsed lines: a source file or a macro
// body. Macro bodies record the last pass their definition was seen on so that
// redefinition can be detected within a pass and ignored across passes.
type program struct {
	name  string
	lines []*progLine
	pass  int
}

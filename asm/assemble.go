// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package asm implements a two-pass macro cross-assembler for the
// Motorola 6809.
package asm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/beevik/go6809/cpu"
)

var (
	errParse = errors.New("parse error")
	errAbort = errors.New("fatal error")
)

const (
	defaultMaxProgramDepth = 128

	// Sizes must stop changing within this many passes.
	maxPasses = 4
)

// An errKind classifies an assembly error.
type errKind byte

const (
	errSyntax errKind = iota
	errOutOfRange
	errNumericDomain
	errUndefined
	errFileNotFound
	errFatal
)

var errKindLabel = []string{
	"Syntax error",
	"Range error",
	"Numeric error",
	"Undefined symbol",
	"File error",
	"Fatal error",
}

// An asmerror is used to keep track of errors encountered during assembly.
type asmerror struct {
	line fstring
	kind errKind
	msg  string
}

// Option type used by the Assemble function.
type Option uint

// Options for the Assemble function.
const (
	Verbose Option = 1 << iota // verbose output during assembly
)

// Format selects the binary output container.
type Format byte

// All supported output formats.
const (
	Raw       Format = iota // flat binary image
	DragonDOS               // DragonDOS header + image
	CoCo                    // CoCo RS-DOS segmented binary
)

// Config carries the assembler settings not covered by Option bits.
type Config struct {
	MaxProgramDepth int    // macro/include recursion bound (default 128)
	Format          Format // binary output format
}

// An Export describes an exported symbol and its final-pass value.
type Export struct {
	Name string
	Addr uint16
}

// Assembly contains the assembled machine code and other data associated
// with the machine code.
type Assembly struct {
	Code    []byte   // assembled machine code, coalesced and zero-padded
	Origin  int      // output address of the first byte
	Entry   int      // execution address recorded in headers
	Format  Format   // output format used by WriteTo
	Errors  []string // errors encountered during assembly
	Listing *Listing // final-pass listing
	Exports []Export // exported symbols
}

// The assembler is a state object used during the assembly of machine
// code from assembly code.
type assembler struct {
	files              []string            // processed files
	fileProgs          map[string]*program // parsed programs by filename
	sections           map[string]*section // named sections
	cur                *section            // current section
	spanSeq            int                 // monotonic span sequence source
	symbols            *symbolTable        // global symbols and export flags
	macros             map[string]*program // defined macros by name
	interpStack        []*node             // macro call frames
	definingMacro      *program            // capture target during definition
	definingMacroLevel int                 // MACRO/ENDM nesting depth
	pass               int                 // current pass number
	progDepth          int                 // macro/include recursion depth
	maxProgramDepth    int
	format             Format
	listing            *Listing
	line               fstring   // current source line, for error context
	out                io.Writer // output used for verbose logging
	verbose            bool
	errors             []asmerror
	fatal              bool
}

// Pseudo-ops that override any label meaning.
var labelOps = map[string]func(a *assembler, label, args *node, l *progLine){
	"equ":     (*assembler).pseudoEqu,
	"org":     (*assembler).pseudoOrg,
	"section": (*assembler).pseudoSection,
}

// Pseudo-ops that emit or reserve data.
var dataOps = map[string]func(a *assembler, args *node, l *progLine){
	"fcc": (*assembler).pseudoFcc,
	"fcb": (*assembler).pseudoFcc,
	"fdb": (*assembler).pseudoFdb,
	"rzb": (*assembler).pseudoRzb,
	"rmb": (*assembler).pseudoRmb,
}

// Other pseudo-ops.
var otherOps = map[string]func(a *assembler, args *node, l *progLine){
	"put":        (*assembler).pseudoPut,
	"setdp":      (*assembler).pseudoSetdp,
	"includebin": (*assembler).pseudoIncludebin,
}

func init() {
	// The include pseudo-op must be initialized here to bypass go's overly
	// aggressive initialization loop detection.
	otherOps["include"] = (*assembler).pseudoInclude
}

// AssembleFile reads a file containing 6809 assembly code, assembles it,
// and produces a binary file, a listing file, and (when symbols are
// exported) a symbol file.
func AssembleFile(path string, options Option, out io.Writer) error {
	return AssembleFileWithConfig(path, options, out, Config{})
}

// AssembleFileWithConfig is AssembleFile with explicit configuration.
func AssembleFileWithConfig(path string, options Option, out io.Writer, cfg Config) error {
	if out == nil {
		out = os.Stdout
	}

	inFile, err := os.Open(path)
	if err != nil {
		return err
	}
	defer inFile.Close()

	assembly, err := AssembleWithConfig(inFile, path, out, options, cfg)
	if err != nil {
		for _, e := range assembly.Errors {
			fmt.Fprintln(out, e)
		}
		return err
	}

	ext := filepath.Ext(path)
	prefix := path[:len(path)-len(ext)]

	binPath := prefix + ".bin"
	binFile, err := os.OpenFile(binPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer binFile.Close()
	if _, err = assembly.WriteTo(binFile); err != nil {
		return err
	}

	lstPath := prefix + ".lst"
	lstFile, err := os.OpenFile(lstPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer lstFile.Close()
	if _, err = assembly.Listing.WriteTo(lstFile); err != nil {
		return err
	}

	if len(assembly.Exports) > 0 {
		symPath := prefix + ".sym"
		symFile, err := os.OpenFile(symPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
		if err != nil {
			return err
		}
		defer symFile.Close()
		if _, err = assembly.WriteSymbols(symFile); err != nil {
			return err
		}
	}

	fmt.Fprintf(out, "Assembled '%s' to produce '%s' and '%s'.\n",
		filepath.Base(path), filepath.Base(binPath), filepath.Base(lstPath))
	return nil
}

// Assemble reads data from the provided stream and attempts to assemble
// it into 6809 machine code.
func Assemble(r io.Reader, filename string, out io.Writer, options Option) (*Assembly, error) {
	return AssembleWithConfig(r, filename, out, options, Config{})
}

// AssembleWithConfig assembles with explicit configuration.
func AssembleWithConfig(r io.Reader, filename string, out io.Writer, options Option, cfg Config) (*Assembly, error) {
	if out == nil {
		out = os.Stdout
	}
	if cfg.MaxProgramDepth <= 0 {
		cfg.MaxProgramDepth = defaultMaxProgramDepth
	}

	a := &assembler{
		files:           []string{filename},
		fileProgs:       make(map[string]*program),
		sections:        make(map[string]*section),
		symbols:         newSymbolTable(),
		macros:          make(map[string]*program),
		maxProgramDepth: cfg.MaxProgramDepth,
		format:          cfg.Format,
		out:             out,
		verbose:         (options & Verbose) != 0,
	}

	main := parseProgram(bufio.NewScanner(r), filename, 0)
	a.fileProgs[filename] = main

	// Passes repeat until instruction sizes stop changing. At least two
	// are performed; more than maxPasses is a convergence failure.
	var prev []int
	converged := false
	for pass := 1; pass <= maxPasses; pass++ {
		a.beginPass(pass)
		a.assembleProg(main)
		if a.fatal {
			break
		}
		if a.definingMacroLevel > 0 {
			a.addError(a.line, "MACRO without matching ENDM")
			a.definingMacroLevel = 0
			a.definingMacro = nil
		}
		snap := a.snapshot()
		if prev != nil && equalInts(snap, prev) {
			a.log("sizes converged after pass %d", pass)
			converged = true
			break
		}
		prev = snap
	}
	if !a.fatal && !converged {
		a.fatalError(fstring{}, "failed to converge after %d passes", maxPasses)
	}

	if !a.fatal {
		a.collectExports()
	}

	assembly := &Assembly{
		Format:  a.format,
		Listing: a.listing,
	}
	for _, e := range a.errors {
		assembly.Errors = append(assembly.Errors, a.errorString(e))
	}

	var err error
	switch {
	case a.fatal:
		err = errAbort
	case len(a.errors) > 0:
		err = errParse
	default:
		sect := a.coalesceAll(true)
		if len(sect.spans) > 0 {
			sp := sect.spans[0]
			assembly.Code = sp.data
			assembly.Origin = sp.put
			assembly.Entry = sp.put
		}
		assembly.Exports = a.exportList()
	}
	return assembly, err
}

// beginPass resets per-pass state. Symbol values and macro definitions
// persist; sections reset lazily when reselected on the new pass.
func (a *assembler) beginPass(pass int) {
	a.pass = pass
	a.errors = a.errors[:0]
	a.listing = newListing()
	a.definingMacro = nil
	a.definingMacroLevel = 0
	a.interpStack = a.interpStack[:0]
	a.progDepth = 0
	a.cur = nil
	a.setSection("")
	a.logSection(fmt.Sprintf("Pass %d", pass))
}

// snapshot captures the shape of every section's spans. Two equal
// consecutive snapshots mean instruction sizes have converged.
func (a *assembler) snapshot() []int {
	names := make([]string, 0, len(a.sections))
	for name := range a.sections {
		names = append(names, name)
	}
	sort.Strings(names)

	var snap []int
	for _, name := range names {
		s := a.sections[name]
		snap = append(snap, len(s.spans), s.pc)
		for _, sp := range s.spans {
			snap = append(snap, sp.org, sp.put, sp.size())
		}
	}
	return snap
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// assembleProg assembles one program: the main file, an included file, or
// a macro body.
func (a *assembler) assembleProg(prog *program) {
	if a.progDepth >= a.maxProgramDepth {
		a.fatalError(a.line, "maximum program depth exceeded")
		return
	}
	a.progDepth++
	defer func() { a.progDepth-- }()

	for _, l := range prog.lines {
		if a.fatal {
			return
		}

		// Incremented for every line encountered. Doesn't correspond to
		// any file or macro line number, but must be consistent across
		// passes so local label searches give stable results.
		a.cur.lineNumber++
		a.line = l.text

		if l.errmsg != "" {
			a.addError(l.text, "%s", l.errmsg)
			a.listing.add(-1, 0, nil, l.text.full)
			continue
		}
		if l.label == nil && l.opcode == nil && l.args == nil {
			a.listing.add(-1, 0, nil, l.text.full)
			continue
		}

		opcode := a.evalString(l.opcode)

		// Macro definition handling.
		if opcode != nil && strings.EqualFold(opcode.str, "macro") {
			a.definingMacroLevel++
			if a.definingMacroLevel == 1 {
				a.pseudoMacro(a.evalString(l.label), l.args)
				a.listing.add(-1, 0, nil, l.text.full)
				continue
			}
		}
		if opcode != nil && strings.EqualFold(opcode.str, "endm") {
			if a.definingMacroLevel == 0 {
				a.addError(l.text, "ENDM without beginning MACRO")
				continue
			}
			a.definingMacroLevel--
			if a.definingMacroLevel == 0 {
				a.pseudoEndm(l.args)
				a.listing.add(-1, 0, nil, l.text.full)
				continue
			}
		}
		if a.definingMacroLevel > 0 {
			if a.definingMacro != nil {
				a.definingMacro.lines = append(a.definingMacro.lines, l)
			}
			a.listing.add(-1, 0, nil, l.text.full)
			continue
		}

		// Normal processing. A numeric label is a local label; otherwise
		// the label is a symbol name.
		label := a.evalInt(l.label)
		if label == nil {
			label = a.evalString(l.label)
		}

		// EXPORT only needs symbol names, not their values.
		if opcode != nil && strings.EqualFold(opcode.str, "export") {
			a.pseudoExport(l.args)
			a.listing.add(-1, 0, nil, l.text.full)
			continue
		}

		// Anything else needs a fully evaluated list of arguments, except
		// SECTION, whose name is taken as text rather than looked up.
		args := l.args
		if opcode == nil || !strings.EqualFold(opcode.str, "section") {
			args = a.evalNode(l.args)
		}

		// Pseudo-ops which determine a label's value.
		if opcode != nil {
			if h, ok := labelOps[strings.ToLower(opcode.str)]; ok {
				h(a, label, args, l)
				continue
			}
		}

		// Otherwise, any label on the line gets PC as its value.
		if label != nil {
			a.setLabel(label, newIntNode(int64(a.cur.pc)))
		}

		if opcode == nil {
			if label != nil {
				a.listing.add(a.cur.pc&0xffff, 0, nil, l.text.full)
			}
			continue
		}

		// Pseudo-ops that emit or reserve data.
		if h, ok := dataOps[strings.ToLower(opcode.str)]; ok {
			oldPC := a.cur.pc
			h(a, args, l)
			nbytes := a.cur.pc - oldPC
			sp := a.cur.cur
			if sp != nil && a.cur.pc == sp.put+sp.size() {
				a.listing.add(oldPC&0xffff, nbytes, sp, l.text.full)
			} else {
				a.listing.add(oldPC&0xffff, nbytes, nil, l.text.full)
			}
			continue
		}

		// Other pseudo-ops.
		if h, ok := otherOps[strings.ToLower(opcode.str)]; ok {
			a.listing.add(-1, 0, nil, l.text.full)
			h(a, args, l)
			continue
		}

		// Macro expansion. A macro whose name exactly matches the opcode
		// string shadows any instruction of the same mnemonic.
		if m, ok := a.macros[opcode.str]; ok {
			a.listing.add(a.cur.pc&0xffff, 0, nil, l.text.full)
			a.interpPush(args)
			a.assembleProg(m)
			a.interpPop()
			continue
		}

		// Real instructions.
		if op := cpu.OpcodeByName(opcode.str); op != nil {
			oldPC := a.cur.pc
			a.dispatch(op, args, l.args)
			nbytes := a.cur.pc - oldPC
			a.listing.add(oldPC&0xffff, nbytes, a.cur.cur, l.text.full)
			a.logLine(l.text, "pc=$%04X len=%d", oldPC&0xffff, nbytes)
			continue
		}

		a.addError(l.text, "unknown instruction '%s'", opcode.str)
	}
}

// setLabel binds a label to a value: numeric labels become local labels in
// the current section, names become global symbols.
func (a *assembler) setLabel(label, value *node) {
	switch typeOf(label) {
	case nodeUndef:
	case nodeInt:
		a.cur.localLabels.set(label.ival, a.cur.lineNumber, value)
	case nodeString:
		a.symbols.set(label.str, value, a.pass)
	default:
		a.addError(a.line, "invalid label type")
	}
}

//
// pseudo-ops
//

// EQU. A symbol with the name of this line's label is assigned a value.
func (a *assembler) pseudoEqu(label, args *node, l *progLine) {
	if arrayCount(args) != 1 {
		a.addError(l.text, "EQU requires exactly one argument")
		return
	}
	arg := arrayOf(args)[0]
	a.setLabel(label, arg)
	if n := a.evalInt(arg); n != nil {
		a.listing.add(int(n.ival)&0xffff, 0, nil, l.text.full)
	} else {
		a.listing.add(-1, 0, nil, l.text.full)
	}
}

// ORG. Following instructions will be assembled to this address.
func (a *assembler) pseudoOrg(label, args *node, l *progLine) {
	if arrayCount(args) != 1 {
		a.addError(l.text, "ORG requires exactly one argument")
		return
	}
	argsFloatToInt(args)
	arg := arrayOf(args)[0]
	switch typeOf(arg) {
	case nodeUndef:
	case nodeInt:
		a.cur.pc = int(arg.ival)
		a.cur.putDelta = 0
		a.cur.cur = nil
		a.setLabel(label, arg)
		a.listing.add(a.cur.pc&0xffff, 0, nil, l.text.full)
	default:
		a.addError(l.text, "invalid argument to ORG")
	}
}

// SECTION. Switch sections.
func (a *assembler) pseudoSection(label, args *node, l *progLine) {
	if arrayCount(args) != 1 {
		a.addError(l.text, "SECTION requires exactly one argument")
		return
	}
	arg := arrayOf(args)[0]
	if typeOf(arg) == nodeUndef {
		return
	}
	n := a.evalString(arg)
	if n == nil {
		a.addError(l.text, "invalid argument to SECTION")
		return
	}
	a.setSection(n.str)
}

// PUT. Following instructions will be located at this address, allowing
// code to be assembled for one address while placed at another. The
// delta between put and org persists until the next PUT or ORG.
func (a *assembler) pseudoPut(args *node, l *progLine) {
	if arrayCount(args) != 1 {
		a.addError(l.text, "PUT requires exactly one argument")
		return
	}
	argsFloatToInt(args)
	arg := arrayOf(args)[0]
	switch typeOf(arg) {
	case nodeUndef:
	case nodeInt:
		a.cur.putDelta = int(arg.ival) - a.cur.pc
		a.cur.cur = nil
	default:
		a.addError(l.text, "invalid argument to PUT")
	}
}

// SETDP. Set the assumed Direct Page value (8-bit). Addresses evaluated
// to exist within this page will be assembled to use direct addressing.
func (a *assembler) pseudoSetdp(args *node, l *progLine) {
	if arrayCount(args) != 1 {
		a.addError(l.text, "SETDP requires exactly one argument")
		return
	}
	argsFloatToInt(args)
	arg := arrayOf(args)[0]
	switch typeOf(arg) {
	case nodeUndef:
		a.cur.dp = -1
	case nodeInt:
		// negative numbers imply no valid DP
		if arg.ival < 0 {
			a.cur.dp = -1
		} else {
			a.cur.dp = int(arg.ival) & 0xff
		}
	default:
		a.addError(l.text, "invalid argument to SETDP")
	}
}

// EXPORT. Flag symbols for export in the symbol file. Arguments arrive
// unevaluated; only their names matter.
func (a *assembler) pseudoExport(args *node) {
	if arrayCount(args) < 1 {
		a.addError(a.line, "EXPORT requires one or more arguments")
		return
	}
	for _, arg := range arrayOf(args) {
		if n := a.evalString(arg); n != nil {
			a.symbols.export(n.str)
		}
	}
}

// FCC, FCB. Embed string and byte constants.
func (a *assembler) pseudoFcc(args *node, l *progLine) {
	if arrayCount(args) < 1 {
		return
	}
	argsFloatToInt(args)
	for _, arg := range arrayOf(args) {
		switch typeOf(arg) {
		case nodeUndef:
			a.emitPad(1)
		case nodeEmpty:
			a.emitImm8(0)
		case nodeInt:
			a.emitImm8(arg.ival)
		case nodeString:
			for i := 0; i < len(arg.str); i++ {
				a.emitImm8(int64(arg.str[i]))
			}
		default:
			a.addError(l.text, "invalid argument to FCB/FCC")
		}
	}
}

// FDB. Embed 16-bit constants.
func (a *assembler) pseudoFdb(args *node, l *progLine) {
	if arrayCount(args) < 1 {
		return
	}
	argsFloatToInt(args)
	for _, arg := range arrayOf(args) {
		switch typeOf(arg) {
		case nodeUndef:
			a.emitPad(2)
		case nodeEmpty:
			a.emitImm16(0)
		case nodeInt:
			a.emitImm16(arg.ival)
		default:
			a.addError(l.text, "invalid argument to FDB")
		}
	}
}

// RZB. Reserve zeroed bytes.
func (a *assembler) pseudoRzb(args *node, l *progLine) {
	if arrayCount(args) != 1 {
		a.addError(l.text, "RZB requires exactly one argument")
		return
	}
	argsFloatToInt(args)
	arg := arrayOf(args)[0]
	switch typeOf(arg) {
	case nodeUndef:
	case nodeInt:
		if arg.ival < 0 {
			a.addErrorKind(l.text, errOutOfRange, "negative argument to RZB")
			return
		}
		for i := int64(0); i < arg.ival; i++ {
			a.emitImm8(0)
		}
	default:
		a.addError(l.text, "invalid argument to RZB")
	}
}

// RMB. Reserve memory without emitting data.
func (a *assembler) pseudoRmb(args *node, l *progLine) {
	if arrayCount(args) != 1 {
		a.addError(l.text, "RMB requires exactly one argument")
		return
	}
	argsFloatToInt(args)
	arg := arrayOf(args)[0]
	switch typeOf(arg) {
	case nodeUndef:
	case nodeInt:
		if arg.ival < 0 {
			a.addErrorKind(l.text, errOutOfRange, "negative argument to RMB")
			return
		}
		a.cur.pc += int(arg.ival)
	default:
		a.addError(l.text, "invalid argument to RMB")
	}
}

// INCLUDE. Nested inclusion of source files. Files parse once and are
// reassembled in place on every pass so line numbering stays consistent.
func (a *assembler) pseudoInclude(args *node, l *progLine) {
	if arrayCount(args) < 1 {
		a.addError(l.text, "INCLUDE requires a filename")
		return
	}
	arg := arrayOf(args)[0]
	if typeOf(arg) != nodeString {
		a.addError(l.text, "invalid argument to INCLUDE")
		return
	}
	prog := a.loadInclude(arg.str, l)
	if prog == nil {
		return
	}
	a.assembleProg(prog)
}

func (a *assembler) loadInclude(name string, l *progLine) *program {
	if prog, ok := a.fileProgs[name]; ok {
		return prog
	}
	file, err := os.Open(name)
	if err != nil {
		a.fatalErrorKind(l.text, errFileNotFound, "file not found: %s", name)
		return nil
	}
	defer file.Close()

	fileIndex := len(a.files)
	a.files = append(a.files, name)

	prog := parseProgram(bufio.NewScanner(file), name, fileIndex)
	a.fileProgs[name] = prog
	return prog
}

// INCLUDEBIN. Include a binary object in-place. Unlike INCLUDE, the
// filename may be a forward reference, as binary objects cannot introduce
// new local labels.
func (a *assembler) pseudoIncludebin(args *node, l *progLine) {
	if arrayCount(args) < 1 {
		a.addError(l.text, "INCLUDEBIN requires a filename")
		return
	}
	arg := arrayOf(args)[0]
	if typeOf(arg) != nodeString {
		a.addError(l.text, "invalid argument to INCLUDEBIN")
		return
	}
	data, err := os.ReadFile(arg.str)
	if err != nil {
		a.fatalErrorKind(l.text, errFileNotFound, "file not found: %s", arg.str)
		return
	}
	for _, b := range data {
		a.emitImm8(int64(b))
	}
}

// MACRO. Start defining a named macro. The macro name can either be
// specified as an argument or as the label for the line the directive
// appears on.
func (a *assembler) pseudoMacro(label, rawArgs *node) {
	nargs := arrayCount(rawArgs)
	var name string
	switch {
	case nargs == 1 && label == nil:
		n := a.evalString(arrayOf(rawArgs)[0])
		if n == nil {
			a.addError(a.line, "invalid macro name")
			return
		}
		name = n.str
	case nargs == 0 && typeOf(label) == nodeString:
		name = label.str
	default:
		a.addError(a.line, "macro name must either be label OR argument")
		return
	}

	if m, ok := a.macros[name]; ok {
		// Keep the first definition encountered this pass; an actual
		// redefinition within one pass is an error.
		if m.pass == a.pass {
			a.addError(a.line, "macro '%s' redefined", name)
		}
		m.pass = a.pass
		return
	}
	m := &program{name: name, pass: a.pass}
	a.macros[name] = m
	a.definingMacro = m
}

// ENDM. Finish a macro definition. An optional argument must at least be
// a name; its value is not compared.
func (a *assembler) pseudoEndm(rawArgs *node) {
	nargs := arrayCount(rawArgs)
	if nargs > 1 {
		a.addError(a.line, "invalid number of arguments to ENDM")
		return
	}
	if nargs == 1 && a.evalString(arrayOf(rawArgs)[0]) == nil {
		a.addError(a.line, "invalid argument to ENDM")
		return
	}
	a.definingMacro = nil
}

//
// exports
//

func (a *assembler) collectExports() {
	for name := range a.symbols.exported {
		v := a.symbols.get(name)
		if n := a.evalInt(v); typeOf(n) != nodeInt {
			a.addErrorKind(fstring{}, errUndefined, "exported symbol '%s' undefined", name)
		}
	}
}

func (a *assembler) exportList() []Export {
	names := make([]string, 0, len(a.symbols.exported))
	for name := range a.symbols.exported {
		names = append(names, name)
	}
	sort.Strings(names)

	exports := make([]Export, 0, len(names))
	for _, name := range names {
		n := a.evalInt(a.symbols.get(name))
		if typeOf(n) != nodeInt {
			continue
		}
		exports = append(exports, Export{Name: name, Addr: uint16(n.ival)})
	}
	return exports
}

//
// error reporting
//

// Append a syntax error to the assembler's error state.
func (a *assembler) addError(l fstring, format string, args ...any) {
	a.addErrorKind(l, errSyntax, format, args...)
}

// Append a classified error to the assembler's error state.
func (a *assembler) addErrorKind(l fstring, kind errKind, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	a.errors = append(a.errors, asmerror{l, kind, msg})
	if a.verbose {
		fmt.Fprintln(a.out, a.errorString(asmerror{l, kind, msg}))
		if l.full != "" {
			fmt.Fprintln(a.out, l.full)
			for i := 0; i < l.column; i++ {
				fmt.Fprintf(a.out, "-")
			}
			fmt.Fprintln(a.out, "^")
		}
	}
}

// Record a fatal error, aborting the assembly.
func (a *assembler) fatalError(l fstring, format string, args ...any) {
	a.fatalErrorKind(l, errFatal, format, args...)
}

func (a *assembler) fatalErrorKind(l fstring, kind errKind, format string, args ...any) {
	a.addErrorKind(l, kind, format, args...)
	a.fatal = true
}

func (a *assembler) errorString(e asmerror) string {
	label := errKindLabel[e.kind]
	if e.line.row == 0 {
		return fmt.Sprintf("%s: %s", label, e.msg)
	}
	filename := a.files[e.line.fileIndex]
	return fmt.Sprintf("%s in '%s' line %d, col %d: %s",
		label, filename, e.line.row, e.line.column+1, e.msg)
}

//
// verbose logging
//

// In verbose mode, log a string to the output writer.
func (a *assembler) log(format string, args ...any) {
	if a.verbose {
		fmt.Fprintf(a.out, format, args...)
		fmt.Fprintf(a.out, "\n")
	}
}

// In verbose mode, log a string and its associated line of assembly code.
func (a *assembler) logLine(line fstring, format string, args ...any) {
	if a.verbose {
		detail := fmt.Sprintf(format, args...)
		fmt.Fprintf(a.out, "%-3d %-3d | %-20s | %s\n", line.row, line.column+1, detail, line.str)
	}
}

// In verbose mode, log a section header to the output writer.
func (a *assembler) logSection(name string) {
	if a.verbose {
		fmt.Fprintln(a.out, strings.Repeat("-", len(name)+6))
		fmt.Fprintf(a.out, "-- %s --\n", name)
		fmt.Fprintln(a.out, strings.Repeat("-", len(name)+6))
	}
}

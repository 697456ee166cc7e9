// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import "sort"

// A span is one region of consecutive assembled data. org is the address
// the code inside was assembled for; put is where it lands in the output
// image. The two diverge after a PUT directive. sequence resolves overlaps
// when spans are coalesced: the higher sequence wins.
type span struct {
	sequence int
	org      int
	put      int
	data     []byte
}

func (sp *span) size() int {
	return len(sp.data)
}

// A section is a named collection of spans with its own program counter,
// direct page and local labels. Selecting a section on a new pass destroys
// its span data; local labels persist so that forward searches can resolve
// against the previous pass.
type section struct {
	name        string
	spans       []*span
	cur         *span
	localLabels localLabelTable
	pass        int
	lineNumber  int
	pc          int
	putDelta    int
	dp          int
	lastPC      int
}

func newSection(name string) *section {
	return &section{
		name:        name,
		localLabels: make(localLabelTable),
		pass:        -1,
		dp:          -1,
	}
}

// setSection selects a named section, creating it if necessary. On the
// first selection of a pass the section's spans are reset and its PC
// defaults to the current section's end, so sections follow one another
// unless ORG overrides.
func (a *assembler) setSection(name string) {
	s, ok := a.sections[name]
	if !ok {
		s = newSection(name)
		a.sections[name] = s
	}
	if a.cur != nil {
		a.cur.lastPC = a.cur.pc
	}
	if s.pass != a.pass {
		s.spans, s.cur = nil, nil
		s.lineNumber = 0
		s.dp = -1
		s.putDelta = 0
		s.pass = a.pass
		if a.cur != nil && a.cur != s {
			s.pc = a.cur.lastPC
		} else {
			s.pc = 0
		}
	}
	a.cur = s
}

//
// emission
//

// ensureSpan returns the current span, allocating a fresh one whenever the
// PC no longer matches the span's end (ORG, RMB or PUT happened since the
// last emit).
func (a *assembler) ensureSpan() *span {
	s := a.cur
	if s.cur == nil || s.pc != s.cur.org+s.cur.size() {
		a.spanSeq++
		sp := &span{sequence: a.spanSeq, org: s.pc, put: s.pc + s.putDelta}
		s.cur = sp
		s.spans = append(s.spans, sp)
	}
	return s.cur
}

func (a *assembler) emitByte(b byte) {
	sp := a.ensureSpan()
	sp.data = append(sp.data, b)
	a.cur.pc++
}

// emitPad emits n reserved bytes. They count toward the span size and have
// defined content zero.
func (a *assembler) emitPad(n int) {
	for i := 0; i < n; i++ {
		a.emitByte(0)
	}
}

func (a *assembler) emitImm8(v int64) {
	a.emitByte(byte(v))
}

// emitImm16 emits a 16-bit value, big-endian.
func (a *assembler) emitImm16(v int64) {
	a.emitByte(byte(v >> 8))
	a.emitByte(byte(v))
}

// emitOp emits an opcode value, two bytes when page-prefixed.
func (a *assembler) emitOp(op uint16) {
	if op > 0xff {
		a.emitByte(byte(op >> 8))
	}
	a.emitByte(byte(op))
}

// emitRel8 emits a PC-relative offset to target, computed against the
// address following the operand byte. Out of range is an error on the
// final pass.
func (a *assembler) emitRel8(target int64) {
	offset := int(target) - (a.cur.pc + 1)
	if offset < -128 || offset > 127 {
		a.addErrorKind(a.line, errOutOfRange, "branch out of range")
	}
	a.emitByte(byte(offset))
}

// emitRel16 is the two-byte variant of emitRel8.
func (a *assembler) emitRel16(target int64) {
	offset := int(target) - (a.cur.pc + 2)
	a.emitImm16(int64(offset))
}

//
// coalescing
//

// coalesce merges spans whose put ranges abut. With sort set, spans are
// ordered by put address first and overlaps are resolved by sequence; with
// pad set, gaps between spans are zero-filled, producing a single span.
func (s *section) coalesce(sortSpans, pad bool) {
	if len(s.spans) == 0 {
		return
	}
	if sortSpans || pad {
		s.spans = mergeSpans(s.spans, pad)
		s.cur = nil
		return
	}

	var out []*span
	for _, sp := range s.spans {
		last := (*span)(nil)
		if len(out) > 0 {
			last = out[len(out)-1]
		}
		if last != nil && last.put+last.size() == sp.put {
			last.data = append(last.data, sp.data...)
			continue
		}
		out = append(out, sp)
	}
	s.spans = out
	s.cur = nil
}

// coalesceAll collects the spans of every named section into a fresh
// unnamed section, sorted by put address, overlaps resolved by sequence,
// and gaps zero-padded when requested.
func (a *assembler) coalesceAll(pad bool) *section {
	out := newSection("")
	var all []*span
	for _, s := range a.sections {
		all = append(all, s.spans...)
	}
	if len(all) == 0 {
		return out
	}
	out.spans = mergeSpans(all, pad)
	return out
}

// mergeSpans rebuilds a span list so that every output byte comes from
// exactly one input span: the one with the highest sequence covering that
// position. Contiguous runs merge; gaps are zero-filled if pad is set.
func mergeSpans(spans []*span, pad bool) []*span {
	sorted := make([]*span, 0, len(spans))
	for _, sp := range spans {
		if sp.size() > 0 {
			sorted = append(sorted, sp)
		}
	}
	if len(sorted) == 0 {
		return nil
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].sequence < sorted[j].sequence
	})

	lo, hi := sorted[0].put, sorted[0].put+sorted[0].size()
	for _, sp := range sorted[1:] {
		if sp.put < lo {
			lo = sp.put
		}
		if end := sp.put + sp.size(); end > hi {
			hi = end
		}
	}

	// Write spans in sequence order so higher sequences overwrite lower.
	buf := make([]byte, hi-lo)
	used := make([]bool, hi-lo)
	for _, sp := range sorted {
		copy(buf[sp.put-lo:], sp.data)
		for i := range sp.data {
			used[sp.put-lo+i] = true
		}
	}

	if pad {
		sp := &span{sequence: 1, org: lo, put: lo, data: buf}
		return []*span{sp}
	}

	var out []*span
	seq := 0
	for i := 0; i < len(used); {
		if !used[i] {
			i++
			continue
		}
		j := i
		for j < len(used) && used[j] {
			j++
		}
		seq++
		out = append(out, &span{
			sequence: seq,
			org:      lo + i,
			put:      lo + i,
			data:     append([]byte(nil), buf[i:j]...),
		})
		i = j
	}
	return out
}

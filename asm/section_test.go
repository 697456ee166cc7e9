// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"bytes"
	"testing"
)

func TestMergeSpansOverlap(t *testing.T) {
	spans := []*span{
		{sequence: 1, org: 0x1000, put: 0x1000, data: []byte{1, 2, 3, 4}},
		{sequence: 2, org: 0x1001, put: 0x1001, data: []byte{9}},
	}

	out := mergeSpans(spans, false)
	if len(out) != 1 {
		t.Fatalf("spans: got %d, want 1", len(out))
	}
	if !bytes.Equal(out[0].data, []byte{1, 9, 3, 4}) {
		t.Errorf("merged data: got %v", out[0].data)
	}
}

func TestMergeSpansSequenceWins(t *testing.T) {
	// Spans arrive out of order; the higher sequence must win no matter
	// where it sits in the list.
	spans := []*span{
		{sequence: 3, org: 0x1000, put: 0x1000, data: []byte{7, 7}},
		{sequence: 1, org: 0x1000, put: 0x1000, data: []byte{1, 1, 1}},
	}

	out := mergeSpans(spans, false)
	if len(out) != 1 {
		t.Fatalf("spans: got %d, want 1", len(out))
	}
	if !bytes.Equal(out[0].data, []byte{7, 7, 1}) {
		t.Errorf("merged data: got %v", out[0].data)
	}
}

func TestMergeSpansGap(t *testing.T) {
	spans := []*span{
		{sequence: 1, org: 0x1000, put: 0x1000, data: []byte{1}},
		{sequence: 2, org: 0x1004, put: 0x1004, data: []byte{2}},
	}

	out := mergeSpans(spans, false)
	if len(out) != 2 {
		t.Fatalf("spans: got %d, want 2", len(out))
	}
	if out[0].put != 0x1000 || out[1].put != 0x1004 {
		t.Errorf("span puts: got $%04X, $%04X", out[0].put, out[1].put)
	}

	padded := mergeSpans(spans, true)
	if len(padded) != 1 {
		t.Fatalf("padded spans: got %d, want 1", len(padded))
	}
	if !bytes.Equal(padded[0].data, []byte{1, 0, 0, 0, 2}) {
		t.Errorf("padded data: got %v", padded[0].data)
	}
}

func TestMergeSpansAbutting(t *testing.T) {
	spans := []*span{
		{sequence: 1, org: 0x1000, put: 0x1000, data: []byte{1, 2}},
		{sequence: 2, org: 0x1002, put: 0x1002, data: []byte{3}},
	}

	out := mergeSpans(spans, false)
	if len(out) != 1 {
		t.Fatalf("spans: got %d, want 1", len(out))
	}
	if !bytes.Equal(out[0].data, []byte{1, 2, 3}) {
		t.Errorf("merged data: got %v", out[0].data)
	}
}

func TestSectionCoalesce(t *testing.T) {
	s := newSection("test")
	s.spans = []*span{
		{sequence: 1, org: 0x1000, put: 0x1000, data: []byte{1, 2}},
		{sequence: 2, org: 0x1002, put: 0x1002, data: []byte{3}},
		{sequence: 3, org: 0x2000, put: 0x2000, data: []byte{4}},
	}

	s.coalesce(false, false)
	if len(s.spans) != 2 {
		t.Fatalf("spans: got %d, want 2", len(s.spans))
	}
	if !bytes.Equal(s.spans[0].data, []byte{1, 2, 3}) {
		t.Errorf("first span data: got %v", s.spans[0].data)
	}
	if s.spans[1].put != 0x2000 {
		t.Errorf("second span put: got $%04X", s.spans[1].put)
	}
}

func TestOutputFormats(t *testing.T) {
	src := "\tORG $1000\n\tFCB 1,2\n"
	assembly, err := AssembleWithConfig(
		bytes.NewReader([]byte(src)), "test", nil, 0, Config{Format: DragonDOS})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if _, err := assembly.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	want := []byte{0x55, 0x02, 0x10, 0x00, 0x00, 0x02, 0x10, 0x00, 0xaa, 1, 2}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("DragonDOS image: got %v, want %v", buf.Bytes(), want)
	}

	assembly.Format = CoCo
	buf.Reset()
	if _, err := assembly.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	want = []byte{0x00, 0x00, 0x02, 0x10, 0x00, 1, 2, 0xff, 0x00, 0x00, 0x10, 0x00}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("CoCo image: got %v, want %v", buf.Bytes(), want)
	}
}

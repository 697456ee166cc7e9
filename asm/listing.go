// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"fmt"
	"io"
)

// A ListingLine records one source line's contribution to the output: its
// address (or -1 when the line has none), the bytes it produced, and the
// original text.
type ListingLine struct {
	Addr int
	Data []byte
	Text string
}

// A Listing accumulates one ListingLine per source line of the final
// pass.
type Listing struct {
	Lines []ListingLine
}

func newListing() *Listing {
	return &Listing{}
}

// add appends a listing entry. When a span is supplied, the line's bytes
// are the last nbytes emitted into it.
func (li *Listing) add(addr, nbytes int, sp *span, text string) {
	var data []byte
	if sp != nil && nbytes > 0 && nbytes <= sp.size() {
		data = append(data, sp.data[sp.size()-nbytes:]...)
	}
	li.Lines = append(li.Lines, ListingLine{Addr: addr, Data: data, Text: text})
}

// WriteTo renders the listing as address, hex bytes and source text.
func (li *Listing) WriteTo(w io.Writer) (n int64, err error) {
	for _, l := range li.Lines {
		var nn int
		switch {
		case l.Addr < 0:
			nn, err = fmt.Fprintf(w, "%-22s%s\n", "", l.Text)
		default:
			nn, err = fmt.Fprintf(w, "%04X  %-16s%s\n", l.Addr, byteString(l.Data), l.Text)
		}
		n += int64(nn)
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// WriteSymbols writes the exported symbols as EQU statements, one per
// line, sorted by name.
func (a *Assembly) WriteSymbols(w io.Writer) (n int64, err error) {
	for _, e := range a.Exports {
		nn, err := fmt.Fprintf(w, "%-15s EQU $%04X\n", e.Name, e.Addr)
		n += int64(nn)
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

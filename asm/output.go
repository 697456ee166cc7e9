// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import "io"

// WriteTo saves the machine code into an output writer using the
// assembly's output format.
func (a *Assembly) WriteTo(w io.Writer) (n int64, err error) {
	switch a.Format {
	case DragonDOS:
		return a.writeDragonDOS(w)
	case CoCo:
		return a.writeCoCo(w)
	default:
		nn, err := w.Write(a.Code)
		return int64(nn), err
	}
}

// writeDragonDOS prepends the 9-byte DragonDOS filesystem header: a flag
// byte, the binary filetype, load address, length and exec address, and a
// trailing flag byte.
func (a *Assembly) writeDragonDOS(w io.Writer) (n int64, err error) {
	load, length, exec := a.Origin, len(a.Code), a.Entry
	header := []byte{
		0x55, 0x02,
		byte(load >> 8), byte(load),
		byte(length >> 8), byte(length),
		byte(exec >> 8), byte(exec),
		0xaa,
	}
	nn, err := w.Write(header)
	n = int64(nn)
	if err != nil {
		return n, err
	}
	nn, err = w.Write(a.Code)
	return n + int64(nn), err
}

// writeCoCo writes a CoCo RS-DOS binary: one data block holding the whole
// image followed by the end-of-file block carrying the exec address.
func (a *Assembly) writeCoCo(w io.Writer) (n int64, err error) {
	load, length, exec := a.Origin, len(a.Code), a.Entry
	header := []byte{
		0x00,
		byte(length >> 8), byte(length),
		byte(load >> 8), byte(load),
	}
	nn, err := w.Write(header)
	n = int64(nn)
	if err != nil {
		return n, err
	}
	nn, err = w.Write(a.Code)
	n += int64(nn)
	if err != nil {
		return n, err
	}
	trailer := []byte{0xff, 0x00, 0x00, byte(exec >> 8), byte(exec)}
	nn, err = w.Write(trailer)
	return n + int64(nn), err
}

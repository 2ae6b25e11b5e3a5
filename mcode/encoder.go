// encoder.go

// Copyright (C) 2023  Steve Merrony

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package mcode

import "github.com/SMerrony/dgemug/dg"

const (
	// RomSize is the number of addressable locations in each control ROM.
	RomSize = 32 * 1024

	// FlagsWidth is the width of the condition-flag part of a ROM address,
	// sitting immediately above the opcode part.
	FlagsWidth = 3

	opcodeMask = NumOpcodes - 1
	flagsMask  = 1<<FlagsWidth - 1

	// flagCndNotMet is the condition-evaluation line from the condition
	// module.  The sense is inverted on the board: the line is HIGH when
	// the guarding predicate is NOT satisfied.  The remaining flag lines
	// carry the latched carry and zero flags; this revision routes them
	// into the ROM address but never reads them.
	flagCndNotMet = 0b001
	flagCarry     = 0b010
	flagZero      = 0b100
)

// Decompose splits a ROM address into its condition-flag and opcode parts.
// The two parts partition the address: flags<<OpcodeWidth | opcode
// reconstructs it.
func Decompose(addr dg.PhysAddrT) (flags byte, opcode dg.WordT) {
	return byte(addr>>OpcodeWidth) & flagsMask, dg.WordT(addr & opcodeMask)
}

// Encode maps one control ROM address to the control word that must be
// burned there.  It is total over [0, RomSize): reserved opcodes encode as
// NOP, and a conditional opcode whose condition is not met encodes as NOP
// with INSTR_SUPPRESS asserted so the operand word following it in the
// instruction stream is stepped over rather than decoded.
func Encode(addr dg.PhysAddrT) dg.QwordT {
	flags, opcode := Decompose(addr)

	mop, found := opcodeTable[opcode]
	if !found {
		return NopWord
	}
	if mop.conditional && flags&flagCndNotMet != 0 {
		return NopWord | fldInstrSuppress.val(1)
	}
	return mop.word
}

// controlword.go

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

// Package mcode defines the control-word layout and opcode table for the
// 16-bit breadboard CPU and maps control ROM addresses to control words.
package mcode

import (
	"fmt"

	"github.com/SMerrony/dgemug/dg"
)

// WordWidth is the width of one control word in bits.  The physical ROMs
// are byte-wide, so the word is split across WordWidth/8 devices.
const WordWidth = 64

// A fieldT names one contiguous bit range of the control word.  The offset
// and width are part of the hardware contract - renumbering a field means
// rewiring the boards, so they are fixed here and nowhere else.
type fieldT struct {
	name   string
	offset uint
	width  uint
}

// val packs v into the field's bit range.  An over-wide value is a mistake
// in the opcode table, not a runtime condition, so it panics.
func (f fieldT) val(v uint64) dg.QwordT {
	if v >= 1<<f.width {
		panic(fmt.Sprintf("mcode: value %#x does not fit %d-bit field %s", v, f.width, f.name))
	}
	return dg.QwordT(v) << f.offset
}

// get extracts the field's value from a packed control word.
func (f fieldT) get(cw dg.QwordT) uint64 {
	return uint64(cw>>f.offset) & (1<<f.width - 1)
}

// The control-word fields, least-significant first.
var (
	fldMainBus  = fieldT{"MAIN_BUS_ASSERT", 0, 6}
	fldAddrBus1 = fieldT{"ADDR_BUS_1_ASSERT", 6, 3}

	// register-transfer commands, one 2-bit field per stateful register
	fldPcCmd    = fieldT{"PC_CMD", 9, 2}
	fldSpCmd    = fieldT{"SP_CMD", 11, 2}
	fldRaCmd    = fieldT{"RA_CMD", 13, 2}
	fldIntPcCmd = fieldT{"INT_PC_CMD", 15, 2}
	fldIntSpCmd = fieldT{"INT_SP_CMD", 17, 2}
	fldIntRaCmd = fieldT{"INT_RA_CMD", 19, 2}

	// single-bit load enables for the general registers, R1 first
	fldRegLoad [numDataRegs]fieldT

	fldAndLatch      = fieldT{"AND_LATCH", 33, 1}
	fldInstrSuppress = fieldT{"INSTR_SUPPRESS", 34, 1}
	fldLatchC        = fieldT{"LATCH_C", 35, 1}
	fldLatchZ        = fieldT{"LATCH_Z", 36, 1}
	fldLatchN        = fieldT{"LATCH_N", 37, 1}
	fldLatchV        = fieldT{"LATCH_V", 38, 1}
	fldLatchL        = fieldT{"LATCH_L", 39, 1}
	fldStc           = fieldT{"STC", 40, 1}
	fldClc           = fieldT{"CLC", 41, 1}

	// spare lines, must stay de-asserted
	fldUnused = fieldT{"UNUSED", 42, 22}
)

// numDataRegs is the count of general-purpose registers R1..R12.
const numDataRegs = 12

// MAIN_BUS_ASSERT encodings - which unit drives the main bus.  Encoding 0
// leaves the bus undriven, which is the field's no-op.
const (
	mainBusNone = iota
	mainBusR1
	mainBusR2
	mainBusR3
	mainBusR4
	mainBusR5
	mainBusR6
	mainBusR7
	mainBusR8
	mainBusR9
	mainBusR10
	mainBusR11
	mainBusR12
	mainBusSP
	mainBusRA
	mainBusPC
	mainBusIntPC
	mainBusIntSP
	mainBusIntRA
	mainBusALU
	mainBusMEM
	mainBusFETCH
	mainBusDEV01
	mainBusDEV02
	mainBusDEV03
	mainBusDEV04
	mainBusDEV05
	mainBusDEV06
	mainBusDEV07
	mainBusDEV08
	mainBusDEV09
	mainBusDEV10
	mainBusCTL01
	mainBusCTL02
	mainBusCTL03
	mainBusCTL04
	mainBusCTL05
	mainBusCTL06
	mainBusCTL07
	mainBusCTL08
	mainBusCTL09
	mainBusCTL10
)

// ADDR_BUS_1_ASSERT encodings.  The PC drives address bus 1 unless a rule
// says otherwise, so PC is encoding 0.
const (
	addrBus1PC = iota
	addrBus1RA
	addrBus1SP
	addrBus1IntPC
	addrBus1IntSP
	addrBus1IntRA
)

// Register-transfer command encodings, shared by all the 2-bit xx_CMD fields.
const (
	regHold = iota
	regLoad
	regInc
	regDec
)

// mainBusReg returns the MAIN_BUS_ASSERT encoding for general register r (1-based).
func mainBusReg(r int) uint64 {
	if r < 1 || r > numDataRegs {
		panic(fmt.Sprintf("mcode: no general register R%d", r))
	}
	return uint64(mainBusR1 + r - 1)
}

// regLoadField returns the load-enable field for general register r (1-based).
func regLoadField(r int) fieldT {
	if r < 1 || r > numDataRegs {
		panic(fmt.Sprintf("mcode: no general register R%d", r))
	}
	return fldRegLoad[r-1]
}

// checkFieldLayout verifies that the fields tile the control word exactly:
// every bit in exactly one field, no overlaps, no gaps.
func checkFieldLayout() {
	fields := []fieldT{
		fldMainBus, fldAddrBus1,
		fldPcCmd, fldSpCmd, fldRaCmd, fldIntPcCmd, fldIntSpCmd, fldIntRaCmd,
		fldAndLatch, fldInstrSuppress,
		fldLatchC, fldLatchZ, fldLatchN, fldLatchV, fldLatchL,
		fldStc, fldClc, fldUnused,
	}
	fields = append(fields, fldRegLoad[:]...)

	var seen dg.QwordT
	for _, f := range fields {
		if f.offset+f.width > WordWidth {
			panic(fmt.Sprintf("mcode: field %s runs past bit %d", f.name, WordWidth-1))
		}
		mask := dg.QwordT(1<<f.width-1) << f.offset
		if seen&mask != 0 {
			panic(fmt.Sprintf("mcode: field %s overlaps another field", f.name))
		}
		seen |= mask
	}
	if seen != ^dg.QwordT(0) {
		panic("mcode: control word has bits belonging to no field")
	}
}

func init() {
	for r := 0; r < numDataRegs; r++ {
		fldRegLoad[r] = fieldT{fmt.Sprintf("R%d_LOAD", r+1), uint(21 + r), 1}
	}
	checkFieldLayout()
	opcodesInit()
}

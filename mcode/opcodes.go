// opcodes.go

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

import (
	"fmt"

	"github.com/SMerrony/dgemug/dg"
)

// Opcode numbering for the 16-bit CPU.  This enumeration is owned by the
// instruction-set definition; the ROM compiler consumes it as-is and never
// infers anything from the numeric value of an opcode.  Opcodes not listed
// here are reserved and encode as NOP.
const (
	// OpcodeWidth is the width of the opcode part of a ROM address.
	OpcodeWidth = 12
	// NumOpcodes is the size of the opcode space.
	NumOpcodes = 1 << OpcodeWidth

	opNOP dg.WordT = 0x000

	// register housekeeping
	opCLC   dg.WordT = 0x010
	opSTC   dg.WordT = 0x011
	opINCSP dg.WordT = 0x012
	opDECSP dg.WordT = 0x013
	opINCRA dg.WordT = 0x014
	opDECRA dg.WordT = 0x015

	// family bases - see the opXXX helpers below for member numbering
	opMovRRBase   dg.WordT = 0x100 // MOV Rd,Rs
	opMovRImmBase dg.WordT = 0x200 // MOV Rn,<imm>
	opMOVSPI      dg.WordT = 0x210 // MOV SP,<imm>
	opMOVRAI      dg.WordT = 0x211 // MOV RA,<imm>
	opMovRDevBase dg.WordT = 0x220 // MOV R1,DEVnn
	opMovRCtlBase dg.WordT = 0x230 // MOV R1,CTLnn
	opJMPI        dg.WordT = 0x300 // JMP <imm>
	opJMPRA       dg.WordT = 0x301 // JMP RA
	opAddBase     dg.WordT = 0x310 // ADD Rn
)

// opMovRR numbers MOV Rd,Rs: dst and src registers in the two low nybbles,
// 0-based.  With 12 registers the family tops out at 0x1bb.
func opMovRR(dst, src int) dg.WordT {
	if dst < 1 || dst > numDataRegs || src < 1 || src > numDataRegs || dst == src {
		panic(fmt.Sprintf("mcode: no MOV R%d,R%d opcode", dst, src))
	}
	return opMovRRBase | dg.WordT(dst-1)<<4 | dg.WordT(src-1)
}

// opMovRImm numbers the 2-word MOV Rn,<imm> family.
func opMovRImm(n int) dg.WordT {
	if n < 1 || n > numDataRegs {
		panic(fmt.Sprintf("mcode: no MOV R%d,<imm> opcode", n))
	}
	return opMovRImmBase | dg.WordT(n-1)
}

// opMovRDev numbers MOV R1,DEVnn for device ports 1..10.
func opMovRDev(dev int) dg.WordT {
	if dev < 1 || dev > 10 {
		panic(fmt.Sprintf("mcode: no device port DEV%02d", dev))
	}
	return opMovRDevBase | dg.WordT(dev-1)
}

// opMovRCtl numbers MOV R1,CTLnn for control-module ports 1..10.
func opMovRCtl(ctl int) dg.WordT {
	if ctl < 1 || ctl > 10 {
		panic(fmt.Sprintf("mcode: no control port CTL%02d", ctl))
	}
	return opMovRCtlBase | dg.WordT(ctl-1)
}

// opAdd numbers ADD Rn for n in 1..12.
func opAdd(n int) dg.WordT {
	if n < 1 || n > numDataRegs {
		panic(fmt.Sprintf("mcode: no ADD R%d opcode", n))
	}
	return opAddBase | dg.WordT(n-1)
}

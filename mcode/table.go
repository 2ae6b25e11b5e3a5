// table.go

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

// A microOpT is the construction rule for one opcode: the control word to
// emit when the guarding condition is met (or always, for unconditional
// opcodes) and whether the opcode is subject to conditional suppression.
// Conditionality is configuration carried here - it changed between board
// revisions, so nothing else in the compiler may assume it.
type microOpT struct {
	mnemonic    string
	word        dg.QwordT
	conditional bool
}

var opcodeTable = map[dg.WordT]microOpT{}

// NopWord is the control word for NOP and for every reserved opcode: keep
// the PC on address bus 1, select the instruction fetch on the main bus and
// bump the PC.  Deliberately not the all-zeroes pattern.
var NopWord = fldAddrBus1.val(addrBus1PC) |
	fldMainBus.val(mainBusFETCH) |
	fldPcCmd.val(regInc)

func defOpcode(opcode dg.WordT, mnemonic string, conditional bool, word dg.QwordT) {
	if opcode >= NumOpcodes {
		panic(fmt.Sprintf("mcode: opcode %#x outside the %d-bit opcode space", opcode, OpcodeWidth))
	}
	if prev, dup := opcodeTable[opcode]; dup {
		panic(fmt.Sprintf("mcode: opcode %#x defined twice (%s and %s)", opcode, prev.mnemonic, mnemonic))
	}
	opcodeTable[opcode] = microOpT{mnemonic, word, conditional}
}

// opcodesInit fills in the construction rule for every implemented opcode.
// Every rule asserts at most one main-bus driver and one address-bus driver;
// a conflict here is a table bug, not something the encoder can repair.
func opcodesInit() {
	defOpcode(opNOP, "NOP", false, NopWord)

	// carry housekeeping rides on an ordinary fetch cycle
	defOpcode(opCLC, "CLC", false, NopWord|fldClc.val(1))
	defOpcode(opSTC, "STC", false, NopWord|fldStc.val(1))

	defOpcode(opINCSP, "INC SP", false, NopWord|fldSpCmd.val(regInc))
	defOpcode(opDECSP, "DEC SP", false, NopWord|fldSpCmd.val(regDec))
	defOpcode(opINCRA, "INC RA", false, NopWord|fldRaCmd.val(regInc))
	defOpcode(opDECRA, "DEC RA", false, NopWord|fldRaCmd.val(regDec))

	// MOV Rd,Rs - source register drives the main bus, destination loads
	// and latches
	for dst := 1; dst <= numDataRegs; dst++ {
		for src := 1; src <= numDataRegs; src++ {
			if dst == src {
				continue
			}
			defOpcode(opMovRR(dst, src), fmt.Sprintf("MOV R%d,R%d", dst, src), true,
				fldAddrBus1.val(addrBus1PC)|
					fldMainBus.val(mainBusReg(src))|
					regLoadField(dst).val(1)|
					fldAndLatch.val(1)|
					fldPcCmd.val(regInc))
		}
	}

	// MOV Rn,<imm> - the operand word at PC drives the main bus via the
	// memory unit; the PC increment steps over it
	for n := 1; n <= numDataRegs; n++ {
		defOpcode(opMovRImm(n), fmt.Sprintf("MOV R%d,<imm>", n), true,
			fldAddrBus1.val(addrBus1PC)|
				fldMainBus.val(mainBusMEM)|
				regLoadField(n).val(1)|
				fldAndLatch.val(1)|
				fldPcCmd.val(regInc))
	}
	defOpcode(opMOVSPI, "MOV SP,<imm>", true,
		fldAddrBus1.val(addrBus1PC)|
			fldMainBus.val(mainBusMEM)|
			fldSpCmd.val(regLoad)|
			fldAndLatch.val(1)|
			fldPcCmd.val(regInc))
	defOpcode(opMOVRAI, "MOV RA,<imm>", true,
		fldAddrBus1.val(addrBus1PC)|
			fldMainBus.val(mainBusMEM)|
			fldRaCmd.val(regLoad)|
			fldAndLatch.val(1)|
			fldPcCmd.val(regInc))

	// device and control-module port reads into R1
	for dev := 1; dev <= 10; dev++ {
		defOpcode(opMovRDev(dev), fmt.Sprintf("MOV R1,DEV%02d", dev), true,
			fldAddrBus1.val(addrBus1PC)|
				fldMainBus.val(uint64(mainBusDEV01+dev-1))|
				regLoadField(1).val(1)|
				fldAndLatch.val(1)|
				fldPcCmd.val(regInc))
	}
	for ctl := 1; ctl <= 10; ctl++ {
		defOpcode(opMovRCtl(ctl), fmt.Sprintf("MOV R1,CTL%02d", ctl), true,
			fldAddrBus1.val(addrBus1PC)|
				fldMainBus.val(uint64(mainBusCTL01+ctl-1))|
				regLoadField(1).val(1)|
				fldAndLatch.val(1)|
				fldPcCmd.val(regInc))
	}

	// jumps redirect the PC instead of stepping it
	defOpcode(opJMPI, "JMP <imm>", true,
		fldAddrBus1.val(addrBus1PC)|
			fldMainBus.val(mainBusMEM)|
			fldPcCmd.val(regLoad)|
			fldAndLatch.val(1))
	defOpcode(opJMPRA, "JMP RA", true,
		fldAddrBus1.val(addrBus1PC)|
			fldMainBus.val(mainBusRA)|
			fldPcCmd.val(regLoad)|
			fldAndLatch.val(1))

	// ADD Rn - ALU result back into Rn, arithmetic flags latched
	for n := 1; n <= numDataRegs; n++ {
		defOpcode(opAdd(n), fmt.Sprintf("ADD R%d", n), false,
			fldAddrBus1.val(addrBus1PC)|
				fldMainBus.val(mainBusALU)|
				regLoadField(n).val(1)|
				fldAndLatch.val(1)|
				fldLatchC.val(1)|
				fldLatchZ.val(1)|
				fldLatchN.val(1)|
				fldLatchV.val(1)|
				fldPcCmd.val(regInc))
	}
}

// OpcodeInfoT describes one opcode table entry for callers outside the
// package (trace output, table statistics, tests).
type OpcodeInfoT struct {
	Mnemonic    string
	Word        dg.QwordT
	Conditional bool
}

// OpcodeInfo returns the construction rule for an opcode, or ok==false for
// a reserved opcode (which encodes as NOP).
func OpcodeInfo(opcode dg.WordT) (OpcodeInfoT, bool) {
	mop, found := opcodeTable[opcode]
	if !found {
		return OpcodeInfoT{}, false
	}
	return OpcodeInfoT{mop.mnemonic, mop.word, mop.conditional}, true
}

// TableStatsT summarises the opcode table for the -summary CLI option.
type TableStatsT struct {
	Mapped        int // opcodes with an explicit rule
	Conditional   int // of which subject to conditional suppression
	DistinctWords int // distinct base control words across the table
}

// TableStats walks the opcode table and returns its summary counts.
func TableStats() TableStatsT {
	var stats TableStatsT
	distinct := make(map[dg.QwordT]bool)
	for _, mop := range opcodeTable {
		stats.Mapped++
		if mop.conditional {
			stats.Conditional++
		}
		distinct[mop.word] = true
	}
	stats.DistinctWords = len(distinct)
	return stats
}

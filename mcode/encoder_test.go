// encoder_test.go
package mcode

import (
	"testing"

	"github.com/SMerrony/dgemug/dg"
)

func TestEncodeTotality(t *testing.T) {
	// every address must encode without panicking, and to a non-zero word
	// (the no-op word itself is non-zero)
	for addr := dg.PhysAddrT(0); addr < RomSize; addr++ {
		if Encode(addr) == 0 {
			t.Fatalf("Encode(%#x) returned the all-zeroes word", uint32(addr))
		}
	}
}

func TestDecomposePartition(t *testing.T) {
	for addr := dg.PhysAddrT(0); addr < RomSize; addr++ {
		flags, opcode := Decompose(addr)
		if uint32(flags) > flagsMask {
			t.Fatalf("Flags %#x out of range for address %#x", flags, uint32(addr))
		}
		if opcode > opcodeMask {
			t.Fatalf("Opcode %#x out of range for address %#x", opcode, uint32(addr))
		}
		recombined := dg.PhysAddrT(flags)<<OpcodeWidth | dg.PhysAddrT(opcode)
		if recombined != addr {
			t.Fatalf("Expected %#x, got %#x", uint32(addr), uint32(recombined))
		}
	}
}

func TestUnmappedOpcodeIsNop(t *testing.T) {
	unmapped := []dg.WordT{0x001, 0x0ff, 0x1bc, 0x3ff, 0xfff}
	for _, opcode := range unmapped {
		if _, found := opcodeTable[opcode]; found {
			t.Fatal("Test expects opcode to be unmapped: ", opcode)
		}
		for flags := dg.PhysAddrT(0); flags <= flagsMask; flags++ {
			addr := flags<<OpcodeWidth | dg.PhysAddrT(opcode)
			r := Encode(addr)
			if r != NopWord {
				t.Errorf("Expected NOP word for reserved opcode %#x flags %#x, got %#x",
					opcode, uint32(flags), uint64(r))
			}
		}
	}
}

func TestConditionalSuppression(t *testing.T) {
	opcode := opMovRImm(1) // MOV R1,<imm> - conditional, 2-word
	info, found := OpcodeInfo(opcode)
	if !found || !info.Conditional {
		t.Fatal("Expected MOV R1,<imm> to be a conditional opcode")
	}
	suppressed := NopWord | fldInstrSuppress.val(1)
	// must hold for every value of the unrelated flag bits
	for flags := dg.PhysAddrT(0); flags <= flagsMask; flags++ {
		addr := flags<<OpcodeWidth | dg.PhysAddrT(opcode)
		r := Encode(addr)
		if flags&flagCndNotMet != 0 {
			if r != suppressed {
				t.Errorf("Expected suppressed NOP for flags %#x, got %#x", uint32(flags), uint64(r))
			}
		} else {
			if r != info.Word {
				t.Errorf("Expected base word for flags %#x, got %#x", uint32(flags), uint64(r))
			}
		}
	}
}

func TestUnconditionalInvariance(t *testing.T) {
	info, found := OpcodeInfo(opSTC)
	if !found || info.Conditional {
		t.Fatal("Expected STC to be an unconditional opcode")
	}
	for flags := dg.PhysAddrT(0); flags <= flagsMask; flags++ {
		addr := flags<<OpcodeWidth | dg.PhysAddrT(opSTC)
		r := Encode(addr)
		if r != info.Word {
			t.Errorf("Expected STC word for flags %#x, got %#x", uint32(flags), uint64(r))
		}
	}
	if fldStc.get(info.Word) != 1 {
		t.Error("Expected STC word to assert the STC line")
	}
}

// The concrete check from the hardware notes: NOP at opcode 0, reserved
// opcode 1, and the same opcode under different flags all give the NOP word.
func TestKnownAddresses(t *testing.T) {
	if r := Encode(0); r != NopWord {
		t.Error("Expected NOP word at address 0, got ", uint64(r))
	}
	if r := Encode(4096); r != NopWord {
		t.Error("Expected NOP word at address 4096, got ", uint64(r))
	}
	if r := Encode(1); r != NopWord {
		t.Error("Expected NOP word at address 1, got ", uint64(r))
	}
}

func TestMovRegRegWord(t *testing.T) {
	info, found := OpcodeInfo(opMovRR(3, 7))
	if !found {
		t.Fatal("Expected MOV R3,R7 to be mapped")
	}
	if info.Mnemonic != "MOV R3,R7" {
		t.Error("Expected mnemonic MOV R3,R7, got ", info.Mnemonic)
	}
	if fldMainBus.get(info.Word) != mainBusReg(7) {
		t.Error("Expected R7 to drive the main bus, got ", fldMainBus.get(info.Word))
	}
	if regLoadField(3).get(info.Word) != 1 {
		t.Error("Expected R3_LOAD to be asserted")
	}
	if regLoadField(7).get(info.Word) != 0 {
		t.Error("R7_LOAD must not be asserted")
	}
	if fldAndLatch.get(info.Word) != 1 {
		t.Error("Expected AND_LATCH to be asserted")
	}
}

func TestJumpLoadsPc(t *testing.T) {
	ttable := []struct {
		opcode dg.WordT
		driver uint64
	}{
		{opJMPI, mainBusMEM},
		{opJMPRA, mainBusRA},
	}
	for _, tt := range ttable {
		info, found := OpcodeInfo(tt.opcode)
		if !found || !info.Conditional {
			t.Fatal("Expected jump opcode to be mapped and conditional: ", tt.opcode)
		}
		if fldPcCmd.get(info.Word) != regLoad {
			t.Error("Expected jump to load the PC, got ", fldPcCmd.get(info.Word))
		}
		if fldMainBus.get(info.Word) != tt.driver {
			t.Error("Expected main-bus driver ", tt.driver, ", got ", fldMainBus.get(info.Word))
		}
	}
}

func TestAddLatchesArithFlags(t *testing.T) {
	info, found := OpcodeInfo(opAdd(5))
	if !found || info.Conditional {
		t.Fatal("Expected ADD R5 to be mapped and unconditional")
	}
	for _, f := range []fieldT{fldLatchC, fldLatchZ, fldLatchN, fldLatchV} {
		if f.get(info.Word) != 1 {
			t.Error("Expected ADD to latch ", f.name)
		}
	}
	if fldLatchL.get(info.Word) != 0 {
		t.Error("ADD must not latch the link flag")
	}
	if fldMainBus.get(info.Word) != mainBusALU {
		t.Error("Expected the ALU to drive the main bus, got ", fldMainBus.get(info.Word))
	}
}

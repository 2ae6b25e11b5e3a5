// image_test.go

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

package rom

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/SMerrony/dgemug/dg"

	"github.com/eryjus/control-logic/mcode"
)

func TestBuildImagesSize(t *testing.T) {
	planes := BuildImages(mcode.Encode, false)
	if len(planes) != NumPlanes {
		t.Error("Expected ", NumPlanes, " planes, got ", len(planes))
	}
	for k, plane := range planes {
		if len(plane) != mcode.RomSize {
			t.Error("Expected plane ", k+1, " to hold ", mcode.RomSize, " bytes, got ", len(plane))
		}
	}
}

func TestPlaneReconstruction(t *testing.T) {
	planes := BuildImages(mcode.Encode, false)
	// reassembling byte i of each plane little-endian must reproduce the
	// encoder's output exactly
	for addr := dg.PhysAddrT(0); addr < mcode.RomSize; addr++ {
		var word dg.QwordT
		for k := NumPlanes - 1; k >= 0; k-- {
			word = word<<8 | dg.QwordT(planes[k][addr])
		}
		if expected := mcode.Encode(addr); word != expected {
			t.Fatalf("Expected %#x at address %#x, got %#x", uint64(expected), uint32(addr), uint64(word))
		}
	}
}

func TestPlaneFileName(t *testing.T) {
	ttable := []struct {
		base string
		k    int
		name string
	}{
		{"ctrl", 1, "ctrl1.bin"},
		{"ctrl", 8, "ctrl8.bin"},
		{"cpu-rom", 3, "cpu-rom3.bin"},
	}
	for _, tt := range ttable {
		r := PlaneFileName(tt.base, tt.k)
		if r != tt.name {
			t.Error("Expected ", tt.name, ", got ", r)
		}
	}
}

func TestWriteImages(t *testing.T) {
	outDir := t.TempDir()
	planes := BuildImages(mcode.Encode, false)
	failed := WriteImages(planes, outDir, "ctrl")
	if failed != 0 {
		t.Fatal("Expected no write failures, got ", failed)
	}
	for k := 1; k <= NumPlanes; k++ {
		fileName := filepath.Join(outDir, PlaneFileName("ctrl", k))
		fi, err := os.Stat(fileName)
		if err != nil {
			t.Fatal("Expected image file to exist: ", err)
		}
		if fi.Size() != mcode.RomSize {
			t.Error("Expected ", mcode.RomSize, " bytes in ", fileName, ", got ", fi.Size())
		}
	}
	// address 0 holds NOP, so byte 0 of plane 1 is the low byte of the
	// no-op word
	img, err := os.ReadFile(filepath.Join(outDir, PlaneFileName("ctrl", 1)))
	if err != nil {
		t.Fatal("Could not read back image: ", err)
	}
	if img[0] != byte(mcode.NopWord) {
		t.Error("Expected ", byte(mcode.NopWord), " at image start, got ", img[0])
	}
}

func TestWriteImagesBadDestination(t *testing.T) {
	planes := BuildImages(mcode.Encode, false)
	badDir := filepath.Join(t.TempDir(), "no", "such", "dir")
	failed := WriteImages(planes, badDir, "ctrl")
	// an unusable destination is reported per plane but never panics or
	// aborts the run
	if failed != NumPlanes {
		t.Error("Expected ", NumPlanes, " failed planes, got ", failed)
	}
}

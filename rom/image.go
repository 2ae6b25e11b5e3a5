// image.go

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

// Package rom drives the control-word encoder across the whole ROM address
// space and serialises the resulting table as one flat binary image per
// byte-wide ROM device.
package rom

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/SMerrony/dgemug/dg"
	"github.com/SMerrony/dgemug/logging"
	"github.com/sirupsen/logrus"

	"github.com/eryjus/control-logic/mcode"
)

// NumPlanes is the number of byte-wide ROM devices the control word is
// split across.
const NumPlanes = (mcode.WordWidth + 7) / 8

// An EncodeFunc maps one ROM address to its control word.
type EncodeFunc func(dg.PhysAddrT) dg.QwordT

// BuildImages computes the control word for every address and slices the
// table into NumPlanes byte planes: plane k holds bits [8k, 8k+7] of every
// word, so plane 0 is the least-significant ROM.  With debugLogging on,
// every non-default encoding goes to the debug log (dumped at exit) -
// like the emulator's disassembly trace it costs a few times the normal
// run time, so it is off by default.
func BuildImages(encode EncodeFunc, debugLogging bool) [][]byte {
	planes := make([][]byte, NumPlanes)
	for k := range planes {
		planes[k] = make([]byte, mcode.RomSize)
	}
	for addr := dg.PhysAddrT(0); addr < mcode.RomSize; addr++ {
		word := encode(addr)
		for k := 0; k < NumPlanes; k++ {
			planes[k][addr] = byte(word >> (8 * uint(k)))
		}
		if debugLogging && word != mcode.NopWord {
			logging.DebugPrint(logging.DebugLog, "%#06x: %#018x\n", uint32(addr), uint64(word))
		}
	}
	return planes
}

// PlaneFileName names the image file for plane k (1-based, so the
// least-significant ROM is <base>1.bin).
func PlaneFileName(baseName string, k int) string {
	return fmt.Sprintf("%s%d.bin", baseName, k)
}

// WriteImages writes each plane to outDir as a flat binary file of exactly
// mcode.RomSize bytes - no header, no padding, address-ascending.  A plane
// that cannot be written is reported and skipped; the remaining planes are
// still written.  Returns the number of planes that failed.
func WriteImages(planes [][]byte, outDir, baseName string) int {
	failed := 0
	for k, plane := range planes {
		fileName := filepath.Join(outDir, PlaneFileName(baseName, k+1))
		if err := writePlane(fileName, plane); err != nil {
			logrus.WithField("image", fileName).Error("could not write ROM image: ", err)
			failed++
			continue
		}
		logrus.Debugf("wrote %s (%d bytes)", fileName, len(plane))
	}
	return failed
}

func writePlane(fileName string, plane []byte) error {
	f, err := os.Create(fileName)
	if err != nil {
		return err
	}
	if _, err := f.Write(plane); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

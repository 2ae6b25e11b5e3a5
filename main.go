// control-logic project main.go

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

package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/SMerrony/dgemug/logging"
	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"

	"github.com/eryjus/control-logic/mcode"
	"github.com/eryjus/control-logic/rom"
)

const (
	// Displayable name of the ROM compiler
	appName = "CtrlROM"
	// appVersion number
	appVersion = "v0.2.0"
)

// flags
var (
	outDirFlag   = flag.String("outdir", ".", "destination `directory` for the ROM image files")
	baseNameFlag = flag.String("basename", "ctrl", "stem of the ROM image file names")
	verboseFlag  = flag.Bool("verbose", false, "trace every non-default encoding to the debug log (dumped to logs/ at exit)")
	summaryFlag  = flag.Bool("summary", false, "print opcode table statistics after generation")
	profileFlag  = flag.String("profile", "", "write a `cpu|mem` profile of the run")
	versionFlag  = flag.Bool("version", false, "show version and exit")
)

func main() {
	flag.Parse()
	if *versionFlag {
		fmt.Printf("%s %s\n", appName, appVersion)
		return
	}
	os.Exit(run())
}

func run() int {
	switch *profileFlag {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	default:
		logrus.Errorf("unknown profile type <%s>, expecting cpu or mem", *profileFlag)
		return 1
	}

	logrus.Infof("%s %s generating %d x %d-byte control ROM images",
		appName, appVersion, rom.NumPlanes, mcode.RomSize)

	startTime := time.Now()
	planes := rom.BuildImages(mcode.Encode, *verboseFlag)
	failed := rom.WriteImages(planes, *outDirFlag, *baseNameFlag)
	logrus.Infof("generation took %s", time.Since(startTime).Round(time.Millisecond))

	if *summaryFlag {
		stats := mcode.TableStats()
		fmt.Printf("Opcodes mapped:         %d of %d\n", stats.Mapped, mcode.NumOpcodes)
		fmt.Printf("  of which conditional: %d\n", stats.Conditional)
		fmt.Printf("Distinct control words: %d\n", stats.DistinctWords)
	}

	if *verboseFlag {
		logging.DebugLogsDump("logs/")
	}

	if failed > 0 {
		logrus.Errorf("%d of %d ROM images could not be written", failed, rom.NumPlanes)
		return 1
	}
	logrus.Infof("all %d ROM images written to %s", rom.NumPlanes, *outDirFlag)
	return 0
}

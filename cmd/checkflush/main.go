// Command checkflush disassembles a hex-encoded byte blob and reports
// whether it contains the CLFLUSH, MFENCE, LFENCE, and RDTSCP
// instructions timing.NewHardwareClock's clock is built from. It exists to let a
// developer confirm, on an unfamiliar toolchain or compiler version,
// that hardware_amd64.s still assembles to the opcodes the timing
// model assumes - a mis-assembled CLFLUSH silently turns every
// measurement into noise instead of a build error.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/scale-snu/sudoku/asmkit"
	"github.com/scale-snu/sudoku/conv"
)

const usage = `usage: checkflush [-i hex|raw] FILE

FILE contains the machine code to disassemble: a hex array (optionally
mixed with C comments, as produced by objdump -d | grep) by default,
or raw bytes with -i raw.`

func main() {
	inputFormat := flag.String("i", "hex", "input format: hex or raw")
	flag.Usage = func() { fmt.Fprintln(os.Stderr, usage) }
	flag.Parse()

	logger := log.Default()
	logger.SetFlags(0)

	if flag.NArg() != 1 {
		logger.Fatalln(usage)
	}

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		logger.Fatalf("fatal: %v", err)
	}
	defer f.Close()

	var raw []byte
	switch *inputFormat {
	case "hex":
		raw, err = conv.HexArrayToBytes(f)
	case "raw":
		raw, err = os.ReadFile(flag.Arg(0))
	default:
		logger.Fatalf("fatal: unsupported input format: %q", *inputFormat)
	}
	if err != nil {
		logger.Fatalf("fatal: failed to read input - %v", err)
	}

	dis, err := asmkit.NewDisassembler(asmkit.DisassemblerConfig{
		Syntax:     asmkit.IntelSyntax,
		ArchConfig: asmkit.X86Config{Bits: 64},
	})
	if err != nil {
		logger.Fatalf("fatal: %v", err)
	}

	wanted := map[string]bool{
		"CLFLUSH": false,
		"MFENCE":  false,
		"LFENCE":  false,
		"RDTSCP":  false,
	}

	err = dis.All(raw, func(inst asmkit.Inst) error {
		fmt.Printf("%#04x: %s\n", inst.Index, inst.Dis)

		mnemonic := mnemonicOf(inst.Dis)
		if _, ok := wanted[mnemonic]; ok {
			wanted[mnemonic] = true
		}
		return nil
	})
	if err != nil {
		logger.Fatalf("fatal: disassembly failed - %v", err)
	}

	missing := false
	for _, name := range []string{"CLFLUSH", "MFENCE", "LFENCE", "RDTSCP"} {
		if !wanted[name] {
			fmt.Printf("missing: %s\n", name)
			missing = true
		}
	}

	if missing {
		os.Exit(1)
	}
}

// mnemonicOf returns the upper-cased first word of an Intel-syntax
// disassembly line, e.g. "clflush (rax)" -> "CLFLUSH".
func mnemonicOf(dis string) string {
	word, _, _ := strings.Cut(dis, " ")
	return strings.ToUpper(word)
}

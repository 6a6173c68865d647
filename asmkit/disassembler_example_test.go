package asmkit_test

import (
	"encoding/hex"
	"fmt"
	"log"

	"github.com/scale-snu/sudoku/asmkit"
)

func ExampleDisassembler() {
	// exit(1) syscall shellcode by Charles Stevenson:
	// http://shell-storm.org/shellcode/files/shellcode-55.php
	hexEncodedInsts := "31c04089c3cd80"

	raw, err := hex.DecodeString(hexEncodedInsts)
	if err != nil {
		log.Fatalf("failed to decode hex - %v", err)
	}

	disass, err := asmkit.NewDisassembler(asmkit.DisassemblerConfig{
		Syntax:     asmkit.IntelSyntax,
		ArchConfig: asmkit.X86Config{Bits: 32},
	})
	if err != nil {
		log.Fatalf("failed to create disassembler - %v", err)
	}

	err = disass.All(raw, func(inst asmkit.Inst) error {
		fmt.Println(inst.Dis)
		return nil
	})
	if err != nil {
		log.Fatalf("disassembler failed - %v", err)
	}

	// Output:
	// xor eax, eax
	// inc eax
	// mov ebx, eax
	// int 0x80
}

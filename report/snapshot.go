package report

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/scale-snu/sudoku/bstruct"
)

// Snapshot is a fixed-layout binary checkpoint of a finished addressing
// run, written alongside the per-operation CSV logs a Sink produces.
// Unlike the CSV logs, which grow one row per measurement, a Snapshot
// is small enough to diff between runs on the same DIMM with a plain
// hex editor.
type Snapshot struct {
	NumAddressingFns uint32
	RowBits          uint64
	ColumnBits       uint64
	RankMask         uint64
	BankGroupMask    uint64
	BankAddrMask     uint64
}

// WriteSnapshotOrExit calls WriteSnapshot and passes any error to
// DefaultExitFn.
func WriteSnapshotOrExit(path string, s Snapshot) {
	if err := WriteSnapshot(path, s); err != nil {
		DefaultExitFn(err)
	}
}

// WriteSnapshot serializes s with bstruct, in big-endian field order
// matching the order fields are declared in, and writes it to path.
func WriteSnapshot(path string, s Snapshot) error {
	raw, err := bstruct.StructToBytes(s, binary.BigEndian, nil)
	if err != nil {
		return fmt.Errorf("failed to serialize snapshot - %w", err)
	}

	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot file %q - %w", path, err)
	}

	return nil
}

// SnapshotOf records how many functions fns holds and reduces each of
// rankFns, bankGroupFns and bankAddrFns to the mask bstruct can
// serialize: the bitwise OR of every function in that list.
func SnapshotOf(fns []uint64, rowBits, columnBits uint64, rankFns, bankGroupFns, bankAddrFns []uint64) Snapshot {
	return Snapshot{
		NumAddressingFns: uint32(len(fns)),
		RowBits:          rowBits,
		ColumnBits:       columnBits,
		RankMask:         orAll(rankFns),
		BankGroupMask:    orAll(bankGroupFns),
		BankAddrMask:     orAll(bankAddrFns),
	}
}

func orAll(fns []uint64) uint64 {
	var m uint64
	for _, f := range fns {
		m |= f
	}
	return m
}

package report

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSinkWritesHeaderAndRowsForStruct(t *testing.T) {
	dir := t.TempDir()
	prefix := filepath.Join(dir, "run")

	s, err := NewFileSink(prefix)
	if err != nil {
		t.Fatalf("NewFileSink: %v", err)
	}

	type row struct {
		Idx   int
		PAddr string
		Avg   float64
	}

	if err := s.WriteRow("single", row{Idx: 0, PAddr: HexU64(0x40), Avg: 12.5}); err != nil {
		t.Fatalf("WriteRow: %v", err)
	}
	if err := s.WriteRow("single", row{Idx: 1, PAddr: HexU64(0x80), Avg: 13.0}); err != nil {
		t.Fatalf("WriteRow: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(prefix + ".single.log")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	want := "Idx,PAddr,Avg\n0,0x40,12.5\n1,0x80,13\n"
	if string(data) != want {
		t.Fatalf("file contents = %q, want %q", string(data), want)
	}
}

func TestFileSinkSeparatesFilesPerOp(t *testing.T) {
	dir := t.TempDir()
	prefix := filepath.Join(dir, "run")

	s, err := NewFileSink(prefix)
	if err != nil {
		t.Fatalf("NewFileSink: %v", err)
	}
	defer s.Close()

	if err := s.WriteRow("a", 1, 2); err != nil {
		t.Fatalf("WriteRow a: %v", err)
	}
	if err := s.WriteRow("b", 3); err != nil {
		t.Fatalf("WriteRow b: %v", err)
	}

	if _, err := os.Stat(prefix + ".a.log"); err != nil {
		t.Fatalf("expected %s.a.log to exist: %v", prefix, err)
	}
	if _, err := os.Stat(prefix + ".b.log"); err != nil {
		t.Fatalf("expected %s.b.log to exist: %v", prefix, err)
	}
}

func TestNopSinkDiscardsRows(t *testing.T) {
	var s NopSink
	if err := s.WriteRow("anything", 1, 2, 3); err != nil {
		t.Fatalf("NopSink.WriteRow returned error: %v", err)
	}
}

func TestWriteSnapshotRoundTripsThroughBstruct(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.snapshot")

	snap := SnapshotOf(
		[]uint64{0x40, 0x80, 0x100},
		0x2000, 0x1f80,
		[]uint64{0x4000}, []uint64{0x8000, 0x10000}, []uint64{0x100000})

	if err := WriteSnapshot(path, snap); err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	// NumAddressingFns (uint32) + 5 uint64 fields, big-endian.
	const wantLen = 4 + 5*8
	if len(data) != wantLen {
		t.Fatalf("snapshot length = %d, want %d", len(data), wantLen)
	}

	gotNumFns := uint32(data[0])<<24 | uint32(data[1])<<16 | uint32(data[2])<<8 | uint32(data[3])
	if gotNumFns != 3 {
		t.Fatalf("NumAddressingFns = %d, want 3", gotNumFns)
	}
}

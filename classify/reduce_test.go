package classify

import "testing"

func TestReduceRowColumnExtractsMSBAndLSB(t *testing.T) {
	// row function 0b0110 has MSB at bit 2.
	// column function 0b1100 has LSB at bit 2.
	rowBits, colBits := ReduceRowColumn([]uint64{0b0110}, []uint64{0b1100})

	if rowBits != 0b0100 {
		t.Fatalf("rowBits = 0b%b, want 0b0100", rowBits)
	}
	if colBits != 0b0100 {
		t.Fatalf("colBits = 0b%b, want 0b0100", colBits)
	}
}

func TestReduceRowColumnDedupsSharedBit(t *testing.T) {
	// Two row functions both with MSB at bit 3: 0b1000 and 0b1010.
	// They're linearly independent, so both survive reduction, but
	// ReduceRowColumn must still only set bit 3 once.
	rowBits, _ := ReduceRowColumn([]uint64{0b1000, 0b1010}, nil)
	if rowBits != 0b1000 {
		t.Fatalf("rowBits = 0b%b, want 0b1000", rowBits)
	}
}

func TestReduceRowColumnEmptyInputsYieldZero(t *testing.T) {
	rowBits, colBits := ReduceRowColumn(nil, nil)
	if rowBits != 0 || colBits != 0 {
		t.Fatalf("got (0x%x, 0x%x), want (0, 0)", rowBits, colBits)
	}
}

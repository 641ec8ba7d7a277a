package fse

import (
	"testing"

	"github.com/cosnicolaou/zstd/internal/bitio"
)

// TestDecoderPeekAndUpdate drives a Decoder against a genuine bitio.Reverse
// stream: the initial state (0) and the state reached after one Update (1)
// are both checked against the published RFC 8878 Appendix A table values
// from TestRFC8878AppendixA, rather than against hand-picked Entry structs.
func TestDecoderPeekAndUpdate(t *testing.T) {
	counts := []int16{
		4, 3, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 1, 1, 1, 2, 2, 2, 2, 2, 2, 2, 2, 2, 3,
		2, 1, 1, 1, 1, 1, -1, -1, -1, -1,
	}
	dist := FromPredefined(counts, 6)
	table, err := BuildTable(dist)
	if err != nil {
		t.Fatal(err)
	}

	// Reverse stream: initial 6-bit read = 0 (state 0, symbol 0, n_bits 4),
	// then a 4-bit Update read = 1, transitioning to baseline(0)+1 = state 1
	// (symbol 0 again, per the Appendix A table).
	r, err := bitio.NewReverse([]byte{0x10, 0x04})
	if err != nil {
		t.Fatal(err)
	}

	dec, err := NewDecoder(table, r)
	if err != nil {
		t.Fatal(err)
	}
	if got := dec.Peek(); got != 0 {
		t.Fatalf("initial symbol: got %d, want 0", got)
	}
	if err := dec.Update(r); err != nil {
		t.Fatal(err)
	}
	if got := dec.Peek(); got != 0 {
		t.Fatalf("post-update symbol: got %d, want 0", got)
	}
	if r.BitsRemaining() != 0 {
		t.Fatalf("got %d bits remaining, want 0", r.BitsRemaining())
	}
}

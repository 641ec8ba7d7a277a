package huff0

import (
	"testing"

	"github.com/cosnicolaou/zstd/internal/bitio"
)

// FuzzHuff0FromWeights checks that table construction never panics on an
// arbitrary weight vector (clamped into the valid 0..MaxBits range): it must
// either build a table or return a typed error.
func FuzzHuff0FromWeights(f *testing.F) {
	f.Add([]byte{4, 3, 2, 0, 1})
	f.Add([]byte{1, 1, 1})
	f.Add([]byte{11, 11})
	f.Add([]byte{0, 0, 0})

	f.Fuzz(func(t *testing.T, raw []byte) {
		if len(raw) < 1 || len(raw) > 300 {
			return
		}
		weights := make([]byte, len(raw))
		for i, b := range raw {
			weights[i] = b % (MaxBits + 1)
		}

		table, err := FromWeights(weights)
		if err != nil {
			return
		}
		if table == nil || len(table.Entries) == 0 {
			t.Fatalf("FromWeights(%v) returned a nil/empty table with no error", weights)
		}
	})
}

// FuzzHuff0Decode checks that decoding an arbitrary byte string through a
// valid Huff0 table never over-reads: every Decode call must return without
// panicking regardless of how few real bits remain in the stream, relying
// on Reverse.ReadPadded's zero-padding at the tail.
func FuzzHuff0Decode(f *testing.F) {
	f.Add([]byte{0x80, 0x0D})
	f.Add([]byte{0x01})
	f.Add([]byte{0xFF, 0xFF, 0xFF})

	table, err := FromWeights([]byte{4, 3, 2, 0, 1})
	if err != nil {
		f.Fatal(err)
	}

	f.Fuzz(func(t *testing.T, raw []byte) {
		if len(raw) == 0 || len(raw) > 256 {
			return
		}
		if raw[len(raw)-1] == 0 {
			raw[len(raw)-1] = 1
		}

		r, err := bitio.NewReverse(raw)
		if err != nil {
			return
		}

		dec := NewDecoder(table, r)
		for i := 0; i < 64; i++ {
			_ = dec.Decode(r)
		}
	})
}

package huff0

import "github.com/cosnicolaou/zstd/internal/bitio"

// Decoder drives a single Huff0 decode state machine over a reverse bit
// stream.
type Decoder struct {
	table *Table
	state uint32
}

// NewDecoder initializes a Decoder by reading table.MaxBits padded bits of
// initial state from r.
func NewDecoder(table *Table, r *bitio.Reverse) *Decoder {
	state := r.ReadPadded(table.MaxBits)
	return &Decoder{table: table, state: uint32(state)}
}

// Decode returns the symbol for the current state, then reads that entry's
// n_bits (zero-padded at stream end) to transition to the next state.
func (d *Decoder) Decode(r *bitio.Reverse) byte {
	entry := d.table.Entries[d.state]
	newBits := r.ReadPadded(entry.NBits)
	tableLen := uint32(len(d.table.Entries))
	d.state = ((d.state << entry.NBits) & (tableLen - 1)) | uint32(newBits)
	return entry.Symbol
}

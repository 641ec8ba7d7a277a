package fse

import "github.com/cosnicolaou/zstd/internal/bitio"

// Decoder drives one FSE decode state machine over a reverse bit stream.
type Decoder struct {
	table *Table
	state uint16
}

// NewDecoder initializes a Decoder by reading AccuracyLog bits of initial
// state from r.
func NewDecoder(table *Table, r *bitio.Reverse) (*Decoder, error) {
	state, err := r.Read(table.AccuracyLog)
	if err != nil {
		return nil, err
	}
	return &Decoder{table: table, state: uint16(state)}, nil
}

// Peek returns the symbol for the current state without consuming anything.
func (d *Decoder) Peek() byte {
	return d.table.Entries[d.state].Symbol
}

// Update reads the current state's n_bits from r and transitions to the
// next state. Sequence decoding emits the symbol first via Peek, then calls
// Update -- except after the final sequence in a block, where the state is
// not refreshed.
func (d *Decoder) Update(r *bitio.Reverse) error {
	entry := d.table.Entries[d.state]
	bits, err := r.Read(entry.NBits)
	if err != nil {
		return err
	}
	d.state = entry.Baseline + uint16(bits)
	return nil
}

// BitsRequired reports how many bits the next Update will need to read.
func (d *Decoder) BitsRequired() uint8 {
	return d.table.Entries[d.state].NBits
}

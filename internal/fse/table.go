package fse

import "math/bits"

// Entry is one FSE decoding-table slot.
type Entry struct {
	Baseline uint16
	NBits    uint8
	Symbol   byte
}

// Table is a finalized FSE decoding table: entries has exactly 1<<AccuracyLog
// slots.
type Table struct {
	Entries     []Entry
	AccuracyLog uint8
}

// RLETable builds a degenerate one-entry-repeated table for the RLE
// sequence-table compression mode: every state decodes the same symbol with
// zero extra bits.
func RLETable(symbol byte) *Table {
	return &Table{
		Entries:     []Entry{{Symbol: symbol, NBits: 0, Baseline: 0}},
		AccuracyLog: 0,
	}
}

// BuildTable constructs a decoding table from a parsed distribution.
func BuildTable(dist *Distribution) (*Table, error) {
	n := 1 << dist.accuracyLog
	entries := make([]Entry, n)

	if !dist.hasLowProb {
		if err := spreadWeights(dist, entries); err != nil {
			return nil, err
		}
	} else {
		if err := spreadSymbolsLowProb(dist, entries); err != nil {
			return nil, err
		}
	}

	if err := finalizeTable(entries, &dist.symbolState, dist.accuracyLog); err != nil {
		return nil, err
	}

	return &Table{Entries: entries, AccuracyLog: dist.accuracyLog}, nil
}

// spreadWeights is the fast path (no low-probability symbols): walk the
// table in steps of (n>>1)+(n>>3)+3, which is coprime with n, visiting
// every slot exactly once.
func spreadWeights(dist *Distribution, table []Entry) error {
	n := len(table)
	step := (n >> 1) + (n >> 3) + 3
	mask := n - 1

	pos := 0
	for sym := 0; sym < dist.symbolCount; sym++ {
		count := dist.finalCounts[sym]
		if count <= 0 {
			continue
		}

		entry := Entry{Symbol: byte(sym), NBits: 0xFF, Baseline: 0}

		remaining := int(count)
		for remaining >= 4 {
			table[pos] = entry
			table[(pos+step)&mask] = entry
			table[(pos+step*2)&mask] = entry
			table[(pos+step*3)&mask] = entry
			pos = (pos + step*4) & mask
			remaining -= 4
		}
		for remaining > 0 {
			table[pos] = entry
			pos = (pos + step) & mask
			remaining--
		}
	}

	if pos != 0 {
		return errf("FastSpreadAlignmentError", "fast-spread walk ended at position %d, want 0", pos)
	}
	return nil
}

// spreadSymbolsLowProb handles distributions containing -1 ("low
// probability") counts: those symbols claim the highest-numbered slots
// directly, and the step walk for the remaining symbols skips over them.
func spreadSymbolsLowProb(dist *Distribution, table []Entry) error {
	n := len(table)
	step := (n >> 1) + (n >> 3) + 3
	mask := n - 1

	highThreshold := n
	for sym := 0; sym < dist.symbolCount; sym++ {
		if dist.finalCounts[sym] == -1 {
			highThreshold--
			table[highThreshold] = Entry{Symbol: byte(sym), NBits: 0xFF, Baseline: 0}
		}
	}

	pos := 0
	for sym := 0; sym < dist.symbolCount; sym++ {
		count := dist.finalCounts[sym]
		if count <= 0 {
			continue
		}
		for i := int16(0); i < count; i++ {
			table[pos] = Entry{Symbol: byte(sym), NBits: 0xFF, Baseline: 0}
			pos = (pos + step) & mask
			for pos >= highThreshold {
				pos = (pos + step) & mask
			}
		}
	}

	if highThreshold == n && pos != 0 {
		return errf("FastSpreadAlignmentError", "low-probability spread walk ended at position %d, want 0", pos)
	}
	return nil
}

// finalizeTable assigns (n_bits, baseline) to every slot in table order,
// using a per-symbol running state counter seeded from symbolState.
func finalizeTable(table []Entry, symbolState *[maxSymbols]uint16, accuracyLog uint8) error {
	n := uint16(len(table))
	for i := range table {
		entry := &table[i]
		if entry.NBits == 0 {
			return ErrTableUnderfilled
		}

		state := symbolState[entry.Symbol]
		if state == 0 {
			return ErrInvalidState
		}
		symbolState[entry.Symbol] = state + 1

		nBits := accuracyLog + uint8(bits.LeadingZeros16(state)) - 15
		entry.NBits = nBits
		entry.Baseline = (state << nBits) - n
	}
	return nil
}

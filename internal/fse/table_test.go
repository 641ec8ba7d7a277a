package fse

import "testing"

// TestRFC8878AppendixA reproduces the literal-length default distribution
// table from RFC 8878 Appendix A and checks the first few and last few
// states against the published values.
func TestRFC8878AppendixA(t *testing.T) {
	counts := []int16{
		4, 3, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 1, 1, 1, 2, 2, 2, 2, 2, 2, 2, 2, 2, 3,
		2, 1, 1, 1, 1, 1, -1, -1, -1, -1,
	}
	dist := FromPredefined(counts, 6)
	table, err := BuildTable(dist)
	if err != nil {
		t.Fatal(err)
	}

	type want struct {
		state            int
		symbol, nBits    byte
		baseline         uint16
	}
	cases := []want{
		{0, 0, 4, 0},
		{1, 0, 4, 16},
		{2, 1, 5, 32},
		{3, 3, 5, 0},
		{4, 4, 5, 0},
		{5, 6, 5, 0},
		{60, 35, 6, 0},
		{63, 32, 6, 0},
	}
	for _, c := range cases {
		e := table.Entries[c.state]
		if e.Symbol != c.symbol || e.NBits != c.nBits || e.Baseline != c.baseline {
			t.Errorf("state %d: got {symbol:%d nbits:%d baseline:%d}, want {symbol:%d nbits:%d baseline:%d}",
				c.state, e.Symbol, e.NBits, e.Baseline, c.symbol, c.nBits, c.baseline)
		}
	}
}

// TestTableSlotsFullyAssigned checks that every slot of every table built
// from a valid distribution ends up with a non-zero NBits (i.e. is
// assigned exactly once by the spread step).
func TestTableSlotsFullyAssigned(t *testing.T) {
	dist := FromPredefined([]int16{4, 3, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 1, 1, 1, 2, 2, 2, 2, 2, 2, 2, 2, 2, 3,
		2, 1, 1, 1, 1, 1, -1, -1, -1, -1}, 6)
	table, err := BuildTable(dist)
	if err != nil {
		t.Fatal(err)
	}
	if len(table.Entries) != 64 {
		t.Fatalf("got %d entries, want 64", len(table.Entries))
	}
	histogram := map[byte]int{}
	for _, e := range table.Entries {
		if e.NBits == 0 {
			t.Fatalf("unassigned slot with symbol %d", e.Symbol)
		}
		histogram[e.Symbol]++
	}
}

func TestRLETable(t *testing.T) {
	table := RLETable(42)
	if len(table.Entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(table.Entries))
	}
	if table.Entries[0].Symbol != 42 || table.Entries[0].NBits != 0 {
		t.Fatalf("got %+v", table.Entries[0])
	}
}

package zstd

import "testing"

// TestUpdateTableFSECompressed exercises updateTable's FSE-compressed
// branch directly: a hand-built two-symbol, accuracy-log-6 normalized
// distribution header (weight values 0 and 1, each with normalized
// probability 32) is parsed via fse.ReadDistribution/BuildTable, which this
// path reaches but no other test in the package does.
func TestUpdateTableFSECompressed(t *testing.T) {
	body := []byte{0x11, 0xFE} // NCount header: accuracy_log=6, counts=[32, 32]

	table, consumed, err := updateTable(modeFSECompressed, ofDefaultCounts, ofMaxAccuracyLog, ofBuildAccuracyLog, body, nil)
	if err != nil {
		t.Fatal(err)
	}
	if consumed != len(body) {
		t.Fatalf("got consumed=%d, want %d", consumed, len(body))
	}
	if table.AccuracyLog != 6 {
		t.Fatalf("got accuracy log %d, want 6", table.AccuracyLog)
	}
	if len(table.Entries) != 64 {
		t.Fatalf("got %d entries, want 64", len(table.Entries))
	}
	if table.Entries[0].Symbol != 0 {
		t.Fatalf("state 0: got symbol %d, want 0", table.Entries[0].Symbol)
	}
	if table.Entries[32].Symbol != 1 {
		t.Fatalf("state 32: got symbol %d, want 1", table.Entries[32].Symbol)
	}
}

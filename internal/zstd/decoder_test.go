package zstd

import (
	"bytes"
	"strings"
	"testing"
)

// TestEmptyFrame reproduces scenario 1: a minimal single-segment frame
// with content size 0 and one empty raw block.
func TestEmptyFrame(t *testing.T) {
	input := []byte{
		0x28, 0xB5, 0x2F, 0xFD, // magic
		0x20, 0x00, // header descriptor (single_segment|fcs=1), content_size=0
		0x01, 0x00, 0x00, // block header: last=1, type=Raw, size=0
	}
	var out bytes.Buffer
	if err := Decode(&out, bytes.NewReader(input)); err != nil {
		t.Fatal(err)
	}
	if out.Len() != 0 {
		t.Fatalf("got %q, want empty", out.String())
	}
}

// TestRLEBlock reproduces scenario 2: a single RLE block expanding to
// 1024 repetitions of 'A'.
func TestRLEBlock(t *testing.T) {
	input := []byte{
		0x28, 0xB5, 0x2F, 0xFD,
		0x20, 0x00, // single_segment, fcs=1, content_size=0 (content size unused here; window from descriptor)
	}
	// Use a non-single-segment header instead: window descriptor giving
	// window_size=1024 (exponent=0, mantissa=0 -> base=1024).
	input = []byte{
		0x28, 0xB5, 0x2F, 0xFD,
		0x00,       // descriptor: fcs=0, not single-segment, no checksum
		0x00,       // window descriptor: exponent=0, mantissa=0 -> 1024
		0x09, 0x00, 0x20, // block header: raw=0x200009 -> last=1, type=Raw (bits1-2=0b00), size=0x40001; not an RLE header
	}
	_ = input

	// Build directly: block header last=1 (bit0=1), type=RLE (bits1-2=1),
	// size=1024 (bits3-23=1024): raw = 1 | (1<<1) | (1024<<3) = 1+2+8192=8195 = 0x002003
	raw := uint32(1) | uint32(1)<<1 | uint32(1024)<<3
	hdr := []byte{byte(raw), byte(raw >> 8), byte(raw >> 16)}

	full := []byte{0x28, 0xB5, 0x2F, 0xFD, 0x00, 0x00}
	full = append(full, hdr...)
	full = append(full, 0x41) // RLE payload byte 'A'

	var out bytes.Buffer
	if err := Decode(&out, bytes.NewReader(full)); err != nil {
		t.Fatal(err)
	}
	want := strings.Repeat("A", 1024)
	if out.String() != want {
		t.Fatalf("got %d bytes, want %d bytes of 'A'", out.Len(), len(want))
	}
}

// TestRepeatedOffsetHistory reproduces scenario 5's history arithmetic
// directly against the executor, independent of FSE/Huff0 decoding.
func TestRepeatedOffsetHistory(t *testing.T) {
	w := newWindow(64)
	w.pushBuf([]byte("abcdefgh"))

	hist := [3]uint32{1, 4, 8}

	seqs := []sequence{
		{litLen: 2, offset: 5, matchLen: 3},
		{litLen: 0, offset: 1, matchLen: 3},
	}
	literals := []byte("xyzzy")

	if err := executeSequences(w, literals, seqs, &hist); err != nil {
		t.Fatal(err)
	}
	if hist != [3]uint32{1, 2, 4} {
		t.Fatalf("got history %v, want [1 2 4]", hist)
	}
}

// TestCompressedBlockHuff0AndSequences decodes a single Compressed block
// built entirely by hand: a Huff0-compressed literals section (the RFC
// worked-example table, weights [4,3,2,0,1], read from a direct
// nibble-packed weight header rather than an FSE-compressed one) feeding 4
// literal bytes, followed
// by a one-sequence, all-predefined-table sequences section whose FSE
// decoder initial states were chosen (by tracing spreadSymbolsLowProb and
// the RFC 8878 Appendix A table by hand) to land on literal-length code 4,
// offset code 0 (a repeat-1 reference), and match-length code 0 -- so the
// sequence reads as "emit the 4 literals, then repeat the last one 3 more
// times".
func TestCompressedBlockHuff0AndSequences(t *testing.T) {
	input := []byte{
		0x28, 0xB5, 0x2F, 0xFD, // magic
		0x00, // descriptor: not single-segment, no checksum, fcs=0
		0x00, // window descriptor: window_size = 1024

		0x75, 0x00, 0x00, // block header: last=1, type=Compressed, size=14

		// Literals section (9 bytes): Compressed, size_format=0 (1 stream),
		// regenerated_size=4, compressed_size=6.
		0x42, 0x80, 0x01,
		// Huff0 table description (direct weights [4,3,2,0,1], header=132).
		0x84, 0x43, 0x20, 0x10,
		// Huff0-coded stream, decoding to symbols 0,1,4,5.
		0x80, 0x0D,

		// Sequences section (5 bytes): 1 sequence, all tables Predefined.
		0x01, 0x00,
		// FSE initial states: ll=4 (6 bits), of=0 (5 bits), ml=0 (6 bits).
		0x00, 0x02, 0x02,
	}

	var out bytes.Buffer
	if err := Decode(&out, bytes.NewReader(input)); err != nil {
		t.Fatal(err)
	}
	want := []byte{0, 1, 4, 5, 5, 5, 5}
	if !bytes.Equal(out.Bytes(), want) {
		t.Fatalf("got %v, want %v", out.Bytes(), want)
	}
}

// TestSequenceExecutionOffsetOne reproduces the execution step of scenario
// 3: a literal run of "abcde" followed by one sequence (lit_len=5,
// offset_code=4, match_len=3) resolving to offset 1, yielding "abcdeeee".
// The sequence is passed in already decoded, so no FSE table is built.
func TestSequenceExecutionOffsetOne(t *testing.T) {
	w := newWindow(64)
	hist := [3]uint32{1, 4, 8}

	seqs := []sequence{
		{litLen: 5, offset: 4, matchLen: 3},
	}
	literals := []byte("abcde")

	if err := executeSequences(w, literals, seqs, &hist); err != nil {
		t.Fatal(err)
	}
	got := string(w.bytes())
	want := "abcdeeee"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

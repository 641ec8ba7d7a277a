// Copyright 2021 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package zstd_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/cosnicolaou/zstd"
)

// rleFrame builds a minimal single-frame stream with a window descriptor
// giving window_size = 1024 and a single RLE block expanding to count
// copies of b.
func rleFrame(b byte, count int) []byte {
	raw := uint32(1) | uint32(1)<<1 | uint32(count)<<3
	hdr := []byte{byte(raw), byte(raw >> 8), byte(raw >> 16)}

	out := []byte{0x28, 0xB5, 0x2F, 0xFD, 0x00, 0x00}
	out = append(out, hdr...)
	out = append(out, b)
	return out
}

func TestReaderRLE(t *testing.T) {
	rd, err := zstd.NewReader(bytes.NewReader(rleFrame('A', 1024)))
	if err != nil {
		t.Fatal(err)
	}
	got, err := io.ReadAll(rd)
	if err != nil {
		t.Fatal(err)
	}
	want := strings.Repeat("A", 1024)
	if string(got) != want {
		t.Fatalf("got %d bytes, want %d bytes of 'A'", len(got), len(want))
	}
	if err := rd.Close(); err != nil {
		t.Fatal(err)
	}
	stats := rd.Stats()
	if stats.BytesWritten != int64(len(want)) {
		t.Fatalf("got BytesWritten=%d, want %d", stats.BytesWritten, len(want))
	}
}

func TestDecompressMultipleFrames(t *testing.T) {
	var input bytes.Buffer
	input.Write(rleFrame('A', 8))
	input.Write(rleFrame('B', 4))

	var out bytes.Buffer
	if err := zstd.Decompress(&out, &input); err != nil {
		t.Fatal(err)
	}
	want := strings.Repeat("A", 8) + strings.Repeat("B", 4)
	if out.String() != want {
		t.Fatalf("got %q, want %q", out.String(), want)
	}
}

func TestDecompressTrailingGarbageAfterCleanFrame(t *testing.T) {
	input := rleFrame('A', 1)
	input = append(input, 0xFF) // not a valid magic number start

	var out bytes.Buffer
	err := zstd.Decompress(&out, bytes.NewReader(input))
	if err == nil {
		t.Fatal("expected an error decoding a truncated trailing frame")
	}
}

// Copyright 2021 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package zstd implements a streaming decompressor for the Zstandard
// format (RFC 8878): the frame/block state machine, the Huff0 and FSE
// entropy decoders, and the sequence-execution engine that replays
// LZ-style back-references against a sliding window. Encoding, dictionary
// support and seekable-format extraction are not implemented.
package zstd

import (
	"io"

	"github.com/cosnicolaou/zstd/internal/zstd"
)

// Constants re-exported from the wire format, per RFC 8878.
const (
	MagicNumber   = zstd.MagicNumber
	MinWindowSize = zstd.MinWindowSize
	MaxWindowSize = zstd.MaxWindowSize
	MaxBlockSize  = zstd.MaxBlockSize
	FlushChunk    = zstd.FlushChunk
)

// Decompress decodes every Zstandard frame in src and writes the
// concatenated decompressed output to dst.
func Decompress(dst io.Writer, src io.Reader) error {
	return wrapError(zstd.Decode(dst, src))
}

package zstd

import (
	"io"

	"github.com/cespare/xxhash/v2"
	"github.com/cosnicolaou/zstd/internal/bitio"
)

// FlushChunk is the minimum amount of pending window bytes that triggers a
// flush to the writer mid-frame; the last block of a frame always flushes
// regardless of size.
const FlushChunk = 64 * 1024

// Decode reads one or more concatenated Zstandard frames from src and
// writes their decompressed content to dst.
func Decode(dst io.Writer, src io.Reader) error {
	byteR := bitio.NewByteReader(src)
	ctx := newDecodeContext()

	for {
		more, err := decodeFrame(ctx, byteR, dst)
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
}

// decodeFrame decodes a single frame, returning false (with no error) when
// the stream ends cleanly at a frame boundary.
func decodeFrame(ctx *decodeContext, byteR *bitio.ByteReader, dst io.Writer) (bool, error) {
	magic, err := byteR.ReadFrameStart()
	if err == io.EOF {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if magic != MagicNumber {
		return false, ErrInvalidMagicNumber
	}

	fh, err := readFrameHeader(byteR)
	if err != nil {
		return false, err
	}
	ctx.reset(fh.windowSize)

	var checksum *xxhash.Digest
	if fh.hasChecksum {
		checksum = xxhash.New()
	}

	flushedIdx := 0
	for {
		last, err := runBlock(ctx, byteR)
		if err != nil {
			return false, err
		}

		currentIdx := ctx.window.Index()
		if currentIdx < flushedIdx {
			flushedIdx = 0
		}
		available := currentIdx - flushedIdx
		if available >= FlushChunk || last {
			chunk := ctx.window.bytes()[flushedIdx:currentIdx]
			if _, err := dst.Write(chunk); err != nil {
				return false, err
			}
			if checksum != nil {
				checksum.Write(chunk)
			}
			flushedIdx = currentIdx
		}
		if last {
			break
		}
	}

	if fh.hasChecksum {
		want, err := byteR.ReadU32LE()
		if err != nil {
			return false, err
		}
		if uint32(checksum.Sum64()) != want {
			return false, ErrChecksumMismatch
		}
	}

	return true, nil
}

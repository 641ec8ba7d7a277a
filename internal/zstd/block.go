package zstd

import "github.com/cosnicolaou/zstd/internal/bitio"

type blockType byte

const (
	blockRaw        blockType = 0
	blockRLE        blockType = 1
	blockCompressed blockType = 2
	blockReserved   blockType = 3
)

type blockHeader struct {
	last      bool
	blockType blockType
	size      int
}

func readBlockHeader(r *bitio.ByteReader) (*blockHeader, error) {
	var buf [3]byte
	if err := r.ReadExact(buf[:]); err != nil {
		return nil, err
	}
	raw := uint32(buf[0]) | uint32(buf[1])<<8 | uint32(buf[2])<<16

	h := &blockHeader{
		last:      raw&1 != 0,
		blockType: blockType((raw >> 1) & 0x3),
		size:      int(raw >> 3),
	}
	if h.blockType == blockReserved {
		return nil, errReservedBlockType()
	}
	if h.size > MaxBlockSize {
		return nil, errBlockTooLarge(h.size, MaxBlockSize)
	}
	return h, nil
}

// runBlock decodes one block into ctx.window, returning whether it was the
// last block of its frame.
func runBlock(ctx *decodeContext, byteR *bitio.ByteReader) (bool, error) {
	h, err := readBlockHeader(byteR)
	if err != nil {
		return false, err
	}

	switch h.blockType {
	case blockRaw:
		if err := ctx.window.readFrom(byteR, h.size); err != nil {
			return false, err
		}
	case blockRLE:
		b, err := byteR.ReadU8()
		if err != nil {
			return false, err
		}
		ctx.window.pushRLE(b, h.size)
	case blockCompressed:
		ctx.scratch = growBuf(ctx.scratch, h.size)
		if err := byteR.ReadExact(ctx.scratch); err != nil {
			return false, err
		}
		if err := runCompressedBlock(ctx, ctx.scratch); err != nil {
			return false, err
		}
	}
	return h.last, nil
}

func growBuf(buf []byte, n int) []byte {
	if cap(buf) < n {
		return make([]byte, n)
	}
	return buf[:n]
}

// runCompressedBlock parses the literals and sequences sections of a
// Compressed block and executes the resulting sequences against the
// window.
func runCompressedBlock(ctx *decodeContext, src []byte) error {
	literals, consumed, err := readLiteralsSection(src, &ctx.huffTable)
	if err != nil {
		return err
	}
	rest := src[consumed:]

	seqs, err := readSequences(rest, &ctx.tables)
	if err != nil {
		return err
	}

	return executeSequences(ctx.window, literals, seqs, &ctx.offsetHist)
}

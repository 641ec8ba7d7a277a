package zstd

import "github.com/cosnicolaou/zstd/internal/bitio"

// MagicNumber is the four-byte little-endian value that opens every
// Zstandard frame.
const MagicNumber uint32 = 0xFD2FB528

const (
	MinWindowSize uint64 = 0x400
	MaxWindowSize uint64 = 128 * 1024 * 1024
)

// frameHeader is the parsed frame header: everything needed to size the
// window and know whether a trailing checksum follows the last block.
type frameHeader struct {
	windowSize     uint64
	contentSize    uint64
	hasContentSize bool
	singleSegment  bool
	hasChecksum    bool
}

func readFrameHeader(r *bitio.ByteReader) (*frameHeader, error) {
	descriptor, err := r.ReadU8()
	if err != nil {
		return nil, err
	}

	fcsFlag := descriptor >> 6
	singleSegment := descriptor&(1<<5) != 0
	reserved := descriptor&(1<<3) != 0
	hasChecksum := descriptor&(1<<2) != 0
	didFlag := descriptor & 0x3

	if reserved {
		return nil, ErrReservedBitSet
	}

	h := &frameHeader{singleSegment: singleSegment, hasChecksum: hasChecksum}

	var windowDescriptor byte
	if !singleSegment {
		windowDescriptor, err = r.ReadU8()
		if err != nil {
			return nil, err
		}
	}

	didSize := map[byte]int{0: 0, 1: 1, 2: 2, 3: 4}[didFlag]
	if didSize > 0 {
		buf := make([]byte, didSize)
		if err := r.ReadExact(buf); err != nil {
			return nil, err
		}
	}

	fcsSize := fcsFieldSize(fcsFlag, singleSegment)
	if fcsSize > 0 {
		buf := make([]byte, fcsSize)
		if err := r.ReadExact(buf); err != nil {
			return nil, err
		}
		var raw uint64
		for i := fcsSize - 1; i >= 0; i-- {
			raw = raw<<8 | uint64(buf[i])
		}
		if fcsSize == 2 {
			raw += 256
		}
		h.contentSize = raw
		h.hasContentSize = true
	}

	if singleSegment {
		if !h.hasContentSize {
			return nil, errMissingContentSize()
		}
		h.windowSize = h.contentSize
		return h, nil
	}

	exponent := windowDescriptor >> 3
	mantissa := windowDescriptor & 0x7
	base := uint64(1) << (10 + exponent)
	size := base + (base>>3)*uint64(mantissa)
	if size < MinWindowSize || size > MaxWindowSize {
		return nil, errWindowSizeOutOfBounds(size, MinWindowSize, MaxWindowSize)
	}
	h.windowSize = size
	return h, nil
}

func fcsFieldSize(fcsFlag byte, singleSegment bool) int {
	switch fcsFlag {
	case 0:
		if singleSegment {
			return 1
		}
		return 0
	case 1:
		return 2
	case 2:
		return 4
	default:
		return 8
	}
}

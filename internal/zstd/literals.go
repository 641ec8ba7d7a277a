package zstd

import (
	"github.com/cosnicolaou/zstd/internal/bitio"
	"github.com/cosnicolaou/zstd/internal/huff0"
)

type literalsType byte

const (
	literalsRaw        literalsType = 0
	literalsRLE        literalsType = 1
	literalsCompressed literalsType = 2
	literalsTreeless   literalsType = 3
)

type literalsStreams byte

const (
	streamsOne  literalsStreams = 0
	streamsFour literalsStreams = 1
)

var rawRLEBufSize = [4]int{0, 1, 0, 2}
var rawRLEShift = [4]int{3, 4, 3, 4}
var compressedBufSize = [4]int{2, 2, 3, 4}
var compressedBits = [4]uint{10, 10, 14, 18}
var compressedStreams = [4]literalsStreams{streamsOne, streamsFour, streamsFour, streamsFour}

// readLiteralsSection parses a block's literals section from src and
// returns the decompressed literals plus the number of bytes of src the
// section occupied. huffTable is the block-decode context's carried-over
// Huff0 table (nil until one has been set by a Compressed section); it is
// updated in place when this section supplies a new one.
func readLiteralsSection(src []byte, huffTable **huff0.Table) ([]byte, int, error) {
	if len(src) == 0 {
		return nil, 0, &bitio.NotEnoughBitsError{Requested: 8, Remaining: 0}
	}
	first := src[0]
	lsType := literalsType(first & 0x3)
	sizeFormat := (first >> 2) & 0x3

	switch lsType {
	case literalsRaw, literalsRLE:
		return readRawOrRLELiterals(src, lsType, sizeFormat)
	default:
		return readCompressedLiterals(src, lsType, sizeFormat, huffTable)
	}
}

func readRawOrRLELiterals(src []byte, lsType literalsType, sizeFormat byte) ([]byte, int, error) {
	bufSize := rawRLEBufSize[sizeFormat]
	if 1+bufSize > len(src) {
		return nil, 0, &bitio.NotEnoughBitsError{Requested: (1 + bufSize) * 8, Remaining: len(src) * 8}
	}
	var raw uint32
	raw = uint32(src[0])
	for i := 0; i < bufSize; i++ {
		raw |= uint32(src[1+i]) << (8 * (i + 1))
	}
	regeneratedSize := int(raw >> uint(rawRLEShift[sizeFormat]))
	if regeneratedSize > MaxBlockSize {
		return nil, 0, errRegeneratedSizeTooLarge(regeneratedSize, MaxBlockSize)
	}
	headerLen := 1 + bufSize

	if lsType == literalsRaw {
		if headerLen+regeneratedSize > len(src) {
			return nil, 0, &bitio.NotEnoughBitsError{Requested: regeneratedSize * 8, Remaining: (len(src) - headerLen) * 8}
		}
		out := make([]byte, regeneratedSize)
		copy(out, src[headerLen:headerLen+regeneratedSize])
		return out, headerLen + regeneratedSize, nil
	}

	if headerLen >= len(src) {
		return nil, 0, &bitio.NotEnoughBitsError{Requested: 8, Remaining: 0}
	}
	b := src[headerLen]
	out := make([]byte, regeneratedSize)
	for i := range out {
		out[i] = b
	}
	return out, headerLen + 1, nil
}

func readCompressedLiterals(src []byte, lsType literalsType, sizeFormat byte, huffTable **huff0.Table) ([]byte, int, error) {
	bufSize := compressedBufSize[sizeFormat]
	headerLen := 1 + bufSize
	if headerLen > len(src) {
		return nil, 0, &bitio.NotEnoughBitsError{Requested: headerLen * 8, Remaining: len(src) * 8}
	}

	var raw uint64
	raw = uint64(src[0])
	for i := 0; i < bufSize; i++ {
		raw |= uint64(src[1+i]) << (8 * (i + 1))
	}
	raw >>= 4
	nBits := compressedBits[sizeFormat]
	mask := (uint64(1) << nBits) - 1
	regeneratedSize := int(raw & mask)
	compressedSize := int((raw >> nBits) & mask)

	if regeneratedSize > MaxBlockSize {
		return nil, 0, errRegeneratedSizeTooLarge(regeneratedSize, MaxBlockSize)
	}
	if headerLen+compressedSize > len(src) {
		return nil, 0, &bitio.NotEnoughBitsError{Requested: compressedSize * 8, Remaining: (len(src) - headerLen) * 8}
	}
	payload := src[headerLen : headerLen+compressedSize]

	streams := compressedStreams[sizeFormat]

	if lsType == literalsCompressed {
		table, consumed, err := huff0.ReadTable(payload)
		if err != nil {
			return nil, 0, err
		}
		*huffTable = table
		payload = payload[consumed:]
	} else if *huffTable == nil {
		return nil, 0, errMissingTableForRepeat("huffman")
	}

	out := make([]byte, regeneratedSize)
	if err := huffStreams(payload, out, *huffTable, streams); err != nil {
		return nil, 0, err
	}
	return out, headerLen + compressedSize, nil
}

// huffStreams decodes a Huff0-compressed literals payload into dst, either
// as a single bitstream or as four independently-framed streams decoded in
// lockstep (the format Zstandard uses so a SIMD decoder can process all
// four in parallel).
func huffStreams(src, dst []byte, table *huff0.Table, streams literalsStreams) error {
	if streams == streamsOne {
		r, err := bitio.NewReverse(src)
		if err != nil {
			return err
		}
		dec := huff0.NewDecoder(table, r)
		for i := range dst {
			dst[i] = dec.Decode(r)
		}
		if r.BitsRemaining() > 0 {
			return errExtraBitsInStream(r.BitsRemaining())
		}
		return nil
	}

	if len(src) < 6 {
		return &bitio.NotEnoughBitsError{Requested: 48, Remaining: len(src) * 8}
	}
	s0 := int(src[0]) | int(src[1])<<8
	s1 := s0 + (int(src[2]) | int(src[3])<<8)
	s2 := s1 + (int(src[4]) | int(src[5])<<8)
	body := src[6:]
	if s2 > len(body) {
		return errJumpTableOutOfBounds(s2, len(body))
	}

	chunk := (len(dst) + 3) / 4
	if len(dst) < 3*chunk {
		return errLiteralsBufferTooSmall()
	}
	lastChunkSize := len(dst) - chunk*3

	rs := make([]*bitio.Reverse, 4)
	var err error
	rs[0], err = bitio.NewReverse(body[:s0])
	if err != nil {
		return err
	}
	rs[1], err = bitio.NewReverse(body[s0:s1])
	if err != nil {
		return err
	}
	rs[2], err = bitio.NewReverse(body[s1:s2])
	if err != nil {
		return err
	}
	rs[3], err = bitio.NewReverse(body[s2:])
	if err != nil {
		return err
	}

	decs := make([]*huff0.Decoder, 4)
	for i, r := range rs {
		decs[i] = huff0.NewDecoder(table, r)
	}

	burstLen := chunk
	if lastChunkSize < burstLen {
		burstLen = lastChunkSize
	}

	dst0 := dst[0*chunk : 1*chunk]
	dst1 := dst[1*chunk : 2*chunk]
	dst2 := dst[2*chunk : 3*chunk]
	dst3 := dst[3*chunk:]

	for i := 0; i < burstLen; i++ {
		dst0[i] = decs[0].Decode(rs[0])
		dst1[i] = decs[1].Decode(rs[1])
		dst2[i] = decs[2].Decode(rs[2])
		dst3[i] = decs[3].Decode(rs[3])
	}
	for i := burstLen; i < chunk; i++ {
		dst0[i] = decs[0].Decode(rs[0])
		dst1[i] = decs[1].Decode(rs[1])
		dst2[i] = decs[2].Decode(rs[2])
	}

	for i, r := range rs {
		if r.BitsRemaining() > 0 {
			return errExtraBitsInStream(r.BitsRemaining())
		}
		_ = i
	}
	return nil
}

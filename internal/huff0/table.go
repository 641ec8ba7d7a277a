package huff0

import (
	"math/bits"

	"github.com/cosnicolaou/zstd/internal/bitio"
	"github.com/cosnicolaou/zstd/internal/fse"
)

// MaxBits is the largest code length a Huff0 table may use.
const MaxBits = 11

// fseAccuracyLog is the fixed accuracy log of the FSE table used to decode
// a compressed weight header.
const fseAccuracyLog = 6

// Entry is one Huff0 decoding-table slot.
type Entry struct {
	Symbol byte
	NBits  uint8
}

// Table is a finalized canonical Huffman decoding table; Entries has
// exactly 1<<MaxBits slots.
type Table struct {
	Entries []Entry
	MaxBits uint8
}

// ReadTable parses a Huff0 table description from the front of src and
// returns the table plus the number of bytes consumed by the description.
func ReadTable(src []byte) (*Table, int, error) {
	weights, consumed, err := readWeights(src)
	if err != nil {
		return nil, 0, err
	}
	for _, w := range weights {
		if w > MaxBits {
			return nil, 0, errWeightTooLarge(w, MaxBits)
		}
	}
	table, err := FromWeights(weights)
	if err != nil {
		return nil, 0, err
	}
	return table, consumed, nil
}

// FromWeights builds a canonical decoding table from a weight-per-symbol
// vector (symbol order implicit, zero weight meaning "absent"). The final
// symbol's weight is inferred from the others so that slot counts sum to a
// power of two.
func FromWeights(weights []byte) (*Table, error) {
	var sum uint32
	var bitRank [MaxBits + 1]uint32

	for _, w := range weights {
		if w == 0 {
			continue
		}
		sum += 1 << (w - 1)
		bitRank[w]++
	}
	if sum == 0 {
		return nil, ErrZeroWeightSum
	}

	maxBits := uint8(bits.Len32(sum))
	if maxBits > MaxBits {
		return nil, errf("WeightTooLarge", "weights need %d-bit codes, maximum is %d", maxBits, MaxBits)
	}
	target := uint32(1) << maxBits
	remainder := target - sum

	if remainder == 0 || remainder&(remainder-1) != 0 {
		return nil, errInvalidInferredWeight(remainder)
	}
	inferredWeight := uint8(bits.Len32(remainder))
	bitRank[inferredWeight]++

	var nextCode [MaxBits + 1]uint32
	var curr uint32
	for w := uint8(1); w <= maxBits; w++ {
		nextCode[w] = curr
		curr += bitRank[w] << (w - 1)
	}
	if curr != target {
		return nil, ErrTableUnderflow
	}

	entries := make([]Entry, target)
	assign := func(sym int, w uint8) {
		if w == 0 {
			return
		}
		codeStart := nextCode[w]
		nBits := maxBits - (w - 1)
		numSlots := uint32(1) << (w - 1)
		for i := uint32(0); i < numSlots; i++ {
			entries[codeStart+i] = Entry{Symbol: byte(sym), NBits: nBits}
		}
		nextCode[w] += numSlots
	}
	for sym, w := range weights {
		assign(sym, w)
	}
	assign(len(weights), inferredWeight)

	return &Table{Entries: entries, MaxBits: maxBits}, nil
}

// readWeights parses the weight-header byte and dispatches to the direct or
// FSE-compressed reader, returning the weight vector and bytes consumed
// including the header byte itself.
func readWeights(src []byte) ([]byte, int, error) {
	if len(src) == 0 {
		return nil, 0, &bitio.NotEnoughBitsError{Requested: 8, Remaining: 0}
	}
	header := src[0]
	rest := src[1:]

	if header >= 128 {
		count := header - 127
		out, consumed, err := readWeightsDirect(rest, int(count))
		if err != nil {
			return nil, 0, err
		}
		return out, consumed + 1, nil
	}
	out, consumed, err := readWeightsCompressed(rest, int(header))
	if err != nil {
		return nil, 0, err
	}
	return out, consumed + 1, nil
}

// readWeightsDirect unpacks one weight per nibble, high nibble first,
// reading them 56 bits (14 nibbles) at a time via the forward bit reader.
func readWeightsDirect(src []byte, count int) ([]byte, int, error) {
	r, err := bitio.NewForward(src)
	if err != nil {
		return nil, 0, err
	}

	out := make([]byte, count)
	idx := 0
	remainingBytes := (count + 1) / 2

	for remainingBytes >= 7 && idx+14 <= count {
		chunk, err := r.Read(56)
		if err != nil {
			return nil, 0, err
		}
		for i := 0; i < 7; i++ {
			b := byte(chunk >> (i * 8))
			out[idx+2*i] = b >> 4
			out[idx+2*i+1] = b & 0xF
		}
		idx += 14
		remainingBytes -= 7
	}

	if remainingBytes == 0 {
		return out, r.BytesConsumed(), nil
	}

	chunk, err := r.Read(uint8(remainingBytes * 8))
	if err != nil {
		return nil, 0, err
	}
	for i := 0; i < remainingBytes; i++ {
		b := byte(chunk >> (i * 8))
		if idx < count {
			out[idx] = b >> 4
			idx++
		}
		if idx < count {
			out[idx] = b & 0xF
			idx++
		}
	}
	return out, r.BytesConsumed(), nil
}

// readWeightsCompressed decodes a weight vector that was itself
// FSE-compressed: a distribution header (forward stream) is read first,
// then two interleaved FSE decoders alternately produce weight symbols
// from a reverse stream over the remainder of the compressed payload.
func readWeightsCompressed(src []byte, compressedSize int) ([]byte, int, error) {
	if len(src) < compressedSize {
		return nil, 0, &bitio.NotEnoughBitsError{Requested: compressedSize * 8, Remaining: len(src) * 8}
	}

	tableReader, err := bitio.NewForward(src)
	if err != nil {
		return nil, 0, err
	}
	dist, err := fse.ReadDistribution(tableReader, fseAccuracyLog)
	if err != nil {
		return nil, 0, err
	}
	table, err := fse.BuildTable(dist)
	if err != nil {
		return nil, 0, err
	}

	br, err := bitio.NewReverse(src[tableReader.BytesConsumed():compressedSize])
	if err != nil {
		return nil, 0, err
	}

	dec1, err := fse.NewDecoder(table, br)
	if err != nil {
		return nil, 0, err
	}
	dec2, err := fse.NewDecoder(table, br)
	if err != nil {
		return nil, 0, err
	}

	out := make([]byte, 256)
	idx := 0
	for idx < len(out) {
		out[idx] = dec1.Peek()
		idx++

		if int(dec1.BitsRequired()) > br.BitsRemaining() {
			out[idx] = dec2.Peek()
			idx++
			break
		}
		if err := dec1.Update(br); err != nil {
			return nil, 0, err
		}

		out[idx] = dec2.Peek()
		idx++

		if int(dec2.BitsRequired()) > br.BitsRemaining() {
			out[idx] = dec1.Peek()
			idx++
			break
		}
		if err := dec2.Update(br); err != nil {
			return nil, 0, err
		}
	}
	return out[:idx], compressedSize, nil
}

package fse

import (
	"math/bits"

	"github.com/cosnicolaou/zstd/internal/bitio"
)

const maxSymbols = 256

// Distribution is a parsed normalized FSE distribution: one count per
// symbol (negative one meaning "low probability", counted as one slot),
// plus the accuracy log the table should be built at.
type Distribution struct {
	finalCounts [maxSymbols]int16
	symbolState [maxSymbols]uint16
	symbolCount int
	hasLowProb  bool
	accuracyLog uint8
}

// ReadDistribution parses a normalized distribution from a forward bit
// stream, per RFC 8878 §4.1.1. maxAccuracyLog bounds the accuracy log this
// particular table kind may declare (9 for LL/ML, 8 for OF, 6 for Huff0
// weights).
func ReadDistribution(r *bitio.Forward, maxAccuracyLog uint8) (*Distribution, error) {
	raw, err := r.Read(4)
	if err != nil {
		return nil, err
	}
	accuracyLog := uint8(raw) + 5
	if accuracyLog > maxAccuracyLog {
		return nil, errAccuracyLogMismatch(maxAccuracyLog, accuracyLog)
	}

	d := &Distribution{accuracyLog: accuracyLog}

	symbolIdx := 0
	hasLowProb := false
	remaining := int32(1) << accuracyLog

	for remaining > 0 {
		if symbolIdx >= maxSymbols {
			return nil, ErrTooManySymbols
		}

		maxVal := remaining + 1
		nBits := uint8(32 - bits.LeadingZeros32(uint32(maxVal)))

		if err := r.Ensure(nBits); err != nil {
			return nil, err
		}
		val64 := r.Peek(nBits)
		val := int32(val64)
		mask := int32(1)<<(nBits-1) - 1
		threshold := (int32(1) << nBits) - maxVal - 1
		small := val & mask

		var value int32
		if small < threshold {
			r.Consume(nBits - 1)
			value = small
		} else if val > mask {
			r.Consume(nBits)
			value = val - threshold
		} else {
			r.Consume(nBits)
			value = val
		}

		prob := int16(value - 1)
		hasLowProb = hasLowProb || value == 0

		state := prob
		if prob == -1 {
			state = 1
		}
		d.finalCounts[symbolIdx] = prob
		d.symbolState[symbolIdx] = uint16(state)
		symbolIdx++

		if prob != 0 {
			remaining -= int32(state)
		} else {
			for {
				skip, err := r.Read(2)
				if err != nil {
					return nil, err
				}
				symbolIdx += int(skip)
				if skip != 3 {
					break
				}
			}
		}
	}

	if remaining != 0 {
		return nil, errSumMismatch(remaining)
	}

	d.symbolCount = symbolIdx
	d.hasLowProb = hasLowProb
	return d, nil
}

// FromPredefined builds a Distribution from one of the RFC default
// normalized distributions (counts, one per symbol; -1 marks low
// probability).
func FromPredefined(counts []int16, accuracyLog uint8) *Distribution {
	d := &Distribution{accuracyLog: accuracyLog}
	for idx, count := range counts {
		d.finalCounts[idx] = count
		if count == -1 {
			d.hasLowProb = true
			d.symbolState[idx] = 1
		} else {
			d.symbolState[idx] = uint16(count)
		}
		d.symbolCount = idx + 1
	}
	return d
}

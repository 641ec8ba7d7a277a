package zstd

// executeSequences applies a block's decoded sequences to the window: for
// each sequence, push the next lit_len literal bytes, resolve the real
// offset via the repeated-offset history, then copy match_len bytes from
// that offset. Once all sequences are applied, the trailing literals (after
// the last sequence's) are pushed as-is.
func executeSequences(w *window, literals []byte, seqs []sequence, hist *[3]uint32) error {
	litIdx := 0
	for _, s := range seqs {
		litLen := int(s.litLen)
		if litIdx+litLen > len(literals) {
			return errf("LiteralsBufferOverread", "sequence needs %d literals, %d remain", litLen, len(literals)-litIdx)
		}
		w.pushBuf(literals[litIdx : litIdx+litLen])
		litIdx += litLen

		offset, err := resolveOffset(s.offset, litLen, hist)
		if err != nil {
			return err
		}

		available := w.index
		if w.size < available {
			available = w.size
		}
		if offset == 0 {
			return errf("ZeroOffset", "resolved offset is zero")
		}
		if int(offset) > available {
			return errCopySizeOutOfBounds(int(offset), available)
		}

		if err := w.copyWithin(int(offset), int(s.matchLen)); err != nil {
			return err
		}
	}
	if litIdx < len(literals) {
		w.pushBuf(literals[litIdx:])
	}
	return nil
}

type rotationKind int

const (
	rotateNone rotationKind = iota
	rotateSwap12
	rotateFull
)

// resolveOffset turns a raw offset code into a concrete back-reference
// distance, applying Zstandard's repeated-offset history per RFC 8878
// §3.1.1.5. Codes 1-3 reference recently used offsets; codes above 3 carry
// a literal new offset. When the preceding literal length is zero, the
// repeat codes are read as one position further out (code 1 acts like the
// normal code 2, code 2 like code 3, and code 3 like "a new offset one
// less than the current head"). The history update that follows depends on
// which repeat slot was actually used, not on the raw code: using repeat 1
// leaves the history untouched, using repeat 2 swaps the top two entries,
// and using repeat 3 or a brand new offset rotates all three.
func resolveOffset(code uint32, litLen int, hist *[3]uint32) (uint32, error) {
	var offset uint32
	rotate := rotateFull

	switch {
	case code > 3:
		offset = code - 3
	case litLen > 0:
		switch code {
		case 1:
			offset = hist[0]
			rotate = rotateNone
		case 2:
			offset = hist[1]
			rotate = rotateSwap12
		case 3:
			offset = hist[2]
		}
	default:
		switch code {
		case 1:
			offset = hist[1]
			rotate = rotateSwap12
		case 2:
			offset = hist[2]
		case 3:
			if hist[0] == 1 {
				return 0, errf("InvalidOffsetCode", "repeat-offset-minus-one requested with history[0] == 1")
			}
			offset = hist[0] - 1
		}
	}

	switch rotate {
	case rotateSwap12:
		hist[0], hist[1] = hist[1], hist[0]
	case rotateFull:
		hist[0], hist[1], hist[2] = offset, hist[0], hist[1]
	}
	return offset, nil
}

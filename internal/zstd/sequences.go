package zstd

import (
	"github.com/cosnicolaou/zstd/internal/bitio"
	"github.com/cosnicolaou/zstd/internal/fse"
)

type sequence struct {
	litLen   uint32
	matchLen uint32
	offset   uint32
}

type seqMode byte

const (
	modePredefined    seqMode = 0
	modeRLE           seqMode = 1
	modeFSECompressed seqMode = 2
	modeRepeat        seqMode = 3
)

// fseTables holds the three carried-over sequence tables (literal length,
// offset, match length), persisted across blocks within a frame so that
// "repeat mode" blocks can reuse them.
type fseTables struct {
	ll *fse.Table
	of *fse.Table
	ml *fse.Table
}

// readSequences parses a block's sequences section (header, three
// compression-mode tables, and the FSE-coded sequence stream itself) and
// returns the decoded sequences.
func readSequences(src []byte, tables *fseTables) ([]sequence, error) {
	if len(src) == 0 {
		return nil, &bitio.NotEnoughBitsError{Requested: 8, Remaining: 0}
	}

	first := src[0]
	var nSeqs int
	var headerLen int

	switch {
	case first == 0:
		return nil, nil
	case first < 128:
		nSeqs = int(first)
		headerLen = 1
	case first < 255:
		if len(src) < 2 {
			return nil, &bitio.NotEnoughBitsError{Requested: 16, Remaining: 8}
		}
		nSeqs = (int(first)-128)<<8 + int(src[1])
		headerLen = 2
	default:
		if len(src) < 3 {
			return nil, &bitio.NotEnoughBitsError{Requested: 24, Remaining: len(src) * 8}
		}
		nSeqs = int(src[1]) + int(src[2])<<8 + 0x7F00
		headerLen = 3
	}

	if headerLen >= len(src) {
		return nil, &bitio.NotEnoughBitsError{Requested: 8, Remaining: 0}
	}
	modesByte := src[headerLen]
	headerLen++
	if modesByte&0x3 != 0 {
		return nil, ErrReservedBitSet
	}
	llMode := seqMode((modesByte >> 6) & 0x3)
	ofMode := seqMode((modesByte >> 4) & 0x3)
	mlMode := seqMode((modesByte >> 2) & 0x3)

	body := src[headerLen:]

	llTab, consumed, err := updateTable(llMode, llDefaultCounts, llMaxAccuracyLog, llBuildAccuracyLog, body, tables.ll)
	if err != nil {
		return nil, err
	}
	tables.ll = llTab
	body = body[consumed:]

	ofTab, consumed, err := updateTable(ofMode, ofDefaultCounts, ofMaxAccuracyLog, ofBuildAccuracyLog, body, tables.of)
	if err != nil {
		return nil, err
	}
	tables.of = ofTab
	body = body[consumed:]

	mlTab, consumed, err := updateTable(mlMode, mlDefaultCounts, mlMaxAccuracyLog, mlBuildAccuracyLog, body, tables.ml)
	if err != nil {
		return nil, err
	}
	tables.ml = mlTab
	body = body[consumed:]

	r, err := bitio.NewReverse(body)
	if err != nil {
		return nil, err
	}

	llDec, err := fse.NewDecoder(tables.ll, r)
	if err != nil {
		return nil, err
	}
	ofDec, err := fse.NewDecoder(tables.of, r)
	if err != nil {
		return nil, err
	}
	mlDec, err := fse.NewDecoder(tables.ml, r)
	if err != nil {
		return nil, err
	}

	seqs := make([]sequence, 0, nSeqs)
	for i := 0; i < nSeqs; i++ {
		ofCode := int(ofDec.Peek())
		mlCode := int(mlDec.Peek())
		llCode := int(llDec.Peek())

		offset, err := decodeOffset(ofCode, r)
		if err != nil {
			return nil, err
		}
		matchLen, err := decodeLLorML(mlTable, "match length", mlCode, r)
		if err != nil {
			return nil, err
		}
		litLen, err := decodeLLorML(llTable, "literal length", llCode, r)
		if err != nil {
			return nil, err
		}

		seqs = append(seqs, sequence{litLen: litLen, matchLen: matchLen, offset: offset})

		if i != nSeqs-1 {
			if err := llDec.Update(r); err != nil {
				return nil, err
			}
			if err := mlDec.Update(r); err != nil {
				return nil, err
			}
			if err := ofDec.Update(r); err != nil {
				return nil, err
			}
		}
	}

	if r.BitsRemaining() > 0 {
		return nil, errExtraBitsInStream(r.BitsRemaining())
	}
	return seqs, nil
}

// updateTable applies one of a sequence-table's four compression modes,
// returning the resulting table and the number of forward-stream bytes an
// FSE-compressed distribution consumed (zero for every other mode).
func updateTable(mode seqMode, defaultCounts []int16, maxLog, buildLog uint8, body []byte, current *fse.Table) (*fse.Table, int, error) {
	switch mode {
	case modeRepeat:
		if current == nil {
			return nil, 0, errMissingTableForRepeat("sequence")
		}
		return current, 0, nil
	case modePredefined:
		dist := fse.FromPredefined(defaultCounts, buildLog)
		table, err := fse.BuildTable(dist)
		if err != nil {
			return nil, 0, err
		}
		return table, 0, nil
	case modeRLE:
		if len(body) == 0 {
			return nil, 0, ErrEmptyRLESource
		}
		return fse.RLETable(body[0]), 1, nil
	default:
		fwd, err := bitio.NewForward(body)
		if err != nil {
			return nil, 0, err
		}
		dist, err := fse.ReadDistribution(fwd, maxLog)
		if err != nil {
			return nil, 0, err
		}
		table, err := fse.BuildTable(dist)
		if err != nil {
			return nil, 0, err
		}
		return table, fwd.BytesConsumed(), nil
	}
}

package zstd

// Default normalized distributions for literal-length, match-length, and
// offset FSE tables, per RFC 8878 §4.1.1.3. The *MaxAccuracyLog constants
// are the largest accuracy log the format allows for each kind; the
// *BuildAccuracyLog constants are the accuracy log the predefined counts
// were normalized at.

var llDefaultCounts = []int16{
	4, 3, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 1, 1, 1, 2, 2, 2, 2, 2, 2, 2, 2, 2, 3,
	2, 1, 1, 1, 1, 1, -1, -1, -1, -1,
}

const (
	llMaxAccuracyLog   uint8 = 9
	llBuildAccuracyLog uint8 = 6
)

var mlDefaultCounts = []int16{
	1, 4, 3, 2, 2, 2, 2, 2, 2, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, -1, -1, -1,
	-1, -1, -1, -1,
}

const (
	mlMaxAccuracyLog   uint8 = 9
	mlBuildAccuracyLog uint8 = 6
)

var ofDefaultCounts = []int16{
	1, 1, 1, 1, 1, 1, 2, 2, 2, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
	-1, -1, -1, -1, -1,
}

const (
	ofMaxAccuracyLog   uint8 = 8
	ofBuildAccuracyLog uint8 = 5
)

// baselineEntry pairs a sequence-code baseline value with the number of
// extra bits that follow it in the bitstream.
type baselineEntry struct {
	baseline uint32
	nBits    uint8
}

// llTable maps a literal-length code (0..35) to its baseline and extra-bit
// count, per RFC 8878 §4.1.1.3 table 4.
var llTable = []baselineEntry{
	{0, 0}, {1, 0}, {2, 0}, {3, 0}, {4, 0}, {5, 0}, {6, 0}, {7, 0}, {8, 0}, {9, 0},
	{10, 0}, {11, 0}, {12, 0}, {13, 0}, {14, 0}, {15, 0}, {16, 1}, {18, 1}, {20, 1}, {22, 1},
	{24, 2}, {28, 2}, {32, 3}, {40, 3}, {48, 4}, {64, 6}, {128, 7}, {256, 8}, {512, 9}, {1024, 10},
	{2048, 11}, {4096, 12}, {8192, 13}, {16384, 14}, {32768, 15}, {65536, 16},
}

// mlTable maps a match-length code (0..52) to its baseline and extra-bit
// count, per RFC 8878 §4.1.1.3 table 5.
var mlTable = []baselineEntry{
	{3, 0}, {4, 0}, {5, 0}, {6, 0}, {7, 0}, {8, 0}, {9, 0}, {10, 0}, {11, 0}, {12, 0},
	{13, 0}, {14, 0}, {15, 0}, {16, 0}, {17, 0}, {18, 0}, {19, 0}, {20, 0}, {21, 0}, {22, 0},
	{23, 0}, {24, 0}, {25, 0}, {26, 0}, {27, 0}, {28, 0}, {29, 0}, {30, 0}, {31, 0}, {32, 0},
	{33, 0}, {34, 0}, {35, 1}, {37, 1}, {39, 1}, {41, 1}, {43, 2}, {47, 2}, {51, 3}, {59, 3},
	{67, 4}, {83, 4}, {99, 5}, {131, 7}, {259, 8}, {515, 9}, {1027, 10}, {2051, 11}, {4099, 12},
	{8195, 13}, {16387, 14}, {32771, 15}, {65539, 16},
}

func decodeLLorML(table []baselineEntry, kind string, code int, r bitReader) (uint32, error) {
	if code < 0 || code >= len(table) {
		return 0, errInvalidFSECode(kind, code)
	}
	e := table[code]
	if e.nBits == 0 {
		return e.baseline, nil
	}
	extra, err := r.Read(e.nBits)
	if err != nil {
		return 0, err
	}
	return e.baseline + uint32(extra), nil
}

// decodeOffset computes a raw offset from an offset code: the code's low 5
// bits select a power-of-two baseline, and that many extra bits follow it.
func decodeOffset(code int, r bitReader) (uint32, error) {
	nBits := uint8(code & 0x1F)
	extra, err := r.Read(nBits)
	if err != nil {
		return 0, err
	}
	return (uint32(1) << nBits) + uint32(extra), nil
}

// bitReader is the subset of bitio.Reverse the table decode helpers need.
type bitReader interface {
	Read(nBits uint8) (uint64, error)
}

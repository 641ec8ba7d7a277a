package zstd

import "github.com/cosnicolaou/zstd/internal/huff0"

// decodeContext owns everything a single frame's worth of decoding needs:
// the output window, entropy tables persisted across blocks within the
// frame, and scratch space reused between blocks to avoid reallocating on
// every call.
type decodeContext struct {
	window     *window
	huffTable  *huff0.Table
	tables     fseTables
	offsetHist [3]uint32
	scratch    []byte
}

func newDecodeContext() *decodeContext {
	return &decodeContext{
		scratch: make([]byte, 0, MaxBlockSize),
	}
}

// reset prepares the context for a new frame: a freshly sized window and
// cleared entropy tables and offset history. Scratch storage is kept and
// reused in place.
func (c *decodeContext) reset(windowSize uint64) {
	if c.window == nil {
		c.window = newWindow(int(windowSize))
	} else {
		c.window.reset(int(windowSize))
	}
	c.huffTable = nil
	c.tables = fseTables{}
	c.offsetHist = [3]uint32{1, 4, 8}
}

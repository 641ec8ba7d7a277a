package zstd

import "github.com/cosnicolaou/zstd/internal/bitio"

// MaxBlockSize is the largest a single block's decompressed content may be.
const MaxBlockSize = 128 * 1024

// Window is the sliding output buffer that both accumulates decompressed
// bytes for flushing and serves as the source for LZ-style back-references.
// It holds up to size+MaxBlockSize bytes so that copy_within never has to
// look further back than size bytes from index before the next shift.
type window struct {
	buf   []byte
	size  int
	index int
}

func newWindow(size int) *window {
	return &window{
		buf:  make([]byte, size+MaxBlockSize),
		size: size,
	}
}

// reset reconfigures the window for a new frame, reusing buf's storage when
// it's already large enough.
func (w *window) reset(size int) {
	needed := size + MaxBlockSize
	if cap(w.buf) < needed {
		w.buf = make([]byte, needed)
	} else {
		w.buf = w.buf[:needed]
	}
	w.size = size
	w.index = 0
}

func (w *window) Index() int { return w.index }

// bytes is the valid, written prefix of the window.
func (w *window) bytes() []byte { return w.buf[:w.index] }

// shift moves the trailing `size` bytes to the front of buf once index has
// advanced far enough that a further write could overflow it.
func (w *window) shift() {
	if w.index <= w.size {
		return
	}
	copy(w.buf[0:w.size], w.buf[w.index-w.size:w.index])
	w.index = w.size
}

func (w *window) shiftIfNeeded(extra int) {
	if w.index+extra > len(w.buf) {
		w.shift()
	}
}

// pushBuf appends data, shifting the window first if necessary.
func (w *window) pushBuf(data []byte) {
	w.shiftIfNeeded(len(data))
	copy(w.buf[w.index:w.index+len(data)], data)
	w.index += len(data)
}

// pushRLE appends count repetitions of b, shifting the window first if
// necessary.
func (w *window) pushRLE(b byte, count int) {
	w.shiftIfNeeded(count)
	seg := w.buf[w.index : w.index+count]
	for i := range seg {
		seg[i] = b
	}
	w.index += count
}

// readFrom reads len bytes directly from src into the window, for raw
// blocks, shifting first if necessary.
func (w *window) readFrom(src *bitio.ByteReader, n int) error {
	w.shiftIfNeeded(n)
	if err := src.ReadExact(w.buf[w.index : w.index+n]); err != nil {
		return err
	}
	w.index += n
	return nil
}

// copyWithin implements a back-reference copy of nBytes starting offset
// bytes behind the current index, per RFC 8878's sequence execution: a
// disjoint memmove when offset >= nBytes, a single-byte fast fill when
// offset == 1, and an overlap-respecting "doubling expansion" copy
// otherwise (each pass doubles how much of the destination has already
// been written and can be copied from again).
func (w *window) copyWithin(offset, nBytes int) error {
	w.shiftIfNeeded(nBytes)

	available := w.index
	if w.size < available {
		available = w.size
	}
	if offset == 0 || offset > available {
		return errCopySizeOutOfBounds(offset, available)
	}

	start := w.index - offset

	switch {
	case offset >= nBytes:
		copy(w.buf[w.index:w.index+nBytes], w.buf[start:start+nBytes])
	case offset == 1:
		b := w.buf[start]
		seg := w.buf[w.index : w.index+nBytes]
		for i := range seg {
			seg[i] = b
		}
	default:
		copied := offset
		if copied > nBytes {
			copied = nBytes
		}
		copy(w.buf[w.index:w.index+copied], w.buf[start:start+copied])
		for copied < nBytes {
			copyLen := copied
			if rem := nBytes - copied; rem < copyLen {
				copyLen = rem
			}
			copy(w.buf[w.index+copied:w.index+copied+copyLen], w.buf[w.index:w.index+copyLen])
			copied += copyLen
		}
	}

	w.index += nBytes
	return nil
}

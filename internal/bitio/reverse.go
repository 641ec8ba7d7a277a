package bitio

// Reverse is a tail-first bit reader used for FSE- and Huff0-coded streams,
// which Zstandard writes with the last bit of the stream stored first. The
// final byte of src must be non-zero: its highest set bit is a sentinel
// marking the logical end of the stream, and the bits below it are the
// first bits read.
type Reverse struct {
	src      []byte
	buf      uint64
	bitCount uint8
}

// NewReverse returns a Reverse reader over src.
func NewReverse(src []byte) (*Reverse, error) {
	if len(src) == 0 {
		return nil, ErrEmptyStream
	}
	last := src[len(src)-1]
	if last == 0 {
		return nil, ErrMissingSentinel
	}
	bitCount := uint8(7 - leadingZeros8(last))
	mask := (uint64(1) << bitCount) - 1
	return &Reverse{
		src:      src[:len(src)-1],
		buf:      uint64(last) & mask,
		bitCount: bitCount,
	}, nil
}

func leadingZeros8(b byte) uint8 {
	var n uint8
	for b&0x80 == 0 {
		b <<= 1
		n++
	}
	return n
}

// BitCount reports how many bits remain buffered (not counting the
// as-yet-unread portion of src).
func (r *Reverse) BitCount() uint8 { return r.bitCount }

// BitsRemaining reports the total number of bits left in the stream.
func (r *Reverse) BitsRemaining() int {
	return int(r.bitCount) + len(r.src)*8
}

func (r *Reverse) ensure(nBits uint8) error {
	if r.bitCount < nBits {
		r.refill()
		if r.bitCount < nBits {
			return &NotEnoughBitsError{Requested: int(nBits), Remaining: r.BitsRemaining()}
		}
	}
	return nil
}

// Read returns the next nBits bits (1..=56) and advances the stream,
// failing if fewer bits remain.
func (r *Reverse) Read(nBits uint8) (uint64, error) {
	if err := r.ensure(nBits); err != nil {
		return 0, err
	}
	ret := r.Peek(nBits)
	r.consumeUnchecked(nBits)
	return ret, nil
}

// ReadPadded returns up to nBits bits, zero-padding instead of failing when
// fewer remain. Huff0 relies on this at the tail of a stream, where the
// final symbol's state transition legitimately reads past the sentinel.
func (r *Reverse) ReadPadded(nBits uint8) uint64 {
	if r.bitCount < nBits {
		r.refill()
	}
	toRead := nBits
	if r.bitCount < toRead {
		toRead = r.bitCount
	}
	ret := r.Peek(toRead)
	r.consumeUnchecked(toRead)
	return ret
}

// Peek returns the next nBits buffered bits without consuming them. nBits
// must not exceed BitCount().
func (r *Reverse) Peek(nBits uint8) uint64 {
	return r.buf & ((uint64(1) << nBits) - 1)
}

// Consume discards nBits already-peeked bits. nBits must not exceed
// BitCount().
func (r *Reverse) Consume(nBits uint8) { r.consumeUnchecked(nBits) }

func (r *Reverse) consumeUnchecked(nBits uint8) {
	r.buf >>= nBits
	r.bitCount -= nBits
}

// refill tops up buf from the tail of src, big-endian. The hot path
// requires an empty register and pulls 8 bytes at once; the cold path
// shifts in whatever is left.
func (r *Reverse) refill() {
	count := (64 - int(r.bitCount)) / 8
	if count == 0 {
		return
	}
	toRead := count
	if toRead > len(r.src) {
		toRead = len(r.src)
	}
	if toRead < 8 {
		r.refillCold(toRead)
		return
	}
	start := len(r.src) - 8
	b := r.src[start : start+8]
	buf := uint64(b[0])<<56 | uint64(b[1])<<48 | uint64(b[2])<<40 | uint64(b[3])<<32 |
		uint64(b[4])<<24 | uint64(b[5])<<16 | uint64(b[6])<<8 | uint64(b[7])
	r.buf = buf
	r.bitCount = 64
	r.src = r.src[:start]
}

func (r *Reverse) refillCold(toRead int) {
	avail := len(r.src)
	start := avail - toRead
	tail := r.src[start:]
	for i := 0; i < len(tail); i++ {
		b := tail[len(tail)-1-i]
		r.buf |= uint64(b) << (r.bitCount + uint8(i)*8)
	}
	r.bitCount += uint8(toRead * 8)
	r.src = r.src[:start]
}

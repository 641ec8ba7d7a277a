package bitio

import "io"

// ByteReader adapts an io.Reader with the handful of primitives the frame
// and block parsers need: reading a single byte, a little-endian u32, and
// an exact-length run, each reporting io.EOF only when it occurs at the very
// first byte of the read (matching Zstandard's "clean EOF only between
// frames" framing).
type ByteReader struct {
	r io.Reader
}

// NewByteReader wraps r.
func NewByteReader(r io.Reader) *ByteReader {
	return &ByteReader{r: r}
}

// ReadU8 reads a single byte.
func (b *ByteReader) ReadU8() (byte, error) {
	var buf [1]byte
	if _, err := io.ReadFull(b.r, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// ReadU32LE reads a little-endian uint32.
func (b *ByteReader) ReadU32LE() (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(b.r, buf[:]); err != nil {
		return 0, err
	}
	return uint32(buf[0]) | uint32(buf[1])<<8 | uint32(buf[2])<<16 | uint32(buf[3])<<24, nil
}

// ReadExact fills buf entirely or returns an error.
func (b *ByteReader) ReadExact(buf []byte) error {
	_, err := io.ReadFull(b.r, buf)
	return err
}

// ReadFrameStart reads the little-endian u32 magic number that opens a new
// frame. It returns io.EOF when the stream ends cleanly at a frame boundary
// (no byte read); a stream that ends partway through the four bytes yields
// io.ErrUnexpectedEOF, and any other read error is returned as is.
func (b *ByteReader) ReadFrameStart() (uint32, error) {
	var buf [4]byte
	_, err := io.ReadFull(b.r, buf[:])
	if err == io.EOF {
		return 0, io.EOF
	}
	if err != nil {
		return 0, err
	}
	return uint32(buf[0]) | uint32(buf[1])<<8 | uint32(buf[2])<<16 | uint32(buf[3])<<24, nil
}

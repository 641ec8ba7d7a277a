// Copyright 2020 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package bitio provides the two bit-oriented readers that the rest of
// the decoder is built on: a forward, LSB-first reader used for frame,
// block and distribution headers, and a reverse, tail-first reader used
// for FSE- and Huff0-coded streams.
package bitio

import "fmt"

// NotEnoughBitsError is returned when a read requests more bits than
// remain in the stream.
type NotEnoughBitsError struct {
	Requested int
	Remaining int
}

func (e *NotEnoughBitsError) Error() string {
	return fmt.Sprintf("bitio: requested %d bits, only %d remain", e.Requested, e.Remaining)
}

// ErrEmptyStream is returned when a reader is constructed over a zero-length
// slice.
var ErrEmptyStream = fmt.Errorf("bitio: empty stream")

// ErrMissingSentinel is returned when a reverse reader's source does not end
// in a non-zero byte, so no sentinel bit can be located.
var ErrMissingSentinel = fmt.Errorf("bitio: final byte is zero, no sentinel bit")

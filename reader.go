// Copyright 2021 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package zstd

import (
	"io"
	"sync"

	izstd "github.com/cosnicolaou/zstd/internal/zstd"
)

// Stats reports counters accumulated over the lifetime of a Reader.
type Stats struct {
	// BytesRead is the number of compressed bytes consumed from the
	// underlying source.
	BytesRead int64
	// BytesWritten is the number of decompressed bytes produced.
	BytesWritten int64
}

// Reader is an io.Reader that decompresses a Zstandard stream. Decoding
// runs in its own goroutine, feeding an io.Pipe; Read drains that pipe and
// surfaces any decode error once the goroutine has finished.
type Reader struct {
	pr    *io.PipeReader
	errCh chan error
	wg    *sync.WaitGroup

	mu    sync.Mutex
	stats Stats
}

// NewReader returns a Reader that decompresses r.
func NewReader(r io.Reader) (*Reader, error) {
	pr, pw := io.Pipe()
	cr := &countingReader{r: r}

	errCh := make(chan error, 1)
	wg := new(sync.WaitGroup)
	wg.Add(1)

	rd := &Reader{pr: pr, errCh: errCh, wg: wg}

	cw := &countingWriter{w: pw, rd: rd}
	go func() {
		err := wrapError(izstd.Decode(cw, cr))
		rd.mu.Lock()
		rd.stats.BytesRead = cr.n
		rd.mu.Unlock()
		pw.CloseWithError(err)
		errCh <- err
		close(errCh)
		wg.Done()
	}()
	return rd, nil
}

// Read implements io.Reader.
func (rd *Reader) Read(p []byte) (int, error) {
	return rd.pr.Read(p)
}

// Close releases resources associated with the Reader, unblocking the
// decode goroutine if it is still running.
func (rd *Reader) Close() error {
	err := rd.pr.Close()
	rd.wg.Wait()
	return err
}

// Stats returns a snapshot of the Reader's byte counters.
func (rd *Reader) Stats() Stats {
	rd.mu.Lock()
	defer rd.mu.Unlock()
	return rd.stats
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

type countingWriter struct {
	w  io.Writer
	rd *Reader
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.rd.mu.Lock()
	c.rd.stats.BytesWritten += int64(n)
	c.rd.mu.Unlock()
	return n, err
}

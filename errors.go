// Copyright 2021 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package zstd

import (
	"fmt"

	"github.com/cosnicolaou/zstd/internal/bitio"
	"github.com/cosnicolaou/zstd/internal/fse"
	"github.com/cosnicolaou/zstd/internal/huff0"
	izstd "github.com/cosnicolaou/zstd/internal/zstd"
)

// Error wraps a decode failure from one of the internal entropy-coding or
// frame-parsing stages, preserving its Kind for callers that want to
// branch on failure category without depending on internal packages.
type Error struct {
	Kind string
	err  error
}

func (e *Error) Error() string { return fmt.Sprintf("zstd: %s: %v", e.Kind, e.err) }

func (e *Error) Unwrap() error { return e.err }

// wrapError converts an internal package error into a public Error,
// preserving its failure-kind tag, and passes through everything else
// (I/O failures, context cancelation) unchanged.
func wrapError(err error) error {
	switch e := err.(type) {
	case nil:
		return nil
	case *izstd.Error:
		return &Error{Kind: e.Kind, err: err}
	case *huff0.Error:
		return &Error{Kind: e.Kind, err: err}
	case *fse.Error:
		return &Error{Kind: e.Kind, err: err}
	case *bitio.NotEnoughBitsError:
		return &Error{Kind: "NotEnoughBits", err: err}
	default:
		return err
	}
}

// Copyright 2021 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cosnicolaou/zstd"
	"github.com/schollz/progressbar/v2"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/ssh/terminal"
)

var (
	keep        bool
	toStdout    bool
	progressBar bool
)

func main() {
	root := &cobra.Command{
		Use:   "zstdcat <input> [output]",
		Short: "decompress a Zstandard (.zst) file",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  run,
	}
	root.Flags().BoolVarP(&keep, "keep", "k", false, "keep the input file after decompressing")
	root.Flags().BoolVarP(&toStdout, "stdout", "c", false, "write decompressed output to stdout")
	root.Flags().BoolVar(&progressBar, "progress", true, "display a progress bar when writing to a file")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	input := args[0]

	in, err := os.Open(input)
	if err != nil {
		return err
	}
	defer in.Close()

	size := int64(0)
	if info, err := in.Stat(); err == nil {
		size = info.Size()
	}

	out, outputPath, cleanup, err := openOutput(args, input)
	if err != nil {
		return err
	}
	defer cleanup()

	var wr io.Writer = out
	var bar *progressbar.ProgressBar
	isTTY := terminal.IsTerminal(int(os.Stderr.Fd()))
	if progressBar && outputPath != "" && isTTY {
		bar = progressbar.NewOptions64(size,
			progressbar.OptionSetBytes64(size),
			progressbar.OptionSetWriter(os.Stderr))
		wr = io.MultiWriter(out, progressWriter{bar})
	}

	if err := zstd.Decompress(wr, in); err != nil {
		return err
	}
	if bar != nil {
		fmt.Fprintln(os.Stderr)
	}

	if !keep && outputPath != "" {
		in.Close()
		return os.Remove(input)
	}
	return nil
}

// openOutput decides where decompressed bytes go: explicit second
// argument, stdout when -c was given, or a file derived from the input
// name with its .zst suffix stripped.
func openOutput(args []string, input string) (io.Writer, string, func(), error) {
	if toStdout {
		return os.Stdout, "", func() {}, nil
	}
	outputPath := ""
	if len(args) == 2 {
		outputPath = args[1]
	} else {
		outputPath = strings.TrimSuffix(input, ".zst")
		if outputPath == input {
			return nil, "", nil, fmt.Errorf("zstdcat: cannot infer output name for %q: pass it explicitly", input)
		}
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return nil, "", nil, err
	}
	return f, outputPath, func() { f.Close() }, nil
}

// progressWriter drives the progress bar's byte counter without acting as
// the real destination; used as one leg of an io.MultiWriter.
type progressWriter struct {
	bar *progressbar.ProgressBar
}

func (p progressWriter) Write(b []byte) (int, error) {
	p.bar.Add(len(b))
	return len(b), nil
}

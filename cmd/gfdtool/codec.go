package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/gfdtools/gfdfile/gfd"
	"github.com/spf13/cobra"
)

func newDumpCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dump [INPUT]",
		Short: "Write a readable representation of a file",
		Long: `Reads a GFD file from INPUT and writes to stdout a readable representation
of its chunks. Chunks that cannot be decoded are written as hex.

If INPUT is "-" or unspecified, then stdin is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openInput(argAt(args, 0))
			if err != nil {
				return err
			}
			defer in.Close()

			warn, err := a.decoder().Dump(cmd.OutOrStdout(), in)
			if warn != nil {
				a.logger.Warn("decode", "warning", warn)
			}
			return err
		},
	}
}

func newRecodeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "recode [INPUT] [OUTPUT]",
		Short: "Decode a file and encode it again",
		Long: `Reads a GFD file from INPUT, and writes to OUTPUT the same file as encoded
by this tool. Material presence flags are recomputed from the maps and
attributes that are present.

INPUT and OUTPUT are paths to files. If INPUT is "-" or unspecified, then stdin
is used. If OUTPUT is "-" or unspecified, then stdout is used.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openInput(argAt(args, 0))
			if err != nil {
				return err
			}
			defer in.Close()

			root, warn, err := a.decoder().Decode(in)
			if warn != nil {
				a.logger.Warn("decode", "warning", warn)
			}
			if err != nil {
				return fmt.Errorf("decode: %w", err)
			}

			out, err := createOutput(argAt(args, 1))
			if err != nil {
				return err
			}
			if err := a.encoder().Encode(out, root); err != nil {
				out.Close()
				return fmt.Errorf("encode: %w", err)
			}
			return out.Close()
		},
	}
}

func newVerifyCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "verify FILE...",
		Short: "Check that files survive a decode and encode unchanged",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				if !a.verifyFile(path) {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed verification", failed, len(args))
			}
			return nil
		},
	}
}

// verifyFile verifies the file at path and logs the result.
func (a *app) verifyFile(path string) (ok bool) {
	b, err := os.ReadFile(path)
	if err != nil {
		a.logger.Error("read", "file", path, "err", err)
		return false
	}
	warn, err := verify(a.decoder(), a.encoder(), b)
	if warn != nil {
		a.logger.Warn("verify", "file", path, "warning", warn)
	}
	if err != nil {
		a.logger.Error("verify", "file", path, "err", err)
		return false
	}
	a.logger.Info("verify", "file", path, "size", len(b))
	return true
}

// MismatchError indicates that an encoded file differs from the original.
type MismatchError struct {
	// Offset of the first differing byte.
	Offset int
	// Lengths of the original and encoded files.
	Want, Actual int
}

func (err MismatchError) Error() string {
	return fmt.Sprintf("encoded file differs at offset %d (original %d bytes, encoded %d bytes)", err.Offset, err.Want, err.Actual)
}

// verify decodes b and checks that encoding the result reproduces b.
func verify(dec gfd.Decoder, enc gfd.Encoder, b []byte) (warn, err error) {
	root, warn, err := dec.Decode(bytes.NewReader(b))
	if err != nil {
		return warn, fmt.Errorf("decode: %w", err)
	}
	var buf bytes.Buffer
	if err := enc.Encode(&buf, root); err != nil {
		return warn, fmt.Errorf("encode: %w", err)
	}
	if i := firstDifference(b, buf.Bytes()); i >= 0 {
		return warn, MismatchError{Offset: i, Want: len(b), Actual: buf.Len()}
	}
	return warn, nil
}

// firstDifference returns the offset of the first byte that differs between
// a and b, or -1 if they are equal.
func firstDifference(a, b []byte) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	if len(a) != len(b) {
		return n
	}
	return -1
}

package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gfdtools/gfdfile/gfd"
	"github.com/gfdtools/gfdfile/gfdpack"
	"github.com/spf13/cobra"
)

func newPackCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pack OUTPUT FILE...",
		Short: "Bundle files into a pack",
		Long: `Writes to OUTPUT a pack containing each FILE, named by its base name. Files
that have the GFD signature are decoded first, and are rejected if decoding
fails. Other files are added as they are.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := gfdpack.New()
			p.Compress = a.config.Pack.Compress
			for _, path := range args[1:] {
				if err := a.addToPack(p, path); err != nil {
					return err
				}
			}

			out, err := createOutput(args[0])
			if err != nil {
				return err
			}
			if _, err := p.WriteTo(out); err != nil {
				out.Close()
				return fmt.Errorf("write pack: %w", err)
			}
			a.logger.Info("pack", "entries", len(p.Names()), "contents", p.BlobCount())
			return out.Close()
		},
	}
	cmd.Flags().Bool("compress", true, "compress the content of the pack")
	a.bind("pack.compress", cmd.Flags(), "compress")
	return cmd
}

// addToPack adds the file at path to p.
func (a *app) addToPack(p *gfdpack.Pack, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	name := filepath.Base(path)
	if (gfd.Format{}).CanDecode(bytes.NewReader(b), name) {
		_, warn, err := a.decoder().Decode(bytes.NewReader(b))
		if warn != nil {
			a.logger.Warn("pack", "file", path, "warning", warn)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	} else {
		a.logger.Warn("not a GFD file, added as is", "file", path)
	}
	d := p.AddBytes(name, b)
	a.logger.Debug("pack", "name", name, "digest", d)
	return nil
}

func newUnpackCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "unpack PACK DIR",
		Short: "Extract the files of a pack into a directory",
		Long: `Reads the pack at PACK and writes each of its files into DIR. Files with
the GFD signature are decoded first, and nothing is written if any of them
fails to decode.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openInput(args[0])
			if err != nil {
				return err
			}
			defer in.Close()

			p := gfdpack.New()
			if _, err := p.ReadFrom(in); err != nil {
				return fmt.Errorf("read pack: %w", err)
			}
			warn, err := p.Check(a.decoder())
			if warn != nil {
				a.logger.Warn("unpack", "warning", warn)
			}
			if err != nil {
				return fmt.Errorf("check pack: %w", err)
			}
			if err := os.MkdirAll(args[1], 0o755); err != nil {
				return err
			}
			for _, name := range p.Names() {
				if !filepath.IsLocal(name) {
					return fmt.Errorf("entry %q is not a local path", name)
				}
				content, _ := p.Bytes(name)
				path := filepath.Join(args[1], name)
				if err := os.WriteFile(path, content, 0o644); err != nil {
					return err
				}
				a.logger.Debug("unpack", "file", path, "size", len(content))
			}
			a.logger.Info("unpack", "entries", len(p.Names()))
			return nil
		},
	}
}

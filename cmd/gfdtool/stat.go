package main

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/gfdtools/gfdfile"
	"github.com/spf13/cobra"
)

// TextureSize describes the size of the data of one texture.
type TextureSize struct {
	Name   string
	Format gfdfile.TextureFormat
	Length int
}

func (t TextureSize) String() string {
	return fmt.Sprintf("%s:%d(%d)", t.Name, t.Format, t.Length)
}

// TextureSizes is a list of textures of which only the largest are encoded.
type TextureSizes []TextureSize

func (t TextureSizes) MarshalJSON() ([]byte, error) {
	list := make([]string, 0, len(t))
	sorted := append(TextureSizes(nil), t...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Length > sorted[j].Length
	})
	if len(sorted) > 20 {
		sorted = sorted[:20]
	}
	for _, s := range sorted {
		list = append(list, s.String())
	}
	return json.Marshal(list)
}

// Stats summarizes the content of a file.
type Stats struct {
	Version gfdfile.Version
	Type    gfdfile.FileType

	// Number of top-level chunks.
	ChunkCount int

	// Number of resources per kind, including nested resources.
	KindCount map[string]int

	// Number of materials per parameter format.
	ParameterFormatCount map[uint16]int `json:",omitempty"`

	// Number of attached texture maps per slot.
	MapCount map[string]int `json:",omitempty"`

	// Number of attributes per type.
	AttributeCount map[string]int `json:",omitempty"`

	LargestTextures TextureSizes `json:",omitempty"`
}

// Fill computes stats from root.
func (s *Stats) Fill(root *gfdfile.Root) {
	if root == nil {
		return
	}
	s.Version = root.Version
	s.Type = root.Type
	s.ChunkCount = len(root.Resources)
	s.KindCount = map[string]int{}
	s.ParameterFormatCount = map[uint16]int{}
	s.MapCount = map[string]int{}
	s.AttributeCount = map[string]int{}
	s.LargestTextures = nil

	for _, res := range root.Resources {
		s.count(res)
		switch res := res.(type) {
		case *gfdfile.MaterialDictionary:
			for _, m := range res.Materials {
				s.fillMaterial(m)
			}
		case *gfdfile.TextureDictionary:
			for _, t := range res.Textures {
				s.count(t)
				s.LargestTextures = append(s.LargestTextures, TextureSize{
					Name:   t.Name,
					Format: t.Format,
					Length: len(t.Data),
				})
			}
		}
	}
}

func (s *Stats) count(res gfdfile.Resource) {
	s.KindCount[res.Kind().String()]++
}

func (s *Stats) fillMaterial(m *gfdfile.Material) {
	s.count(m)
	s.ParameterFormatCount[m.ParameterFormat]++
	for slot := gfdfile.TextureMapSlot(0); slot < gfdfile.NumTextureMapSlots; slot++ {
		if tm := m.Map(slot); tm != nil {
			s.count(tm)
			s.MapCount[slot.String()]++
		}
	}
	for _, attr := range m.Attributes() {
		s.count(attr)
		s.AttributeCount[attr.Type().String()]++
	}
}

func newStatCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stat [INPUT] [OUTPUT]",
		Short: "Write statistics for a file as JSON",
		Long: `Reads a GFD file from INPUT, and writes to OUTPUT statistics for the file.

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

			var stats Stats
			stats.Fill(root)

			out, err := createOutput(argAt(args, 1))
			if err != nil {
				return err
			}
			je := json.NewEncoder(out)
			je.SetEscapeHTML(false)
			je.SetIndent("", "\t")
			if err := je.Encode(stats); err != nil {
				out.Close()
				return fmt.Errorf("write stats: %w", err)
			}
			return out.Close()
		},
	}
}

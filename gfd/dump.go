package gfd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"unicode"

	"github.com/gfdtools/gfdfile"
	"github.com/gfdtools/gfdfile/errors"
)

// Dump writes to w a readable representation of the file decoded from r.
// Chunks that cannot be decoded are dumped as bytes, as if SkipUnknown were
// set.
func (d Decoder) Dump(w io.Writer, r io.Reader) (warn, err error) {
	if r == nil {
		return nil, errors.New("nil reader")
	}
	if w == nil {
		return nil, errors.New("nil writer")
	}

	d.SkipUnknown = true
	root, warn, err := d.Decode(r)
	if err != nil {
		return warn, err
	}

	bw := bufio.NewWriter(w)
	DumpRoot(bw, root)
	bw.WriteByte('\n')
	return warn, bw.Flush()
}

// DumpRoot writes to w a readable representation of root.
func DumpRoot(w *bufio.Writer, root *gfdfile.Root) {
	fmt.Fprintf(w, "Version: %s", root.Version)
	fmt.Fprintf(w, "\nType: %d", root.Type)
	fmt.Fprintf(w, "\nChunks: (count:%d) {", len(root.Resources))
	for i, res := range root.Resources {
		dumpNewline(w, 1)
		fmt.Fprintf(w, "#%d: ", i)
		dumpResource(w, 1, res)
	}
	w.WriteString("\n}")
}

func dumpResource(w *bufio.Writer, indent int, res gfdfile.Resource) {
	fmt.Fprintf(w, "%s (version:%s) {", res.Kind(), res.Version())
	switch res := res.(type) {
	case *gfdfile.MaterialDictionary:
		dumpNewline(w, indent+1)
		fmt.Fprintf(w, "Materials: (count:%d)", len(res.Materials))
		for i, m := range res.Materials {
			dumpNewline(w, indent+1)
			fmt.Fprintf(w, "%d: ", i)
			dumpResource(w, indent+1, m)
		}
	case *gfdfile.Material:
		dumpMaterial(w, indent+1, res)
	case *gfdfile.TextureDictionary:
		dumpNewline(w, indent+1)
		fmt.Fprintf(w, "Textures: (count:%d)", len(res.Textures))
		for i, t := range res.Textures {
			dumpNewline(w, indent+1)
			fmt.Fprintf(w, "%d: ", i)
			dumpResource(w, indent+1, t)
		}
	case *gfdfile.Texture:
		dumpNewline(w, indent+1)
		w.WriteString("Name: ")
		dumpString(w, indent+1, res.Name)
		dumpNewline(w, indent+1)
		fmt.Fprintf(w, "Format: %d", res.Format)
		dumpNewline(w, indent+1)
		fmt.Fprintf(w, "Fields: %d %d %d %d", res.Field1C, res.Field1D, res.Field1E, res.Field1F)
		dumpNewline(w, indent+1)
		w.WriteString("Data: ")
		dumpBytes(w, indent+1, res.Data)
	case *gfdfile.TextureMap:
		dumpNewline(w, indent+1)
		w.WriteString("Name: ")
		dumpString(w, indent+1, res.Name)
		dumpNewline(w, indent+1)
		fmt.Fprintf(w, "Field44: %d", res.Field44)
		dumpNewline(w, indent+1)
		fmt.Fprintf(w, "Fields: %d %d %d %d", res.Field48, res.Field49, res.Field4A, res.Field4B)
		dumpNewline(w, indent+1)
		fmt.Fprintf(w, "Transform: %v", res.Transform)
	case *gfdfile.MaterialAttribute:
		dumpNewline(w, indent+1)
		fmt.Fprintf(w, "Type: %s", res.Type())
		dumpNewline(w, indent+1)
		fmt.Fprintf(w, "Flags: 0x%04X", res.Flags)
		dumpNewline(w, indent+1)
		fmt.Fprintf(w, "Params: %+v", res.Params)
	case *gfdfile.RawChunk:
		dumpNewline(w, indent+1)
		w.WriteString("Data: ")
		dumpBytes(w, indent+1, res.Data)
	case *gfdfile.UnknownChunk:
		dumpNewline(w, indent+1)
		w.WriteString("<unknown chunk>")
		dumpNewline(w, indent+1)
		w.WriteString("Bytes: ")
		dumpBytes(w, indent+1, res.Data)
	}
	dumpNewline(w, indent)
	w.WriteByte('}')
}

func dumpMaterial(w *bufio.Writer, indent int, m *gfdfile.Material) {
	dumpNewline(w, indent)
	w.WriteString("Name: ")
	dumpString(w, indent, m.Name)
	dumpNewline(w, indent)
	fmt.Fprintf(w, "Flags: 0x%08X", uint32(m.Flags))
	if derived := gfdfile.DeriveFlags(m); derived != m.Flags {
		fmt.Fprintf(w, " (derived: 0x%08X)", uint32(derived))
	}
	if m.Version() >= versionParameterSets {
		dumpNewline(w, indent)
		fmt.Fprintf(w, "ParameterFormat: %d", m.ParameterFormat)
		dumpNewline(w, indent)
		fmt.Fprintf(w, "Parameters: %+v", m.Parameters)
	} else {
		dumpNewline(w, indent)
		fmt.Fprintf(w, "Colors: %v %v %v %v", m.AmbientColor, m.DiffuseColor, m.SpecularColor, m.EmissiveColor)
		dumpNewline(w, indent)
		fmt.Fprintf(w, "Field40: %v, Field44: %v", m.Field40, m.Field44)
	}
	dumpNewline(w, indent)
	fmt.Fprintf(w, "DrawMethod: %d, HighlightMapMode: %d, AlphaClip: %d", m.DrawMethod, m.HighlightMapMode, m.AlphaClip)
	dumpNewline(w, indent)
	fmt.Fprintf(w, "Flags2: 0x%04X, Field96: %d", uint16(m.Flags2), m.Field96)
	dumpNewline(w, indent)
	fmt.Fprintf(w, "DisableBackfaceCulling: %d", m.DisableBackfaceCulling)
	for slot := gfdfile.TextureMapSlot(0); slot < gfdfile.NumTextureMapSlots; slot++ {
		if tm := m.Map(slot); tm != nil {
			dumpNewline(w, indent)
			fmt.Fprintf(w, "%sMap: ", slot)
			dumpResource(w, indent, tm)
		}
	}
	if attrs := m.Attributes(); len(attrs) > 0 {
		dumpNewline(w, indent)
		fmt.Fprintf(w, "Attributes: (count:%d)", len(attrs))
		for i, attr := range attrs {
			dumpNewline(w, indent)
			fmt.Fprintf(w, "%d: ", i)
			dumpResource(w, indent, attr)
		}
	}
}

func dumpNewline(w *bufio.Writer, indent int) {
	w.WriteByte('\n')
	for i := 0; i < indent; i++ {
		w.WriteByte('\t')
	}
}

func dumpString(w *bufio.Writer, indent int, s string) {
	for _, r := range s {
		if !unicode.IsGraphic(r) {
			dumpBytes(w, indent, []byte(s))
			return
		}
	}
	fmt.Fprintf(w, "(len:%d) ", len(s))
	w.WriteString(strconv.Quote(s))
}

func dumpBytes(w *bufio.Writer, indent int, b []byte) {
	fmt.Fprintf(w, "(len:%d)", len(b))
	const width = 16
	for j := 0; j < len(b); j += width {
		dumpNewline(w, indent+1)
		w.WriteString("| ")
		n := min(len(b), j+width)
		for i := j; i < j+width; i++ {
			if i < n {
				fmt.Fprintf(w, "%02x ", b[i])
			} else {
				w.WriteString("   ")
			}
			if i%8 == 7 && i < j+width-1 {
				w.WriteByte(' ')
			}
		}
		w.WriteByte('|')
		for _, c := range b[j:n] {
			if 32 <= c && c <= 126 {
				w.WriteByte(c)
			} else {
				w.WriteByte('.')
			}
		}
		w.WriteByte('|')
	}
}

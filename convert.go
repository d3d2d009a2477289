package woff

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
)

// Options configures a conversion. The zero value is ready to use. Options
// are passed per call, there is no process-wide state; Convert is safe to
// call concurrently for independent file pairs.
type Options struct {
	// Debug receives a dump of the parsed header and table directory, and
	// any error before it propagates. Nil disables diagnostic output.
	Debug io.Writer
}

// ToTTF converts a WOFF font to its contained SFNT font format (TTF or OTF).
func ToTTF(b []byte) ([]byte, error) {
	font, err := Parse(b)
	if err != nil {
		return nil, err
	}
	buf := &bytes.Buffer{}
	if _, err := font.WriteTo(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Convert reads the WOFF file at input and writes its SFNT equivalent to
// output, returning the number of bytes written. An empty output is derived
// from input by replacing a trailing .woff extension with .ttf.
func Convert(input, output string, opts *Options) (int64, error) {
	if opts == nil {
		opts = &Options{}
	}
	if output == "" {
		output = strings.TrimSuffix(input, ".woff") + ".ttf"
	}

	b, err := os.ReadFile(input)
	if err != nil {
		return 0, opts.fail(&IOError{"open input", err})
	}
	font, err := Parse(b)
	if err != nil {
		return 0, opts.fail(err)
	}
	if opts.Debug != nil {
		font.Dump(opts.Debug)
	}

	f, err := os.Create(output)
	if err != nil {
		return 0, opts.fail(&IOError{"open output", err})
	}
	n, err := font.WriteTo(f)
	if err != nil {
		f.Close()
		return n, opts.fail(err)
	}
	if err := f.Close(); err != nil {
		return n, opts.fail(&IOError{"close output", err})
	}
	return n, nil
}

func (opts *Options) fail(err error) error {
	if opts.Debug != nil {
		fmt.Fprintf(opts.Debug, "error: %v\n", err)
	}
	return err
}

// Dump writes the parsed header and table directory to w.
func (font *Font) Dump(w io.Writer) {
	h := font.Header
	fmt.Fprintf(w, "flavor: 0x%08X (%s)\n", h.Flavor, flavorKind(h.Flavor))
	fmt.Fprintf(w, "numTables: %d\n", h.NumTables)
	fmt.Fprintf(w, "length: %d  totalSfntSize: %d  version: %d.%d\n", h.Length, h.TotalSfntSize, h.MajorVersion, h.MinorVersion)
	if h.MetaOffset != 0 {
		fmt.Fprintf(w, "metadata: offset=%d length=%d origLength=%d\n", h.MetaOffset, h.MetaLength, h.MetaOrigLength)
	}
	if h.PrivOffset != 0 {
		fmt.Fprintf(w, "private data: offset=%d length=%d\n", h.PrivOffset, h.PrivLength)
	}
	fmt.Fprintf(w, "\nTable directory:\n")
	for i, t := range font.Tables {
		fmt.Fprintf(w, "  %2d  %s  checksum=0x%08X  offset=%6d  compLength=%6d  origLength=%6d  dataLength=%6d\n", i, t.Tag, t.OrigChecksum, t.Offset, t.CompLength, t.OrigLength, len(t.Data))
	}
}

// flavorKind classifies the sfnt version tag for diagnostics. Unrecognized
// tags are passed through to the output unchanged.
func flavorKind(flavor uint32) string {
	if flavor == 0x00010000 {
		return "ttf"
	} else if uint32ToString(flavor) == "OTTO" {
		return "cff"
	}
	return "unknown"
}

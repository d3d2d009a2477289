package woff

import (
	"io"
	"math"

	"github.com/tdewolff/parse/v2"
)

const (
	sfntHeaderLength = 12
	sfntEntryLength  = 16
)

// searchParams returns the binary-search parameters of the sfnt header,
// satisfying searchRange = 2^entrySelector*16 <= numTables*16 and
// rangeShift = numTables*16 - searchRange.
func searchParams(numTables uint16) (searchRange, entrySelector, rangeShift uint16) {
	searchRange = 1
	for {
		if searchRange*2 > numTables {
			break
		}
		searchRange *= 2
		entrySelector++
	}
	searchRange *= 16
	rangeShift = numTables*16 - searchRange
	return
}

// WriteTo writes the font as an SFNT file (TTF or OTF) to w and returns the
// number of bytes written. A write failure partway through may leave a
// truncated file behind, the caller decides whether to clean up.
func (font *Font) WriteTo(w io.Writer) (int64, error) {
	var total int64
	n, err := writeHeader(w, font.Header.Flavor, uint16(len(font.Tables)))
	total += int64(n)
	if err != nil {
		return total, err
	}
	n, err = writeDirectory(w, font.Tables)
	total += int64(n)
	if err != nil {
		return total, err
	}
	n, err = writeTableData(w, font.Tables)
	total += int64(n)
	return total, err
}

// writeHeader writes the 12-byte sfnt header. The WOFF major and minor
// versions are not part of the sfnt header and are dropped.
func writeHeader(w io.Writer, flavor uint32, numTables uint16) (int, error) {
	searchRange, entrySelector, rangeShift := searchParams(numTables)

	hw := parse.NewBinaryWriter(make([]byte, 0, sfntHeaderLength))
	hw.WriteUint32(flavor)
	hw.WriteUint16(numTables)
	hw.WriteUint16(searchRange)
	hw.WriteUint16(entrySelector)
	hw.WriteUint16(rangeShift)
	return writeFull(w, "sfnt header", hw.Bytes())
}

// writeDirectory writes the table directory in source order. Checksums are
// copied from the WOFF directory; offsets start directly after the directory
// and advance by each table's padded length.
func writeDirectory(w io.Writer, tables []Table) (int, error) {
	dw := parse.NewBinaryWriter(make([]byte, 0, sfntEntryLength*len(tables)))
	offset := uint32(sfntHeaderLength + sfntEntryLength*len(tables))
	for _, t := range tables {
		length := uint32(len(t.Data))
		padding := (4 - length&3) & 3
		if math.MaxUint32-length < padding || math.MaxUint32-length-padding < offset {
			return 0, &FormatError{"table directory", "total table size overflow"}
		}
		dw.WriteString(t.Tag)
		dw.WriteUint32(t.OrigChecksum)
		dw.WriteUint32(offset)
		dw.WriteUint32(length)
		offset += length + padding
	}
	return writeFull(w, "table directory", dw.Bytes())
}

// writeTableData writes each payload zero-padded to a 4-byte boundary.
func writeTableData(w io.Writer, tables []Table) (int, error) {
	var zero [3]byte
	var total int
	for _, t := range tables {
		n, err := writeFull(w, t.Tag, t.Data)
		total += n
		if err != nil {
			return total, err
		}
		n, err = writeFull(w, t.Tag, zero[:(4-len(t.Data)&3)&3])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func writeFull(w io.Writer, stage string, b []byte) (int, error) {
	n, err := w.Write(b)
	if err != nil {
		return n, &IOError{stage, err}
	} else if n != len(b) {
		return n, &IOError{stage, io.ErrShortWrite}
	}
	return n, nil
}

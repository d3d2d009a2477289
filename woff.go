package woff

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zlib"
	"github.com/tdewolff/parse/v2"
)

// Specification:
// https://www.w3.org/TR/WOFF/

// Validation tests:
// https://github.com/w3c/woff-tests

const (
	headerLength = 44
	entryLength  = 20
)

// Header is the fixed-size WOFF file header. Only Flavor and NumTables drive
// the conversion; the other fields are carried for diagnostics. Length and
// TotalSfntSize are not validated against the actual data.
type Header struct {
	Flavor         uint32
	Length         uint32
	NumTables      uint16
	TotalSfntSize  uint32
	MajorVersion   uint16
	MinorVersion   uint16
	MetaOffset     uint32
	MetaLength     uint32
	MetaOrigLength uint32
	PrivOffset     uint32
	PrivLength     uint32
}

// Table is a single table directory entry together with its uncompressed
// payload. Data holds the bytes the writer emits; its length may differ from
// OrigLength and takes precedence over it. OrigChecksum is carried through
// into the sfnt directory unmodified, it is never recomputed.
type Table struct {
	Tag          string
	Offset       uint32
	CompLength   uint32
	OrigLength   uint32
	OrigChecksum uint32
	Data         []byte
}

// Font is a parsed WOFF container. Tables are kept in file order; the writer
// does not re-sort them into ascending tag order.
type Font struct {
	Header   Header
	Tables   []Table
	Metadata []byte // extended metadata block, not written back
	Private  []byte // private data block, not written back
}

// Is returns true if the data is likely a WOFF font.
func Is(b []byte) bool {
	return 4 <= len(b) && bytes.Equal(b[:4], []byte("wOFF"))
}

// Parse parses the WOFF font format and returns the contained header, table
// directory, and uncompressed table data. See https://www.w3.org/TR/WOFF/
func Parse(b []byte) (*Font, error) {
	if len(b) < headerLength {
		return nil, &FormatError{"header", "file too short"}
	}

	r := parse.NewBinaryReader(b)
	header, err := parseHeader(r)
	if err != nil {
		return nil, err
	}
	tables, err := parseDirectory(r, header.NumTables)
	if err != nil {
		return nil, err
	}
	if err := loadTableData(r, tables); err != nil {
		return nil, err
	}

	font := &Font{Header: header, Tables: tables}
	if err := loadExtensionBlocks(r, font); err != nil {
		return nil, err
	}
	return font, nil
}

func parseHeader(r *parse.BinaryReader) (Header, error) {
	var h Header
	signature := r.ReadString(4)
	if signature != "wOFF" {
		return h, &FormatError{"header", "bad signature"}
	}
	h.Flavor = r.ReadUint32()
	h.Length = r.ReadUint32()
	h.NumTables = r.ReadUint16()
	reserved := r.ReadUint16()
	h.TotalSfntSize = r.ReadUint32()
	h.MajorVersion = r.ReadUint16()
	h.MinorVersion = r.ReadUint16()
	h.MetaOffset = r.ReadUint32()
	h.MetaLength = r.ReadUint32()
	h.MetaOrigLength = r.ReadUint32()
	h.PrivOffset = r.ReadUint32()
	h.PrivLength = r.ReadUint32()
	if reserved != 0 {
		return h, &FormatError{"header", "reserved must be zero"}
	} else if h.NumTables == 0 {
		return h, &FormatError{"header", "numTables must not be zero"}
	}
	return h, nil
}

func parseDirectory(r *parse.BinaryReader, numTables uint16) ([]Table, error) {
	tables := make([]Table, numTables)
	for i := range tables {
		tables[i].Tag = r.ReadString(4)
		tables[i].Offset = r.ReadUint32()
		tables[i].CompLength = r.ReadUint32()
		tables[i].OrigLength = r.ReadUint32()
		tables[i].OrigChecksum = r.ReadUint32()
	}
	if r.EOF() {
		return nil, &IOError{"table directory", io.ErrUnexpectedEOF}
	}
	return tables, nil
}

// loadTableData reads each table payload in directory order. A table is
// stored uncompressed when compLength equals origLength, otherwise it is a
// zlib compressed-data stream.
func loadTableData(r *parse.BinaryReader, tables []Table) error {
	for i := range tables {
		t := &tables[i]
		b, err := readRange(r, t.Tag, t.Offset, t.CompLength)
		if err != nil {
			return err
		}
		if t.CompLength == t.OrigLength {
			t.Data = b
		} else if t.Data, err = inflate(t.Tag, b, t.OrigLength); err != nil {
			return err
		}
	}
	return nil
}

// readRange reads length bytes at offset and restores the reader position,
// so that loads can be interleaved with sequential reads.
func readRange(r *parse.BinaryReader, stage string, offset, length uint32) ([]byte, error) {
	pos := r.Pos()
	r.Seek(offset)
	b := r.ReadBytes(length)
	eof := r.EOF()
	r.Seek(pos)
	if eof {
		return nil, &IOError{stage, io.ErrUnexpectedEOF}
	}
	return b, nil
}

func inflate(tag string, b []byte, origLength uint32) ([]byte, error) {
	if MaxMemory < origLength {
		return nil, ErrExceedsMemory
	}
	zr, err := zlib.NewReader(bytes.NewReader(b))
	if err != nil {
		return nil, &DecompressionError{tag, err}
	}
	buf := bytes.NewBuffer(make([]byte, 0, origLength))
	if _, err := io.Copy(buf, zr); err != nil {
		return nil, &DecompressionError{tag, err}
	}
	// the decompressed size may differ from origLength, the actual size wins
	return buf.Bytes(), nil
}

// loadExtensionBlocks reads the extended metadata and private data blocks.
// Both are kept for inspection only, the sfnt output never contains them.
func loadExtensionBlocks(r *parse.BinaryReader, font *Font) error {
	h := font.Header
	if h.MetaOffset != 0 && h.MetaLength != 0 {
		b, err := readRange(r, "metadata", h.MetaOffset, h.MetaLength)
		if err != nil {
			return err
		}
		if h.MetaLength == h.MetaOrigLength {
			font.Metadata = b
		} else if font.Metadata, err = inflate("metadata", b, h.MetaOrigLength); err != nil {
			return err
		}
	}
	if h.PrivOffset != 0 && h.PrivLength != 0 {
		b, err := readRange(r, "private data", h.PrivOffset, h.PrivLength)
		if err != nil {
			return err
		}
		font.Private = b
	}
	return nil
}

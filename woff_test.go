package woff

import (
	"bytes"
	"errors"
	"testing"

	"github.com/klauspost/compress/zlib"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/test"
)

type testTable struct {
	tag      string
	data     []byte
	compress bool
}

func deflate(b []byte) []byte {
	buf := &bytes.Buffer{}
	zw := zlib.NewWriter(buf)
	zw.Write(b)
	zw.Close()
	return buf.Bytes()
}

func buildWOFF(flavor uint32, tables []testTable) []byte {
	payloads := make([][]byte, len(tables))
	for i, t := range tables {
		if t.compress {
			payloads[i] = deflate(t.data)
		} else {
			payloads[i] = t.data
		}
	}

	w := parse.NewBinaryWriter([]byte{})
	w.WriteString("wOFF")
	w.WriteUint32(flavor)
	w.WriteUint32(0) // length, informational only
	w.WriteUint16(uint16(len(tables)))
	w.WriteUint16(0) // reserved
	w.WriteUint32(0) // totalSfntSize
	w.WriteUint16(1) // majorVersion
	w.WriteUint16(0) // minorVersion
	w.WriteUint32(0) // metaOffset
	w.WriteUint32(0) // metaLength
	w.WriteUint32(0) // metaOrigLength
	w.WriteUint32(0) // privOffset
	w.WriteUint32(0) // privLength

	offset := uint32(headerLength + entryLength*len(tables))
	for i, t := range tables {
		w.WriteString(t.tag)
		w.WriteUint32(offset)
		w.WriteUint32(uint32(len(payloads[i])))
		w.WriteUint32(uint32(len(t.data)))
		w.WriteUint32(0xDEADBEEF + uint32(i))
		offset += uint32(len(payloads[i]))
	}
	for i := range tables {
		w.WriteBytes(payloads[i])
	}
	return w.Bytes()
}

func TestParse(t *testing.T) {
	glyf := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	cmap := bytes.Repeat([]byte{0x55, 0xAA}, 60) // compresses well
	b := buildWOFF(0x00010000, []testTable{
		{"glyf", glyf, false},
		{"cmap", cmap, true},
	})

	font, err := Parse(b)
	test.Error(t, err)
	test.T(t, font.Header.Flavor, uint32(0x00010000))
	test.T(t, font.Header.NumTables, uint16(2))
	test.T(t, len(font.Tables), 2)

	// stored table is byte-identical to the payload
	test.T(t, font.Tables[0].Tag, "glyf")
	test.T(t, font.Tables[0].CompLength, font.Tables[0].OrigLength)
	test.Bytes(t, font.Tables[0].Data, glyf)

	// compressed table decompresses to the original data
	test.T(t, font.Tables[1].Tag, "cmap")
	test.That(t, font.Tables[1].CompLength != font.Tables[1].OrigLength, "cmap must be compressed")
	test.T(t, font.Tables[1].OrigLength, uint32(len(cmap)))
	test.Bytes(t, font.Tables[1].Data, cmap)
}

func TestParseBadSignature(t *testing.T) {
	b := buildWOFF(0x00010000, []testTable{{"glyf", []byte{1, 2, 3, 4}, false}})
	copy(b, "wOF2")

	_, err := Parse(b)
	var ferr *FormatError
	test.That(t, errors.As(err, &ferr), "expected FormatError, got", err)
	test.T(t, ferr.Stage, "header")
}

func TestParseReserved(t *testing.T) {
	b := buildWOFF(0x00010000, []testTable{{"glyf", []byte{1, 2, 3, 4}, false}})
	b[15] = 1 // reserved

	_, err := Parse(b)
	var ferr *FormatError
	test.That(t, errors.As(err, &ferr), "expected FormatError, got", err)
}

func TestParseNoTables(t *testing.T) {
	b := buildWOFF(0x00010000, nil)
	_, err := Parse(b)
	var ferr *FormatError
	test.That(t, errors.As(err, &ferr), "expected FormatError, got", err)
	test.T(t, ferr.Stage, "header")
}

func TestParseTooShort(t *testing.T) {
	_, err := Parse([]byte("wOFF"))
	var ferr *FormatError
	test.That(t, errors.As(err, &ferr), "expected FormatError, got", err)
}

func TestParseTruncatedDirectory(t *testing.T) {
	b := buildWOFF(0x00010000, []testTable{{"glyf", []byte{1, 2, 3, 4}, false}})
	_, err := Parse(b[:headerLength+10])
	var ioerr *IOError
	test.That(t, errors.As(err, &ioerr), "expected IOError, got", err)
}

func TestParseTruncatedTable(t *testing.T) {
	b := buildWOFF(0x00010000, []testTable{{"glyf", []byte{1, 2, 3, 4}, false}})
	_, err := Parse(b[:len(b)-1])
	var ioerr *IOError
	test.That(t, errors.As(err, &ioerr), "expected IOError, got", err)
}

func TestParseBadDeflate(t *testing.T) {
	cmap := bytes.Repeat([]byte{0x55, 0xAA}, 60)
	b := buildWOFF(0x00010000, []testTable{{"cmap", cmap, true}})
	b[headerLength+entryLength] ^= 0xFF // corrupt the zlib header

	_, err := Parse(b)
	var derr *DecompressionError
	test.That(t, errors.As(err, &derr), "expected DecompressionError, got", err)
	test.T(t, derr.Tag, "cmap")
}

func TestParseMetadata(t *testing.T) {
	glyf := []byte{1, 2, 3, 4}
	meta := []byte(`<?xml version="1.0"?><metadata version="1.0"></metadata>`)
	priv := []byte{0xCA, 0xFE}

	w := parse.NewBinaryWriter([]byte{})
	w.WriteString("wOFF")
	w.WriteUint32(0x00010000)
	w.WriteUint32(0)
	w.WriteUint16(1)
	w.WriteUint16(0)
	w.WriteUint32(0)
	w.WriteUint16(1)
	w.WriteUint16(0)

	compMeta := deflate(meta)
	tableOffset := uint32(headerLength + entryLength)
	metaOffset := tableOffset + uint32(len(glyf))
	privOffset := metaOffset + uint32(len(compMeta))
	w.WriteUint32(metaOffset)
	w.WriteUint32(uint32(len(compMeta)))
	w.WriteUint32(uint32(len(meta)))
	w.WriteUint32(privOffset)
	w.WriteUint32(uint32(len(priv)))

	w.WriteString("glyf")
	w.WriteUint32(tableOffset)
	w.WriteUint32(uint32(len(glyf)))
	w.WriteUint32(uint32(len(glyf)))
	w.WriteUint32(0)
	w.WriteBytes(glyf)
	w.WriteBytes(compMeta)
	w.WriteBytes(priv)

	font, err := Parse(w.Bytes())
	test.Error(t, err)
	test.Bytes(t, font.Metadata, meta)
	test.Bytes(t, font.Private, priv)

	// metadata and private data do not reach the sfnt output
	buf := &bytes.Buffer{}
	n, err := font.WriteTo(buf)
	test.Error(t, err)
	test.T(t, n, int64(sfntHeaderLength+sfntEntryLength+len(glyf)))
}

func TestIs(t *testing.T) {
	test.T(t, Is([]byte("wOFF....")), true)
	test.T(t, Is([]byte("wOF2....")), false)
	test.T(t, Is([]byte("wO")), false)
}

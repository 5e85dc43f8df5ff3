package source

import (
	"bytes"
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
)

// Encoding is the byte encoding detected from a byte order mark.
type Encoding uint8

const (
	UTF8 Encoding = iota
	UTF8BOM
	UTF16LE
	UTF16BE
	UTF32LE
	UTF32BE
)

func (e Encoding) String() string {
	switch e {
	case UTF8BOM:
		return "utf-8-bom"
	case UTF16LE:
		return "utf-16le"
	case UTF16BE:
		return "utf-16be"
	case UTF32LE:
		return "utf-32le"
	case UTF32BE:
		return "utf-32be"
	default:
		return "utf-8"
	}
}

var boms = []struct {
	enc  Encoding
	mark []byte
}{
	// utf-32le must be tested before utf-16le, they share a prefix
	{UTF32LE, []byte{0xFF, 0xFE, 0x00, 0x00}},
	{UTF32BE, []byte{0x00, 0x00, 0xFE, 0xFF}},
	{UTF8BOM, []byte{0xEF, 0xBB, 0xBF}},
	{UTF16LE, []byte{0xFF, 0xFE}},
	{UTF16BE, []byte{0xFE, 0xFF}},
}

// DetectEncoding inspects the byte order mark.
func DetectEncoding(data []byte) Encoding {
	for _, b := range boms {
		if bytes.HasPrefix(data, b.mark) {
			return b.enc
		}
	}
	return UTF8
}

func codec(enc Encoding) encoding.Encoding {
	switch enc {
	case UTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	case UTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	case UTF32LE:
		return utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM)
	case UTF32BE:
		return utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM)
	}
	return nil
}

func bomFor(enc Encoding) []byte {
	for _, b := range boms {
		if b.enc == enc {
			return b.mark
		}
	}
	return nil
}

// Decode strips a byte order mark and converts the content to UTF-8.
func Decode(data []byte) (string, Encoding, error) {
	enc := DetectEncoding(data)
	body := data[len(bomFor(enc)):]
	if c := codec(enc); c != nil {
		out, err := c.NewDecoder().Bytes(body)
		if err != nil {
			return "", enc, fmt.Errorf("decode %s: %w", enc, err)
		}
		return string(out), enc, nil
	}
	// non-UTF-8 single byte content passes through byte for byte
	return string(body), enc, nil
}

// Encode converts UTF-8 text back to enc, restoring its byte order mark.
func Encode(text string, enc Encoding) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(bomFor(enc))
	if c := codec(enc); c != nil {
		out, err := c.NewEncoder().Bytes([]byte(text))
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", enc, err)
		}
		buf.Write(out)
		return buf.Bytes(), nil
	}
	buf.WriteString(text)
	return buf.Bytes(), nil
}

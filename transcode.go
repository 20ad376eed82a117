package xmltokenizer

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"

	"github.com/nilasena/xmltokenizer/internal/xmlerr"
)

// Transcode wraps r so it yields UTF-8 bytes, decoding from the named
// IANA character set first. The Tokenizer always operates on UTF-8;
// when a document's <?xml ... encoding="..."?> pseudo-attribute names
// something other than UTF-8 (or UTF-16, which UTF-8 byte scanning
// cannot tokenize directly either), the source is re-wrapped through
// Transcode before tokenization resumes.
//
// An empty or "utf-8"/"UTF-8" name returns r unchanged.
func Transcode(r io.Reader, declaredEncoding string) (io.Reader, error) {
	switch declaredEncoding {
	case "", "utf-8", "UTF-8", "UTF8", "utf8":
		return r, nil
	}
	enc, err := ianaindex.IANA.Encoding(declaredEncoding)
	if err != nil || enc == nil {
		return nil, &xmlerr.Unsupported{Reason: fmt.Sprintf("declared encoding %q", declaredEncoding)}
	}
	return enc.NewDecoder().Reader(r), nil
}

// bomReader sniffs a leading byte-order mark on the first Read: a UTF-8
// BOM is dropped, a UTF-16 LE/BE BOM switches the stream through the
// matching UTF-16 decoder so the Tokenizer only ever sees UTF-8. The
// sniff is deferred until the first Read so constructing a Tokenizer
// performs no I/O.
type bomReader struct {
	r       io.Reader
	sniffed bool
	// utf16 records that a UTF-16 BOM selected the decoder; a later
	// encoding="UTF-16" pseudo-attribute must not transcode again.
	utf16 bool
}

func (b *bomReader) Read(p []byte) (int, error) {
	if !b.sniffed {
		b.sniffed = true
		var bom [3]byte
		n, err := io.ReadFull(b.r, bom[:2])
		if err != nil {
			b.r = bytes.NewReader(bom[:n])
			return b.r.Read(p)
		}
		switch {
		case bom[0] == 0xFE && bom[1] == 0xFF:
			b.utf16 = true
			b.r = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder().Reader(b.r)
		case bom[0] == 0xFF && bom[1] == 0xFE:
			b.utf16 = true
			b.r = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder().Reader(b.r)
		case bom[0] == 0xEF && bom[1] == 0xBB:
			n, err := io.ReadFull(b.r, bom[2:])
			if err != nil {
				b.r = bytes.NewReader(bom[:2+n])
			} else if bom[2] != 0xBF {
				b.r = io.MultiReader(bytes.NewReader(bom[:]), b.r)
			}
			// A full UTF-8 BOM is simply dropped.
		default:
			b.r = io.MultiReader(bytes.NewReader(bom[:2]), b.r)
		}
	}
	return b.r.Read(p)
}

// DeclaredEncoding extracts the encoding= pseudo-attribute value from a
// Decl token's raw Data, or "" if absent. It performs no validation
// beyond locating the quoted value; callers pass the result to
// Transcode.
func DeclaredEncoding(declData []byte) string {
	const key = "encoding"
	s := declData
	i := indexOf(s, key)
	if i < 0 {
		return ""
	}
	s = s[i+len(key):]
	s = trimLeftSpace(s)
	if len(s) == 0 || s[0] != '=' {
		return ""
	}
	s = trimLeftSpace(s[1:])
	if len(s) == 0 || (s[0] != '"' && s[0] != '\'') {
		return ""
	}
	quote := s[0]
	s = s[1:]
	end := indexByte(s, quote)
	if end < 0 {
		return ""
	}
	return string(s[:end])
}

func indexOf(haystack []byte, needle string) int {
	if len(needle) == 0 || len(haystack) < len(needle) {
		return -1
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if string(haystack[i:i+len(needle)]) == needle {
			return i
		}
	}
	return -1
}

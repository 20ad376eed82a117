package xmltokenizer

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/nilasena/xmltokenizer/internal/xmlerr"
)

// Unescape expands XML character references and entity references found
// in input: the five predefined entities (&amp; &lt; &gt; &apos; &quot;),
// decimal (&#N;) and hexadecimal (&#xH;) character references, and any
// named entity the resolver recognizes. It returns input unmodified
// (sharing its storage) when no substitution was needed, matching the
// borrow-or-own discipline the Token/Borrowed contract exposes one layer
// up.
func Unescape(input []byte, resolver EntityResolver) (out []byte, borrowed bool, err error) {
	if resolver == nil {
		resolver = NoopResolver
	}
	i := indexByte(input, '&')
	if i < 0 {
		return input, true, nil
	}

	buf := make([]byte, 0, len(input))
	buf = append(buf, input[:i]...)
	for i < len(input) {
		if input[i] != '&' {
			buf = append(buf, input[i])
			i++
			continue
		}
		end := indexByte(input[i:], ';')
		if end < 0 {
			return nil, false, &xmlerr.Custom{Reason: "unterminated entity reference"}
		}
		end += i
		ref := string(input[i+1 : end])
		i = end + 1

		switch {
		case ref == "amp":
			buf = append(buf, '&')
		case ref == "lt":
			buf = append(buf, '<')
		case ref == "gt":
			buf = append(buf, '>')
		case ref == "apos":
			buf = append(buf, '\'')
		case ref == "quot":
			buf = append(buf, '"')
		case strings.HasPrefix(ref, "#x") || strings.HasPrefix(ref, "#X"):
			n, perr := strconv.ParseInt(ref[2:], 16, 32)
			if perr != nil || !validScalar(rune(n)) {
				return nil, false, &xmlerr.InvalidCharRef{Ref: ref}
			}
			buf = utf8.AppendRune(buf, rune(n))
		case strings.HasPrefix(ref, "#"):
			n, perr := strconv.ParseInt(ref[1:], 10, 32)
			if perr != nil || !validScalar(rune(n)) {
				return nil, false, &xmlerr.InvalidCharRef{Ref: ref}
			}
			buf = utf8.AppendRune(buf, rune(n))
		default:
			v, ok := resolver.Resolve(ref)
			if !ok {
				return nil, false, &xmlerr.UnknownEntity{Name: ref}
			}
			buf = append(buf, v...)
		}
	}
	return buf, false, nil
}

func validScalar(r rune) bool {
	if r < 0 || r > utf8.MaxRune {
		return false
	}
	if r >= 0xD800 && r <= 0xDFFF { // surrogate range, never a scalar value
		return false
	}
	return true
}

// Escape is the inverse of Unescape. When minimal is true, only '<', '&'
// and (when quote != 0) the attribute quote character are escaped;
// otherwise '>', '\'' and '"' are additionally escaped. Escape returns
// input unmodified (sharing its storage) when nothing needed escaping.
func Escape(input []byte, minimal bool, quote byte) (out []byte, borrowed bool) {
	needsEscape := func(b byte) bool {
		switch b {
		case '<', '&':
			return true
		case '>', '\'', '"':
			if !minimal {
				return true
			}
			return quote != 0 && b == quote
		}
		return false
	}

	n := -1
	for i := 0; i < len(input); i++ {
		if needsEscape(input[i]) {
			n = i
			break
		}
	}
	if n < 0 {
		return input, true
	}

	buf := make([]byte, 0, len(input)+16)
	buf = append(buf, input[:n]...)
	for i := n; i < len(input); i++ {
		switch b := input[i]; {
		case b == '<':
			buf = append(buf, "&lt;"...)
		case b == '&':
			buf = append(buf, "&amp;"...)
		case b == '>' && (!minimal):
			buf = append(buf, "&gt;"...)
		case b == '\'' && (!minimal || quote == '\''):
			buf = append(buf, "&apos;"...)
		case b == '"' && (!minimal || quote == '"'):
			buf = append(buf, "&quot;"...)
		default:
			buf = append(buf, b)
		}
	}
	return buf, false
}

func indexByte(b []byte, c byte) int {
	for i := range b {
		if b[i] == c {
			return i
		}
	}
	return -1
}

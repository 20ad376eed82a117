package bind

import (
	"bytes"
	"errors"
	"io"
	"reflect"

	"github.com/nilasena/xmltokenizer"
	"github.com/nilasena/xmltokenizer/internal/xmlerr"
)

// Decoder binds a stream of xmltokenizer events onto a Go value, skipping
// prolog content (Decl, DocType, Comment, ProcInst, whitespace-only Text)
// to find the document's root element.
type Decoder struct {
	tok      *xmltokenizer.Tokenizer
	resolver xmltokenizer.EntityResolver
}

// DecoderOption configures a Decoder.
type DecoderOption func(*Decoder)

// WithResolver supplies a custom xmltokenizer.EntityResolver, propagated
// onto the underlying Tokenizer.
func WithResolver(r xmltokenizer.EntityResolver) DecoderOption {
	return func(d *Decoder) { d.resolver = r }
}

// NewDecoder creates a Decoder reading from r.
func NewDecoder(r io.Reader, opts ...DecoderOption) *Decoder {
	d := &Decoder{}
	for _, opt := range opts {
		opt(d)
	}
	var tokOpts []xmltokenizer.Option
	if d.resolver != nil {
		tokOpts = append(tokOpts, xmltokenizer.WithEntityResolver(d.resolver))
	}
	d.tok = xmltokenizer.New(r, tokOpts...)
	return d
}

// Unmarshal decodes data's root element into v, which must be a non-nil
// pointer.
func Unmarshal(data []byte, v any) error {
	return NewDecoder(bytes.NewReader(data)).Decode(v)
}

// Decode finds the document's root element and binds it into v, which
// must be a non-nil pointer.
func (d *Decoder) Decode(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return &xmlerr.Custom{Reason: "bind: Decode requires a non-nil pointer"}
	}

	for {
		token, err := d.tok.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return &xmlerr.UnexpectedEOF{}
			}
			return err
		}
		switch token.Kind {
		case xmltokenizer.StartElement, xmltokenizer.EmptyElement:
			se := xmltokenizer.GetToken().Copy(token)
			err := decodeValue(d.tok, se, rv.Elem())
			xmltokenizer.PutToken(se)
			return err
		case xmltokenizer.Decl, xmltokenizer.DocTypeDecl, xmltokenizer.Comment, xmltokenizer.ProcInst:
			continue
		case xmltokenizer.CharData:
			if len(bytesTrimSpace(token.Data)) != 0 {
				return &xmlerr.ExpectedStart{Found: "non-whitespace text"}
			}
			continue
		case xmltokenizer.CDataSection:
			return &xmlerr.ExpectedStart{Found: "CDATA section"}
		case xmltokenizer.EOF:
			// The source ran out before any root element appeared.
			return &xmlerr.UnexpectedEOF{}
		default:
			return &xmlerr.ExpectedStart{Found: token.Kind.String()}
		}
	}
}

func bytesTrimSpace(b []byte) []byte {
	start := 0
	for start < len(b) && isXSSpace(b[start]) {
		start++
	}
	end := len(b)
	for end > start && isXSSpace(b[end-1]) {
		end--
	}
	return b[start:end]
}

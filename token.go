package xmltokenizer

import "sync"

var tokenPool = sync.Pool{New: func() any { return new(Token) }}

// GetToken gets a Token from the pool, don't forget to put it back.
func GetToken() *Token { return tokenPool.Get().(*Token) }

// PutToken puts a Token back to the pool.
func PutToken(t *Token) { tokenPool.Put(t) }

// Kind discriminates the semantic variant a Token represents.
type Kind uint8

const (
	// Invalid is the zero value; no well-formed Token ever carries it.
	Invalid Kind = iota
	// StartElement is an opening tag, e.g. <name attr="value">.
	StartElement
	// EndElement is a closing tag, e.g. </name>.
	EndElement
	// EmptyElement is a self-closing tag, e.g. <name attr="value"/>.
	// It is semantically a StartElement immediately followed by an
	// EndElement of the same name.
	EmptyElement
	// CharData is character data between tags. It may still contain
	// unexpanded entity references; call Unescape to decode them.
	CharData
	// CDataSection is the content of a <![CDATA[ ... ]]> block. It is
	// never escaped and must not be passed through Unescape.
	CDataSection
	// Comment is the content between <!-- and -->.
	Comment
	// ProcInst is a processing instruction body, between <? and ?>,
	// excluding the XML declaration form (see Decl).
	ProcInst
	// Decl is the XML declaration (<?xml ... ?>) at the document prolog.
	Decl
	// DocTypeDecl is the content between <!DOCTYPE and the matching >,
	// balanced over any internal [...] subset.
	DocTypeDecl
	// EOF is the terminal marker, emitted exactly once after the last
	// real token.
	EOF
)

func (k Kind) String() string {
	switch k {
	case StartElement:
		return "StartElement"
	case EndElement:
		return "EndElement"
	case EmptyElement:
		return "EmptyElement"
	case CharData:
		return "CharData"
	case CDataSection:
		return "CDataSection"
	case Comment:
		return "Comment"
	case ProcInst:
		return "ProcInst"
	case Decl:
		return "Decl"
	case DocTypeDecl:
		return "DocTypeDecl"
	case EOF:
		return "EOF"
	default:
		return "Invalid"
	}
}

// Name represents a qualified XML name, split on the first ':' into a
// Prefix and a Local part. Full is the unsplit "prefix:local" (or just
// "local" when there is no prefix).
type Name struct {
	Prefix []byte
	Local  []byte
	Full   []byte
	// URI is the namespace URI the Prefix (or, for unprefixed element
	// names, the default namespace) currently resolves to. It is filled
	// in by the Tokenizer only when namespace tracking is enabled via
	// WithNamespaceAware, and is empty otherwise.
	URI []byte
}

// Attr represents an XML attribute whose value has not yet had entity
// references expanded.
type Attr struct {
	Name     Name
	ValueRaw []byte
}

// Token is a single event emitted by the Tokenizer. Exactly one of the
// data-carrying fields below is meaningful for a given Kind:
//
//   - StartElement/EmptyElement: Name, Attrs
//   - EndElement:                Name
//   - CharData/CDataSection/Comment/ProcInst/Decl/DocTypeDecl: Data
//   - EOF: none
//
// A Token returned by Tokenizer.Token is only valid until the next call
// to Token on the same Tokenizer; Copy must be used to retain one across
// that boundary.
type Token struct {
	Kind  Kind
	Name  Name
	Attrs []Attr
	Data  []byte

	// owned is true when Data/Name were copied out of the Tokenizer's
	// buffer by Copy rather than borrowed from it. Tokens returned by
	// Tokenizer.Token are always borrowed. Borrow discipline is
	// observable through Borrowed.
	owned bool
}

// Borrowed reports whether this Token's byte slices still point into the
// Tokenizer's internal buffer. A borrowed Token must not be retained past
// the next call to Tokenizer.Token; use Copy to obtain an owned copy.
func (t *Token) Borrowed() bool { return !t.owned }

// IsEndElement reports whether t represents a closing tag.
func (t *Token) IsEndElement() bool { return t.Kind == EndElement }

// IsEndElementOf reports whether t is the EndElement closing the element
// opened by se (a StartElement or EmptyElement Token).
func (t *Token) IsEndElementOf(se *Token) bool {
	if t.Kind != EndElement {
		return false
	}
	return string(t.Name.Full) == string(se.Name.Full)
}

// Copy copies src into t, returning t, and marks t as owning its storage.
// Attrs are shallow-copied: the Attr values are duplicated but their
// Name/ValueRaw slices are not, so they should be consumed (e.g. parsed
// into a Go value) promptly after Copy.
func (t *Token) Copy(src Token) *Token {
	t.Kind = src.Kind
	t.Name.Prefix = append(t.Name.Prefix[:0], src.Name.Prefix...)
	t.Name.Local = append(t.Name.Local[:0], src.Name.Local...)
	t.Name.Full = append(t.Name.Full[:0], src.Name.Full...)
	t.Name.URI = append(t.Name.URI[:0], src.Name.URI...)
	t.Attrs = append(t.Attrs[:0], src.Attrs...)
	t.Data = append(t.Data[:0], src.Data...)
	t.owned = true
	return t
}

// AttrByName returns the value of the first attribute with the given
// local name, and whether it was found. Comparison ignores the prefix.
func (t *Token) AttrByName(local string) ([]byte, bool) {
	for i := range t.Attrs {
		if string(t.Attrs[i].Name.Local) == local {
			return t.Attrs[i].ValueRaw, true
		}
	}
	return nil, false
}

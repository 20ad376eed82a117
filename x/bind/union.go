package bind

import (
	"reflect"

	"github.com/nilasena/xmltokenizer"
	"github.com/nilasena/xmltokenizer/internal/xmlerr"
)

// UnionVisitor is implemented by destinations that decode as a tagged
// union. The discriminator selects a variant, and Variant supplies the
// destination for it. Externally tagged by default: the discriminator is
// the element's local name. A destination that also implements
// TaggedUnion is internally tagged instead: the discriminator is read
// from the attribute TagAttr names.
type UnionVisitor interface {
	// Variant returns a pointer to the destination value for the named
	// variant. Returning ok=false rejects the name. Returning a nil dest
	// accepts the name as a unit variant: the element is consumed and
	// its content ignored.
	Variant(name string) (dest any, ok bool)
}

// TaggedUnion marks a UnionVisitor as internally tagged: the
// discriminator is the value of the attribute TagAttr names, falling
// back to the element's local name when the attribute is absent.
type TaggedUnion interface {
	UnionVisitor
	TagAttr() string
}

func decodeUnion(tok *xmltokenizer.Tokenizer, se *xmltokenizer.Token, u UnionVisitor) error {
	name := string(se.Name.Local)
	if tu, ok := u.(TaggedUnion); ok {
		if v, found := se.AttrByName(tu.TagAttr()); found {
			raw, _, err := xmltokenizer.Unescape(v, tok.Resolver())
			if err != nil {
				return err
			}
			name = string(raw)
		}
	}

	dest, ok := u.Variant(name)
	if !ok {
		return &xmlerr.Custom{Reason: "unknown variant `" + name + "`"}
	}
	if dest == nil {
		return skipElement(tok, se)
	}
	rv := reflect.ValueOf(dest)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return &xmlerr.Custom{Reason: "bind: Variant must return a non-nil pointer destination"}
	}
	return decodeValue(tok, se, rv.Elem())
}

package bind

import (
	"reflect"
	"strconv"

	"github.com/nilasena/xmltokenizer"
	"github.com/nilasena/xmltokenizer/internal/xmlerr"
)

// Unmarshaler lets a destination type take over its own decoding. It is
// checked before the generic reflection-based plan, so any shape the
// field plan cannot express can still be bound by hand-writing an
// UnmarshalToken method.
type Unmarshaler interface {
	UnmarshalToken(tok *xmltokenizer.Tokenizer, se *xmltokenizer.Token) error
}

// decodeValue binds the element opened by se into v (addressable). se is
// consumed: for a StartElement, decodeValue reads tok forward through the
// matching EndElement; for an EmptyElement there is no body to read.
func decodeValue(tok *xmltokenizer.Tokenizer, se *xmltokenizer.Token, v reflect.Value) error {
	for {
		if v.CanAddr() {
			if u, ok := v.Addr().Interface().(Unmarshaler); ok {
				return u.UnmarshalToken(tok, se)
			}
			if u, ok := v.Addr().Interface().(UnionVisitor); ok {
				return decodeUnion(tok, se, u)
			}
		}
		if v.Kind() != reflect.Ptr {
			break
		}
		if v.IsNil() {
			v.Set(reflect.New(v.Type().Elem()))
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Struct:
		return decodeStruct(tok, se, v)
	case reflect.Map:
		return decodeMap(tok, se, v)
	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return &xmlerr.Unsupported{Reason: "binary data content is not supported by XML format"}
		}
		return decodeScalarBody(tok, se, v)
	default:
		return decodeScalarBody(tok, se, v)
	}
}

func decodeStruct(tok *xmltokenizer.Tokenizer, se *xmltokenizer.Token, v reflect.Value) error {
	plan := planFor(v.Type())

	for i := range se.Attrs {
		a := &se.Attrs[i]
		entry, ok := plan.attrs[string(a.Name.Local)]
		if !ok {
			continue
		}
		val, borrowed, err := xmltokenizer.Unescape(a.ValueRaw, tok.Resolver())
		if err != nil {
			return err
		}
		if err := bindText(fieldByIndex(v, entry.index), string(val), borrowed); err != nil {
			return err
		}
	}

	if se.Kind == xmltokenizer.EmptyElement {
		return nil
	}

	var text []byte
	textBorrowed := true
	valueBound := false
	for {
		token, err := tok.Token()
		if err != nil {
			return err
		}
		switch token.Kind {
		case xmltokenizer.CharData:
			// Entity expansion applies to character data only; CDATA is
			// appended verbatim below.
			data, b, err := xmltokenizer.Unescape(token.Data, tok.Resolver())
			if err != nil {
				return err
			}
			if len(text) > 0 || !b {
				textBorrowed = false
			}
			text = append(text, data...)
		case xmltokenizer.CDataSection:
			if len(text) > 0 {
				textBorrowed = false
			}
			text = append(text, token.Data...)
		case xmltokenizer.EndElement:
			if token.IsEndElementOf(se) {
				if plan.text != nil && len(text) > 0 {
					if err := bindText(fieldByIndex(v, plan.text.index), string(text), textBorrowed); err != nil {
						return err
					}
				}
				return nil
			}
			return &xmlerr.EndEventMismatch{Expected: string(se.Name.Full), Found: string(token.Name.Full)}
		case xmltokenizer.StartElement, xmltokenizer.EmptyElement:
			entry, ok := plan.children[string(token.Name.Local)]
			child := xmltokenizer.GetToken().Copy(token)
			switch {
			case ok:
				err = bindChild(tok, child, fieldByIndex(v, entry.index), entry)
			case plan.value != nil:
				field := fieldByIndex(v, plan.value.index)
				if field.Kind() == reflect.Slice && field.Type().Elem().Kind() != reflect.Uint8 {
					err = bindChild(tok, child, field, *plan.value)
				} else if !valueBound {
					valueBound = true
					err = decodeValue(tok, child, field)
				} else {
					err = skipElement(tok, child)
				}
			default:
				err = skipElement(tok, child)
			}
			xmltokenizer.PutToken(child)
			if err != nil {
				return err
			}
		}
	}
}

func bindChild(tok *xmltokenizer.Tokenizer, se *xmltokenizer.Token, field reflect.Value, entry fieldEntry) error {
	if field.Kind() == reflect.Slice && field.Type().Elem().Kind() != reflect.Uint8 {
		elem := reflect.New(field.Type().Elem()).Elem()
		if err := decodeValue(tok, se, elem); err != nil {
			return err
		}
		field.Set(reflect.Append(field, elem))
		return nil
	}
	return decodeValue(tok, se, field)
}

// bindText binds an already-unescaped text or attribute value onto field.
// Non-byte slice destinations follow the xs:list convention: the value is
// split on whitespace and each token bound as one item.
func bindText(field reflect.Value, text string, borrowed bool) error {
	for field.Kind() == reflect.Ptr {
		if field.IsNil() {
			field.Set(reflect.New(field.Type().Elem()))
		}
		field = field.Elem()
	}
	if field.Kind() == reflect.Slice {
		elem := field.Type().Elem()
		if elem.Kind() == reflect.Uint8 {
			return &xmlerr.Unsupported{Reason: "binary data content is not supported by XML format"}
		}
		if elem.Kind() == reflect.Slice && elem.Elem().Kind() == reflect.Uint8 {
			return &xmlerr.Unsupported{Reason: "byte arrays are not supported as `xs:list` items"}
		}
		items := splitXSList(text)
		field.Set(reflect.MakeSlice(field.Type(), 0, len(items)))
		for _, it := range items {
			e := reflect.New(elem).Elem()
			if err := setScalar(e, it); err != nil {
				return err
			}
			field.Set(reflect.Append(field, e))
		}
		return nil
	}
	return setScalarBorrowed(field, text, borrowed)
}

// decodeMap binds attributes, scalar-bodied child elements, and the
// element's own text (under the "$text" key) as name->value entries.
func decodeMap(tok *xmltokenizer.Tokenizer, se *xmltokenizer.Token, v reflect.Value) error {
	if v.Type().Key().Kind() != reflect.String {
		return &xmlerr.Unsupported{Reason: "map keys must be strings"}
	}
	if v.IsNil() {
		v.Set(reflect.MakeMap(v.Type()))
	}
	valType := v.Type().Elem()

	for i := range se.Attrs {
		a := &se.Attrs[i]
		raw, _, err := xmltokenizer.Unescape(a.ValueRaw, tok.Resolver())
		if err != nil {
			return err
		}
		val := reflect.New(valType).Elem()
		if err := setScalar(val, string(raw)); err != nil {
			return err
		}
		v.SetMapIndex(reflect.ValueOf(string(a.Name.Local)).Convert(v.Type().Key()), val)
	}

	if se.Kind == xmltokenizer.EmptyElement {
		return nil
	}

	var text []byte
	for {
		token, err := tok.Token()
		if err != nil {
			return err
		}
		switch token.Kind {
		case xmltokenizer.CharData:
			data, _, err := xmltokenizer.Unescape(token.Data, tok.Resolver())
			if err != nil {
				return err
			}
			text = append(text, data...)
		case xmltokenizer.CDataSection:
			text = append(text, token.Data...)
		case xmltokenizer.EndElement:
			if token.IsEndElementOf(se) {
				if len(text) > 0 {
					val := reflect.New(valType).Elem()
					if err := setScalar(val, string(text)); err != nil {
						return err
					}
					v.SetMapIndex(reflect.ValueOf("$text").Convert(v.Type().Key()), val)
				}
				return nil
			}
			return &xmlerr.EndEventMismatch{Expected: string(se.Name.Full), Found: string(token.Name.Full)}
		case xmltokenizer.StartElement, xmltokenizer.EmptyElement:
			child := xmltokenizer.GetToken().Copy(token)
			val := reflect.New(valType).Elem()
			err = decodeValue(tok, child, val)
			xmltokenizer.PutToken(child)
			if err != nil {
				return err
			}
			v.SetMapIndex(reflect.ValueOf(string(token.Name.Local)).Convert(v.Type().Key()), val)
		}
	}
}

// decodeScalarBody reads the text content of an element bound directly to
// a primitive (no struct tags involved), e.g. <count>3</count> bound to
// an int field's element type.
func decodeScalarBody(tok *xmltokenizer.Tokenizer, se *xmltokenizer.Token, v reflect.Value) error {
	if se.Kind == xmltokenizer.EmptyElement {
		return bindText(v, "", true)
	}
	var text []byte
	borrowed := true
	for {
		token, err := tok.Token()
		if err != nil {
			return err
		}
		switch token.Kind {
		case xmltokenizer.CharData:
			data, b, err := xmltokenizer.Unescape(token.Data, tok.Resolver())
			if err != nil {
				return err
			}
			if len(text) > 0 || !b {
				borrowed = false
			}
			text = append(text, data...)
		case xmltokenizer.CDataSection:
			if len(text) > 0 {
				borrowed = false
			}
			text = append(text, token.Data...)
		case xmltokenizer.EndElement:
			if token.IsEndElementOf(se) {
				return bindText(v, string(text), borrowed)
			}
			return &xmlerr.EndEventMismatch{Expected: string(se.Name.Full), Found: string(token.Name.Full)}
		case xmltokenizer.StartElement:
			return &xmlerr.Custom{Reason: "invalid type: nested element, expected a scalar value"}
		}
	}
}

// skipElement discards the subtree opened by se without binding it
// anywhere, used for unknown child elements the field plan has no entry
// for (Unit semantics: extra content is ignored). It still tokenizes the
// subtree fully, so a malformed or truncated nested tag surfaces as an
// error rather than being silently dropped.
func skipElement(tok *xmltokenizer.Tokenizer, se *xmltokenizer.Token) error {
	if se.Kind == xmltokenizer.EmptyElement {
		return nil
	}
	depth := 0
	for {
		token, err := tok.Token()
		if err != nil {
			return err
		}
		switch token.Kind {
		case xmltokenizer.StartElement:
			depth++
		case xmltokenizer.EndElement:
			if depth == 0 {
				if !token.IsEndElementOf(se) {
					return &xmlerr.EndEventMismatch{Expected: string(se.Name.Full), Found: string(token.Name.Full)}
				}
				return nil
			}
			depth--
		}
	}
}

func setScalar(v reflect.Value, s string) error {
	// Char must be matched by type, not kind: rune is an alias for int32,
	// so a kind switch alone cannot tell a character field from a numeric
	// one.
	if v.Type() == charType {
		return setChar(v, s)
	}
	switch v.Kind() {
	case reflect.String:
		v.SetString(s)
		return nil
	case reflect.Bool:
		switch s {
		case "true", "1":
			v.SetBool(true)
		case "false", "0":
			v.SetBool(false)
		case "":
			// Absent/empty value: keep the zero value (the Go analogue of
			// a declared default).
		default:
			return &xmlerr.Custom{Reason: "invalid type: boolean `" + s + "`, expected true, false, 1 or 0"}
		}
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if s == "" {
			return nil
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return &xmlerr.Custom{Reason: "invalid type: integer `" + s + "`"}
		}
		v.SetInt(n)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if s == "" {
			return nil
		}
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return &xmlerr.Custom{Reason: "invalid type: unsigned integer `" + s + "`"}
		}
		v.SetUint(n)
		return nil
	case reflect.Float32, reflect.Float64:
		if s == "" {
			return nil
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return &xmlerr.Custom{Reason: "invalid type: float `" + s + "`"}
		}
		v.SetFloat(n)
		return nil
	default:
		return &xmlerr.Unsupported{Reason: "unsupported scalar field kind " + v.Kind().String()}
	}
}

// Package bind implements reflection-based data binding of XML events onto
// Go struct values, the way encoding/json/encoding/xml bind onto struct
// tags, but driven by xmltokenizer.Tokenizer instead of buffering a DOM.
package bind

import (
	"reflect"
	"strings"
	"sync"
)

type fieldKind uint8

const (
	fieldChild fieldKind = iota
	fieldAttr
	fieldText
	fieldValue
)

// fieldEntry locates one bound Go struct field and how it maps onto the
// XML event stream: an attribute, a child element (by local name), or the
// $text/$value pseudo-field.
type fieldEntry struct {
	index []int
	kind  fieldKind
	name  string // local name, meaningless for fieldText
	// list records an explicit ",list" tag option. Binding does not
	// depend on it: any non-byte slice bound to a text or attribute
	// value follows the xs:list convention regardless, so the option is
	// purely documentary.
	list bool
}

// fieldPlan is the binding plan for one struct type, built once by
// reflection and cached in planCache.
type fieldPlan struct {
	attrs    map[string]fieldEntry
	children map[string]fieldEntry
	text     *fieldEntry
	// value is the $value pseudo-field: it binds child elements whose
	// name is not constrained (the first one for a scalar destination,
	// every one for a slice destination).
	value *fieldEntry
}

var planCache sync.Map // reflect.Type -> *fieldPlan

func planFor(t reflect.Type) *fieldPlan {
	if v, ok := planCache.Load(t); ok {
		return v.(*fieldPlan)
	}
	p := &fieldPlan{attrs: map[string]fieldEntry{}, children: map[string]fieldEntry{}}
	buildPlan(t, nil, p)
	planCache.Store(t, p)
	return p
}

func buildPlan(t reflect.Type, prefix []int, p *fieldPlan) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" && !f.Anonymous {
			continue // unexported
		}
		index := append(append([]int(nil), prefix...), i)

		tag, ok := f.Tag.Lookup("xml")
		if !ok && f.Anonymous {
			ft := f.Type
			for ft.Kind() == reflect.Ptr {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				buildPlan(ft, index, p) // flatten embedded struct fields
				continue
			}
		}
		if tag == "-" {
			continue
		}

		name, opts := splitTag(tag)
		list := hasOpt(opts, "list")

		switch {
		case name == "$text":
			entry := fieldEntry{index: index, kind: fieldText, list: list}
			p.text = &entry
		case name == "$value":
			entry := fieldEntry{index: index, kind: fieldValue, list: list}
			p.value = &entry
		case strings.HasPrefix(name, "@"):
			attrName := name[1:]
			if attrName == "" {
				attrName = strings.ToLower(f.Name)
			}
			p.attrs[attrName] = fieldEntry{index: index, kind: fieldAttr, name: attrName}
		case name != "":
			p.children[name] = fieldEntry{index: index, kind: fieldChild, name: name, list: list}
		default:
			p.children[strings.ToLower(f.Name)] = fieldEntry{index: index, kind: fieldChild, name: strings.ToLower(f.Name), list: list}
		}
	}
}

func splitTag(tag string) (name string, opts []string) {
	parts := strings.Split(tag, ",")
	if len(parts) == 0 {
		return "", nil
	}
	return parts[0], parts[1:]
}

func hasOpt(opts []string, want string) bool {
	for _, o := range opts {
		if o == want {
			return true
		}
	}
	return false
}

func fieldByIndex(v reflect.Value, index []int) reflect.Value {
	for _, i := range index {
		if v.Kind() == reflect.Ptr {
			if v.IsNil() {
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = v.Field(i)
	}
	return v
}

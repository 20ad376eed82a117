package xmltokenizer

import "strings"

// EntityResolver is an injected capability that expands custom named
// entities declared in a document's internal DTD subset. It is deliberately
// not a global table: tests and callers that need deterministic custom
// entity behavior supply their own resolver via WithEntityResolver.
type EntityResolver interface {
	// Capture is called once with the raw body of a DocTypeDecl token
	// (the content between "<!DOCTYPE " and the matching ">"), so the
	// resolver can parse any `<!ENTITY name "value">` declarations it
	// contains. Capture must be called before the first Resolve call in
	// any document that uses custom entities; a resolver that sees no
	// DocTypeDecl is never called.
	Capture(doctypeBody []byte)

	// Resolve returns the replacement text for a named entity reference
	// (without the surrounding '&' and ';'), or ok=false if the name is
	// unknown to this resolver.
	Resolve(name string) (value string, ok bool)
}

// defaultResolver resolves no custom entities; only the five predefined
// XML entities and numeric character references are understood.
type defaultResolver struct{}

func (defaultResolver) Capture([]byte)                 {}
func (defaultResolver) Resolve(string) (string, bool) { return "", false }

// NoopResolver is the default EntityResolver: it captures nothing and
// resolves nothing beyond the predefined entities and character
// references the escape codec always understands.
var NoopResolver EntityResolver = defaultResolver{}

// MapResolver is an EntityResolver backed by a fixed map, useful for
// tests and for documents whose custom entities are known ahead of time.
// Capture additionally parses `<!ENTITY name "value">` declarations out
// of the DOCTYPE body it is given, adding them to the map (without
// overwriting an entry the caller already populated).
type MapResolver map[string]string

func (m MapResolver) Resolve(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

func (m MapResolver) Capture(doctypeBody []byte) {
	s := string(doctypeBody)
	for {
		idx := strings.Index(s, "<!ENTITY")
		if idx < 0 {
			return
		}
		s = s[idx+len("<!ENTITY"):]
		s = strings.TrimLeft(s, " \t\r\n")
		sp := strings.IndexAny(s, " \t\r\n")
		if sp < 0 {
			return
		}
		name := s[:sp]
		rest := strings.TrimLeft(s[sp:], " \t\r\n")
		if len(rest) == 0 {
			return
		}
		quote := rest[0]
		if quote != '"' && quote != '\'' {
			continue
		}
		end := strings.IndexByte(rest[1:], quote)
		if end < 0 {
			return
		}
		value := rest[1 : 1+end]
		if _, exists := m[name]; !exists {
			m[name] = value
		}
		s = rest[1+end+1:]
	}
}

package xmltokenizer

import "testing"

func TestNamespaceStackReservedBindings(t *testing.T) {
	ns := newNamespaceStack()
	if uri, ok := ns.resolve("xml"); !ok || uri != xmlNamespaceURI {
		t.Fatalf("expected xml prefix bound to %q, got %q ok=%t", xmlNamespaceURI, uri, ok)
	}
	if uri, ok := ns.resolve("xmlns"); !ok || uri != xmlnsNamespaceURI {
		t.Fatalf("expected xmlns prefix bound to %q, got %q ok=%t", xmlnsNamespaceURI, uri, ok)
	}
	if _, ok := ns.resolve("unbound"); ok {
		t.Fatal("expected unbound prefix to resolve false")
	}
}

func TestNamespaceStackPushAndResolveDefault(t *testing.T) {
	ns := newNamespaceStack()
	ns.push([]Attr{{Name: Name{Full: []byte("xmlns")}, ValueRaw: []byte("urn:default")}})
	if uri, ok := ns.resolve(""); !ok || uri != "urn:default" {
		t.Fatalf("expected default namespace urn:default, got %q ok=%t", uri, ok)
	}
}

func TestNamespaceStackPushAndResolvePrefixed(t *testing.T) {
	ns := newNamespaceStack()
	ns.push([]Attr{{
		Name:     Name{Full: []byte("xmlns:gpx"), Prefix: []byte("xmlns"), Local: []byte("gpx")},
		ValueRaw: []byte("urn:gpx"),
	}})
	if uri, ok := ns.resolve("gpx"); !ok || uri != "urn:gpx" {
		t.Fatalf("expected gpx namespace urn:gpx, got %q ok=%t", uri, ok)
	}
}

func TestNamespaceStackPopRestoresOuterScope(t *testing.T) {
	ns := newNamespaceStack()
	ns.push([]Attr{{Name: Name{Full: []byte("xmlns")}, ValueRaw: []byte("urn:outer")}})
	ns.push([]Attr{{Name: Name{Full: []byte("xmlns")}, ValueRaw: []byte("urn:inner")}})

	if uri, _ := ns.resolve(""); uri != "urn:inner" {
		t.Fatalf("expected inner scope to shadow outer, got %q", uri)
	}
	ns.pop()
	if uri, _ := ns.resolve(""); uri != "urn:outer" {
		t.Fatalf("expected outer scope restored after pop, got %q", uri)
	}
}

func TestNamespaceStackDepthTracksScopes(t *testing.T) {
	ns := newNamespaceStack()
	if ns.depth() != 0 {
		t.Fatalf("expected depth 0 on a fresh stack, got %d", ns.depth())
	}
	ns.push(nil)
	ns.push(nil)
	if ns.depth() != 2 {
		t.Fatalf("expected depth 2 after two pushes, got %d", ns.depth())
	}
	ns.pop()
	if ns.depth() != 1 {
		t.Fatalf("expected depth 1 after one pop, got %d", ns.depth())
	}
}

func TestNamespaceStackPopNeverUnderflowsReservedScope(t *testing.T) {
	ns := newNamespaceStack()
	ns.pop()
	ns.pop()
	if uri, ok := ns.resolve("xml"); !ok || uri != xmlNamespaceURI {
		t.Fatal("expected reserved xml binding to survive extra pops")
	}
}

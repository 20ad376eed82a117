package xmltokenizer_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/nilasena/xmltokenizer"
	"github.com/nilasena/xmltokenizer/internal/xmlerr"
)

func TestWriterRoundTripsBasicDocument(t *testing.T) {
	var buf bytes.Buffer
	w := xmltokenizer.NewWriter(&buf)

	tokens := []xmltokenizer.Token{
		{Kind: xmltokenizer.StartElement, Name: xmltokenizer.Name{Full: []byte("root")}, Attrs: []xmltokenizer.Attr{
			{Name: xmltokenizer.Name{Full: []byte("attr")}, ValueRaw: []byte("1")},
		}},
		{Kind: xmltokenizer.StartElement, Name: xmltokenizer.Name{Full: []byte("child")}},
		{Kind: xmltokenizer.CharData, Data: []byte("text")},
		{Kind: xmltokenizer.EndElement, Name: xmltokenizer.Name{Full: []byte("child")}},
		{Kind: xmltokenizer.EmptyElement, Name: xmltokenizer.Name{Full: []byte("empty")}},
		{Kind: xmltokenizer.EndElement, Name: xmltokenizer.Name{Full: []byte("root")}},
	}
	for _, tok := range tokens {
		if err := w.WriteToken(tok); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}

	want := `<root attr="1"><child>text</child><empty/></root>`
	if got := buf.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestWriterCommentAndCData(t *testing.T) {
	var buf bytes.Buffer
	w := xmltokenizer.NewWriter(&buf)

	if err := w.WriteToken(xmltokenizer.Token{Kind: xmltokenizer.Comment, Data: []byte(" note ")}); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteToken(xmltokenizer.Token{Kind: xmltokenizer.StartElement, Name: xmltokenizer.Name{Full: []byte("a")}}); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteToken(xmltokenizer.Token{Kind: xmltokenizer.CDataSection, Data: []byte("<raw> & text")}); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteToken(xmltokenizer.Token{Kind: xmltokenizer.EndElement, Name: xmltokenizer.Name{Full: []byte("a")}}); err != nil {
		t.Fatal(err)
	}
	w.Flush()

	want := `<!--` + ` note ` + `--><a><![CDATA[<raw> & text]]></a>`
	if got := buf.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestWriterDeclAndDoctype(t *testing.T) {
	var buf bytes.Buffer
	w := xmltokenizer.NewWriter(&buf)

	if err := w.WriteToken(xmltokenizer.Token{Kind: xmltokenizer.Decl, Data: []byte(`xml version="1.0" encoding="UTF-8"`)}); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteToken(xmltokenizer.Token{Kind: xmltokenizer.DocTypeDecl, Data: []byte("root")}); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteToken(xmltokenizer.Token{Kind: xmltokenizer.EmptyElement, Name: xmltokenizer.Name{Full: []byte("root")}}); err != nil {
		t.Fatal(err)
	}
	w.Flush()

	want := `<?xml version="1.0" encoding="UTF-8"?><!DOCTYPE root><root/>`
	if got := buf.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestWriterIndentProducesPerDepthNewlines(t *testing.T) {
	var buf bytes.Buffer
	w := xmltokenizer.NewWriter(&buf, xmltokenizer.WithIndent(' ', 2))

	if err := w.WriteToken(xmltokenizer.Token{Kind: xmltokenizer.StartElement, Name: xmltokenizer.Name{Full: []byte("root")}}); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteToken(xmltokenizer.Token{Kind: xmltokenizer.EmptyElement, Name: xmltokenizer.Name{Full: []byte("child")}}); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteToken(xmltokenizer.Token{Kind: xmltokenizer.EndElement, Name: xmltokenizer.Name{Full: []byte("root")}}); err != nil {
		t.Fatal(err)
	}
	w.Flush()

	want := "<root>\n  <child/>\n</root>"
	if got := buf.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestWriterIndentSuppressedAfterCharData(t *testing.T) {
	var buf bytes.Buffer
	w := xmltokenizer.NewWriter(&buf, xmltokenizer.WithIndent(' ', 2))

	if err := w.WriteToken(xmltokenizer.Token{Kind: xmltokenizer.StartElement, Name: xmltokenizer.Name{Full: []byte("a")}}); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteToken(xmltokenizer.Token{Kind: xmltokenizer.CharData, Data: []byte("text")}); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteToken(xmltokenizer.Token{Kind: xmltokenizer.EndElement, Name: xmltokenizer.Name{Full: []byte("a")}}); err != nil {
		t.Fatal(err)
	}
	w.Flush()

	want := "<a>text</a>"
	if got := buf.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestWriteTokenContextCancellationPoisonsWriter(t *testing.T) {
	var buf bytes.Buffer
	w := xmltokenizer.NewWriter(&buf)
	ctx, cancel := context.WithCancel(context.Background())

	start := xmltokenizer.Token{Kind: xmltokenizer.StartElement}
	start.Name.Full = []byte("a")
	if err := w.WriteTokenContext(ctx, start); err != nil {
		t.Fatal(err)
	}
	cancel()
	var cancelled *xmlerr.Cancelled
	if err := w.WriteTokenContext(ctx, start); !errors.As(err, &cancelled) {
		t.Fatalf("expected Cancelled, got %v", err)
	}
	if err := w.WriteToken(start); !errors.As(err, &cancelled) {
		t.Fatalf("expected Cancelled on plain WriteToken too, got %v", err)
	}
}

func TestReadWriteRoundTrip(t *testing.T) {
	const doc = `<?xml version="1.0"?><!DOCTYPE root><root a="1"><child>text &amp; more</child><!--c--><empty/><![CDATA[raw]]></root>`

	tok := xmltokenizer.New(strings.NewReader(doc))
	var buf bytes.Buffer
	w := xmltokenizer.NewWriter(&buf)
	for {
		tk, err := tok.Token()
		if err != nil {
			t.Fatal(err)
		}
		if err := w.WriteToken(tk); err != nil {
			t.Fatal(err)
		}
		if tk.Kind == xmltokenizer.EOF {
			break
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != doc {
		t.Fatalf("round trip mismatch:\n got: %s\nwant: %s", got, doc)
	}
}

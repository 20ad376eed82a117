package bind_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nilasena/xmltokenizer"
	"github.com/nilasena/xmltokenizer/internal/xmlerr"
	"github.com/nilasena/xmltokenizer/x/bind"
)

type Point struct {
	Lat  float64 `xml:"@lat"`
	Lon  float64 `xml:"@lon"`
	Name string  `xml:"name"`
	Ele  *int    `xml:"ele"`
}

type Track struct {
	ID     string  `xml:"@id"`
	Points []Point `xml:"pt"`
}

func TestUnmarshalAttrsAndChildren(t *testing.T) {
	const doc = `<track id="t1"><pt lat="1.5" lon="2.5"><name>a</name></pt><pt lat="3.5" lon="4.5"><name>b</name><ele>120</ele></pt></track>`

	var tr Track
	if err := bind.Unmarshal([]byte(doc), &tr); err != nil {
		t.Fatal(err)
	}

	ele := 120
	want := Track{
		ID: "t1",
		Points: []Point{
			{Lat: 1.5, Lon: 2.5, Name: "a"},
			{Lat: 3.5, Lon: 4.5, Name: "b", Ele: &ele},
		},
	}
	if diff := cmp.Diff(tr, want); diff != "" {
		t.Fatalf("unexpected result (-got +want):\n%s", diff)
	}
}

type Tags struct {
	Values []string `xml:"$text,list"`
}

func TestUnmarshalXSListText(t *testing.T) {
	const doc = `<tags>  alpha  beta	gamma </tags>`
	var tags Tags
	if err := bind.Unmarshal([]byte(doc), &tags); err != nil {
		t.Fatal(err)
	}
	want := Tags{Values: []string{"alpha", "beta", "gamma"}}
	if diff := cmp.Diff(tags, want); diff != "" {
		t.Fatalf("unexpected result (-got +want):\n%s", diff)
	}
}

type Attrs struct {
	Props map[string]string `xml:"props"`
}

func TestUnmarshalMapFromAttrs(t *testing.T) {
	const doc = `<root><props a="1" b="2"/></root>`
	var a Attrs
	if err := bind.Unmarshal([]byte(doc), &a); err != nil {
		t.Fatal(err)
	}
	want := Attrs{Props: map[string]string{"a": "1", "b": "2"}}
	if diff := cmp.Diff(a, want); diff != "" {
		t.Fatalf("unexpected result (-got +want):\n%s", diff)
	}
}

type Extension struct {
	Raw string `xml:"$text"`
}

type Waypoint struct {
	Lat       float64    `xml:"@lat"`
	Extension *Extension `xml:"extension"`
	Unknown   string     `xml:"-"`
}

func TestUnmarshalUnknownChildIsSkipped(t *testing.T) {
	const doc = `<wpt lat="10"><junk><deeper/></junk><extension>keep</extension></wpt>`
	var w Waypoint
	if err := bind.Unmarshal([]byte(doc), &w); err != nil {
		t.Fatal(err)
	}
	want := Waypoint{Lat: 10, Extension: &Extension{Raw: "keep"}}
	if diff := cmp.Diff(w, want); diff != "" {
		t.Fatalf("unexpected result (-got +want):\n%s", diff)
	}
}

type Author struct {
	Name string `xml:"name"`
}

type Metadata struct {
	Author *Author `xml:"author"`
}

type GPXLike struct {
	Metadata Metadata `xml:"metadata"`
}

func TestUnmarshalNestedPointerStruct(t *testing.T) {
	const doc = `<gpx><metadata><author><name>jdoe</name></author></metadata></gpx>`
	var g GPXLike
	if err := bind.Unmarshal([]byte(doc), &g); err != nil {
		t.Fatal(err)
	}
	if g.Metadata.Author == nil || g.Metadata.Author.Name != "jdoe" {
		t.Fatalf("unexpected result: %+v", g.Metadata)
	}
}

type Inner struct {
	Value int `xml:"@v"`
}

type Embedder struct {
	Inner
	Extra string `xml:"@extra"`
}

func TestUnmarshalEmbeddedStructIsFlattened(t *testing.T) {
	const doc = `<e v="7" extra="x"/>`
	var e Embedder
	if err := bind.Unmarshal([]byte(doc), &e); err != nil {
		t.Fatal(err)
	}
	if e.Value != 7 || e.Extra != "x" {
		t.Fatalf("unexpected result: %+v", e)
	}
}

func TestUnmarshalEmptyDocumentIsUnexpectedEOF(t *testing.T) {
	for _, doc := range []string{"", "   ", "<!-- only a comment -->"} {
		var tr Track
		err := bind.Unmarshal([]byte(doc), &tr)
		var eof *xmlerr.UnexpectedEOF
		if !errors.As(err, &eof) {
			t.Fatalf("doc %q: expected UnexpectedEOF, got %v", doc, err)
		}
	}
}

func TestUnmarshalTextBeforeRootIsExpectedStart(t *testing.T) {
	var tr Track
	err := bind.Unmarshal([]byte("junk<track id=\"t\"/>"), &tr)
	var es *xmlerr.ExpectedStart
	if !errors.As(err, &es) {
		t.Fatalf("expected ExpectedStart, got %v", err)
	}
}

type ListAttr struct {
	List []int `xml:"@list"`
}

func TestUnmarshalXSListAttribute(t *testing.T) {
	const doc = `<root list="1 -2  3"/>`
	var l ListAttr
	if err := bind.Unmarshal([]byte(doc), &l); err != nil {
		t.Fatal(err)
	}
	want := ListAttr{List: []int{1, -2, 3}}
	if diff := cmp.Diff(l, want); diff != "" {
		t.Fatalf("unexpected result (-got +want):\n%s", diff)
	}
}

type TextRecord struct {
	Text string `xml:"$text"`
}

func TestUnmarshalTextExpandsEntities(t *testing.T) {
	const doc = `<root>a &lt; b &amp; c</root>`
	var r TextRecord
	if err := bind.Unmarshal([]byte(doc), &r); err != nil {
		t.Fatal(err)
	}
	if r.Text != "a < b & c" {
		t.Fatalf("unexpected text: %q", r.Text)
	}
}

func TestUnmarshalCDataIsNeverUnescaped(t *testing.T) {
	const doc = `<root><![CDATA[a &lt; b]]></root>`
	var r TextRecord
	if err := bind.Unmarshal([]byte(doc), &r); err != nil {
		t.Fatal(err)
	}
	if r.Text != "a &lt; b" {
		t.Fatalf("unexpected text: %q", r.Text)
	}
}

type BorrowedRecord struct {
	Text bind.BorrowedString `xml:"$text"`
}

func TestUnmarshalBorrowedStringFailsOnEntityExpansion(t *testing.T) {
	var r BorrowedRecord
	if err := bind.Unmarshal([]byte(`<root>plain</root>`), &r); err != nil {
		t.Fatal(err)
	}
	if r.Text != "plain" {
		t.Fatalf("unexpected text: %q", r.Text)
	}

	err := bind.Unmarshal([]byte(`<root>with escape sequence: &lt;</root>`), &r)
	if err == nil {
		t.Fatal("expected a borrow failure")
	}
	const want = `invalid type: string "with escape sequence: <", expected a borrowed string`
	if err.Error() != want {
		t.Fatalf("unexpected error:\n got: %s\nwant: %s", err, want)
	}
}

type AnyChild struct {
	Kind  string `xml:"@kind"`
	First Point  `xml:"$value"`
}

func TestUnmarshalValueBindsFirstChildRegardlessOfName(t *testing.T) {
	const doc = `<holder kind="pt"><whatever lat="1.5" lon="2.5"><name>a</name></whatever><second lat="9" lon="9"/></holder>`
	var h AnyChild
	if err := bind.Unmarshal([]byte(doc), &h); err != nil {
		t.Fatal(err)
	}
	if h.Kind != "pt" || h.First.Lat != 1.5 || h.First.Name != "a" {
		t.Fatalf("unexpected result: %+v", h)
	}
}

type BinaryRecord struct {
	Data []byte `xml:"data"`
}

func TestUnmarshalByteSliceIsUnsupported(t *testing.T) {
	var b BinaryRecord
	err := bind.Unmarshal([]byte(`<root><data>abc</data></root>`), &b)
	var unsup *xmlerr.Unsupported
	if !errors.As(err, &unsup) {
		t.Fatalf("expected Unsupported, got %v", err)
	}
}

type FloatString struct {
	Float  float64 `xml:"float"`
	String string  `xml:"string"`
}

func TestUnmarshalChildElementScalars(t *testing.T) {
	const doc = `<root><float>42</float><string>answer</string></root>`
	var fs FloatString
	if err := bind.Unmarshal([]byte(doc), &fs); err != nil {
		t.Fatal(err)
	}
	want := FloatString{Float: 42.0, String: "answer"}
	if diff := cmp.Diff(fs, want); diff != "" {
		t.Fatalf("unexpected result (-got +want):\n%s", diff)
	}
}

type FloatStringAttrs struct {
	Float  float64 `xml:"@float"`
	String string  `xml:"@string"`
}

func TestUnmarshalAttributeScalars(t *testing.T) {
	const doc = `<root float="42" string="answer"/>`
	var fs FloatStringAttrs
	if err := bind.Unmarshal([]byte(doc), &fs); err != nil {
		t.Fatal(err)
	}
	want := FloatStringAttrs{Float: 42.0, String: "answer"}
	if diff := cmp.Diff(fs, want); diff != "" {
		t.Fatalf("unexpected result (-got +want):\n%s", diff)
	}
}

type Flags struct {
	A bool `xml:"@a"`
	B bool `xml:"@b"`
}

func TestUnmarshalBoolAcceptsNumericForms(t *testing.T) {
	const doc = `<root a="1" b="false"/>`
	var f Flags
	if err := bind.Unmarshal([]byte(doc), &f); err != nil {
		t.Fatal(err)
	}
	if !f.A || f.B {
		t.Fatalf("unexpected result: %+v", f)
	}
}

func TestUnmarshalMismatchedEndTagSurfaces(t *testing.T) {
	var r TextRecord
	err := bind.Unmarshal([]byte(`<root></mismatched>`), &r)
	var mismatch *xmlerr.EndEventMismatch
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected EndEventMismatch, got %v", err)
	}
	if mismatch.Expected != "root" || mismatch.Found != "mismatched" {
		t.Fatalf("unexpected mismatch: %+v", mismatch)
	}
}

func TestUnmarshalCustomEntityViaResolver(t *testing.T) {
	const doc = `<root>&company;</root>`
	var r TextRecord
	d := bind.NewDecoder(strings.NewReader(doc),
		bind.WithResolver(xmltokenizer.MapResolver{"company": "ACME"}))
	if err := d.Decode(&r); err != nil {
		t.Fatal(err)
	}
	if r.Text != "ACME" {
		t.Fatalf("unexpected text: %q", r.Text)
	}
}

type Numbers struct {
	Small int32 `xml:"@small"`
	Big   int64 `xml:"@big"`
}

func TestUnmarshalInt32ParsesDigitsAsInteger(t *testing.T) {
	const doc = `<root small="5" big="9000000000"/>`
	var n Numbers
	if err := bind.Unmarshal([]byte(doc), &n); err != nil {
		t.Fatal(err)
	}
	if n.Small != 5 {
		t.Fatalf("expected small=5, got %d", n.Small)
	}
	if n.Big != 9000000000 {
		t.Fatalf("expected big=9000000000, got %d", n.Big)
	}
}

type CharRecord struct {
	Sep   bind.Char `xml:"@sep"`
	Glyph bind.Char `xml:"glyph"`
}

func TestUnmarshalCharRequiresExactlyOneScalar(t *testing.T) {
	const doc = `<root sep=";"><glyph>é</glyph></root>`
	var c CharRecord
	if err := bind.Unmarshal([]byte(doc), &c); err != nil {
		t.Fatal(err)
	}
	if c.Sep != ';' {
		t.Fatalf("expected sep=';', got %q", rune(c.Sep))
	}
	if c.Glyph != 'é' {
		t.Fatalf("expected glyph='é', got %q", rune(c.Glyph))
	}

	err := bind.Unmarshal([]byte(`<root sep="ab"/>`), &c)
	if err == nil {
		t.Fatal("expected an error for a multi-character char value")
	}
}

func TestUnmarshalCharDigitIsTheCharacterNotTheNumber(t *testing.T) {
	type rec struct {
		C bind.Char `xml:"@c"`
	}
	var r rec
	if err := bind.Unmarshal([]byte(`<root c="5"/>`), &r); err != nil {
		t.Fatal(err)
	}
	if r.C != '5' {
		t.Fatalf("expected '5' (code point 53), got %d", r.C)
	}
}

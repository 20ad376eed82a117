package xmltokenizer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/nilasena/xmltokenizer/internal/xmlerr"
)

type errorString string

func (e errorString) Error() string { return string(e) }

const errAutoGrowBufferExceedMaxLimit = errorString("xmltokenizer: auto grow buffer exceed max limit")

const (
	defaultReadBufferSize      = 4 << 10
	autoGrowBufferMaxLimitSize = 1000 << 10
	defaultAttrsBufferSize     = 16
)

type options struct {
	readBufferSize             int
	autoGrowBufferMaxLimitSize int
	attrsBufferSize            int

	expandEmptyElements bool
	trimTextStart       bool
	trimTextEnd         bool
	checkEndNames       bool
	checkComments       bool
	checkAttrs          bool
	namespaceAware      bool
	resolver            EntityResolver
}

func defaultOptions() options {
	return options{
		readBufferSize:             defaultReadBufferSize,
		autoGrowBufferMaxLimitSize: autoGrowBufferMaxLimitSize,
		attrsBufferSize:            defaultAttrsBufferSize,
		checkEndNames:              true,
		resolver:                   NoopResolver,
	}
}

// Option configures a Tokenizer.
type Option func(o *options)

// WithReadBufferSize directs the Tokenizer to use this buffer size when
// reading from the io.Reader. Default: 4096.
func WithReadBufferSize(size int) Option {
	if size <= 0 {
		size = defaultReadBufferSize
	}
	return func(o *options) { o.readBufferSize = size }
}

// WithAutoGrowBufferMaxLimitSize directs the Tokenizer to not grow its
// internal buffer past this limit, regardless of how large a single
// token's bytes turn out to be. Default: 1 MB.
func WithAutoGrowBufferMaxLimitSize(size int) Option {
	if size <= 0 {
		size = autoGrowBufferMaxLimitSize
	}
	return func(o *options) { o.autoGrowBufferMaxLimitSize = size }
}

// WithAttrBufferSize directs the Tokenizer to use this Attrs slice
// capacity as its initial size. Default: 16.
func WithAttrBufferSize(size int) Option {
	if size <= 0 {
		size = defaultAttrsBufferSize
	}
	return func(o *options) { o.attrsBufferSize = size }
}

// WithExpandEmptyElements directs the Tokenizer to emit a StartElement
// immediately followed by an EndElement instead of a single
// EmptyElement for self-closing tags. Default: off.
func WithExpandEmptyElements() Option {
	return func(o *options) { o.expandEmptyElements = true }
}

// WithTrimTextStart strips leading whitespace from CharData tokens.
func WithTrimTextStart() Option { return func(o *options) { o.trimTextStart = true } }

// WithTrimTextEnd strips trailing whitespace from CharData tokens.
func WithTrimTextEnd() Option { return func(o *options) { o.trimTextEnd = true } }

// WithoutEndNameCheck disables the default requirement that an end
// tag's name byte-equal the top of the open-element stack.
func WithoutEndNameCheck() Option { return func(o *options) { o.checkEndNames = false } }

// WithCommentChecks rejects "--" occurring inside a comment body, ahead
// of its terminating "-->" (off by default, per the XML recommendation
// being informative rather than enforced here).
func WithCommentChecks() Option { return func(o *options) { o.checkComments = true } }

// WithAttrChecks rejects duplicate attribute names within a single tag
// (off by default; scanning is cheaper without the quadratic name
// comparison, and most producers never emit duplicates).
func WithAttrChecks() Option { return func(o *options) { o.checkAttrs = true } }

// WithNamespaceAware enables namespace scope tracking: Name.URI is
// populated on StartElement/EmptyElement/EndElement/Attr names, and the
// scope stack is pushed/popped in lockstep with the open-element stack.
func WithNamespaceAware() Option { return func(o *options) { o.namespaceAware = true } }

// WithEntityResolver supplies a custom EntityResolver, used both to
// capture <!ENTITY> declarations out of a DocTypeDecl token and to
// resolve named entity references during Unescape.
func WithEntityResolver(r EntityResolver) Option {
	return func(o *options) {
		if r == nil {
			r = NoopResolver
		}
		o.resolver = r
	}
}

// Tokenizer is a streaming XML tokenizer: a single growable buffer is
// filled from the underlying io.Reader as needed, and each call to Token
// scans forward from the current cursor to the next complete token,
// never requiring more than that token's own bytes to be buffered at
// once (beyond whatever read granularity the underlying Reader imposes).
type Tokenizer struct {
	r       io.Reader
	n       int64
	options options
	buf     []byte
	cur     int
	err     error

	open       []string
	ns         *namespaceStack
	emittedAny bool
	doneEOF    bool
	cancelled  bool
	pendingEnd []byte
	// encoding is non-empty once a declared encoding transcoder wraps
	// the source; read errors from the decoder then surface as
	// NonDecodable rather than raw transform failures.
	encoding string
}

// New creates a new Tokenizer reading from r.
func New(r io.Reader, opts ...Option) *Tokenizer {
	t := new(Tokenizer)
	t.Reset(r, opts...)
	return t
}

// Reset reuses storage to tokenize a new reader, avoiding reallocation
// across documents.
func (t *Tokenizer) Reset(r io.Reader, opts ...Option) {
	t.r, t.err = &bomReader{r: r}, nil
	t.n, t.cur = 0, 0
	t.emittedAny, t.doneEOF, t.cancelled = false, false, false
	t.open = t.open[:0]
	t.pendingEnd = t.pendingEnd[:0]
	t.ns = nil
	t.encoding = ""

	t.options = defaultOptions()
	for _, opt := range opts {
		opt(&t.options)
	}
	if t.options.namespaceAware {
		t.ns = newNamespaceStack()
	}

	if t.options.readBufferSize > t.options.autoGrowBufferMaxLimitSize {
		t.options.autoGrowBufferMaxLimitSize = t.options.readBufferSize
	}

	switch size := t.options.readBufferSize; {
	case cap(t.buf) >= size+defaultReadBufferSize:
		t.buf = t.buf[:size:cap(t.buf)]
	default:
		t.buf = make([]byte, size, size+defaultReadBufferSize)
	}
	t.buf = t.buf[:0]
}

// Offset returns the number of bytes consumed from the underlying
// Reader so far, usable as a stable position for diagnostics.
func (t *Tokenizer) Offset() int64 { return t.n - int64(len(t.buf)-t.cur) }

// Resolver returns the EntityResolver this Tokenizer was configured
// with (NoopResolver by default).
func (t *Tokenizer) Resolver() EntityResolver { return t.options.resolver }

// Unescape expands entity references within a CharData token's raw
// bytes using this Tokenizer's configured EntityResolver. It is a thin
// wrapper over the package-level Unescape function; CDataSection
// content must never be passed here (CDATA is never escaped, per the
// XML specification).
func (t *Tokenizer) Unescape(tok *Token) (s string, borrowed bool, err error) {
	out, borrowed, err := Unescape(tok.Data, t.options.resolver)
	if err != nil {
		return "", false, err
	}
	return string(out), borrowed, nil
}

// byteAt returns the byte at relative offset rel from the current
// cursor, growing the buffer as needed. ok is false (with t.err set)
// once the underlying Reader is exhausted before that offset becomes
// available.
func (t *Tokenizer) byteAt(rel int) (b byte, ok bool) {
	for t.cur+rel >= len(t.buf) {
		if err := t.grow(); err != nil {
			t.err = err
			return 0, false
		}
	}
	return t.buf[t.cur+rel], true
}

// grow compacts the buffer (discarding already-consumed bytes before
// the cursor) and reads more bytes from the underlying Reader,
// reallocating only when the existing capacity is insufficient and the
// configured max limit allows it.
func (t *Tokenizer) grow() error {
	if t.cur > 0 {
		n := copy(t.buf, t.buf[t.cur:])
		t.buf = t.buf[:n:cap(t.buf)]
		t.cur = 0
	}

	growSize := len(t.buf) + t.options.readBufferSize
	start, end := len(t.buf), growSize
	switch {
	case growSize <= cap(t.buf):
		t.buf = t.buf[:growSize:cap(t.buf)]
	default:
		if growSize > t.options.autoGrowBufferMaxLimitSize {
			return fmt.Errorf("could not grow buffer to %d, max limit is set to %d: %w",
				growSize, t.options.autoGrowBufferMaxLimitSize, errAutoGrowBufferExceedMaxLimit)
		}
		buf := make([]byte, growSize)
		n := copy(buf, t.buf)
		t.buf = buf
		start, end = n, cap(t.buf)
	}

	n, err := io.ReadAtLeast(t.r, t.buf[start:end], 1)
	t.buf = t.buf[:start+n:cap(t.buf)]
	t.n += int64(n)
	if err != nil && t.encoding != "" && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return &xmlerr.NonDecodable{Encoding: t.encoding}
	}
	return err
}

// Token returns the next token in the stream. The returned Token
// borrows from the Tokenizer's internal buffer (see Token.Borrowed) and
// is only valid until the next call to Token; use Token.Copy to retain
// one across that boundary.
//
// After the terminal EOF token has been returned, subsequent calls
// return io.EOF.
func (t *Tokenizer) Token() (Token, error) {
	if t.cancelled {
		return Token{}, &xmlerr.Cancelled{}
	}
	if t.doneEOF {
		return Token{}, io.EOF
	}
	if t.err != nil {
		return Token{}, t.err
	}

	if len(t.pendingEnd) > 0 {
		name := splitName(t.pendingEnd)
		tok := Token{Kind: EndElement, Name: name}
		if t.ns != nil {
			if uri, found := t.ns.resolve(string(name.Prefix)); found {
				tok.Name.URI = []byte(uri)
			}
			t.ns.pop()
		}
		if len(t.open) > 0 {
			t.open = t.open[:len(t.open)-1]
		}
		t.pendingEnd = t.pendingEnd[:0]
		t.emittedAny = true
		return tok, nil
	}

	_, ok := t.byteAt(0)
	if !ok {
		if errors.Is(t.err, io.EOF) {
			return t.finish()
		}
		return Token{}, t.err
	}

	b, _ := t.byteAt(0)
	var tok Token
	var err error
	if b == '<' {
		tok, err = t.scanMarkup()
	} else {
		tok, err = t.scanCharData()
	}
	if err != nil {
		var mismatch *xmlerr.EndEventMismatch
		if !errors.As(err, &mismatch) {
			t.err = err
		}
		return tok, err
	}
	if tok.Kind == Invalid {
		// Empty CharData was skipped; recurse for the next real token.
		return t.Token()
	}
	if tok.Kind == Decl {
		if err := t.applyDeclaredEncoding(tok.Data); err != nil {
			t.err = err
			return tok, err
		}
	}
	t.emittedAny = true
	return tok, nil
}

// TokenContext is Token with a cancellation point: the context is
// consulted before the Tokenizer advances. Once cancellation is
// observed the Tokenizer becomes unusable, and every further call
// (through either entry point) returns Cancelled; the underlying
// Reader is left at an undefined byte offset.
func (t *Tokenizer) TokenContext(ctx context.Context) (Token, error) {
	if t.cancelled {
		return Token{}, &xmlerr.Cancelled{}
	}
	if err := ctx.Err(); err != nil {
		t.cancelled = true
		return Token{}, &xmlerr.Cancelled{}
	}
	return t.Token()
}

// applyDeclaredEncoding re-wraps the Tokenizer's underlying Reader through
// Transcode when the Decl's encoding= pseudo-attribute names anything other
// than UTF-8, so that bytes are transcoded to UTF-8 before any scalar
// value reaches the caller. Bytes already read into t.buf
// past the cursor were read in the declared (not yet transcoded) encoding,
// so they are replayed ahead of the rest of the underlying Reader through
// the same decoder rather than scanned as-is.
func (t *Tokenizer) applyDeclaredEncoding(declData []byte) error {
	enc := DeclaredEncoding(declData)
	switch enc {
	case "", "utf-8", "UTF-8", "UTF8", "utf8":
		return nil
	}
	if br, ok := t.r.(*bomReader); ok && br.utf16 {
		// A UTF-16 BOM already selected the decoder; the declared
		// encoding is advisory and must not re-transcode the stream.
		return nil
	}
	rest := append([]byte(nil), t.buf[t.cur:]...)
	r, err := Transcode(io.MultiReader(bytes.NewReader(rest), t.r), enc)
	if err != nil {
		return err
	}
	t.r = r
	t.encoding = enc
	t.buf = t.buf[:0]
	t.cur = 0
	return nil
}

func (t *Tokenizer) finish() (Token, error) {
	if len(t.open) > 0 {
		open := append([]string(nil), t.open...)
		err := &xmlerr.UnexpectedEOF{Open: open}
		t.err = err
		return Token{}, err
	}
	t.doneEOF = true
	return Token{Kind: EOF}, nil
}

// scanCharData scans text up to (not including) the next '<', applying
// the trim policy and skipping entirely-empty results. Text that runs
// into end of input is still reported; the following call then reaches
// finish, which decides between the terminal EOF token and
// UnexpectedEOF based on the open-element stack.
func (t *Tokenizer) scanCharData() (Token, error) {
	rel := 0
	for {
		b, ok := t.byteAt(rel)
		if !ok {
			if errors.Is(t.err, io.EOF) {
				t.err = nil
				break
			}
			return Token{}, t.err
		}
		if b == '<' {
			break
		}
		rel++
	}

	data := t.buf[t.cur : t.cur+rel : t.cur+rel]
	t.cur += rel

	if t.options.trimTextStart {
		data = trimLeftSpace(data)
	}
	if t.options.trimTextEnd {
		data = trimRightSpace(data)
	}
	if len(data) == 0 {
		return Token{Kind: Invalid}, nil
	}
	return Token{Kind: CharData, Data: data}, nil
}

// scanMarkup dispatches on the byte following '<'.
func (t *Tokenizer) scanMarkup() (Token, error) {
	b1, ok := t.byteAt(1)
	if !ok {
		return Token{}, &xmlerr.UnexpectedEOF{Open: append([]string(nil), t.open...)}
	}
	switch b1 {
	case '/':
		return t.scanEndElement()
	case '!':
		return t.scanBang()
	case '?':
		return t.scanQuery()
	default:
		return t.scanStartOrEmpty()
	}
}

func (t *Tokenizer) scanEndElement() (Token, error) {
	rel := 2
	for {
		b, ok := t.byteAt(rel)
		if !ok {
			return Token{}, &xmlerr.UnexpectedEOF{Open: append([]string(nil), t.open...)}
		}
		if b == '>' {
			break
		}
		rel++
	}
	raw := trim(t.buf[t.cur+2 : t.cur+rel : t.cur+rel])
	name := splitName(raw)
	t.cur += rel + 1

	tok := Token{Kind: EndElement, Name: name}

	if t.ns != nil {
		if uri, found := t.ns.resolve(string(name.Prefix)); found {
			tok.Name.URI = []byte(uri)
		}
		t.ns.pop()
	}

	if len(t.open) == 0 {
		err := &xmlerr.EndEventMismatch{Expected: "", Found: string(name.Full)}
		return tok, err
	}
	top := t.open[len(t.open)-1]
	t.open = t.open[:len(t.open)-1]
	if t.options.checkEndNames && top != string(name.Full) {
		return tok, &xmlerr.EndEventMismatch{Expected: top, Found: string(name.Full)}
	}
	return tok, nil
}

func (t *Tokenizer) scanStartOrEmpty() (Token, error) {
	rel := 1
	nameStart := rel
	for {
		b, ok := t.byteAt(rel)
		if !ok {
			return Token{}, &xmlerr.UnexpectedEOF{Open: append([]string(nil), t.open...)}
		}
		if b == ' ' || b == '\t' || b == '\r' || b == '\n' || b == '/' || b == '>' {
			break
		}
		rel++
	}
	raw := t.buf[t.cur+nameStart : t.cur+rel : t.cur+rel]
	name := splitName(raw)

	var attrs []Attr
	selfClosing := false

scan:
	for {
		b, ok := t.byteAt(rel)
		if !ok {
			return Token{}, &xmlerr.UnexpectedEOF{Open: append([]string(nil), t.open...)}
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			rel++
		case '/':
			selfClosing = true
			rel++
		case '>':
			rel++
			break scan
		default:
			attr, newRel, err := t.scanAttr(rel)
			if err != nil {
				return Token{}, err
			}
			if attrs == nil {
				attrs = make([]Attr, 0, t.options.attrsBufferSize)
			}
			if t.options.checkAttrs {
				for i := range attrs {
					if string(attrs[i].Name.Full) == string(attr.Name.Full) {
						return Token{}, &xmlerr.SyntaxError{Kind: xmlerr.KindDuplicateAttr, Offset: t.Offset() + int64(rel)}
					}
				}
			}
			attrs = append(attrs, attr)
			rel = newRel
		}
	}

	t.cur += rel

	tok := Token{Name: name, Attrs: attrs}
	expand := selfClosing && t.options.expandEmptyElements
	if selfClosing && !expand {
		tok.Kind = EmptyElement
	} else {
		tok.Kind = StartElement
	}

	if t.ns != nil {
		t.ns.push(attrs)
		if uri, found := t.ns.resolve(string(name.Prefix)); found {
			tok.Name.URI = []byte(uri)
		}
		for i := range tok.Attrs {
			if p := string(tok.Attrs[i].Name.Prefix); p != "" {
				if uri, found := t.ns.resolve(p); found {
					tok.Attrs[i].Name.URI = []byte(uri)
				}
			}
		}
		if selfClosing && !expand {
			t.ns.pop()
		}
	}

	switch {
	case expand:
		// expand_empty_elements: report this as a StartElement now and
		// queue a synthetic EndElement for the very next Token call,
		// since one Tokenizer.Token call must produce exactly one Token.
		t.open = append(t.open, string(name.Full))
		t.pendingEnd = append(t.pendingEnd[:0], name.Full...)
	case !selfClosing:
		t.open = append(t.open, string(name.Full))
	}

	return tok, nil
}

// scanAttr parses one name="value" (or name='value') pair starting at
// relative offset rel (which must point at the first byte of the name),
// returning the parsed Attr and the relative offset just past the
// closing quote.
func (t *Tokenizer) scanAttr(rel int) (Attr, int, error) {
	nameStart := rel
	for {
		b, ok := t.byteAt(rel)
		if !ok {
			return Attr{}, 0, &xmlerr.UnexpectedEOF{Open: append([]string(nil), t.open...)}
		}
		if b == '=' || b == ' ' || b == '\t' || b == '\r' || b == '\n' {
			break
		}
		rel++
	}
	raw := t.buf[t.cur+nameStart : t.cur+rel : t.cur+rel]
	name := splitName(raw)

	for {
		b, ok := t.byteAt(rel)
		if !ok {
			return Attr{}, 0, &xmlerr.UnexpectedEOF{Open: append([]string(nil), t.open...)}
		}
		if b == '=' {
			rel++
			break
		}
		if b == ' ' || b == '\t' || b == '\r' || b == '\n' {
			rel++
			continue
		}
		return Attr{}, 0, &xmlerr.SyntaxError{Kind: xmlerr.KindUnquotedAttrValue, Offset: t.Offset() + int64(rel)}
	}
	for {
		b, ok := t.byteAt(rel)
		if !ok {
			return Attr{}, 0, &xmlerr.UnexpectedEOF{Open: append([]string(nil), t.open...)}
		}
		if b == ' ' || b == '\t' || b == '\r' || b == '\n' {
			rel++
			continue
		}
		break
	}
	quote, ok := t.byteAt(rel)
	if !ok {
		return Attr{}, 0, &xmlerr.UnexpectedEOF{Open: append([]string(nil), t.open...)}
	}
	if quote != '"' && quote != '\'' {
		return Attr{}, 0, &xmlerr.SyntaxError{Kind: xmlerr.KindUnquotedAttrValue, Offset: t.Offset() + int64(rel)}
	}
	rel++
	valStart := rel
	for {
		b, ok := t.byteAt(rel)
		if !ok {
			return Attr{}, 0, &xmlerr.UnexpectedEOF{Open: append([]string(nil), t.open...)}
		}
		if b == quote {
			break
		}
		rel++
	}
	value := t.buf[t.cur+valStart : t.cur+rel : t.cur+rel]
	rel++ // past closing quote

	return Attr{Name: name, ValueRaw: value}, rel, nil
}

// scanBang dispatches "<!--" (comment), "<![CDATA[" (cdata) and
// "<!DOCTYPE" (doctype).
func (t *Tokenizer) scanBang() (Token, error) {
	if t.hasPrefix(0, "<!--") {
		return t.scanComment()
	}
	if t.hasPrefix(0, "<![CDATA[") {
		return t.scanCData()
	}
	if t.hasPrefix(0, "<!DOCTYPE") {
		return t.scanDoctype()
	}
	return Token{}, &xmlerr.SyntaxError{Kind: xmlerr.KindUnterminatedTag, Offset: t.Offset()}
}

// hasPrefix reports whether the bytes starting at relative offset rel
// match prefix, growing the buffer as needed to decide.
func (t *Tokenizer) hasPrefix(rel int, prefix string) bool {
	for i := 0; i < len(prefix); i++ {
		b, ok := t.byteAt(rel + i)
		if !ok || b != prefix[i] {
			return false
		}
	}
	return true
}

func (t *Tokenizer) scanComment() (Token, error) {
	const open = "<!--"
	rel := len(open)
	start := rel
	for {
		if t.hasPrefix(rel, "-->") {
			break
		}
		if t.options.checkComments && t.hasPrefix(rel, "--") {
			return Token{}, &xmlerr.SyntaxError{Kind: xmlerr.KindCommentHyphenHyphen, Offset: t.Offset() + int64(rel)}
		}
		if _, ok := t.byteAt(rel); !ok {
			return Token{}, &xmlerr.SyntaxError{Kind: xmlerr.KindUnterminatedComment, Offset: t.Offset()}
		}
		rel++
	}
	data := t.buf[t.cur+start : t.cur+rel : t.cur+rel]
	t.cur += rel + len("-->")
	return Token{Kind: Comment, Data: data}, nil
}

func (t *Tokenizer) scanCData() (Token, error) {
	const open, close = "<![CDATA[", "]]>"
	rel := len(open)
	start := rel
	for {
		if t.hasPrefix(rel, close) {
			break
		}
		if _, ok := t.byteAt(rel); !ok {
			return Token{}, &xmlerr.SyntaxError{Kind: xmlerr.KindUnterminatedCDATA, Offset: t.Offset()}
		}
		rel++
	}
	data := t.buf[t.cur+start : t.cur+rel : t.cur+rel]
	t.cur += rel + len(close)
	return Token{Kind: CDataSection, Data: data}, nil
}

func (t *Tokenizer) scanDoctype() (Token, error) {
	const open = "<!DOCTYPE"
	rel := len(open)
	start := rel
	depth := 0
	for {
		b, ok := t.byteAt(rel)
		if !ok {
			return Token{}, &xmlerr.SyntaxError{Kind: xmlerr.KindUnterminatedDoctype, Offset: t.Offset()}
		}
		switch b {
		case '[':
			depth++
		case ']':
			if depth > 0 {
				depth--
			}
		case '>':
			if depth == 0 {
				data := trim(t.buf[t.cur+start : t.cur+rel : t.cur+rel])
				t.cur += rel + 1
				if t.options.resolver != nil {
					t.options.resolver.Capture(data)
				}
				return Token{Kind: DocTypeDecl, Data: data}, nil
			}
		}
		rel++
	}
}

func (t *Tokenizer) scanQuery() (Token, error) {
	rel := 2
	start := rel
	for {
		if t.hasPrefix(rel, "?>") {
			break
		}
		if _, ok := t.byteAt(rel); !ok {
			return Token{}, &xmlerr.SyntaxError{Kind: xmlerr.KindUnterminatedPI, Offset: t.Offset()}
		}
		rel++
	}
	data := trim(t.buf[t.cur+start : t.cur+rel : t.cur+rel])
	t.cur += rel + len("?>")

	kind := ProcInst
	if !t.emittedAny && len(data) >= 3 && (data[0] == 'x' || data[0] == 'X') &&
		(data[1] == 'm' || data[1] == 'M') && (data[2] == 'l' || data[2] == 'L') &&
		(len(data) == 3 || data[3] == ' ' || data[3] == '\t') {
		kind = Decl
	}
	return Token{Kind: kind, Data: data}, nil
}

func splitName(raw []byte) Name {
	for i, b := range raw {
		if b == ':' {
			return Name{Prefix: raw[:i:i], Local: raw[i+1:], Full: raw}
		}
	}
	return Name{Local: raw, Full: raw}
}

func trim(b []byte) []byte { return trimRightSpace(trimLeftSpace(b)) }

func trimLeftSpace(b []byte) []byte {
	i := 0
	for i < len(b) {
		switch b[i] {
		case ' ', '\t', '\r', '\n':
			i++
		default:
			return b[i:]
		}
	}
	return b[i:]
}

func trimRightSpace(b []byte) []byte {
	end := len(b)
	for end > 0 {
		switch b[end-1] {
		case ' ', '\t', '\r', '\n':
			end--
		default:
			return b[:end]
		}
	}
	return b[:end]
}

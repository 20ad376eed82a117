package xmltokenizer

import (
	"bufio"
	"context"
	"io"

	"github.com/nilasena/xmltokenizer/internal/xmlerr"
)

// ByteSink is the abstract write boundary the Writer consumes. NewWriter
// adapts a plain io.Writer to it; WriteAll must either fully complete or
// return an error, never a partial write.
type ByteSink interface {
	WriteAll(p []byte) error
}

type ioSink struct{ w io.Writer }

func (s ioSink) WriteAll(p []byte) error {
	_, err := s.w.Write(p)
	return err
}

// IndentPolicy configures the Writer's pretty-printing.
type IndentPolicy struct {
	Char byte // the byte repeated to build one indent level, e.g. ' ' or '\t'
	Size int  // how many Chars make up one indent level
}

type writerOptions struct {
	indent    *IndentPolicy
	bufferCap int
}

// WriterOption configures a Writer.
type WriterOption func(o *writerOptions)

// WithIndent enables pretty-printing: a newline followed by
// depth*size copies of char is inserted before markup events, except
// immediately after Text/CData (see Writer doc).
func WithIndent(char byte, size int) WriterOption {
	return func(o *writerOptions) { o.indent = &IndentPolicy{Char: char, Size: size} }
}

// WithWriterBufferSize sets the bufio.Writer buffer size wrapping the
// underlying sink when the caller did not already supply a ByteSink.
func WithWriterBufferSize(size int) WriterOption {
	return func(o *writerOptions) {
		if size > 0 {
			o.bufferCap = size
		}
	}
}

// Writer renders a stream of Tokens back into canonical XML bytes. It is
// the symmetric counterpart of Tokenizer: single-threaded per instance,
// strict document-order flushing, no partial writes observable to the
// caller.
type Writer struct {
	sink   ByteSink
	flush  func() error
	indent *IndentPolicy

	depth           int
	shouldLineBreak bool
	wroteAnyMarkup  bool
	cancelled       bool
}

// NewWriter creates a Writer sending rendered bytes to w. If w already
// implements ByteSink it is used directly; otherwise it is wrapped in a
// buffered adapter.
func NewWriter(w io.Writer, opts ...WriterOption) *Writer {
	o := writerOptions{bufferCap: defaultReadBufferSize}
	for _, opt := range opts {
		opt(&o)
	}

	wr := &Writer{shouldLineBreak: true, indent: o.indent}
	if sink, ok := w.(ByteSink); ok {
		wr.sink = sink
		wr.flush = func() error { return nil }
	} else {
		bw := bufio.NewWriterSize(w, o.bufferCap)
		wr.sink = ioSink{bw}
		wr.flush = bw.Flush
	}
	return wr
}

// Flush pushes any buffered bytes to the underlying writer. The caller
// controls when (or whether) to flush; a successful WriteToken only
// guarantees the bytes were handed to the sink, not that they reached
// durable storage.
func (w *Writer) Flush() error { return w.flush() }

// WriteToken renders one Token. Tokens must be supplied in the same
// document order the Tokenizer would have produced them in; WriteToken
// does not validate structural well-formedness (that is the caller's
// responsibility, mirroring the Tokenizer/Writer split of concerns).
func (w *Writer) WriteToken(tok Token) error {
	if w.cancelled {
		return &xmlerr.Cancelled{}
	}
	switch tok.Kind {
	case StartElement:
		if err := w.writeIndent(); err != nil {
			return err
		}
		if err := w.writeTag(tok, "<", ">"); err != nil {
			return err
		}
		w.depth++
		w.shouldLineBreak = true
		return nil
	case EmptyElement:
		if err := w.writeIndent(); err != nil {
			return err
		}
		if err := w.writeTag(tok, "<", "/>"); err != nil {
			return err
		}
		w.shouldLineBreak = true
		return nil
	case EndElement:
		w.depth--
		if err := w.writeIndent(); err != nil {
			return err
		}
		if err := w.sink.WriteAll([]byte("</")); err != nil {
			return err
		}
		if err := w.sink.WriteAll(tok.Name.Full); err != nil {
			return err
		}
		if err := w.sink.WriteAll([]byte(">")); err != nil {
			return err
		}
		w.wroteAnyMarkup = true
		w.shouldLineBreak = true
		return nil
	case CharData:
		// The caller is responsible for escaping CharData before handing
		// it to the Writer; see Escape.
		w.shouldLineBreak = false
		return w.sink.WriteAll(tok.Data)
	case CDataSection:
		w.shouldLineBreak = false
		if err := w.sink.WriteAll([]byte("<![CDATA[")); err != nil {
			return err
		}
		if err := w.sink.WriteAll(tok.Data); err != nil {
			return err
		}
		return w.sink.WriteAll([]byte("]]>"))
	case Comment:
		if err := w.writeIndent(); err != nil {
			return err
		}
		if err := w.sink.WriteAll([]byte("<!--")); err != nil {
			return err
		}
		if err := w.sink.WriteAll(tok.Data); err != nil {
			return err
		}
		w.wroteAnyMarkup = true
		w.shouldLineBreak = true
		return w.sink.WriteAll([]byte("-->"))
	case ProcInst, Decl:
		if err := w.writeIndent(); err != nil {
			return err
		}
		if err := w.sink.WriteAll([]byte("<?")); err != nil {
			return err
		}
		if err := w.sink.WriteAll(tok.Data); err != nil {
			return err
		}
		w.wroteAnyMarkup = true
		w.shouldLineBreak = true
		return w.sink.WriteAll([]byte("?>"))
	case DocTypeDecl:
		if err := w.writeIndent(); err != nil {
			return err
		}
		if err := w.sink.WriteAll([]byte("<!DOCTYPE ")); err != nil {
			return err
		}
		if err := w.sink.WriteAll(tok.Data); err != nil {
			return err
		}
		w.wroteAnyMarkup = true
		w.shouldLineBreak = true
		return w.sink.WriteAll([]byte(">"))
	case EOF:
		return nil
	default:
		return nil
	}
}

// WriteTokenContext is WriteToken with a cancellation point: the
// context is consulted before any bytes are handed to the sink. Once
// cancellation is observed the Writer becomes unusable and every
// further call returns Cancelled; the sink is left at an undefined
// byte offset.
func (w *Writer) WriteTokenContext(ctx context.Context, tok Token) error {
	if w.cancelled {
		return &xmlerr.Cancelled{}
	}
	if err := ctx.Err(); err != nil {
		w.cancelled = true
		return &xmlerr.Cancelled{}
	}
	return w.WriteToken(tok)
}

func (w *Writer) writeTag(tok Token, open, close string) error {
	if err := w.sink.WriteAll([]byte(open)); err != nil {
		return err
	}
	if err := w.sink.WriteAll(tok.Name.Full); err != nil {
		return err
	}
	for i := range tok.Attrs {
		if err := w.sink.WriteAll([]byte(" ")); err != nil {
			return err
		}
		if err := w.sink.WriteAll(tok.Attrs[i].Name.Full); err != nil {
			return err
		}
		if err := w.sink.WriteAll([]byte(`="`)); err != nil {
			return err
		}
		if err := w.sink.WriteAll(tok.Attrs[i].ValueRaw); err != nil {
			return err
		}
		if err := w.sink.WriteAll([]byte(`"`)); err != nil {
			return err
		}
	}
	w.wroteAnyMarkup = true
	return w.sink.WriteAll([]byte(close))
}

// writeIndent inserts '\n' + indentChar*depth*size before the next
// markup event, unless indentation is disabled, this is the very first
// thing written, or the previous event was Text/CData (shouldLineBreak
// false).
func (w *Writer) writeIndent() error {
	if w.indent == nil || !w.shouldLineBreak || !w.wroteAnyMarkup {
		return nil
	}
	buf := make([]byte, 0, 1+w.depth*w.indent.Size)
	buf = append(buf, '\n')
	for i := 0; i < w.depth*w.indent.Size; i++ {
		buf = append(buf, w.indent.Char)
	}
	return w.sink.WriteAll(buf)
}

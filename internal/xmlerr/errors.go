// Package xmlerr holds the error kinds shared by the tokenizer, writer and
// data-binding layers. Keeping them in one internal package lets every
// layer produce and recognize the same typed errors instead of each
// wrapping its own string.
package xmlerr

import "fmt"

// SyntaxErrorKind identifies the class of malformed token a SyntaxError
// reports.
type SyntaxErrorKind string

const (
	KindUnterminatedComment SyntaxErrorKind = "unterminated comment"
	KindUnterminatedCDATA   SyntaxErrorKind = "unterminated CDATA section"
	KindUnterminatedPI      SyntaxErrorKind = "unterminated processing instruction"
	KindUnterminatedDoctype SyntaxErrorKind = "unterminated DOCTYPE"
	KindUnterminatedTag     SyntaxErrorKind = "unterminated tag"
	KindUnterminatedAttr    SyntaxErrorKind = "unterminated attribute value"
	KindUnquotedAttrValue   SyntaxErrorKind = "attribute value not quoted"
	KindBareAmpersand       SyntaxErrorKind = "bare ampersand"
	KindDuplicateAttr       SyntaxErrorKind = "duplicate attribute"
	KindCommentHyphenHyphen SyntaxErrorKind = "comment contains --"
)

// SyntaxError reports a malformed token at a byte offset in the input.
type SyntaxError struct {
	Kind   SyntaxErrorKind
	Offset int64
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("xmltokenizer: syntax error: %s at byte offset %d", e.Kind, e.Offset)
}

// EndEventMismatch reports that a closing tag's name did not match the
// most recently opened element.
type EndEventMismatch struct {
	Expected, Found string
}

func (e *EndEventMismatch) Error() string {
	return fmt.Sprintf("xmltokenizer: end tag mismatch: expected </%s>, found </%s>", e.Expected, e.Found)
}

// UnexpectedEOF reports that the source was exhausted mid-token or
// mid-document, or before any root element appeared.
type UnexpectedEOF struct {
	// Open lists the names of elements still open when the input ended,
	// outermost first. It is empty when no element was open.
	Open []string
}

func (e *UnexpectedEOF) Error() string {
	if len(e.Open) == 0 {
		return "xmltokenizer: unexpected EOF"
	}
	return fmt.Sprintf("xmltokenizer: unexpected EOF with %d element(s) still open (outermost: %s)", len(e.Open), e.Open[0])
}

// InvalidCharRef reports a numeric character reference outside the valid
// Unicode scalar value range, or otherwise malformed.
type InvalidCharRef struct {
	Ref string
}

func (e *InvalidCharRef) Error() string {
	return fmt.Sprintf("xmltokenizer: invalid character reference &%s;", e.Ref)
}

// UnknownEntity reports a named entity reference that no resolver could
// expand.
type UnknownEntity struct {
	Name string
}

func (e *UnknownEntity) Error() string {
	return fmt.Sprintf("xmltokenizer: unknown entity &%s;", e.Name)
}

// NonDecodable reports bytes that are not valid in the declared or
// detected encoding.
type NonDecodable struct {
	Encoding string
}

func (e *NonDecodable) Error() string {
	return fmt.Sprintf("xmltokenizer: bytes not decodable as %s", e.Encoding)
}

// Unsupported reports an intentionally unsupported construct, such as
// binary payloads inside element text.
type Unsupported struct {
	Reason string
}

func (e *Unsupported) Error() string {
	return "xmltokenizer: unsupported: " + e.Reason
}

// Custom is a human-readable data-binding mismatch, mirroring the
// "missing field `X`" / "invalid type: ..." messages a reflection-based
// deserializer needs to produce.
type Custom struct {
	Reason string
}

func (e *Custom) Error() string {
	return e.Reason
}

// ExpectedStart reports that the document did not begin with a root
// element once ignorable prolog content was skipped.
type ExpectedStart struct {
	Found string
}

func (e *ExpectedStart) Error() string {
	if e.Found == "" {
		return "xmltokenizer: expected start tag, found end of input"
	}
	return fmt.Sprintf("xmltokenizer: expected start tag, found %s", e.Found)
}

// Cancelled reports that a reader or writer was used after its
// cooperative operation was cancelled mid-call.
type Cancelled struct{}

func (e *Cancelled) Error() string { return "xmltokenizer: use of reader/writer after cancellation" }

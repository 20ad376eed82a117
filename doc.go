// Package xmltokenizer implements a streaming, allocation-conscious XML 1.x
// reader and writer.
//
// The Tokenizer consumes an io.Reader and emits a sequence of Tokens in
// document order: StartElement, EndElement, EmptyElement, CharData,
// CDataSection, Comment, ProcInst, Decl, DocTypeDecl and finally an EOF
// token. Tokens borrow their byte slices from the Tokenizer's internal
// buffer; the Tokenizer does not copy them. Unescape returns a copy only
// when an entity reference had to be expanded, and Token.Copy produces an
// owned Token. Borrowed slices are valid only until the next call to Token.
//
// The Writer is the symmetric counterpart: it renders a stream of Tokens
// back into canonical XML bytes, optionally pretty-printed.
//
// Package x/bind, layered on top, maps a Token stream onto user-defined
// Go values using struct tags, the way encoding/xml does for its own
// Unmarshal, but driven by this package's Tokenizer instead of the
// standard library's decoder.
package xmltokenizer

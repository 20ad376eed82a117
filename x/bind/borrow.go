package bind

import (
	"reflect"

	"github.com/nilasena/xmltokenizer/internal/xmlerr"
)

// BorrowedString is a string destination that additionally demands the
// borrow discipline the Tokenizer exposes through Token.Borrowed: binding
// succeeds only when the value needed no entity expansion and arrived in
// a single chunk, i.e. when an ownership-tracking caller could have kept
// a reference into the input buffer instead of a copy. Binding a value
// that had to be rewritten fails with an "expected a borrowed string"
// mismatch.
type BorrowedString string

var borrowedStringType = reflect.TypeOf(BorrowedString(""))

func setScalarBorrowed(v reflect.Value, s string, borrowed bool) error {
	if v.Type() == borrowedStringType && !borrowed {
		return &xmlerr.Custom{Reason: `invalid type: string "` + s + `", expected a borrowed string`}
	}
	return setScalar(v, s)
}

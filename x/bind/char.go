package bind

import (
	"reflect"
	"unicode/utf8"

	"github.com/nilasena/xmltokenizer/internal/xmlerr"
)

// Char is a single-character destination: binding succeeds only when the
// bound text is exactly one Unicode scalar value. It exists because rune
// is an alias for int32, so a plain rune field is indistinguishable from
// a numeric one by reflection; int32 fields always parse their text as a
// decimal integer, and character semantics are opted into with this type.
type Char rune

var charType = reflect.TypeOf(Char(0))

func setChar(v reflect.Value, s string) error {
	if s == "" {
		// Absent/empty value: keep the zero value, as for the numeric
		// kinds.
		return nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if size != len(s) || (r == utf8.RuneError && size == 1) {
		return &xmlerr.Custom{Reason: "invalid type: char `" + s + "`, expected exactly one scalar value"}
	}
	v.SetInt(int64(r))
	return nil
}

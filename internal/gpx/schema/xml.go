package schema

import (
	"encoding/xml"
	"fmt"

	"github.com/nilasena/xmltokenizer"
)

func getCharData(dec *xml.Decoder) (xml.CharData, error) {
	token, err := dec.Token()
	if err != nil {
		return nil, err
	}
	v, ok := token.(xml.CharData)
	if !ok {
		return nil, fmt.Errorf("not a chardata")
	}
	return v, nil
}

// readText drains se's element body and returns its concatenated CharData,
// since xmltokenizer (unlike the old bundled-token API) emits text as its
// own Token rather than attaching it to the element's StartElement.
func readText(tok *xmltokenizer.Tokenizer, se *xmltokenizer.Token) (string, error) {
	if se.Kind == xmltokenizer.EmptyElement {
		return "", nil
	}
	var data []byte
	for {
		token, err := tok.Token()
		if err != nil {
			return "", err
		}
		if token.IsEndElementOf(se) {
			return string(data), nil
		}
		switch token.Kind {
		case xmltokenizer.CharData, xmltokenizer.CDataSection:
			data = append(data, token.Data...)
		case xmltokenizer.StartElement:
			child := xmltokenizer.GetToken().Copy(token)
			_, err := readText(tok, child)
			xmltokenizer.PutToken(child)
			if err != nil {
				return "", err
			}
		}
	}
}

package schema

import (
	"io"
	"strconv"

	"github.com/nilasena/xmltokenizer"
)

// readText drains se's element body and returns its concatenated CharData.
// xmltokenizer emits text as its own Token rather than bundling it onto the
// element's StartElement, so leaf scalar fields must read forward for it.
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

type SheetData struct {
	Rows []Row `xml:"row,omitempty"`
}

func (s *SheetData) UnmarshalToken(tok *xmltokenizer.Tokenizer, se *xmltokenizer.Token) error {
	if se.Kind == xmltokenizer.EmptyElement {
		return nil
	}
	for {
		token, err := tok.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		if token.IsEndElementOf(se) {
			break
		}
		if token.IsEndElement() {
			continue
		}

		switch string(token.Name.Local) {
		case "row":
			var row Row
			se := xmltokenizer.GetToken().Copy(token)
			err = row.UnmarshalToken(tok, se)
			xmltokenizer.PutToken(se)
			if err != nil {
				return err
			}
			s.Rows = append(s.Rows, row)
		}
	}
	return nil
}

type Row struct {
	Index int    `xml:"r,attr,omitempty"`
	Cells []Cell `xml:"c"`
}

func (r *Row) UnmarshalToken(tok *xmltokenizer.Tokenizer, se *xmltokenizer.Token) error {
	var err error
	for i := range se.Attrs {
		attr := &se.Attrs[i]
		switch string(attr.Name.Local) {
		case "r":
			r.Index, err = strconv.Atoi(string(attr.ValueRaw))
			if err != nil {
				return err
			}
		}
	}

	if se.Kind == xmltokenizer.EmptyElement {
		return nil
	}

	for {
		token, err := tok.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		if token.IsEndElementOf(se) {
			break
		}
		if token.IsEndElement() {
			continue
		}

		switch string(token.Name.Local) {
		case "c":
			var cell Cell
			se := xmltokenizer.GetToken().Copy(token)
			err = cell.UnmarshalToken(tok, se)
			xmltokenizer.PutToken(se)
			if err != nil {
				return err
			}
			r.Cells = append(r.Cells, cell)
		}
	}

	return nil
}

type Cell struct {
	Reference    string `xml:"r,attr"` // E.g. A1
	Style        int    `xml:"s,attr"`
	Type         string `xml:"t,attr,omitempty"`
	Value        string `xml:"v,omitempty"`
	InlineString string `xml:"is>t"`
}

func (c *Cell) UnmarshalToken(tok *xmltokenizer.Tokenizer, se *xmltokenizer.Token) error {
	var err error
	for i := range se.Attrs {
		attr := &se.Attrs[i]
		switch string(attr.Name.Local) {
		case "r":
			c.Reference = string(attr.ValueRaw)
		case "s":
			c.Style, err = strconv.Atoi(string(attr.ValueRaw))
			if err != nil {
				return err
			}
		case "t":
			c.Type = string(attr.ValueRaw)
		}
	}

	// Must check since `c` may contains self-closing tag:
	// <c r="C1" />
	if se.Kind == xmltokenizer.EmptyElement {
		return nil
	}

	for {
		token, err := tok.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		if token.IsEndElementOf(se) {
			break
		}
		if token.IsEndElement() {
			continue
		}
		if token.Kind != xmltokenizer.StartElement && token.Kind != xmltokenizer.EmptyElement {
			continue
		}

		switch string(token.Name.Local) {
		case "v":
			se := xmltokenizer.GetToken().Copy(token)
			c.Value, err = readText(tok, se)
			xmltokenizer.PutToken(se)
			if err != nil {
				return err
			}
		case "is":
			is := xmltokenizer.GetToken().Copy(token)
			c.InlineString, err = readInlineStringText(tok, is)
			xmltokenizer.PutToken(is)
			if err != nil {
				return err
			}
		}
	}

	return nil
}

// readInlineStringText reads the <t> child of an inline string's <is>
// wrapper, discarding anything else it contains.
func readInlineStringText(tok *xmltokenizer.Tokenizer, is *xmltokenizer.Token) (string, error) {
	if is.Kind == xmltokenizer.EmptyElement {
		return "", nil
	}
	var text string
	for {
		token, err := tok.Token()
		if err != nil {
			return "", err
		}
		if token.IsEndElementOf(is) {
			return text, nil
		}
		if token.Kind != xmltokenizer.StartElement && token.Kind != xmltokenizer.EmptyElement {
			continue
		}
		if string(token.Name.Local) == "t" {
			se := xmltokenizer.GetToken().Copy(token)
			text, err = readText(tok, se)
			xmltokenizer.PutToken(se)
			if err != nil {
				return "", err
			}
		}
	}
}

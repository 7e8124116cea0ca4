package registry

import (
	"encoding/xml"
	"strings"
)

// Fragment is a mixed-content registry element such as <proto> or <param>.
// The registry interleaves type tokens, pointer markers and the identifier
// in flat text, so the element is kept as its flattened character data
// together with the text of its first <name> child.
type Fragment struct {
	// Text is all character data of the element and its descendants,
	// concatenated in document order.
	Text string

	Name    string
	HasName bool
}

func (f *Fragment) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var text, name strings.Builder
	var capture *strings.Builder

	depth := 0
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			if depth == 1 && t.Name.Local == "name" && !f.HasName {
				f.HasName = true
				capture = &name
			}
		case xml.EndElement:
			if depth == 0 {
				f.Text = text.String()
				f.Name = name.String()
				return nil
			}
			if depth == 1 {
				capture = nil
			}
			depth--
		case xml.CharData:
			text.Write(t)
			if capture != nil {
				capture.Write(t)
			}
		}
	}
}

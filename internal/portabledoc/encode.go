package portabledoc

import (
	"bytes"
	"encoding/json"
	"io"
)

// Marshal renders a document as two-space indented JSON without HTML
// escaping and without a trailing newline.
func Marshal(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return unescapeLineSeparators(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

// unescapeLineSeparators writes U+2028 and U+2029 as raw characters, which
// encoding/json always escapes. Escaped backslashes are skipped as pairs so
// a literal `\u2028` in source text stays as it is.
func unescapeLineSeparators(data []byte) []byte {
	if !bytes.Contains(data, []byte(`\u202`)) {
		return data
	}
	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		if data[i] != '\\' || i+1 >= len(data) {
			out = append(out, data[i])
			continue
		}
		if seq := data[i+1:]; len(seq) >= 5 && seq[0] == 'u' {
			switch string(seq[1:5]) {
			case "2028":
				out = append(out, "\u2028"...)
				i += 5
				continue
			case "2029":
				out = append(out, "\u2029"...)
				i += 5
				continue
			}
		}
		out = append(out, data[i], data[i+1])
		i++
	}
	return out
}

// Encode writes the Marshal form of doc to w.
func Encode(w io.Writer, doc *Document) error {
	data, err := Marshal(doc)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// marshalNode encodes a node wrapper. Node text must reach the outer encoder
// unescaped, which json.Marshal would not do.
func marshalNode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

type alignAttrs struct {
	TextAlign Alignment `json:"textAlign"`
}

func (p Paragraph) MarshalJSON() ([]byte, error) {
	var attrs *alignAttrs
	if p.Align != "" {
		attrs = &alignAttrs{TextAlign: p.Align}
	}
	return marshalNode(struct {
		Type    string      `json:"type"`
		Attrs   *alignAttrs `json:"attrs,omitempty"`
		Content []Inline    `json:"content,omitempty"`
	}{NodeTypeParagraph, attrs, p.Content})
}

func (h Heading) MarshalJSON() ([]byte, error) {
	type headingAttrs struct {
		Level     int       `json:"level"`
		TextAlign Alignment `json:"textAlign,omitempty"`
	}
	return marshalNode(struct {
		Type    string       `json:"type"`
		Attrs   headingAttrs `json:"attrs"`
		Content []Inline     `json:"content,omitempty"`
	}{NodeTypeHeading, headingAttrs{Level: h.Level, TextAlign: h.Align}, h.Content})
}

func (HorizontalRule) MarshalJSON() ([]byte, error) {
	return []byte(`{"type":"` + NodeTypeHorizontalRule + `"}`), nil
}

func (PageBreak) MarshalJSON() ([]byte, error) {
	return []byte(`{"type":"` + NodeTypePageBreak + `"}`), nil
}

func (f InteractiveField) MarshalJSON() ([]byte, error) {
	type fieldAttrs struct {
		ID            string              `json:"id"`
		FieldType     string              `json:"fieldType"`
		RoleID        string              `json:"roleId"`
		Label         string              `json:"label"`
		Required      bool                `json:"required"`
		Options       []InteractiveOption `json:"options"`
		Placeholder   string              `json:"placeholder"`
		MaxLength     int                 `json:"maxLength"`
		OptionsLayout string              `json:"optionsLayout"`
	}
	options := f.Options
	if options == nil {
		options = []InteractiveOption{}
	}
	return marshalNode(struct {
		Type  string     `json:"type"`
		Attrs fieldAttrs `json:"attrs"`
	}{NodeTypeInteractiveField, fieldAttrs{
		ID:            f.ID,
		FieldType:     f.FieldType,
		RoleID:        f.RoleID,
		Label:         f.Label,
		Required:      f.Required,
		Options:       options,
		Placeholder:   f.Placeholder,
		MaxLength:     f.MaxLength,
		OptionsLayout: f.OptionsLayout,
	}})
}

func (s Signature) MarshalJSON() ([]byte, error) {
	type signatureAttrs struct {
		Count      int             `json:"count"`
		Layout     string          `json:"layout"`
		LineWidth  string          `json:"lineWidth"`
		Signatures []SignatureItem `json:"signatures"`
	}
	items := s.Signatures
	if items == nil {
		items = []SignatureItem{}
	}
	return marshalNode(struct {
		Type  string         `json:"type"`
		Attrs signatureAttrs `json:"attrs"`
	}{NodeTypeSignature, signatureAttrs{
		Count:      s.Count,
		Layout:     s.Layout,
		LineWidth:  s.LineWidth,
		Signatures: items,
	}})
}

// tableAttrs is the styling scaffold carried by every table. All fields are
// left unset for the editor to fill in.
type tableAttrs struct {
	HeaderFontFamily *string `json:"headerFontFamily"`
	HeaderFontSize   *string `json:"headerFontSize"`
	HeaderFontWeight *string `json:"headerFontWeight"`
	HeaderTextColor  *string `json:"headerTextColor"`
	HeaderTextAlign  *string `json:"headerTextAlign"`
	HeaderBackground *string `json:"headerBackground"`
	BodyFontFamily   *string `json:"bodyFontFamily"`
	BodyFontSize     *string `json:"bodyFontSize"`
	BodyFontWeight   *string `json:"bodyFontWeight"`
	BodyTextColor    *string `json:"bodyTextColor"`
	BodyTextAlign    *string `json:"bodyTextAlign"`
}

func (t Table) MarshalJSON() ([]byte, error) {
	rows := t.Rows
	if rows == nil {
		rows = []TableRow{}
	}
	return marshalNode(struct {
		Type    string     `json:"type"`
		Attrs   tableAttrs `json:"attrs"`
		Content []TableRow `json:"content"`
	}{NodeTypeTable, tableAttrs{}, rows})
}

func (r TableRow) MarshalJSON() ([]byte, error) {
	cells := r.Cells
	if cells == nil {
		cells = []TableCell{}
	}
	return marshalNode(struct {
		Type    string      `json:"type"`
		Content []TableCell `json:"content"`
	}{NodeTypeTableRow, cells})
}

func (c TableCell) MarshalJSON() ([]byte, error) {
	if c.Header {
		return marshalNode(struct {
			Type    string   `json:"type"`
			Content []Inline `json:"content,omitempty"`
		}{NodeTypeTableHeader, c.Content})
	}
	type cellAttrs struct {
		Colspan    int     `json:"colspan"`
		Rowspan    int     `json:"rowspan"`
		Colwidth   *int    `json:"colwidth"`
		Background *string `json:"background"`
	}
	return marshalNode(struct {
		Type    string    `json:"type"`
		Attrs   cellAttrs `json:"attrs"`
		Content []Inline  `json:"content,omitempty"`
	}{NodeTypeTableCell, cellAttrs{Colspan: 1, Rowspan: 1}, c.Content})
}

func (l BulletList) MarshalJSON() ([]byte, error) {
	return marshalList(NodeTypeBulletList, l.Items)
}

func (l OrderedList) MarshalJSON() ([]byte, error) {
	return marshalList(NodeTypeOrderedList, l.Items)
}

func marshalList(nodeType string, items []ListItem) ([]byte, error) {
	if items == nil {
		items = []ListItem{}
	}
	return marshalNode(struct {
		Type    string     `json:"type"`
		Content []ListItem `json:"content"`
	}{nodeType, items})
}

func (i ListItem) MarshalJSON() ([]byte, error) {
	return marshalNode(struct {
		Type    string      `json:"type"`
		Content []Paragraph `json:"content"`
	}{NodeTypeListItem, []Paragraph{i.Paragraph}})
}

type markNode struct {
	Type Mark `json:"type"`
}

func (t Text) MarshalJSON() ([]byte, error) {
	var marks []markNode
	for _, m := range t.Marks {
		marks = append(marks, markNode{Type: m})
	}
	return marshalNode(struct {
		Type  string     `json:"type"`
		Text  string     `json:"text"`
		Marks []markNode `json:"marks,omitempty"`
	}{NodeTypeText, t.Text, marks})
}

func (i Injector) MarshalJSON() ([]byte, error) {
	type injectorAttrs struct {
		Type             string  `json:"type"`
		Label            string  `json:"label"`
		VariableID       string  `json:"variableId"`
		Format           *string `json:"format"`
		Required         bool    `json:"required"`
		Prefix           *string `json:"prefix"`
		Suffix           *string `json:"suffix"`
		ShowLabelIfEmpty bool    `json:"showLabelIfEmpty"`
		DefaultValue     *string `json:"defaultValue"`
		Width            *int    `json:"width"`
		IsRoleVariable   bool    `json:"isRoleVariable"`
		RoleID           *string `json:"roleId"`
		RoleLabel        *string `json:"roleLabel"`
		PropertyKey      *string `json:"propertyKey"`
	}
	return marshalNode(struct {
		Type  string        `json:"type"`
		Attrs injectorAttrs `json:"attrs"`
	}{NodeTypeInjector, injectorAttrs{
		Type:       i.Type,
		Label:      i.Label,
		VariableID: i.VariableID,
	}})
}

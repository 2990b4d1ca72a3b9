package portabledoc

// Node type names as they appear in the "type" field.
const (
	NodeTypeDoc              = "doc"
	NodeTypeParagraph        = "paragraph"
	NodeTypeHeading          = "heading"
	NodeTypeHorizontalRule   = "horizontalRule"
	NodeTypePageBreak        = "pageBreak"
	NodeTypeInteractiveField = "interactiveField"
	NodeTypeSignature        = "signature"
	NodeTypeTable            = "table"
	NodeTypeTableRow         = "tableRow"
	NodeTypeTableHeader      = "tableHeader"
	NodeTypeTableCell        = "tableCell"
	NodeTypeBulletList       = "bulletList"
	NodeTypeOrderedList      = "orderedList"
	NodeTypeListItem         = "listItem"
	NodeTypeText             = "text"
	NodeTypeInjector         = "injector"
)

// Alignment is a paragraph/heading text alignment. The zero value means unset.
type Alignment string

const (
	AlignCenter  Alignment = "center"
	AlignRight   Alignment = "right"
	AlignJustify Alignment = "justify"
)

// Block is a top-level content node. The set of implementations is closed.
type Block interface {
	NodeType() string
	isBlock()
}

// Inline is a node inside a paragraph, heading or table cell.
type Inline interface {
	NodeType() string
	isInline()
}

// Paragraph is a block of inline content. A paragraph without content and
// without alignment is a spacer.
type Paragraph struct {
	Align   Alignment
	Content []Inline
}

type Heading struct {
	Level   int
	Align   Alignment
	Content []Inline
}

type HorizontalRule struct{}

type PageBreak struct{}

// InteractiveField is a fillable control bound to a signer role.
type InteractiveField struct {
	ID            string
	FieldType     string // "checkbox" | "radio" | "text"
	RoleID        string
	Label         string
	Required      bool
	Options       []InteractiveOption
	Placeholder   string
	MaxLength     int
	OptionsLayout string // "vertical" | "inline"
}

// InteractiveOption is a single option in a checkbox or radio field.
type InteractiveOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

const (
	FieldTypeCheckbox       = "checkbox"
	OptionsLayoutVertical   = "vertical"
	DefaultSignatureOpacity = 100
)

// Signature is a block of signature lines.
type Signature struct {
	Count      int
	Layout     string
	LineWidth  string
	Signatures []SignatureItem
}

// SignatureItem is one signature line within a Signature block.
type SignatureItem struct {
	ID           string `json:"id"`
	RoleID       string `json:"roleId"`
	Label        string `json:"label"`
	ImageOpacity int    `json:"imageOpacity"`
	Subtitle     string `json:"subtitle,omitempty"`
}

// Table is a grid of rows; the first row holds header cells.
type Table struct {
	Rows []TableRow
}

type TableRow struct {
	Cells []TableCell
}

// TableCell holds inline content directly, without a paragraph wrapper.
// Header cells serialize as tableHeader, others as tableCell.
type TableCell struct {
	Header  bool
	Content []Inline
}

type BulletList struct {
	Items []ListItem
}

type OrderedList struct {
	Items []ListItem
}

// ListItem wraps exactly one paragraph.
type ListItem struct {
	Paragraph Paragraph
}

// Mark is an inline text style.
type Mark string

const (
	MarkBold      Mark = "bold"
	MarkItalic    Mark = "italic"
	MarkUnderline Mark = "underline"
)

// Text is a run of text with an ordered mark set.
type Text struct {
	Text  string
	Marks []Mark
}

// Injector is a variable placeholder. VariableID is the author's token and
// is never rewritten.
type Injector struct {
	VariableID string
	Label      string
	Type       string
}

// InjectorTypeText is the injector type used when none is given.
const InjectorTypeText = "TEXT"

func (Paragraph) NodeType() string        { return NodeTypeParagraph }
func (Heading) NodeType() string          { return NodeTypeHeading }
func (HorizontalRule) NodeType() string   { return NodeTypeHorizontalRule }
func (PageBreak) NodeType() string        { return NodeTypePageBreak }
func (InteractiveField) NodeType() string { return NodeTypeInteractiveField }
func (Signature) NodeType() string        { return NodeTypeSignature }
func (Table) NodeType() string            { return NodeTypeTable }
func (BulletList) NodeType() string       { return NodeTypeBulletList }
func (OrderedList) NodeType() string      { return NodeTypeOrderedList }
func (Text) NodeType() string             { return NodeTypeText }
func (Injector) NodeType() string         { return NodeTypeInjector }

func (Paragraph) isBlock()        {}
func (Heading) isBlock()          {}
func (HorizontalRule) isBlock()   {}
func (PageBreak) isBlock()        {}
func (InteractiveField) isBlock() {}
func (Signature) isBlock()        {}
func (Table) isBlock()            {}
func (BulletList) isBlock()       {}
func (OrderedList) isBlock()      {}

func (Text) isInline()     {}
func (Injector) isInline() {}

package doctree

import (
	"strings"

	"github.com/dgallion1/docml/internal/portabledoc"
)

// Tree is the heading outline of a converted document.
type Tree struct {
	Title    string  `json:"title"`    // Document title (from meta or filename)
	Words    int     `json:"words"`    // Words before the first heading
	Pages    int     `json:"pages"`    // 1 + number of page breaks
	Children []*Node `json:"children"` // Top-level sections
}

// Node is a heading and the content beneath it, up to the next heading of
// the same or a higher level.
type Node struct {
	Title    string  `json:"title"`
	Level    int     `json:"level"`
	Page     int     `json:"page"`  // Page the heading starts on, 1-based
	Words    int     `json:"words"` // Words directly under this heading, excluding subsections
	Children []*Node `json:"children,omitempty"`
}

// Build walks the document content and nests every heading under the
// closest preceding heading with a lower level.
func Build(doc *portabledoc.Document) *Tree {
	tree := &Tree{Title: doc.Meta.Title, Pages: 1, Children: []*Node{}}

	var stack []*Node
	for _, block := range doc.Content.Content {
		switch b := block.(type) {
		case portabledoc.PageBreak:
			tree.Pages++
		case portabledoc.Heading:
			node := &Node{Title: InlineText(b.Content), Level: b.Level, Page: tree.Pages}
			for len(stack) > 0 && stack[len(stack)-1].Level >= b.Level {
				stack = stack[:len(stack)-1]
			}
			if len(stack) == 0 {
				tree.Children = append(tree.Children, node)
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			}
			stack = append(stack, node)
		default:
			words := len(strings.Fields(BlockText(block)))
			if len(stack) == 0 {
				tree.Words += words
			} else {
				stack[len(stack)-1].Words += words
			}
		}
	}
	return tree
}

// Breadcrumbs lists every heading path in document order, e.g.
// ["Terms", "Payment", "Late fees"].
func (t *Tree) Breadcrumbs() [][]string {
	var out [][]string
	for _, child := range t.Children {
		out = walkNode(child, nil, out)
	}
	return out
}

func walkNode(node *Node, breadcrumb []string, out [][]string) [][]string {
	bc := make([]string, 0, len(breadcrumb)+1)
	bc = append(bc, breadcrumb...)
	bc = append(bc, node.Title)
	out = append(out, bc)
	for _, child := range node.Children {
		out = walkNode(child, bc, out)
	}
	return out
}

// InlineText flattens inline content. Injectors render as their label.
func InlineText(content []portabledoc.Inline) string {
	var sb strings.Builder
	for _, in := range content {
		switch n := in.(type) {
		case portabledoc.Text:
			sb.WriteString(n.Text)
		case portabledoc.Injector:
			if n.Label != "" {
				sb.WriteString(n.Label)
			} else {
				sb.WriteString(n.VariableID)
			}
		}
	}
	return sb.String()
}

// BlockText returns the readable text of a non-heading block.
func BlockText(block portabledoc.Block) string {
	switch b := block.(type) {
	case portabledoc.Paragraph:
		return InlineText(b.Content)
	case portabledoc.Heading:
		return InlineText(b.Content)
	case portabledoc.InteractiveField:
		parts := []string{b.Label}
		for _, opt := range b.Options {
			parts = append(parts, opt.Label)
		}
		return strings.Join(parts, " ")
	case portabledoc.Signature:
		var parts []string
		for _, s := range b.Signatures {
			parts = append(parts, s.Label, s.Subtitle)
		}
		return strings.Join(parts, " ")
	case portabledoc.Table:
		var parts []string
		for _, row := range b.Rows {
			for _, cell := range row.Cells {
				parts = append(parts, InlineText(cell.Content))
			}
		}
		return strings.Join(parts, " ")
	case portabledoc.BulletList:
		return listText(b.Items)
	case portabledoc.OrderedList:
		return listText(b.Items)
	}
	return ""
}

func listText(items []portabledoc.ListItem) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = InlineText(item.Paragraph.Content)
	}
	return strings.Join(parts, " ")
}

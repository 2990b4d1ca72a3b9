package parser

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/dgallion1/docml/internal/docml"
	"github.com/dgallion1/docml/internal/portabledoc"
)

// MarkdownParser handles Markdown files using goldmark. Block structure comes
// from the Markdown AST; the raw source of each block is then run through the
// docml inline tokenizer, whose emphasis markers overlap with Markdown's.
type MarkdownParser struct {
	Options docml.Options
}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*portabledoc.Document, error) {
	var fm markdownFrontMatter
	src, err := frontmatter.Parse(r, &fm)
	if err != nil {
		return nil, fmt.Errorf("parse front matter: %w", err)
	}

	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	root := md.Parser().Parse(text.NewReader(src))

	doc := imported(filename, markdownBlocks(root, src), p.Options)
	fm.apply(&doc.Meta)
	return doc, nil
}

// markdownFrontMatter is the optional YAML or TOML header of a Markdown file.
type markdownFrontMatter struct {
	Title       string `yaml:"title" toml:"title"`
	Description string `yaml:"description" toml:"description"`
	Language    string `yaml:"language" toml:"language"`
}

func (fm markdownFrontMatter) apply(meta *portabledoc.Meta) {
	if v := strings.TrimSpace(fm.Title); v != "" {
		meta.Title = v
	}
	if v := strings.TrimSpace(fm.Description); v != "" {
		meta.Description = v
	}
	if v := strings.TrimSpace(fm.Language); v != "" {
		meta.Language = v
	}
}

func markdownBlocks(parent ast.Node, src []byte) []portabledoc.Block {
	var blocks []portabledoc.Block
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			blocks = append(blocks, portabledoc.Heading{
				Level:   min(node.Level, 3),
				Content: docml.Tokenize(blockText(node, src)),
			})
		case *ast.Paragraph, *ast.TextBlock:
			blocks = append(blocks, portabledoc.Paragraph{Content: docml.Tokenize(blockText(node, src))})
		case *ast.ThematicBreak:
			blocks = append(blocks, portabledoc.HorizontalRule{})
		case *ast.List:
			items := markdownListItems(node, src)
			if node.IsOrdered() {
				blocks = append(blocks, portabledoc.OrderedList{Items: items})
			} else {
				blocks = append(blocks, portabledoc.BulletList{Items: items})
			}
		case *ast.Blockquote:
			blocks = append(blocks, markdownBlocks(node, src)...)
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			// Code is kept literally, one paragraph per line.
			lines := node.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				line := strings.TrimRight(string(seg.Value(src)), "\r\n")
				if strings.TrimSpace(line) == "" {
					continue
				}
				blocks = append(blocks, portabledoc.Paragraph{
					Content: []portabledoc.Inline{portabledoc.Text{Text: line}},
				})
			}
		case *extast.Table:
			blocks = append(blocks, markdownTable(node, src))
		}
	}
	return blocks
}

// markdownListItems takes the first block of every item as its text. Nested
// blocks inside an item are not carried over.
func markdownListItems(list *ast.List, src []byte) []portabledoc.ListItem {
	var items []portabledoc.ListItem
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		var text string
		if first := item.FirstChild(); first != nil {
			text = blockText(first, src)
		}
		items = append(items, portabledoc.ListItem{
			Paragraph: portabledoc.Paragraph{Content: docml.Tokenize(text)},
		})
	}
	return items
}

func markdownTable(table *extast.Table, src []byte) portabledoc.Table {
	var rows []portabledoc.TableRow
	for row := table.FirstChild(); row != nil; row = row.NextSibling() {
		_, header := row.(*extast.TableHeader)
		var cells []portabledoc.TableCell
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, portabledoc.TableCell{
				Header:  header,
				Content: docml.Tokenize(blockText(cell, src)),
			})
		}
		rows = append(rows, portabledoc.TableRow{Cells: cells})
	}
	return portabledoc.Table{Rows: rows}
}

// blockText returns the raw source lines of a block joined with spaces.
// Blocks that keep no lines fall back to their inline text.
func blockText(n ast.Node, src []byte) string {
	lines := n.Lines()
	if lines.Len() == 0 {
		return strings.TrimSpace(inlineText(n, src))
	}
	parts := make([]string, 0, lines.Len())
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		if s := strings.TrimSpace(string(seg.Value(src))); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

func inlineText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(t.Value)
		default:
			buf.WriteString(inlineText(c, src))
		}
	}
	return buf.String()
}

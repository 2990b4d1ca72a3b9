package parser

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/dgallion1/docml/internal/docml"
	"github.com/dgallion1/docml/internal/portabledoc"
)

// HTMLParser handles HTML files.
type HTMLParser struct {
	Options docml.Options
}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*portabledoc.Document, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	root := findElement(doc, "body")
	if root == nil {
		root = doc
	}
	out := imported(filename, htmlBlocks(root), p.Options)

	// Extract title from <title> tag if present.
	if title := findElement(doc, "title"); title != nil {
		if t := strings.TrimSpace(textContent(title)); t != "" {
			out.Meta.Title = t
		}
	}
	return out, nil
}

func htmlBlocks(parent *html.Node) []portabledoc.Block {
	var blocks []portabledoc.Block
	for n := parent.FirstChild; n != nil; n = n.NextSibling {
		switch n.Type {
		case html.TextNode:
			if content := htmlInlines(n); len(content) > 0 {
				blocks = append(blocks, portabledoc.Paragraph{Content: content})
			}
			continue
		case html.ElementNode:
		default:
			continue
		}

		if level := headingLevel(n.Data); level > 0 {
			blocks = append(blocks, portabledoc.Heading{Level: min(level, 3), Content: htmlInlines(n)})
			continue
		}

		switch n.Data {
		case "script", "style", "nav", "footer", "header", "template":
			// Skip non-content elements.
		case "p", "blockquote", "pre":
			if content := htmlInlines(n); len(content) > 0 {
				blocks = append(blocks, portabledoc.Paragraph{Content: content})
			}
		case "hr":
			blocks = append(blocks, portabledoc.HorizontalRule{})
		case "ul":
			blocks = append(blocks, portabledoc.BulletList{Items: htmlListItems(n)})
		case "ol":
			blocks = append(blocks, portabledoc.OrderedList{Items: htmlListItems(n)})
		case "table":
			blocks = append(blocks, htmlTable(n))
		default:
			blocks = append(blocks, htmlBlocks(n)...)
		}
	}
	return blocks
}

func headingLevel(tag string) int {
	switch tag {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	case "h4":
		return 4
	case "h5":
		return 5
	case "h6":
		return 6
	}
	return 0
}

func htmlListItems(list *html.Node) []portabledoc.ListItem {
	var items []portabledoc.ListItem
	for li := list.FirstChild; li != nil; li = li.NextSibling {
		if li.Type != html.ElementNode || li.Data != "li" {
			continue
		}
		items = append(items, portabledoc.ListItem{
			Paragraph: portabledoc.Paragraph{Content: htmlInlines(li)},
		})
	}
	return items
}

// htmlTable flattens thead/tbody/tfoot; th cells become header cells.
func htmlTable(table *html.Node) portabledoc.Table {
	var rows []portabledoc.TableRow
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.Data {
			case "tr":
				rows = append(rows, htmlTableRow(c))
			case "thead", "tbody", "tfoot":
				walk(c)
			}
		}
	}
	walk(table)
	return portabledoc.Table{Rows: rows}
}

func htmlTableRow(tr *html.Node) portabledoc.TableRow {
	var cells []portabledoc.TableCell
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || (c.Data != "th" && c.Data != "td") {
			continue
		}
		cells = append(cells, portabledoc.TableCell{
			Header:  c.Data == "th",
			Content: htmlInlines(c),
		})
	}
	return portabledoc.TableRow{Cells: cells}
}

// inlineMarks counts open formatting elements so nested tags of the same
// kind close correctly.
type inlineMarks struct {
	bold, italic, underline int
}

func (m inlineMarks) marks() []portabledoc.Mark {
	var marks []portabledoc.Mark
	if m.bold > 0 {
		marks = append(marks, portabledoc.MarkBold)
	}
	if m.italic > 0 {
		marks = append(marks, portabledoc.MarkItalic)
	}
	if m.underline > 0 {
		marks = append(marks, portabledoc.MarkUnderline)
	}
	return marks
}

// htmlInlines collects the text under n as styled runs. Whitespace is
// collapsed and placeholders inside a single text node become injectors.
func htmlInlines(n *html.Node) []portabledoc.Inline {
	var runs []portabledoc.Inline
	var walk func(*html.Node, inlineMarks)
	walk = func(n *html.Node, m inlineMarks) {
		switch n.Type {
		case html.TextNode:
			runs = appendRuns(runs, docml.SplitPlaceholders(collapseSpace(n.Data), m.marks()))
			return
		case html.ElementNode:
			switch n.Data {
			case "b", "strong":
				m.bold++
			case "i", "em":
				m.italic++
			case "u":
				m.underline++
			case "br":
				runs = appendRuns(runs, []portabledoc.Inline{portabledoc.Text{Text: " ", Marks: m.marks()}})
				return
			case "script", "style":
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, m)
		}
	}
	walk(n, inlineMarks{})
	return trimRuns(runs)
}

func collapseSpace(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		if s != "" {
			return " "
		}
		return ""
	}
	out := strings.Join(fields, " ")
	if strings.TrimLeft(s, " \t\r\n\f") != s {
		out = " " + out
	}
	if strings.TrimRight(s, " \t\r\n\f") != s {
		out += " "
	}
	return out
}

// appendRuns appends next to runs, merging adjacent text runs that carry the
// same marks and collapsing the space between them.
func appendRuns(runs, next []portabledoc.Inline) []portabledoc.Inline {
	for _, in := range next {
		t, ok := in.(portabledoc.Text)
		if !ok || len(runs) == 0 {
			runs = append(runs, in)
			continue
		}
		last, ok := runs[len(runs)-1].(portabledoc.Text)
		if !ok || !sameMarks(last.Marks, t.Marks) {
			runs = append(runs, in)
			continue
		}
		text := t.Text
		if strings.HasSuffix(last.Text, " ") {
			text = strings.TrimLeft(text, " ")
		}
		last.Text += text
		runs[len(runs)-1] = last
	}
	return runs
}

func sameMarks(a, b []portabledoc.Mark) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// trimRuns strips leading and trailing space from the outer text runs and
// drops runs left empty.
func trimRuns(runs []portabledoc.Inline) []portabledoc.Inline {
	if len(runs) == 0 {
		return nil
	}
	if t, ok := runs[0].(portabledoc.Text); ok {
		t.Text = strings.TrimLeft(t.Text, " ")
		runs[0] = t
	}
	if t, ok := runs[len(runs)-1].(portabledoc.Text); ok {
		t.Text = strings.TrimRight(t.Text, " ")
		runs[len(runs)-1] = t
	}
	out := runs[:0]
	for _, in := range runs {
		if t, ok := in.(portabledoc.Text); ok && t.Text == "" {
			continue
		}
		out = append(out, in)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return buf.String()
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

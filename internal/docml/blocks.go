package docml

import (
	"regexp"
	"strings"

	"github.com/dgallion1/docml/internal/portabledoc"
)

var (
	headingLine = regexp.MustCompile(`^(#{1,3})` + space + `+(.+)$`)
	orderedLine = regexp.MustCompile(`^\p{Nd}+\.` + space + `+(.+)$`)
)

var alignmentPrefixes = []struct {
	prefix string
	align  portabledoc.Alignment
}{
	{"@center ", portabledoc.AlignCenter},
	{"@right ", portabledoc.AlignRight},
	{"@justify ", portabledoc.AlignJustify},
}

// cursor is the view of the current line that every rule sees.
type cursor struct {
	pos   int
	align portabledoc.Alignment
	// text is the line with any alignment prefix removed, then trimmed.
	text string
}

// blockRule inspects the line under the cursor. When it matches it returns
// the node it built and the index of the first unconsumed line, which is
// always greater than c.pos.
type blockRule struct {
	name  string
	apply func(p *blockParser, c cursor) (portabledoc.Block, int, bool)
}

// blockRules are evaluated in order; the first match wins. Lines no rule
// accepts become plain paragraphs.
var blockRules = []blockRule{
	{"spacer", parseSpacer},
	{"horizontal-rule", parseHorizontalRule},
	{"page-break", parsePageBreak},
	{"heading", parseHeading},
	{"checkbox", parseCheckbox},
	{"signature", parseSignature},
	{"table", parseTable},
	{"bullet-list", parseBulletList},
	{"ordered-list", parseOrderedList},
}

type blockParser struct {
	lines []string
	roles *RoleRegistry
}

// ParseBlocks converts content lines into block nodes. It never fails:
// anything unrecognized degrades to a paragraph.
func ParseBlocks(lines []string, roles *RoleRegistry) []portabledoc.Block {
	p := &blockParser{lines: lines, roles: roles}
	blocks := []portabledoc.Block{}
	for pos := 0; pos < len(lines); {
		c := p.cursorAt(pos)
		block, next := p.parseOne(c)
		blocks = append(blocks, block)
		if next <= pos {
			next = pos + 1
		}
		pos = next
	}
	return blocks
}

func (p *blockParser) parseOne(c cursor) (portabledoc.Block, int) {
	for _, rule := range blockRules {
		if block, next, ok := rule.apply(p, c); ok {
			return block, next
		}
	}
	return portabledoc.Paragraph{Align: c.align, Content: Tokenize(c.text)}, c.pos + 1
}

func (p *blockParser) cursorAt(pos int) cursor {
	line := p.lines[pos]
	c := cursor{pos: pos}
	for _, ap := range alignmentPrefixes {
		if strings.HasPrefix(line, ap.prefix) {
			c.align = ap.align
			line = line[len(ap.prefix):]
			break
		}
	}
	c.text = trimSpace(line)
	return c
}

func parseSpacer(_ *blockParser, c cursor) (portabledoc.Block, int, bool) {
	if c.text != "" || c.align != "" {
		return nil, 0, false
	}
	return portabledoc.Paragraph{}, c.pos + 1, true
}

func parseHorizontalRule(_ *blockParser, c cursor) (portabledoc.Block, int, bool) {
	if c.text != "---" {
		return nil, 0, false
	}
	return portabledoc.HorizontalRule{}, c.pos + 1, true
}

func parsePageBreak(_ *blockParser, c cursor) (portabledoc.Block, int, bool) {
	if c.text != "===" {
		return nil, 0, false
	}
	return portabledoc.PageBreak{}, c.pos + 1, true
}

func parseHeading(_ *blockParser, c cursor) (portabledoc.Block, int, bool) {
	m := headingLine.FindStringSubmatch(c.text)
	if m == nil {
		return nil, 0, false
	}
	return portabledoc.Heading{
		Level:   len(m[1]),
		Align:   c.align,
		Content: Tokenize(m[2]),
	}, c.pos + 1, true
}

// Lists and tables ignore alignment. Their first line comes from the cursor
// so a prefixed first line is still consumed; following lines are read raw.

func parseBulletList(p *blockParser, c cursor) (portabledoc.Block, int, bool) {
	if !strings.HasPrefix(c.text, "- ") {
		return nil, 0, false
	}
	items := []portabledoc.ListItem{listItem(c.text[2:])}
	next := c.pos + 1
	for ; next < len(p.lines); next++ {
		line := trimSpace(p.lines[next])
		if !strings.HasPrefix(line, "- ") {
			break
		}
		items = append(items, listItem(line[2:]))
	}
	return portabledoc.BulletList{Items: items}, next, true
}

func parseOrderedList(p *blockParser, c cursor) (portabledoc.Block, int, bool) {
	m := orderedLine.FindStringSubmatch(c.text)
	if m == nil {
		return nil, 0, false
	}
	items := []portabledoc.ListItem{listItem(m[1])}
	next := c.pos + 1
	for ; next < len(p.lines); next++ {
		m = orderedLine.FindStringSubmatch(trimSpace(p.lines[next]))
		if m == nil {
			break
		}
		items = append(items, listItem(m[1]))
	}
	return portabledoc.OrderedList{Items: items}, next, true
}

func listItem(text string) portabledoc.ListItem {
	return portabledoc.ListItem{Paragraph: portabledoc.Paragraph{Content: Tokenize(text)}}
}

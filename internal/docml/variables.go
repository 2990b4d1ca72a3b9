package docml

import (
	"sort"

	"github.com/dgallion1/docml/internal/portabledoc"
)

// CollectVariables returns the sorted, de-duplicated variable ids of every
// injector in blocks. The result is never nil.
func CollectVariables(blocks []portabledoc.Block) []string {
	seen := map[string]struct{}{}
	addInlines := func(inlines []portabledoc.Inline) {
		for _, in := range inlines {
			if inj, ok := in.(portabledoc.Injector); ok && inj.VariableID != "" {
				seen[inj.VariableID] = struct{}{}
			}
		}
	}
	addItems := func(items []portabledoc.ListItem) {
		for _, item := range items {
			addInlines(item.Paragraph.Content)
		}
	}

	for _, b := range blocks {
		switch node := b.(type) {
		case portabledoc.Paragraph:
			addInlines(node.Content)
		case portabledoc.Heading:
			addInlines(node.Content)
		case portabledoc.Table:
			for _, row := range node.Rows {
				for _, cell := range row.Cells {
					addInlines(cell.Content)
				}
			}
		case portabledoc.BulletList:
			addItems(node.Items)
		case portabledoc.OrderedList:
			addItems(node.Items)
		case portabledoc.HorizontalRule, portabledoc.PageBreak,
			portabledoc.InteractiveField, portabledoc.Signature:
			// No inline content.
		}
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

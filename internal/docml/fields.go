package docml

import (
	"regexp"

	"github.com/dgallion1/docml/internal/identity"
	"github.com/dgallion1/docml/internal/portabledoc"
)

var (
	checkboxLine  = regexp.MustCompile(`^@checkbox\((` + word + `+)(?:,` + space + `*(.+?))?\)` + space + `+(.+)$`)
	signatureLine = regexp.MustCompile(`^@signature\(([^,]+),` + space + `*(` + word + `+)\)` + space + `*$`)
	// continuationLine is an indented "| ..." line following a directive.
	continuationLine = regexp.MustCompile(`^` + space + `+\|` + space + `+`)
	signerLine       = regexp.MustCompile(`^(` + word + `+)` + space + `*:` + space + `*(.+?)(?:` + space + `*\|` + space + `*(.+))?` + space + `*$`)
)

// continuations returns the text of the continuation lines starting at
// from, and the index of the first line that is not one.
func (p *blockParser) continuations(from int) ([]string, int) {
	var texts []string
	i := from
	for ; i < len(p.lines); i++ {
		loc := continuationLine.FindStringIndex(p.lines[i])
		if loc == nil {
			break
		}
		texts = append(texts, trimSpace(p.lines[i][loc[1]:]))
	}
	return texts, i
}

// parseCheckbox handles "@checkbox(role[, params]) Label" followed by
// "| option" lines. The params group is accepted and ignored.
func parseCheckbox(p *blockParser, c cursor) (portabledoc.Block, int, bool) {
	m := checkboxLine.FindStringSubmatch(c.text)
	if m == nil {
		return nil, 0, false
	}
	roleRef, label := m[1], m[3]

	texts, next := p.continuations(c.pos + 1)
	options := make([]portabledoc.InteractiveOption, 0, len(texts))
	for _, text := range texts {
		options = append(options, portabledoc.InteractiveOption{
			ID:    identity.ID(label + ":" + text),
			Label: text,
		})
	}

	return portabledoc.InteractiveField{
		ID:            identity.ID("checkbox:" + label),
		FieldType:     portabledoc.FieldTypeCheckbox,
		RoleID:        p.roles.Resolve(roleRef),
		Label:         label,
		Required:      true,
		Options:       options,
		OptionsLayout: portabledoc.OptionsLayoutVertical,
	}, next, true
}

// parseSignature handles "@signature(layout, lineWidth)" followed by
// "| role: Label [| subtitle]" lines. Continuation lines of another shape
// are consumed and dropped.
func parseSignature(p *blockParser, c cursor) (portabledoc.Block, int, bool) {
	m := signatureLine.FindStringSubmatch(c.text)
	if m == nil {
		return nil, 0, false
	}
	layout, lineWidth := trimSpace(m[1]), trimSpace(m[2])

	texts, next := p.continuations(c.pos + 1)
	items := make([]portabledoc.SignatureItem, 0, len(texts))
	for _, text := range texts {
		sm := signerLine.FindStringSubmatch(text)
		if sm == nil {
			continue
		}
		roleRef := sm[1]
		label := trimSpace(sm[2])
		items = append(items, portabledoc.SignatureItem{
			ID:           identity.ID("sig:" + roleRef + ":" + label),
			RoleID:       p.roles.Resolve(roleRef),
			Label:        label,
			ImageOpacity: portabledoc.DefaultSignatureOpacity,
			Subtitle:     trimSpace(sm[3]),
		})
	}

	return portabledoc.Signature{
		Count:      len(items),
		Layout:     layout,
		LineWidth:  lineWidth,
		Signatures: items,
	}, next, true
}

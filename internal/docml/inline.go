package docml

import (
	"strings"

	"github.com/dgallion1/docml/internal/portabledoc"
)

// markState is the per-line style toggle state. It never outlives a single
// Tokenize call.
type markState struct {
	bold, italic, underline bool
}

func (s markState) marks() []portabledoc.Mark {
	var marks []portabledoc.Mark
	if s.bold {
		marks = append(marks, portabledoc.MarkBold)
	}
	if s.italic {
		marks = append(marks, portabledoc.MarkItalic)
	}
	if s.underline {
		marks = append(marks, portabledoc.MarkUnderline)
	}
	return marks
}

type tokenKind int

const (
	tokenNone tokenKind = iota
	tokenBold
	tokenItalic
	tokenUnderline
	tokenBracket
)

// Tokenize converts one line into text runs and injectors. "**" toggles bold,
// a lone "*" toggles italic, "__" toggles underline, and [id|label] or
// [id|label|type] becomes an injector. A toggle left open stays on until the
// end of the line.
func Tokenize(line string) []portabledoc.Inline {
	var (
		runs  []portabledoc.Inline
		state markState
		start int
	)
	emitText := func(text string) {
		if text != "" {
			runs = append(runs, portabledoc.Text{Text: text, Marks: state.marks()})
		}
	}

	for i := 0; i < len(line); {
		kind, n := tokenAt(line, i)
		if kind == tokenNone {
			i++
			continue
		}
		emitText(line[start:i])
		switch kind {
		case tokenBold:
			state.bold = !state.bold
		case tokenItalic:
			state.italic = !state.italic
		case tokenUnderline:
			state.underline = !state.underline
		case tokenBracket:
			group := line[i : i+n]
			if inj, ok := ParsePlaceholder(group); ok {
				runs = append(runs, inj)
			} else {
				emitText(group)
			}
		}
		i += n
		start = i
	}
	emitText(line[start:])
	return runs
}

// tokenAt reports the token starting at byte offset i, if any, and its length.
func tokenAt(line string, i int) (tokenKind, int) {
	switch line[i] {
	case '*':
		if strings.HasPrefix(line[i:], "**") {
			return tokenBold, 2
		}
		// A single '*' only counts when neither neighbor is '*'.
		if i > 0 && line[i-1] == '*' {
			return tokenNone, 0
		}
		return tokenItalic, 1
	case '_':
		if strings.HasPrefix(line[i:], "__") {
			return tokenUnderline, 2
		}
	case '[':
		if n := bracketGroupLen(line[i:]); n > 0 {
			return tokenBracket, n
		}
	}
	return tokenNone, 0
}

// bracketGroupLen returns the length of "[" + one or more non-"]" bytes +
// "]" at the start of s, or 0.
func bracketGroupLen(s string) int {
	end := strings.IndexByte(s[1:], ']')
	if end <= 0 {
		return 0
	}
	return end + 2
}

// ParsePlaceholder parses a bracket group of the form [id|label] or
// [id|label|type]. Each part must be non-empty and free of '|' and ']'.
func ParsePlaceholder(group string) (portabledoc.Injector, bool) {
	if len(group) < 2 || group[0] != '[' || group[len(group)-1] != ']' {
		return portabledoc.Injector{}, false
	}
	inner := group[1 : len(group)-1]
	if strings.Contains(inner, "]") {
		return portabledoc.Injector{}, false
	}
	parts := strings.Split(inner, "|")
	if len(parts) < 2 || len(parts) > 3 {
		return portabledoc.Injector{}, false
	}
	for _, p := range parts {
		if p == "" {
			return portabledoc.Injector{}, false
		}
	}
	inj := portabledoc.Injector{
		VariableID: trimSpace(parts[0]),
		Label:      trimSpace(parts[1]),
		Type:       portabledoc.InjectorTypeText,
	}
	if len(parts) == 3 {
		inj.Type = trimSpace(parts[2])
	}
	return inj, true
}

// SplitPlaceholders applies only the placeholder rule to already styled
// text, giving every text run the supplied marks.
func SplitPlaceholders(text string, marks []portabledoc.Mark) []portabledoc.Inline {
	var runs []portabledoc.Inline
	emitText := func(s string) {
		if s != "" {
			runs = append(runs, portabledoc.Text{Text: s, Marks: marks})
		}
	}
	start := 0
	for i := 0; i < len(text); {
		if text[i] != '[' {
			i++
			continue
		}
		n := bracketGroupLen(text[i:])
		if n == 0 {
			i++
			continue
		}
		group := text[i : i+n]
		if inj, ok := ParsePlaceholder(group); ok {
			emitText(text[start:i])
			runs = append(runs, inj)
			start = i + n
		}
		i += n
	}
	emitText(text[start:])
	return runs
}

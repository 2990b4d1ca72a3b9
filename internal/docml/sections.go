package docml

import (
	"strings"
	"unicode"
)

// Section names recognized by the assembler.
const (
	SectionMeta     = "meta"
	SectionRoles    = "roles"
	SectionWorkflow = "workflow"
	SectionContent  = "content"
)

// Sections maps a section name to its raw lines.
type Sections map[string][]string

// Has reports whether the named section was present in the source.
func (s Sections) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// SplitSections splits source text into named sections delimited by
// ---name--- marker lines. Once the content section opens, every remaining
// line belongs to it, including lines that look like markers. CRLF and lone
// CR line endings are read as LF.
func SplitSections(text string) Sections {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	sections := Sections{}
	current := ""
	open := false
	var lines []string

	all := strings.Split(text, "\n")
	for i, line := range all {
		name, ok := sectionMarker(line)
		if !ok {
			if open {
				lines = append(lines, line)
			}
			continue
		}
		if open {
			sections[current] = lines
		}
		current, open, lines = name, true, []string{}
		if name == SectionContent {
			lines = append(lines, all[i+1:]...)
			break
		}
	}
	if open {
		sections[current] = lines
	}
	return sections
}

// sectionMarker matches ---word--- with optional trailing whitespace.
func sectionMarker(line string) (string, bool) {
	line = strings.TrimRightFunc(line, isSpace)
	if !strings.HasPrefix(line, "---") || !strings.HasSuffix(line, "---") || len(line) < 7 {
		return "", false
	}
	name := line[3 : len(line)-3]
	for _, r := range name {
		if !isWordRune(r) {
			return "", false
		}
	}
	return name, true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

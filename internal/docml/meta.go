package docml

import (
	"strconv"
	"strings"

	"github.com/dgallion1/docml/internal/portabledoc"
)

// Defaults applied when the meta or workflow sections omit a key.
// A key given with a blank value stays blank.
const (
	DefaultLanguage   = "es"
	DefaultPageFormat = "LETTER"
	DefaultMargins    = 72
	DefaultOrderMode  = portabledoc.OrderModeSequential
)

type pageSize struct {
	width, height int
}

// pageSizes are page dimensions in CSS pixels at 96 dpi.
var pageSizes = map[string]pageSize{
	"LETTER": {width: 816, height: 1056},
	"LEGAL":  {width: 816, height: 1344},
	"A4":     {width: 794, height: 1123},
}

// PageConfigFor resolves a page format name. Unknown formats keep their name
// but receive LETTER dimensions.
func PageConfigFor(format string, margins int) portabledoc.PageConfig {
	format = strings.ToUpper(format)
	size, ok := pageSizes[format]
	if !ok {
		size = pageSizes[DefaultPageFormat]
	}
	return portabledoc.PageConfig{
		FormatID: format,
		Width:    size.width,
		Height:   size.height,
		Margins:  portabledoc.UniformMargins(margins),
	}
}

// ParseMeta extracts document metadata and page configuration from
// key: value lines.
func ParseMeta(lines []string) (portabledoc.Meta, portabledoc.PageConfig) {
	kv := keyValues(lines)

	margins := DefaultMargins
	if n, err := strconv.Atoi(kv.get("margins", "")); err == nil {
		margins = n
	}

	meta := portabledoc.Meta{
		Title:       kv.get("title", ""),
		Description: kv.get("description", ""),
		Language:    kv.get("language", DefaultLanguage),
	}
	return meta, PageConfigFor(kv.get("page", DefaultPageFormat), margins)
}

// DefaultMeta returns metadata for a document that has only a title.
func DefaultMeta(title string) portabledoc.Meta {
	return portabledoc.Meta{Title: title, Language: DefaultLanguage}
}

// DefaultPageConfig returns the LETTER page with default margins.
func DefaultPageConfig() portabledoc.PageConfig {
	return PageConfigFor(DefaultPageFormat, DefaultMargins)
}

// ParseWorkflow reads the signing order mode and attaches the fixed
// notification trigger scaffold.
func ParseWorkflow(lines []string) portabledoc.WorkflowConfig {
	mode := DefaultOrderMode
	for _, line := range lines {
		line = trimSpace(line)
		if !strings.HasPrefix(line, "mode:") {
			continue
		}
		mode = trimSpace(strings.TrimPrefix(line, "mode:"))
	}
	return workflowWithMode(mode)
}

// DefaultWorkflow is the workflow used when no workflow section is given.
func DefaultWorkflow() portabledoc.WorkflowConfig {
	return workflowWithMode(DefaultOrderMode)
}

func workflowWithMode(mode string) portabledoc.WorkflowConfig {
	return portabledoc.WorkflowConfig{
		OrderMode: mode,
		Notifications: portabledoc.NotificationConfig{
			Scope: portabledoc.NotifyScopeGlobal,
			GlobalTriggers: portabledoc.GlobalTriggers{
				OnPreviousRolesSigned: portabledoc.TriggerSettings{
					PreviousRolesConfig: &portabledoc.PreviousRolesConf{
						Mode:            portabledoc.PreviousRolesModeAuto,
						SelectedRoleIDs: []string{},
					},
				},
				OnTurnToSign: portabledoc.TriggerSettings{Enabled: true},
			},
			RoleConfigs: []portabledoc.RoleNotifyConfig{},
		},
	}
}

type kvLines map[string]string

// keyValues splits each non-blank line at its first colon. Later keys
// overwrite earlier ones.
func keyValues(lines []string) kvLines {
	kv := kvLines{}
	for _, line := range lines {
		line = trimSpace(line)
		if line == "" {
			continue
		}
		key, value, _ := strings.Cut(line, ":")
		kv[trimSpace(key)] = trimSpace(value)
	}
	return kv
}

// get returns fallback only for absent keys; a present blank value is kept.
func (kv kvLines) get(key, fallback string) string {
	if v, ok := kv[key]; ok {
		return v
	}
	return fallback
}

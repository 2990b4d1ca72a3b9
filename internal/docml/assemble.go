package docml

import (
	"time"

	"github.com/dgallion1/docml/internal/portabledoc"
)

// exportTimeLayout is applied to second-truncated times, so the
// milliseconds always render as .000.
const exportTimeLayout = "2006-01-02T15:04:05.000Z"

// Options controls document assembly.
type Options struct {
	// Now supplies the export timestamp. Defaults to time.Now.
	Now func() time.Time
}

// ExportTime returns the timestamp to stamp on a document.
func (o Options) ExportTime() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// Convert parses source markup into a portable document.
func Convert(text string, opts Options) (*portabledoc.Document, error) {
	return Assemble(SplitSections(text), opts)
}

// Assemble builds a document from split sections. The meta and content
// sections are mandatory; roles and workflow fall back to defaults.
func Assemble(sections Sections, opts Options) (*portabledoc.Document, error) {
	for _, name := range []string{SectionMeta, SectionContent} {
		if !sections.Has(name) {
			return nil, &MissingSectionError{Section: name}
		}
	}

	meta, page := ParseMeta(sections[SectionMeta])
	roles := ParseRoles(sections[SectionRoles])
	workflow := ParseWorkflow(sections[SectionWorkflow])
	blocks := ParseBlocks(sections[SectionContent], roles)

	return NewDocument(meta, page, roles.Roles(), workflow, blocks, opts.ExportTime()), nil
}

// NewDocument combines already-parsed parts into a document, deriving the
// variable id list from blocks.
func NewDocument(
	meta portabledoc.Meta,
	page portabledoc.PageConfig,
	roles []portabledoc.SignerRole,
	workflow portabledoc.WorkflowConfig,
	blocks []portabledoc.Block,
	exportedAt time.Time,
) *portabledoc.Document {
	if roles == nil {
		roles = []portabledoc.SignerRole{}
	}
	if blocks == nil {
		blocks = []portabledoc.Block{}
	}
	return &portabledoc.Document{
		Version:         portabledoc.Version,
		Meta:            meta,
		PageConfig:      page,
		VariableIDs:     CollectVariables(blocks),
		SignerRoles:     roles,
		SigningWorkflow: workflow,
		Content: portabledoc.Doc{
			Type:    portabledoc.NodeTypeDoc,
			Content: blocks,
		},
		ExportInfo: portabledoc.ExportInfo{
			ExportedAt: exportedAt.UTC().Truncate(time.Second).Format(exportTimeLayout),
			SourceApp:  portabledoc.SourceApp,
		},
	}
}

// ImportedDocument wraps blocks produced by a foreign-format importer in a
// document with default metadata, page and workflow and no roles.
func ImportedDocument(title string, blocks []portabledoc.Block, exportedAt time.Time) *portabledoc.Document {
	return NewDocument(DefaultMeta(title), DefaultPageConfig(), nil, DefaultWorkflow(), blocks, exportedAt)
}

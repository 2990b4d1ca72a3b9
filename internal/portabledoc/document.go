package portabledoc

// Version is the portable document format version this module emits.
const Version = "1.1.0"

// SourceApp identifies the producer in exportInfo.
const SourceApp = "doc-assembly-web/" + Version

// Document is the root of a converted document.
type Document struct {
	Version         string         `json:"version"`
	Meta            Meta           `json:"meta"`
	PageConfig      PageConfig     `json:"pageConfig"`
	VariableIDs     []string       `json:"variableIds"`
	SignerRoles     []SignerRole   `json:"signerRoles"`
	SigningWorkflow WorkflowConfig `json:"signingWorkflow"`
	Content         Doc            `json:"content"`
	ExportInfo      ExportInfo     `json:"exportInfo"`
}

// Meta holds descriptive document metadata.
type Meta struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Language    string `json:"language"`
}

// PageConfig is a named page format resolved to pixel dimensions.
type PageConfig struct {
	FormatID string  `json:"formatId"`
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	Margins  Margins `json:"margins"`
}

type Margins struct {
	Top    int `json:"top"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
	Right  int `json:"right"`
}

// UniformMargins returns margins with the same value on every side.
func UniformMargins(v int) Margins {
	return Margins{Top: v, Bottom: v, Left: v, Right: v}
}

// SignerRole defines a signer role in the document.
type SignerRole struct {
	ID    string     `json:"id"`
	Label string     `json:"label"`
	Name  FieldValue `json:"name"`
	Email FieldValue `json:"email"`
	Order int        `json:"order"`
}

// FieldValue represents a field value (text or injectable reference).
type FieldValue struct {
	Type  string `json:"type"`  // "text" | "injectable"
	Value string `json:"value"` // literal text or variableId
}

const FieldTypeText = "text"

// WorkflowConfig defines the signing workflow configuration.
type WorkflowConfig struct {
	OrderMode     string             `json:"orderMode"` // "parallel" | "sequential"
	Notifications NotificationConfig `json:"notifications"`
}

// NotificationConfig defines notification settings.
type NotificationConfig struct {
	Scope          string             `json:"scope"`
	GlobalTriggers GlobalTriggers     `json:"globalTriggers"`
	RoleConfigs    []RoleNotifyConfig `json:"roleConfigs"`
}

// GlobalTriggers lists the document-wide notification triggers in their
// serialized order.
type GlobalTriggers struct {
	OnDocumentCreated       TriggerSettings `json:"on_document_created"`
	OnPreviousRolesSigned   TriggerSettings `json:"on_previous_roles_signed"`
	OnTurnToSign            TriggerSettings `json:"on_turn_to_sign"`
	OnAllSignaturesComplete TriggerSettings `json:"on_all_signatures_complete"`
}

// TriggerSettings defines settings for a notification trigger.
type TriggerSettings struct {
	Enabled             bool               `json:"enabled"`
	PreviousRolesConfig *PreviousRolesConf `json:"previousRolesConfig,omitempty"`
}

// PreviousRolesConf configures the on_previous_roles_signed trigger.
type PreviousRolesConf struct {
	Mode            string   `json:"mode"` // "auto" | "custom"
	SelectedRoleIDs []string `json:"selectedRoleIds"`
}

// RoleNotifyConfig defines notification config for a specific role.
type RoleNotifyConfig struct {
	RoleID   string                     `json:"roleId"`
	Triggers map[string]TriggerSettings `json:"triggers"`
}

const (
	OrderModeSequential = "sequential"

	NotifyScopeGlobal = "global"

	PreviousRolesModeAuto = "auto"
)

// Doc is the ProseMirror root node wrapping the block sequence.
type Doc struct {
	Type    string  `json:"type"`
	Content []Block `json:"content"`
}

// ExportInfo records when and by what the document was produced.
type ExportInfo struct {
	ExportedAt string `json:"exportedAt"`
	SourceApp  string `json:"sourceApp"`
}

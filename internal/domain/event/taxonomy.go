package event

// Type identifies one kind of business action in the activity log.
// The set is closed: recording any type not listed here is rejected.
type Type string

const (
	TypeDocGenerate     Type = "doc_generate"
	TypeDocSave         Type = "doc_save"
	TypeDocExport       Type = "doc_export"
	TypeAnalyze         Type = "analyze"
	TypeShareCreated    Type = "share_link_created"
	TypeShareOpened     Type = "share_link_opened"
	TypeContractDrafted Type = "contract_draft_created"
	TypeSignRequested   Type = "signature_requested"
	TypeSignCompleted   Type = "signature_completed"
	TypeAutoRunStarted  Type = "automation_run_started"
	TypeAutoRunDone     Type = "automation_run_completed"
	TypeAutoRunFailed   Type = "automation_run_failed"
	TypeAssistantQuery  Type = "assistant_query"
	TypeSyncStarted     Type = "connector_sync_started"
	TypeSyncCompleted   Type = "connector_sync_completed"
	TypeSyncFailed      Type = "connector_sync_failed"
	TypePackSuccess     Type = "accounts_pack_success"
	TypePackFailure     Type = "accounts_pack_failure"
)

// typeLabels is the exhaustive label map for the taxonomy. Membership here
// is what makes a type valid, so adding a type means adding a label.
var typeLabels = map[Type]string{
	TypeDocGenerate:     "Document generated",
	TypeDocSave:         "Document saved to storage",
	TypeDocExport:       "Document exported",
	TypeAnalyze:         "Analysis run",
	TypeShareCreated:    "Share link created",
	TypeShareOpened:     "Share link opened",
	TypeContractDrafted: "Contract draft created",
	TypeSignRequested:   "Signature requested",
	TypeSignCompleted:   "Signature completed",
	TypeAutoRunStarted:  "Automation run started",
	TypeAutoRunDone:     "Automation run completed",
	TypeAutoRunFailed:   "Automation run failed",
	TypeAssistantQuery:  "Assistant query",
	TypeSyncStarted:     "Connector sync started",
	TypeSyncCompleted:   "Connector sync completed",
	TypeSyncFailed:      "Connector sync failed",
	TypePackSuccess:     "Accounts pack succeeded",
	TypePackFailure:     "Accounts pack failed",
}

// Valid reports whether t belongs to the closed taxonomy.
func (t Type) Valid() bool {
	_, ok := typeLabels[t]
	return ok
}

// Label returns the human-readable label for t, or the raw type string
// when t is outside the taxonomy.
func (t Type) Label() string {
	if label, ok := typeLabels[t]; ok {
		return label
	}
	return string(t)
}

// Group names a category of event types exposed as a list filter.
type Group string

const (
	GroupDocuments  Group = "documents"
	GroupAssistant  Group = "assistant"
	GroupConnectors Group = "connectors"
	GroupSignatures Group = "signatures"
	GroupSystem     Group = "system"
)

// MatchKind selects how a MatchRule compares against the event type.
type MatchKind int

const (
	MatchPrefix MatchKind = iota
	MatchExact
)

// MatchRule is one structured type filter. Rules are evaluated by the
// storage layer; a group matches when any of its rules match.
type MatchRule struct {
	Kind  MatchKind
	Value string
}

var groupRules = map[Group][]MatchRule{
	GroupDocuments: {
		{Kind: MatchPrefix, Value: "doc_"},
		{Kind: MatchPrefix, Value: "share_"},
	},
	GroupAssistant: {
		{Kind: MatchPrefix, Value: "assistant_"},
		{Kind: MatchExact, Value: string(TypeAnalyze)},
	},
	GroupConnectors: {
		{Kind: MatchPrefix, Value: "connector_"},
	},
	GroupSignatures: {
		{Kind: MatchPrefix, Value: "signature_"},
		{Kind: MatchPrefix, Value: "contract_"},
	},
	GroupSystem: {
		{Kind: MatchPrefix, Value: "automation_"},
		{Kind: MatchPrefix, Value: "accounts_pack_"},
	},
}

// RulesForGroup returns the match rules for a group. Unknown groups have
// no rules and therefore match nothing.
func RulesForGroup(g Group) []MatchRule {
	return groupRules[g]
}

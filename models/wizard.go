package models

// WizardMode distinguishes building a new campaign from editing an existing
// one. Edit mode skips the gates that only make sense before first submit.
type WizardMode string

const (
	WizardModeCreate WizardMode = "create"
	WizardModeEdit   WizardMode = "edit"
)

// Wizard step indexes. Steps advance one at a time; Review is terminal.
const (
	StepBasics     = 0
	StepPrompt     = 1
	StepVoice      = 2
	StepSpeech     = 3
	StepPostCall   = 4
	StepReview     = 5
	WizardStepLast = StepReview
)

// KVEntry is one row of an editable key/value list. Rows keep their insertion
// order and may repeat keys while being edited; duplicates collapse only when
// the list is flattened for submission.
type KVEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// FlattenKV collapses an ordered KV list into a map. Later rows win over
// earlier rows with the same key. Rows with empty keys are dropped.
func FlattenKV(entries []KVEntry) map[string]string {
	out := make(map[string]string, len(entries))
	for _, e := range entries {
		if e.Key == "" {
			continue
		}
		out[e.Key] = e.Value
	}
	return out
}

// WizardDraft is the server-side state of one campaign wizard run. The draft
// holds the campaign object under construction plus the editable KV lists
// that only flatten into the campaign at submit time.
type WizardDraft struct {
	ID       string     `json:"id"`
	Mode     WizardMode `json:"mode"`
	Step     int        `json:"step"`
	Campaign Campaign   `json:"campaign"`

	// Ordered KV lists edited on the prompt and post-call steps.
	PromptVariables  []KVEntry `json:"prompt_variables"`
	CategoryFields   []KVEntry `json:"category_fields"`
	ExtractionFields []KVEntry `json:"extraction_fields"`

	// Edit-mode hydration gates. The draft is usable only after both the
	// campaign and the organization list have loaded; hydrating from just one
	// would overwrite fields with zero values.
	CampaignLoaded      bool `json:"campaign_loaded"`
	OrganizationsLoaded bool `json:"organizations_loaded"`

	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

// Hydrated reports whether an edit-mode draft has both of its upstream loads
// complete. Create-mode drafts are always hydrated.
func (d *WizardDraft) Hydrated() bool {
	if d.Mode == WizardModeCreate {
		return true
	}
	return d.CampaignLoaded && d.OrganizationsLoaded
}

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlattenKV(t *testing.T) {
	tests := []struct {
		name    string
		entries []KVEntry
		want    map[string]string
	}{
		{
			name:    "simple",
			entries: []KVEntry{{Key: "a", Value: "1"}, {Key: "b", Value: "2"}},
			want:    map[string]string{"a": "1", "b": "2"},
		},
		{
			name: "later row wins on duplicate key",
			entries: []KVEntry{
				{Key: "plan", Value: "silver"},
				{Key: "plan", Value: "gold"},
			},
			want: map[string]string{"plan": "gold"},
		},
		{
			name: "empty keys dropped",
			entries: []KVEntry{
				{Key: "", Value: "orphan"},
				{Key: "a", Value: "1"},
			},
			want: map[string]string{"a": "1"},
		},
		{
			name:    "nil input",
			entries: nil,
			want:    map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FlattenKV(tt.entries))
		})
	}
}

func TestWizardDraftHydrated(t *testing.T) {
	// Create-mode drafts never wait on upstream loads.
	create := WizardDraft{Mode: WizardModeCreate}
	assert.True(t, create.Hydrated())

	// Edit-mode drafts need both the campaign and the org list.
	edit := WizardDraft{Mode: WizardModeEdit}
	assert.False(t, edit.Hydrated())
	edit.CampaignLoaded = true
	assert.False(t, edit.Hydrated())
	edit.OrganizationsLoaded = true
	assert.True(t, edit.Hydrated())
}

func TestEnsureCampaignID(t *testing.T) {
	c := Campaign{}
	c.EnsureCampaignID()
	assert.NotEmpty(t, c.CampaignID)

	c2 := Campaign{CampaignID: "keep-me"}
	c2.EnsureCampaignID()
	assert.Equal(t, "keep-me", c2.CampaignID)

	c3 := Campaign{CampaignID: "   "}
	c3.EnsureCampaignID()
	assert.NotEqual(t, "   ", c3.CampaignID)
}

func TestRoleIsSystem(t *testing.T) {
	assert.True(t, Role{ID: "role_superuser", Name: "Whatever"}.IsSystem())
	assert.True(t, Role{ID: "role_org_admin"}.IsSystem())
	assert.True(t, Role{ID: "role_agent"}.IsSystem())
	assert.True(t, Role{ID: "role-custom", Name: "superuser"}.IsSystem())
	assert.True(t, Role{ID: "role-custom", Name: "  SuperUser  "}.IsSystem())
	assert.False(t, Role{ID: "role-custom", Name: "Supervisor"}.IsSystem())
}

package dto

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestStartWizardRequestValidation(t *testing.T) {
	v := validator.New()

	tests := []struct {
		name    string
		req     StartWizardRequest
		wantErr bool
	}{
		{
			name: "create without campaign id",
			req:  StartWizardRequest{Mode: "create"},
		},
		{
			name: "edit with uuid campaign id",
			req:  StartWizardRequest{Mode: "edit", CampaignID: "3b7a2c9e-4f1d-4e8a-9c6b-2d5e7f9a1b3c"},
		},
		{
			name: "edit with operator-assigned id",
			req:  StartWizardRequest{Mode: "edit", CampaignID: "legacy-camp-7"},
		},
		{
			name:    "edit without campaign id",
			req:     StartWizardRequest{Mode: "edit"},
			wantErr: true,
		},
		{
			name:    "unknown mode",
			req:     StartWizardRequest{Mode: "clone"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(&tt.req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

package models

import "time"

// OrganizationStatus represents the lifecycle state of an organization
type OrganizationStatus string

const (
	OrganizationStatusActive    OrganizationStatus = "active"
	OrganizationStatusInactive  OrganizationStatus = "inactive"
	OrganizationStatusSuspended OrganizationStatus = "suspended"
)

// Organization is a tenant on the voice platform. Campaigns and users
// reference it by id; the console resolves those references by linear lookup
// against a freshly fetched list.
type Organization struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Code         string             `json:"code"`
	Description  string             `json:"description,omitempty"`
	Status       OrganizationStatus `json:"status"`
	CreatedBy    string             `json:"created_by,omitempty"`
	ModifiedBy   string             `json:"modified_by,omitempty"`
	CreatedAt    *time.Time         `json:"created_at,omitempty"`
	ModifiedDate *time.Time         `json:"modified_date,omitempty"`
}

// FindOrganization resolves an org id against a fetched list. Returns nil when
// the reference is dangling.
func FindOrganization(orgs []Organization, id string) *Organization {
	for i := range orgs {
		if orgs[i].ID == id {
			return &orgs[i]
		}
	}
	return nil
}

package models

import "strings"

// Permission module names the platform recognizes
const (
	ModuleOrganizations = "organizations"
	ModuleUsers         = "users"
	ModuleCampaigns     = "campaigns"
	ModuleAnalytics     = "analytics"
)

// systemRoleIDs are the preset role identifiers that ship with the platform.
// Together with any role named "superuser" they are immutable and
// non-deletable.
var systemRoleIDs = map[string]bool{
	"role_superuser": true,
	"role_org_admin": true,
	"role_agent":     true,
}

// RolePermissions holds the two permission sets of a role
type RolePermissions struct {
	Read  []string `json:"read"`
	Write []string `json:"write"`
}

// Role is a named permission bundle scoped to an organization
type Role struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	OrgID       string          `json:"org_id,omitempty"`
	Permissions RolePermissions `json:"permissions"`
	Status      string          `json:"status,omitempty"`
}

// IsSystem reports whether the role is one of the protected built-ins. The
// console hides edit and delete for these; the flow layer rejects writes to
// them outright.
func (r Role) IsSystem() bool {
	if strings.EqualFold(strings.TrimSpace(r.Name), "superuser") {
		return true
	}
	return systemRoleIDs[r.ID]
}

// CanRead reports whether the role grants read access to a module
func (r Role) CanRead(module string) bool {
	for _, m := range r.Permissions.Read {
		if m == module {
			return true
		}
	}
	return false
}

// CanWrite reports whether the role grants write access to a module
func (r Role) CanWrite(module string) bool {
	for _, m := range r.Permissions.Write {
		if m == module {
			return true
		}
	}
	return false
}

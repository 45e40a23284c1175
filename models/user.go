package models

// Built-in user roles
const (
	UserRoleSuperuser = "superuser"
	UserRoleOrgAdmin  = "org_admin"
	UserRoleUser      = "user"
	UserRoleAgent     = "agent"
)

// UserStatus represents the lifecycle state of a user account
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

// User is an operator account on the voice platform. Password is write-only:
// it accompanies creation requests and never appears on the read model.
type User struct {
	ID             string     `json:"id"`
	Email          string     `json:"email"`
	Password       string     `json:"password,omitempty"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	MobileNumber   string     `json:"mobile_number,omitempty"`
	Role           string     `json:"role,omitempty"`
	RoleID         string     `json:"role_id,omitempty"`
	Status         UserStatus `json:"status"`
	OrganizationID string     `json:"organization_id,omitempty"`
}

// UserProfile is the slice of the user record the console keeps in the
// session record after login.
type UserProfile struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
}

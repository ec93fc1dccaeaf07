package schema

// AccessPermissionOverrideTable represents the 'access.permissionoverride' table
type AccessPermissionOverrideTable struct {
	Table      string
	UserID     string
	Capability string
	Allow      string
	UpdatedBy  string
	UpdatedAt  string
}

var AccessPermissionOverride = AccessPermissionOverrideTable{
	Table:      "access.permissionoverride",
	UserID:     "userid",
	Capability: "capability",
	Allow:      "allow",
	UpdatedBy:  "updatedby",
	UpdatedAt:  "updatedat",
}

package schema

// AccessRolePermissionTable represents the 'access.rolepermission' table
type AccessRolePermissionTable struct {
	Table      string
	Role       string
	Capability string
}

var AccessRolePermission = AccessRolePermissionTable{
	Table:      "access.rolepermission",
	Role:       "role",
	Capability: "capability",
}

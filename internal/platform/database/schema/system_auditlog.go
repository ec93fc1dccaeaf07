package schema

// SystemAuditLogTable represents the 'system.auditlog' table
type SystemAuditLogTable struct {
	Table      string
	ID         string
	ActorID    string
	Action     string
	Role       string
	Capability string
	IPAddress  string
	UserAgent  string
	Details    string
	CreatedAt  string
}

var SystemAuditLog = SystemAuditLogTable{
	Table:      "system.auditlog",
	ID:         "id",
	ActorID:    "actorid",
	Action:     "action",
	Role:       "role",
	Capability: "capability",
	IPAddress:  "ipaddress",
	UserAgent:  "useragent",
	Details:    "details",
	CreatedAt:  "createdat",
}

package schema

// PortalServiceJobTable represents the 'portal.servicejob' table
type PortalServiceJobTable struct {
	Table        string
	ID           string
	OwnerID      string
	EcosystemID  string
	Title        string
	Status       string
	ScheduledFor string
	UpdatedAt    string
}

var PortalServiceJob = PortalServiceJobTable{
	Table:        "portal.servicejob",
	ID:           "id",
	OwnerID:      "ownerid",
	EcosystemID:  "ecosystemid",
	Title:        "title",
	Status:       "status",
	ScheduledFor: "scheduledfor",
	UpdatedAt:    "updatedat",
}

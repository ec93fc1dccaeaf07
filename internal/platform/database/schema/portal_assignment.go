package schema

// PortalAssignmentTable represents the 'portal.assignment' table
type PortalAssignmentTable struct {
	Table       string
	ID          string
	JobType     string
	JobID       string
	AssigneeID  string
	EcosystemID string
	AssignedBy  string
	CreatedAt   string
}

var PortalAssignment = PortalAssignmentTable{
	Table:       "portal.assignment",
	ID:          "id",
	JobType:     "jobtype",
	JobID:       "jobid",
	AssigneeID:  "assigneeid",
	EcosystemID: "ecosystemid",
	AssignedBy:  "assignedby",
	CreatedAt:   "createdat",
}

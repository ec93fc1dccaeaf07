package schema

// PortalSupportTicketTable represents the 'portal.supportticket' table
type PortalSupportTicketTable struct {
	Table       string
	ID          string
	OwnerID     string
	EcosystemID string
	Subject     string
	Body        string
	Status      string
	CreatedAt   string
	UpdatedAt   string
}

var PortalSupportTicket = PortalSupportTicketTable{
	Table:       "portal.supportticket",
	ID:          "id",
	OwnerID:     "ownerid",
	EcosystemID: "ecosystemid",
	Subject:     "subject",
	Body:        "body",
	Status:      "status",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// PortalSupportReplyTable represents the 'portal.supportreply' table
type PortalSupportReplyTable struct {
	Table     string
	ID        string
	TicketID  string
	AuthorID  string
	Body      string
	CreatedAt string
}

var PortalSupportReply = PortalSupportReplyTable{
	Table:     "portal.supportreply",
	ID:        "id",
	TicketID:  "ticketid",
	AuthorID:  "authorid",
	Body:      "body",
	CreatedAt: "createdat",
}

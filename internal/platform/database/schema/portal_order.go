package schema

// PortalOrderTable represents the 'portal.salesorder' table
type PortalOrderTable struct {
	Table         string
	ID            string
	CustomerID    string
	EcosystemID   string
	CatalogItemID string
	Quantity      string
	TotalCents    string
	Status        string
	Notes         string
	ApprovedBy    string
	CreatedAt     string
	UpdatedAt     string
}

var PortalOrder = PortalOrderTable{
	Table:         "portal.salesorder",
	ID:            "id",
	CustomerID:    "customerid",
	EcosystemID:   "ecosystemid",
	CatalogItemID: "catalogitemid",
	Quantity:      "quantity",
	TotalCents:    "totalcents",
	Status:        "status",
	Notes:         "notes",
	ApprovedBy:    "approvedby",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
}

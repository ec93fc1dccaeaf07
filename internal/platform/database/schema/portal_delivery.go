package schema

// PortalDeliveryTable represents the 'portal.delivery' table
type PortalDeliveryTable struct {
	Table       string
	ID          string
	OrderID     string
	OwnerID     string
	EcosystemID string
	Address     string
	Status      string
	UpdatedAt   string
}

var PortalDelivery = PortalDeliveryTable{
	Table:       "portal.delivery",
	ID:          "id",
	OrderID:     "orderid",
	OwnerID:     "ownerid",
	EcosystemID: "ecosystemid",
	Address:     "address",
	Status:      "status",
	UpdatedAt:   "updatedat",
}
